package lz4

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channelcall/internal/errs"
)

func TestCompressor_UncompressMalformed(t *testing.T) {
	input := bytes.Repeat([]byte(`{"msg":"hello world"}`), 64)
	compressed, err := Compressor{}.Compress(input)
	require.NoError(t, err)
	require.Zero(t, compressed[0]&0x80)

	testCases := []struct {
		name string
		data func() []byte
	}{
		{
			name: "too short",
			data: func() []byte {
				return []byte{0x00, 0x01}
			},
		},
		{
			name: "size above frame limit",
			data: func() []byte {
				return []byte{0x7F, 0xFF, 0xFF, 0xFF, 0x00}
			},
		},
		{
			name: "size larger than block",
			data: func() []byte {
				bs := append([]byte{}, compressed...)
				binary.BigEndian.PutUint32(bs[:4], uint32(len(input)+10))
				return bs
			},
		},
		{
			name: "raw size mismatch",
			data: func() []byte {
				return []byte{0x80, 0x00, 0x00, 0x05, 'x'}
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Compressor{}.Uncompress(tc.data())
			assert.Equal(t, errs.InvalidMessage, err)
			assert.Nil(t, res)
		})
	}
}
