package lz4

import (
	"encoding/binary"

	"github.com/pierrec/lz4/v4"

	"channelcall/internal/errs"
	"channelcall/rpc/compress"
)

var _ compress.Compressor = Compressor{}

// maxUncompressedSize matches the largest frame the tcp layer accepts
const maxUncompressedSize = 64 << 20

// Compressor lz4 block compression. lz4 trades compression ratio for very
// fast decompression. A block does not record its original size, so the
// size is written in front of it as a big endian uint32.
type Compressor struct{}

func (Compressor) Code() byte {
	return 2
}

// Compress data
func (Compressor) Compress(data []byte) ([]byte, error) {
	buf := make([]byte, 4+lz4.CompressBlockBound(len(data)))
	binary.BigEndian.PutUint32(buf[:4], uint32(len(data)))
	var c lz4.Compressor
	n, err := c.CompressBlock(data, buf[4:])
	if err != nil {
		return nil, err
	}
	// incompressible input yields n == 0, store it raw
	if n == 0 || n >= len(data) {
		buf[0] |= 0x80
		return append(buf[:4], data...), nil
	}
	return buf[:4+n], nil
}

// Uncompress data
func (Compressor) Uncompress(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, errs.InvalidMessage
	}
	raw := data[0]&0x80 != 0
	header := []byte{data[0] &^ 0x80, data[1], data[2], data[3]}
	size := binary.BigEndian.Uint32(header)
	if raw {
		if uint32(len(data)-4) != size {
			return nil, errs.InvalidMessage
		}
		return data[4:], nil
	}
	if size > maxUncompressedSize {
		return nil, errs.InvalidMessage
	}
	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data[4:], buf)
	if err != nil {
		return nil, err
	}
	if n != int(size) {
		return nil, errs.InvalidMessage
	}
	return buf, nil
}
