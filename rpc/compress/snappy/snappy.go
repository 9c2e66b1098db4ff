package snappy

import (
	"github.com/golang/snappy"

	"channelcall/rpc/compress"
)

var _ compress.Compressor = Compressor{}

// Compressor implements the Compressor interface with snappy block format
type Compressor struct{}

func (Compressor) Code() byte {
	return 3
}

func (Compressor) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (Compressor) Uncompress(data []byte) ([]byte, error) {
	return snappy.Decode(nil, data)
}
