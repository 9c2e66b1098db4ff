package compress

// Compressor -> compression algorithm abstract
// Code is written into the message header, so it must be unique per algorithm.
type Compressor interface {
	Code() byte
	Compress(data []byte) ([]byte, error)
	Uncompress(data []byte) ([]byte, error)
}

var _ Compressor = DoNothingCompressor{}

// DoNothingCompressor passes data through, it saves nil checks on the call path
type DoNothingCompressor struct{}

func (DoNothingCompressor) Code() byte {
	return 0
}

func (DoNothingCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (DoNothingCompressor) Uncompress(data []byte) ([]byte, error) {
	return data, nil
}
