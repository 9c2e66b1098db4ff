package tcp

import (
	"encoding/binary"
	"io"

	"channelcall/internal/errs"
)

// lengthBytes holds the head length and the body length of a message
const lengthBytes = 8

// maxMessageLength guards against allocating on a corrupted length prefix
const maxMessageLength = 64 << 20

// ReadMsg reads one whole message, length prefix included.
func ReadMsg(r io.Reader) ([]byte, error) {
	lenBs := make([]byte, lengthBytes)
	if _, err := io.ReadFull(r, lenBs); err != nil {
		return nil, err
	}
	headLength := binary.BigEndian.Uint32(lenBs[:4])
	bodyLength := binary.BigEndian.Uint32(lenBs[4:])
	length := uint64(headLength) + uint64(bodyLength)
	if length < lengthBytes || length > maxMessageLength {
		return nil, errs.ReadLenDataError
	}
	bs := make([]byte, length)
	copy(bs, lenBs)
	if _, err := io.ReadFull(r, bs[lengthBytes:]); err != nil {
		return nil, err
	}
	return bs, nil
}
