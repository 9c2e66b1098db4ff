package message

import (
	"encoding/binary"

	"channelcall/internal/errs"
)

// Response ->
type Response struct {
	HeadLength uint32
	BodyLength uint32
	MessageId  uint32
	Version    uint8
	Compresser uint8
	Serializer uint8
	// Error is the remote error message, it lives in the header
	Error []byte
	Data  []byte
}

func EncodeResp(resp *Response) []byte {
	bs := make([]byte, resp.HeadLength+resp.BodyLength)
	binary.BigEndian.PutUint32(bs[:4], resp.HeadLength)
	binary.BigEndian.PutUint32(bs[4:8], resp.BodyLength)
	binary.BigEndian.PutUint32(bs[8:12], resp.MessageId)
	bs[12] = resp.Version
	bs[13] = resp.Compresser
	bs[14] = resp.Serializer

	// the head length separates error and data, no splitter needed
	cur := bs[fixedHeaderLength:]
	copy(cur, resp.Error)
	cur = cur[len(resp.Error):]
	copy(cur, resp.Data)
	return bs
}

func DecodeResp(bs []byte) (*Response, error) {
	if len(bs) < fixedHeaderLength {
		return nil, errs.InvalidMessage
	}
	resp := &Response{}
	resp.HeadLength = binary.BigEndian.Uint32(bs[:4])
	resp.BodyLength = binary.BigEndian.Uint32(bs[4:8])
	if int(resp.HeadLength) < fixedHeaderLength || uint64(resp.HeadLength)+uint64(resp.BodyLength) != uint64(len(bs)) {
		return nil, errs.InvalidMessage
	}
	resp.MessageId = binary.BigEndian.Uint32(bs[8:12])
	resp.Version = bs[12]
	resp.Compresser = bs[13]
	resp.Serializer = bs[14]
	if resp.HeadLength > fixedHeaderLength {
		resp.Error = bs[fixedHeaderLength:resp.HeadLength]
	}
	if resp.BodyLength != 0 {
		resp.Data = bs[resp.HeadLength:]
	}
	return resp, nil
}

func (resp *Response) CalculateHeaderLength() {
	resp.HeadLength = fixedHeaderLength + uint32(len(resp.Error))
}

func (resp *Response) CalculateBodyLength() {
	resp.BodyLength = uint32(len(resp.Data))
}
