package message

import (
	"bytes"
	"encoding/binary"

	"channelcall/internal/errs"
)

const (
	// fixed part of every header: head length, body length, message id,
	// version, compressor, serializer
	fixedHeaderLength = 15

	splitter     = '\n'
	pairSplitter = '\r'
)

// Request ->
type Request struct {
	// header
	HeadLength uint32
	BodyLength uint32
	MessageId  uint32
	// one byte each
	Version    uint8
	Compresser uint8
	Serializer uint8

	ServiceName string
	MethodName  string

	// extension fields for custom metadata, e.g. deadline or one-way
	Meta map[string]string

	// body
	Data []byte
}

func EncodeReq(req *Request) []byte {
	bs := make([]byte, req.HeadLength+req.BodyLength)
	// 1. head length, four bytes
	binary.BigEndian.PutUint32(bs[:4], req.HeadLength)
	// 2. body length, four bytes
	binary.BigEndian.PutUint32(bs[4:8], req.BodyLength)
	// 3. message id, four bytes
	binary.BigEndian.PutUint32(bs[8:12], req.MessageId)
	// 4. version, compressor and serializer are single bytes
	bs[12] = req.Version
	bs[13] = req.Compresser
	bs[14] = req.Serializer

	cur := bs[fixedHeaderLength:]
	copy(cur, req.ServiceName)
	cur = cur[len(req.ServiceName):]
	cur[0] = splitter
	cur = cur[1:]
	copy(cur, req.MethodName)
	cur = cur[len(req.MethodName):]
	cur[0] = splitter
	cur = cur[1:]

	for key, value := range req.Meta {
		copy(cur, key)
		cur = cur[len(key):]
		cur[0] = pairSplitter
		cur = cur[1:]
		copy(cur, value)
		cur = cur[len(value):]
		cur[0] = splitter
		cur = cur[1:]
	}
	copy(cur, req.Data)
	return bs
}

func DecodeReq(bs []byte) (*Request, error) {
	if len(bs) < fixedHeaderLength {
		return nil, errs.InvalidMessage
	}
	req := &Request{}
	req.HeadLength = binary.BigEndian.Uint32(bs[:4])
	req.BodyLength = binary.BigEndian.Uint32(bs[4:8])
	if int(req.HeadLength) < fixedHeaderLength || uint64(req.HeadLength)+uint64(req.BodyLength) != uint64(len(bs)) {
		return nil, errs.InvalidMessage
	}
	req.MessageId = binary.BigEndian.Uint32(bs[8:12])
	req.Version = bs[12]
	req.Compresser = bs[13]
	req.Serializer = bs[14]

	header := bs[fixedHeaderLength:req.HeadLength]
	index := bytes.IndexByte(header, splitter)
	if index == -1 {
		return nil, errs.InvalidMessage
	}
	req.ServiceName = string(header[:index])
	// +1 skips the splitter
	header = header[index+1:]

	index = bytes.IndexByte(header, splitter)
	if index == -1 {
		return nil, errs.InvalidMessage
	}
	req.MethodName = string(header[:index])
	header = header[index+1:]

	index = bytes.IndexByte(header, splitter)
	if index != -1 {
		meta := make(map[string]string, 4)
		for index != -1 {
			pair := header[:index]
			pairIndex := bytes.IndexByte(pair, pairSplitter)
			if pairIndex == -1 {
				return nil, errs.InvalidMessage
			}
			meta[string(pair[:pairIndex])] = string(pair[pairIndex+1:])
			header = header[index+1:]
			index = bytes.IndexByte(header, splitter)
		}
		req.Meta = meta
	}
	if req.BodyLength != 0 {
		req.Data = bs[req.HeadLength:]
	}
	return req, nil
}

func (req *Request) CalculateHeaderLength() {
	// do not forget the splitters
	headLength := fixedHeaderLength + len(req.ServiceName) + 1 + len(req.MethodName) + 1
	for key, value := range req.Meta {
		// key, pair splitter, value, splitter
		headLength += len(key) + 1 + len(value) + 1
	}
	req.HeadLength = uint32(headLength)
}

func (req *Request) CalculateBodyLength() {
	req.BodyLength = uint32(len(req.Data))
}
