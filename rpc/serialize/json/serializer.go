package json

import (
	"encoding/json"

	"channelcall/rpc/serialize"
)

var _ serialize.Serializer = Serializer{}

// Serializer -> JSON serialization protocol
type Serializer struct{}

func (Serializer) Code() byte {
	return 1
}

func (Serializer) Encode(val any) ([]byte, error) {
	return json.Marshal(val)
}

func (Serializer) Decode(data []byte, val any) error {
	return json.Unmarshal(data, val)
}
