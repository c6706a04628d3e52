package gymenv

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec 以普通Go结构体为消息的JSON编解码器，替换connect默认的protojson
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string {
	return "json"
}

func (jsonCodec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (jsonCodec) Unmarshal(data []byte, message any) error {
	return json.Unmarshal(data, message)
}
