// Package apiconnect wires the hotelbilling services to connect: procedure
// names, handler constructors and typed clients. Messages travel as JSON.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// CodecName is the codec name clients and handlers negotiate; it selects the
// application/json content type.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Name() string { return CodecName }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}

// Codec returns the JSON codec used for api messages.
func Codec() connect.Codec {
	return jsonCodec{}
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec())}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec())}, opts...)
}
