package grpc

import (
	"encoding/json"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// codecName is the content subtype desk clients send: application/grpc+json.
const codecName = "json"

func init() { encoding.RegisterCodec(jsonCodec{}) }

// jsonCodec lets the desk messages travel as plain structs without protoc output.
type jsonCodec struct{}

func (jsonCodec) Name() string                       { return codecName }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// JSONCallOption selects the JSON codec for a client call.
func JSONCallOption() grpclib.CallOption {
	return grpclib.CallContentSubtype(codecName)
}
