package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// JSONCodec marshals plain Go messages with encoding/json. It registers under the
// "json" name, so Connect clients talk to the handlers with application/json bodies.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

func withJSON[T any](opts []T, codec T) []T {
	return append([]T{codec}, opts...)
}
