package codec

import "encoding/json"

// JSON returns a Codec using JSON encoding. Values are human-readable in
// the backing database at the cost of size and speed.
func JSON() Codec {
	return jsonCodec{}
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
