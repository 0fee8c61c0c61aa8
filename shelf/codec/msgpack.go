package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack returns a Codec using MessagePack encoding, the default for
// typed shelves: compact, fast and language-neutral.
func Msgpack() Codec {
	return msgpackCodec{}
}

type msgpackCodec struct{}

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
