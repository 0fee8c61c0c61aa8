package codec

import (
	"bytes"
	"encoding/gob"
)

// Gob returns a Codec using Go's binary gob format. Only suitable when
// every reader of the backing file is a Go program.
func Gob() Codec {
	return gobCodec{}
}

type gobCodec struct{}

func (gobCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gobCodec) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
