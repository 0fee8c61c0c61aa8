// Package codec provides the pluggable value encodings used by the
// typed shelf. Stored values are opaque byte strings; a Codec decides
// how structured values map onto them.
package codec

// Codec converts values to and from opaque byte strings.
type Codec interface {
	// Marshal serializes v into a byte slice.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes data into the value pointed to by v.
	Unmarshal(data []byte, v any) error
}
