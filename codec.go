// Package codec provides the byte cursor and byte sink shared by the
// cryptonote wire codecs.
//
// A Reader is a forward-only cursor and a Writer an append-only sink. Both
// latch the first error they see; later operations become no-ops so a
// decoder can read a whole structure and check Err once. Values that know
// their own layout implement io.ReaderFrom and io.WriterTo and are composed
// with Reader.ReadTo and Writer.WriteFrom, which share a single position
// across nested codecs.
package codec

import (
	"encoding"
	"io"
)

// Sizer is an interface for types that can report their binary size.
// This is useful for pre-allocating buffers before encoding.
type Sizer interface {
	// Size returns the size of the type in bytes when binary encoded.
	Size() int
}

// Marshaler defines the encoding half of a Codec.
type Marshaler interface {
	encoding.BinaryMarshaler // Method: MarshalBinary() ([]byte, error)
	io.WriterTo              // Method: WriteTo(writer io.Writer) (int64, error)

	// MarshalTo encodes into a pre-allocated buffer, returning
	// io.ErrShortWrite if the buffer is too small.
	MarshalTo(buf []byte) (int, error)
}

// Unmarshaler defines the decoding half of a Codec.
type Unmarshaler interface {
	encoding.BinaryUnmarshaler // Method: UnmarshalBinary(data []byte) error
	io.ReaderFrom              // Method: ReadFrom(r io.Reader) (int64, error)
}

// Codec aggregates all binary serialization and deserialization interfaces.
// A type implementing Codec is a complete, self-sizing binary encoder/decoder.
type Codec interface {
	Sizer
	Marshaler
	Unmarshaler
}

// Stream is the minimal capability of a value that can travel over a
// shared cursor: a self-delimiting ReadFrom and an appending WriteTo.
type Stream interface {
	io.ReaderFrom
	io.WriterTo
}
