package codec

import (
	"fmt"
	"io"
)

// Marshal returns the encoding of v as a fresh slice.
func Marshal(v io.WriterTo) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	w := NewBufferSink(buf)
	w.WriteFrom(v)
	if _, err := w.Result(); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.Bytes()...), nil
}

// Unmarshal decodes data into v and requires that v consumes all of it.
func Unmarshal(data []byte, v io.ReaderFrom) error {
	r := NewBytesCursor(data)
	r.ReadTo(v)
	if err := r.Err(); err != nil {
		return err
	}
	if rest, _ := r.Remaining(); rest > 0 {
		return fmt.Errorf("%w: %d bytes after offset %d", ErrTrailingData, rest, r.Count())
	}
	return nil
}

// MarshalBinaryGeneric provides a generic `encoding.BinaryMarshaler` implementation
// for self-sizing values.
func MarshalBinaryGeneric[T interface {
	Size() int
	io.WriterTo
}](v T) ([]byte, error) {
	expectedSize := v.Size()
	w := NewBytesWriter(make([]byte, expectedSize))
	n, err := v.WriteTo(w)
	if err != nil {
		return nil, err
	}
	if n < int64(expectedSize) {
		return nil, fmt.Errorf("%w: expected %d bytes, but wrote %d", ErrTruncatedData, expectedSize, n)
	}
	return w.Bytes(), nil
}

// MarshalToGeneric provides a fallback implementation for the MarshalTo method.
func MarshalToGeneric[T interface {
	Size() int
	io.WriterTo
}](v T, p []byte) (int, error) {
	size := v.Size()
	if len(p) < size {
		return 0, io.ErrShortWrite
	}
	w := NewBytesWriter(p)
	n, err := v.WriteTo(w)
	if err != nil {
		return int(n), err
	}
	if n < int64(size) {
		return int(n), io.ErrShortWrite
	}
	return int(n), nil
}
