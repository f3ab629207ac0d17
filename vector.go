package codec

import (
	"io"
)

// Vector is a varint-count-prefixed sequence of values, the wire form of a
// cryptonote std::vector. PT is the pointer type of T that carries the
// element codec.
type Vector[T any, PT interface {
	*T
	Stream
	Sizer
}] struct {
	Items []T
}

var _ Codec = (*Vector[Fixed[uint32], *Fixed[uint32]])(nil)

// preallocLimit caps the capacity reserved before any element is decoded.
const preallocLimit = 1024

// NewVector wraps items without copying them.
func NewVector[T any, PT interface {
	*T
	Stream
	Sizer
}](items []T) *Vector[T, PT] {
	return &Vector[T, PT]{Items: items}
}

func (v *Vector[T, PT]) Len() int {
	return len(v.Items)
}

// Size returns the encoded size, count prefix included.
func (v *Vector[T, PT]) Size() int {
	size := LengthSize(len(v.Items))
	for i := range v.Items {
		size += PT(&v.Items[i]).Size()
	}
	return size
}

func (v *Vector[T, PT]) WriteTo(writer io.Writer) (int64, error) {
	w, err := NewWriter(writer)
	if err != nil {
		return 0, err
	}
	w.WriteVarint(uint64(len(v.Items)))
	for i := range v.Items {
		w.WriteFrom(PT(&v.Items[i]))
	}
	return w.Result()
}

// ReadFrom replaces Items with the decoded sequence. The count prefix is
// checked against the remaining input before anything is allocated.
func (v *Vector[T, PT]) ReadFrom(reader io.Reader) (int64, error) {
	r, err := NewReader(reader)
	if err != nil {
		return 0, err
	}

	var zero T
	n := r.ReadLength(PT(&zero).Size())
	items := make([]T, 0, min(n, preallocLimit))
	for i := 0; i < n && r.Err() == nil; i++ {
		var item T
		r.ReadTo(PT(&item))
		items = append(items, item)
	}
	if err := r.Err(); err != nil {
		return r.Count(), err
	}
	if len(items) == 0 {
		items = nil
	}
	v.Items = items
	return r.Count(), nil
}

func (v *Vector[T, PT]) MarshalBinary() ([]byte, error) {
	return MarshalBinaryGeneric(v)
}

func (v *Vector[T, PT]) UnmarshalBinary(data []byte) error {
	return Unmarshal(data, v)
}

func (v *Vector[T, PT]) MarshalTo(buf []byte) (int, error) {
	return MarshalToGeneric(v, buf)
}
