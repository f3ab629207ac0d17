package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// sizeCache avoids the cost of reflection in binary.Size on every call.
var sizeCache = xsync.NewMap[reflect.Type, int]()

// Fixed is a Codec for any Payload made only of fixed-size fields, such as
// a public key or a small header. Fields are encoded in Order with no
// framing.
//
// Payload MUST NOT contain slices, maps or strings; binary.Size rejects them.
type Fixed[Payload any] struct {
	Payload Payload
}

var _ Codec = (*Fixed[struct{}])(nil)

// Size returns the fixed size of the payload in bytes. The result is cached
// per payload type.
func (c *Fixed[Payload]) Size() int {
	bodyType := reflect.TypeOf((*Payload)(nil)).Elem()
	if size, ok := sizeCache.Load(bodyType); ok {
		return size
	}
	size := binary.Size(&c.Payload)
	sizeCache.Store(bodyType, size)
	return size
}

func (c *Fixed[Payload]) MarshalBinary() ([]byte, error) {
	buf := make([]byte, c.Size())
	if _, err := binary.Encode(buf, Order, &c.Payload); err != nil {
		return nil, io.ErrShortWrite
	}
	return buf, nil
}

// UnmarshalBinary requires data to hold exactly one payload.
func (c *Fixed[Payload]) UnmarshalBinary(data []byte) error {
	n, err := binary.Decode(data, Order, &c.Payload)
	if err != nil {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedData, c.Size(), len(data))
	}
	if len(data) > n {
		return fmt.Errorf("%w: %d bytes after offset %d", ErrTrailingData, len(data)-n, n)
	}
	return nil
}

// ReadFrom reads exactly Size bytes from r. On a short read the count
// reports what was consumed and the payload is left untouched.
func (c *Fixed[Payload]) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, c.Size())
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return int64(n), Truncated(err, len(buf))
	}
	if _, err := binary.Decode(buf, Order, &c.Payload); err != nil {
		return int64(n), err
	}
	return int64(n), nil
}

func (c *Fixed[Payload]) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, Order, &c.Payload); err != nil {
		return 0, err
	}
	return int64(c.Size()), nil
}

func (c *Fixed[Payload]) MarshalTo(p []byte) (int, error) {
	n, err := binary.Encode(p, Order, &c.Payload)
	if err != nil {
		return n, io.ErrShortWrite
	}
	return n, nil
}
