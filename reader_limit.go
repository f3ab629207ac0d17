package codec

import (
	"fmt"
	"io"
)

// LimitedReader caps how much of a source a decoder may consume.
type LimitedReader struct {
	*io.LimitedReader
}

func LimitReader(r io.Reader, n int64) *LimitedReader {
	return &LimitedReader{&io.LimitedReader{R: r, N: n}}
}

// ReadAllLimited reads r to the end, failing with ErrInputTooLarge instead
// of returning a silently truncated prefix when r holds more than limit bytes.
func ReadAllLimited(r io.Reader, limit int64) ([]byte, error) {
	lr := LimitReader(r, limit+1)
	buf := getBuffer()
	defer putBuffer(buf)
	if _, err := lr.WriteTo(buf); err != nil {
		return nil, err
	}
	if int64(buf.Len()) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, limit)
	}
	return append([]byte(nil), buf.Bytes()...), nil
}

// Close closes the underlying reader if it implements io.Closer.
func (r *LimitedReader) Close() error {
	if c, ok := r.R.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// WriteTo copies the remaining allowance to w, preferring w's ReadFrom.
func (r *LimitedReader) WriteTo(w io.Writer) (n int64, err error) {
	if rf, ok := w.(io.ReaderFrom); ok {
		return rf.ReadFrom(r.LimitedReader)
	}

	bufPtr := bufPool.Get().(*[]byte)
	defer bufPool.Put(bufPtr)
	return io.CopyBuffer(w, r.LimitedReader, *bufPtr)
}
