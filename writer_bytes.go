package codec

import "io"

// BytesWriter is a sink over a pre-allocated slice, used by MarshalTo and
// MarshalBinaryGeneric. It never grows the slice; a write that does not fit
// is truncated and reported as io.ErrShortWrite.
type BytesWriter struct {
	buf []byte
	off int
}

func NewBytesWriter(p []byte) *BytesWriter {
	return &BytesWriter{buf: p[:cap(p)]}
}

func (w *BytesWriter) Close() error { return nil }
func (w *BytesWriter) Flush() error { return nil }

func (w *BytesWriter) Write(p []byte) (int, error) {
	n := copy(w.buf[w.off:], p)
	w.off += n
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (w *BytesWriter) WriteString(s string) (int, error) {
	n := copy(w.buf[w.off:], s)
	w.off += n
	if n < len(s) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (w *BytesWriter) WriteByte(c byte) error {
	if w.off >= len(w.buf) {
		return io.ErrShortWrite
	}
	w.buf[w.off] = c
	w.off++
	return nil
}

// ReadFrom fills the remaining space from r. Running out of space before r
// is drained is io.ErrShortWrite.
func (w *BytesWriter) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		if w.off >= len(w.buf) {
			var extra [1]byte
			if n, _ := r.Read(extra[:]); n > 0 {
				return total, io.ErrShortWrite
			}
			return total, nil
		}
		n, err := r.Read(w.buf[w.off:])
		if n < 0 {
			return total, ErrInvalidWrite
		}
		w.off += n
		total += int64(n)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Reset lets the slice be reused.
func (w *BytesWriter) Reset() { w.off = 0 }

// Len returns the number of bytes written.
func (w *BytesWriter) Len() int { return w.off }

// Size returns the capacity of the destination slice.
func (w *BytesWriter) Size() int { return len(w.buf) }

func (w *BytesWriter) Available() int { return len(w.buf) - w.off }

// Bytes returns the written prefix of the slice.
func (w *BytesWriter) Bytes() []byte { return w.buf[:w.off] }
