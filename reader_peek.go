package codec

import (
	"io"
)

// PeekableReader lets a caller look at the head of a stream before choosing
// a decoder, e.g. to sniff a format signature.
type PeekableReader struct {
	R io.Reader // The underlying reader.
	B []byte    // Peeked bytes not yet consumed.
}

// PeekReader returns a PeekableReader. If the given reader is already a
// PeekableReader, it is returned directly.
func PeekReader(r io.Reader) *PeekableReader {
	if pr, ok := r.(*PeekableReader); ok {
		return pr
	}
	return &PeekableReader{R: r}
}

// Peek returns up to n bytes without advancing the reader. Fewer than n
// bytes are returned together with the error that stopped the read.
func (r *PeekableReader) Peek(n int) ([]byte, error) {
	if len(r.B) >= n {
		return r.B[:n], nil
	}

	i := len(r.B)
	r.B = append(r.B, make([]byte, n-i)...)
	read, err := io.ReadFull(r.R, r.B[i:])
	r.B = r.B[:i+read]
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return r.B, err
}

// Buffered returns the number of peeked bytes not yet consumed.
func (r *PeekableReader) Buffered() int { return len(r.B) }

// Close closes the underlying reader if it implements io.Closer.
func (r *PeekableReader) Close() error {
	if c, ok := r.R.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Read drains the peek buffer before reading from the underlying reader.
func (r *PeekableReader) Read(p []byte) (n int, err error) {
	if len(r.B) > 0 {
		n = copy(p, r.B)
		r.B = r.B[n:]
		if len(r.B) == 0 {
			r.B = nil
		}
		return n, nil
	}
	return r.R.Read(p)
}

// WriteTo writes the peek buffer and then the rest of the stream to w.
func (r *PeekableReader) WriteTo(w io.Writer) (n int64, err error) {
	if len(r.B) > 0 {
		written, err := w.Write(r.B)
		n = int64(written)
		r.B = r.B[written:]
		if err != nil {
			return n, err
		}
		if len(r.B) > 0 {
			return n, io.ErrShortWrite
		}
		r.B = nil
	}

	if wt, ok := r.R.(io.WriterTo); ok {
		m, err := wt.WriteTo(w)
		return n + m, err
	}
	if rf, ok := w.(io.ReaderFrom); ok {
		m, err := rf.ReadFrom(r.R)
		return n + m, err
	}

	bufPtr := bufPool.Get().(*[]byte)
	defer bufPool.Put(bufPtr)
	m, err := io.CopyBuffer(w, struct{ io.Reader }{r.R}, *bufPtr)
	return n + m, err
}
