package codec

import (
	"bufio"
	"bytes"
	"io"
)

// Adapters give standard library buffers the ReaderPro/WriterPro method
// sets, so a cursor or sink can sit directly on them. Nested codecs receive
// the adapter itself and therefore advance the same position.
type (
	bytesReaderAdapter struct{ *bytes.Reader }

	bytesBufferReaderAdapter struct {
		*bytes.Buffer
		pos int64
	}
	bytesBufferWriterAdapter struct{ *bytes.Buffer }

	bufioReaderAdapter struct {
		*bufio.Reader
		seeker io.ReadSeeker // the source bufio reads from
		pos    int64
	}
	bufioWriterAdapter struct{ *bufio.Writer }
)

// --- bytes.Reader ---

func (r *bytesReaderAdapter) Close() error   { return nil }
func (r *bytesReaderAdapter) Size() int      { return int(r.Reader.Size()) }
func (r *bytesReaderAdapter) Available() int { return r.Len() }

// --- bytes.Buffer as a source ---

func (r *bytesBufferReaderAdapter) Close() error { return nil }
func (r *bytesBufferReaderAdapter) Size() int    { return r.Len() }

// Available reports the unread bytes. It shadows bytes.Buffer.Available,
// which reports spare capacity.
func (r *bytesBufferReaderAdapter) Available() int { return r.Len() }

func (r *bytesBufferReaderAdapter) Read(p []byte) (int, error) {
	n, err := r.Buffer.Read(p)
	r.pos += int64(n)
	return n, err
}

func (r *bytesBufferReaderAdapter) ReadByte() (byte, error) {
	b, err := r.Buffer.ReadByte()
	if err == nil {
		r.pos++
	}
	return b, err
}

func (r *bytesBufferReaderAdapter) WriteTo(w io.Writer) (int64, error) {
	n, err := r.Buffer.WriteTo(w)
	r.pos += n
	return n, err
}

// Seek only moves forward; consumed bytes are gone from the buffer.
func (r *bytesBufferReaderAdapter) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += r.pos
	default:
		return r.pos, ErrInvalidWhence
	}
	skip := offset - r.pos
	if skip < 0 {
		return r.pos, ErrUnsupportedNegativeSeek
	}
	skip = min(skip, int64(r.Len()))
	r.Next(int(skip))
	r.pos += skip
	return r.pos, nil
}

// --- bytes.Buffer as a sink ---

func (w *bytesBufferWriterAdapter) Close() error { return nil }
func (w *bytesBufferWriterAdapter) Flush() error { return nil }
func (w *bytesBufferWriterAdapter) Size() int    { return w.Available() }

// --- bufio ---

func (b *bufioReaderAdapter) Close() error { return nil }
func (b *bufioReaderAdapter) Size() int    { return b.Reader.Size() }

func (b *bufioReaderAdapter) Read(p []byte) (int, error) {
	n, err := b.Reader.Read(p)
	b.pos += int64(n)
	return n, err
}

func (b *bufioReaderAdapter) ReadByte() (byte, error) {
	c, err := b.Reader.ReadByte()
	if err == nil {
		b.pos++
	}
	return c, err
}

func (b *bufioReaderAdapter) WriteTo(w io.Writer) (int64, error) {
	n, err := b.Reader.WriteTo(w)
	b.pos += n
	return n, err
}

// Seek discards within the buffer when it can, and otherwise repositions
// the source and resets the buffer.
func (b *bufioReaderAdapter) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += b.pos
	default:
		return b.pos, ErrInvalidWhence
	}

	if b.pos <= offset && offset < b.pos+int64(b.Buffered()) {
		n, err := b.Discard(int(offset - b.pos))
		b.pos += int64(n)
		return b.pos, err
	}

	if b.seeker == nil {
		if offset < b.pos {
			return b.pos, ErrUnsupportedNegativeSeek
		}
		_, err := Discard(b, offset-b.pos)
		return b.pos, err
	}

	pos, err := b.seeker.Seek(offset, io.SeekStart)
	if err != nil {
		return b.pos, err
	}
	b.Reset(b.seeker)
	b.pos = pos
	return pos, nil
}

func (w *bufioWriterAdapter) Close() error { return nil }
