package codec

import "io"

// BytesReader is the in-memory source behind NewBytesCursor and Unmarshal.
// Because its length is known, cursors over it can reject length prefixes
// that promise more bytes than remain.
type BytesReader struct {
	buf []byte
	off int
}

func NewBytesReader(b []byte) *BytesReader {
	return &BytesReader{buf: b}
}

func (r *BytesReader) Close() error { return nil }

// rest returns the unread tail of the slice.
func (r *BytesReader) rest() []byte {
	if r.off >= len(r.buf) {
		return nil
	}
	return r.buf[r.off:]
}

func (r *BytesReader) Read(p []byte) (int, error) {
	tail := r.rest()
	if len(tail) == 0 {
		return 0, io.EOF
	}
	n := copy(p, tail)
	r.off += n
	return n, nil
}

func (r *BytesReader) ReadByte() (byte, error) {
	tail := r.rest()
	if len(tail) == 0 {
		return 0, io.EOF
	}
	r.off++
	return tail[0], nil
}

func (r *BytesReader) WriteTo(w io.Writer) (int64, error) {
	tail := r.rest()
	if len(tail) == 0 {
		return 0, nil
	}
	n, err := w.Write(tail)
	if n < 0 || n > len(tail) {
		return 0, ErrInvalidRead
	}
	r.off += n
	return int64(n), err
}

// Seek moves within the slice. Positions past the end are allowed and read
// as end of input.
func (r *BytesReader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += int64(r.off)
	case io.SeekEnd:
		offset += int64(len(r.buf))
	default:
		return int64(r.off), ErrInvalidWhence
	}
	if offset < 0 {
		return int64(r.off), ErrInvalidSeek
	}
	r.off = int(offset)
	return offset, nil
}

// Offset returns the number of bytes consumed.
func (r *BytesReader) Offset() int { return min(r.off, len(r.buf)) }

// Size returns the length of the whole slice.
func (r *BytesReader) Size() int { return len(r.buf) }

// Available returns the number of unread bytes.
func (r *BytesReader) Available() int { return len(r.rest()) }
