package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

type reader interface {
	io.Reader
	io.WriterTo
	io.Closer
}

type ReaderPro interface {
	reader
	io.ByteReader
	io.Seeker
	Size() int
}

// Reader is the forward-only cursor used by every decoder in this module.
// It tracks the number of bytes consumed and latches the first error;
// subsequent reads become no-ops.
type Reader struct {
	r     ReaderPro
	count int64 // total bytes read
	err   error // first error encountered.
	order binary.ByteOrder
}

var _ ReaderPro = (*Reader)(nil)

// NewReaderSize creates a new Reader with a specified buffer size.
//
// Sources that are already in memory, or that are already a cursor created by
// this package, are used directly so that nested decoders advance the same
// position. Any other io.Reader is wrapped in a bufio.Reader, which may read
// ahead of the decoded value.
func NewReaderSize(r io.Reader, size int) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}

	switch reader := r.(type) {
	case *Reader:
		return &Reader{r: reader.r, order: reader.order}, nil

	// prevent unpredictable double-buffering.
	case *bufio.Reader:
		if reader.Size() >= size {
			return &Reader{r: &bufioReaderAdapter{Reader: reader}, order: Order}, nil
		}
		return nil, ErrAlreadyBuffered

	// underlying is a buf so we don't need buffering
	case *BytesReader:
		return &Reader{r: reader, order: Order}, nil
	case *bytes.Reader:
		return &Reader{r: &bytesReaderAdapter{reader}, order: Order}, nil
	case *bytes.Buffer:
		return &Reader{r: &bytesBufferReaderAdapter{Buffer: reader}, order: Order}, nil

	// an adapter handed out by Reader.ReadTo
	case ReaderPro:
		return &Reader{r: reader, order: Order}, nil
	}

	if size < 16 {
		return nil, ErrSizeTooSmall
	}

	// bufio must read through the seeker so its offset tracks the source.
	seeker := ForwardSeeker(r)
	return &Reader{
		r:     &bufioReaderAdapter{Reader: bufio.NewReaderSize(seeker, size), seeker: seeker},
		order: Order,
	}, nil
}

// NewReader creates a new Reader with a default buffer size.
func NewReader(r io.Reader) (*Reader, error) {
	return NewReaderSize(r, BUFFER_SIZE)
}

// NewBytesCursor is a shorthand for a Reader over an in-memory slice. It
// never fails.
func NewBytesCursor(b []byte) *Reader {
	return &Reader{r: NewBytesReader(b), order: Order}
}

// WithByteOrder sets the byte order of this cursor's own fixed-width
// integers and returns it for chaining. Nested codecs reached through
// ReadTo see only the raw stream and use the package Order.
func (r *Reader) WithByteOrder(order binary.ByteOrder) *Reader {
	r.order = order
	return r
}

// Close closes the underlying reader if it implements io.Closer.
func (r *Reader) Close() error {
	return r.r.Close()
}

// Read implements the io.Reader interface.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.r.Read(p)
	r.count += int64(n)
	r.setError(err)
	return n, r.err
}

// Seek moves the read pointer.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	if r.err != nil {
		return r.count, r.err
	}
	newPos, err := r.r.Seek(offset, whence)
	r.count = newPos
	r.setError(err)
	return newPos, err
}

// WriteTo implements io.WriterTo for efficient copying.
func (r *Reader) WriteTo(w io.Writer) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if w == nil {
		r.setError(ErrWriteToNil)
		return 0, r.err
	}

	n, err := r.r.WriteTo(w)
	r.count += n
	r.setError(err)
	return n, r.err
}

func (r *Reader) Size() int    { return r.r.Size() }
func (r *Reader) Count() int64 { return r.count }
func (r *Reader) Err() error   { return r.err }
func (r *Reader) IsEOF() bool  { return r.err == io.EOF }

// Remaining reports how many unread bytes the source holds. The second
// result is false for streaming sources whose length is unknown.
func (r *Reader) Remaining() (int, bool) {
	if a, ok := r.r.(interface{ Available() int }); ok {
		return a.Available(), true
	}
	return 0, false
}

// setError records the first non-nil error.
func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// Result returns the total bytes read and the final error state.
func (r *Reader) Result() (int64, error) {
	return r.count, r.err
}

// ReadTo hands the cursor to a self-delimiting decoder. End of input inside
// the decoder is reported as ErrTruncatedData.
func (r *Reader) ReadTo(w io.ReaderFrom) {
	if r.err != nil {
		return
	}
	if w == nil {
		r.setError(ErrReadToNil)
		return
	}
	n, err := w.ReadFrom(r.r)
	r.count += n
	r.setError(Truncated(err, 0))
}

// ReadFull fills dest with exactly len(dest) bytes.
func (r *Reader) ReadFull(dest []byte) {
	if r.err != nil || len(dest) == 0 {
		return
	}
	n, err := io.ReadFull(r.r, dest)
	r.count += int64(n)
	if err != nil {
		r.err = Truncated(err, len(dest))
	}
}

// ReadBytes reads n bytes and returns a new byte slice.
// Large reads grow the result in chunks so a bogus length from a streaming
// source cannot force one huge allocation up front.
func (r *Reader) ReadBytes(n int) []byte {
	if n <= 0 || r.err != nil {
		return nil
	}
	if n <= CHUNK_SIZE {
		buf := make([]byte, n)
		r.ReadFull(buf)
		if r.err != nil {
			return nil
		}
		return buf
	}
	var buf bytes.Buffer
	copied, err := io.CopyN(&buf, r.r, int64(n))
	r.count += copied
	if err != nil {
		r.err = Truncated(err, n)
		return nil
	}
	return buf.Bytes()
}

// ReadLength reads a varint element count and rejects counts that cannot
// be satisfied by the rest of the input when each element takes at least
// unit bytes.
func (r *Reader) ReadLength(unit int) int {
	var n uint64
	r.ReadVarint(&n)
	if r.err != nil {
		return 0
	}
	if unit < 1 {
		unit = 1
	}
	limit := uint64(math.MaxInt32)
	if rem, ok := r.Remaining(); ok {
		limit = uint64(rem / unit)
	}
	if n > limit {
		r.err = fmt.Errorf("%w: %d elements of at least %d bytes", ErrLengthTooLarge, n, unit)
		return 0
	}
	return int(n)
}

// --- Primitive Read Operations ---

// ReadVarint reads an unsigned LEB128 varint, the integer encoding used by
// the cryptonote wire format. Redundant zero groups are rejected.
func (r *Reader) ReadVarint(dest *uint64) {
	if r.err != nil {
		return
	}
	var x uint64
	var s uint
	for i := 0; i < binary.MaxVarintLen64; i++ {
		b, err := r.r.ReadByte()
		if err != nil {
			r.err = Truncated(err, i+1)
			return
		}
		r.count++
		if b < 0x80 {
			if i == binary.MaxVarintLen64-1 && b > 1 {
				r.err = ErrVarintOverflow
				return
			}
			if b == 0 && i > 0 {
				r.err = ErrVarintNonCanonical
				return
			}
			*dest = x | uint64(b)<<s
			return
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	r.err = ErrVarintOverflow
}

func (r *Reader) ReadBool(dest *bool) {
	var b uint8
	r.ReadUint8(&b)
	if r.err == nil {
		*dest = b != 0
	}
}

func (r *Reader) ReadByte() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}
	b, err := r.r.ReadByte()
	if err == nil {
		r.count++
	} else {
		r.err = err
	}
	return b, err
}

func (r *Reader) ReadUint8(dest *uint8) {
	if r.err != nil {
		return
	}
	b, err := r.r.ReadByte()
	if err == nil {
		r.count++
		*dest = b
	} else {
		r.err = Truncated(err, 1)
	}
}

func (r *Reader) ReadUint16(dest *uint16) {
	var buf [2]byte
	r.ReadFull(buf[:])
	if r.err == nil {
		*dest = r.order.Uint16(buf[:])
	}
}

func (r *Reader) ReadUint32(dest *uint32) {
	var buf [4]byte
	r.ReadFull(buf[:])
	if r.err == nil {
		*dest = r.order.Uint32(buf[:])
	}
}

func (r *Reader) ReadUint64(dest *uint64) {
	var buf [8]byte
	r.ReadFull(buf[:])
	if r.err == nil {
		*dest = r.order.Uint64(buf[:])
	}
}

func (r *Reader) ReadInt8(dest *int8) {
	var b uint8
	r.ReadUint8(&b)
	if r.err == nil {
		*dest = int8(b)
	}
}

func (r *Reader) ReadInt16(dest *int16) {
	var v uint16
	r.ReadUint16(&v)
	if r.err == nil {
		*dest = int16(v)
	}
}

func (r *Reader) ReadInt32(dest *int32) {
	var v uint32
	r.ReadUint32(&v)
	if r.err == nil {
		*dest = int32(v)
	}
}

func (r *Reader) ReadInt64(dest *int64) {
	var v uint64
	r.ReadUint64(&v)
	if r.err == nil {
		*dest = int64(v)
	}
}

func (r *Reader) ReadFloat64(dest *float64) {
	var v uint64
	r.ReadUint64(&v)
	if r.err == nil {
		*dest = math.Float64frombits(v)
	}
}
