package codec

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNilIO indicates that NewReader/NewWriter was called with an nil interface
	ErrNilIO = errors.New("codec: NewReader/NewWriter called with a nil io.Reader/io.Writer")

	// ErrSizeTooSmall indicates a size conflict with bufio
	ErrSizeTooSmall = errors.New("codec: NewReaderSize with a size smaller than 16 conflict with bufio")

	// ErrAlreadyBuffered indicates that NewReader/NewWriter was called with an already-buffered
	// reader/writer, which would lead to unpredictable behavior and performance issues.
	ErrAlreadyBuffered = errors.New("codec: reader or writer is already buffered")

	// ErrWriteToNil indicates a WriteTo operation was attempted on a nil io.Writer.
	ErrWriteToNil = errors.New("codec: WriteTo called with a nil io.Writer")

	// ErrReadToNil indicates a ReadTo operation was attempted on a nil io.ReaderFrom.
	ErrReadToNil = errors.New("codec: ReadTo called with a nil io.ReaderFrom")

	// ErrUnsupportedNegativeSeek indicates a backward seek was attempted on a forward-only seeker.
	ErrUnsupportedNegativeSeek = errors.New("codec: unsupported negative offset for forward-only seeker")

	// ErrInvalidSeek indicates a seek was attempted to invalid position.
	ErrInvalidSeek = errors.New("codec: seek to a invalid position")

	// ErrInvalidWhence indicates that an invalid 'whence' parameter was provided to a Seek operation.
	ErrInvalidWhence = errors.New("codec: unsupported whence for forward-only seeker")

	// ErrInvalidWrite indicates that an io.Writer returned an invalid (negative) count from Write.
	ErrInvalidWrite = errors.New("codec: writer returned invalid count from Write")

	// ErrInvalidRead indicates that an io.Reader returned an invalid (negative or outbound) count from Read.
	ErrInvalidRead = errors.New("codec: reader returned invalid count from Read")

	// ErrDiscardNegative indicates a Discard operation was attempted with a negative byte count.
	ErrDiscardNegative = errors.New("codec: cannot discard negative number of bytes")

	// ErrTrailingData is returned by Unmarshal when bytes remain after the value was decoded.
	ErrTrailingData = errors.New("codec: trailing data found after decoding")

	// ErrTruncatedData indicates that a read could not complete because the source
	// ended before the fixed or declared width was available.
	ErrTruncatedData = errors.New("codec: truncated data")

	// ErrVarintOverflow indicates a varint that does not fit in 64 bits.
	ErrVarintOverflow = errors.New("codec: varint overflows uint64")

	// ErrVarintNonCanonical indicates a varint with a redundant trailing zero group.
	ErrVarintNonCanonical = errors.New("codec: non-canonical varint")

	// ErrInputTooLarge is returned by ReadAllLimited when the source holds more
	// than the allowed number of bytes.
	ErrInputTooLarge = errors.New("codec: input exceeds limit")

	// ErrLengthTooLarge indicates a length prefix larger than the input that follows it.
	ErrLengthTooLarge = errors.New("codec: length prefix exceeds remaining input")
)

// Truncated converts end-of-stream conditions reported by a reader into
// ErrTruncatedData; other errors pass through unchanged.
// The result still matches io.ErrUnexpectedEOF.
func Truncated(err error, want int) error {
	if err != io.EOF && err != io.ErrUnexpectedEOF {
		return err
	}
	if want <= 0 {
		return fmt.Errorf("%w: %w", ErrTruncatedData, io.ErrUnexpectedEOF)
	}
	return fmt.Errorf("%w: need %d bytes: %w", ErrTruncatedData, want, io.ErrUnexpectedEOF)
}
