package codec

import (
	"encoding/binary"
	"io"
	"math/bits"

	"golang.org/x/exp/constraints"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
	// Order is the default byte order. Cryptonote integers are little-endian.
	Order binary.ByteOrder = LE
)

const BUFFER_SIZE = 4096

var discard [BUFFER_SIZE]byte

// Discard skips n bytes of r.
func Discard(r io.Reader, n int64) (int64, error) {
	if n == 0 {
		return 0, nil
	}
	if n < 0 {
		return 0, ErrDiscardNegative
	}
	if n <= BUFFER_SIZE {
		skip, err := io.ReadFull(r, discard[:n])
		return int64(skip), err
	}
	return io.CopyN(io.Discard, r, n)
}

// VarintSize returns the number of bytes v occupies as an unsigned LEB128
// varint.
func VarintSize[T constraints.Unsigned](v T) int {
	n := bits.Len64(uint64(v))
	if n == 0 {
		return 1
	}
	return (n + 6) / 7
}

// LengthSize is VarintSize for a non-negative int length.
func LengthSize[T constraints.Signed](n T) int {
	if n < 0 {
		return 1
	}
	return VarintSize(uint64(n))
}
