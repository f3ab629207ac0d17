// Package hash defines Hash256, the 32-byte hash that appears in blocks,
// transactions and RPC payloads.
//
// A Hash256 crosses two encodings: the wire blob form (32 raw bytes, width
// known to the reader) and the portable storage form (a length-prefixed
// buffer entry). The two are exposed separately and never share framing.
package hash

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	codec "github.com/oy3o/cnwire"
	"github.com/oy3o/cnwire/storage"
	"golang.org/x/crypto/sha3"
)

// Size is the length of a Hash256 in bytes.
const Size = 32

// Hash256 is an opaque 256-bit value. Every bit pattern is valid; the zero
// value is the all-zero hash.
type Hash256 [Size]byte

// ErrInvalidLength indicates input that is not exactly Size bytes.
var ErrInvalidLength = errors.New("hash: invalid length")

var (
	_ codec.Codec         = (*Hash256)(nil)
	_ storage.Marshaler   = Hash256{}
	_ storage.Unmarshaler = (*Hash256)(nil)
)

// FromBytes copies b into a Hash256. b must be exactly Size bytes long.
func FromBytes(b []byte) (Hash256, error) {
	var h Hash256
	if len(b) != Size {
		return h, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(b), Size)
	}
	copy(h[:], b)
	return h, nil
}

// FromHex parses the 64-character hex form produced by String.
func FromHex(s string) (Hash256, error) {
	var h Hash256
	if err := h.UnmarshalText([]byte(s)); err != nil {
		return Hash256{}, err
	}
	return h, nil
}

// Keccak256 is the cryptonote "fast hash": legacy Keccak-256 over the
// concatenation of data.
func Keccak256(data ...[]byte) Hash256 {
	k := sha3.NewLegacyKeccak256()
	for _, d := range data {
		k.Write(d)
	}
	var h Hash256
	k.Sum(h[:0])
	return h
}

func (h Hash256) Bytes() []byte { return h[:] }

func (h Hash256) String() string { return hex.EncodeToString(h[:]) }

func (h Hash256) IsZero() bool { return h == Hash256{} }

// Compare orders hashes byte-wise.
func (h Hash256) Compare(other Hash256) int { return bytes.Compare(h[:], other[:]) }

func (h Hash256) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(Size))
	hex.Encode(out, h[:])
	return out, nil
}

func (h *Hash256) UnmarshalText(text []byte) error {
	if len(text) != hex.EncodedLen(Size) {
		return fmt.Errorf("%w: got %d hex characters, want %d", ErrInvalidLength, len(text), hex.EncodedLen(Size))
	}
	var v Hash256
	if _, err := hex.Decode(v[:], text); err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	*h = v
	return nil
}

// --- wire blob form ---

// DecodeBlob reads exactly Size bytes from r. Fewer remaining bytes fail
// with codec.ErrTruncatedData.
func DecodeBlob(r *codec.Reader) (Hash256, error) {
	var h Hash256
	r.ReadFull(h[:])
	if err := r.Err(); err != nil {
		return Hash256{}, err
	}
	return h, nil
}

// EncodeBlob appends the raw hash bytes to w.
func (h Hash256) EncodeBlob(w *codec.Writer) {
	w.WriteBytes(h[:])
}

func (h *Hash256) Size() int { return Size }

// ReadFrom reads the blob form. It reads exactly Size bytes, so it is safe
// on a stream shared with other decoders.
func (h *Hash256) ReadFrom(r io.Reader) (int64, error) {
	var v Hash256
	n, err := io.ReadFull(r, v[:])
	if err != nil {
		return int64(n), codec.Truncated(err, Size)
	}
	*h = v
	return int64(n), nil
}

func (h *Hash256) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(h[:])
	if err == nil && n < Size {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

func (h *Hash256) MarshalBinary() ([]byte, error) {
	return bytes.Clone(h[:]), nil
}

func (h *Hash256) UnmarshalBinary(data []byte) error {
	v, err := FromBytes(data)
	if err != nil {
		return err
	}
	*h = v
	return nil
}

func (h *Hash256) MarshalTo(buf []byte) (int, error) {
	if len(buf) < Size {
		return 0, io.ErrShortWrite
	}
	return copy(buf, h[:]), nil
}

// --- portable storage form ---

// MarshalEntry returns the hash as a storage buffer entry.
func (h Hash256) MarshalEntry() storage.Entry {
	return storage.Buf(bytes.Clone(h[:]))
}

// UnmarshalEntry accepts only a buffer entry of exactly Size bytes.
func (h *Hash256) UnmarshalEntry(e storage.Entry) error {
	if err := storage.Expect(e, storage.KindBuf); err != nil {
		return err
	}
	v, err := FromBytes(e.(storage.Buf))
	if err != nil {
		return err
	}
	*h = v
	return nil
}
