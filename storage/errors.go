package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongEntryKind indicates an entry of a different kind than the
	// caller can decode. Returned errors are *KindError values that match it.
	ErrWrongEntryKind = errors.New("storage: wrong entry kind")

	// ErrMissingEntry indicates that a section has no entry with the requested name.
	ErrMissingEntry = errors.New("storage: missing entry")

	// ErrOutOfRange indicates an integer entry that does not fit the requested type.
	ErrOutOfRange = errors.New("storage: integer out of range")

	// ErrBadSignature indicates input that does not start with the portable storage signature.
	ErrBadSignature = errors.New("storage: bad signature")

	// ErrBadVersion indicates an unsupported format version byte.
	ErrBadVersion = errors.New("storage: unsupported format version")

	// ErrUnknownKind indicates a type byte outside the known kinds, or an
	// array whose element kind is itself an array.
	ErrUnknownKind = errors.New("storage: unknown entry kind")

	// ErrDepthExceeded indicates sections or arrays nested deeper than allowed.
	ErrDepthExceeded = errors.New("storage: nesting depth exceeded")

	// ErrNameTooLong indicates an entry name longer than 255 bytes.
	ErrNameTooLong = errors.New("storage: entry name too long")

	// ErrMixedArray indicates an array holding an entry of a kind other than its element kind.
	ErrMixedArray = errors.New("storage: array entries do not match element kind")

	// ErrSizeTooLarge indicates a count or length above the format's 2^62-1 limit.
	ErrSizeTooLarge = errors.New("storage: size exceeds format limit")
)

// KindError reports an entry whose kind is not the one a decoder accepts.
type KindError struct {
	Want Kind
	Got  Kind // zero when the entry was nil
}

func (e *KindError) Error() string {
	if e.Got == 0 {
		return fmt.Sprintf("storage: wrong entry kind: want %s, got nothing", e.Want)
	}
	return fmt.Sprintf("storage: wrong entry kind: want %s, got %s", e.Want, e.Got)
}

func (e *KindError) Unwrap() error { return ErrWrongEntryKind }
