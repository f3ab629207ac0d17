// Package storage implements the portable storage format: a self-describing
// key-value encoding whose entries carry a kind discriminant and, for
// buffers, an explicit length.
package storage

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Kind is the wire type code of an entry.
type Kind uint8

const (
	KindInt64   Kind = 1
	KindInt32   Kind = 2
	KindInt16   Kind = 3
	KindInt8    Kind = 4
	KindUint64  Kind = 5
	KindUint32  Kind = 6
	KindUint16  Kind = 7
	KindUint8   Kind = 8
	KindDouble  Kind = 9
	KindBuf     Kind = 10 // "string" on the wire; arbitrary bytes
	KindBool    Kind = 11
	KindSection Kind = 12
	KindArray   Kind = 13

	// arrayFlag marks an array in a type byte; the low bits carry the
	// element kind.
	arrayFlag = 0x80
)

var kindNames = map[Kind]string{
	KindInt64:   "int64",
	KindInt32:   "int32",
	KindInt16:   "int16",
	KindInt8:    "int8",
	KindUint64:  "uint64",
	KindUint32:  "uint32",
	KindUint16:  "uint16",
	KindUint8:   "uint8",
	KindDouble:  "double",
	KindBuf:     "buf",
	KindBool:    "bool",
	KindSection: "section",
	KindArray:   "array",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Entry is one value of a section. The set of implementations is closed.
type Entry interface {
	Kind() Kind
	isEntry()
}

type (
	Int64  int64
	Int32  int32
	Int16  int16
	Int8   int8
	Uint64 uint64
	Uint32 uint32
	Uint16 uint16
	Uint8  uint8
	Double float64
	Buf    []byte
	Bool   bool
)

// Array is a homogeneous list. Every entry must have kind Elem. The inner
// arrays of an array of arrays may differ in element kind.
type Array struct {
	Elem    Kind
	Entries []Entry
}

func (Int64) Kind() Kind  { return KindInt64 }
func (Int32) Kind() Kind  { return KindInt32 }
func (Int16) Kind() Kind  { return KindInt16 }
func (Int8) Kind() Kind   { return KindInt8 }
func (Uint64) Kind() Kind { return KindUint64 }
func (Uint32) Kind() Kind { return KindUint32 }
func (Uint16) Kind() Kind { return KindUint16 }
func (Uint8) Kind() Kind  { return KindUint8 }
func (Double) Kind() Kind { return KindDouble }
func (Buf) Kind() Kind    { return KindBuf }
func (Bool) Kind() Kind   { return KindBool }
func (Array) Kind() Kind  { return KindArray }

func (Int64) isEntry()  {}
func (Int32) isEntry()  {}
func (Int16) isEntry()  {}
func (Int8) isEntry()   {}
func (Uint64) isEntry() {}
func (Uint32) isEntry() {}
func (Uint16) isEntry() {}
func (Uint8) isEntry()  {}
func (Double) isEntry() {}
func (Buf) isEntry()    {}
func (Bool) isEntry()   {}
func (Array) isEntry()  {}

// Marshaler is implemented by values that can be stored as an entry.
type Marshaler interface {
	MarshalEntry() Entry
}

// Unmarshaler is implemented by values that can be restored from an entry.
type Unmarshaler interface {
	UnmarshalEntry(Entry) error
}

// Expect returns a *KindError unless e has kind want.
func Expect(e Entry, want Kind) error {
	if e == nil {
		return &KindError{Want: want}
	}
	if got := e.Kind(); got != want {
		return &KindError{Want: want, Got: got}
	}
	return nil
}

// Integer converts any integer entry to T, failing with ErrOutOfRange when
// the value does not fit.
func Integer[T constraints.Integer](e Entry) (T, error) {
	var (
		signed   int64
		unsigned uint64
		isSigned bool
	)
	switch v := e.(type) {
	case Int64:
		signed, isSigned = int64(v), true
	case Int32:
		signed, isSigned = int64(v), true
	case Int16:
		signed, isSigned = int64(v), true
	case Int8:
		signed, isSigned = int64(v), true
	case Uint64:
		unsigned = uint64(v)
	case Uint32:
		unsigned = uint64(v)
	case Uint16:
		unsigned = uint64(v)
	case Uint8:
		unsigned = uint64(v)
	default:
		return 0, &KindError{Want: KindInt64, Got: kindOf(e)}
	}

	if isSigned {
		out := T(signed)
		if int64(out) != signed || (signed < 0) != (out < 0) {
			return 0, fmt.Errorf("%w: %d", ErrOutOfRange, signed)
		}
		return out, nil
	}
	out := T(unsigned)
	if uint64(out) != unsigned || out < 0 {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, unsigned)
	}
	return out, nil
}

func kindOf(e Entry) Kind {
	if e == nil {
		return 0
	}
	return e.Kind()
}
