package storage

import (
	"bytes"
	"fmt"

	codec "github.com/oy3o/cnwire"
)

const (
	SignatureA    uint32 = 0x01011101
	SignatureB    uint32 = 0x01020101
	FormatVersion uint8  = 1

	headerSize = 9

	// size marks in the two low bits of a size-marked varint
	markByte  = 0
	markWord  = 1
	markDword = 2
	markInt64 = 3

	maxSize = 1<<62 - 1

	maxNameLen = 255
)

// DecodeOptions bounds the work Unmarshal is willing to do on hostile input.
type DecodeOptions struct {
	// MaxDepth is the deepest allowed nesting of sections and arrays; the
	// root section is depth 1.
	MaxDepth int
}

// DefaultDecodeOptions matches the recursion limit of the reference node.
var DefaultDecodeOptions = DecodeOptions{MaxDepth: 100}

// Marshal encodes root with the portable storage header.
func Marshal(root *Section) ([]byte, error) {
	var buf bytes.Buffer
	w := codec.NewBufferSink(&buf)
	w.WriteUint32(SignatureA)
	w.WriteUint32(SignatureB)
	w.WriteUint8(FormatVersion)

	e := encoder{w: w}
	if err := e.section(root); err != nil {
		return nil, err
	}
	if _, err := w.Result(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a portable storage document using DefaultDecodeOptions.
func Unmarshal(data []byte) (*Section, error) {
	return DefaultDecodeOptions.Unmarshal(data)
}

// Unmarshal decodes a portable storage document. The whole input must be
// consumed.
func (o DecodeOptions) Unmarshal(data []byte) (*Section, error) {
	r := codec.NewBytesCursor(data)

	var a, b uint32
	var version uint8
	r.ReadUint32(&a)
	r.ReadUint32(&b)
	r.ReadUint8(&version)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if a != SignatureA || b != SignatureB {
		return nil, fmt.Errorf("%w: %08x %08x", ErrBadSignature, a, b)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, version)
	}

	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultDecodeOptions.MaxDepth
	}
	d := decoder{r: r, opts: o}
	root, err := d.section(1)
	if err != nil {
		return nil, err
	}
	if rest, _ := r.Remaining(); rest > 0 {
		return nil, fmt.Errorf("%w: %d bytes after offset %d", codec.ErrTrailingData, rest, r.Count())
	}
	return root, nil
}

// HasSignature reports whether head starts with the portable storage header.
func HasSignature(head []byte) bool {
	if len(head) < headerSize {
		return false
	}
	return codec.LE.Uint32(head[0:4]) == SignatureA &&
		codec.LE.Uint32(head[4:8]) == SignatureB &&
		head[8] == FormatVersion
}

type encoder struct {
	w *codec.Writer
}

func (e *encoder) size(n uint64) error {
	switch {
	case n <= 1<<6-1:
		e.w.WriteUint8(uint8(n<<2 | markByte))
	case n <= 1<<14-1:
		e.w.WriteUint16(uint16(n<<2 | markWord))
	case n <= 1<<30-1:
		e.w.WriteUint32(uint32(n<<2 | markDword))
	case n <= maxSize:
		e.w.WriteUint64(n<<2 | markInt64)
	default:
		return fmt.Errorf("%w: %d", ErrSizeTooLarge, n)
	}
	return nil
}

func (e *encoder) section(s *Section) error {
	if s == nil {
		s = &Section{}
	}
	if err := e.size(uint64(s.Len())); err != nil {
		return err
	}
	for _, name := range s.names {
		if len(name) > maxNameLen {
			return fmt.Errorf("%w: %d bytes", ErrNameTooLong, len(name))
		}
		e.w.WriteUint8(uint8(len(name)))
		e.w.WriteString(name)
		if err := e.entry(s.entries[name], true); err != nil {
			return fmt.Errorf("storage: entry %q: %w", name, err)
		}
	}
	return e.w.Err()
}

func (e *encoder) entry(v Entry, typed bool) error {
	if typed {
		switch v := v.(type) {
		case nil:
			return ErrUnknownKind
		case Array:
			if !v.Elem.Valid() {
				return fmt.Errorf("%w: array of %s", ErrUnknownKind, v.Elem)
			}
			e.w.WriteUint8(arrayFlag | uint8(v.Elem))
		default:
			e.w.WriteUint8(uint8(v.Kind()))
		}
	}

	switch v := v.(type) {
	case Int64:
		e.w.WriteInt64(int64(v))
	case Int32:
		e.w.WriteInt32(int32(v))
	case Int16:
		e.w.WriteInt16(int16(v))
	case Int8:
		e.w.WriteInt8(int8(v))
	case Uint64:
		e.w.WriteUint64(uint64(v))
	case Uint32:
		e.w.WriteUint32(uint32(v))
	case Uint16:
		e.w.WriteUint16(uint16(v))
	case Uint8:
		e.w.WriteUint8(uint8(v))
	case Double:
		e.w.WriteFloat64(float64(v))
	case Bool:
		e.w.WriteBool(bool(v))
	case Buf:
		if err := e.size(uint64(len(v))); err != nil {
			return err
		}
		e.w.WriteBytes(v)
	case *Section:
		return e.section(v)
	case Array:
		if err := e.size(uint64(len(v.Entries))); err != nil {
			return err
		}
		for i, el := range v.Entries {
			if kindOf(el) != v.Elem {
				return fmt.Errorf("%w: element %d is %s, want %s", ErrMixedArray, i, kindOf(el), v.Elem)
			}
			// nested arrays carry their own element type byte
			if err := e.entry(el, v.Elem == KindArray); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnknownKind, v)
	}
	return e.w.Err()
}

type decoder struct {
	r    *codec.Reader
	opts DecodeOptions
}

// size reads a size-marked varint.
func (d *decoder) size() uint64 {
	var first uint8
	d.r.ReadUint8(&first)
	if d.r.Err() != nil {
		return 0
	}
	var buf [8]byte
	buf[0] = first
	switch first & 3 {
	case markWord:
		d.r.ReadFull(buf[1:2])
	case markDword:
		d.r.ReadFull(buf[1:4])
	case markInt64:
		d.r.ReadFull(buf[1:8])
	}
	return codec.LE.Uint64(buf[:]) >> 2
}

// count reads a size and checks it against the remaining input, assuming
// each item takes at least unit bytes.
func (d *decoder) count(unit int) (int, error) {
	n := d.size()
	if err := d.r.Err(); err != nil {
		return 0, err
	}
	rest, _ := d.r.Remaining()
	if n > uint64(rest/unit) {
		return 0, fmt.Errorf("%w: %d items of at least %d bytes", codec.ErrLengthTooLarge, n, unit)
	}
	return int(n), nil
}

func (d *decoder) section(depth int) (*Section, error) {
	if depth > d.opts.MaxDepth {
		return nil, fmt.Errorf("%w: %d", ErrDepthExceeded, depth)
	}
	// name length, type byte and at least one value byte
	n, err := d.count(3)
	if err != nil {
		return nil, err
	}
	s := &Section{}
	for range n {
		var nameLen uint8
		d.r.ReadUint8(&nameLen)
		name := string(d.r.ReadBytes(int(nameLen)))
		var typ uint8
		d.r.ReadUint8(&typ)
		if err := d.r.Err(); err != nil {
			return nil, err
		}
		v, err := d.value(typ, depth)
		if err != nil {
			return nil, fmt.Errorf("storage: entry %q: %w", name, err)
		}
		s.Set(name, v)
	}
	return s, nil
}

func (d *decoder) value(typ uint8, depth int) (Entry, error) {
	if typ&arrayFlag != 0 {
		return d.array(Kind(typ&^arrayFlag), depth+1)
	}

	var v Entry
	switch Kind(typ) {
	case KindInt64:
		var x int64
		d.r.ReadInt64(&x)
		v = Int64(x)
	case KindInt32:
		var x int32
		d.r.ReadInt32(&x)
		v = Int32(x)
	case KindInt16:
		var x int16
		d.r.ReadInt16(&x)
		v = Int16(x)
	case KindInt8:
		var x int8
		d.r.ReadInt8(&x)
		v = Int8(x)
	case KindUint64:
		var x uint64
		d.r.ReadUint64(&x)
		v = Uint64(x)
	case KindUint32:
		var x uint32
		d.r.ReadUint32(&x)
		v = Uint32(x)
	case KindUint16:
		var x uint16
		d.r.ReadUint16(&x)
		v = Uint16(x)
	case KindUint8:
		var x uint8
		d.r.ReadUint8(&x)
		v = Uint8(x)
	case KindDouble:
		var x float64
		d.r.ReadFloat64(&x)
		v = Double(x)
	case KindBool:
		var x bool
		d.r.ReadBool(&x)
		v = Bool(x)
	case KindBuf:
		n, err := d.count(1)
		if err != nil {
			return nil, err
		}
		buf := d.r.ReadBytes(n)
		if buf == nil {
			buf = []byte{}
		}
		v = Buf(buf)
	case KindSection:
		return d.section(depth + 1)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, typ)
	}
	if err := d.r.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

// minSize is the smallest encoding of one array element of kind k.
func minSize(k Kind) int {
	switch k {
	case KindInt64, KindUint64, KindDouble:
		return 8
	case KindInt32, KindUint32:
		return 4
	case KindInt16, KindUint16, KindArray:
		return 2
	default:
		return 1
	}
}

func (d *decoder) array(elem Kind, depth int) (Entry, error) {
	if !elem.Valid() {
		return nil, fmt.Errorf("%w: array of %s", ErrUnknownKind, elem)
	}
	if depth > d.opts.MaxDepth {
		return nil, fmt.Errorf("%w: %d", ErrDepthExceeded, depth)
	}
	n, err := d.count(minSize(elem))
	if err != nil {
		return nil, err
	}
	arr := Array{Elem: elem}
	if n > 0 {
		arr.Entries = make([]Entry, 0, n)
	}
	for range n {
		typ := uint8(elem)
		if elem == KindArray {
			d.r.ReadUint8(&typ)
			if err := d.r.Err(); err != nil {
				return nil, err
			}
			if typ&arrayFlag == 0 {
				return nil, fmt.Errorf("%w: element of type %d in array of arrays", ErrMixedArray, typ)
			}
		}
		v, err := d.value(typ, depth)
		if err != nil {
			return nil, err
		}
		arr.Entries = append(arr.Entries, v)
	}
	return arr, nil
}
