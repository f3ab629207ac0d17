package storage

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	codec "github.com/oy3o/cnwire"
)

var header = []byte{0x01, 0x11, 0x01, 0x01, 0x01, 0x01, 0x02, 0x01, 0x01}

type FormatTestSuite struct {
	suite.Suite
}

func (s *FormatTestSuite) roundTrip(root *Section) *Section {
	data, err := Marshal(root)
	s.Require().NoError(err)
	s.Require().True(HasSignature(data))

	got, err := Unmarshal(data)
	s.Require().NoError(err)
	return got
}

func (s *FormatTestSuite) TestEmptyDocument() {
	data, err := Marshal(NewSection())
	s.Require().NoError(err)
	s.Assert().Equal(append(header, 0x00), data)

	got, err := Unmarshal(data)
	s.Require().NoError(err)
	s.Assert().Zero(got.Len())
}

func (s *FormatTestSuite) TestKnownBytes() {
	root := NewSection()
	root.Set("a", Uint32(0x01020304))
	root.Set("b", Buf("hi"))

	data, err := Marshal(root)
	s.Require().NoError(err)

	want := append([]byte(nil), header...)
	want = append(want,
		// two entries, size-marked
		0x08,
		// name and type
		0x01, 'a', byte(KindUint32),
		0x04, 0x03, 0x02, 0x01,
		0x01, 'b', byte(KindBuf),
		0x08, 'h', 'i', // length 2, size-marked
	)
	s.Assert().Equal(want, data)
}

func (s *FormatTestSuite) TestAllKinds() {
	inner := NewSection()
	inner.Set("nested", Int8(-8))

	root := NewSection()
	root.Set("i64", Int64(math.MinInt64))
	root.Set("i32", Int32(math.MinInt32))
	root.Set("i16", Int16(-16))
	root.Set("i8", Int8(-8))
	root.Set("u64", Uint64(math.MaxUint64))
	root.Set("u32", Uint32(math.MaxUint32))
	root.Set("u16", Uint16(16))
	root.Set("u8", Uint8(8))
	root.Set("double", Double(3.25))
	root.Set("buf", Buf{0x00, 0xFF})
	root.Set("empty", Buf{})
	root.Set("bool", Bool(true))
	root.Set("section", inner)

	got := s.roundTrip(root)
	s.Assert().Equal(root.Names(), got.Names())
	root.Range(func(name string, e Entry) bool {
		v, ok := got.Get(name)
		s.Require().True(ok, name)
		s.Assert().Equal(e, v, name)
		return true
	})
}

func (s *FormatTestSuite) TestArrays() {
	obj := NewSection()
	obj.Set("x", Uint8(1))

	root := NewSection()
	root.Set("ints", Array{Elem: KindUint64, Entries: []Entry{Uint64(1), Uint64(2), Uint64(3)}})
	root.Set("bufs", Array{Elem: KindBuf, Entries: []Entry{Buf("a"), Buf("bc")}})
	root.Set("objs", Array{Elem: KindSection, Entries: []Entry{obj}})
	root.Set("none", Array{Elem: KindBool})

	got := s.roundTrip(root)
	for _, name := range root.Names() {
		want, _ := root.Get(name)
		v, ok := got.Get(name)
		s.Require().True(ok, name)
		s.Assert().Equal(want, v, name)
	}
}

func (s *FormatTestSuite) TestNestedArrays() {
	root := NewSection()
	root.Set("m", Array{Elem: KindArray, Entries: []Entry{
		Array{Elem: KindUint8, Entries: []Entry{Uint8(7)}},
		Array{Elem: KindBuf, Entries: []Entry{Buf("a"), Buf("b")}},
		Array{Elem: KindArray, Entries: []Entry{Array{Elem: KindBool}}},
	}})

	data, err := Marshal(root)
	s.Require().NoError(err)
	s.Assert().Equal(append(append([]byte(nil), header...),
		0x04, 0x01, 'm', 0x80|byte(KindArray), 0x0C,
		0x80|byte(KindUint8), 0x04, 0x07,
		0x80|byte(KindBuf), 0x08, 0x04, 'a', 0x04, 'b',
		0x80|byte(KindArray), 0x04, 0x80|byte(KindBool), 0x00,
	), data)

	got := s.roundTrip(root)
	want, _ := root.Get("m")
	v, ok := got.Get("m")
	s.Require().True(ok)
	s.Assert().Equal(want, v)
}

func (s *FormatTestSuite) TestDecodeArrayOfArrays() {
	data := append(append([]byte(nil), header...),
		0x04, 0x01, 'm',
		0x8D, 0x04,       // array of arrays, one element
		0x88, 0x04, 0x07, // array of uint8 holding 7
	)
	got, err := Unmarshal(data)
	s.Require().NoError(err)

	v, ok := got.Get("m")
	s.Require().True(ok)
	s.Assert().Equal(Array{Elem: KindArray, Entries: []Entry{
		Array{Elem: KindUint8, Entries: []Entry{Uint8(7)}},
	}}, v)
}

func (s *FormatTestSuite) TestLargeSizes() {
	big := bytes.Repeat([]byte{0x5A}, 1<<14)
	root := NewSection()
	root.Set("big", Buf(big))
	root.Set("mid", Buf(bytes.Repeat([]byte{0x01}, 100)))

	got := s.roundTrip(root)
	v, _ := got.Get("big")
	s.Assert().Equal(Buf(big), v)
}

func (s *FormatTestSuite) TestEncodeErrors() {
	s.T().Run("MixedArray", func(t *testing.T) {
		root := NewSection()
		root.Set("bad", Array{Elem: KindUint8, Entries: []Entry{Uint8(1), Uint16(2)}})
		_, err := Marshal(root)
		assert.ErrorIs(t, err, ErrMixedArray)
	})

	s.T().Run("InvalidElemKind", func(t *testing.T) {
		root := NewSection()
		root.Set("bad", Array{Elem: Kind(0)})
		_, err := Marshal(root)
		assert.ErrorIs(t, err, ErrUnknownKind)
	})

	s.T().Run("MixedNestedArray", func(t *testing.T) {
		root := NewSection()
		root.Set("bad", Array{Elem: KindArray, Entries: []Entry{Uint8(1)}})
		_, err := Marshal(root)
		assert.ErrorIs(t, err, ErrMixedArray)
	})

	s.T().Run("NilEntry", func(t *testing.T) {
		root := NewSection()
		root.Set("bad", nil)
		_, err := Marshal(root)
		assert.ErrorIs(t, err, ErrUnknownKind)
	})

	s.T().Run("NameTooLong", func(t *testing.T) {
		root := NewSection()
		root.Set(string(bytes.Repeat([]byte{'n'}, 256)), Bool(true))
		_, err := Marshal(root)
		assert.ErrorIs(t, err, ErrNameTooLong)
	})
}

func (s *FormatTestSuite) TestDecodeErrors() {
	doc := func(body ...byte) []byte { return append(append([]byte(nil), header...), body...) }

	cases := []struct {
		name string
		in   []byte
		err  error
	}{
		{"Empty", nil, codec.ErrTruncatedData},
		{"BadSignature", append([]byte{0x02}, header[1:]...), ErrBadSignature},
		{"BadVersion", append(append([]byte(nil), header[:8]...), 0x02, 0x00), ErrBadVersion},
		{"TrailingData", doc(0x00, 0xFF), codec.ErrTrailingData},
		{"UnknownKind", doc(0x04, 0x01, 'a', 0x0E, 0x00), ErrUnknownKind},
		{"ArrayElemKind", doc(0x04, 0x01, 'a', 0x80|0x0E, 0x00), ErrUnknownKind},
		{"NestedArrayNoFlag", doc(0x04, 0x01, 'a', 0x80|byte(KindArray), 0x04, byte(KindUint8), 0x07), ErrMixedArray},
		{"TruncatedValue", doc(0x04, 0x01, 'a', byte(KindUint32), 0x01, 0x02), codec.ErrTruncatedData},
		{"CountTooLarge", doc(0xFC), codec.ErrLengthTooLarge},
		{"BufTooLarge", doc(0x04, 0x01, 'a', byte(KindBuf), 0x40, 'x'), codec.ErrLengthTooLarge},
	}
	for _, tc := range cases {
		s.T().Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal(tc.in)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func (s *FormatTestSuite) TestDepthLimit() {
	root := NewSection()
	cur := root
	for range 10 {
		next := NewSection()
		cur.Set("n", next)
		cur = next
	}
	data, err := Marshal(root)
	s.Require().NoError(err)

	_, err = DecodeOptions{MaxDepth: 11}.Unmarshal(data)
	s.Assert().NoError(err)

	_, err = DecodeOptions{MaxDepth: 5}.Unmarshal(data)
	s.Assert().ErrorIs(err, ErrDepthExceeded)
}

func (s *FormatTestSuite) TestHasSignature() {
	s.Assert().True(HasSignature(header))
	s.Assert().False(HasSignature(header[:8]))
	s.Assert().False(HasSignature([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0}))
}

func TestFormat(t *testing.T) {
	suite.Run(t, new(FormatTestSuite))
}

func TestSection(t *testing.T) {
	var s Section
	s.Set("a", Uint8(1))
	s.Set("b", Uint8(2))
	s.Set("a", Uint8(3))
	assert.Equal(t, []string{"a", "b"}, s.Names())

	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, Uint8(3), v)

	s.Delete("a")
	s.Delete("missing")
	assert.Equal(t, []string{"b"}, s.Names())
	assert.Equal(t, 1, s.Len())

	var visited []string
	s.Set("c", Bool(false))
	s.Range(func(name string, _ Entry) bool {
		visited = append(visited, name)
		return false
	})
	assert.Equal(t, []string{"b"}, visited)
}

type port uint16

func (p port) MarshalEntry() Entry { return Uint16(p) }

func (p *port) UnmarshalEntry(e Entry) error {
	v, err := Integer[uint16](e)
	if err != nil {
		return err
	}
	*p = port(v)
	return nil
}

func TestSectionPutDecode(t *testing.T) {
	s := NewSection()
	s.Put("port", port(18080))

	var p port
	require.NoError(t, s.Decode("port", &p))
	assert.Equal(t, port(18080), p)

	assert.ErrorIs(t, s.Decode("missing", &p), ErrMissingEntry)

	s.Set("port", Buf("x"))
	err := s.Decode("port", &p)
	assert.ErrorIs(t, err, ErrWrongEntryKind)
	assert.Contains(t, err.Error(), `"port"`)
}

func TestExpect(t *testing.T) {
	assert.NoError(t, Expect(Bool(true), KindBool))

	err := Expect(Uint8(1), KindBool)
	var kindErr *KindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, KindBool, kindErr.Want)
	assert.Equal(t, KindUint8, kindErr.Got)
	assert.Equal(t, "storage: wrong entry kind: want bool, got uint8", err.Error())

	assert.Contains(t, Expect(nil, KindBuf).Error(), "got nothing")
}

func TestInteger(t *testing.T) {
	v, err := Integer[int64](Uint32(math.MaxUint32))
	require.NoError(t, err)
	assert.EqualValues(t, math.MaxUint32, v)

	u, err := Integer[uint8](Int64(200))
	require.NoError(t, err)
	assert.EqualValues(t, 200, u)

	_, err = Integer[uint8](Int16(256))
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Integer[uint64](Int8(-1))
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Integer[int64](Uint64(math.MaxUint64))
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Integer[int32](Bool(true))
	assert.ErrorIs(t, err, ErrWrongEntryKind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "section", KindSection.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
	assert.True(t, KindArray.Valid())
	assert.False(t, Kind(0).Valid())
}
