package hash

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codec "github.com/oy3o/cnwire"
	"github.com/oy3o/cnwire/storage"
)

func sample() []byte {
	b := make([]byte, Size)
	for i := range b {
		b[i] = byte(i*7 + 1)
	}
	return b
}

func TestFromBytes(t *testing.T) {
	h, err := FromBytes(sample())
	require.NoError(t, err)
	assert.Equal(t, sample(), h.Bytes())

	for _, n := range []int{0, 31, 33} {
		_, err := FromBytes(make([]byte, n))
		assert.ErrorIs(t, err, ErrInvalidLength, "length %d", n)
	}
}

func TestFromBytesCopies(t *testing.T) {
	b := sample()
	h, err := FromBytes(b)
	require.NoError(t, err)
	b[0] ^= 0xFF
	assert.NotEqual(t, b[0], h[0])
}

func TestBlobRoundTrip(t *testing.T) {
	for _, h := range []Hash256{{}, Keccak256([]byte("blob"))} {
		var buf bytes.Buffer
		w := codec.NewBufferSink(&buf)
		h.EncodeBlob(w)
		require.NoError(t, w.Err())
		require.Equal(t, Size, buf.Len(), "blob form has no framing")

		r := codec.NewBytesCursor(buf.Bytes())
		got, err := DecodeBlob(r)
		require.NoError(t, err)
		assert.Equal(t, h, got)
		assert.EqualValues(t, Size, r.Count())
	}
}

func TestDecodeBlobLeavesRest(t *testing.T) {
	r := codec.NewBytesCursor(append(sample(), 0xAB))
	h, err := DecodeBlob(r)
	require.NoError(t, err)
	assert.Equal(t, sample(), h.Bytes())

	var next uint8
	r.ReadUint8(&next)
	require.NoError(t, r.Err())
	assert.Equal(t, uint8(0xAB), next)
}

func TestDecodeBlobTruncated(t *testing.T) {
	r := codec.NewBytesCursor(make([]byte, Size-1))
	_, err := DecodeBlob(r)
	assert.ErrorIs(t, err, codec.ErrTruncatedData)
}

func TestStreamCodec(t *testing.T) {
	h := Keccak256([]byte("stream"))

	data, err := h.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, h.Bytes(), data)

	var got Hash256
	require.NoError(t, got.UnmarshalBinary(data))
	assert.Equal(t, h, got)
	assert.ErrorIs(t, got.UnmarshalBinary(data[:Size-1]), ErrInvalidLength)

	_, err = got.ReadFrom(bytes.NewReader(data[:10]))
	assert.ErrorIs(t, err, codec.ErrTruncatedData)

	buf := make([]byte, Size)
	n, err := h.MarshalTo(buf)
	require.NoError(t, err)
	assert.Equal(t, Size, n)
	assert.Equal(t, data, buf)

	_, err = h.MarshalTo(buf[:4])
	assert.Error(t, err)
}

func TestStorageEntryRoundTrip(t *testing.T) {
	for _, h := range []Hash256{{}, Keccak256([]byte("entry"))} {
		e := h.MarshalEntry()
		require.Equal(t, storage.KindBuf, e.Kind())
		assert.Len(t, e.(storage.Buf), Size)

		var got Hash256
		require.NoError(t, got.UnmarshalEntry(e))
		assert.Equal(t, h, got)
	}
}

func TestStorageEntryThroughDocument(t *testing.T) {
	h := Keccak256([]byte("document"))
	root := storage.NewSection()
	root.Put("top_hash", h)

	data, err := storage.Marshal(root)
	require.NoError(t, err)
	decoded, err := storage.Unmarshal(data)
	require.NoError(t, err)

	var got Hash256
	require.NoError(t, decoded.Decode("top_hash", &got))
	assert.Equal(t, h, got)
}

func TestStorageEntryKindGuard(t *testing.T) {
	var h Hash256
	for _, e := range []storage.Entry{storage.Uint64(1), storage.Bool(true), storage.NewSection(), nil} {
		err := h.UnmarshalEntry(e)
		assert.ErrorIs(t, err, storage.ErrWrongEntryKind)
		var kindErr *storage.KindError
		require.ErrorAs(t, err, &kindErr)
		assert.Equal(t, storage.KindBuf, kindErr.Want)
	}
}

func TestStorageEntryLengthGuard(t *testing.T) {
	var h Hash256
	for _, n := range []int{0, 31, 33} {
		err := h.UnmarshalEntry(storage.Buf(make([]byte, n)))
		assert.ErrorIs(t, err, ErrInvalidLength, "length %d", n)
	}
	assert.True(t, h.IsZero(), "failed decode leaves the value untouched")
}

func TestZeroValue(t *testing.T) {
	var h Hash256
	assert.True(t, h.IsZero())
	assert.Equal(t, make([]byte, Size), h.Bytes())
	assert.Equal(t, 0, h.Compare(Hash256{}))
}

func TestKeccak256(t *testing.T) {
	assert.Equal(t,
		"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		Keccak256().String())
	assert.Equal(t, Keccak256([]byte("ab")), Keccak256([]byte("a"), []byte("b")))
}

func TestText(t *testing.T) {
	h := Keccak256([]byte("text"))

	parsed, err := FromHex(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, parsed)

	_, err = FromHex("abcd")
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, err = FromHex(string(bytes.Repeat([]byte("zz"), Size)))
	assert.Error(t, err)

	out, err := json.Marshal(map[string]Hash256{"h": h})
	require.NoError(t, err)
	assert.JSONEq(t, `{"h":"`+h.String()+`"}`, string(out))

	var back map[string]Hash256
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, h, back["h"])
}

func TestCompare(t *testing.T) {
	lo, hi := Hash256{}, Hash256{}
	hi[0] = 1
	assert.Equal(t, -1, lo.Compare(hi))
	assert.Equal(t, 1, hi.Compare(lo))
	assert.Equal(t, 0, hi.Compare(hi))
}
