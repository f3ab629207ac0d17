package transaction

import (
	"encoding/hex"
	"io"

	codec "github.com/oy3o/cnwire"
	"github.com/oy3o/cnwire/hash"
)

// Payload is the capability a TxOutTarget variant needs from the value it
// wraps: a self-delimiting decode from the shared cursor and an appending
// encode. The target codec never looks inside a payload.
type Payload interface {
	codec.Stream
	codec.Sizer
}

// KeySize is the length of a public key in bytes.
const KeySize = 32

// PublicKey is a compressed ed25519 point. No curve checks are made here.
type PublicKey [KeySize]byte

func (k PublicKey) String() string { return hex.EncodeToString(k[:]) }

func (k *PublicKey) Size() int { return KeySize }

func (k *PublicKey) ReadFrom(r io.Reader) (int64, error) {
	var v PublicKey
	n, err := io.ReadFull(r, v[:])
	if err != nil {
		return int64(n), codec.Truncated(err, KeySize)
	}
	*k = v
	return int64(n), nil
}

func (k *PublicKey) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(k[:])
	return int64(n), err
}

// TxOutToKey pays to a one-time public key. Its encoding is the 32 key bytes.
type TxOutToKey struct {
	codec.Fixed[PublicKey]
}

func NewTxOutToKey(key PublicKey) TxOutToKey {
	return TxOutToKey{codec.Fixed[PublicKey]{Payload: key}}
}

func (p TxOutToKey) Key() PublicKey { return p.Payload }

// TxOutToScript pays to a script over a set of keys. Encoding: varint key
// count, keys, varint script length, script bytes.
type TxOutToScript struct {
	Keys   []PublicKey
	Script []byte
}

func (p *TxOutToScript) Size() int {
	return codec.NewVector[PublicKey, *PublicKey](p.Keys).Size() +
		codec.LengthSize(len(p.Script)) + len(p.Script)
}

func (p *TxOutToScript) WriteTo(writer io.Writer) (int64, error) {
	w, err := codec.NewWriter(writer)
	if err != nil {
		return 0, err
	}
	w.WriteFrom(codec.NewVector[PublicKey, *PublicKey](p.Keys))
	w.WriteVarint(uint64(len(p.Script)))
	w.WriteBytes(p.Script)
	return w.Result()
}

func (p *TxOutToScript) ReadFrom(reader io.Reader) (int64, error) {
	r, err := codec.NewReader(reader)
	if err != nil {
		return 0, err
	}
	var keys codec.Vector[PublicKey, *PublicKey]
	r.ReadTo(&keys)
	script := r.ReadBytes(r.ReadLength(1))
	if err := r.Err(); err != nil {
		return r.Count(), err
	}
	p.Keys, p.Script = keys.Items, script
	return r.Count(), nil
}

// TxOutToScriptHash pays to the hash of a script. Its encoding is the
// 32-byte hash blob.
type TxOutToScriptHash struct {
	Hash hash.Hash256
}

func (p *TxOutToScriptHash) Size() int { return hash.Size }

func (p *TxOutToScriptHash) ReadFrom(r io.Reader) (int64, error) {
	return p.Hash.ReadFrom(r)
}

func (p *TxOutToScriptHash) WriteTo(w io.Writer) (int64, error) {
	return p.Hash.WriteTo(w)
}
