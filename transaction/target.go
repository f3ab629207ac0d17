// Package transaction holds the transaction output codecs of the cryptonote
// wire format.
package transaction

import (
	"errors"
	"fmt"
	"io"

	codec "github.com/oy3o/cnwire"
)

// Wire tags of the TxOutTarget variants. These are protocol constants and
// are not related to declaration order.
const (
	TagToScript     uint8 = 0x00
	TagToScriptHash uint8 = 0x01
	TagToKey        uint8 = 0x02
)

// ErrUnknownTag matches every *UnknownTagError.
var ErrUnknownTag = errors.New("transaction: unknown variant tag")

// ErrNilTarget is returned when encoding an output that has no target.
var ErrNilTarget = errors.New("transaction: output has no target")

// UnknownTagError reports a TxOutTarget tag outside the known set.
type UnknownTagError struct {
	Tag uint8
}

// Error formats the tag as uppercase hex without a prefix.
func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("transaction: unknown variant tag: %X", e.Tag)
}

func (e *UnknownTagError) Unwrap() error { return ErrUnknownTag }

// TxOutTarget is where an output's amount goes. It is one of ToKey,
// ToScript or ToScriptHash.
type TxOutTarget interface {
	// Tag returns the variant's wire tag.
	Tag() uint8
	// Payload returns the wrapped value.
	Payload() Payload
	io.WriterTo
	codec.Sizer
	isTxOutTarget()
}

type (
	ToKey        struct{ Key TxOutToKey }
	ToScript     struct{ Script TxOutToScript }
	ToScriptHash struct{ ScriptHash TxOutToScriptHash }
)

func (ToKey) Tag() uint8        { return TagToKey }
func (ToScript) Tag() uint8     { return TagToScript }
func (ToScriptHash) Tag() uint8 { return TagToScriptHash }

func (t ToKey) Payload() Payload        { return &t.Key }
func (t ToScript) Payload() Payload     { return &t.Script }
func (t ToScriptHash) Payload() Payload { return &t.ScriptHash }

func (t ToKey) Size() int        { return 1 + t.Key.Size() }
func (t ToScript) Size() int     { return 1 + t.Script.Size() }
func (t ToScriptHash) Size() int { return 1 + t.ScriptHash.Size() }

func (t ToKey) WriteTo(w io.Writer) (int64, error)        { return writeTarget(w, t) }
func (t ToScript) WriteTo(w io.Writer) (int64, error)     { return writeTarget(w, t) }
func (t ToScriptHash) WriteTo(w io.Writer) (int64, error) { return writeTarget(w, t) }

func (t ToKey) String() string { return fmt.Sprintf("to_key(%s)", t.Key.Key()) }
func (t ToScript) String() string {
	return fmt.Sprintf("to_script(keys=%d, script=%x)", len(t.Script.Keys), t.Script.Script)
}
func (t ToScriptHash) String() string { return fmt.Sprintf("to_scripthash(%s)", t.ScriptHash.Hash) }

func (ToKey) isTxOutTarget()        {}
func (ToScript) isTxOutTarget()     {}
func (ToScriptHash) isTxOutTarget() {}

func writeTarget(writer io.Writer, t TxOutTarget) (int64, error) {
	w, err := codec.NewWriter(writer)
	if err != nil {
		return 0, err
	}
	EncodeTxOutTarget(w, t)
	return w.Result()
}

// EncodeTxOutTarget appends the tag of t followed by its payload. A nil t
// fails w with ErrNilTarget.
func EncodeTxOutTarget(w *codec.Writer, t TxOutTarget) {
	if t == nil {
		w.Fail(ErrNilTarget)
		return
	}
	w.WriteUint8(t.Tag())
	w.WriteFrom(t.Payload())
}

// DecodeTxOutTarget reads a tag and the payload it selects. An unknown tag
// returns *UnknownTagError and leaves the cursor just past the tag.
func DecodeTxOutTarget(r *codec.Reader) (TxOutTarget, error) {
	var tag uint8
	r.ReadUint8(&tag)
	if err := r.Err(); err != nil {
		return nil, err
	}

	var target TxOutTarget
	switch tag {
	case TagToKey:
		var v ToKey
		r.ReadTo(&v.Key)
		target = v
	case TagToScript:
		var v ToScript
		r.ReadTo(&v.Script)
		target = v
	case TagToScriptHash:
		var v ToScriptHash
		r.ReadTo(&v.ScriptHash)
		target = v
	default:
		return nil, &UnknownTagError{Tag: tag}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("transaction: tag %X payload: %w", tag, err)
	}
	return target, nil
}
