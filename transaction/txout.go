package transaction

import (
	"fmt"
	"io"

	codec "github.com/oy3o/cnwire"
)

// TxOut is a transaction output: a varint amount followed by its target.
type TxOut struct {
	Amount uint64
	Target TxOutTarget
}

var _ codec.Codec = (*TxOut)(nil)

// DecodeTxOut reads one output from r.
func DecodeTxOut(r *codec.Reader) (TxOut, error) {
	var out TxOut
	r.ReadVarint(&out.Amount)
	if err := r.Err(); err != nil {
		return TxOut{}, fmt.Errorf("transaction: amount: %w", err)
	}
	target, err := DecodeTxOutTarget(r)
	if err != nil {
		return TxOut{}, err
	}
	out.Target = target
	return out, nil
}

// EncodeTxOut appends out to w. An output without a target fails w with
// ErrNilTarget before anything is written.
func EncodeTxOut(w *codec.Writer, out TxOut) {
	if out.Target == nil {
		w.Fail(ErrNilTarget)
		return
	}
	w.WriteVarint(out.Amount)
	EncodeTxOutTarget(w, out.Target)
}

// Size counts only the amount when Target is nil.
func (o *TxOut) Size() int {
	if o.Target == nil {
		return codec.VarintSize(o.Amount)
	}
	return codec.VarintSize(o.Amount) + o.Target.Size()
}

func (o *TxOut) ReadFrom(reader io.Reader) (int64, error) {
	r, err := codec.NewReader(reader)
	if err != nil {
		return 0, err
	}
	out, err := DecodeTxOut(r)
	if err != nil {
		return r.Count(), err
	}
	*o = out
	return r.Count(), nil
}

func (o *TxOut) WriteTo(writer io.Writer) (int64, error) {
	if o.Target == nil {
		return 0, ErrNilTarget
	}
	w, err := codec.NewWriter(writer)
	if err != nil {
		return 0, err
	}
	EncodeTxOut(w, *o)
	return w.Result()
}

func (o *TxOut) MarshalBinary() ([]byte, error) {
	if o.Target == nil {
		return nil, ErrNilTarget
	}
	return codec.MarshalBinaryGeneric(o)
}

func (o *TxOut) UnmarshalBinary(data []byte) error {
	return codec.Unmarshal(data, o)
}

func (o *TxOut) MarshalTo(buf []byte) (int, error) {
	if o.Target == nil {
		return 0, ErrNilTarget
	}
	return codec.MarshalToGeneric(o, buf)
}
