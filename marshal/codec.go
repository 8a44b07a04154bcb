package marshal

import (
	"github.com/coinforge/btcbridge/core"
	"github.com/coinforge/btcbridge/errors"
)

// Domain codecs. Each pair is a two-way deterministic mapping; the ordinal
// byte written for enums is the pinned boundary ordinal (core's numeric
// values, regression-tested against the descriptor tables).

func EncodeNetwork(e *Encoder, n core.Network) error {
	if !n.Valid() {
		return errors.InvalidOrdinal(errors.PhaseEncode, nil,
			uint32(n), "network", uint32(core.NetworkCount-1))
	}
	e.PutU8(uint8(n))
	return nil
}

func DecodeNetwork(d *Decoder) (core.Network, error) {
	d.push("network")
	defer d.pop()

	ord, err := d.U8()
	if err != nil {
		return 0, err
	}
	n := core.Network(ord)
	if !n.Valid() {
		return 0, errors.InvalidOrdinal(errors.PhaseDecode, d.pathCopy(),
			uint32(ord), "network", uint32(core.NetworkCount-1))
	}
	return n, nil
}

func EncodeAmount(e *Encoder, a core.Amount) {
	e.PutU64(a.Sat())
}

func DecodeAmount(d *Decoder) (core.Amount, error) {
	d.push("amount")
	defer d.pop()

	sat, err := d.U64()
	if err != nil {
		return core.Amount{}, err
	}
	a, err := core.AmountFromSat(sat)
	if err != nil {
		return core.Amount{}, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(d.pathCopy()...).
			Cause(err).
			Detail("satoshi count above max money").
			Build()
	}
	return a, nil
}

func EncodeFeeRate(e *Encoder, f core.FeeRate) {
	e.PutU64(f.SatPerKWU())
}

func DecodeFeeRate(d *Decoder) (core.FeeRate, error) {
	d.push("fee-rate")
	defer d.pop()

	kwu, err := d.U64()
	if err != nil {
		return core.FeeRate{}, err
	}
	return core.FeeRateFromSatPerKWU(kwu), nil
}

func EncodeScript(e *Encoder, s core.Script) error {
	return e.PutBytes(s.Bytes())
}

func DecodeScript(d *Decoder) (core.Script, error) {
	d.push("script")
	defer d.pop()

	raw, err := d.Bytes()
	if err != nil {
		return core.Script{}, err
	}
	return core.NewScript(raw), nil
}

func EncodeTxid(e *Encoder, t core.Txid) error {
	return e.PutBytes(t.Bytes())
}

func DecodeTxid(d *Decoder) (core.Txid, error) {
	d.push("txid")
	defer d.pop()

	raw, err := d.Bytes()
	if err != nil {
		return core.Txid{}, err
	}
	t, err := core.TxidFromBytes(raw)
	if err != nil {
		return core.Txid{}, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(d.pathCopy()...).
			Cause(err).
			Detail("txid payload must be %d bytes, got %d", core.TxidLen, len(raw)).
			Build()
	}
	return t, nil
}

func EncodeOutPoint(e *Encoder, o core.OutPoint) error {
	if err := EncodeTxid(e, o.Txid); err != nil {
		return err
	}
	e.PutU32(o.Vout)
	return nil
}

func DecodeOutPoint(d *Decoder) (core.OutPoint, error) {
	d.push("out-point")
	defer d.pop()

	txid, err := DecodeTxid(d)
	if err != nil {
		return core.OutPoint{}, err
	}
	vout, err := d.U32()
	if err != nil {
		return core.OutPoint{}, err
	}
	return core.OutPoint{Txid: txid, Vout: vout}, nil
}
