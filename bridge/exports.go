package bridge

import (
	"github.com/coinforge/btcbridge"
	"github.com/coinforge/btcbridge/core"
	"github.com/coinforge/btcbridge/descriptor"
	"github.com/coinforge/btcbridge/errors"
	"github.com/coinforge/btcbridge/handle"
	"github.com/coinforge/btcbridge/marshal"
)

// Exports is the flat call surface of the native core. One Exports owns
// one handle table; every function listed in the descriptor appears
// here as a method returning its results plus a status.
type Exports struct {
	handles *handle.Table
	desc    *descriptor.Descriptor
}

// New creates a ready-to-call export surface.
func New() *Exports {
	return &Exports{
		handles: handle.NewTable(),
		desc:    descriptor.Bitcoin(),
	}
}

// Descriptor returns the boundary declaration this surface implements.
func (x *Exports) Descriptor() *descriptor.Descriptor { return x.desc }

// Handles exposes the table for observers and diagnostics.
func (x *Exports) Handles() *handle.Table { return x.handles }

// Close releases every live handle and shuts the surface down.
func (x *Exports) Close() error {
	return x.handles.Close()
}

// NetworkParse resolves a network name to its pinned wire ordinal.
func (x *Exports) NetworkParse(name string) (ord uint8, st btcbridge.Status) {
	defer recoverTo("network-parse", &st)
	n, err := core.ParseNetwork(name)
	if err != nil {
		return 0, statusFromError("network-parse", err)
	}
	return uint8(n), okStatus
}

// NetworkName resolves a pinned wire ordinal back to its network name.
func (x *Exports) NetworkName(ord uint8) (name string, st btcbridge.Status) {
	defer recoverTo("network-name", &st)
	n := core.Network(ord)
	if !n.Valid() {
		err := errors.InvalidOrdinal(errors.PhaseDecode, []string{"network"},
			uint32(ord), "network", uint32(core.NetworkCount-1))
		return "", statusFromError("network-name", err)
	}
	return n.String(), okStatus
}

func (x *Exports) ScriptNew(raw []byte) (h handle.Handle, st btcbridge.Status) {
	defer recoverTo("script-new", &st)
	hh, err := x.handles.New(descriptor.TypeScript, core.NewScript(raw))
	if err != nil {
		return handle.Nil, statusFromError("script-new", err)
	}
	return hh, okStatus
}

func (x *Exports) ScriptBytes(h handle.Handle) (raw []byte, st btcbridge.Status) {
	defer recoverTo("script-bytes", &st)
	s, err := x.script(h)
	if err != nil {
		return nil, statusFromError("script-bytes", err)
	}
	return s.Bytes(), okStatus
}

func (x *Exports) ScriptType(h handle.Handle) (kind uint8, st btcbridge.Status) {
	defer recoverTo("script-type", &st)
	s, err := x.script(h)
	if err != nil {
		return 0, statusFromError("script-type", err)
	}
	return uint8(s.Type()), okStatus
}

func (x *Exports) ScriptDestroy(h handle.Handle) (st btcbridge.Status) {
	defer recoverTo("script-destroy", &st)
	if err := x.handles.DestroyTyped(h, descriptor.TypeScript); err != nil {
		return statusFromError("script-destroy", err)
	}
	return okStatus
}

func (x *Exports) AmountFromSat(sat uint64) (h handle.Handle, st btcbridge.Status) {
	defer recoverTo("amount-from-sat", &st)
	a, err := core.AmountFromSat(sat)
	if err != nil {
		return handle.Nil, statusFromError("amount-from-sat", err)
	}
	return x.newAmount(a)
}

func (x *Exports) AmountFromBTC(btc float64) (h handle.Handle, st btcbridge.Status) {
	defer recoverTo("amount-from-btc", &st)
	a, err := core.AmountFromBTC(btc)
	if err != nil {
		return handle.Nil, statusFromError("amount-from-btc", err)
	}
	return x.newAmount(a)
}

func (x *Exports) AmountParse(s string) (h handle.Handle, st btcbridge.Status) {
	defer recoverTo("amount-parse", &st)
	a, err := core.ParseAmount(s)
	if err != nil {
		return handle.Nil, statusFromError("amount-parse", err)
	}
	return x.newAmount(a)
}

func (x *Exports) AmountSat(h handle.Handle) (sat uint64, st btcbridge.Status) {
	defer recoverTo("amount-sat", &st)
	a, err := x.amount(h)
	if err != nil {
		return 0, statusFromError("amount-sat", err)
	}
	return a.Sat(), okStatus
}

func (x *Exports) AmountBTC(h handle.Handle) (btc float64, st btcbridge.Status) {
	defer recoverTo("amount-btc", &st)
	a, err := x.amount(h)
	if err != nil {
		return 0, statusFromError("amount-btc", err)
	}
	return a.BTC(), okStatus
}

func (x *Exports) AmountDestroy(h handle.Handle) (st btcbridge.Status) {
	defer recoverTo("amount-destroy", &st)
	if err := x.handles.DestroyTyped(h, descriptor.TypeAmount); err != nil {
		return statusFromError("amount-destroy", err)
	}
	return okStatus
}

func (x *Exports) FeeRateFromSatPerVB(satVB uint64) (h handle.Handle, st btcbridge.Status) {
	defer recoverTo("fee-rate-from-sat-per-vb", &st)
	f, err := core.FeeRateFromSatPerVB(satVB)
	if err != nil {
		return handle.Nil, statusFromError("fee-rate-from-sat-per-vb", err)
	}
	return x.newFeeRate(f)
}

func (x *Exports) FeeRateFromSatPerKWU(satKWU uint64) (h handle.Handle, st btcbridge.Status) {
	defer recoverTo("fee-rate-from-sat-per-kwu", &st)
	return x.newFeeRate(core.FeeRateFromSatPerKWU(satKWU))
}

func (x *Exports) FeeRateSatPerVBCeil(h handle.Handle) (satVB uint64, st btcbridge.Status) {
	defer recoverTo("fee-rate-sat-per-vb-ceil", &st)
	f, err := x.feeRate(h)
	if err != nil {
		return 0, statusFromError("fee-rate-sat-per-vb-ceil", err)
	}
	return f.SatPerVBCeil(), okStatus
}

func (x *Exports) FeeRateSatPerVBFloor(h handle.Handle) (satVB uint64, st btcbridge.Status) {
	defer recoverTo("fee-rate-sat-per-vb-floor", &st)
	f, err := x.feeRate(h)
	if err != nil {
		return 0, statusFromError("fee-rate-sat-per-vb-floor", err)
	}
	return f.SatPerVBFloor(), okStatus
}

func (x *Exports) FeeRateSatPerKWU(h handle.Handle) (satKWU uint64, st btcbridge.Status) {
	defer recoverTo("fee-rate-sat-per-kwu", &st)
	f, err := x.feeRate(h)
	if err != nil {
		return 0, statusFromError("fee-rate-sat-per-kwu", err)
	}
	return f.SatPerKWU(), okStatus
}

func (x *Exports) FeeRateDestroy(h handle.Handle) (st btcbridge.Status) {
	defer recoverTo("fee-rate-destroy", &st)
	if err := x.handles.DestroyTyped(h, descriptor.TypeFeeRate); err != nil {
		return statusFromError("fee-rate-destroy", err)
	}
	return okStatus
}

// TxidParse parses a display-order hex string and returns the txid in
// its wire encoding.
func (x *Exports) TxidParse(s string) (payload []byte, st btcbridge.Status) {
	defer recoverTo("txid-parse", &st)
	t, err := core.ParseTxid(s)
	if err != nil {
		return nil, statusFromError("txid-parse", err)
	}
	e := marshal.NewEncoder()
	defer e.Release()
	if err := marshal.EncodeTxid(e, t); err != nil {
		return nil, statusFromError("txid-parse", err)
	}
	return e.Detach(), okStatus
}

// TxidString renders a wire-encoded txid as display-order hex.
func (x *Exports) TxidString(payload []byte) (s string, st btcbridge.Status) {
	defer recoverTo("txid-string", &st)
	d := marshal.NewDecoder(payload)
	t, err := marshal.DecodeTxid(d)
	if err != nil {
		return "", statusFromError("txid-string", err)
	}
	if err := d.Finish(); err != nil {
		return "", statusFromError("txid-string", err)
	}
	return t.String(), okStatus
}

// OutPointString renders a wire-encoded out-point as "txid:vout".
func (x *Exports) OutPointString(payload []byte) (s string, st btcbridge.Status) {
	defer recoverTo("out-point-string", &st)
	d := marshal.NewDecoder(payload)
	o, err := marshal.DecodeOutPoint(d)
	if err != nil {
		return "", statusFromError("out-point-string", err)
	}
	if err := d.Finish(); err != nil {
		return "", statusFromError("out-point-string", err)
	}
	return o.String(), okStatus
}

func (x *Exports) newAmount(a core.Amount) (handle.Handle, btcbridge.Status) {
	h, err := x.handles.New(descriptor.TypeAmount, a)
	if err != nil {
		return handle.Nil, statusFromError("amount-new", err)
	}
	return h, okStatus
}

func (x *Exports) newFeeRate(f core.FeeRate) (handle.Handle, btcbridge.Status) {
	h, err := x.handles.New(descriptor.TypeFeeRate, f)
	if err != nil {
		return handle.Nil, statusFromError("fee-rate-new", err)
	}
	return h, okStatus
}

func (x *Exports) script(h handle.Handle) (core.Script, error) {
	v, err := x.handles.Get(h, descriptor.TypeScript)
	if err != nil {
		return core.Script{}, err
	}
	return v.(core.Script), nil
}

func (x *Exports) amount(h handle.Handle) (core.Amount, error) {
	v, err := x.handles.Get(h, descriptor.TypeAmount)
	if err != nil {
		return core.Amount{}, err
	}
	return v.(core.Amount), nil
}

func (x *Exports) feeRate(h handle.Handle) (core.FeeRate, error) {
	v, err := x.handles.Get(h, descriptor.TypeFeeRate)
	if err != nil {
		return core.FeeRate{}, err
	}
	return v.(core.FeeRate), nil
}
