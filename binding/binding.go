package binding

import (
	"io/fs"
	"runtime"

	"go.uber.org/zap"

	"github.com/coinforge/btcbridge/bridge"
	"github.com/coinforge/btcbridge/core"
	"github.com/coinforge/btcbridge/descriptor"
	"github.com/coinforge/btcbridge/handle"
	"github.com/coinforge/btcbridge/loader"
	"github.com/coinforge/btcbridge/marshal"
)

// Bridge is an open boundary to one native core instance.
type Bridge struct {
	exports  *bridge.Exports
	artifact *loader.Artifact
}

// OpenInProcess opens a bridge to the statically linked core. No
// platform probing happens; the core is always present.
func OpenInProcess() *Bridge {
	return &Bridge{exports: bridge.New()}
}

// Open locates the native artifact for the running platform inside
// fsys, verifies its format and version, and opens a bridge over it.
// On a platform the catalog does not cover it fails with an
// unsupported-platform error before any boundary call happens.
func Open(fsys fs.FS) (*Bridge, error) {
	catalog, err := loader.OpenCatalog(fsys, loader.DefaultManifestPath)
	if err != nil {
		return nil, err
	}
	ld := loader.NewLoader(catalog, runtime.GOOS, runtime.GOARCH, descriptor.Version)
	artifact, err := ld.Load()
	if err != nil {
		return nil, err
	}
	Logger().Info("native artifact pinned",
		zap.String("platform", artifact.Platform()),
		zap.String("version", artifact.Version.String()),
		zap.String("path", artifact.Path))
	return &Bridge{exports: bridge.New(), artifact: artifact}, nil
}

// Artifact returns the pinned native artifact, or nil for an
// in-process bridge.
func (b *Bridge) Artifact() *loader.Artifact { return b.artifact }

// Descriptor returns the boundary declaration the core implements.
func (b *Bridge) Descriptor() *descriptor.Descriptor { return b.exports.Descriptor() }

// Exports returns the raw call surface for callers that bypass the
// object wrappers, such as diagnostic tooling.
func (b *Bridge) Exports() *bridge.Exports { return b.exports }

// Live reports how many handles are currently held open.
func (b *Bridge) Live() int { return b.exports.Handles().Len() }

// Close releases every outstanding handle and shuts the bridge down.
func (b *Bridge) Close() error { return b.exports.Close() }

// ParseNetwork resolves a network name across the boundary.
func (b *Bridge) ParseNetwork(name string) (core.Network, error) {
	ord, st := b.exports.NetworkParse(name)
	if err := statusErr(st); err != nil {
		return 0, err
	}
	return core.Network(ord), nil
}

// NetworkName resolves a network ordinal to its name across the boundary.
func (b *Bridge) NetworkName(n core.Network) (string, error) {
	name, st := b.exports.NetworkName(uint8(n))
	if err := statusErr(st); err != nil {
		return "", err
	}
	return name, nil
}

// ParseTxid parses display-order hex into a txid, crossing the
// boundary in the txid's wire encoding.
func (b *Bridge) ParseTxid(s string) (core.Txid, error) {
	payload, st := b.exports.TxidParse(s)
	if err := statusErr(st); err != nil {
		return core.Txid{}, err
	}
	d := marshal.NewDecoder(payload)
	t, err := marshal.DecodeTxid(d)
	if err != nil {
		return core.Txid{}, err
	}
	if err := d.Finish(); err != nil {
		return core.Txid{}, err
	}
	return t, nil
}

// TxidString renders a txid as display-order hex via the native core.
func (b *Bridge) TxidString(t core.Txid) (string, error) {
	e := marshal.NewEncoder()
	defer e.Release()
	if err := marshal.EncodeTxid(e, t); err != nil {
		return "", err
	}
	s, st := b.exports.TxidString(e.Bytes())
	if err := statusErr(st); err != nil {
		return "", err
	}
	return s, nil
}

// OutPointString renders an out-point as "txid:vout" via the native core.
func (b *Bridge) OutPointString(o core.OutPoint) (string, error) {
	e := marshal.NewEncoder()
	defer e.Release()
	if err := marshal.EncodeOutPoint(e, o); err != nil {
		return "", err
	}
	s, st := b.exports.OutPointString(e.Bytes())
	if err := statusErr(st); err != nil {
		return "", err
	}
	return s, nil
}

// Script owns one native script handle. The owner must call Destroy
// exactly once; later calls fail with a use-after-free error.
type Script struct {
	b *Bridge
	h handle.Handle
}

// NewScript copies raw into a native script object.
func (b *Bridge) NewScript(raw []byte) (*Script, error) {
	h, st := b.exports.ScriptNew(raw)
	if err := statusErr(st); err != nil {
		return nil, err
	}
	return &Script{b: b, h: h}, nil
}

// Bytes returns a copy of the script's raw bytes.
func (s *Script) Bytes() ([]byte, error) {
	raw, st := s.b.exports.ScriptBytes(s.h)
	if err := statusErr(st); err != nil {
		return nil, err
	}
	return raw, nil
}

// Type classifies the script by its standard template.
func (s *Script) Type() (core.ScriptType, error) {
	kind, st := s.b.exports.ScriptType(s.h)
	if err := statusErr(st); err != nil {
		return 0, err
	}
	return core.ScriptType(kind), nil
}

// Destroy releases the native handle.
func (s *Script) Destroy() error {
	return statusErr(s.b.exports.ScriptDestroy(s.h))
}

// Amount owns one native amount handle.
type Amount struct {
	b *Bridge
	h handle.Handle
}

// AmountFromSat constructs a native amount from a satoshi count.
func (b *Bridge) AmountFromSat(sat uint64) (*Amount, error) {
	h, st := b.exports.AmountFromSat(sat)
	if err := statusErr(st); err != nil {
		return nil, err
	}
	return &Amount{b: b, h: h}, nil
}

// AmountFromBTC constructs a native amount from a bitcoin quantity.
func (b *Bridge) AmountFromBTC(btc float64) (*Amount, error) {
	h, st := b.exports.AmountFromBTC(btc)
	if err := statusErr(st); err != nil {
		return nil, err
	}
	return &Amount{b: b, h: h}, nil
}

// ParseAmount parses a decimal bitcoin string into a native amount.
func (b *Bridge) ParseAmount(s string) (*Amount, error) {
	h, st := b.exports.AmountParse(s)
	if err := statusErr(st); err != nil {
		return nil, err
	}
	return &Amount{b: b, h: h}, nil
}

// Sat returns the amount in satoshis.
func (a *Amount) Sat() (uint64, error) {
	sat, st := a.b.exports.AmountSat(a.h)
	if err := statusErr(st); err != nil {
		return 0, err
	}
	return sat, nil
}

// BTC returns the amount as a floating-point bitcoin quantity.
func (a *Amount) BTC() (float64, error) {
	btc, st := a.b.exports.AmountBTC(a.h)
	if err := statusErr(st); err != nil {
		return 0, err
	}
	return btc, nil
}

// Destroy releases the native handle.
func (a *Amount) Destroy() error {
	return statusErr(a.b.exports.AmountDestroy(a.h))
}

// FeeRate owns one native fee rate handle.
type FeeRate struct {
	b *Bridge
	h handle.Handle
}

// FeeRateFromSatPerVB constructs a native fee rate from sat/vB.
func (b *Bridge) FeeRateFromSatPerVB(satVB uint64) (*FeeRate, error) {
	h, st := b.exports.FeeRateFromSatPerVB(satVB)
	if err := statusErr(st); err != nil {
		return nil, err
	}
	return &FeeRate{b: b, h: h}, nil
}

// FeeRateFromSatPerKWU constructs a native fee rate from sat/kWU.
func (b *Bridge) FeeRateFromSatPerKWU(satKWU uint64) (*FeeRate, error) {
	h, st := b.exports.FeeRateFromSatPerKWU(satKWU)
	if err := statusErr(st); err != nil {
		return nil, err
	}
	return &FeeRate{b: b, h: h}, nil
}

// SatPerVBCeil returns the rate in sat/vB rounded up.
func (f *FeeRate) SatPerVBCeil() (uint64, error) {
	v, st := f.b.exports.FeeRateSatPerVBCeil(f.h)
	if err := statusErr(st); err != nil {
		return 0, err
	}
	return v, nil
}

// SatPerVBFloor returns the rate in sat/vB rounded down.
func (f *FeeRate) SatPerVBFloor() (uint64, error) {
	v, st := f.b.exports.FeeRateSatPerVBFloor(f.h)
	if err := statusErr(st); err != nil {
		return 0, err
	}
	return v, nil
}

// SatPerKWU returns the rate in sat/kWU.
func (f *FeeRate) SatPerKWU() (uint64, error) {
	v, st := f.b.exports.FeeRateSatPerKWU(f.h)
	if err := statusErr(st); err != nil {
		return 0, err
	}
	return v, nil
}

// Destroy releases the native handle.
func (f *FeeRate) Destroy() error {
	return statusErr(f.b.exports.FeeRateDestroy(f.h))
}
