package binding

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"testing"
	"testing/fstest"

	"github.com/coinforge/btcbridge/bridge"
	"github.com/coinforge/btcbridge/core"
	"github.com/coinforge/btcbridge/errors"
	"github.com/coinforge/btcbridge/loader"
	"github.com/coinforge/btcbridge/marshal"
)

const genesisCoinbase = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

func handleKind(err error, kind errors.Kind) bool {
	return stderrors.Is(err, &errors.Error{Phase: errors.PhaseHandle, Kind: kind})
}

func TestBridge_ScriptLifecycle(t *testing.T) {
	b := OpenInProcess()
	defer b.Close()

	s, err := b.NewScript([]byte{0x00, 0x14, 0xde, 0xad})
	if err != nil {
		t.Fatalf("NewScript: %v", err)
	}
	if b.Live() != 1 {
		t.Fatalf("Live() = %d, want 1", b.Live())
	}

	kind, err := s.Type()
	if err != nil {
		t.Fatalf("Type: %v", err)
	}
	if kind != core.ScriptNonStandard {
		t.Errorf("Type = %v for a 4-byte script", kind)
	}

	if err := s.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if b.Live() != 0 {
		t.Fatalf("Live() after destroy = %d, want 0", b.Live())
	}

	if err := s.Destroy(); !handleKind(err, errors.KindDoubleFree) {
		t.Errorf("second Destroy = %v, want double free", err)
	}
	if _, err := s.Bytes(); !handleKind(err, errors.KindUseAfterFree) {
		t.Errorf("Bytes after Destroy = %v, want use after free", err)
	}
}

func TestBridge_DomainErrors(t *testing.T) {
	b := OpenInProcess()
	defer b.Close()

	_, err := b.ParseAmount("12,5")
	var de *DomainError
	if !stderrors.As(err, &de) {
		t.Fatalf("ParseAmount error = %T (%v), want *DomainError", err, err)
	}
	code, ok := de.AmountCode()
	if !ok || code != core.AmountInvalidCharacter {
		t.Errorf("AmountCode() = %v, %v", code, ok)
	}

	// Different variants stay distinct after the boundary crossing.
	_, rangeErr := b.ParseAmount("21000001")
	_, feeErr := b.FeeRateFromSatPerVB(^uint64(0))
	if stderrors.Is(err, rangeErr) {
		t.Error("invalid character compares equal to out of range")
	}
	if stderrors.Is(rangeErr, feeErr) {
		t.Error("amount error compares equal to fee rate error")
	}

	var fe *DomainError
	if !stderrors.As(feeErr, &fe) {
		t.Fatalf("fee rate error = %T, want *DomainError", feeErr)
	}
	if fc, ok := fe.FeeRateCode(); !ok || fc != core.FeeRateArithmeticOverflow {
		t.Errorf("FeeRateCode() = %v, %v", fc, ok)
	}
	if _, ok := fe.AmountCode(); ok {
		t.Error("fee rate error answered AmountCode")
	}
}

func TestBridge_AmountRoundTrip(t *testing.T) {
	b := OpenInProcess()
	defer b.Close()

	a, err := b.ParseAmount("0.00015")
	if err != nil {
		t.Fatalf("ParseAmount: %v", err)
	}
	defer a.Destroy()

	sat, err := a.Sat()
	if err != nil || sat != 15000 {
		t.Fatalf("Sat() = %d, %v, want 15000", sat, err)
	}
	btc, err := a.BTC()
	if err != nil || btc != 0.00015 {
		t.Fatalf("BTC() = %v, %v, want 0.00015", btc, err)
	}
}

func TestBridge_FeeRateConversions(t *testing.T) {
	b := OpenInProcess()
	defer b.Close()

	f, err := b.FeeRateFromSatPerVB(3)
	if err != nil {
		t.Fatalf("FeeRateFromSatPerVB: %v", err)
	}
	if kwu, err := f.SatPerKWU(); err != nil || kwu != 750 {
		t.Fatalf("SatPerKWU = %d, %v, want 750", kwu, err)
	}
	if err := f.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	g, err := b.FeeRateFromSatPerKWU(999)
	if err != nil {
		t.Fatalf("FeeRateFromSatPerKWU: %v", err)
	}
	defer g.Destroy()
	if ceil, err := g.SatPerVBCeil(); err != nil || ceil != 4 {
		t.Fatalf("SatPerVBCeil = %d, %v, want 4", ceil, err)
	}
	if floor, err := g.SatPerVBFloor(); err != nil || floor != 3 {
		t.Fatalf("SatPerVBFloor = %d, %v, want 3", floor, err)
	}
}

// A value marshalled by one side must decode to the same value on the
// other, and the wire byte must stay the pinned ordinal.
func TestBridge_TestnetCrossesUnchanged(t *testing.T) {
	b := OpenInProcess()
	defer b.Close()

	n, err := b.ParseNetwork("testnet")
	if err != nil {
		t.Fatalf("ParseNetwork: %v", err)
	}
	if n != core.NetworkTestnet {
		t.Fatalf("ParseNetwork(testnet) = %v", n)
	}

	e := marshal.NewEncoder()
	defer e.Release()
	if err := marshal.EncodeNetwork(e, n); err != nil {
		t.Fatalf("EncodeNetwork: %v", err)
	}
	wire := e.Bytes()
	if len(wire) != 1 || wire[0] != 1 {
		t.Fatalf("testnet wire bytes = %x, want 01", wire)
	}
	ord, ok := b.Descriptor().Ordinal("network", "testnet")
	if !ok || ord != wire[0] {
		t.Fatalf("descriptor ordinal = %d, %v; wire = %d", ord, ok, wire[0])
	}

	back, err := marshal.DecodeNetwork(marshal.NewDecoder(wire))
	if err != nil {
		t.Fatalf("DecodeNetwork: %v", err)
	}
	if back != n {
		t.Fatalf("round trip changed testnet to %v", back)
	}

	name, err := b.NetworkName(back)
	if err != nil || name != "testnet" {
		t.Fatalf("NetworkName = %q, %v", name, err)
	}
}

func TestBridge_TxidAndOutPoint(t *testing.T) {
	b := OpenInProcess()
	defer b.Close()

	txid, err := b.ParseTxid(genesisCoinbase)
	if err != nil {
		t.Fatalf("ParseTxid: %v", err)
	}
	s, err := b.TxidString(txid)
	if err != nil || s != genesisCoinbase {
		t.Fatalf("TxidString = %q, %v", s, err)
	}

	op, err := b.OutPointString(core.OutPoint{Txid: txid, Vout: 0})
	if err != nil || op != genesisCoinbase+":0" {
		t.Fatalf("OutPointString = %q, %v", op, err)
	}

	_, err = b.ParseTxid("zz")
	var de *DomainError
	if !stderrors.As(err, &de) {
		t.Fatalf("ParseTxid error = %T, want *DomainError", err)
	}
	if de.Domain != bridge.DomainTxid {
		t.Errorf("domain = %v, want txid", de.Domain)
	}
}

func hostTree(version string) fstest.MapFS {
	artifactPath := loader.ArtifactPath(version, runtime.GOOS, runtime.GOARCH)
	manifest := fmt.Sprintf("version = %q\n\n[[artifact]]\nos = %q\narch = %q\npath = %q\n",
		version, runtime.GOOS, runtime.GOARCH, artifactPath)

	var header []byte
	switch runtime.GOOS {
	case "windows":
		header = []byte{'M', 'Z', 0x90, 0x00}
	case "darwin":
		header = []byte{0xcf, 0xfa, 0xed, 0xfe}
	default:
		header = []byte{0x7f, 'E', 'L', 'F'}
	}

	return fstest.MapFS{
		"natives/manifest.toml": {Data: []byte(manifest)},
		artifactPath:            {Data: header},
	}
}

func TestOpen_PinsHostArtifact(t *testing.T) {
	b, err := Open(hostTree("0.3.1"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()

	a := b.Artifact()
	if a == nil {
		t.Fatal("Artifact() = nil after Open")
	}
	if a.OS != runtime.GOOS || a.Arch != runtime.GOARCH {
		t.Errorf("artifact platform = %s, want host", a.Platform())
	}

	// The opened bridge is immediately usable.
	amt, err := b.AmountFromSat(42)
	if err != nil {
		t.Fatalf("AmountFromSat: %v", err)
	}
	if err := amt.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
}

func TestOpen_UnsupportedPlatform(t *testing.T) {
	manifest := `
version = "0.3.1"

[[artifact]]
os = "plan9"
arch = "mips"
path = "natives/0.3.1/plan9-mips/libbtcbridge.so"
`
	fsys := fstest.MapFS{
		"natives/manifest.toml":                    {Data: []byte(manifest)},
		"natives/0.3.1/plan9-mips/libbtcbridge.so": {Data: []byte{0x00}},
	}

	_, err := Open(fsys)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindUnsupportedPlatform}) {
		t.Fatalf("Open = %v, want unsupported platform", err)
	}
}

func TestOpen_VersionMismatch(t *testing.T) {
	_, err := Open(hostTree("0.2.0"))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindVersionMismatch}) {
		t.Fatalf("Open = %v, want version mismatch", err)
	}
}

func TestBridge_InProcessHasNoArtifact(t *testing.T) {
	b := OpenInProcess()
	defer b.Close()
	if b.Artifact() != nil {
		t.Fatal("in-process bridge reports an artifact")
	}
}
