package marshal

import (
	"errors"
	"testing"

	"github.com/coinforge/btcbridge/core"
	"github.com/coinforge/btcbridge/descriptor"
	bridgeerrors "github.com/coinforge/btcbridge/errors"
)

func TestNetwork_RoundTrip(t *testing.T) {
	for n := core.Network(0); int(n) < core.NetworkCount; n++ {
		e := NewEncoder()
		if err := EncodeNetwork(e, n); err != nil {
			t.Fatalf("EncodeNetwork(%s): %v", n, err)
		}

		d := NewDecoder(e.Bytes())
		got, err := DecodeNetwork(d)
		if err != nil {
			t.Fatalf("DecodeNetwork(%s): %v", n, err)
		}
		if got != n {
			t.Errorf("round trip %s -> %s", n, got)
		}
		if err := d.Finish(); err != nil {
			t.Errorf("Finish: %v", err)
		}
		e.Release()
	}
}

// The wire ordinal written for a network must be exactly the ordinal the
// boundary descriptor pins for its name.
func TestNetwork_WireOrdinalMatchesDescriptor(t *testing.T) {
	desc := descriptor.Bitcoin()
	for n := core.Network(0); int(n) < core.NetworkCount; n++ {
		e := NewEncoder()
		if err := EncodeNetwork(e, n); err != nil {
			t.Fatal(err)
		}
		wire := e.Bytes()
		if len(wire) != 1 {
			t.Fatalf("network wire width = %d bytes, want 1", len(wire))
		}

		pinned, ok := desc.Ordinal("network", n.String())
		if !ok {
			t.Fatalf("descriptor has no ordinal for %q", n.String())
		}
		if wire[0] != pinned {
			t.Errorf("%s crosses as ordinal %d, descriptor pins %d", n, wire[0], pinned)
		}
		e.Release()
	}
}

func TestNetwork_Errors(t *testing.T) {
	e := NewEncoder()
	defer e.Release()
	if err := EncodeNetwork(e, core.Network(200)); err == nil {
		t.Error("invalid network accepted on encode")
	}

	_, err := DecodeNetwork(NewDecoder([]byte{0x05}))
	if !errors.Is(err, &bridgeerrors.Error{Phase: bridgeerrors.PhaseDecode, Kind: bridgeerrors.KindInvalidOrdinal}) {
		t.Fatalf("expected invalid_ordinal, got %v", err)
	}
}

func TestAmount_RoundTrip(t *testing.T) {
	for _, sat := range []uint64{0, 1, 15_000, core.MaxMoney} {
		a, err := core.AmountFromSat(sat)
		if err != nil {
			t.Fatal(err)
		}

		e := NewEncoder()
		EncodeAmount(e, a)
		got, err := DecodeAmount(NewDecoder(e.Bytes()))
		if err != nil {
			t.Fatalf("DecodeAmount(%d): %v", sat, err)
		}
		if got != a {
			t.Errorf("round trip %d sat -> %d sat", sat, got.Sat())
		}
		e.Release()
	}
}

func TestAmount_DecodeAboveMaxMoney(t *testing.T) {
	e := NewEncoder()
	defer e.Release()
	e.PutU64(core.MaxMoney + 1)

	_, err := DecodeAmount(NewDecoder(e.Bytes()))
	if !errors.Is(err, &bridgeerrors.Error{Phase: bridgeerrors.PhaseDecode, Kind: bridgeerrors.KindInvalidData}) {
		t.Fatalf("expected invalid_data, got %v", err)
	}
}

func TestFeeRate_RoundTrip(t *testing.T) {
	f := core.FeeRateFromSatPerKWU(12_345)

	e := NewEncoder()
	defer e.Release()
	EncodeFeeRate(e, f)

	got, err := DecodeFeeRate(NewDecoder(e.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got != f {
		t.Errorf("round trip %s -> %s", f, got)
	}
}

func TestScript_RoundTrip(t *testing.T) {
	s := core.NewScript([]byte{0x00, 0x14, 0xde, 0xad})

	e := NewEncoder()
	defer e.Release()
	if err := EncodeScript(e, s); err != nil {
		t.Fatal(err)
	}

	got, err := DecodeScript(NewDecoder(e.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(s) {
		t.Errorf("round trip %s -> %s", s, got)
	}
}

func TestTxid_RoundTrip(t *testing.T) {
	txid, err := core.ParseTxid("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b")
	if err != nil {
		t.Fatal(err)
	}

	e := NewEncoder()
	defer e.Release()
	if err := EncodeTxid(e, txid); err != nil {
		t.Fatal(err)
	}

	got, err := DecodeTxid(NewDecoder(e.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got != txid {
		t.Errorf("round trip %s -> %s", txid, got)
	}
}

func TestTxid_DecodeWrongLength(t *testing.T) {
	e := NewEncoder()
	defer e.Release()
	if err := e.PutBytes(make([]byte, 31)); err != nil {
		t.Fatal(err)
	}

	_, err := DecodeTxid(NewDecoder(e.Bytes()))
	if !errors.Is(err, &bridgeerrors.Error{Phase: bridgeerrors.PhaseDecode, Kind: bridgeerrors.KindInvalidData}) {
		t.Fatalf("expected invalid_data, got %v", err)
	}
}

func TestOutPoint_RoundTrip(t *testing.T) {
	txid, err := core.ParseTxid("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b")
	if err != nil {
		t.Fatal(err)
	}
	op := core.OutPoint{Txid: txid, Vout: 2}

	e := NewEncoder()
	defer e.Release()
	if err := EncodeOutPoint(e, op); err != nil {
		t.Fatal(err)
	}

	d := NewDecoder(e.Bytes())
	got, err := DecodeOutPoint(d)
	if err != nil {
		t.Fatal(err)
	}
	if got != op {
		t.Errorf("round trip %s -> %s", op, got)
	}
	if err := d.Finish(); err != nil {
		t.Errorf("Finish: %v", err)
	}
}

func FuzzDecodeOutPoint(f *testing.F) {
	e := NewEncoder()
	txid, _ := core.ParseTxid("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b")
	_ = EncodeOutPoint(e, core.OutPoint{Txid: txid, Vout: 1})
	f.Add(e.Detach())
	e.Release()

	f.Add([]byte{})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff})

	f.Fuzz(func(t *testing.T, data []byte) {
		d := NewDecoder(data)
		op, err := DecodeOutPoint(d)
		if err != nil {
			return
		}
		// Whatever decoded must re-encode to an equal value.
		e := NewEncoder()
		defer e.Release()
		if err := EncodeOutPoint(e, op); err != nil {
			t.Fatalf("decoded out-point fails to encode: %v", err)
		}
		again, err := DecodeOutPoint(NewDecoder(e.Bytes()))
		if err != nil {
			t.Fatalf("re-decode: %v", err)
		}
		if again != op {
			t.Fatalf("round trip drift: %s -> %s", op, again)
		}
	})
}
