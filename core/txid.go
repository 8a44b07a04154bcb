package core

import (
	"encoding/hex"
	"fmt"
)

// TxidLen is the byte length of a transaction identifier.
const TxidLen = 32

// Txid identifies a transaction. Stored in internal (hash) byte order; the
// string form is the conventional display order, which is byte-reversed.
type Txid struct {
	hash [TxidLen]byte
}

// TxidErrorCode is the stable discriminant for txid failures.
type TxidErrorCode uint8

const (
	TxidInvalidLength TxidErrorCode = iota
	TxidInvalidHex
)

func (c TxidErrorCode) String() string {
	switch c {
	case TxidInvalidLength:
		return "invalid_length"
	case TxidInvalidHex:
		return "invalid_hex"
	}
	return "unknown"
}

// TxidError reports why a txid string could not be parsed.
type TxidError struct {
	Detail string
	Code   TxidErrorCode
}

func (e *TxidError) Error() string {
	if e.Detail == "" {
		return "txid: " + e.Code.String()
	}
	return fmt.Sprintf("txid: %s: %s", e.Code, e.Detail)
}

// ParseTxid parses a 64-character display-order hex string.
func ParseTxid(s string) (Txid, error) {
	if len(s) != TxidLen*2 {
		return Txid{}, &TxidError{
			Code:   TxidInvalidLength,
			Detail: fmt.Sprintf("%d characters, want %d", len(s), TxidLen*2),
		}
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Txid{}, &TxidError{Code: TxidInvalidHex, Detail: err.Error()}
	}

	var t Txid
	for i, b := range raw {
		t.hash[TxidLen-1-i] = b
	}
	return t, nil
}

// TxidFromBytes constructs a txid from internal-order bytes, as they appear
// on the wire.
func TxidFromBytes(b []byte) (Txid, error) {
	if len(b) != TxidLen {
		return Txid{}, &TxidError{
			Code:   TxidInvalidLength,
			Detail: fmt.Sprintf("%d bytes, want %d", len(b), TxidLen),
		}
	}
	var t Txid
	copy(t.hash[:], b)
	return t, nil
}

// Bytes returns the internal-order bytes.
func (t Txid) Bytes() []byte {
	out := make([]byte, TxidLen)
	copy(out, t.hash[:])
	return out
}

// String returns the display-order hex form. ParseTxid(t.String()) == t.
func (t Txid) String() string {
	var display [TxidLen]byte
	for i, b := range t.hash {
		display[TxidLen-1-i] = b
	}
	return hex.EncodeToString(display[:])
}
