package core

import (
	"bytes"
	"encoding/hex"
)

// Script wraps a raw output script. The bytes are copied on construction and
// never mutated afterwards, so a Script is safe to share across goroutines.
type Script struct {
	raw []byte
}

// Script opcodes needed for standardness classification.
const (
	opDup         = 0x76
	opHash160     = 0xa9
	opEqual       = 0x87
	opEqualVerify = 0x88
	opCheckSig    = 0xac
	op0           = 0x00
	op1           = 0x51
	op16          = 0x60
)

// ScriptType classifies an output script by its standard template.
type ScriptType uint8

const (
	ScriptNonStandard ScriptType = iota
	ScriptP2PKH
	ScriptP2SH
	ScriptP2WPKH
	ScriptP2WSH
	ScriptP2TR
	ScriptWitnessUnknown
)

var scriptTypeNames = [...]string{
	ScriptNonStandard:    "non_standard",
	ScriptP2PKH:          "p2pkh",
	ScriptP2SH:           "p2sh",
	ScriptP2WPKH:         "p2wpkh",
	ScriptP2WSH:          "p2wsh",
	ScriptP2TR:           "p2tr",
	ScriptWitnessUnknown: "witness_unknown",
}

func (t ScriptType) String() string {
	if int(t) < len(scriptTypeNames) {
		return scriptTypeNames[t]
	}
	return "unknown"
}

// NewScript wraps raw output script bytes. Any byte sequence is a valid
// script; validity of the spend path is not this layer's concern.
func NewScript(raw []byte) Script {
	return Script{raw: bytes.Clone(raw)}
}

// Bytes returns a copy of the raw script.
func (s Script) Bytes() []byte {
	return bytes.Clone(s.raw)
}

// Len returns the script length in bytes.
func (s Script) Len() int { return len(s.raw) }

// IsEmpty reports whether the script has no bytes.
func (s Script) IsEmpty() bool { return len(s.raw) == 0 }

// Equal reports byte equality.
func (s Script) Equal(other Script) bool {
	return bytes.Equal(s.raw, other.raw)
}

// Type classifies the script against the standard output templates.
func (s Script) Type() ScriptType {
	raw := s.raw
	switch {
	case len(raw) == 25 &&
		raw[0] == opDup && raw[1] == opHash160 && raw[2] == 20 &&
		raw[23] == opEqualVerify && raw[24] == opCheckSig:
		return ScriptP2PKH
	case len(raw) == 23 &&
		raw[0] == opHash160 && raw[1] == 20 && raw[22] == opEqual:
		return ScriptP2SH
	}

	if version, program, ok := s.witnessProgram(); ok {
		switch {
		case version == 0 && len(program) == 20:
			return ScriptP2WPKH
		case version == 0 && len(program) == 32:
			return ScriptP2WSH
		case version == 1 && len(program) == 32:
			return ScriptP2TR
		default:
			return ScriptWitnessUnknown
		}
	}

	return ScriptNonStandard
}

// witnessProgram returns (version, program, true) if the script is a witness
// program: a version opcode followed by a single 2..40 byte direct push.
func (s Script) witnessProgram() (byte, []byte, bool) {
	raw := s.raw
	if len(raw) < 4 || len(raw) > 42 {
		return 0, nil, false
	}
	var version byte
	switch {
	case raw[0] == op0:
		version = 0
	case raw[0] >= op1 && raw[0] <= op16:
		version = raw[0] - op1 + 1
	default:
		return 0, nil, false
	}
	push := int(raw[1])
	if push < 2 || push > 40 || push != len(raw)-2 {
		return 0, nil, false
	}
	return version, raw[2:], true
}

func (s Script) String() string {
	return hex.EncodeToString(s.raw)
}
