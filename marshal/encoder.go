package marshal

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/coinforge/btcbridge/errors"
)

// Safety limits for variable-length values.
const (
	MaxStringSize = 1 << 24 // 16 MB
	MaxBytesLen   = 1 << 24 // 16 MB
)

// Encoder appends wire bytes for Go values. Obtain with NewEncoder and give
// the backing buffer back with Release when done.
type Encoder struct {
	buf *[]byte
}

func NewEncoder() *Encoder {
	return &Encoder{buf: getBuf()}
}

// Bytes returns the encoded bytes. The slice aliases the encoder's buffer
// and is invalid after Release.
func (e *Encoder) Bytes() []byte {
	return *e.buf
}

// Detach returns a copy of the encoded bytes and resets the encoder.
func (e *Encoder) Detach() []byte {
	out := make([]byte, len(*e.buf))
	copy(out, *e.buf)
	*e.buf = (*e.buf)[:0]
	return out
}

// Reset discards any encoded bytes.
func (e *Encoder) Reset() {
	*e.buf = (*e.buf)[:0]
}

// Release returns the backing buffer to the pool. The encoder must not be
// used afterwards.
func (e *Encoder) Release() {
	if e.buf != nil {
		putBuf(e.buf)
		e.buf = nil
	}
}

func (e *Encoder) PutBool(v bool) {
	var b byte
	if v {
		b = 1
	}
	*e.buf = append(*e.buf, b)
}

func (e *Encoder) PutU8(v uint8) {
	*e.buf = append(*e.buf, v)
}

func (e *Encoder) PutU16(v uint16) {
	*e.buf = binary.LittleEndian.AppendUint16(*e.buf, v)
}

func (e *Encoder) PutU32(v uint32) {
	*e.buf = binary.LittleEndian.AppendUint32(*e.buf, v)
}

func (e *Encoder) PutU64(v uint64) {
	*e.buf = binary.LittleEndian.AppendUint64(*e.buf, v)
}

func (e *Encoder) PutF64(v float64) {
	e.PutU64(math.Float64bits(v))
}

// PutString appends a u32 length prefix and the UTF-8 bytes. Strings that
// are not valid UTF-8 never reach the wire.
func (e *Encoder) PutString(s string) error {
	if len(s) > MaxStringSize {
		return errors.Overflow(errors.PhaseEncode, nil, len(s), "string")
	}
	if !utf8.ValidString(s) {
		return errors.InvalidUTF8(errors.PhaseEncode, nil, []byte(s))
	}
	e.PutU32(uint32(len(s)))
	*e.buf = append(*e.buf, s...)
	return nil
}

// PutBytes appends a u32 length prefix and the raw bytes.
func (e *Encoder) PutBytes(b []byte) error {
	if len(b) > MaxBytesLen {
		return errors.Overflow(errors.PhaseEncode, nil, len(b), "bytes")
	}
	e.PutU32(uint32(len(b)))
	*e.buf = append(*e.buf, b...)
	return nil
}
