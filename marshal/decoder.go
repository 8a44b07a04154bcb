package marshal

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/coinforge/btcbridge/errors"
)

// Decoder reads wire bytes back into Go values. All reads are bounds-checked;
// malformed input produces a structured decode error, never a panic.
type Decoder struct {
	buf  []byte
	off  int
	path []string
}

func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.off
}

// Finish fails if unread bytes remain. Call after decoding a complete value
// to reject padded or concatenated payloads.
func (d *Decoder) Finish() error {
	if n := d.Remaining(); n > 0 {
		return errors.TrailingData(d.pathCopy(), n)
	}
	return nil
}

// push adds a path segment for error context.
func (d *Decoder) push(segment string) {
	d.path = append(d.path, segment)
}

func (d *Decoder) pop() {
	d.path = d.path[:len(d.path)-1]
}

func (d *Decoder) pathCopy() []string {
	if len(d.path) == 0 {
		return nil
	}
	out := make([]string, len(d.path))
	copy(out, d.path)
	return out
}

func (d *Decoder) take(n int) ([]byte, error) {
	if d.Remaining() < n {
		return nil, errors.Truncated(errors.PhaseDecode, d.pathCopy(), n, d.Remaining())
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *Decoder) Bool() (bool, error) {
	b, err := d.take(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Path(d.pathCopy()...).
		Detail("bool byte %#x", b[0]).
		Build()
}

func (d *Decoder) U8() (uint8, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) U16() (uint16, error) {
	b, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *Decoder) U32() (uint32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *Decoder) U64() (uint64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *Decoder) F64() (float64, error) {
	bits, err := d.U64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// String reads a u32 length prefix and that many UTF-8 bytes. The length is
// checked against MaxStringSize before any allocation.
func (d *Decoder) String() (string, error) {
	n, err := d.U32()
	if err != nil {
		return "", err
	}
	if n > MaxStringSize {
		return "", errors.Overflow(errors.PhaseDecode, d.pathCopy(), n, "string")
	}
	b, err := d.take(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, d.pathCopy(), b)
	}
	return string(b), nil
}

// Bytes reads a u32 length prefix and that many raw bytes. The returned
// slice is a copy and safe to retain.
func (d *Decoder) Bytes() ([]byte, error) {
	n, err := d.U32()
	if err != nil {
		return nil, err
	}
	if n > MaxBytesLen {
		return nil, errors.Overflow(errors.PhaseDecode, d.pathCopy(), n, "bytes")
	}
	b, err := d.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}
