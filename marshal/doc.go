// Package marshal implements the wire format used at the boundary.
//
// The format is deliberately dumb: little-endian scalars of explicit width,
// u32 length-prefixed UTF-8 strings and byte lists, enums as a single pinned
// ordinal byte, records as their fields in declared order with no padding.
// Every valid value round-trips exactly: Decode(Encode(x)) == x.
//
// # Key Types
//
//	Encoder - appends wire bytes for Go values
//	Decoder - reads wire bytes back, failing loudly on malformed input
//
// Malformed input is never undefined behavior: truncation, invalid UTF-8,
// out-of-table ordinals, oversized lengths and trailing bytes each produce a
// structured decode error.
//
// # Safety Limits
//
// Strings and byte lists are capped at MaxStringSize/MaxBytesLen before any
// allocation happens, so a hostile length prefix cannot exhaust memory.
//
// # Thread Safety
//
// Encoder and Decoder maintain internal state and are NOT thread-safe.
// Use separate instances per goroutine.
package marshal
