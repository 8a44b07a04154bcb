// Package btcbridge implements a hand-rolled foreign-function boundary for a
// small set of Bitcoin value types.
//
// The native side is a compact domain core (networks, scripts, amounts, fee
// rates, transaction identifiers). The consumer side is an idiomatic wrapper
// that reaches the core only through a flat, C-style call surface: scalars,
// marshalled byte buffers, and opaque handles. Everything a binding generator
// would normally emit is written out by hand here and pinned by tests.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	btcbridge/           Root package with the boundary status contract
//	├── core/            Native domain core (Network, Script, Amount, FeeRate, Txid, OutPoint)
//	├── descriptor/      Pinned boundary tables: types, ordinals, functions
//	├── marshal/         Wire encoding/decoding for everything crossing the boundary
//	├── handle/          Generation-tagged handle table for opaque objects
//	├── loader/          Platform artifact catalog and deterministic probing
//	├── bridge/          Flat exported call surface and error translation
//	├── binding/         Consumer-side wrapper built on the flat surface
//	└── errors/          Structured error types shared by every layer
//
// # Quick Start
//
// Open the in-process bridge and use the consumer wrapper:
//
//	b := binding.OpenInProcess()
//
//	script, err := b.NewScript([]byte{0x00, 0x14})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer script.Destroy()
//
//	raw, err := script.Bytes()
//
// # Boundary Contract
//
// Every exported operation is a flat function: parameters and results are
// primitive scalars, length-prefixed byte buffers, or opaque handles. Failures
// cross the boundary as tagged Status values, never as panics. Enum ordinals
// are pinned by the descriptor package and regression-tested so an already
// compiled consumer never observes a silent renumbering.
//
// # Handle Lifecycle
//
// Objects allocated by the core (Script, Amount, FeeRate) are held behind
// generation-tagged handles. Destruction is explicit and exactly-once: a
// second destroy reports a double free, any later operation reports a use
// after free. The consumer's garbage collector is never trusted to release
// native memory.
//
// # Thread Safety
//
// Value types are immutable and safe to share. The handle table serializes
// lifecycle transitions, so concurrent destroys of one handle resolve
// deterministically: one caller wins, the rest get a lifecycle error.
package btcbridge
