// Package core is the native side of the bridge: a small set of Bitcoin
// value types with their domain invariants.
//
// Every type here is an immutable value. Failures are typed errors carrying a
// stable discriminant code, so the boundary can translate them without
// collapsing distinct failure kinds. Nothing in this package panics on
// malformed input.
//
// The types mirror what the boundary exposes:
//
//	Network   - network selector enum with pinned ordinals
//	Amount    - monetary amount in satoshis, capped at MaxMoney
//	FeeRate   - fee rate in satoshis per 1000 weight units
//	Script    - raw output script bytes with standardness classification
//	Txid      - transaction identifier, hex in display order
//	OutPoint  - (txid, output index) reference
package core
