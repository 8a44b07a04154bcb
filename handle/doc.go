// Package handle implements the boundary's opaque handle table.
//
// Objects owned by the native core cross the boundary as opaque handles. The
// consumer never sees the memory behind a handle and must release it through
// an explicit destroy call; its garbage collector plays no part.
//
// # Lifecycle
//
// Every handle moves through three states:
//
//	Allocated -> InUse -> Released
//
// Destroy drives the transition to Released exactly once. The table detects
// violations itself rather than trusting the consumer:
//
//	Destroy on a released handle  -> double_free
//	Any other op after release    -> use_after_free
//
// # Generation Tags
//
// A handle packs a slot index and a generation counter. Releasing a slot and
// reusing it for a new object bumps the generation, so a stale handle from a
// previous occupant can never reach the new one. A slot whose generation
// counter is exhausted is retired instead of reused.
//
// # Thread Safety
//
// All operations serialize on one lock. Concurrent destroys of the same
// handle resolve deterministically: exactly one succeeds, the rest observe
// double_free.
package handle
