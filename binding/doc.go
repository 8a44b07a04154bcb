// Package binding is the consumer side of the boundary. It wraps the
// flat call surface in Go-shaped objects, decodes failure statuses back
// into typed errors, and ties handle ownership to explicit Destroy
// calls.
//
// A Bridge opened with OpenInProcess talks to the statically linked
// core directly. Open locates, verifies and pins a platform artifact
// from a native catalog first, failing with an unsupported-platform
// error before a single boundary call is made.
package binding
