// Package bridge is the native side of the boundary. It exposes the
// descriptor's functions as a flat call surface over a generation-tagged
// handle table, translates typed domain errors into status payloads, and
// guarantees that no panic ever crosses the boundary.
//
// Every exported call returns a btcbridge.Status alongside its results.
// A caller must check Status.OK() before trusting the results; on
// failure the status payload carries an encoded error record that the
// consumer side decodes back into a typed error.
package bridge
