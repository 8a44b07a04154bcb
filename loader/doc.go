// Package loader locates the compiled native artifact for a platform.
//
// Artifacts live at a predictable, versioned resource path:
//
//	natives/<version>/<os>-<arch>/<library name>
//
// and are declared in a TOML manifest (natives/manifest.toml). Probing is an
// exact match on the (OS, architecture) pair - no fallback chains, no
// guessing. A platform without an artifact fails with an
// unsupported_platform error before any boundary call is attempted.
//
// Loading is lazy and atomic: the first use probes, verifies the artifact
// header against the platform's binary format, and checks the manifest
// version against the boundary declaration. Either everything passes and the
// artifact is usable, or nothing is loaded. A garbled half-load cannot be
// observed.
//
// The package works against io/fs, so release builds can embed the native
// tree and tests can fabricate one with fstest.MapFS.
package loader
