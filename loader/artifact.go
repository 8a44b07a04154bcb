package loader

import (
	"path"

	"github.com/coreos/go-semver/semver"
)

// Artifact is one compiled native library for a (OS, architecture) pair.
// Built once per release and immutable afterwards.
type Artifact struct {
	Version *semver.Version
	OS      string
	Arch    string
	Path    string
}

// Platform returns the "<os>-<arch>" pair the artifact targets.
func (a *Artifact) Platform() string {
	return a.OS + "-" + a.Arch
}

// LibraryName returns the shared library file name for an OS.
func LibraryName(osName string) string {
	switch osName {
	case "windows":
		return "btcbridge.dll"
	case "darwin":
		return "libbtcbridge.dylib"
	default:
		return "libbtcbridge.so"
	}
}

// ArtifactPath returns the conventional resource path for a platform's
// artifact under a given release version.
func ArtifactPath(version, osName, arch string) string {
	return path.Join("natives", version, osName+"-"+arch, LibraryName(osName))
}

// Header magic per executable format. An artifact whose first bytes do not
// match its platform's format is a packaging mistake, caught before any
// attempt to use it.
var formatMagics = map[string][][]byte{
	"linux":   {{0x7f, 'E', 'L', 'F'}},
	"windows": {{'M', 'Z'}},
	"darwin": {
		{0xcf, 0xfa, 0xed, 0xfe}, // Mach-O 64-bit, little-endian on disk
		{0xca, 0xfe, 0xba, 0xbe}, // universal binary
	},
}

func magicMatches(osName string, header []byte) bool {
	magics, ok := formatMagics[osName]
	if !ok {
		// Unknown OS: nothing to check against.
		return true
	}
	for _, m := range magics {
		if len(header) >= len(m) && string(header[:len(m)]) == string(m) {
			return true
		}
	}
	return false
}
