package loader

import (
	"errors"
	"testing"
	"testing/fstest"

	bridgeerrors "github.com/coinforge/btcbridge/errors"
)

const testManifest = `
version = "0.3.1"

[[artifact]]
os = "linux"
arch = "amd64"
path = "natives/0.3.1/linux-amd64/libbtcbridge.so"

[[artifact]]
os = "darwin"
arch = "arm64"
path = "natives/0.3.1/darwin-arm64/libbtcbridge.dylib"

[[artifact]]
os = "windows"
arch = "amd64"
path = "natives/0.3.1/windows-amd64/btcbridge.dll"
`

func testTree() fstest.MapFS {
	return fstest.MapFS{
		"natives/manifest.toml": {Data: []byte(testManifest)},
		"natives/0.3.1/linux-amd64/libbtcbridge.so": {
			Data: []byte{0x7f, 'E', 'L', 'F', 0x02, 0x01},
		},
		"natives/0.3.1/darwin-arm64/libbtcbridge.dylib": {
			Data: []byte{0xcf, 0xfa, 0xed, 0xfe, 0x0c},
		},
		"natives/0.3.1/windows-amd64/btcbridge.dll": {
			Data: []byte{'M', 'Z', 0x90, 0x00},
		},
	}
}

func loadKind(err error, kind bridgeerrors.Kind) bool {
	return errors.Is(err, &bridgeerrors.Error{Phase: bridgeerrors.PhaseLoad, Kind: kind})
}

func TestOpenCatalog(t *testing.T) {
	c, err := OpenCatalog(testTree(), DefaultManifestPath)
	if err != nil {
		t.Fatal(err)
	}
	if c.Version().String() != "0.3.1" {
		t.Errorf("Version() = %s", c.Version())
	}

	want := []string{"darwin-arm64", "linux-amd64", "windows-amd64"}
	got := c.Platforms()
	if len(got) != len(want) {
		t.Fatalf("Platforms() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Platforms()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCatalog_Probe(t *testing.T) {
	c, err := OpenCatalog(testTree(), DefaultManifestPath)
	if err != nil {
		t.Fatal(err)
	}

	a, err := c.Probe("linux", "amd64")
	if err != nil {
		t.Fatal(err)
	}
	if a.Path != "natives/0.3.1/linux-amd64/libbtcbridge.so" {
		t.Errorf("Path = %s", a.Path)
	}

	// Exact match only: a near miss is unsupported, not approximated.
	for _, pair := range [][2]string{
		{"linux", "arm64"},
		{"plan9", "amd64"},
		{"", ""},
	} {
		_, err := c.Probe(pair[0], pair[1])
		if !loadKind(err, bridgeerrors.KindUnsupportedPlatform) {
			t.Errorf("Probe(%s, %s): expected unsupported_platform, got %v", pair[0], pair[1], err)
		}
	}
}

func TestCatalog_Verify(t *testing.T) {
	tree := testTree()
	c, err := OpenCatalog(tree, DefaultManifestPath)
	if err != nil {
		t.Fatal(err)
	}

	for _, platform := range [][2]string{{"linux", "amd64"}, {"darwin", "arm64"}, {"windows", "amd64"}} {
		a, err := c.Probe(platform[0], platform[1])
		if err != nil {
			t.Fatal(err)
		}
		if err := c.Verify(a); err != nil {
			t.Errorf("Verify(%s): %v", a.Platform(), err)
		}
	}
}

func TestCatalog_VerifyBadHeader(t *testing.T) {
	tree := testTree()
	tree["natives/0.3.1/linux-amd64/libbtcbridge.so"].Data = []byte{'M', 'Z', 0x00, 0x00}

	c, err := OpenCatalog(tree, DefaultManifestPath)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := c.Probe("linux", "amd64")
	if err := c.Verify(a); !loadKind(err, bridgeerrors.KindInvalidData) {
		t.Fatalf("expected invalid_data, got %v", err)
	}
}

func TestCatalog_VerifyMissingFile(t *testing.T) {
	tree := testTree()
	delete(tree, "natives/0.3.1/linux-amd64/libbtcbridge.so")

	c, err := OpenCatalog(tree, DefaultManifestPath)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := c.Probe("linux", "amd64")
	if err := c.Verify(a); err == nil {
		t.Fatal("expected error for missing artifact file")
	}
}

func TestCatalog_Compatible(t *testing.T) {
	c, err := OpenCatalog(testTree(), DefaultManifestPath)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Compatible("0.3.1"); err != nil {
		t.Errorf("same version incompatible: %v", err)
	}
	if err := c.Compatible("0.2.0"); err != nil {
		t.Errorf("older requirement incompatible: %v", err)
	}
	if err := c.Compatible("0.4.0"); !loadKind(err, bridgeerrors.KindVersionMismatch) {
		t.Errorf("newer requirement: expected version_mismatch, got %v", err)
	}
	if err := c.Compatible("1.0.0"); !loadKind(err, bridgeerrors.KindVersionMismatch) {
		t.Errorf("different major: expected version_mismatch, got %v", err)
	}
}

func TestReadManifest_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{"not toml", "version = [[["},
		{"missing version", `[[artifact]]
os = "linux"
arch = "amd64"
path = "x"`},
		{"incomplete artifact", `version = "0.3.1"
[[artifact]]
os = "linux"`},
		{"duplicate platform", `version = "0.3.1"
[[artifact]]
os = "linux"
arch = "amd64"
path = "a"
[[artifact]]
os = "linux"
arch = "amd64"
path = "b"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"m.toml": {Data: []byte(tt.manifest)}}
			if _, err := ReadManifest(fsys, "m.toml"); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := ReadManifest(fstest.MapFS{}, "missing.toml"); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestLoader_Load(t *testing.T) {
	c, err := OpenCatalog(testTree(), DefaultManifestPath)
	if err != nil {
		t.Fatal(err)
	}

	l := NewLoader(c, "linux", "amd64", "0.3.1")
	a, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}

	// Same outcome on every later call.
	again, err := l.Load()
	if err != nil || again != a {
		t.Errorf("second Load = %v, %v", again, err)
	}
}

func TestLoader_UnsupportedPlatform(t *testing.T) {
	c, err := OpenCatalog(testTree(), DefaultManifestPath)
	if err != nil {
		t.Fatal(err)
	}

	l := NewLoader(c, "plan9", "386", "0.3.1")
	_, err = l.Load()
	if !loadKind(err, bridgeerrors.KindUnsupportedPlatform) {
		t.Fatalf("expected unsupported_platform, got %v", err)
	}

	// The failure is sticky, not retried into a partial load.
	if _, err2 := l.Load(); !errors.Is(err2, err) {
		t.Errorf("second Load changed outcome: %v", err2)
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		os, arch string
		want     string
	}{
		{"linux", "amd64", "natives/0.3.1/linux-amd64/libbtcbridge.so"},
		{"darwin", "arm64", "natives/0.3.1/darwin-arm64/libbtcbridge.dylib"},
		{"windows", "amd64", "natives/0.3.1/windows-amd64/btcbridge.dll"},
	}
	for _, tt := range tests {
		if got := ArtifactPath("0.3.1", tt.os, tt.arch); got != tt.want {
			t.Errorf("ArtifactPath(%s, %s) = %s, want %s", tt.os, tt.arch, got, tt.want)
		}
	}
}
