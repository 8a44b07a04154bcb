package loader

import (
	"io/fs"

	"github.com/pelletier/go-toml/v2"

	"github.com/coinforge/btcbridge/errors"
)

// DefaultManifestPath is where a release tree declares its artifacts.
const DefaultManifestPath = "natives/manifest.toml"

// Manifest is the on-disk artifact declaration.
type Manifest struct {
	Version   string             `toml:"version"`
	Artifacts []ManifestArtifact `toml:"artifact"`
}

// ManifestArtifact is one artifact entry in the manifest.
type ManifestArtifact struct {
	OS   string `toml:"os"`
	Arch string `toml:"arch"`
	Path string `toml:"path"`
}

// ReadManifest parses and structurally checks a manifest file.
func ReadManifest(fsys fs.FS, manifestPath string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, manifestPath)
	if err != nil {
		return nil, errors.Load("read manifest "+manifestPath, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Load("parse manifest "+manifestPath, err)
	}

	if m.Version == "" {
		return nil, errors.InvalidData(errors.PhaseLoad, []string{manifestPath}, "manifest missing version")
	}
	seen := make(map[string]struct{}, len(m.Artifacts))
	for _, a := range m.Artifacts {
		if a.OS == "" || a.Arch == "" || a.Path == "" {
			return nil, errors.InvalidData(errors.PhaseLoad, []string{manifestPath},
				"artifact entry missing os, arch or path")
		}
		key := a.OS + "-" + a.Arch
		if _, dup := seen[key]; dup {
			return nil, errors.InvalidData(errors.PhaseLoad, []string{manifestPath, key},
				"duplicate artifact for platform")
		}
		seen[key] = struct{}{}
	}
	return &m, nil
}
