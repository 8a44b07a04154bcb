package loader

import (
	"io"
	"io/fs"
	"sort"
	"sync"

	"github.com/coreos/go-semver/semver"
	"go.uber.org/zap"

	"github.com/coinforge/btcbridge/errors"
)

// Catalog indexes a release tree's artifacts by platform.
type Catalog struct {
	fsys      fs.FS
	version   *semver.Version
	artifacts map[string]*Artifact
}

// OpenCatalog reads the manifest from a release tree and indexes it.
func OpenCatalog(fsys fs.FS, manifestPath string) (*Catalog, error) {
	m, err := ReadManifest(fsys, manifestPath)
	if err != nil {
		return nil, err
	}

	version, err := semver.NewVersion(m.Version)
	if err != nil {
		return nil, errors.Load("manifest version "+m.Version, err)
	}

	c := &Catalog{
		fsys:      fsys,
		version:   version,
		artifacts: make(map[string]*Artifact, len(m.Artifacts)),
	}
	for _, a := range m.Artifacts {
		art := &Artifact{
			Version: version,
			OS:      a.OS,
			Arch:    a.Arch,
			Path:    a.Path,
		}
		c.artifacts[art.Platform()] = art
	}

	Logger().Debug("catalog opened",
		zap.String("manifest", manifestPath),
		zap.String("version", version.String()),
		zap.Int("artifacts", len(c.artifacts)))
	return c, nil
}

// Version returns the release version the catalog describes.
func (c *Catalog) Version() *semver.Version {
	return c.version
}

// Platforms returns the supported "<os>-<arch>" pairs, sorted.
func (c *Catalog) Platforms() []string {
	out := make([]string, 0, len(c.artifacts))
	for k := range c.artifacts {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Probe finds the artifact for an exact (OS, architecture) pair.
func (c *Catalog) Probe(osName, arch string) (*Artifact, error) {
	a, ok := c.artifacts[osName+"-"+arch]
	if !ok {
		return nil, errors.UnsupportedPlatform(osName, arch)
	}
	return a, nil
}

// Verify checks that an artifact's file exists and carries the header its
// platform's binary format requires.
func (c *Catalog) Verify(a *Artifact) error {
	f, err := c.fsys.Open(a.Path)
	if err != nil {
		return errors.Load("open artifact "+a.Path, err)
	}
	defer f.Close()

	header := make([]byte, 4)
	n, err := io.ReadFull(f, header)
	if err != nil && n == 0 {
		return errors.InvalidData(errors.PhaseLoad, []string{a.Path}, "artifact is empty")
	}
	if !magicMatches(a.OS, header[:n]) {
		return errors.New(errors.PhaseLoad, errors.KindInvalidData).
			Path(a.Path).
			Detail("header %x is not a %s library", header[:n], a.OS).
			Build()
	}
	return nil
}

// Compatible checks the catalog version against a required boundary version:
// same major, and at least the required release.
func (c *Catalog) Compatible(required string) error {
	req, err := semver.NewVersion(required)
	if err != nil {
		return errors.Load("required version "+required, err)
	}
	if c.version.Major != req.Major || c.version.LessThan(*req) {
		return errors.VersionMismatch(c.version.String(), ">="+required)
	}
	return nil
}

// Loader resolves one platform's artifact lazily, exactly once. Either every
// check passes and the artifact is available, or the loader stays failed -
// a partial load cannot be observed.
type Loader struct {
	catalog  *Catalog
	osName   string
	arch     string
	required string

	once     sync.Once
	artifact *Artifact
	err      error
}

// NewLoader binds a loader to a platform and a required boundary version.
func NewLoader(c *Catalog, osName, arch, requiredVersion string) *Loader {
	return &Loader{
		catalog:  c,
		osName:   osName,
		arch:     arch,
		required: requiredVersion,
	}
}

// Load probes, verifies and version-checks the artifact on first call; every
// later call returns the same outcome.
func (l *Loader) Load() (*Artifact, error) {
	l.once.Do(func() {
		a, err := l.catalog.Probe(l.osName, l.arch)
		if err != nil {
			l.err = err
			return
		}
		if err := l.catalog.Compatible(l.required); err != nil {
			l.err = err
			return
		}
		if err := l.catalog.Verify(a); err != nil {
			l.err = err
			return
		}
		l.artifact = a
		Logger().Info("native artifact loaded",
			zap.String("platform", a.Platform()),
			zap.String("path", a.Path))
	})
	return l.artifact, l.err
}
