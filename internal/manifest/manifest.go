// Package manifest loads pyproject.toml and resolves the project's build backend.
package manifest

import (
	"errors"
	"path/filepath"
)

// FileName is the conventional manifest name at the project root.
const FileName = "pyproject.toml"

// ErrNotPep517 signals that the manifest is absent, unparsable, or has no
// build-system.build-backend key. This is an expected, non-fatal outcome:
// the caller should fall back to legacy build handling. It should always be
// wrapped with contextual information at the call site.
var ErrNotPep517 = errors.New("pybuilder: not a PEP 517 project")

// Manifest is the parsed pyproject.toml document.
type Manifest struct {
	// Path is the path of the manifest file this document was read from.
	Path string `toml:"-"`

	BuildSystem BuildSystem `toml:"build-system"`
	Project     Project     `toml:"project"`
}

// BuildSystem mirrors the [build-system] table of pyproject.toml.
type BuildSystem struct {
	Requires     []string `toml:"requires"`
	BuildBackend string   `toml:"build-backend"`
	BackendPath  []string `toml:"backend-path"`
}

// Project mirrors the subset of the [project] table PyBuilder consumes.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Locate returns the manifest path for a project location. The location may
// be the project root directory or the manifest file itself.
func Locate(location string) string {
	if filepath.Base(location) == FileName {
		return location
	}
	return filepath.Join(location, FileName)
}

// IsNotPep517 reports whether err indicates a non-PEP 517 project.
func IsNotPep517(err error) bool {
	return errors.Is(err, ErrNotPep517)
}
