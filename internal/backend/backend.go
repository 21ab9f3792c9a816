// Package backend models PEP 517 build backends as small capability objects.
//
// A Backend answers what artifact kinds it produces, which directory its
// build frontend writes into, whether it requires build isolation, and which
// command lines drive its build and wheel steps. Backends are selected once
// during manifest resolution and held by the build system as an opaque handle.
package backend

import "path/filepath"

// Backend describes a single PEP 517 build backend implementation.
//
// Implementations are stateless and shared process-wide; all methods must be
// safe for concurrent use.
type Backend interface {
	// Name returns the canonical backend identifier as written in
	// pyproject.toml, e.g. "setuptools.build_meta".
	Name() string

	// DisplayName returns a short human-readable name for logs and UI.
	DisplayName() string

	// ArtifactKinds returns the set of artifact kinds this backend produces.
	// The build system refuses to register artifacts outside this set.
	ArtifactKinds() KindSet

	// BuildDirName returns the directory (relative to the project root) the
	// backend's frontend writes build outputs into.
	BuildDirName() string

	// BuildArgv returns the command that runs a full build.
	BuildArgv() []string

	// WheelArgv returns the command that produces a wheel.
	WheelArgv() []string

	// CleanArgv returns the command that cleans backend state, or nil when
	// the backend has no clean step and the pipeline should remove the
	// build directory itself.
	CleanArgv() []string

	// Isolated reports whether the backend's frontend builds in an isolated
	// environment of its own. Isolated backends must not receive the
	// project's virtual environment.
	Isolated() bool
}

// BuildDir resolves b's build directory against the project root.
func BuildDir(b Backend, root string) string {
	return filepath.Join(root, b.BuildDirName())
}
