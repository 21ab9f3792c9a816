package manifest

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"

	"git.home.luguber.info/inful/pybuilder/internal/backend"
	pberrors "git.home.luguber.info/inful/pybuilder/internal/errors"
)

// Resolution is the outcome of a successful manifest resolution.
//
// Backend is nil when the manifest names a backend that is not present in the
// registry ("recognized manifest, unsupported backend"). Callers must check
// for a nil backend before invoking backend-dependent operations.
type Resolution struct {
	Manifest *Manifest
	Backend  backend.Backend
}

// Resolve loads and parses the manifest for the project at location and
// selects a backend from the registry.
//
// Exactly one file read is performed; transient I/O failures are surfaced to
// the caller without retries. An absent or unparsable manifest, or one
// missing the build-system.build-backend string key, fails with ErrNotPep517.
// Cancellation via ctx surfaces context.Canceled and leaves no state behind.
func Resolve(ctx context.Context, location string, registry *backend.Registry) (*Resolution, error) {
	path := Locate(location)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pberrors.ManifestNotPep517(path, ErrNotPep517)
		}
		// Permissions and other I/O failures are not a PEP 517 verdict.
		return nil, pberrors.ManifestReadFailed(path, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := Parse(data)
	if err != nil {
		return nil, pberrors.ManifestNotPep517(path, err)
	}
	m.Path = path

	b, ok := registry.Lookup(m.BuildSystem.BuildBackend)
	if !ok {
		slog.Debug("Recognized PEP 517 manifest with unsupported backend",
			"path", path, "backend", m.BuildSystem.BuildBackend)
		return &Resolution{Manifest: m}, nil
	}

	slog.Debug("Resolved build backend", "path", path, "backend", b.Name())
	return &Resolution{Manifest: m, Backend: b}, nil
}

// Parse decodes raw pyproject.toml bytes and validates PEP 517 applicability.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		// Unparsable documents disqualify this build system rather than
		// crashing the host; the decode detail stays in the chain for logs.
		return nil, fmt.Errorf("%w: %w", ErrNotPep517, err)
	}
	if m.BuildSystem.BuildBackend == "" {
		return nil, ErrNotPep517
	}
	return &m, nil
}
