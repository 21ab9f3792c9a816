// Package buildsys implements the PEP 517 build system aggregate: manifest
// resolution state, the build artifact registry, and installable derivation.
package buildsys

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/pybuilder/internal/backend"
	"git.home.luguber.info/inful/pybuilder/internal/manifest"
	"git.home.luguber.info/inful/pybuilder/internal/metrics"
)

// ID identifies this build system implementation to the host.
const ID = "python_517_build_system"

// DisplayName is the human-readable build system name.
const DisplayName = "Python (pyproject.toml)"

// DiscoveryPriority ranks this build system against competing strategies
// during project discovery.
const DiscoveryPriority = 500

// Discovery describes how a host locates projects this build system can
// handle: a glob matched against files in the project directory, a hint
// naming the plugin, and a match priority.
type Discovery struct {
	Glob     string
	Hint     string
	Priority int
}

// DefaultDiscovery returns the discovery rule for PEP 517 projects.
func DefaultDiscovery() Discovery {
	return Discovery{Glob: manifest.FileName, Hint: "pybuilder", Priority: DiscoveryPriority}
}

// BuildSystem is the aggregate root for one project. It owns the resolved
// backend and the artifact registry exclusively.
//
// A BuildSystem is not safe for concurrent use; the build pipeline runs one
// phase at a time, so callers that introduce additional writers (such as a
// filesystem watcher) must serialize access themselves.
type BuildSystem struct {
	root     string
	registry *backend.Registry
	recorder metrics.Recorder
	emit     func(evt any)

	manifest *manifest.Manifest
	backend  backend.Backend

	artifacts map[string]Artifact
	order     []string

	envPath string
}

// Option configures a BuildSystem.
type Option func(*BuildSystem)

// WithRecorder injects a metrics recorder (defaults to NoopRecorder).
func WithRecorder(r metrics.Recorder) Option {
	return func(bs *BuildSystem) { bs.recorder = r }
}

// WithEventSink injects a callback invoked for artifact and registry events.
func WithEventSink(emit func(evt any)) Option {
	return func(bs *BuildSystem) { bs.emit = emit }
}

// New creates a BuildSystem for the project rooted at root. Call Init to
// resolve the manifest before using backend-dependent operations.
func New(root string, registry *backend.Registry, opts ...Option) *BuildSystem {
	bs := &BuildSystem{
		root:      root,
		registry:  registry,
		recorder:  metrics.NoopRecorder{},
		artifacts: make(map[string]Artifact),
	}
	for _, opt := range opts {
		opt(bs)
	}
	return bs
}

// Init resolves the project manifest and selects the build backend.
//
// A NotPep517 outcome disqualifies this build system for the project and is
// returned as-is for the caller to fall back on; it never panics the host.
// Init must complete (success or failure) before a pipeline stage attaches.
func (bs *BuildSystem) Init(ctx context.Context) error {
	res, err := manifest.Resolve(ctx, bs.root, bs.registry)
	if err != nil {
		switch {
		case manifest.IsNotPep517(err):
			bs.recorder.IncResolveOutcome("not_pep517")
		case ctx.Err() != nil:
			// cancelled; no outcome to record
		default:
			bs.recorder.IncResolveOutcome("io_error")
		}
		return err
	}

	bs.manifest = res.Manifest
	bs.backend = res.Backend
	if res.Backend == nil {
		bs.recorder.IncResolveOutcome("unsupported_backend")
		slog.Info("PEP 517 manifest recognized but backend is unsupported",
			"backend", res.Manifest.BuildSystem.BuildBackend)
	} else {
		bs.recorder.IncResolveOutcome("pep517")
	}
	return nil
}

// Root returns the project root directory.
func (bs *BuildSystem) Root() string { return bs.root }

// Manifest returns the resolved manifest, or nil before Init succeeds.
func (bs *BuildSystem) Manifest() *manifest.Manifest { return bs.manifest }

// Backend returns the resolved backend. It is nil before Init succeeds and
// stays nil when the manifest names an unsupported backend.
func (bs *BuildSystem) Backend() backend.Backend { return bs.backend }

// BuildDir returns the backend's build directory, or the project root when
// no backend is resolved.
func (bs *BuildSystem) BuildDir() string {
	if bs.backend == nil {
		return bs.root
	}
	return backend.BuildDir(bs.backend, bs.root)
}

// SetEnvPath records the resolved virtual environment path ("" means none).
func (bs *BuildSystem) SetEnvPath(path string) { bs.envPath = path }

// EnvPath returns the resolved virtual environment path ("" means none).
func (bs *BuildSystem) EnvPath() string { return bs.envPath }

func (bs *BuildSystem) publish(evt any) {
	if bs.emit != nil {
		bs.emit(evt)
	}
}
