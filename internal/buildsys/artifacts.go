package buildsys

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/pybuilder/internal/backend"
	"git.home.luguber.info/inful/pybuilder/internal/events"
)

// Artifact is a discovered build output registered with the build system.
type Artifact struct {
	// Name is the artifact's base name; it is the registry key.
	Name string
	// Path is the artifact's filesystem path.
	Path string
	// Kind is the classified artifact kind.
	Kind backend.ArtifactKind
}

// ClassifyPath classifies a filesystem path into an artifact kind using
// extension heuristics. Directories are trees; unknown extensions fall back
// to the file kind.
func ClassifyPath(path string) backend.ArtifactKind {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return backend.KindTree
	}
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".egg"):
		return backend.KindEgg
	case strings.HasSuffix(name, ".whl"):
		return backend.KindWheel
	case strings.HasSuffix(name, ".tar.gz"),
		strings.HasSuffix(name, ".tgz"),
		strings.HasSuffix(name, ".tar"),
		strings.HasSuffix(name, ".zip"):
		return backend.KindSdist
	default:
		return backend.KindFile
	}
}

// RegisterArtifact classifies path and records it in the artifact registry
// under its base name, overwriting any prior entry of the same name.
//
// The artifact is accepted only when the resolved backend declares support
// for its kind; otherwise it is dropped without error. The drop is counted
// and emitted as an ArtifactRejected event so it stays observable.
func (bs *BuildSystem) RegisterArtifact(path string) {
	kind := ClassifyPath(path)
	name := filepath.Base(path)

	if bs.backend == nil || !bs.backend.ArtifactKinds().Contains(kind) {
		bs.recorder.IncArtifactRejected(kind.String())
		bs.publish(events.ArtifactRejected{Name: name, Kind: kind.String(), Path: path})
		return
	}

	if _, exists := bs.artifacts[name]; !exists {
		bs.order = append(bs.order, name)
	}
	bs.artifacts[name] = Artifact{Name: name, Path: path, Kind: kind}

	bs.recorder.IncArtifactRegistered(kind.String())
	bs.publish(events.ArtifactRegistered{Name: name, Kind: kind.String(), Path: path})
}

// RegisterBuildDir scans the backend build directory and registers every
// entry found there. A missing build directory is not an error.
func (bs *BuildSystem) RegisterBuildDir() error {
	dir := bs.BuildDir()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, entry := range entries {
		bs.RegisterArtifact(filepath.Join(dir, entry.Name()))
	}
	return nil
}

// ClearRegistry empties the artifact registry. It is idempotent and touches
// no files on disk.
func (bs *BuildSystem) ClearRegistry() {
	if len(bs.artifacts) == 0 && len(bs.order) == 0 {
		return
	}
	bs.artifacts = make(map[string]Artifact)
	bs.order = nil
	bs.publish(events.RegistryCleared{ClearedAt: time.Now()})
}

// Artifacts returns the registered artifacts in registration order. Re-
// registering an existing name keeps its original position, matching the
// registry's overwrite semantics.
func (bs *BuildSystem) Artifacts() []Artifact {
	out := make([]Artifact, 0, len(bs.order))
	for _, name := range bs.order {
		out = append(out, bs.artifacts[name])
	}
	return out
}
