package buildsys

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pybuilder/internal/backend"
	"git.home.luguber.info/inful/pybuilder/internal/manifest"
)

// newResolved builds a BuildSystem over a temp project using the given
// backend id, with Init already completed.
func newResolved(t *testing.T, backendID string, opts ...Option) *BuildSystem {
	t.Helper()
	root := t.TempDir()
	content := "[build-system]\nbuild-backend = \"" + backendID + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, manifest.FileName), []byte(content), 0o644))

	bs := New(root, backend.DefaultRegistry(), opts...)
	require.NoError(t, bs.Init(context.Background()))
	return bs
}

func TestInit_NotPep517(t *testing.T) {
	bs := New(t.TempDir(), backend.DefaultRegistry())
	err := bs.Init(context.Background())
	if !manifest.IsNotPep517(err) {
		t.Fatalf("Init on empty dir = %v, want ErrNotPep517", err)
	}
	if bs.Backend() != nil {
		t.Error("no backend may be set after failed resolution")
	}
}

func TestInit_UnsupportedBackend(t *testing.T) {
	bs := newResolved(t, "poetry.core.masonry.api")
	if bs.Backend() != nil {
		t.Error("backend must stay nil for unsupported ids")
	}
	// Build dir falls back to the project root without a backend.
	if bs.BuildDir() != bs.Root() {
		t.Errorf("BuildDir() = %q, want project root", bs.BuildDir())
	}
}

func TestBuildDir_DelegatesToBackend(t *testing.T) {
	bs := newResolved(t, "setuptools.build_meta")
	want := filepath.Join(bs.Root(), "dist")
	if bs.BuildDir() != want {
		t.Errorf("BuildDir() = %q, want %q", bs.BuildDir(), want)
	}
}

func TestRegisterArtifact_RespectsSupportedKinds(t *testing.T) {
	// setuptools.build_meta produces sdists only.
	bs := newResolved(t, "setuptools.build_meta")

	bs.RegisterArtifact("/proj/dist/mypkg-1.0.tar.gz")
	bs.RegisterArtifact("/proj/dist/mypkg-1.0-py3-none-any.whl") // unsupported kind
	bs.RegisterArtifact("/proj/dist/mypkg.egg")                  // unsupported kind

	artifacts := bs.Artifacts()
	require.Len(t, artifacts, 1)
	require.Equal(t, backend.KindSdist, artifacts[0].Kind)
	require.Equal(t, "mypkg-1.0.tar.gz", artifacts[0].Name)
}

func TestRegisterArtifact_NoBackendRejectsEverything(t *testing.T) {
	bs := newResolved(t, "poetry.core.masonry.api")
	bs.RegisterArtifact("/proj/dist/mypkg-1.0.tar.gz")
	require.Empty(t, bs.Artifacts())
}

func TestRegisterArtifact_OverwriteKeepsPosition(t *testing.T) {
	bs := newResolved(t, "flit_core.buildapi")

	bs.RegisterArtifact("/proj/dist/a-1.0.tar.gz")
	bs.RegisterArtifact("/proj/dist/b-1.0.tar.gz")
	bs.RegisterArtifact("/other/a-1.0.tar.gz") // same name, new path

	artifacts := bs.Artifacts()
	require.Len(t, artifacts, 2)
	require.Equal(t, "a-1.0.tar.gz", artifacts[0].Name)
	require.Equal(t, "/other/a-1.0.tar.gz", artifacts[0].Path)
	require.Equal(t, "b-1.0.tar.gz", artifacts[1].Name)
}

func TestRegisterArtifact_EmitsRejectedEvent(t *testing.T) {
	var seen []any
	bs := newResolved(t, "setuptools.build_meta", WithEventSink(func(evt any) {
		seen = append(seen, evt)
	}))

	bs.RegisterArtifact("/proj/dist/mypkg-1.0-py3-none-any.whl")
	require.Len(t, seen, 1)
}

func TestClassifyPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		path string
		want backend.ArtifactKind
	}{
		{dir, backend.KindTree},
		{"x.egg", backend.KindEgg},
		{"x.whl", backend.KindWheel},
		{"x.tar.gz", backend.KindSdist},
		{"x.tgz", backend.KindSdist},
		{"x.tar", backend.KindSdist},
		{"x.zip", backend.KindSdist},
		{"x.txt", backend.KindFile},
		{"noext", backend.KindFile},
	}
	for _, tt := range tests {
		if got := ClassifyPath(tt.path); got != tt.want {
			t.Errorf("ClassifyPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestClearRegistry_Idempotent(t *testing.T) {
	bs := newResolved(t, "flit_core.buildapi")
	bs.RegisterArtifact("/proj/dist/a-1.0.tar.gz")

	bs.ClearRegistry()
	require.Empty(t, bs.Artifacts())
	bs.ClearRegistry() // second call is a no-op
	require.Empty(t, bs.Artifacts())
}

func TestInstallables_SourcesFirstAlways(t *testing.T) {
	bs := newResolved(t, "setuptools.build_meta")

	installables := bs.Installables()
	require.Len(t, installables, 1)
	require.Equal(t, SourcesName, installables[0].Name)
	require.Equal(t, backend.KindTree, installables[0].Kind)
	require.Equal(t, bs.Root(), installables[0].Path)
}

func TestInstallables_WheelPreferredOverSdist(t *testing.T) {
	bs := newResolved(t, "flit_core.buildapi")
	bs.RegisterArtifact("/proj/dist/mypkg-1.0.tar.gz")
	bs.RegisterArtifact("/proj/dist/mypkg-1.0-py3-none-any.whl")

	installables := bs.Installables()
	require.Len(t, installables, 2)
	require.Equal(t, SourcesName, installables[0].Name)
	require.Equal(t, backend.KindWheel, installables[1].Kind)
	require.Equal(t, "mypkg", installables[1].Name)
}

func TestInstallables_SdistWhenNoWheel(t *testing.T) {
	bs := newResolved(t, "setuptools.build_meta")
	bs.RegisterArtifact("/proj/dist/my-pkg-2.3.1.tar.gz")

	installables := bs.Installables()
	require.Len(t, installables, 2)
	require.Equal(t, backend.KindSdist, installables[1].Kind)
	require.Equal(t, "my-pkg", installables[1].Name)
}

func TestInstallables_UnparsableNameDegrades(t *testing.T) {
	bs := newResolved(t, "setuptools.build_meta")
	bs.RegisterArtifact("/proj/dist/noversion.tar.gz")

	installables := bs.Installables()
	require.Len(t, installables, 2)
	require.Equal(t, UnknownName, installables[1].Name)
}

func TestEndToEnd_WheelScenario(t *testing.T) {
	bs := newResolved(t, "flit_core.buildapi")
	bs.RegisterArtifact("/proj/dist/mypkg-1.0-py3-none-any.whl")

	installables := bs.Installables()
	require.Len(t, installables, 2)
	require.Equal(t, Installable{Path: bs.Root(), Kind: backend.KindTree, Name: SourcesName}, installables[0])
	require.Equal(t, backend.KindWheel, installables[1].Kind)
	require.Equal(t, "mypkg", installables[1].Name)
}

func TestProjectVersion_FromManifest(t *testing.T) {
	root := t.TempDir()
	content := `
[build-system]
build-backend = "setuptools.build_meta"

[project]
name = "mypkg"
version = "3.2.1"
`
	require.NoError(t, os.WriteFile(filepath.Join(root, manifest.FileName), []byte(content), 0o644))

	bs := New(root, backend.DefaultRegistry())
	require.NoError(t, bs.Init(context.Background()))
	require.Equal(t, "3.2.1", bs.ProjectVersion())
}

func TestRegisterBuildDir(t *testing.T) {
	bs := newResolved(t, "setuptools.build_meta")
	dist := filepath.Join(bs.Root(), "dist")
	require.NoError(t, os.MkdirAll(dist, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "mypkg-1.0.tar.gz"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "stray.txt"), nil, 0o644))

	require.NoError(t, bs.RegisterBuildDir())

	artifacts := bs.Artifacts()
	require.Len(t, artifacts, 1)
	require.Equal(t, "mypkg-1.0.tar.gz", artifacts[0].Name)
}

func TestRegisterBuildDir_MissingDirIsFine(t *testing.T) {
	bs := newResolved(t, "setuptools.build_meta")
	require.NoError(t, bs.RegisterBuildDir())
	require.Empty(t, bs.Artifacts())
}
