package backend

import (
	"testing"
)

func TestDefaultRegistry_Lookup(t *testing.T) {
	reg := DefaultRegistry()

	b, ok := reg.Lookup("setuptools.build_meta")
	if !ok {
		t.Fatal("setuptools.build_meta should be registered")
	}
	if b.Name() != "setuptools.build_meta" {
		t.Errorf("Name() = %q", b.Name())
	}
	if b.BuildDirName() != "dist" {
		t.Errorf("BuildDirName() = %q, want dist", b.BuildDirName())
	}
	if !b.Isolated() {
		t.Error("pypa build frontend is isolated")
	}
	if !b.ArtifactKinds().Contains(KindSdist) {
		t.Error("setuptools backend should produce sdists")
	}
	if b.ArtifactKinds().Contains(KindWheel) {
		t.Error("setuptools backend registers sdists only; wheels come from the wheel target")
	}
}

func TestDefaultRegistry_UnknownBackend(t *testing.T) {
	reg := DefaultRegistry()

	b, ok := reg.Lookup("poetry.core.masonry.api")
	if ok || b != nil {
		t.Error("unregistered backend must yield (nil, false)")
	}
}

func TestRegistry_Immutable(t *testing.T) {
	source := map[string]Factory{
		"setuptools.build_meta": func() Backend { return pypaBuild{} },
	}
	reg := NewRegistry(source)

	// Mutating the source map must not affect the registry.
	source["flit_core.buildapi"] = func() Backend { return flit{} }
	if _, ok := reg.Lookup("flit_core.buildapi"); ok {
		t.Error("registry must copy the factory map at construction")
	}
}

func TestRegistry_Names(t *testing.T) {
	names := DefaultRegistry().Names()
	want := []string{"flit_core.buildapi", "hatchling.build", "setuptools.build_meta"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v", names)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], n)
		}
	}
}

func TestBuildDir(t *testing.T) {
	b, _ := DefaultRegistry().Lookup("flit_core.buildapi")
	if got := BuildDir(b, "/proj"); got != "/proj/dist" {
		t.Errorf("BuildDir = %q", got)
	}
}

func TestKindSet_Contains(t *testing.T) {
	s := NewKindSet(KindWheel, KindSdist)
	if !s.Contains(KindWheel) || !s.Contains(KindSdist) {
		t.Error("expected wheel and sdist")
	}
	if s.Contains(KindEgg) {
		t.Error("egg should not be present")
	}
}
