package backend

// pypaBuild drives setuptools.build_meta through the pypa/build frontend.
//
// The frontend builds in an isolated environment by default, so the project
// virtualenv is never passed through to it.
type pypaBuild struct{}

func (pypaBuild) Name() string            { return "setuptools.build_meta" }
func (pypaBuild) DisplayName() string     { return "Pypa Build" }
func (pypaBuild) ArtifactKinds() KindSet  { return NewKindSet(KindSdist) }
func (pypaBuild) BuildDirName() string    { return "dist" }
func (pypaBuild) Isolated() bool          { return true }
func (pypaBuild) CleanArgv() []string     { return nil }

func (b pypaBuild) BuildArgv() []string {
	return []string{"python", "-m", "build", "--sdist", "--outdir", b.BuildDirName()}
}

func (b pypaBuild) WheelArgv() []string {
	return []string{"python", "-m", "build", "--wheel", "--outdir", b.BuildDirName()}
}

// flit drives flit_core.buildapi through the flit command.
type flit struct{}

func (flit) Name() string           { return "flit_core.buildapi" }
func (flit) DisplayName() string    { return "Flit" }
func (flit) ArtifactKinds() KindSet { return NewKindSet(KindSdist, KindWheel) }
func (flit) BuildDirName() string   { return "dist" }
func (flit) Isolated() bool         { return false }
func (flit) CleanArgv() []string    { return nil }

func (flit) BuildArgv() []string {
	return []string{"flit", "build"}
}

func (flit) WheelArgv() []string {
	return []string{"flit", "build", "--format", "wheel"}
}

// hatchling drives hatchling.build through the hatch command.
type hatchling struct{}

func (hatchling) Name() string           { return "hatchling.build" }
func (hatchling) DisplayName() string    { return "Hatchling" }
func (hatchling) ArtifactKinds() KindSet { return NewKindSet(KindSdist, KindWheel) }
func (hatchling) BuildDirName() string   { return "dist" }
func (hatchling) Isolated() bool         { return false }
func (hatchling) CleanArgv() []string    { return []string{"hatch", "clean"} }

func (hatchling) BuildArgv() []string {
	return []string{"hatch", "build"}
}

func (hatchling) WheelArgv() []string {
	return []string{"hatch", "build", "-t", "wheel"}
}
