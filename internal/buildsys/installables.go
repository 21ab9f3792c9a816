package buildsys

import (
	"git.home.luguber.info/inful/pybuilder/internal/backend"
)

// SourcesName is the display name of the synthetic source-tree installable.
const SourcesName = "sources"

// Installable is a registered artifact that can be installed, paired with
// the project name parsed from its filename.
type Installable struct {
	// Path is the artifact path. For the synthetic sources entry this is
	// the project root.
	Path string
	// Kind is the artifact kind.
	Kind backend.ArtifactKind
	// Name is the resolved project name ("sources" for the synthetic
	// entry, UnknownName when filename parsing failed).
	Name string
}

// Installables derives the installable artifacts from the registry.
//
// A single preferred kind is selected by strict priority wheel > sdist >
// tree; egg and file artifacts are never auto-selected. Every registered
// artifact of the preferred kind is included, in registration order, with
// its project name parsed from the filename (degrading to UnknownName).
// A synthetic "sources" tree entry pointing at the project root is always
// prepended, representing the editable/in-place install option.
func (bs *BuildSystem) Installables() []Installable {
	result := []Installable{{Path: bs.root, Kind: backend.KindTree, Name: SourcesName}}

	var preferred backend.ArtifactKind
	for _, kind := range []backend.ArtifactKind{backend.KindWheel, backend.KindSdist, backend.KindTree} {
		if bs.hasKind(kind) {
			preferred = kind
			break
		}
	}
	if preferred == "" {
		return result
	}

	for _, artifact := range bs.Artifacts() {
		if artifact.Kind != preferred {
			continue
		}
		name := UnknownName
		switch artifact.Kind {
		case backend.KindWheel:
			name, _, _ = ParseWheelName(artifact.Name)
		case backend.KindSdist:
			name, _, _ = ParseSdistName(artifact.Name)
		}
		result = append(result, Installable{Path: artifact.Path, Kind: artifact.Kind, Name: name})
	}
	return result
}

func (bs *BuildSystem) hasKind(kind backend.ArtifactKind) bool {
	for _, artifact := range bs.artifacts {
		if artifact.Kind == kind {
			return true
		}
	}
	return false
}
