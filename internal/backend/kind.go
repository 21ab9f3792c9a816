package backend

// ArtifactKind classifies a build output and expresses backend capability.
type ArtifactKind string

const (
	// KindTree is an installable source directory (editable installs).
	KindTree ArtifactKind = "tree"
	// KindEgg is a legacy egg distribution.
	KindEgg ArtifactKind = "egg"
	// KindWheel is a built wheel distribution (PEP 427).
	KindWheel ArtifactKind = "wheel"
	// KindSdist is a source distribution archive.
	KindSdist ArtifactKind = "sdist"
	// KindFile is the fallback for unrecognized build outputs.
	KindFile ArtifactKind = "file"
)

// String returns the kind identifier.
func (k ArtifactKind) String() string {
	return string(k)
}

// KindSet is an immutable capability set of artifact kinds.
type KindSet map[ArtifactKind]struct{}

// NewKindSet builds a KindSet from the given kinds.
func NewKindSet(kinds ...ArtifactKind) KindSet {
	s := make(KindSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// Contains reports whether kind is part of the set.
func (s KindSet) Contains(kind ArtifactKind) bool {
	_, ok := s[kind]
	return ok
}
