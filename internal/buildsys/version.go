package buildsys

import (
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ProjectVersion returns the project version as configured in the manifest's
// [project] table. When the manifest carries no static version (dynamic
// versioning is common), it falls back to a git tag pointing at HEAD.
// The empty string means the version could not be determined.
func (bs *BuildSystem) ProjectVersion() string {
	if bs.manifest != nil && bs.manifest.Project.Version != "" {
		return bs.manifest.Project.Version
	}
	return gitHeadTag(bs.root)
}

// gitHeadTag returns the name of a tag pointing at HEAD, with a leading "v"
// stripped. Returns "" for non-repositories, detached states, or untagged
// heads; version detection is best effort and never fails the caller.
func gitHeadTag(root string) string {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}

	tags, err := repo.Tags()
	if err != nil {
		return ""
	}
	defer tags.Close()

	var version string
	_ = tags.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if tag, err := repo.TagObject(ref.Hash()); err == nil {
			// Annotated tag: compare the tagged commit.
			target = tag.Target
		}
		if target == head.Hash() {
			version = strings.TrimPrefix(ref.Name().Short(), "v")
		}
		return nil
	})
	return version
}
