package entity

// RootKey is the parsed identity of a repository-root URI.
//
// Root identity is the canonical repository name alone; the revision fields
// describe how the root tracks revisions but never participate in identity.
type RootKey struct {
	Repo RepoName
	// Spec is the explicit revision specifier carried by the URI, empty when
	// the root tracks the repository's default branch.
	Spec RevisionSpec
	// PinnedID is the commit hash of a revision-pinned root. Pinned roots are
	// fixed forever to one commit and never revision-switch.
	PinnedID string
}

// Canonical returns the revision-independent root URI used as the identity
// key in the workspace registry.
func (k RootKey) Canonical() string {
	return "repo://" + string(k.Repo)
}

// Pinned reports whether the root is fixed to one immutable commit.
func (k RootKey) Pinned() bool {
	return k.PinnedID != ""
}
