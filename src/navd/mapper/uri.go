package mapper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/crossnav/navd/src/navd/entity"
)

// Scheme is the URI scheme for remote repository resources.
const Scheme = "repo"

const _revQueryKey = "rev"

var _commitIDPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// Repository resource URIs come in two kinds:
//
//	repo://example.com/a/b            mutable, tracks the default branch
//	repo://example.com/a/b?rev=SPEC   mutable, tracks an explicit specifier
//	repo://example.com/a/b@COMMIT     immutable, pinned to one 40-hex commit
//
// A document within a repository carries its path in the fragment:
//
//	repo://example.com/a/b?rev=SPEC#dir/file.go

// ParseRootURI parses a repository-root URI into its RootKey.
func ParseRootURI(raw string) (entity.RootKey, error) {
	key, _, err := ParseDocumentURI(raw)
	return key, err
}

// ParseDocumentURI parses a repository resource URI into its RootKey and the
// file path within the repository. The path is empty for a bare root URI.
func ParseDocumentURI(raw string) (entity.RootKey, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return entity.RootKey{}, "", fmt.Errorf("parsing repository URI %q: %w", raw, err)
	}
	if u.Scheme != Scheme {
		return entity.RootKey{}, "", fmt.Errorf("unsupported scheme %q in %q", u.Scheme, raw)
	}
	if u.Host == "" {
		return entity.RootKey{}, "", fmt.Errorf("missing host in repository URI %q", raw)
	}

	repoPath := strings.TrimSuffix(u.Path, "/")
	key := entity.RootKey{}

	if at := strings.LastIndex(repoPath, "@"); at >= 0 {
		pin := repoPath[at+1:]
		if !_commitIDPattern.MatchString(pin) {
			return entity.RootKey{}, "", fmt.Errorf("invalid commit pin %q in %q", pin, raw)
		}
		key.PinnedID = pin
		repoPath = repoPath[:at]
	}

	key.Repo = entity.RepoName(u.Host + repoPath)
	key.Spec = entity.RevisionSpec(u.Query().Get(_revQueryKey))
	if key.Pinned() && key.Spec != "" {
		return entity.RootKey{}, "", fmt.Errorf("URI %q carries both a commit pin and a revision specifier", raw)
	}

	return key, u.Fragment, nil
}

// FormatRootURI renders a RootKey back into its repository-root URI.
func FormatRootURI(key entity.RootKey) string {
	base := key.Canonical()
	if key.Pinned() {
		return base + "@" + key.PinnedID
	}
	if key.Spec != "" {
		return base + "?" + _revQueryKey + "=" + url.QueryEscape(string(key.Spec))
	}
	return base
}

// FormatDocumentURI renders a document URI for a path within the root.
func FormatDocumentURI(key entity.RootKey, path string) string {
	if path == "" {
		return FormatRootURI(key)
	}
	return FormatRootURI(key) + "#" + path
}

// IsCommitID reports whether s is a full 40-hex commit hash.
func IsCommitID(s string) bool {
	return _commitIDPattern.MatchString(s)
}
