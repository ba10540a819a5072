package errors

import (
	stderr "errors"
	"fmt"
)

// RepositoryNotFoundError indicates that the code host has no repository by this name.
type RepositoryNotFoundError struct {
	Repo string
}

// Error is an implementation of the error interface.
func (n *RepositoryNotFoundError) Error() string {
	return fmt.Sprintf("repository %q not found", n.Repo)
}

// CloneTimeoutError indicates that a repository was still cloning after the
// retry budget was exhausted.
type CloneTimeoutError struct {
	Repo     string
	Attempts int
}

// Error is an implementation of the error interface.
func (n *CloneTimeoutError) Error() string {
	return fmt.Sprintf("repository %q still cloning after %d attempts", n.Repo, n.Attempts)
}

// RevisionNotFoundError indicates that a specifier does not name a commit in
// a fully cloned repository.
type RevisionNotFoundError struct {
	Repo string
	Spec string
}

// Error is an implementation of the error interface.
func (n *RevisionNotFoundError) Error() string {
	return fmt.Sprintf("revision %q not found in repository %q", n.Spec, n.Repo)
}

// SessionStartFailureError indicates that a language-server session could not
// be established for a (root, mode) pair.
type SessionStartFailureError struct {
	Repo string
	Mode string
	Err  error
}

// Error is an implementation of the error interface.
func (n *SessionStartFailureError) Error() string {
	return fmt.Sprintf("starting %s session for repository %q: %v", n.Mode, n.Repo, n.Err)
}

// Unwrap exposes the underlying cause.
func (n *SessionStartFailureError) Unwrap() error {
	return n.Err
}

// IsResolutionFailure reports whether the error is one of the revision
// resolution failures that should be surfaced via the root status indicator.
func IsResolutionFailure(e error) bool {
	var repoNotFound *RepositoryNotFoundError
	var cloneTimeout *CloneTimeoutError
	var revNotFound *RevisionNotFoundError
	return stderr.As(e, &repoNotFound) || stderr.As(e, &cloneTimeout) || stderr.As(e, &revNotFound)
}
