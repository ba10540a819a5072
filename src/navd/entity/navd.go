// Package entity contains the domain logic for the navd daemon.
package entity

import (
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

type keyType string

// SessionContextKey indicates the key to be used to identify the session UUID in the context.
const SessionContextKey keyType = "SessionUUID"

// RepoName names a remote repository by host and path (e.g. "example.com/a/b").
// Stable for the lifetime of a session.
type RepoName string

// RevisionSpec is a user-entered revision specifier: a branch name, tag,
// "HEAD", or the empty string. Not guaranteed stable across time.
type RevisionSpec string

// DefaultRevisionSpec is substituted for an empty RevisionSpec.
const DefaultRevisionSpec RevisionSpec = "HEAD"

// ResolvedRevision pins a RevisionSpec to an immutable commit id.
type ResolvedRevision struct {
	// Spec is the specifier the revision was resolved from. When the input
	// was "HEAD" and the default branch is known, this holds the rewritten
	// "refs/heads/<branch>" form.
	Spec RevisionSpec `json:"spec" zap:"spec"`
	// ID is the full commit hash. Never empty on a successfully resolved revision.
	ID string `json:"id" zap:"id"`
}

// Dependent describes one repository known to depend on the repository
// currently being queried, as reported by the code host's dependents index.
type Dependent struct {
	Workspace RepoName               `json:"workspace"`
	Hints     map[string]interface{} `json:"hints,omitempty"`
}

// LanguageMode identifies a language-server mode (e.g. "go", "typescript").
type LanguageMode string

// RootStatus tracks the lifecycle of a repository root.
type RootStatus int

const (
	// RootStatusUninitialized is the zero state before revision resolution begins.
	RootStatusUninitialized RootStatus = iota
	// RootStatusResolvingRevision indicates revision resolution is in flight.
	RootStatusResolvingRevision
	// RootStatusActive indicates the root has a resolved revision.
	RootStatusActive
	// RootStatusFailed indicates the last revision resolution failed.
	// The failure is retried lazily on the next activation or revision switch.
	RootStatusFailed
	// RootStatusDisposed indicates the root has been removed from the workspace.
	RootStatusDisposed
)

// String implements fmt.Stringer.
func (s RootStatus) String() string {
	switch s {
	case RootStatusUninitialized:
		return "uninitialized"
	case RootStatusResolvingRevision:
		return "resolving-revision"
	case RootStatusActive:
		return "active"
	case RootStatusFailed:
		return "failed"
	case RootStatusDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Session entity representing a single live language-server connection,
// scoped to one (root, language mode) pair. A Session is bound to the
// revision that was resolved when it was created; on revision switch it is
// disposed and a replacement is created lazily, never migrated in place.
type Session struct {
	UUID             uuid.UUID                  `json:"uuid" zap:"uuid"`
	RootURI          string                     `json:"rootUri" zap:"rootUri"`
	Repo             RepoName                   `json:"repo" zap:"repo"`
	Mode             LanguageMode               `json:"mode" zap:"mode"`
	Revision         ResolvedRevision           `json:"revision" zap:"revision"`
	Conn             *jsonrpc2.Conn             `json:"-" zap:"-"`
	InitializeResult *protocol.InitializeResult `json:"-" zap:"-"`
}

// SymbolDescriptor identifies a symbol independently of any one location,
// in the form returned by the textDocument/xdefinition extension method.
type SymbolDescriptor map[string]interface{}

// SymbolLocationInformation pairs a symbol descriptor with an optional
// concrete definition location.
type SymbolLocationInformation struct {
	Symbol   SymbolDescriptor   `json:"symbol"`
	Location *protocol.Location `json:"location,omitempty"`
}

// ReferenceInformation is one streamed result of a workspace/xreferences query.
type ReferenceInformation struct {
	Reference protocol.Location `json:"reference"`
	Symbol    SymbolDescriptor  `json:"symbol"`
}
