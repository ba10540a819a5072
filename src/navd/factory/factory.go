// Package factory provides shared builders for values used across tests.
package factory

import (
	"github.com/crossnav/navd/src/navd/entity"
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
)

// UUID is a user-defined factory for a random uuid.UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// JSONRPCRequest is a user-defined factory for a JSON-RPC request containing the specified method and parameters.
func JSONRPCRequest(method string, params interface{}) jsonrpc2.Request {
	req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), method, params)
	return req
}

// Session is a factory for a language server session bound to the given repository and mode.
func Session(repo entity.RepoName, mode entity.LanguageMode) *entity.Session {
	return &entity.Session{
		UUID: UUID(),
		Repo: repo,
		Mode: mode,
		Revision: entity.ResolvedRevision{
			Spec: "refs/heads/main",
			ID:   "abc123def456abc123def456abc123def456abc1",
		},
	}
}
