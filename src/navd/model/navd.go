// Package model holds the repository-layer representations of navd entities.
package model

import (
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// Session is the repository layer model for a live language-server connection.
type Session struct {
	UUID             uuid.UUID
	RootURI          string
	Repo             string
	Mode             string
	RevisionSpec     string
	RevisionID       string
	Conn             *jsonrpc2.Conn
	InitializeResult *protocol.InitializeResult
}
