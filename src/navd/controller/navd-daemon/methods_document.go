package navddaemon

import (
	"context"

	"go.lsp.dev/protocol"

	"github.com/crossnav/navd/src/navd/entity"
	"github.com/crossnav/navd/src/navd/mapper"
)

// DidOpen tracks a newly opened document. Root registration happens inline;
// session activation runs in the background because it can wait on a clone.
func (c *controller) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	defer c.refreshIdleTimer(ctx)

	uri := string(params.TextDocument.URI)
	mode := entity.LanguageMode(params.TextDocument.LanguageID)
	if mode == "" {
		_, path, err := mapper.ParseDocumentURI(uri)
		if err != nil {
			return err
		}
		mode = mapper.LanguageModeForPath(path)
	}

	bgCtx := context.WithoutCancel(ctx)
	go func() {
		if _, err := c.workspace.DidOpenDocument(bgCtx, uri, mode); err != nil {
			c.logger.Warnw("opening document", "uri", uri, "error", err)
			c.stats.Counter("document_open_failures").Inc(1)
		}
	}()
	return nil
}

func (c *controller) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	defer c.refreshIdleTimer(ctx)
	return c.workspace.DidCloseDocument(ctx, string(params.TextDocument.URI))
}

func (c *controller) DidChangeWorkspaceFolders(ctx context.Context, params *protocol.DidChangeWorkspaceFoldersParams) error {
	defer c.refreshIdleTimer(ctx)
	return c.workspace.DidChangeWorkspaceFolders(ctx, params.Event.Added, params.Event.Removed)
}
