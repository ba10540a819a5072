package navddaemon

import (
	"context"

	"go.lsp.dev/protocol"
)

func (c *controller) References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	defer c.refreshIdleTimer(ctx)

	onPartial := c.partialForwarder(ctx, params.PartialResultToken)
	return c.crossRepo.FindReferences(ctx, string(params.TextDocument.URI), params.Position, onPartial)
}

func (c *controller) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	defer c.refreshIdleTimer(ctx)
	return c.crossRepo.FindDefinition(ctx, string(params.TextDocument.URI), params.Position)
}

// partialForwarder streams result batches back to the requesting client via
// $/progress when the request carried a partial result token.
func (c *controller) partialForwarder(ctx context.Context, token *protocol.ProgressToken) func([]protocol.Location) {
	if token == nil {
		return nil
	}
	return func(batch []protocol.Location) {
		if err := c.ideGateway.Progress(ctx, &protocol.ProgressParams{
			Token: *token,
			Value: batch,
		}); err != nil {
			c.logger.Debugw("forwarding partial results", "error", err)
		}
	}
}
