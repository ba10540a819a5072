package navddaemon

import (
	"context"
	"fmt"

	notifier "github.com/crossnav/navd/src/navd/gateway/ide-client"
	"github.com/crossnav/navd/src/navd/mapper"
)

// SwitchRevision moves an existing mutable root to a new revision specifier.
func (c *controller) SwitchRevision(ctx context.Context, params *mapper.SwitchRevisionParams) error {
	defer c.refreshIdleTimer(ctx)

	root, err := c.workspace.GetRoot(params.RootURI)
	if err != nil {
		return fmt.Errorf("switching revision: %w", err)
	}
	if err := root.SwitchRevision(ctx, params.Revision); err != nil {
		return fmt.Errorf("switching revision: %w", err)
	}
	c.stats.Counter("revision_switches").Inc(1)
	return nil
}

// RootStatus reports the lifecycle state of a registered root.
func (c *controller) RootStatus(ctx context.Context, params *mapper.RootStatusRequestParams) (*notifier.RootStatusParams, error) {
	root, err := c.workspace.GetRoot(params.RootURI)
	if err != nil {
		return nil, err
	}

	status, rev, resolveErr := root.Status()
	result := &notifier.RootStatusParams{
		RootURI:  root.Key().Canonical(),
		Status:   status.String(),
		Revision: rev.ID,
	}
	if resolveErr != nil {
		result.Message = resolveErr.Error()
	}
	return result, nil
}
