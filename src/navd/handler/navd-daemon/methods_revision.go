package navddaemon

import (
	"context"

	"github.com/crossnav/navd/src/navd/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) SwitchRevision(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSwitchRevisionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.navddaemon.SwitchRevision(ctx, params)
	return reply(ctx, nil, err)
}

func (r *jsonRPCRouter) RootStatus(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToRootStatusRequestParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.navddaemon.RootStatus(ctx, params)
	return reply(ctx, result, err)
}
