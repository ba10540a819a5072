package navddaemon

import (
	"context"

	"github.com/crossnav/navd/src/navd/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) References(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToReferenceParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.navddaemon.References(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) Definition(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDefinitionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.navddaemon.Definition(ctx, params)
	return reply(ctx, result, err)
}
