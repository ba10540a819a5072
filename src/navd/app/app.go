// Package app assembles the navd daemon's Fx application.
package app

import (
	"context"
	"time"

	"github.com/crossnav/navd/src/navd/gateway"
	notifier "github.com/crossnav/navd/src/navd/gateway/ide-client"
	"github.com/crossnav/navd/src/navd/handler"
	"github.com/crossnav/navd/src/navd/internal/clock"
	"github.com/crossnav/navd/src/navd/internal/core"
	"github.com/crossnav/navd/src/navd/internal/jsonrpcfx"
	"github.com/crossnav/navd/src/navd/internal/serverinfofile"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
)

// Module defines the navd daemon application module.
var Module = fx.Options(
	gateway.Module, // outbounds
	handler.Module, // inbounds
	jsonrpcfx.Module,
	serverinfofile.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(notifier.New),
	fx.Provide(clock.New),
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "navd",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{
			Environment:        EnvLocal,
			RuntimeEnvironment: EnvLocal,
		}
	}),
)
