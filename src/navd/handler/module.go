// Package handler provides the daemon's inbound surface into an Fx application.
package handler

import (
	controller "github.com/crossnav/navd/src/navd/controller"
	navddaemon "github.com/crossnav/navd/src/navd/controller/navd-daemon"
	handler "github.com/crossnav/navd/src/navd/handler/navd-daemon"
	"github.com/crossnav/navd/src/navd/repository/session"
	"go.uber.org/fx"
)

// Module provides the navd daemon server into an Fx application.
var Module = fx.Options(
	controller.Module,
	fx.Provide(session.New),
	fx.Provide(handler.New),
	fx.Invoke(func(h handler.Handler) {}),
	fx.Invoke(func(c navddaemon.Controller) {}),
)
