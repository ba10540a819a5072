// Package controller aggregates every controller into one Fx module.
package controller

import (
	"github.com/crossnav/navd/src/navd/controller/crossrepo"
	navddaemon "github.com/crossnav/navd/src/navd/controller/navd-daemon"
	"github.com/crossnav/navd/src/navd/controller/revision"
	"github.com/crossnav/navd/src/navd/controller/workspace"
	"go.uber.org/fx"
)

var Module = fx.Options(
	navddaemon.Module,
	revision.Module,
	workspace.Module,
	crossrepo.Module,
)
