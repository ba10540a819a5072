// Package gateway aggregates every outbound gateway into one Fx module.
package gateway

import (
	"github.com/crossnav/navd/src/navd/gateway/codehost"
	"github.com/crossnav/navd/src/navd/gateway/langserver"
	"go.uber.org/fx"
)

var Module = fx.Options(
	codehost.Module,
	langserver.Module,
)
