// Package serverinfofile maintains a small JSON file describing how to reach
// the running daemon. Editor extensions read it to discover the JSON-RPC
// address instead of hardcoding a port.
package serverinfofile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _configKeyInfoFile = "serverInfoFilePath"

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// ServerInfoFile manages the contents of a single server info file. Fields
// are written at service launch and the file is removed on shutdown.
type ServerInfoFile interface {
	UpdateField(key string, value string) error
}

type infoFile struct {
	path     string
	logger   *zap.SugaredLogger
	contents map[string]string
	mu       sync.Mutex
}

// Params define values to be used by ServerInfoFile.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
}

// New creates a ServerInfoFile backed by the path named in configuration.
func New(p Params) (ServerInfoFile, error) {
	f := infoFile{
		logger:   p.Logger,
		contents: make(map[string]string),
	}

	if err := f.processConfig(p.Config); err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: f.OnStop,
	})

	return &f, nil
}

// OnStop removes the info file so stale connection info never outlives the daemon.
func (f *infoFile) OnStop(ctx context.Context) error {
	if f.path != "" {
		if err := os.Remove(f.path); err != nil {
			return err
		}
	}

	return nil
}

// UpdateField sets one key and rewrites the whole file.
func (f *infoFile) UpdateField(key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.contents[key] = value
	data, err := json.Marshal(f.contents)
	if err != nil {
		return fmt.Errorf("marshalling server info: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("writing server info file: %w", err)
	}
	f.logger.Infow("server info saved", zap.String("file", f.path), zap.String(key, value))
	return nil
}

func (f *infoFile) processConfig(cfg config.Provider) error {
	val := cfg.Get(_configKeyInfoFile)
	if err := val.Populate(&f.path); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyInfoFile, err)
	}

	if f.path == "" {
		return fmt.Errorf("missing field %q in config", _configKeyInfoFile)
	}

	return nil
}
