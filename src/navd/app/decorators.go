package app

import (
	"fmt"
	"os"
	"path"

	"go.uber.org/config"
	"go.uber.org/zap"
)

// Context describes the environment the daemon is running in.
type Context struct {
	Environment        string `yaml:"environment"`
	RuntimeEnvironment string `yaml:"runtimeEnvironment"`
}

const (
	// EnvLocal indicates that the service is running locally.
	EnvLocal = "local"

	// EnvDevelopment indicates that the service is running in a development environment.
	EnvDevelopment = "development"

	_envNavdEnvironment = "NAVD_ENVIRONMENT"
)

func decorateEnvContext(env Context) Context {
	envValue := EnvLocal
	if os.Getenv(_envNavdEnvironment) == EnvDevelopment {
		envValue = EnvDevelopment
	}

	env.Environment = envValue
	env.RuntimeEnvironment = envValue
	return env
}

// decorateConfigProvider includes any steps that modify the config.Provider
// before it is used, or use its data for any startup related activities.
func decorateConfigProvider(cfg config.Provider) (config.Provider, error) {
	if err := ensureLogFolders(cfg); err != nil {
		return nil, fmt.Errorf("ensuring log folder: %w", err)
	}

	return cfg, nil
}

// ensureLogFolders creates every configured logging output directory that
// does not exist yet, so the logger can open its files at startup.
func ensureLogFolders(cfg config.Provider) error {
	var c zap.Config
	if err := cfg.Get("logging").Populate(&c); err != nil {
		return fmt.Errorf("loading logging config: %w", err)
	}

	for _, outputPath := range c.OutputPaths {
		if outputPath == "stdout" || outputPath == "stderr" {
			continue
		}
		if err := os.MkdirAll(path.Dir(outputPath), 0755); err != nil {
			return fmt.Errorf("creating logging directory: %w", err)
		}
	}

	return nil
}
