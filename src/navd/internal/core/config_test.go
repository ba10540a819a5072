package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	uberconfig "go.uber.org/config"
	"gopkg.in/yaml.v3"
)

func writeConfigDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, contents := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644))
	}
	return dir
}

func TestNewConfig(t *testing.T) {
	t.Run("layers listed files in order", func(t *testing.T) {
		dir := writeConfigDir(t, map[string]string{
			"meta.yaml": "files:\n  - base.yaml\n  - local.yaml\n",
			"base.yaml": "service:\n  name: navd\nlogging:\n  level: info\n",
			"local.yaml": "logging:\n  level: debug\n",
		})
		t.Setenv(_envConfigDir, dir)

		provider, err := NewConfig()
		require.NoError(t, err)

		assert.Equal(t, "navd", provider.Get("service.name").String())
		// local.yaml overrides base.yaml.
		assert.Equal(t, "debug", provider.Get("logging.level").String())
	})

	t.Run("skips listed files that do not exist", func(t *testing.T) {
		dir := writeConfigDir(t, map[string]string{
			"meta.yaml": "files:\n  - base.yaml\n  - missing.yaml\n",
			"base.yaml": "service:\n  name: navd\n",
		})
		t.Setenv(_envConfigDir, dir)

		provider, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "navd", provider.Get("service.name").String())
	})

	t.Run("missing meta.yaml", func(t *testing.T) {
		t.Setenv(_envConfigDir, t.TempDir())

		_, err := NewConfig()
		assert.Error(t, err)
	})

	t.Run("no listed file exists", func(t *testing.T) {
		dir := writeConfigDir(t, map[string]string{
			"meta.yaml": "files:\n  - missing.yaml\n",
		})
		t.Setenv(_envConfigDir, dir)

		_, err := NewConfig()
		assert.Error(t, err)
	})

	t.Run("merged document matches golden fixture", func(t *testing.T) {
		dir := writeConfigDir(t, map[string]string{
			"meta.yaml":  "files:\n  - base.yaml\n  - local.yaml\n",
			"base.yaml":  "service:\n  name: navd\nlogging:\n  level: info\n  encoding: json\n",
			"local.yaml": "logging:\n  level: debug\n",
		})
		t.Setenv(_envConfigDir, dir)

		provider, err := NewConfig()
		require.NoError(t, err)

		type document struct {
			Service struct {
				Name string `yaml:"name"`
			} `yaml:"service"`
			Logging LoggingConfig `yaml:"logging"`
		}

		var got document
		require.NoError(t, provider.Get(uberconfig.Root).Populate(&got))

		golden := `
service:
  name: navd
logging:
  level: debug
  encoding: json
`
		var want document
		require.NoError(t, yaml.Unmarshal([]byte(golden), &want))
		assert.Equal(t, want, got)
	})

	t.Run("environment variable substitution", func(t *testing.T) {
		dir := writeConfigDir(t, map[string]string{
			"meta.yaml": "files:\n  - base.yaml\n",
			"base.yaml": "jsonrpc:\n  address: :${NAVD_PORT:5859}\n",
		})
		t.Setenv(_envConfigDir, dir)
		t.Setenv("NAVD_PORT", "6001")

		provider, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, ":6001", provider.Get("jsonrpc.address").String())
	})
}

func TestConfigName(t *testing.T) {
	dir := writeConfigDir(t, map[string]string{
		"meta.yaml": "files:\n  - base.yaml\n",
		"base.yaml": "service:\n  name: navd\n",
	})
	t.Setenv(_envConfigDir, dir)

	provider, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "config", provider.(Config).Name())
}

func TestGetConfigDir(t *testing.T) {
	tests := []struct {
		name           string
		envValue       string
		expectedResult string
	}{
		{
			name:           "returns environment variable when set",
			envValue:       "/custom/config/path",
			expectedResult: "/custom/config/path",
		},
		{
			name:           "returns default path when environment variable not set",
			envValue:       "",
			expectedResult: _defaultConfigDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(_envConfigDir, tt.envValue)
			assert.Equal(t, tt.expectedResult, getConfigDir())
		})
	}
}
