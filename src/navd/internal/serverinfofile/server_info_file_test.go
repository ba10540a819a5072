package serverinfofile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  map[string]interface{}
		wantErr bool
	}{
		{
			name:    "valid configuration",
			config:  map[string]interface{}{_configKeyInfoFile: "/my/sample/path/.navd"},
			wantErr: false,
		},
		{
			name:    "missing path",
			config:  map[string]interface{}{"otherKey": "sample"},
			wantErr: true,
		},
		{
			name:    "incorrectly formatted entry",
			config:  map[string]interface{}{_configKeyInfoFile: map[string]string{"key": "val"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := config.NewStaticProvider(tt.config)
			assert.NoError(t, err)

			_, err = New(Params{
				Config:    provider,
				Lifecycle: fxtest.NewLifecycle(t),
				Logger:    zap.NewNop().Sugar(),
			})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOnStop(t *testing.T) {
	t.Run("file removed", func(t *testing.T) {
		tempFile, err := os.CreateTemp("", "test")
		assert.NoError(t, err)
		defer os.Remove(tempFile.Name())

		f := infoFile{
			logger: zap.NewNop().Sugar(),
			path:   tempFile.Name(),
		}

		err = f.OnStop(context.Background())
		assert.NoError(t, err)
		_, err = os.Stat(tempFile.Name())
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("file removal error", func(t *testing.T) {
		f := infoFile{
			logger: zap.NewNop().Sugar(),
			path:   filepath.Join(t.TempDir(), "missing", ".navd"),
		}

		err := f.OnStop(context.Background())
		assert.Error(t, err)
	})
}

func TestUpdateField(t *testing.T) {
	t.Run("multiple successful updates", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".navd")

		f := infoFile{
			path:     path,
			logger:   zap.NewNop().Sugar(),
			contents: make(map[string]string),
		}

		steps := []struct {
			key        string
			value      string
			expectJSON string
		}{
			{
				key:        "json-rpc-address",
				value:      ":5859",
				expectJSON: `{"json-rpc-address":":5859"}`,
			},
			{
				key:        "json-rpc-address",
				value:      ":6000",
				expectJSON: `{"json-rpc-address":":6000"}`,
			},
			{
				key:        "pid",
				value:      "1234",
				expectJSON: `{"json-rpc-address":":6000","pid":"1234"}`,
			},
		}

		for _, step := range steps {
			err := f.UpdateField(step.key, step.value)
			assert.NoError(t, err)
			contents, err := os.ReadFile(path)
			assert.NoError(t, err)
			assert.Equal(t, step.expectJSON, string(contents))
		}
	})

	t.Run("file write failure", func(t *testing.T) {
		// A directory in place of the file forces a write failure.
		f := infoFile{
			path:     t.TempDir(),
			logger:   zap.NewNop().Sugar(),
			contents: make(map[string]string),
		}
		err := f.UpdateField("key", "value")
		assert.Error(t, err)
	})
}
