package navddaemon

import (
	"context"
	"errors"
	"testing"

	"github.com/crossnav/navd/src/navd/controller/navd-daemon/navddaemonmock"
	"github.com/crossnav/navd/src/navd/factory"
	"github.com/stretchr/testify/assert"
	"go.lsp.dev/protocol"
	"go.uber.org/mock/gomock"
)

func TestReferences(t *testing.T) {
	tests := []struct {
		name             string
		controllerResult []protocol.Location
		controllerError  error
		wantErr          bool
	}{
		{
			name:            "error from controller",
			controllerError: errors.New("controller error"),
			wantErr:         true,
		},
		{
			name:             "no error from controller",
			controllerResult: []protocol.Location{{URI: "repo://example.com/a/b#pkg/a.go"}},
			wantErr:          false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()

			c := navddaemonmock.NewMockController(ctrl)
			c.EXPECT().References(gomock.Any(), gomock.Any()).Return(tt.controllerResult, tt.controllerError)

			r := jsonRPCRouter{navddaemon: c}
			req := factory.JSONRPCRequest(protocol.MethodTextDocumentReferences, protocol.ReferenceParams{})
			err := r.HandleReq(ctx, newMockReplier(), req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefinition(t *testing.T) {
	tests := []struct {
		name             string
		controllerResult []protocol.Location
		controllerError  error
		wantErr          bool
	}{
		{
			name:            "error from controller",
			controllerError: errors.New("controller error"),
			wantErr:         true,
		},
		{
			name:             "no error from controller",
			controllerResult: []protocol.Location{{URI: "repo://example.com/a/b#pkg/a.go"}},
			wantErr:          false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()

			c := navddaemonmock.NewMockController(ctrl)
			c.EXPECT().Definition(gomock.Any(), gomock.Any()).Return(tt.controllerResult, tt.controllerError)

			r := jsonRPCRouter{navddaemon: c}
			req := factory.JSONRPCRequest(protocol.MethodTextDocumentDefinition, protocol.DefinitionParams{})
			err := r.HandleReq(ctx, newMockReplier(), req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
