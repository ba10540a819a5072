// Package navddaemon implements the navd daemon's business logic: it owns
// the set of connected IDE clients and coordinates the workspace and
// cross-repository controllers on their behalf.
package navddaemon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/crossnav/navd/src/navd/controller/crossrepo"
	"github.com/crossnav/navd/src/navd/controller/workspace"
	notifier "github.com/crossnav/navd/src/navd/gateway/ide-client"
	"github.com/crossnav/navd/src/navd/mapper"
)

const (
	_idleTimeoutMinutesKey = "idleTimeoutMinutes"

	_serverName = "navd"
)

// Module provides the daemon controller into an fx application.
var Module = fx.Options(
	fx.Provide(New),
)

// Controller orchestrates the business logic for each request.
type Controller interface {
	// LSP lifecycle methods.
	Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error)
	Initialized(ctx context.Context, params *protocol.InitializedParams) error
	Shutdown(ctx context.Context) error
	Exit(ctx context.Context) error

	// Document related methods.
	DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error
	DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error
	DidChangeWorkspaceFolders(ctx context.Context, params *protocol.DidChangeWorkspaceFoldersParams) error

	// Code intel methods.
	References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error)
	Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error)

	// Custom methods for use within this service.
	SwitchRevision(ctx context.Context, params *mapper.SwitchRevisionParams) error
	RootStatus(ctx context.Context, params *mapper.RootStatusRequestParams) (*notifier.RootStatusParams, error)
	RequestFullShutdown(ctx context.Context) error
	InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error)
	EndSession(ctx context.Context, id uuid.UUID) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Shutdowner fx.Shutdowner
	Workspace  workspace.Controller
	CrossRepo  crossrepo.Controller
	IdeGateway notifier.Gateway
	Logger     *zap.SugaredLogger
	Config     config.Provider
	Stats      tally.Scope
}

type controller struct {
	shutdowner fx.Shutdowner
	workspace  workspace.Controller
	crossRepo  crossrepo.Controller
	ideGateway notifier.Gateway
	logger     *zap.SugaredLogger
	stats      tally.Scope

	mu           sync.Mutex
	clients      map[uuid.UUID]struct{}
	fullShutdown bool

	idleTimer          *time.Timer
	idleTimerMu        sync.Mutex
	idleTimeoutMinutes time.Duration
}

// New constructs a new top-level controller for the service.
func New(p Params) (Controller, error) {
	var timeoutMinutesRaw int64
	if err := p.Config.Get(_idleTimeoutMinutesKey).Populate(&timeoutMinutesRaw); err != nil || timeoutMinutesRaw == 0 {
		return nil, fmt.Errorf("unable to get idle timeout from config: %w", err)
	}

	c := &controller{
		shutdowner:         p.Shutdowner,
		workspace:          p.Workspace,
		crossRepo:          p.CrossRepo,
		ideGateway:         p.IdeGateway,
		logger:             p.Logger,
		stats:              p.Stats.SubScope("daemon"),
		clients:            make(map[uuid.UUID]struct{}),
		idleTimeoutMinutes: time.Duration(timeoutMinutesRaw) * time.Minute,
	}
	c.refreshIdleTimer(context.Background())
	return c, nil
}

// InitSession registers a newly connected IDE client and returns its UUID.
func (c *controller) InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error) {
	defer c.refreshIdleTimer(ctx)

	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	if err := c.ideGateway.RegisterClient(ctx, id, conn); err != nil {
		return uuid.Nil, fmt.Errorf("registering client: %w", err)
	}

	c.mu.Lock()
	c.clients[id] = struct{}{}
	c.mu.Unlock()
	c.stats.Counter("sessions_started").Inc(1)
	return id, nil
}

// EndSession deregisters a disconnected IDE client. The workspace's roots
// stay alive for remaining clients; the daemon shuts down on idle instead.
func (c *controller) EndSession(ctx context.Context, id uuid.UUID) error {
	defer c.refreshIdleTimer(ctx)

	if err := c.ideGateway.DeregisterClient(ctx, id); err != nil {
		return fmt.Errorf("deregistering client: %w", err)
	}

	c.mu.Lock()
	delete(c.clients, id)
	c.mu.Unlock()
	c.stats.Counter("sessions_ended").Inc(1)
	return nil
}

func (c *controller) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	defer c.refreshIdleTimer(ctx)

	result := &protocol.InitializeResult{
		ServerInfo: &protocol.ServerInfo{
			Name: _serverName,
		},
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
			},
			ReferencesProvider: true,
			DefinitionProvider: true,
			Workspace: &protocol.ServerCapabilitiesWorkspace{
				WorkspaceFolders: &protocol.ServerCapabilitiesWorkspaceFolders{
					Supported:           true,
					ChangeNotifications: true,
				},
			},
		},
	}

	if len(params.WorkspaceFolders) > 0 {
		if err := c.workspace.DidChangeWorkspaceFolders(ctx, params.WorkspaceFolders, nil); err != nil {
			c.logger.Warnw("registering initial workspace folders", "error", err)
		}
	}

	return result, nil
}

func (c *controller) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	if err := c.ideGateway.ShowMessage(ctx, &protocol.ShowMessageParams{
		Message: "Connected to the navd code navigation daemon.",
		Type:    protocol.MessageTypeInfo,
	}); err != nil {
		c.logger.Debugw("unable to show initialized message", "error", err)
	}
	return nil
}

// Shutdown is sent just before Exit to indicate that the session will exit.
func (c *controller) Shutdown(ctx context.Context) error {
	return nil
}

// Exit cleans up after one client, or exits the whole process if a full
// shutdown was requested first.
func (c *controller) Exit(ctx context.Context) error {
	if c.isFullShutdown() {
		// Zero out the timer to trigger immediate shutdown.
		c.idleTimerMu.Lock()
		c.idleTimer.Reset(0)
		c.idleTimerMu.Unlock()
		return nil
	}

	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return fmt.Errorf("error during session exit: %w", err)
	}
	return c.EndSession(ctx, id)
}

// RequestFullShutdown sets the controller to treat the next Exit request as
// a request to exit the entire process.
func (c *controller) RequestFullShutdown(ctx context.Context) error {
	c.mu.Lock()
	c.fullShutdown = true
	c.mu.Unlock()
	return nil
}

func (c *controller) isFullShutdown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fullShutdown
}

// refreshIdleTimer pushes back the idle shutdown deadline. When the timer
// fires with no connected clients the daemon exits.
func (c *controller) refreshIdleTimer(ctx context.Context) {
	c.idleTimerMu.Lock()
	defer c.idleTimerMu.Unlock()

	if c.idleTimer == nil {
		c.idleTimer = time.AfterFunc(c.idleTimeoutMinutes, c.onIdleTimeout)
		return
	}
	c.idleTimer.Reset(c.idleTimeoutMinutes)
}

func (c *controller) onIdleTimeout() {
	c.mu.Lock()
	active := len(c.clients)
	full := c.fullShutdown
	c.mu.Unlock()

	if active > 0 && !full {
		c.refreshIdleTimer(context.Background())
		return
	}

	c.logger.Infow("shutting down", "activeClients", active)
	if err := c.workspace.Shutdown(context.Background()); err != nil {
		c.logger.Warnw("workspace teardown", "error", err)
	}
	if err := c.shutdowner.Shutdown(); err != nil {
		c.logger.Errorw("shutdown signal", "error", err)
	}
}
