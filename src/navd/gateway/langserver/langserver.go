// Package langserver dials remote language-server endpoints and exposes the
// typed RPC surface consumed by the session and cross-repository layers.
package langserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/crossnav/navd/src/navd/entity"
)

const (
	// MethodXDefinition resolves the canonical symbol identity at a position.
	MethodXDefinition = "textDocument/xdefinition"
	// MethodXReferences is the streaming cross-repository reference query.
	MethodXReferences = "workspace/xreferences"
	// MethodWorkspaceSymbol is the fuzzy symbol search used as definition fallback.
	MethodWorkspaceSymbol = "workspace/symbol"
	// MethodPartialResult carries one streamed batch of an in-flight request.
	MethodPartialResult = "$/partialResult"

	_configKeyLangServers = "langservers"

	_errDial = "dialing %s language server: %w"
)

// Module provides the language-server dialer into an fx application.
var Module = fx.Options(
	fx.Provide(New),
)

// XReferencesParams scope a streaming reference query.
type XReferencesParams struct {
	Query entity.SymbolDescriptor `json:"query"`
	Hints map[string]interface{}  `json:"hints,omitempty"`
	Limit int                     `json:"limit,omitempty"`
	// PartialResultToken routes $/partialResult notifications back to this
	// request. Assigned by the Conn, callers leave it empty.
	PartialResultToken string `json:"partialResultToken,omitempty"`
}

type partialResultParams struct {
	Token string          `json:"token"`
	Value json.RawMessage `json:"value"`
}

// DialParams bind a new session to one (root, mode, revision).
type DialParams struct {
	Mode entity.LanguageMode
	// RootURI is the revision-pinned root URI the server should treat as its
	// workspace root.
	RootURI string
	// InitializationOptions are passed through to the server verbatim.
	InitializationOptions interface{}
}

// Dialer opens language-server sessions.
type Dialer interface {
	// Dial connects to the configured endpoint for the mode and performs the
	// initialize handshake. The returned Conn is ready for requests.
	Dial(ctx context.Context, params DialParams) (Conn, error)
}

// Conn is one live language-server connection.
type Conn interface {
	// XDefinition returns the canonical symbol identities at a position.
	// More than one candidate may be returned (e.g. overloads).
	XDefinition(ctx context.Context, params *protocol.TextDocumentPositionParams) ([]entity.SymbolLocationInformation, error)
	// XReferences issues a streaming reference query. Each partial batch is
	// forwarded to onPartial as it arrives; the returned slice is the full
	// set of results, including every streamed batch.
	XReferences(ctx context.Context, params *XReferencesParams, onPartial func([]entity.ReferenceInformation)) ([]entity.ReferenceInformation, error)
	// WorkspaceSymbol performs a fuzzy workspace-wide symbol search.
	WorkspaceSymbol(ctx context.Context, query string) ([]protocol.SymbolInformation, error)
	// InitializeResult reports the capabilities negotiated at dial time.
	InitializeResult() *protocol.InitializeResult
	// Raw exposes the underlying jsonrpc2 connection for bookkeeping.
	Raw() *jsonrpc2.Conn
	// Close terminates the connection.
	Close() error
}

// Params are inbound parameters to construct the dialer.
type Params struct {
	fx.In

	Config config.Provider
	Logger *zap.SugaredLogger
}

type serverConfig struct {
	Address string `yaml:"address"`
}

type dialer struct {
	servers map[string]serverConfig
	logger  *zap.SugaredLogger
}

// New constructs a Dialer from the langservers config block.
func New(p Params) (Dialer, error) {
	servers := map[string]serverConfig{}
	if err := p.Config.Get(_configKeyLangServers).Populate(&servers); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyLangServers, err)
	}

	return &dialer{
		servers: servers,
		logger:  p.Logger,
	}, nil
}

func (d *dialer) Dial(ctx context.Context, params DialParams) (Conn, error) {
	cfg, ok := d.servers[string(params.Mode)]
	if !ok || cfg.Address == "" {
		return nil, fmt.Errorf("no language server configured for mode %q", params.Mode)
	}

	netConn, err := (&net.Dialer{}).DialContext(ctx, "tcp", cfg.Address)
	if err != nil {
		return nil, fmt.Errorf(_errDial, params.Mode, err)
	}

	rpc := jsonrpc2.NewConn(jsonrpc2.NewStream(netConn))
	c := &conn{
		rpc:     rpc,
		logger:  d.logger,
		partial: make(map[string]func(json.RawMessage)),
	}
	rpc.Go(ctx, c.handle)

	initParams := &protocol.InitializeParams{
		RootURI:               uri.URI(params.RootURI),
		InitializationOptions: params.InitializationOptions,
		Capabilities:          protocol.ClientCapabilities{},
	}
	var initResult protocol.InitializeResult
	if _, err := rpc.Call(ctx, protocol.MethodInitialize, initParams, &initResult); err != nil {
		rpc.Close()
		return nil, fmt.Errorf(_errDial, params.Mode, err)
	}
	if err := rpc.Notify(ctx, protocol.MethodInitialized, &protocol.InitializedParams{}); err != nil {
		rpc.Close()
		return nil, fmt.Errorf(_errDial, params.Mode, err)
	}

	c.initResult = &initResult
	return c, nil
}

type conn struct {
	rpc        jsonrpc2.Conn
	logger     *zap.SugaredLogger
	initResult *protocol.InitializeResult

	partialMu sync.Mutex
	partial   map[string]func(json.RawMessage)
}

// handle routes server-initiated traffic. Only $/partialResult is consumed;
// everything else is answered with method-not-found.
func (c *conn) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case MethodPartialResult:
		var params partialResultParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, fmt.Errorf("%s: %w", jsonrpc2.ErrParse, err))
		}

		c.partialMu.Lock()
		sink, ok := c.partial[params.Token]
		c.partialMu.Unlock()
		if ok {
			sink(params.Value)
		}
		return reply(ctx, nil, nil)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (c *conn) registerPartialSink(token string, sink func(json.RawMessage)) func() {
	c.partialMu.Lock()
	c.partial[token] = sink
	c.partialMu.Unlock()

	return func() {
		c.partialMu.Lock()
		delete(c.partial, token)
		c.partialMu.Unlock()
	}
}

func (c *conn) XDefinition(ctx context.Context, params *protocol.TextDocumentPositionParams) ([]entity.SymbolLocationInformation, error) {
	var result []entity.SymbolLocationInformation
	if _, err := c.rpc.Call(ctx, MethodXDefinition, params, &result); err != nil {
		return nil, fmt.Errorf("calling %s: %w", MethodXDefinition, err)
	}
	return result, nil
}

func (c *conn) XReferences(ctx context.Context, params *XReferencesParams, onPartial func([]entity.ReferenceInformation)) ([]entity.ReferenceInformation, error) {
	token := uuid.Must(uuid.NewV4()).String()
	params.PartialResultToken = token

	var mu sync.Mutex
	collected := make([]entity.ReferenceInformation, 0)
	unregister := c.registerPartialSink(token, func(raw json.RawMessage) {
		var batch []entity.ReferenceInformation
		if err := json.Unmarshal(raw, &batch); err != nil {
			c.logger.Warnw("dropping malformed partial result batch", "error", err)
			return
		}
		mu.Lock()
		collected = append(collected, batch...)
		mu.Unlock()
		if onPartial != nil {
			onPartial(batch)
		}
	})
	defer unregister()

	var final []entity.ReferenceInformation
	if _, err := c.rpc.Call(ctx, MethodXReferences, params, &final); err != nil {
		return nil, fmt.Errorf("calling %s: %w", MethodXReferences, err)
	}
	if len(final) > 0 {
		if onPartial != nil {
			onPartial(final)
		}
		mu.Lock()
		collected = append(collected, final...)
		mu.Unlock()
	}

	mu.Lock()
	defer mu.Unlock()
	return collected, nil
}

func (c *conn) WorkspaceSymbol(ctx context.Context, query string) ([]protocol.SymbolInformation, error) {
	var result []protocol.SymbolInformation
	params := &protocol.WorkspaceSymbolParams{Query: query}
	if _, err := c.rpc.Call(ctx, MethodWorkspaceSymbol, params, &result); err != nil {
		return nil, fmt.Errorf("calling %s: %w", MethodWorkspaceSymbol, err)
	}
	return result, nil
}

func (c *conn) InitializeResult() *protocol.InitializeResult {
	return c.initResult
}

func (c *conn) Raw() *jsonrpc2.Conn {
	return &c.rpc
}

func (c *conn) Close() error {
	return c.rpc.Close()
}
