// Package workspace owns the set of repository roots active in the current
// editing session and the language-server sessions living under them.
package workspace

import (
	"context"
	"fmt"
	"sync"

	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/crossnav/navd/src/navd/controller/revision"
	"github.com/crossnav/navd/src/navd/entity"
	notifier "github.com/crossnav/navd/src/navd/gateway/ide-client"
	"github.com/crossnav/navd/src/navd/gateway/langserver"
	"github.com/crossnav/navd/src/navd/internal/errors"
	"github.com/crossnav/navd/src/navd/mapper"
	repository "github.com/crossnav/navd/src/navd/repository/session"
)

const (
	_configKey = "workspace"

	_errParseURI = "parsing workspace uri: %w"
)

// Module provides the workspace controller into an fx application.
var Module = fx.Options(
	fx.Provide(New),
)

// Controller is the registry of repository roots. Root identity is the
// canonical repository URI, independent of which revision is active.
type Controller interface {
	// AddRoot registers a root for the given root URI, returning the existing
	// one when already registered.
	AddRoot(ctx context.Context, rawURI string) (*Root, error)
	// AddRootByKey is AddRoot for an already-parsed key.
	AddRootByKey(ctx context.Context, key entity.RootKey) *Root
	// GetRoot returns the root registered for the URI, by exact canonical
	// match only. No ancestor search is performed.
	GetRoot(rawURI string) (*Root, error)
	// RemoveRootIfUnused disposes the root unless it is an explicit workspace
	// folder or an open document still resolves to it. Reports whether the
	// root was removed.
	RemoveRootIfUnused(ctx context.Context, rawURI string) (bool, error)

	// DidOpenDocument tracks an opened document, ensuring a root exists for
	// its repository and a session is active for the document's language.
	DidOpenDocument(ctx context.Context, rawURI string, mode entity.LanguageMode) (*Root, error)
	// DidCloseDocument untracks a document and removes its root if that left
	// the root unused.
	DidCloseDocument(ctx context.Context, rawURI string) error
	// DidChangeWorkspaceFolders applies a workspace-folder change event.
	DidChangeWorkspaceFolders(ctx context.Context, added, removed []protocol.WorkspaceFolder) error

	// Shutdown disposes every root.
	Shutdown(ctx context.Context) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Revision   revision.Controller
	Dialer     langserver.Dialer
	Sessions   repository.Repository
	IdeGateway notifier.Gateway
	Logger     *zap.SugaredLogger
	Config     config.Provider
	Stats      tally.Scope
}

type workspaceConfig struct {
	// DisabledModes lists language modes that must never be activated.
	DisabledModes []string `yaml:"disabledModes"`
}

type controller struct {
	deps   rootDeps
	logger *zap.SugaredLogger
	stats  tally.Scope

	mu      sync.Mutex
	roots   map[string]*Root
	folders map[string]struct{}
	// openDocs maps canonical root URI to the set of open document URIs
	// currently resolving to that root.
	openDocs map[string]map[string]struct{}
}

// New constructs the workspace controller.
func New(p Params) (Controller, error) {
	var cfg workspaceConfig
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("loading workspace config: %w", err)
	}

	disabled := make(map[entity.LanguageMode]struct{}, len(cfg.DisabledModes))
	for _, m := range cfg.DisabledModes {
		disabled[entity.LanguageMode(m)] = struct{}{}
	}

	stats := p.Stats.SubScope("workspace")
	return &controller{
		deps: rootDeps{
			resolver:   p.Revision,
			dialer:     p.Dialer,
			sessions:   p.Sessions,
			ideGateway: p.IdeGateway,
			logger:     p.Logger,
			stats:      stats,
			disabled:   disabled,
		},
		logger:   p.Logger,
		stats:    stats,
		roots:    make(map[string]*Root),
		folders:  make(map[string]struct{}),
		openDocs: make(map[string]map[string]struct{}),
	}, nil
}

func (c *controller) AddRoot(ctx context.Context, rawURI string) (*Root, error) {
	key, err := mapper.ParseRootURI(rawURI)
	if err != nil {
		return nil, fmt.Errorf(_errParseURI, err)
	}
	return c.addRootByKey(ctx, key), nil
}

func (c *controller) AddRootByKey(ctx context.Context, key entity.RootKey) *Root {
	return c.addRootByKey(ctx, key)
}

func (c *controller) addRootByKey(ctx context.Context, key entity.RootKey) *Root {
	canonical := key.Canonical()

	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.roots[canonical]; ok {
		return r
	}
	r := newRoot(ctx, key, c.deps)
	c.roots[canonical] = r
	c.stats.Gauge("active_roots").Update(float64(len(c.roots)))
	c.logger.Infow("root added", "root", canonical, "pinned", key.Pinned())
	return r
}

func (c *controller) GetRoot(rawURI string) (*Root, error) {
	key, err := mapper.ParseRootURI(rawURI)
	if err != nil {
		return nil, fmt.Errorf(_errParseURI, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.roots[key.Canonical()]
	if !ok {
		return nil, &errors.RootNotFoundError{URI: key.Canonical()}
	}
	return r, nil
}

func (c *controller) RemoveRootIfUnused(ctx context.Context, rawURI string) (bool, error) {
	key, err := mapper.ParseRootURI(rawURI)
	if err != nil {
		return false, fmt.Errorf(_errParseURI, err)
	}
	return c.removeIfUnused(ctx, key.Canonical()), nil
}

func (c *controller) removeIfUnused(ctx context.Context, canonical string) bool {
	c.mu.Lock()
	r, ok := c.roots[canonical]
	if !ok {
		c.mu.Unlock()
		return false
	}
	if _, isFolder := c.folders[canonical]; isFolder {
		c.mu.Unlock()
		return false
	}
	if len(c.openDocs[canonical]) > 0 {
		c.mu.Unlock()
		return false
	}
	delete(c.roots, canonical)
	delete(c.openDocs, canonical)
	c.stats.Gauge("active_roots").Update(float64(len(c.roots)))
	c.mu.Unlock()

	if err := r.Close(ctx); err != nil {
		c.logger.Warnw("closing root", "root", canonical, "error", err)
	}
	c.logger.Infow("root removed", "root", canonical)
	return true
}

func (c *controller) DidOpenDocument(ctx context.Context, rawURI string, mode entity.LanguageMode) (*Root, error) {
	key, _, err := mapper.ParseDocumentURI(rawURI)
	if err != nil {
		return nil, fmt.Errorf(_errParseURI, err)
	}

	r := c.addRootByKey(ctx, key)
	canonical := key.Canonical()

	c.mu.Lock()
	docs, ok := c.openDocs[canonical]
	if !ok {
		docs = make(map[string]struct{})
		c.openDocs[canonical] = docs
	}
	docs[rawURI] = struct{}{}
	c.mu.Unlock()

	if _, err := r.EnsureLanguageActivated(ctx, mode); err != nil {
		// The root stays registered; activation is re-attempted on the next
		// demand for this mode.
		return r, err
	}
	return r, nil
}

func (c *controller) DidCloseDocument(ctx context.Context, rawURI string) error {
	key, _, err := mapper.ParseDocumentURI(rawURI)
	if err != nil {
		return fmt.Errorf(_errParseURI, err)
	}
	canonical := key.Canonical()

	c.mu.Lock()
	if docs, ok := c.openDocs[canonical]; ok {
		delete(docs, rawURI)
		if len(docs) == 0 {
			delete(c.openDocs, canonical)
		}
	}
	c.mu.Unlock()

	c.removeIfUnused(ctx, canonical)
	return nil
}

func (c *controller) DidChangeWorkspaceFolders(ctx context.Context, added, removed []protocol.WorkspaceFolder) error {
	var errs error
	for _, f := range added {
		key, err := mapper.ParseRootURI(f.URI)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf(_errParseURI, err))
			continue
		}
		canonical := key.Canonical()
		c.mu.Lock()
		c.folders[canonical] = struct{}{}
		c.mu.Unlock()
		c.addRootByKey(ctx, key)
	}

	for _, f := range removed {
		key, err := mapper.ParseRootURI(f.URI)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf(_errParseURI, err))
			continue
		}
		canonical := key.Canonical()
		c.mu.Lock()
		delete(c.folders, canonical)
		c.mu.Unlock()
		c.removeIfUnused(ctx, canonical)
	}
	return errs
}

func (c *controller) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	roots := make([]*Root, 0, len(c.roots))
	for _, r := range c.roots {
		roots = append(roots, r)
	}
	c.roots = make(map[string]*Root)
	c.folders = make(map[string]struct{})
	c.openDocs = make(map[string]map[string]struct{})
	c.stats.Gauge("active_roots").Update(0)
	c.mu.Unlock()

	var errs error
	for _, r := range roots {
		errs = multierr.Append(errs, r.Close(ctx))
	}
	return errs
}
