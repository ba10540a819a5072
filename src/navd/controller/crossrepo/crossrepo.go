// Package crossrepo answers reference and definition queries that span
// repository boundaries, fanning a query out to each repository known to
// depend on the one under the cursor.
package crossrepo

import (
	"context"
	"fmt"
	"sync"

	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/crossnav/navd/src/navd/controller/workspace"
	"github.com/crossnav/navd/src/navd/entity"
	"github.com/crossnav/navd/src/navd/gateway/codehost"
	"github.com/crossnav/navd/src/navd/gateway/langserver"
	"github.com/crossnav/navd/src/navd/internal/operation"
	"github.com/crossnav/navd/src/navd/mapper"
)

const (
	// _maxDependentRepos caps how many dependent repositories one reference
	// query fans out to, regardless of how many the index reports.
	_maxDependentRepos = 10
	// _remoteReferencesLimit caps results requested from each dependent.
	_remoteReferencesLimit = 50

	_errParseURI = "parsing document uri: %w"
)

// Module provides the cross-repository controller into an fx application.
var Module = fx.Options(
	fx.Provide(New),
)

// Controller serves reference and definition queries for a document position.
type Controller interface {
	// FindReferences returns every known reference to the symbol at the
	// position, across the current repository and its dependents. Partial
	// batches are forwarded to onPartial as they arrive, possibly from
	// multiple goroutines; onPartial may be nil.
	FindReferences(ctx context.Context, docURI string, pos protocol.Position, onPartial func([]protocol.Location)) ([]protocol.Location, error)
	// FindDefinition returns definition locations for the symbol at the
	// position, falling back to a fuzzy workspace-symbol search filtered by
	// exact name when the precise lookup yields no location.
	FindDefinition(ctx context.Context, docURI string, pos protocol.Position) ([]protocol.Location, error)
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Workspace workspace.Controller
	CodeHost  codehost.Gateway
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

type controller struct {
	workspace workspace.Controller
	codeHost  codehost.Gateway
	logger    *zap.SugaredLogger
	stats     tally.Scope

	// Dependents lookups hit the code host index remotely. Identical queries
	// from concurrent or repeated requests share one execution and reuse the
	// completed result.
	depCache *operation.Manager[[]entity.Dependent]
}

// New constructs the cross-repository controller.
func New(p Params) Controller {
	stats := p.Stats.SubScope("crossrepo")
	return &controller{
		workspace: p.Workspace,
		codeHost:  p.CodeHost,
		logger:    p.Logger,
		stats:     stats,
		depCache:  operation.New[[]entity.Dependent](stats.SubScope("dependents_cache")),
	}
}

// target is the resolved starting point of a query: the document's root, the
// session connection for its language, and the revision-pinned document URI
// the language server understands.
type target struct {
	root      *workspace.Root
	conn      langserver.Conn
	mode      entity.LanguageMode
	path      string
	pinnedDoc string
	revision  entity.ResolvedRevision
}

func (c *controller) resolveTarget(ctx context.Context, docURI string) (*target, error) {
	key, path, err := mapper.ParseDocumentURI(docURI)
	if err != nil {
		return nil, fmt.Errorf(_errParseURI, err)
	}
	mode := mapper.LanguageModeForPath(path)
	if mode == "" {
		return nil, fmt.Errorf("no language mode for document %q", docURI)
	}

	root := c.workspace.AddRootByKey(ctx, key)
	conn, err := root.EnsureLanguageActivated(ctx, mode)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		// Mode administratively disabled.
		return nil, nil
	}

	_, rev, _ := root.Status()
	pinned := entity.RootKey{Repo: key.Repo, PinnedID: rev.ID}
	return &target{
		root:      root,
		conn:      conn,
		mode:      mode,
		path:      path,
		pinnedDoc: mapper.FormatDocumentURI(pinned, path),
		revision:  rev,
	}, nil
}

func (c *controller) FindReferences(ctx context.Context, docURI string, pos protocol.Position, onPartial func([]protocol.Location)) ([]protocol.Location, error) {
	tgt, err := c.resolveTarget(ctx, docURI)
	if err != nil {
		return nil, err
	}
	if tgt == nil {
		return nil, nil
	}

	candidates, err := tgt.conn.XDefinition(ctx, &protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentURI(tgt.pinnedDoc)},
		Position:     pos,
	})
	if err != nil {
		return nil, fmt.Errorf("looking up symbol at %s:%d:%d: %w", tgt.path, pos.Line, pos.Character, err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	forward := newPartialForwarder(ctx, onPartial)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var merged []protocol.Location

	for _, candidate := range candidates {
		dependents := c.dependents(ctx, tgt, pos)
		for _, dep := range dependents {
			wg.Add(1)
			go func(symbol entity.SymbolDescriptor, dep entity.Dependent) {
				defer wg.Done()
				locs := c.queryDependent(ctx, tgt, symbol, dep, forward)
				mu.Lock()
				merged = append(merged, locs...)
				mu.Unlock()
			}(candidate.Symbol, dep)
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return merged, nil
	case <-ctx.Done():
		// Remote calls already in flight keep running detached; their late
		// results are dropped by the forwarder and never returned.
		return nil, nil
	}
}

// dependents returns at most _maxDependentRepos repositories depending on the
// target. A lookup failure contributes nothing rather than failing the query.
func (c *controller) dependents(ctx context.Context, tgt *target, pos protocol.Position) []entity.Dependent {
	query := codehost.DependentsQuery{
		Repo:      tgt.root.Key().Repo,
		Rev:       tgt.revision.ID,
		Path:      tgt.path,
		Mode:      tgt.mode,
		Line:      int(pos.Line),
		Character: int(pos.Character),
	}
	key := fmt.Sprintf("dependents|%s@%s|%s|%d:%d|%s", query.Repo, query.Rev, query.Path, query.Line, query.Character, query.Mode)
	deps, err := c.depCache.Perform(ctx, key, func(ctx context.Context) ([]entity.Dependent, error) {
		return c.codeHost.Dependents(ctx, query)
	})
	if err != nil {
		c.logger.Warnw("dependents lookup failed", "repo", tgt.root.Key().Repo, "error", err)
		c.stats.Counter("dependent_lookup_failures").Inc(1)
		return nil
	}
	if len(deps) > _maxDependentRepos {
		deps = deps[:_maxDependentRepos]
	}
	return deps
}

// queryDependent runs one dependent's reference query. Every failure mode
// resolves to an empty contribution: one unreachable dependent must never
// fail the aggregate request.
func (c *controller) queryDependent(ctx context.Context, tgt *target, symbol entity.SymbolDescriptor, dep entity.Dependent, forward *partialForwarder) []protocol.Location {
	conn := tgt.conn
	if dep.Workspace != tgt.root.Key().Repo {
		depRoot := c.workspace.AddRootByKey(ctx, entity.RootKey{Repo: dep.Workspace})
		depConn, err := depRoot.EnsureLanguageActivated(ctx, tgt.mode)
		if err != nil || depConn == nil {
			if err != nil {
				c.logger.Warnw("dependent session unavailable", "dependent", dep.Workspace, "error", err)
				c.stats.Counter("dependent_failures").Inc(1)
			}
			return nil
		}
		conn = depConn
	}

	// Detached so cancellation of the aggregate request does not abort a
	// remote call mid-flight; the forwarder drops anything arriving late.
	callCtx := context.WithoutCancel(ctx)
	refs, err := conn.XReferences(callCtx, &langserver.XReferencesParams{
		Query: symbol,
		Hints: dep.Hints,
		Limit: _remoteReferencesLimit,
	}, func(batch []entity.ReferenceInformation) {
		forward.forward(batch)
	})
	if err != nil {
		c.logger.Warnw("dependent reference query failed", "dependent", dep.Workspace, "error", err)
		c.stats.Counter("dependent_failures").Inc(1)
		return nil
	}

	locs := make([]protocol.Location, 0, len(refs))
	for _, r := range refs {
		locs = append(locs, r.Reference)
	}
	return locs
}

func (c *controller) FindDefinition(ctx context.Context, docURI string, pos protocol.Position) ([]protocol.Location, error) {
	tgt, err := c.resolveTarget(ctx, docURI)
	if err != nil {
		return nil, err
	}
	if tgt == nil {
		return nil, nil
	}

	candidates, err := tgt.conn.XDefinition(ctx, &protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentURI(tgt.pinnedDoc)},
		Position:     pos,
	})
	if err != nil {
		return nil, fmt.Errorf("looking up definition at %s:%d:%d: %w", tgt.path, pos.Line, pos.Character, err)
	}

	var locs []protocol.Location
	var unlocated []entity.SymbolDescriptor
	for _, cand := range candidates {
		if cand.Location != nil {
			locs = append(locs, *cand.Location)
		} else {
			unlocated = append(unlocated, cand.Symbol)
		}
	}
	if len(locs) > 0 || len(unlocated) == 0 {
		return locs, nil
	}

	// Fuzzy fallback: a symbol identity without a concrete location can
	// still be found by name through the workspace symbol index.
	for _, symbol := range unlocated {
		name, _ := symbol["name"].(string)
		if name == "" {
			continue
		}
		syms, err := tgt.conn.WorkspaceSymbol(ctx, name)
		if err != nil {
			c.logger.Warnw("fuzzy definition lookup failed", "name", name, "error", err)
			continue
		}
		for _, s := range syms {
			if s.Name == name {
				locs = append(locs, s.Location)
			}
		}
	}
	return locs, nil
}

// partialForwarder serializes streamed batches to the caller's callback and
// stops forwarding once the caller's context is cancelled.
type partialForwarder struct {
	ctx       context.Context
	mu        sync.Mutex
	onPartial func([]protocol.Location)
}

func newPartialForwarder(ctx context.Context, onPartial func([]protocol.Location)) *partialForwarder {
	return &partialForwarder{ctx: ctx, onPartial: onPartial}
}

func (f *partialForwarder) forward(batch []entity.ReferenceInformation) {
	if f.onPartial == nil || len(batch) == 0 || f.ctx.Err() != nil {
		return
	}
	locs := make([]protocol.Location, 0, len(batch))
	for _, r := range batch {
		locs = append(locs, r.Reference)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ctx.Err() != nil {
		return
	}
	f.onPartial(locs)
}
