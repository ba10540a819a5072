package workspace

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/zap"

	"github.com/crossnav/navd/src/navd/controller/revision"
	"github.com/crossnav/navd/src/navd/entity"
	notifier "github.com/crossnav/navd/src/navd/gateway/ide-client"
	"github.com/crossnav/navd/src/navd/gateway/langserver"
	"github.com/crossnav/navd/src/navd/internal/errors"
	"github.com/crossnav/navd/src/navd/mapper"
	repository "github.com/crossnav/navd/src/navd/repository/session"
)

const _errSwitchPinned = "root %q is pinned to %s and cannot switch revisions"

// Root owns one repository root: its resolved revision and the live
// language-server sessions bound to that revision, one per language mode.
//
// All session and revision state is guarded by the Root's own mutex; callers
// interact only through methods.
type Root struct {
	key entity.RootKey

	resolver   revision.Controller
	dialer     langserver.Dialer
	sessions   repository.Repository
	ideGateway notifier.Gateway
	logger     *zap.SugaredLogger
	stats      tally.Scope
	disabled   map[entity.LanguageMode]struct{}

	mu   sync.Mutex
	spec entity.RevisionSpec
	// generation increases on every resolution start and on Close. A
	// resolution result is applied only when its generation still matches,
	// which makes revision switches last-call-wins regardless of which
	// resolution completes first.
	generation  uint64
	status      entity.RootStatus
	revision    entity.ResolvedRevision
	resolveErr  error
	resolveDone chan struct{}
	active      map[entity.LanguageMode]*activeSession
	activating  map[entity.LanguageMode]chan struct{}
}

type activeSession struct {
	session *entity.Session
	conn    langserver.Conn
}

type rootDeps struct {
	resolver   revision.Controller
	dialer     langserver.Dialer
	sessions   repository.Repository
	ideGateway notifier.Gateway
	logger     *zap.SugaredLogger
	stats      tally.Scope
	disabled   map[entity.LanguageMode]struct{}
}

func newRoot(ctx context.Context, key entity.RootKey, deps rootDeps) *Root {
	r := &Root{
		key:        key,
		resolver:   deps.resolver,
		dialer:     deps.dialer,
		sessions:   deps.sessions,
		ideGateway: deps.ideGateway,
		logger:     deps.logger,
		stats:      deps.stats,
		disabled:   deps.disabled,
		spec:       key.Spec,
		active:     make(map[entity.LanguageMode]*activeSession),
		activating: make(map[entity.LanguageMode]chan struct{}),
	}

	if key.Pinned() {
		// Pinned roots carry their commit in the URI. Nothing to resolve,
		// and they never revision-switch.
		r.status = entity.RootStatusActive
		r.revision = entity.ResolvedRevision{Spec: key.Spec, ID: key.PinnedID}
		return r
	}

	r.mu.Lock()
	r.beginResolveLocked(ctx)
	r.mu.Unlock()
	return r
}

// Key returns the parsed identity of this root.
func (r *Root) Key() entity.RootKey {
	return r.key
}

// Status returns the current lifecycle state, the active resolved revision,
// and the most recent resolution error when the root is failed.
func (r *Root) Status() (entity.RootStatus, entity.ResolvedRevision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status, r.revision, r.resolveErr
}

// beginResolveLocked starts an asynchronous resolution attempt for the
// current specifier. Callers must hold r.mu.
func (r *Root) beginResolveLocked(ctx context.Context) {
	r.generation++
	gen := r.generation
	r.status = entity.RootStatusResolvingRevision
	r.resolveErr = nil
	done := make(chan struct{})
	r.resolveDone = done
	spec := r.spec

	// Detached from the caller's cancellation so a slow clone outlives the
	// request that triggered it, while keeping routing values on the context.
	bgCtx := context.WithoutCancel(ctx)

	go func() {
		defer close(done)
		resolved, err := r.resolver.Resolve(bgCtx, r.key.Repo, spec)

		r.mu.Lock()
		if gen != r.generation {
			// A newer switch superseded this attempt; drop the result.
			r.mu.Unlock()
			r.stats.Counter("stale_resolutions").Inc(1)
			return
		}
		if err != nil {
			r.status = entity.RootStatusFailed
			r.resolveErr = err
		} else {
			r.status = entity.RootStatusActive
			r.revision = resolved
		}
		r.mu.Unlock()

		r.publishStatus(bgCtx)
	}()
}

// waitResolved blocks until the latest resolution attempt settles and
// returns the active revision.
func (r *Root) waitResolved(ctx context.Context) (entity.ResolvedRevision, error) {
	for {
		r.mu.Lock()
		switch r.status {
		case entity.RootStatusActive:
			rev := r.revision
			r.mu.Unlock()
			return rev, nil
		case entity.RootStatusFailed:
			err := r.resolveErr
			r.mu.Unlock()
			return entity.ResolvedRevision{}, err
		case entity.RootStatusDisposed:
			r.mu.Unlock()
			return entity.ResolvedRevision{}, &errors.RootNotFoundError{URI: r.key.Canonical()}
		}
		done := r.resolveDone
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return entity.ResolvedRevision{}, ctx.Err()
		case <-done:
		}
	}
}

// SwitchRevision disposes every live session and re-resolves the root at the
// given specifier. Sessions are recreated lazily on next demand; if a newer
// switch arrives before this one's resolution completes, the newer one wins.
func (r *Root) SwitchRevision(ctx context.Context, spec entity.RevisionSpec) error {
	if r.key.Pinned() {
		return fmt.Errorf(_errSwitchPinned, r.key.Canonical(), r.key.PinnedID)
	}

	r.mu.Lock()
	if r.status == entity.RootStatusDisposed {
		r.mu.Unlock()
		return &errors.RootNotFoundError{URI: r.key.Canonical()}
	}
	r.spec = spec
	stale := r.detachSessionsLocked()
	r.beginResolveLocked(ctx)
	r.mu.Unlock()

	// Old sessions are fully disposed before any replacement can be created:
	// activation re-checks the generation bumped above, so a dial racing this
	// switch discards its connection rather than registering it.
	r.disposeSessions(ctx, stale)
	r.stats.Counter("revision_switches").Inc(1)
	return nil
}

// EnsureLanguageActivated returns a ready session connection for the mode,
// dialing one if none exists. Administratively disabled modes return a nil
// connection and no error.
func (r *Root) EnsureLanguageActivated(ctx context.Context, mode entity.LanguageMode) (langserver.Conn, error) {
	if _, ok := r.disabled[mode]; ok {
		return nil, nil
	}

	r.retryFailedResolution(ctx)

	for {
		rev, err := r.waitResolved(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		if r.status == entity.RootStatusDisposed {
			r.mu.Unlock()
			return nil, &errors.RootNotFoundError{URI: r.key.Canonical()}
		}
		if s, ok := r.active[mode]; ok {
			conn := s.conn
			r.mu.Unlock()
			return conn, nil
		}
		if ch, ok := r.activating[mode]; ok {
			// Another caller is already dialing this mode; join it.
			r.mu.Unlock()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-ch:
			}
			continue
		}
		ch := make(chan struct{})
		r.activating[mode] = ch
		gen := r.generation
		r.mu.Unlock()

		conn, err := r.dial(ctx, mode, rev)

		r.mu.Lock()
		delete(r.activating, mode)
		close(ch)
		if err != nil {
			r.mu.Unlock()
			return nil, err
		}
		if gen != r.generation || r.status != entity.RootStatusActive {
			// The revision switched mid-dial; this connection is bound to a
			// stale revision and must not be registered.
			r.mu.Unlock()
			_ = conn.Close()
			continue
		}

		sess := &entity.Session{
			UUID:             uuid.Must(uuid.NewV4()),
			RootURI:          r.key.Canonical(),
			Repo:             r.key.Repo,
			Mode:             mode,
			Revision:         rev,
			Conn:             conn.Raw(),
			InitializeResult: conn.InitializeResult(),
		}
		r.active[mode] = &activeSession{session: sess, conn: conn}
		r.mu.Unlock()

		if err := r.sessions.Set(ctx, sess); err != nil {
			r.logger.Warnw("unable to record session", "uuid", sess.UUID, "error", err)
		}
		return conn, nil
	}
}

// retryFailedResolution restarts resolution when the last attempt failed, so
// a transient code-host error does not wedge the root forever.
func (r *Root) retryFailedResolution(ctx context.Context) {
	r.mu.Lock()
	if r.status == entity.RootStatusFailed {
		r.beginResolveLocked(ctx)
	}
	r.mu.Unlock()
}

func (r *Root) dial(ctx context.Context, mode entity.LanguageMode, rev entity.ResolvedRevision) (langserver.Conn, error) {
	pinned := entity.RootKey{Repo: r.key.Repo, PinnedID: rev.ID}
	conn, err := r.dialer.Dial(ctx, langserver.DialParams{
		Mode:    mode,
		RootURI: mapper.FormatRootURI(pinned),
	})
	if err != nil {
		return nil, &errors.SessionStartFailureError{Repo: string(r.key.Repo), Mode: string(mode), Err: err}
	}
	return conn, nil
}

// Close disposes all sessions and marks the root disposed. Safe to call once
// from the owning workspace.
func (r *Root) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.status == entity.RootStatusDisposed {
		r.mu.Unlock()
		return nil
	}
	r.status = entity.RootStatusDisposed
	// Invalidate any in-flight resolution or dial.
	r.generation++
	stale := r.detachSessionsLocked()
	r.mu.Unlock()

	r.disposeSessions(ctx, stale)
	return nil
}

// detachSessionsLocked empties the mode map and returns the removed sessions
// for disposal outside the lock. Callers must hold r.mu.
func (r *Root) detachSessionsLocked() []*activeSession {
	stale := make([]*activeSession, 0, len(r.active))
	for _, s := range r.active {
		stale = append(stale, s)
	}
	r.active = make(map[entity.LanguageMode]*activeSession)
	return stale
}

func (r *Root) disposeSessions(ctx context.Context, stale []*activeSession) {
	for _, s := range stale {
		if err := s.conn.Close(); err != nil {
			r.logger.Debugw("closing language server connection",
				"repo", r.key.Repo, "mode", s.session.Mode, "error", err)
		}
		if err := r.sessions.Delete(ctx, s.session.UUID); err != nil {
			r.logger.Debugw("removing session record", "uuid", s.session.UUID, "error", err)
		}
	}
}

// publishStatus is best-effort: the IDE may not be connected.
func (r *Root) publishStatus(ctx context.Context) {
	status, rev, resolveErr := r.Status()
	params := &notifier.RootStatusParams{
		RootURI:  r.key.Canonical(),
		Status:   status.String(),
		Revision: rev.ID,
	}
	if resolveErr != nil {
		params.Message = resolveErr.Error()
	}
	if err := r.ideGateway.PublishRootStatus(ctx, params); err != nil {
		r.logger.Debugw("unable to publish root status", "root", r.key.Canonical(), "error", err)
	}
}
