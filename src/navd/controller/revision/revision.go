// Package revision resolves user-entered revision specifiers to immutable
// commit ids, polling while the backing repository is still being cloned.
package revision

import (
	"context"
	"fmt"
	"strings"
	"time"

	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/crossnav/navd/src/navd/entity"
	"github.com/crossnav/navd/src/navd/gateway/codehost"
	notifier "github.com/crossnav/navd/src/navd/gateway/ide-client"
	"github.com/crossnav/navd/src/navd/internal/clock"
	"github.com/crossnav/navd/src/navd/internal/errors"
)

const (
	// MaxCloningRetries bounds the fixed-interval polling loop while a
	// repository clone is in progress (~100s total). Changing either constant
	// changes user-observable timeout behavior.
	MaxCloningRetries = 100
	// CloningRetryInterval is the fixed spacing between clone polls.
	CloningRetryInterval = time.Second

	_refsHeadsPrefix = "refs/heads/"

	_msgCloning = "Cloning %s, this may take a moment..."
)

// Module provides the revision controller into an fx application.
var Module = fx.Options(
	fx.Provide(New),
)

// Controller resolves revision specifiers against the code host.
type Controller interface {
	// Resolve resolves spec for repo with the default retry budget.
	Resolve(ctx context.Context, repo entity.RepoName, spec entity.RevisionSpec) (entity.ResolvedRevision, error)
	// ResolveWithRetries is Resolve with an explicit clone-poll budget.
	ResolveWithRetries(ctx context.Context, repo entity.RepoName, spec entity.RevisionSpec, retriesRemaining int) (entity.ResolvedRevision, error)
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	CodeHost   codehost.Gateway
	IdeGateway notifier.Gateway
	Clock      clock.Clock
	Logger     *zap.SugaredLogger
	Config     config.Provider
	Stats      tally.Scope
}

type controller struct {
	codeHost   codehost.Gateway
	ideGateway notifier.Gateway
	clock      clock.Clock
	logger     *zap.SugaredLogger
	stats      tally.Scope
}

// New constructs the revision controller.
func New(p Params) Controller {
	return &controller{
		codeHost:   p.CodeHost,
		ideGateway: p.IdeGateway,
		clock:      p.Clock,
		logger:     p.Logger,
		stats:      p.Stats.SubScope("revision"),
	}
}

func (c *controller) Resolve(ctx context.Context, repo entity.RepoName, spec entity.RevisionSpec) (entity.ResolvedRevision, error) {
	return c.ResolveWithRetries(ctx, repo, spec, MaxCloningRetries)
}

func (c *controller) ResolveWithRetries(ctx context.Context, repo entity.RepoName, spec entity.RevisionSpec, retriesRemaining int) (entity.ResolvedRevision, error) {
	if spec == "" {
		spec = entity.DefaultRevisionSpec
	}

	cloningNoticeShown := false
	for {
		info, err := c.codeHost.ResolveRevision(ctx, repo, spec)
		if err != nil {
			return entity.ResolvedRevision{}, fmt.Errorf("resolving %q for %q: %w", spec, repo, err)
		}

		if !info.RepositoryExists {
			return entity.ResolvedRevision{}, &errors.RepositoryNotFoundError{Repo: string(repo)}
		}

		if info.CloneInProgress {
			if retriesRemaining <= 0 {
				c.stats.Counter("clone_timeouts").Inc(1)
				return entity.ResolvedRevision{}, &errors.CloneTimeoutError{Repo: string(repo), Attempts: MaxCloningRetries}
			}

			// One notice per resolution attempt, not one per poll.
			if !cloningNoticeShown {
				cloningNoticeShown = true
				c.showCloningNotice(ctx, repo)
			}

			c.stats.Counter("clone_retries").Inc(1)
			if err := c.clock.Sleep(ctx, CloningRetryInterval); err != nil {
				return entity.ResolvedRevision{}, err
			}
			retriesRemaining--
			continue
		}

		if info.CommitID == "" {
			return entity.ResolvedRevision{}, &errors.RevisionNotFoundError{Repo: string(repo), Spec: string(spec)}
		}

		resolved := entity.ResolvedRevision{Spec: spec, ID: info.CommitID}
		if spec == entity.DefaultRevisionSpec && info.DefaultBranch != "" {
			resolved.Spec = entity.RevisionSpec(_refsHeadsPrefix + strings.TrimPrefix(info.DefaultBranch, _refsHeadsPrefix))
		}
		return resolved, nil
	}
}

// showCloningNotice is best-effort: a session without a registered IDE
// connection still resolves, it just has nowhere to show the notice.
func (c *controller) showCloningNotice(ctx context.Context, repo entity.RepoName) {
	err := c.ideGateway.ShowMessage(ctx, &protocol.ShowMessageParams{
		Type:    protocol.MessageTypeInfo,
		Message: fmt.Sprintf(_msgCloning, repo),
	})
	if err != nil {
		c.logger.Debugw("unable to show cloning notice", "repo", repo, "error", err)
	}
}
