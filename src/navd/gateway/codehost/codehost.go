// Package codehost queries the code host's GraphQL-style API for revision
// resolution and dependent-repository lookups.
package codehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/crossnav/navd/src/navd/entity"
)

const (
	_configKeyURL     = "codehost.url"
	_configKeyTimeout = "codehost.timeoutSeconds"

	_defaultTimeout = 10 * time.Second

	_errQuery = "querying code host: %w"

	_queryResolveRevision = `query ResolveRev($repo: String!, $rev: String!) {
  repository(name: $repo) {
    defaultBranch
    commit(rev: $rev) {
      cloneInProgress
      commit { id }
    }
  }
}`

	_queryDependents = `query Dependents($repo: String!, $rev: String!, $path: String!, $mode: String!, $line: Int!, $character: Int!) {
  dependents(repo: $repo, rev: $rev, path: $path, mode: $mode, line: $line, character: $character) {
    workspace
    hints
  }
}`
)

// Module provides the code host gateway into an fx application.
var Module = fx.Options(
	fx.Provide(New),
)

// RevisionInfo is the code host's view of one (repository, specifier) pair.
type RevisionInfo struct {
	// RepositoryExists is false when the code host has no repository by the
	// queried name.
	RepositoryExists bool
	// DefaultBranch is the repository's default branch, when known.
	DefaultBranch string
	// CloneInProgress indicates the repository is still being cloned; commit
	// data is unavailable until cloning finishes.
	CloneInProgress bool
	// CommitID is the resolved commit hash, empty when the specifier did not
	// resolve.
	CommitID string
}

// DependentsQuery identifies a symbol position whose dependent repositories
// should be listed.
type DependentsQuery struct {
	Repo      entity.RepoName
	Rev       string
	Path      string
	Mode      entity.LanguageMode
	Line      int
	Character int
}

// Gateway is the outbound surface to the code host.
type Gateway interface {
	// ResolveRevision fetches existence, default branch, and commit metadata
	// for a revision specifier. Transport-level and API-level failures are
	// returned as errors; "repository missing", "still cloning", and
	// "revision unknown" are data, reported via RevisionInfo.
	ResolveRevision(ctx context.Context, repo entity.RepoName, spec entity.RevisionSpec) (*RevisionInfo, error)
	// Dependents lists repositories known to depend on the queried repository,
	// in the code host's preference order.
	Dependents(ctx context.Context, q DependentsQuery) ([]entity.Dependent, error)
}

// Params are inbound parameters to construct the gateway.
type Params struct {
	fx.In

	Config config.Provider
	Logger *zap.SugaredLogger
}

type gateway struct {
	url    string
	client *http.Client
	logger *zap.SugaredLogger
}

// New constructs a Gateway from the codehost config block.
func New(p Params) (Gateway, error) {
	var url string
	if err := p.Config.Get(_configKeyURL).Populate(&url); err != nil || url == "" {
		return nil, fmt.Errorf("missing config field %q: %w", _configKeyURL, err)
	}

	timeout := _defaultTimeout
	var timeoutSeconds int64
	if err := p.Config.Get(_configKeyTimeout).Populate(&timeoutSeconds); err == nil && timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}

	return &gateway{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: p.Logger,
	}, nil
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

func (g *gateway) ResolveRevision(ctx context.Context, repo entity.RepoName, spec entity.RevisionSpec) (*RevisionInfo, error) {
	var resp struct {
		Data struct {
			Repository *struct {
				DefaultBranch string `json:"defaultBranch"`
				Commit        *struct {
					CloneInProgress bool `json:"cloneInProgress"`
					Commit          *struct {
						ID string `json:"id"`
					} `json:"commit"`
				} `json:"commit"`
			} `json:"repository"`
		} `json:"data"`
		Errors []graphQLError `json:"errors"`
	}

	err := g.do(ctx, _queryResolveRevision, map[string]interface{}{
		"repo": string(repo),
		"rev":  string(spec),
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf(_errQuery, fmt.Errorf("API error: %s", resp.Errors[0].Message))
	}

	if resp.Data.Repository == nil {
		return &RevisionInfo{}, nil
	}

	info := &RevisionInfo{
		RepositoryExists: true,
		DefaultBranch:    resp.Data.Repository.DefaultBranch,
	}
	if c := resp.Data.Repository.Commit; c != nil {
		info.CloneInProgress = c.CloneInProgress
		if c.Commit != nil {
			info.CommitID = c.Commit.ID
		}
	}
	return info, nil
}

func (g *gateway) Dependents(ctx context.Context, q DependentsQuery) ([]entity.Dependent, error) {
	var resp struct {
		Data struct {
			Dependents []entity.Dependent `json:"dependents"`
		} `json:"data"`
		Errors []graphQLError `json:"errors"`
	}

	err := g.do(ctx, _queryDependents, map[string]interface{}{
		"repo":      string(q.Repo),
		"rev":       q.Rev,
		"path":      q.Path,
		"mode":      string(q.Mode),
		"line":      q.Line,
		"character": q.Character,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf(_errQuery, fmt.Errorf("API error: %s", resp.Errors[0].Message))
	}

	return resp.Data.Dependents, nil
}

func (g *gateway) do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf(_errQuery, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf(_errQuery, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf(_errQuery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(_errQuery, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf(_errQuery, err)
	}
	return nil
}
