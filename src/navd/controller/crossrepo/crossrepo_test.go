package crossrepo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/crossnav/navd/src/navd/controller/revision/revisionmock"
	"github.com/crossnav/navd/src/navd/controller/workspace"
	"github.com/crossnav/navd/src/navd/entity"
	"github.com/crossnav/navd/src/navd/gateway/codehost/codehostmock"
	"github.com/crossnav/navd/src/navd/gateway/ide-client/ideclientmock"
	"github.com/crossnav/navd/src/navd/gateway/langserver"
	"github.com/crossnav/navd/src/navd/gateway/langserver/langservermock"
	repository "github.com/crossnav/navd/src/navd/repository/session"
)

const (
	_testRepo     = entity.RepoName("example.com/a/b")
	_testDocURI   = "repo://example.com/a/b#pkg/a.go"
	_testCommitID = "abc123def456abc123def456abc123def456abc1"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testEnv struct {
	ctrl     *gomock.Controller
	codeHost *codehostmock.MockGateway
	dialer   *langservermock.MockDialer
	ws       workspace.Controller
	ownConn  *langservermock.MockConn
}

func newTestEnv(t *testing.T) (Controller, *testEnv) {
	ctrl := gomock.NewController(t)
	env := &testEnv{
		ctrl:     ctrl,
		codeHost: codehostmock.NewMockGateway(ctrl),
		dialer:   langservermock.NewMockDialer(ctrl),
	}

	resolver := revisionmock.NewMockController(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, repo entity.RepoName, spec entity.RevisionSpec) (entity.ResolvedRevision, error) {
			return entity.ResolvedRevision{Spec: spec, ID: _testCommitID}, nil
		}).AnyTimes()

	ide := ideclientmock.NewMockGateway(ctrl)
	ide.EXPECT().PublishRootStatus(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	provider, err := config.NewStaticProvider(map[string]interface{}{
		"workspace": map[string]interface{}{},
	})
	require.NoError(t, err)

	ws, err := workspace.New(workspace.Params{
		Revision:   resolver,
		Dialer:     env.dialer,
		Sessions:   repository.New(tally.NewTestScope("", nil)),
		IdeGateway: ide,
		Logger:     zap.NewNop().Sugar(),
		Config:     provider,
		Stats:      tally.NewTestScope("", nil),
	})
	require.NoError(t, err)
	env.ws = ws
	t.Cleanup(func() { require.NoError(t, ws.Shutdown(context.Background())) })

	// The current repository's own session.
	env.ownConn = newReadyConn(env)
	env.dialer.EXPECT().Dial(gomock.Any(), dialFor(_testRepo)).Return(env.ownConn, nil)

	c := New(Params{
		Workspace: ws,
		CodeHost:  env.codeHost,
		Logger:    zap.NewNop().Sugar(),
		Stats:     tally.NewTestScope("", nil),
	})
	return c, env
}

func newReadyConn(env *testEnv) *langservermock.MockConn {
	conn := langservermock.NewMockConn(env.ctrl)
	conn.EXPECT().Raw().Return(nil).AnyTimes()
	conn.EXPECT().InitializeResult().Return(&protocol.InitializeResult{}).AnyTimes()
	conn.EXPECT().Close().Return(nil).AnyTimes()
	return conn
}

// dialFor matches a dial request for the given repository.
func dialFor(repo entity.RepoName) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		params, ok := x.(langserver.DialParams)
		return ok && params.RootURI == "repo://"+string(repo)+"@"+_testCommitID
	})
}

func expectXDefinition(conn *langservermock.MockConn, candidates []entity.SymbolLocationInformation) *gomock.Call {
	return conn.EXPECT().XDefinition(gomock.Any(), gomock.Any()).Return(candidates, nil)
}

func symbolCandidate(name string) []entity.SymbolLocationInformation {
	return []entity.SymbolLocationInformation{
		{Symbol: entity.SymbolDescriptor{"name": name, "package": "example.com/a/b/pkg"}},
	}
}

func location(repo entity.RepoName, line uint32) protocol.Location {
	return protocol.Location{
		URI:   protocol.DocumentURI("repo://" + string(repo) + "@" + _testCommitID + "#pkg/a.go"),
		Range: protocol.Range{Start: protocol.Position{Line: line}},
	}
}

func references(repo entity.RepoName, lines ...uint32) []entity.ReferenceInformation {
	refs := make([]entity.ReferenceInformation, 0, len(lines))
	for _, l := range lines {
		refs = append(refs, entity.ReferenceInformation{Reference: location(repo, l)})
	}
	return refs
}

func TestFindReferencesDependentIsolation(t *testing.T) {
	c, env := newTestEnv(t)

	expectXDefinition(env.ownConn, symbolCandidate("Foo"))
	env.codeHost.EXPECT().Dependents(gomock.Any(), gomock.Any()).Return([]entity.Dependent{
		{Workspace: "example.com/dep/a"},
		{Workspace: "example.com/dep/b"},
	}, nil)

	// Dependent A is unreachable; dependent B returns two locations.
	env.dialer.EXPECT().Dial(gomock.Any(), dialFor("example.com/dep/a")).
		Return(nil, fmt.Errorf("dial tcp: i/o timeout"))
	connB := newReadyConn(env)
	connB.EXPECT().XReferences(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(references("example.com/dep/b", 10, 20), nil)
	env.dialer.EXPECT().Dial(gomock.Any(), dialFor("example.com/dep/b")).Return(connB, nil)

	locs, err := c.FindReferences(context.Background(), _testDocURI, protocol.Position{Line: 5}, nil)
	require.NoError(t, err)
	assert.Len(t, locs, 2)
}

func TestFindReferencesCachesDependentLookups(t *testing.T) {
	c, env := newTestEnv(t)

	expectXDefinition(env.ownConn, symbolCandidate("Foo")).Times(2)
	env.codeHost.EXPECT().Dependents(gomock.Any(), gomock.Any()).Return([]entity.Dependent{
		{Workspace: _testRepo},
	}, nil).Times(1)
	env.ownConn.EXPECT().XReferences(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(references(_testRepo, 1), nil).Times(2)

	// The second identical query reuses the completed dependents result.
	for i := 0; i < 2; i++ {
		locs, err := c.FindReferences(context.Background(), _testDocURI, protocol.Position{Line: 5}, nil)
		require.NoError(t, err)
		assert.Len(t, locs, 1)
	}
}

func TestFindReferencesTruncatesDependents(t *testing.T) {
	c, env := newTestEnv(t)

	expectXDefinition(env.ownConn, symbolCandidate("Foo"))

	// 15 dependents reported, all resolving to the current repository's own
	// session; only the first 10 may be queried.
	deps := make([]entity.Dependent, 15)
	for i := range deps {
		deps[i] = entity.Dependent{Workspace: _testRepo, Hints: map[string]interface{}{"i": i}}
	}
	env.codeHost.EXPECT().Dependents(gomock.Any(), gomock.Any()).Return(deps, nil)

	env.ownConn.EXPECT().XReferences(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(references(_testRepo, 1), nil).Times(10)

	locs, err := c.FindReferences(context.Background(), _testDocURI, protocol.Position{Line: 5}, nil)
	require.NoError(t, err)
	assert.Len(t, locs, 10)
}

func TestFindReferencesReusesOwnSession(t *testing.T) {
	c, env := newTestEnv(t)

	expectXDefinition(env.ownConn, symbolCandidate("Foo"))
	env.codeHost.EXPECT().Dependents(gomock.Any(), gomock.Any()).Return([]entity.Dependent{
		{Workspace: _testRepo},
	}, nil)

	// No second dial happens for the current repository.
	env.ownConn.EXPECT().XReferences(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, params *langserver.XReferencesParams, onPartial func([]entity.ReferenceInformation)) ([]entity.ReferenceInformation, error) {
			assert.Equal(t, _remoteReferencesLimit, params.Limit)
			return references(_testRepo, 3), nil
		})

	locs, err := c.FindReferences(context.Background(), _testDocURI, protocol.Position{Line: 5}, nil)
	require.NoError(t, err)
	assert.Len(t, locs, 1)
}

func TestFindReferencesStreamsPartials(t *testing.T) {
	c, env := newTestEnv(t)

	expectXDefinition(env.ownConn, symbolCandidate("Foo"))
	env.codeHost.EXPECT().Dependents(gomock.Any(), gomock.Any()).Return([]entity.Dependent{
		{Workspace: _testRepo},
	}, nil)

	batch := references(_testRepo, 7)
	env.ownConn.EXPECT().XReferences(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, params *langserver.XReferencesParams, onPartial func([]entity.ReferenceInformation)) ([]entity.ReferenceInformation, error) {
			onPartial(batch)
			return batch, nil
		})

	var mu sync.Mutex
	var streamed []protocol.Location
	locs, err := c.FindReferences(context.Background(), _testDocURI, protocol.Position{Line: 5},
		func(batch []protocol.Location) {
			mu.Lock()
			streamed = append(streamed, batch...)
			mu.Unlock()
		})
	require.NoError(t, err)
	assert.Len(t, locs, 1)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, streamed, 1)
}

func TestFindReferencesCancelStopsForwarding(t *testing.T) {
	c, env := newTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expectXDefinition(env.ownConn, symbolCandidate("Foo"))
	env.codeHost.EXPECT().Dependents(gomock.Any(), gomock.Any()).Return([]entity.Dependent{
		{Workspace: _testRepo},
	}, nil)

	var mu sync.Mutex
	var forwarded int
	env.ownConn.EXPECT().XReferences(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(callCtx context.Context, params *langserver.XReferencesParams, onPartial func([]entity.ReferenceInformation)) ([]entity.ReferenceInformation, error) {
			onPartial(references(_testRepo, 1))
			cancel()
			// The remote call itself is not aborted by the caller's
			// cancellation, but nothing it streams from here on is forwarded.
			assert.NoError(t, callCtx.Err())
			onPartial(references(_testRepo, 2))
			return references(_testRepo, 1, 2), nil
		})

	_, err := c.FindReferences(ctx, _testDocURI, protocol.Position{Line: 5},
		func(batch []protocol.Location) {
			mu.Lock()
			forwarded += len(batch)
			mu.Unlock()
		})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, forwarded)
}

func TestFindReferencesNoCandidates(t *testing.T) {
	c, env := newTestEnv(t)

	expectXDefinition(env.ownConn, nil)

	locs, err := c.FindReferences(context.Background(), _testDocURI, protocol.Position{Line: 5}, nil)
	require.NoError(t, err)
	assert.Empty(t, locs)
}

func TestFindReferencesDependentLookupFailure(t *testing.T) {
	c, env := newTestEnv(t)

	expectXDefinition(env.ownConn, symbolCandidate("Foo"))
	env.codeHost.EXPECT().Dependents(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("index unavailable"))

	locs, err := c.FindReferences(context.Background(), _testDocURI, protocol.Position{Line: 5}, nil)
	require.NoError(t, err)
	assert.Empty(t, locs)
}

func TestFindDefinitionDirect(t *testing.T) {
	c, env := newTestEnv(t)

	loc := location(_testRepo, 42)
	expectXDefinition(env.ownConn, []entity.SymbolLocationInformation{
		{Symbol: entity.SymbolDescriptor{"name": "Foo"}, Location: &loc},
	})

	locs, err := c.FindDefinition(context.Background(), _testDocURI, protocol.Position{Line: 5})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, loc, locs[0])
}

func TestFindDefinitionFuzzyFallback(t *testing.T) {
	c, env := newTestEnv(t)

	expectXDefinition(env.ownConn, symbolCandidate("Foo"))
	fooLoc := location(_testRepo, 42)
	env.ownConn.EXPECT().WorkspaceSymbol(gomock.Any(), "Foo").Return([]protocol.SymbolInformation{
		{Name: "Foo", Location: fooLoc},
		{Name: "FooBar", Location: location(_testRepo, 50)},
	}, nil)

	// Exact name matches only; fuzzy hits like FooBar are filtered out.
	locs, err := c.FindDefinition(context.Background(), _testDocURI, protocol.Position{Line: 5})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, fooLoc, locs[0])
}

func TestFindReferencesWaitsForAllDependents(t *testing.T) {
	c, env := newTestEnv(t)

	expectXDefinition(env.ownConn, symbolCandidate("Foo"))
	env.codeHost.EXPECT().Dependents(gomock.Any(), gomock.Any()).Return([]entity.Dependent{
		{Workspace: _testRepo},
		{Workspace: _testRepo},
	}, nil)

	// One fast and one slow dependent; both contribute to the final result.
	env.ownConn.EXPECT().XReferences(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(references(_testRepo, 1), nil)
	env.ownConn.EXPECT().XReferences(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, params *langserver.XReferencesParams, onPartial func([]entity.ReferenceInformation)) ([]entity.ReferenceInformation, error) {
			time.Sleep(20 * time.Millisecond)
			return references(_testRepo, 2), nil
		})

	locs, err := c.FindReferences(context.Background(), _testDocURI, protocol.Position{Line: 5}, nil)
	require.NoError(t, err)
	assert.Len(t, locs, 2)
}
