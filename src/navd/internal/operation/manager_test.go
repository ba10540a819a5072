package operation

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestManager(opts ...Option) *Manager[string] {
	testScope := tally.NewTestScope("testing", make(map[string]string))
	return New[string](testScope, opts...)
}

func TestPerformCachesSuccess(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	var calls int32
	op := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "result", nil
	}

	v, err := m.Perform(ctx, "key", op)
	require.NoError(t, err)
	assert.Equal(t, "result", v)

	v, err = m.Perform(ctx, "key", op)
	require.NoError(t, err)
	assert.Equal(t, "result", v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPerformSingleFlight(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	const callers = 10
	var calls int32
	release := make(chan struct{})
	op := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = m.Perform(ctx, "slow", op)
		}(i)
	}

	// Let every caller reach the flight before releasing the operation.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "op must run exactly once")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i])
	}
}

func TestPerformDoesNotCacheFailures(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	var calls int32
	op := func(ctx context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "", fmt.Errorf("transient failure")
		}
		return "recovered", nil
	}

	_, err := m.Perform(ctx, "key", op)
	require.Error(t, err)
	assert.False(t, m.IsCachedOrInFlight("key"))

	v, err := m.Perform(ctx, "key", op)
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestPerformCancelledContext(t *testing.T) {
	m := newTestManager()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := m.Perform(ctx, "key", func(ctx context.Context) (string, error) {
		t.Fatal("op must not be invoked for a cancelled context")
		return "", nil
	})
	require.NoError(t, err)
	assert.Empty(t, v)
	assert.False(t, m.IsCachedOrInFlight("key"))
}

func TestIsCachedOrInFlight(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	assert.False(t, m.IsCachedOrInFlight("key"))

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Perform(ctx, "key", func(ctx context.Context) (string, error) {
			close(started)
			<-release
			return "v", nil
		})
	}()

	<-started
	assert.True(t, m.IsCachedOrInFlight("key"), "in-flight operation must be visible")
	close(release)
	<-done
	assert.True(t, m.IsCachedOrInFlight("key"), "completed result must be cached")
}

func TestEvictionIsLeastRecentlyUsed(t *testing.T) {
	m := newTestManager(WithCapacity(2))
	ctx := context.Background()

	mk := func(v string) func(ctx context.Context) (string, error) {
		return func(ctx context.Context) (string, error) { return v, nil }
	}

	_, err := m.Perform(ctx, "a", mk("a"))
	require.NoError(t, err)
	_, err = m.Perform(ctx, "b", mk("b"))
	require.NoError(t, err)

	// Touch "a" so that "b" becomes the eviction candidate.
	_, err = m.Perform(ctx, "a", mk("unused"))
	require.NoError(t, err)

	_, err = m.Perform(ctx, "c", mk("c"))
	require.NoError(t, err)

	assert.True(t, m.IsCachedOrInFlight("a"))
	assert.False(t, m.IsCachedOrInFlight("b"))
	assert.True(t, m.IsCachedOrInFlight("c"))
	assert.Equal(t, 2, m.Len())
}
