package screen_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/dogs/internal/domain/result"
	domainscreen "github.com/alanyang/dogs/internal/domain/screen"
	"github.com/alanyang/dogs/internal/service/screen"
)

// scriptedFetcher returns queued results in order. A call whose gate is non-nil
// blocks until the gate is closed or the context ends.
type scriptedFetcher struct {
	mu      sync.Mutex
	results []result.Result[[]string]
	gates   []chan struct{}
	calls   int
}

func (f *scriptedFetcher) push(r result.Result[[]string], gate chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, r)
	f.gates = append(f.gates, gate)
}

func (f *scriptedFetcher) fetch(ctx context.Context) result.Result[[]string] {
	f.mu.Lock()
	i := f.calls
	f.calls++
	r, gate := f.results[i], f.gates[i]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return result.Failure[[]string]("Exception: " + ctx.Err().Error())
		}
	}
	return r
}

func (f *scriptedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func identity(s domainscreen.State[string]) domainscreen.State[string] { return s }

func newController(t *testing.T, f *scriptedFetcher) *screen.Controller[string, domainscreen.State[string]] {
	t.Helper()
	c := screen.NewController(context.Background(), "test", f.fetch, identity)
	t.Cleanup(c.Close)
	return c
}

func waitLoaded(t *testing.T, c *screen.Controller[string, domainscreen.State[string]], refreshing bool) domainscreen.State[string] {
	t.Helper()
	require.Eventually(t, func() bool {
		v := c.View()
		return v.Loaded() && v.IsRefreshing == refreshing
	}, time.Second, time.Millisecond)
	return c.View()
}

func TestController_StartsLoading(t *testing.T) {
	f := &scriptedFetcher{}
	gate := make(chan struct{})
	f.push(result.Success([]string{"a"}), gate)

	c := newController(t, f)

	assert.Equal(t, domainscreen.Initial[string](), c.View())
	close(gate)
	assert.Equal(t, []string{"a"}, waitLoaded(t, c, false).Items)
}

func TestController_RefreshReplacesItems(t *testing.T) {
	f := &scriptedFetcher{}
	f.push(result.Success([]string{"a"}), nil)
	gate := make(chan struct{})
	f.push(result.Success([]string{"b", "c"}), gate)
	c := newController(t, f)
	waitLoaded(t, c, false)

	require.NoError(t, c.Refresh())

	during := c.View()
	assert.True(t, during.IsRefreshing)
	assert.Equal(t, []string{"a"}, during.Items, "items are kept while refreshing")

	close(gate)
	after := waitLoaded(t, c, false)
	assert.Equal(t, []string{"b", "c"}, after.Items)
	assert.Nil(t, after.Error)
}

func TestController_RefreshFailureKeepsItems(t *testing.T) {
	f := &scriptedFetcher{}
	f.push(result.Success([]string{"a"}), nil)
	f.push(result.Failure[[]string]("404"), nil)
	c := newController(t, f)
	waitLoaded(t, c, false)

	require.NoError(t, c.Refresh())

	after := waitLoaded(t, c, false)
	assert.Equal(t, []string{"a"}, after.Items)
	assert.Equal(t, domainscreen.NetworkError("404"), after.Error)
}

func TestController_RefreshWhileLoadingIsDropped(t *testing.T) {
	f := &scriptedFetcher{}
	gate := make(chan struct{})
	f.push(result.Success([]string{"a"}), gate)
	c := newController(t, f)

	err := c.Refresh()

	assert.True(t, errors.Is(err, screen.ErrRefreshInFlight))
	close(gate)
	waitLoaded(t, c, false)
	assert.Equal(t, 1, f.callCount())
}

func TestController_DuplicateRefreshIsCoalesced(t *testing.T) {
	f := &scriptedFetcher{}
	f.push(result.Success([]string{"a"}), nil)
	gate := make(chan struct{})
	f.push(result.Success([]string{"b"}), gate)
	c := newController(t, f)
	waitLoaded(t, c, false)

	require.NoError(t, c.Refresh())
	err := c.Refresh()
	assert.True(t, errors.Is(err, screen.ErrRefreshInFlight))

	close(gate)
	assert.Equal(t, []string{"b"}, waitLoaded(t, c, false).Items)
	assert.Equal(t, 2, f.callCount())

	// Once the fetch completed a new refresh is accepted again.
	f.push(result.Empty[[]string](), nil)
	require.NoError(t, c.Refresh())
	after := waitLoaded(t, c, false)
	assert.Equal(t, []string{"b"}, after.Items)
	assert.Equal(t, domainscreen.EmptyResponse(), after.Error)
}

func TestController_SubscribersSeeRefreshCycle(t *testing.T) {
	f := &scriptedFetcher{}
	f.push(result.Success([]string{"a"}), nil)
	gate := make(chan struct{})
	f.push(result.Success([]string{"b"}), gate)
	c := newController(t, f)
	waitLoaded(t, c, false)

	sub := c.Subscribe()
	defer sub.Close()
	first := <-sub.C()
	assert.False(t, first.IsRefreshing)

	require.NoError(t, c.Refresh())
	refreshing := <-sub.C()
	assert.True(t, refreshing.IsRefreshing)

	close(gate)
	select {
	case done := <-sub.C():
		assert.False(t, done.IsRefreshing)
		assert.Equal(t, []string{"b"}, done.Items)
	case <-time.After(time.Second):
		t.Fatal("no view after refresh completed")
	}
}

func TestController_CloseCancelsFetchAndStopsPublishing(t *testing.T) {
	f := &scriptedFetcher{}
	gate := make(chan struct{})
	f.push(result.Success([]string{"a"}), gate)
	c := screen.NewController(context.Background(), "test", f.fetch, identity)
	sub := c.Subscribe()
	<-sub.C()

	c.Close()

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after Close")
	}
	_, ok := <-sub.C()
	assert.False(t, ok, "subscriptions complete on Close")
	assert.False(t, c.View().Loaded(), "no state is published after Close")
	assert.True(t, errors.Is(c.Refresh(), screen.ErrClosed))
	close(gate)
}

func TestController_ParentContextCancelsFetch(t *testing.T) {
	f := &scriptedFetcher{}
	f.push(result.Success([]string{"a"}), make(chan struct{}))
	ctx, cancel := context.WithCancel(context.Background())
	c := screen.NewController(ctx, "test", f.fetch, identity)
	defer c.Close()

	cancel()

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after parent cancellation")
	}
	assert.False(t, c.View().Loaded())
	assert.ErrorIs(t, c.Refresh(), screen.ErrClosed)
}

func TestController_RefreshAfterParentCancelledWhileLoaded(t *testing.T) {
	f := &scriptedFetcher{}
	f.push(result.Success([]string{"a"}), nil)
	ctx, cancel := context.WithCancel(context.Background())
	c := screen.NewController(ctx, "test", f.fetch, identity)
	defer c.Close()
	waitLoaded(t, c, false)

	cancel()
	<-c.Done()

	assert.ErrorIs(t, c.Refresh(), screen.ErrClosed)
	assert.False(t, c.View().IsRefreshing)
	assert.Equal(t, 1, f.callCount())
}

func TestToErrorView(t *testing.T) {
	assert.Nil(t, screen.ToErrorView(nil))
	assert.Equal(t, &screen.ErrorView{Kind: domainscreen.ErrorEmptyResponse}, screen.ToErrorView(domainscreen.EmptyResponse()))
	assert.Equal(t, &screen.ErrorView{Kind: domainscreen.ErrorNetwork, Code: "404"}, screen.ToErrorView(domainscreen.NetworkError("404")))
}
