package middleware

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/revolutionchain/ethfmt/pkg/formatting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func countingBuilder(calls *int, mu *sync.Mutex) FormattersBuilder {
	return func(ctx context.Context, client eth.Transport, method string) (*formatting.FormatterSet, error) {
		mu.Lock()
		defer mu.Unlock()
		*calls++
		set := formatting.NewFormatterSet()
		set.Result[method] = formatting.Identity
		return set, nil
	}
}

func TestMemoize(t *testing.T) {
	var (
		calls int
		mu    sync.Mutex
	)
	clock := &fakeClock{now: time.Unix(1600000000, 0)}
	build, err := Memoize(countingBuilder(&calls, &mu), time.Hour, WithClock(clock.Now))
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := build(ctx, nil, "eth_call")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)

	_, err = build(ctx, nil, "eth_sendTransaction")
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "methods are cached separately")

	clock.Advance(time.Hour)
	_, err = build(ctx, nil, "eth_call")
	require.NoError(t, err)
	assert.Equal(t, 3, calls, "expired entries are rebuilt")
}

func TestMemoizeDoesNotCacheErrors(t *testing.T) {
	calls := 0
	build, err := Memoize(func(ctx context.Context, client eth.Transport, method string) (*formatting.FormatterSet, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("temporary")
		}
		return formatting.NewFormatterSet(), nil
	}, time.Minute)
	require.NoError(t, err)

	_, err = build(context.Background(), nil, "eth_call")
	require.Error(t, err)
	_, err = build(context.Background(), nil, "eth_call")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestMemoizeFlushesOnContextDone(t *testing.T) {
	var (
		calls int
		mu    sync.Mutex
	)
	ctx, cancel := context.WithCancel(context.Background())
	build, err := Memoize(countingBuilder(&calls, &mu), time.Hour, WithContext(ctx))
	require.NoError(t, err)

	_, err = build(context.Background(), nil, "eth_call")
	require.NoError(t, err)
	cancel()

	require.Eventually(t, func() bool {
		if _, err := build(context.Background(), nil, "eth_call"); err != nil {
			return false
		}
		mu.Lock()
		defer mu.Unlock()
		return calls >= 2
	}, time.Second, 10*time.Millisecond)
}
