package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/revolutionchain/ethfmt/pkg/formatting"
)

const DefaultMemoizeTTL = 15 * time.Second

type MemoizeOption func(*builderCache) error

// stores the built formatter set per method until the ttl flushes it
type builderCache struct {
	mu      sync.RWMutex
	ctx     context.Context
	ttl     time.Duration
	now     func() time.Time
	logger  log.Logger
	debug   bool
	builder FormattersBuilder
	methods map[string]cachedSet
}

type cachedSet struct {
	set     *formatting.FormatterSet
	expires time.Time
}

// Memoize caches the sets returned by builder per method for ttl. Failed
// builds are not cached, so one failing call does not poison later ones. A
// non-positive ttl selects DefaultMemoizeTTL.
func Memoize(builder FormattersBuilder, ttl time.Duration, opts ...MemoizeOption) (FormattersBuilder, error) {
	if builder == nil {
		return nil, errors.New("nothing to memoize")
	}
	if ttl <= 0 {
		ttl = DefaultMemoizeTTL
	}
	cache := &builderCache{
		ttl:     ttl,
		now:     time.Now,
		logger:  log.NewNopLogger(),
		builder: builder,
		methods: make(map[string]cachedSet),
	}
	for _, opt := range opts {
		if err := opt(cache); err != nil {
			return nil, err
		}
	}
	return cache.build, nil
}

func (cache *builderCache) build(ctx context.Context, client eth.Transport, method string) (*formatting.FormatterSet, error) {
	if set, ok := cache.getSet(method); ok {
		return set, nil
	}

	set, err := cache.builder(ctx, client, method)
	if err != nil {
		return nil, err
	}
	cache.storeSet(method, set)
	return set, nil
}

// returns the cached set for 'method' if it has not expired yet
func (cache *builderCache) getSet(method string) (*formatting.FormatterSet, bool) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	entry, ok := cache.methods[method]
	if !ok || !cache.now().Before(entry.expires) {
		return nil, false
	}
	return entry.set, true
}

func (cache *builderCache) storeSet(method string, set *formatting.FormatterSet) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if entry, ok := cache.methods[method]; ok && cache.now().Before(entry.expires) {
		return
	}
	cache.methods[method] = cachedSet{set: set, expires: cache.now().Add(cache.ttl)}
	cache.setFlushTimer(method)
}

// set a timer to flush the cached set for 'method'
func (cache *builderCache) setFlushTimer(method string) {
	var done <-chan struct{}
	if cache.ctx != nil {
		done = cache.ctx.Done()
	}
	go func() {
		canceled := false
		select {
		case <-time.After(cache.ttl):
			cache.getDebugLogger().Log("msg", "flushing cache", "reason", "cache timeout", "method", method)
		case <-done:
			canceled = true
			cache.getDebugLogger().Log("msg", "flushing cache", "reason", "context canceled", "method", method)
		}
		cache.mu.Lock()
		defer cache.mu.Unlock()
		entry, ok := cache.methods[method]
		if ok && (canceled || !cache.now().Before(entry.expires)) {
			delete(cache.methods, method)
		}
	}()
}

func (cache *builderCache) getDebugLogger() log.Logger {
	if !cache.debug {
		return log.NewNopLogger()
	}
	return level.Debug(cache.logger)
}

// WithContext flushes the cache when ctx is done.
func WithContext(ctx context.Context) MemoizeOption {
	return func(cache *builderCache) error {
		cache.ctx = ctx
		return nil
	}
}

func WithClock(now func() time.Time) MemoizeOption {
	return func(cache *builderCache) error {
		cache.now = now
		return nil
	}
}

func WithLogger(l log.Logger, debug bool) MemoizeOption {
	return func(cache *builderCache) error {
		cache.logger = log.With(l, "component", "builderCache")
		cache.debug = debug
		return nil
	}
}
