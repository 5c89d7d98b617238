package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/cache"
	"github.com/yigit/alumnihub/internal/pkg/store"
	"github.com/yigit/alumnihub/internal/testutil"
)

var errInjected = errors.New("injected store failure")

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// stepClock advances one second on every reading
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// faultyStore fails selected (method, collection) pairs and counts calls
type faultyStore struct {
	store.Client
	mu    sync.Mutex
	calls int
	fail  map[string]error
}

func (f *faultyStore) check(method, collection string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.fail[method+":"+collection]
}

func (f *faultyStore) failOn(method, collection string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[method+":"+collection] = errInjected
}

func (f *faultyStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *faultyStore) Select(ctx context.Context, q store.Query) ([]store.Record, error) {
	if err := f.check("Select", q.Collection); err != nil {
		return nil, err
	}
	return f.Client.Select(ctx, q)
}

func (f *faultyStore) Count(ctx context.Context, collection string, filters ...store.Filter) (int64, error) {
	if err := f.check("Count", collection); err != nil {
		return 0, err
	}
	return f.Client.Count(ctx, collection, filters...)
}

func (f *faultyStore) GroupCount(ctx context.Context, collection, groupColumn string, filters ...store.Filter) (map[string]int64, error) {
	if err := f.check("GroupCount", collection); err != nil {
		return nil, err
	}
	return f.Client.GroupCount(ctx, collection, groupColumn, filters...)
}

func (f *faultyStore) Insert(ctx context.Context, collection string, rec store.Record) (store.Record, error) {
	if err := f.check("Insert", collection); err != nil {
		return nil, err
	}
	return f.Client.Insert(ctx, collection, rec)
}

func (f *faultyStore) Update(ctx context.Context, collection string, patch store.Record, filters ...store.Filter) (int64, error) {
	if err := f.check("Update", collection); err != nil {
		return 0, err
	}
	return f.Client.Update(ctx, collection, patch, filters...)
}

func (f *faultyStore) Increment(ctx context.Context, collection, column string, delta int64, filters ...store.Filter) (int64, error) {
	if err := f.check("Increment", collection); err != nil {
		return 0, err
	}
	return f.Client.Increment(ctx, collection, column, delta, filters...)
}

func (f *faultyStore) Delete(ctx context.Context, collection string, filters ...store.Filter) (int64, error) {
	if err := f.check("Delete", collection); err != nil {
		return 0, err
	}
	return f.Client.Delete(ctx, collection, filters...)
}

// memoryCache is an in-process cache.Cache
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

type fixture struct {
	base  store.Client
	store *faultyStore
	clock *stepClock
	*Services
}

func newFixture(t *testing.T, c cache.Cache, opts Options) *fixture {
	t.Helper()
	base := testutil.NewStore(t)
	fs := &faultyStore{Client: base, fail: map[string]error{}}
	clock := &stepClock{t: baseTime}
	opts.Clock = clock.Now
	return &fixture{
		base:     base,
		store:    fs,
		clock:    clock,
		Services: NewServices(repositories.NewRepositories(fs), c, opts, zerolog.Nop()),
	}
}

func strPtr(s string) *string { return &s }
