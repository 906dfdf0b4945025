// Package inflight hands out one token per running operation so a duplicate
// submit is refused while the first is still waiting on the API.
package inflight

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// ErrInFlight is returned by Acquire when the key is already held.
var ErrInFlight = errors.New("operation already in flight")

// Registry guards operations keyed by name, e.g. "create:<session>".
type Registry interface {
	// Acquire returns a token for key, or ErrInFlight when another holder
	// has not released it yet.
	Acquire(ctx context.Context, key string) (string, error)
	// Release frees key if token still owns it. Releasing a stale token is a
	// no-op.
	Release(ctx context.Context, key, token string) error
}

// CreateKey and FacilitiesKey name the two guarded operations.
func CreateKey(sessionID string) string    { return "create:" + sessionID }
func FacilitiesKey(branchID string) string { return "facilities:" + branchID }

// MemoryRegistry keeps tokens in process. ttl bounds a token whose holder
// never released it.
type MemoryRegistry struct {
	mu    sync.Mutex
	cache *gocache.Cache
	ttl   time.Duration
}

func NewMemoryRegistry(ttl time.Duration) *MemoryRegistry {
	return &MemoryRegistry{
		// expired tokens are purged by the sweeper via DeleteExpired
		cache: gocache.New(ttl, 0),
		ttl:   ttl,
	}
}

func (r *MemoryRegistry) Acquire(ctx context.Context, key string) (string, error) {
	token := uuid.NewString()
	if err := r.cache.Add(key, token, r.ttl); err != nil {
		return "", ErrInFlight
	}
	return token, nil
}

func (r *MemoryRegistry) Release(ctx context.Context, key, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.cache.Get(key); ok && current == token {
		r.cache.Delete(key)
	}
	return nil
}

// DeleteExpired drops tokens past their ttl.
func (r *MemoryRegistry) DeleteExpired() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.DeleteExpired()
}

// Count is the number of stored tokens. Expired tokens count until
// DeleteExpired removes them.
func (r *MemoryRegistry) Count() int {
	return r.cache.ItemCount()
}
