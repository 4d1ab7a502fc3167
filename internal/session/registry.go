package session

import (
	"context"
	"sync"
	"time"

	"talent-onboarding-backend/internal/domain"
	"talent-onboarding-backend/pkg/logger"
	"talent-onboarding-backend/pkg/metrics"
)

// Registry hands out one Store per session id. Stores are hydrated in the
// background on first open and dropped after sitting idle.
type Registry struct {
	repo    domain.DraftRepository
	idleTTL time.Duration

	mu     sync.Mutex
	stores map[string]*Store

	stopOnce sync.Once
	stop     chan struct{}
}

// NewRegistry creates a registry and starts its idle cleanup loop. An
// idleTTL of zero disables eviction.
func NewRegistry(repo domain.DraftRepository, idleTTL time.Duration) *Registry {
	r := &Registry{
		repo:    repo,
		idleTTL: idleTTL,
		stores:  make(map[string]*Store),
		stop:    make(chan struct{}),
	}
	if idleTTL > 0 {
		go r.cleanupLoop()
	}
	return r
}

// Open returns the store for sessionID, creating and hydrating it if needed.
func (r *Registry) Open(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[sessionID]; ok {
		// A store whose read failed never persisted anything; try the load again.
		if !s.LoadFailed() {
			s.touch()
			return s
		}
		logger.Log.Info("Reopening draft store after failed load", "key", s.Key())
	}

	s := NewStore(domain.DraftKey(sessionID), r.repo)
	r.stores[sessionID] = s
	metrics.OpenStores.Set(float64(len(r.stores)))

	go s.Hydrate(context.Background())
	return s
}

// Len returns the number of stores held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// cleanupLoop runs a background ticker that evicts idle stores
func (r *Registry) cleanupLoop() {
	interval := r.idleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			r.evictIdle(now)
		case <-r.stop:
			return
		}
	}
}

func (r *Registry) evictIdle(now time.Time) int {
	var idle []*Store

	cutoff := now.Add(-r.idleTTL)

	r.mu.Lock()
	for id, s := range r.stores {
		if s.evictable(cutoff) {
			idle = append(idle, s)
			delete(r.stores, id)
		}
	}
	metrics.OpenStores.Set(float64(len(r.stores)))
	r.mu.Unlock()

	for _, s := range idle {
		s.Flush()
	}
	if len(idle) > 0 {
		logger.Log.Debug("Evicted idle session stores", "count", len(idle))
	}
	return len(idle)
}

// Close stops eviction and waits for every store's pending writes.
func (r *Registry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })

	r.mu.Lock()
	stores := make([]*Store, 0, len(r.stores))
	for _, s := range r.stores {
		stores = append(stores, s)
	}
	r.mu.Unlock()

	for _, s := range stores {
		s.Flush()
	}
}
