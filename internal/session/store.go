package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"talent-onboarding-backend/internal/domain"
	"talent-onboarding-backend/pkg/logger"
	"talent-onboarding-backend/pkg/metrics"
)

const (
	defaultWriteTimeout = 3 * time.Second
	defaultLoadTimeout  = 5 * time.Second
)

// op is a mutation recorded before hydration and replayed on the loaded record.
type op func(domain.UserDraft) domain.UserDraft

// Store holds one session's UserDraft. Mutations apply synchronously; the
// durable write that follows each one is fire-and-forget.
type Store struct {
	key  string
	repo domain.DraftRepository

	mu      sync.RWMutex
	draft   domain.UserDraft
	version uint64
	pending []op

	hydrated    atomic.Bool
	hydratedCh  chan struct{}
	hydrateOnce sync.Once
	openedAt    time.Time

	// loadFailed is set when the durable read errored. Such a store serves
	// defaults in memory but never writes over the record it could not read.
	loadFailed atomic.Bool

	// writeMu serialises durable writes; attempted is the newest version
	// handed to the repository.
	writeMu   sync.Mutex
	attempted uint64

	// inflight counts scheduled writes that have not finished.
	inflightMu   sync.Mutex
	inflightDone *sync.Cond
	inflight     int

	lastAccess atomic.Int64
}

// NewStore creates an unhydrated store for key. Call Hydrate to load it.
func NewStore(key string, repo domain.DraftRepository) *Store {
	s := &Store{
		key:        key,
		repo:       repo,
		draft:      domain.DefaultUserDraft(),
		hydratedCh: make(chan struct{}),
		openedAt:   time.Now(),
	}
	s.inflightDone = sync.NewCond(&s.inflightMu)
	s.touch()
	return s
}

// Key returns the durable storage key.
func (s *Store) Key() string { return s.key }

func (s *Store) touch() { s.lastAccess.Store(time.Now().UnixNano()) }

func (s *Store) idleSince() time.Time { return time.Unix(0, s.lastAccess.Load()) }

// Get returns a snapshot of the current record.
func (s *Store) Get() domain.UserDraft {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft.Clone()
}

// MergePatch shallow-merges p into the record and returns the new snapshot.
func (s *Store) MergePatch(p domain.DraftPatch) domain.UserDraft {
	return s.mutate(func(d domain.UserDraft) domain.UserDraft {
		return d.Apply(p)
	})
}

// Reset restores the default record.
func (s *Store) Reset() domain.UserDraft {
	return s.mutate(func(domain.UserDraft) domain.UserDraft {
		return domain.DefaultUserDraft()
	})
}

func (s *Store) mutate(fn op) domain.UserDraft {
	s.touch()
	s.mu.Lock()
	s.draft = fn(s.draft)
	s.draft.UpdatedAt = time.Now().UTC()
	s.version++
	snapshot, version := s.draft.Clone(), s.version
	hydrated := s.hydrated.Load()
	if !hydrated {
		s.pending = append(s.pending, fn)
	}
	s.mu.Unlock()

	// Before hydration the durable record is unknown; Hydrate writes the
	// replayed result instead.
	if hydrated {
		s.persist(snapshot, version)
	}
	return snapshot
}

// HasHydrated reports whether the durable read has completed.
func (s *Store) HasHydrated() bool {
	return s.hydrated.Load()
}

// AwaitHydration waits for hydration, the grace delay, or ctx, whichever
// comes first, and reports whether the store is hydrated.
func (s *Store) AwaitHydration(ctx context.Context, grace time.Duration) bool {
	if s.hydrated.Load() {
		return true
	}
	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-s.hydratedCh:
	case <-timer.C:
	case <-ctx.Done():
	}
	return s.hydrated.Load()
}

// Hydrate reads the durable record once. The loaded record replaces the
// defaults and any mutations made meanwhile are replayed on top. A missing
// record or a read error leaves the defaults in place; either way the store
// is marked hydrated.
func (s *Store) Hydrate(ctx context.Context) {
	s.hydrateOnce.Do(func() {
		loadCtx, cancel := context.WithTimeout(ctx, defaultLoadTimeout)
		loaded, err := s.repo.Load(loadCtx, s.key)
		cancel()

		if err != nil && !errors.Is(err, domain.ErrDraftNotFound) {
			logger.Log.Warn("Draft hydration failed, serving defaults without persisting", "key", s.key, "error", err)
			s.loadFailed.Store(true)
		}

		s.mu.Lock()
		if loaded != nil {
			s.draft = loaded.Clone()
		} else {
			s.draft = domain.DefaultUserDraft()
		}
		replayed := len(s.pending) > 0
		for _, fn := range s.pending {
			s.draft = fn(s.draft)
		}
		s.pending = nil
		if replayed {
			s.draft.UpdatedAt = time.Now().UTC()
			s.version++
		}
		snapshot, version := s.draft.Clone(), s.version
		s.hydrated.Store(true)
		s.mu.Unlock()

		close(s.hydratedCh)
		metrics.HydrationSeconds.Observe(time.Since(s.openedAt).Seconds())

		if replayed {
			s.persist(snapshot, version)
		}
	})
}

// persist writes the snapshot in the background. Failures are logged and
// dropped; a snapshot older than one already attempted is skipped.
func (s *Store) persist(snapshot domain.UserDraft, version uint64) {
	if s.loadFailed.Load() {
		metrics.DraftWrites.WithLabelValues("skipped").Inc()
		return
	}

	s.inflightMu.Lock()
	s.inflight++
	s.inflightMu.Unlock()

	go func() {
		defer s.writeDone()

		s.writeMu.Lock()
		defer s.writeMu.Unlock()

		if version <= s.attempted {
			metrics.DraftWrites.WithLabelValues("stale").Inc()
			return
		}
		s.attempted = version

		ctx, cancel := context.WithTimeout(context.Background(), defaultWriteTimeout)
		defer cancel()

		if err := s.repo.Save(ctx, s.key, snapshot); err != nil {
			logger.Log.Warn("Draft write dropped", "key", s.key, "version", version, "error", err)
			metrics.DraftWrites.WithLabelValues("error").Inc()
			return
		}
		metrics.DraftWrites.WithLabelValues("ok").Inc()
	}()
}

func (s *Store) writeDone() {
	s.inflightMu.Lock()
	s.inflight--
	if s.inflight == 0 {
		s.inflightDone.Broadcast()
	}
	s.inflightMu.Unlock()
}

func (s *Store) pendingWrites() int {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	return s.inflight
}

// LoadFailed reports whether hydration hit a read error.
func (s *Store) LoadFailed() bool {
	return s.loadFailed.Load()
}

// Flush waits for in-flight writes to finish. It may run concurrently with
// new mutations.
func (s *Store) Flush() {
	s.inflightMu.Lock()
	for s.inflight > 0 {
		s.inflightDone.Wait()
	}
	s.inflightMu.Unlock()
}

// evictable reports whether the store has been idle since cutoff with no
// write outstanding. Holding mu keeps a concurrent mutation from slipping
// between the two checks.
func (s *Store) evictable(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.idleSince().After(cutoff) && s.pendingWrites() == 0
}
