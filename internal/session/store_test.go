package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"talent-onboarding-backend/internal/domain"
	"talent-onboarding-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedRepo blocks Load until release is closed and records every Save.
type gatedRepo struct {
	release chan struct{}
	loaded  *domain.UserDraft
	loadErr error
	saveErr error

	mu    sync.Mutex
	saves []domain.UserDraft
}

func newGatedRepo() *gatedRepo {
	return &gatedRepo{release: make(chan struct{})}
}

func (r *gatedRepo) Load(ctx context.Context, key string) (*domain.UserDraft, error) {
	select {
	case <-r.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if r.loaded == nil {
		return nil, domain.ErrDraftNotFound
	}
	out := r.loaded.Clone()
	return &out, nil
}

func (r *gatedRepo) Save(ctx context.Context, key string, draft domain.UserDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, draft.Clone())
	return r.saveErr
}

func (r *gatedRepo) saved() []domain.UserDraft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.UserDraft{}, r.saves...)
}

func str(s string) *string { return &s }

func hydratedStore(t *testing.T, repo domain.DraftRepository) *Store {
	t.Helper()
	s := NewStore(domain.DraftKey("test"), repo)
	s.Hydrate(context.Background())
	require.True(t, s.HasHydrated())
	return s
}

func TestStore_DefaultsBeforeHydration(t *testing.T) {
	s := NewStore("k", newGatedRepo())

	d := s.Get()
	assert.False(t, s.HasHydrated())
	assert.False(t, d.HasToken())
	assert.False(t, d.ActiveRole.IsSet())
	assert.Equal(t, []domain.RoleName{}, d.AvailableRoles)
}

func TestStore_MergePatchAccumulates(t *testing.T) {
	s := hydratedStore(t, memory.NewDraftRepository())

	s.MergePatch(domain.DraftPatch{FirstName: str("Ana")})
	d := s.MergePatch(domain.DraftPatch{LastName: str("Silva")})

	assert.Equal(t, "Ana", d.FirstName)
	assert.Equal(t, "Silva", d.LastName)
	assert.Equal(t, d.FirstName, s.Get().FirstName, "merge is visible to the next read")
}

func TestStore_GetReturnsSnapshot(t *testing.T) {
	s := hydratedStore(t, memory.NewDraftRepository())
	roles := []domain.RoleName{domain.RoleTalent}
	s.MergePatch(domain.DraftPatch{AvailableRoles: &roles})

	snap := s.Get()
	snap.AvailableRoles[0] = domain.RoleOrgAdmin

	assert.Equal(t, domain.RoleTalent, s.Get().AvailableRoles[0])
}

func TestStore_ResetRestoresDefaults(t *testing.T) {
	repo := memory.NewDraftRepository()
	s := hydratedStore(t, repo)
	s.MergePatch(domain.DraftPatch{Token: domain.Some("abc"), Email: str("a@example.com")})

	d := s.Reset()
	s.Flush()

	assert.False(t, d.HasToken())
	assert.Empty(t, d.Email)

	persisted, err := repo.Load(context.Background(), s.Key())
	require.NoError(t, err)
	assert.False(t, persisted.HasToken())
}

func TestStore_HydrateLoadsPersistedRecord(t *testing.T) {
	repo := memory.NewDraftRepository()
	stored := domain.DefaultUserDraft()
	stored.ActiveRole = domain.UserTypeIndependentRecruiter
	stored.Token = str("abc")
	require.NoError(t, repo.Save(context.Background(), domain.DraftKey("test"), stored))

	s := hydratedStore(t, repo)

	assert.Equal(t, domain.UserTypeIndependentRecruiter, s.Get().ActiveRole)
	assert.True(t, s.Get().HasToken())
}

func TestStore_HydratesOnReadError(t *testing.T) {
	repo := newGatedRepo()
	repo.loadErr = errors.New("connection refused")
	close(repo.release)

	s := NewStore("k", repo)
	s.Hydrate(context.Background())

	assert.True(t, s.HasHydrated())
	assert.True(t, s.LoadFailed())
	assert.False(t, s.Get().HasToken())
}

func TestStore_ReadErrorNeverOverwritesRecord(t *testing.T) {
	repo := newGatedRepo()
	repo.loadErr = errors.New("connection refused")

	s := NewStore("k", repo)
	s.MergePatch(domain.DraftPatch{FirstName: str("Ana")})
	close(repo.release)
	s.Hydrate(context.Background())

	s.MergePatch(domain.DraftPatch{LastName: str("Silva")})
	s.Flush()

	assert.Empty(t, repo.saved(), "the unread record must survive")
	assert.Equal(t, "Ana", s.Get().FirstName)
	assert.Equal(t, "Silva", s.Get().LastName)
}

func TestStore_HydrateRunsOnce(t *testing.T) {
	repo := memory.NewDraftRepository()
	s := hydratedStore(t, repo)
	s.MergePatch(domain.DraftPatch{Email: str("a@example.com")})
	s.Flush()

	other := domain.DefaultUserDraft()
	require.NoError(t, repo.Save(context.Background(), s.Key(), other))

	s.Hydrate(context.Background())
	assert.Equal(t, "a@example.com", s.Get().Email)
}

func TestStore_PreHydrationMutationsReplayOnLoadedRecord(t *testing.T) {
	repo := newGatedRepo()
	loaded := domain.DefaultUserDraft()
	loaded.Token = str("persisted")
	loaded.Location = "Porto"
	repo.loaded = &loaded

	s := NewStore("k", repo)
	s.MergePatch(domain.DraftPatch{FirstName: str("Ana")})
	assert.Empty(t, repo.saved(), "no durable write before hydration")

	done := make(chan struct{})
	go func() {
		s.Hydrate(context.Background())
		close(done)
	}()
	close(repo.release)
	<-done
	s.Flush()

	d := s.Get()
	assert.Equal(t, "Ana", d.FirstName)
	assert.Equal(t, "Porto", d.Location)
	assert.Equal(t, "persisted", d.TokenValue())

	saves := repo.saved()
	require.Len(t, saves, 1)
	assert.Equal(t, "Ana", saves[0].FirstName)
	assert.Equal(t, "Porto", saves[0].Location)
}

func TestStore_AwaitHydration(t *testing.T) {
	repo := newGatedRepo()
	s := NewStore("k", repo)

	start := time.Now()
	assert.False(t, s.AwaitHydration(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	go s.Hydrate(context.Background())
	close(repo.release)

	assert.True(t, s.AwaitHydration(context.Background(), 5*time.Second))
	assert.True(t, s.AwaitHydration(context.Background(), 0), "returns at once once hydrated")
}

func TestStore_AwaitHydrationHonoursContext(t *testing.T) {
	s := NewStore("k", newGatedRepo())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, s.AwaitHydration(ctx, time.Minute))
}

func TestStore_WriteFailureIsDropped(t *testing.T) {
	repo := newGatedRepo()
	close(repo.release)
	repo.saveErr = errors.New("disk full")

	s := hydratedStore(t, repo)
	d := s.MergePatch(domain.DraftPatch{Email: str("a@example.com")})
	s.Flush()

	assert.Equal(t, "a@example.com", d.Email)
	assert.Equal(t, "a@example.com", s.Get().Email, "in-memory state survives a failed write")
	assert.Len(t, repo.saved(), 1, "never retried")
}

func TestStore_LastWriteReachesRepository(t *testing.T) {
	repo := memory.NewDraftRepository()
	s := hydratedStore(t, repo)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(step int) {
			defer wg.Done()
			s.MergePatch(domain.DraftPatch{CurrentStep: &step})
		}(i)
	}
	wg.Wait()
	s.Flush()

	persisted, err := repo.Load(context.Background(), s.Key())
	require.NoError(t, err)
	assert.Equal(t, s.Get().CurrentStep, persisted.CurrentStep)
}
