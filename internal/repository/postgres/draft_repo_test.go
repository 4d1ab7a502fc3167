package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"talent-onboarding-backend/internal/domain"
	"talent-onboarding-backend/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
Draft repository cases (live Postgres via testcontainers):
1) Load of a missing key maps pgx.ErrNoRows to ErrDraftNotFound
2) Save then Load round-trips available_roles (text[]) and the jsonb profile
3) Save upserts on the same key
4) An unknown stored active_role reads back as unset
*/

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:17",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("Docker not available: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../../migrations/000001_create_user_drafts.up.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	return pool
}

func TestDraftRepository_Postgres(t *testing.T) {
	pool := newTestPool(t)
	repo := postgres.NewDraftRepository(pool)
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := repo.Load(ctx, domain.DraftKey("missing"))
		assert.ErrorIs(t, err, domain.ErrDraftNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		key := domain.DraftKey("round-trip")
		tok := "tok"
		draft := domain.DefaultUserDraft()
		draft.ID = "user-1"
		draft.Token = &tok
		draft.ActiveRole = domain.UserTypeOrganisation
		draft.AvailableRoles = []domain.RoleName{domain.RoleOrgAdmin, domain.RoleRecruiter}
		draft.CurrentStep = 2
		draft.OrganisationName = "Acme Lda"
		draft.Skills = []string{"go"}

		require.NoError(t, repo.Save(ctx, key, draft))

		got, err := repo.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "user-1", got.ID)
		assert.Equal(t, "tok", got.TokenValue())
		assert.Equal(t, domain.UserTypeOrganisation, got.ActiveRole)
		assert.Equal(t, draft.AvailableRoles, got.AvailableRoles)
		assert.Equal(t, 2, got.CurrentStep)
		assert.Equal(t, "Acme Lda", got.OrganisationName)
		assert.Equal(t, []string{"go"}, got.Skills)
		assert.False(t, got.UpdatedAt.IsZero())
	})

	t.Run("upsert and empty roles", func(t *testing.T) {
		key := domain.DraftKey("upsert")
		first := domain.DefaultUserDraft()
		first.AvailableRoles = []domain.RoleName{domain.RoleTalent}
		first.FirstName = "Ana"
		require.NoError(t, repo.Save(ctx, key, first))

		second := domain.DefaultUserDraft()
		require.NoError(t, repo.Save(ctx, key, second))

		got, err := repo.Load(ctx, key)
		require.NoError(t, err)
		assert.Empty(t, got.AvailableRoles)
		assert.NotNil(t, got.AvailableRoles)
		assert.Empty(t, got.FirstName)
		assert.Nil(t, got.Token)
	})

	t.Run("unknown active role fails closed", func(t *testing.T) {
		key := domain.DraftKey("corrupt")
		_, err := pool.Exec(ctx,
			`INSERT INTO user_drafts (key, active_role, available_roles) VALUES ($1, 'SUPERUSER', '{talent}')`, key)
		require.NoError(t, err)

		got, err := repo.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, domain.UserTypeNone, got.ActiveRole)
		assert.Equal(t, []domain.RoleName{domain.RoleTalent}, got.AvailableRoles)
	})
}
