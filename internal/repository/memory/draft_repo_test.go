package memory

import (
	"context"
	"testing"

	"talent-onboarding-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftRepository_RoundTripIsolated(t *testing.T) {
	repo := NewDraftRepository()
	ctx := context.Background()

	_, err := repo.Load(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)

	draft := domain.DefaultUserDraft()
	draft.AvailableRoles = []domain.RoleName{domain.RoleTalent}
	require.NoError(t, repo.Save(ctx, "k", draft))

	draft.AvailableRoles[0] = domain.RoleOrgAdmin

	got, err := repo.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []domain.RoleName{domain.RoleTalent}, got.AvailableRoles)

	got.AvailableRoles[0] = domain.RoleRecruiter
	again, _ := repo.Load(ctx, "k")
	assert.Equal(t, domain.RoleTalent, again.AvailableRoles[0])
}
