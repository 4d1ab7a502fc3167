package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"talent-onboarding-backend/internal/domain"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type draftRepo struct {
	db *pgxpool.Pool
}

func NewDraftRepository(db *pgxpool.Pool) domain.DraftRepository {
	return &draftRepo{db: db}
}

// draftProfile is the jsonb shape of the free-form profile fields
type draftProfile struct {
	FirstName           string   `json:"first_name,omitempty"`
	LastName            string   `json:"last_name,omitempty"`
	Email               string   `json:"email,omitempty"`
	Phone               string   `json:"phone,omitempty"`
	Location            string   `json:"location,omitempty"`
	OrganisationName    string   `json:"organisation_name,omitempty"`
	OrganisationWebsite string   `json:"organisation_website,omitempty"`
	OrganisationSize    string   `json:"organisation_size,omitempty"`
	Industry            string   `json:"industry,omitempty"`
	JobTitle            string   `json:"job_title,omitempty"`
	CompanyName         string   `json:"company_name,omitempty"`
	LinkedInURL         string   `json:"linkedin_url,omitempty"`
	CVURL               string   `json:"cv_url,omitempty"`
	Headline            string   `json:"headline,omitempty"`
	Skills              []string `json:"skills,omitempty"`
}

func profileOf(d domain.UserDraft) draftProfile {
	return draftProfile{
		FirstName:           d.FirstName,
		LastName:            d.LastName,
		Email:               d.Email,
		Phone:               d.Phone,
		Location:            d.Location,
		OrganisationName:    d.OrganisationName,
		OrganisationWebsite: d.OrganisationWebsite,
		OrganisationSize:    d.OrganisationSize,
		Industry:            d.Industry,
		JobTitle:            d.JobTitle,
		CompanyName:         d.CompanyName,
		LinkedInURL:         d.LinkedInURL,
		CVURL:               d.CVURL,
		Headline:            d.Headline,
		Skills:              d.Skills,
	}
}

func (p draftProfile) applyTo(d *domain.UserDraft) {
	d.FirstName = p.FirstName
	d.LastName = p.LastName
	d.Email = p.Email
	d.Phone = p.Phone
	d.Location = p.Location
	d.OrganisationName = p.OrganisationName
	d.OrganisationWebsite = p.OrganisationWebsite
	d.OrganisationSize = p.OrganisationSize
	d.Industry = p.Industry
	d.JobTitle = p.JobTitle
	d.CompanyName = p.CompanyName
	d.LinkedInURL = p.LinkedInURL
	d.CVURL = p.CVURL
	d.Headline = p.Headline
	d.Skills = p.Skills
}

func (r *draftRepo) Load(ctx context.Context, key string) (*domain.UserDraft, error) {
	query := `
		SELECT user_id, active_role, available_roles, token, is_switching_role,
		       current_step, profile, updated_at
		FROM user_drafts
		WHERE key = $1
	`

	var (
		draft      domain.UserDraft
		activeRole string
		roles      []string
		profileRaw []byte
		updatedAt  time.Time
	)
	err := r.db.QueryRow(ctx, query, key).Scan(
		&draft.ID, &activeRole, pq.Array(&roles), &draft.Token, &draft.IsSwitchingRole,
		&draft.CurrentStep, &profileRaw, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	// Unknown stored roles read back as unset
	_ = draft.ActiveRole.UnmarshalText([]byte(activeRole))

	draft.AvailableRoles = make([]domain.RoleName, 0, len(roles))
	for _, role := range roles {
		draft.AvailableRoles = append(draft.AvailableRoles, domain.RoleName(role))
	}

	var profile draftProfile
	if len(profileRaw) > 0 {
		if err := json.Unmarshal(profileRaw, &profile); err != nil {
			return nil, fmt.Errorf("failed to decode draft profile: %w", err)
		}
	}
	profile.applyTo(&draft)
	draft.UpdatedAt = updatedAt

	return &draft, nil
}

func (r *draftRepo) Save(ctx context.Context, key string, draft domain.UserDraft) error {
	profileRaw, err := json.Marshal(profileOf(draft))
	if err != nil {
		return fmt.Errorf("failed to encode draft profile: %w", err)
	}

	roles := make([]string, 0, len(draft.AvailableRoles))
	for _, role := range draft.AvailableRoles {
		roles = append(roles, string(role))
	}

	updatedAt := draft.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO user_drafts (key, user_id, active_role, available_roles, token,
		                         is_switching_role, current_step, profile, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (key) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			active_role = EXCLUDED.active_role,
			available_roles = EXCLUDED.available_roles,
			token = EXCLUDED.token,
			is_switching_role = EXCLUDED.is_switching_role,
			current_step = EXCLUDED.current_step,
			profile = EXCLUDED.profile,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.Exec(ctx, query,
		key, draft.ID, string(draft.ActiveRole), pq.Array(roles), draft.Token,
		draft.IsSwitchingRole, draft.CurrentStep, string(profileRaw), updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}
