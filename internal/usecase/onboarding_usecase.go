package usecase

import (
	"talent-onboarding-backend/internal/domain"
	"talent-onboarding-backend/pkg/apperror"
	"talent-onboarding-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type onboardingUsecase struct {
	validate *validator.Validate
}

func NewOnboardingUsecase(validate *validator.Validate) domain.OnboardingUsecase {
	return &onboardingUsecase{
		validate: validate,
	}
}

// sequencerFor rebuilds the wizard from the draft's role and persisted index
func sequencerFor(draft domain.UserDraft) *domain.Sequencer {
	return domain.NewSequencer(domain.StepsFor(draft.ActiveRole), draft.CurrentStep)
}

func (u *onboardingUsecase) View(store domain.DraftStore) *domain.OnboardingView {
	return domain.NewOnboardingView(sequencerFor(store.Get()))
}

// ============================================================================
// Navigation
// ============================================================================

func (u *onboardingUsecase) Next(store domain.DraftStore) (*domain.OnboardingView, error) {
	if err := requireHydrated(store); err != nil {
		return nil, err
	}
	seq := sequencerFor(store.Get())
	if seq.Next() {
		u.saveIndex(store, seq)
	}
	return domain.NewOnboardingView(seq), nil
}

func (u *onboardingUsecase) Back(store domain.DraftStore) (*domain.OnboardingView, error) {
	if err := requireHydrated(store); err != nil {
		return nil, err
	}
	seq := sequencerFor(store.Get())
	if seq.Back() {
		u.saveIndex(store, seq)
	}
	return domain.NewOnboardingView(seq), nil
}

func (u *onboardingUsecase) saveIndex(store domain.DraftStore, seq *domain.Sequencer) domain.UserDraft {
	idx := seq.Index()
	return store.MergePatch(domain.DraftPatch{CurrentStep: &idx})
}

// ============================================================================
// Step Submission
// ============================================================================

func (u *onboardingUsecase) SubmitStep(store domain.DraftStore, key domain.StepKey, input domain.StepInput) (*domain.OnboardingView, error) {
	if !key.IsValid() {
		return nil, apperror.NotFound("Unknown onboarding step: " + string(key))
	}
	if err := requireHydrated(store); err != nil {
		return nil, err
	}

	draft := store.Get()
	current, ok := sequencerFor(draft).Current()
	if !ok || current.Key != key {
		return nil, apperror.Conflict("Step " + string(key) + " is not the current onboarding step")
	}

	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest("Validation failed").WithDetails(validation.FormatValidationErrors(err))
	}

	// Business Logic: an authenticated identity may only pick a role it holds
	if picker, ok := input.(*domain.RolePickerInput); ok {
		if draft.HasToken() && len(draft.AvailableRoles) > 0 && !draft.HasRole(picker.Role) {
			return nil, apperror.Forbidden("Role is not available for this account: " + string(picker.Role))
		}
	}

	// The step's data must be in the draft before the wizard moves on, so
	// anything reading the draft after this call sees it.
	merged := store.MergePatch(input.ToDraftPatch())

	seq := sequencerFor(merged)
	if seq.Next() {
		u.saveIndex(store, seq)
	}
	return domain.NewOnboardingView(seq), nil
}
