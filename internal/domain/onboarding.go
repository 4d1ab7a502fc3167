package domain

// ============================================================================
// Onboarding Steps
// ============================================================================

// StepKey identifies an onboarding step variant
type StepKey string

const (
	StepRolePicker               StepKey = "role_picker"
	StepOrganisationRegistration StepKey = "organisation_registration"
	StepEmployerProfile          StepKey = "employer_profile"
	StepCVParsing                StepKey = "cv_parsing"
)

// ValidStepKeys returns all valid step keys
func ValidStepKeys() []StepKey {
	return []StepKey{StepRolePicker, StepOrganisationRegistration, StepEmployerProfile, StepCVParsing}
}

// IsValid checks if the step key is valid
func (k StepKey) IsValid() bool {
	for _, valid := range ValidStepKeys() {
		if k == valid {
			return true
		}
	}
	return false
}

// StepDescriptor is a step definition plus its capabilities. A step that
// owns navigation renders its own forward/back affordances, so the wizard
// hides its Next/Back controls for it.
type StepDescriptor struct {
	Key            StepKey `json:"key"`
	Title          string  `json:"title"`
	OwnsNavigation bool    `json:"owns_navigation"`
}

var stepCatalog = map[StepKey]StepDescriptor{
	StepRolePicker:               {Key: StepRolePicker, Title: "Choose how you will use the platform", OwnsNavigation: true},
	StepOrganisationRegistration: {Key: StepOrganisationRegistration, Title: "Register your organisation"},
	StepEmployerProfile:          {Key: StepEmployerProfile, Title: "Set up your employer profile"},
	StepCVParsing:                {Key: StepCVParsing, Title: "Upload your CV", OwnsNavigation: true},
}

// StepsFor returns the ordered step sequence for an active role. Without a
// role only the role picker is available.
func StepsFor(role UserType) []StepDescriptor {
	var keys []StepKey
	switch role {
	case UserTypeTalent:
		keys = []StepKey{StepRolePicker, StepCVParsing}
	case UserTypeIndependentRecruiter:
		keys = []StepKey{StepRolePicker, StepEmployerProfile}
	case UserTypeOrganisation:
		keys = []StepKey{StepRolePicker, StepOrganisationRegistration, StepEmployerProfile}
	default:
		keys = []StepKey{StepRolePicker}
	}

	steps := make([]StepDescriptor, len(keys))
	for i, k := range keys {
		steps[i] = stepCatalog[k]
	}
	return steps
}

// ============================================================================
// Sequencer
// ============================================================================

// Sequencer is the linear wizard state machine. States are step indices,
// transitions are Next and Back, and both saturate at the ends.
type Sequencer struct {
	steps   []StepDescriptor
	current int
}

// NewSequencer builds a sequencer positioned at start, clamped into range.
func NewSequencer(steps []StepDescriptor, start int) *Sequencer {
	s := &Sequencer{steps: steps}
	s.current = s.clamp(start)
	return s
}

func (s *Sequencer) clamp(i int) int {
	if i < 0 || len(s.steps) == 0 {
		return 0
	}
	if i > len(s.steps)-1 {
		return len(s.steps) - 1
	}
	return i
}

// Index returns the current step index.
func (s *Sequencer) Index() int { return s.current }

// Len returns the number of steps.
func (s *Sequencer) Len() int { return len(s.steps) }

// Steps returns the step sequence.
func (s *Sequencer) Steps() []StepDescriptor { return s.steps }

// Current returns the current step. ok is false for an empty sequence.
func (s *Sequencer) Current() (StepDescriptor, bool) {
	if len(s.steps) == 0 {
		return StepDescriptor{}, false
	}
	return s.steps[s.current], true
}

// CanGoNext reports whether Next would move.
func (s *Sequencer) CanGoNext() bool { return s.current < len(s.steps)-1 }

// CanGoBack reports whether Back would move.
func (s *Sequencer) CanGoBack() bool { return s.current > 0 }

// Next advances one step unless already at the last one.
func (s *Sequencer) Next() bool {
	if !s.CanGoNext() {
		return false
	}
	s.current++
	return true
}

// Back retreats one step unless already at the first one.
func (s *Sequencer) Back() bool {
	if !s.CanGoBack() {
		return false
	}
	s.current--
	return true
}

// ShowNavigation reports whether the wizard renders its own Next/Back
// controls for the current step.
func (s *Sequencer) ShowNavigation() bool {
	step, ok := s.Current()
	return ok && !step.OwnsNavigation
}

// ============================================================================
// Step Inputs
// ============================================================================

// StepInput is the payload a step submits before the wizard advances.
type StepInput interface {
	ToDraftPatch() DraftPatch
}

// NewStepInput returns an empty payload for the step, ready for binding.
func NewStepInput(key StepKey) (StepInput, bool) {
	switch key {
	case StepRolePicker:
		return &RolePickerInput{}, true
	case StepOrganisationRegistration:
		return &OrganisationRegistrationInput{}, true
	case StepEmployerProfile:
		return &EmployerProfileInput{}, true
	case StepCVParsing:
		return &CVParsingInput{}, true
	}
	return nil, false
}

type RolePickerInput struct {
	Role RoleName `json:"role" validate:"required,oneof=talent recruiter org_admin"`
}

func (in *RolePickerInput) ToDraftPatch() DraftPatch {
	active := MapRoleToUserType(string(in.Role))
	return DraftPatch{ActiveRole: &active}
}

type OrganisationRegistrationInput struct {
	OrganisationName    string `json:"organisation_name" validate:"required,max=200,valid_name"`
	OrganisationWebsite string `json:"organisation_website" validate:"omitempty,url"`
	OrganisationSize    string `json:"organisation_size" validate:"required,oneof=1-10 11-50 51-200 201-1000 1000+"`
	Industry            string `json:"industry" validate:"required,max=100"`
}

func (in *OrganisationRegistrationInput) ToDraftPatch() DraftPatch {
	return DraftPatch{
		OrganisationName:    &in.OrganisationName,
		OrganisationWebsite: &in.OrganisationWebsite,
		OrganisationSize:    &in.OrganisationSize,
		Industry:            &in.Industry,
	}
}

type EmployerProfileInput struct {
	FirstName   string `json:"first_name" validate:"required,max=100,valid_name,no_emoji"`
	LastName    string `json:"last_name" validate:"required,max=100,valid_name,no_emoji"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,valid_phone"`
	JobTitle    string `json:"job_title" validate:"required,max=100,no_emoji"`
	CompanyName string `json:"company_name" validate:"omitempty,max=200,valid_name"`
}

func (in *EmployerProfileInput) ToDraftPatch() DraftPatch {
	p := DraftPatch{
		FirstName: &in.FirstName,
		LastName:  &in.LastName,
		Email:     &in.Email,
		JobTitle:  &in.JobTitle,
	}
	if in.Phone != "" {
		p.Phone = &in.Phone
	}
	if in.CompanyName != "" {
		p.CompanyName = &in.CompanyName
	}
	return p
}

// CVParsingInput carries the uploaded CV location and the fields extracted
// from it.
type CVParsingInput struct {
	CVURL     string   `json:"cv_url" validate:"required,url"`
	FirstName string   `json:"first_name" validate:"omitempty,max=100,valid_name,no_emoji"`
	LastName  string   `json:"last_name" validate:"omitempty,max=100,valid_name,no_emoji"`
	Headline  string   `json:"headline" validate:"omitempty,max=160,no_emoji"`
	Skills    []string `json:"skills" validate:"omitempty,max=50,dive,min=1,max=60"`
}

func (in *CVParsingInput) ToDraftPatch() DraftPatch {
	p := DraftPatch{CVURL: &in.CVURL}
	if in.FirstName != "" {
		p.FirstName = &in.FirstName
	}
	if in.LastName != "" {
		p.LastName = &in.LastName
	}
	if in.Headline != "" {
		p.Headline = &in.Headline
	}
	if in.Skills != nil {
		p.Skills = &in.Skills
	}
	return p
}

// ============================================================================
// Onboarding Data Transfer Objects
// ============================================================================

// OnboardingView is what the wizard renders for the current state.
type OnboardingView struct {
	Steps          []StepDescriptor `json:"steps"`
	CurrentIndex   int              `json:"current_index"`
	CurrentStep    StepDescriptor   `json:"current_step"`
	ShowNavigation bool             `json:"show_navigation"`
	CanGoBack      bool             `json:"can_go_back"`
	CanGoNext      bool             `json:"can_go_next"`
}

// NewOnboardingView snapshots a sequencer.
func NewOnboardingView(seq *Sequencer) *OnboardingView {
	step, _ := seq.Current()
	return &OnboardingView{
		Steps:          seq.Steps(),
		CurrentIndex:   seq.Index(),
		CurrentStep:    step,
		ShowNavigation: seq.ShowNavigation(),
		CanGoBack:      seq.CanGoBack(),
		CanGoNext:      seq.CanGoNext(),
	}
}

// ============================================================================
// Usecase Interface
// ============================================================================

type OnboardingUsecase interface {
	// View returns the wizard state derived from the draft
	View(store DraftStore) *OnboardingView

	// Next and Back move the wizard one step and persist the index
	Next(store DraftStore) (*OnboardingView, error)
	Back(store DraftStore) (*OnboardingView, error)

	// SubmitStep validates the payload, merges it into the draft, then advances
	SubmitStep(store DraftStore, key StepKey, input StepInput) (*OnboardingView, error)
}
