package domain

import "strings"

// DashboardSummary is the employer landing view
type DashboardSummary struct {
	Role             RoleName   `json:"role"`
	DisplayName      string     `json:"display_name"`
	OrganisationName string     `json:"organisation_name,omitempty"`
	AvailableRoles   []RoleName `json:"available_roles"`
	OnboardingDone   bool       `json:"onboarding_done"`
}

// JobPostingView seeds the job posting form with employer details
type JobPostingView struct {
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	ContactMail string `json:"contact_email,omitempty"`
	Industry    string `json:"industry,omitempty"`
}

// CVScreeningView describes the screening workspace
type CVScreeningView struct {
	ScreenedBy   string `json:"screened_by"`
	Organisation string `json:"organisation,omitempty"`
}

// AICard is the talent's profile card built from the CV step
type AICard struct {
	Name      string   `json:"name"`
	Headline  string   `json:"headline,omitempty"`
	Location  string   `json:"location,omitempty"`
	Skills    []string `json:"skills"`
	CVURL     string   `json:"cv_url,omitempty"`
	Completed bool     `json:"completed"`
}

func displayName(d UserDraft) string {
	name := strings.TrimSpace(d.FirstName + " " + d.LastName)
	if name == "" {
		return d.Email
	}
	return name
}

// employerName prefers the registered organisation over the free-form company
func employerName(d UserDraft) string {
	if d.OrganisationName != "" {
		return d.OrganisationName
	}
	return d.CompanyName
}

// onboardingDone reports whether the wizard reached the last step of the
// active role's flow. A draft without a role has not started.
func onboardingDone(d UserDraft) bool {
	if !d.ActiveRole.IsSet() {
		return false
	}
	return d.CurrentStep >= len(StepsFor(d.ActiveRole))-1
}

func NewDashboardSummary(d UserDraft) DashboardSummary {
	roles := d.AvailableRoles
	if roles == nil {
		roles = []RoleName{}
	}
	return DashboardSummary{
		Role:             d.ActiveRole.RoleName(),
		DisplayName:      displayName(d),
		OrganisationName: employerName(d),
		AvailableRoles:   roles,
		OnboardingDone:   onboardingDone(d),
	}
}

func NewJobPostingView(d UserDraft) JobPostingView {
	return JobPostingView{
		CompanyName: employerName(d),
		ContactName: displayName(d),
		ContactMail: d.Email,
		Industry:    d.Industry,
	}
}

func NewCVScreeningView(d UserDraft) CVScreeningView {
	return CVScreeningView{
		ScreenedBy:   displayName(d),
		Organisation: employerName(d),
	}
}

func NewAICard(d UserDraft) AICard {
	skills := d.Skills
	if skills == nil {
		skills = []string{}
	}
	return AICard{
		Name:      displayName(d),
		Headline:  d.Headline,
		Location:  d.Location,
		Skills:    skills,
		CVURL:     d.CVURL,
		Completed: d.CVURL != "",
	}
}
