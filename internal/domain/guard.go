package domain

// Navigation targets used by the guards.
const (
	RouteEntry     = "/"
	RouteLanding   = "/"
	RouteDashboard = "/dashboard"
	RouteAICard    = "/dashboard/ai-card"
)

// DefaultRouteFor returns the home route of a role: talent lands on the AI
// card, recruiters and organisation admins on the dashboard root.
func DefaultRouteFor(role RoleName) string {
	if role == RoleTalent {
		return RouteAICard
	}
	return RouteDashboard
}

// Outcome is what a guard does with its subtree.
type Outcome string

const (
	// OutcomeRender renders the guarded children.
	OutcomeRender Outcome = "render"
	// OutcomeRedirect navigates away; children are never rendered.
	OutcomeRedirect Outcome = "redirect"
	// OutcomeLoading renders a loading placeholder and nothing else.
	OutcomeLoading Outcome = "loading"
	// OutcomePending renders nothing and does not navigate.
	OutcomePending Outcome = "pending"
)

// Decision is the result of a guard check. RedirectTo is set only for
// OutcomeRedirect.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
	// Placeholder asks the caller to show a loading placeholder while the
	// redirect is pending.
	Placeholder bool
}

func render() Decision { return Decision{Outcome: OutcomeRender} }

func redirect(to string) Decision { return Decision{Outcome: OutcomeRedirect, RedirectTo: to} }

// ============================================================================
// Auth Guard
// ============================================================================

// AuthPhase is the auth guard's state.
type AuthPhase string

const (
	AuthHydrating       AuthPhase = "hydrating"
	AuthUnauthenticated AuthPhase = "unauthenticated"
	AuthSwitchingRole   AuthPhase = "switching-role"
	AuthAuthorized      AuthPhase = "authorized"
)

// AuthInput is the store state the auth guard reads.
type AuthInput struct {
	Hydrated        bool
	GraceElapsed    bool
	IsSwitchingRole bool
	HasToken        bool
}

// ResolveAuthPhase maps the store state to the auth guard's state. A role
// switch in progress wins over the token check.
func ResolveAuthPhase(in AuthInput) AuthPhase {
	switch {
	case !in.Hydrated && !in.GraceElapsed:
		return AuthHydrating
	case in.IsSwitchingRole:
		return AuthSwitchingRole
	case in.HasToken:
		return AuthAuthorized
	default:
		return AuthUnauthenticated
	}
}

// DecideAuth returns what the auth guard does in the given state.
func DecideAuth(in AuthInput) (AuthPhase, Decision) {
	phase := ResolveAuthPhase(in)
	switch phase {
	case AuthHydrating:
		return phase, Decision{Outcome: OutcomeLoading}
	case AuthSwitchingRole, AuthAuthorized:
		return phase, render()
	}
	d := redirect(RouteEntry)
	d.Placeholder = true
	return phase, d
}

// ============================================================================
// Role Guard
// ============================================================================

// RoleInput is the store state the role guard reads.
type RoleInput struct {
	Hydrated   bool
	ActiveRole UserType
	Allowed    []RoleName
}

// DecideRole renders only for a hydrated store whose active role is in the
// allowed set. Before hydration it waits without redirecting.
func DecideRole(in RoleInput) Decision {
	if !in.Hydrated {
		return Decision{Outcome: OutcomePending}
	}
	if !in.ActiveRole.IsSet() {
		return redirect(RouteLanding)
	}

	role := in.ActiveRole.RoleName()
	for _, allowed := range in.Allowed {
		if allowed == role {
			return render()
		}
	}
	return redirect(DefaultRouteFor(role))
}
