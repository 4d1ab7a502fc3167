package middleware

import (
	"net/http"
	"time"

	"talent-onboarding-backend/internal/delivery/http/response"
	"talent-onboarding-backend/internal/domain"
	"talent-onboarding-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// DefaultHydrationGrace is how long guards wait for a store to hydrate.
const DefaultHydrationGrace = 150 * time.Millisecond

// AuthGuard renders the subtree for a session with a token or a role switch
// in progress, and redirects everyone else to the entry route. Token
// contents are not checked here.
func AuthGuard(nav Navigator, grace time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := MustDraftStore(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		hydrated := store.AwaitHydration(ctx, grace)
		draft := store.Get()

		phase, decision := domain.DecideAuth(domain.AuthInput{
			Hydrated:        hydrated,
			GraceElapsed:    hydrated || ctx.Err() == nil,
			IsSwitchingRole: draft.IsSwitchingRole,
			HasToken:        draft.HasToken(),
		})
		metrics.GuardDecisions.WithLabelValues("auth", string(decision.Outcome)).Inc()
		c.Set("AuthPhase", string(phase))

		switch decision.Outcome {
		case domain.OutcomeRender:
			c.Next()
		case domain.OutcomeRedirect:
			nav.Redirect(c, Redirect{
				To:          decision.RedirectTo,
				Status:      http.StatusUnauthorized,
				Placeholder: decision.Placeholder,
			})
		default:
			response.Error(c, http.StatusAccepted, "Loading", RedirectPayload{Loading: true})
			c.Abort()
		}
	}
}

// RoleGuard renders the subtree only when the hydrated session's active role
// is one of allowed. Sessions without a role go to the landing route; other
// roles go to their own home route.
func RoleGuard(nav Navigator, grace time.Duration, allowed ...domain.RoleName) gin.HandlerFunc {
	allowedRoles := append([]domain.RoleName{}, allowed...)

	return func(c *gin.Context) {
		store, ok := MustDraftStore(c)
		if !ok {
			return
		}

		hydrated := store.AwaitHydration(c.Request.Context(), grace)
		decision := domain.DecideRole(domain.RoleInput{
			Hydrated:   hydrated,
			ActiveRole: store.Get().ActiveRole,
			Allowed:    allowedRoles,
		})
		metrics.GuardDecisions.WithLabelValues("role", string(decision.Outcome)).Inc()

		switch decision.Outcome {
		case domain.OutcomeRender:
			c.Next()
		case domain.OutcomeRedirect:
			nav.Redirect(c, Redirect{To: decision.RedirectTo, Status: http.StatusForbidden})
		default:
			// Nothing to render until the store hydrates
			c.Header("Retry-After", "1")
			c.AbortWithStatus(http.StatusNoContent)
		}
	}
}
