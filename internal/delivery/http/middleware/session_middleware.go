package middleware

import (
	"errors"
	"net/http"
	"time"

	"talent-onboarding-backend/internal/delivery/http/response"
	"talent-onboarding-backend/internal/domain"
	"talent-onboarding-backend/pkg/apperror"
	"talent-onboarding-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// DraftSessionCookieName identifies the session's draft store
	DraftSessionCookieName = "draft_sid"
	// SessionTokenCookieName mirrors the draft's token for server-rendered routes
	SessionTokenCookieName = "auth_token"

	draftSessionMaxAge = 30 * 24 * time.Hour
)

// StoreOpener returns the draft store for a session id.
type StoreOpener func(sessionID string) domain.DraftStore

// SessionStore resolves the caller's draft store from the draft_sid cookie,
// issuing a new session id when the cookie is missing or malformed.
func SessionStore(open StoreOpener, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(DraftSessionCookieName)
		if err != nil || !validSessionID(sid) {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(
				DraftSessionCookieName,
				sid,
				int(draftSessionMaxAge.Seconds()),
				"/",
				"",
				secureCookies,
				true, // HttpOnly
			)
		}

		c.Set(string(domain.KeySessionID), sid)
		c.Set(string(domain.KeyDraftStore), open(sid))
		c.Next()
	}
}

func validSessionID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// DraftStoreFrom returns the store SessionStore attached to the request.
func DraftStoreFrom(c *gin.Context) (domain.DraftStore, bool) {
	v, ok := c.Get(string(domain.KeyDraftStore))
	if !ok {
		return nil, false
	}
	store, ok := v.(domain.DraftStore)
	return store, ok
}

// MustDraftStore is DraftStoreFrom for handlers mounted behind SessionStore.
// A missing store is recorded as an internal error and the request aborted.
func MustDraftStore(c *gin.Context) (domain.DraftStore, bool) {
	store, ok := DraftStoreFrom(c)
	if !ok {
		c.Error(apperror.Internal(errors.New("draft store missing from request context")))
		c.Abort()
	}
	return store, ok
}

// RequireHydration holds mutating requests until the session's store has
// loaded its durable record, for at most grace. A store still loading after
// that gets 503 with Retry-After; reads pass through and carry the hydrated
// flag instead.
func RequireHydration(grace time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		store, ok := MustDraftStore(c)
		if !ok {
			return
		}
		if store.AwaitHydration(c.Request.Context(), grace) {
			c.Next()
			return
		}

		metrics.GuardDecisions.WithLabelValues("hydration", string(domain.OutcomePending)).Inc()
		c.Header("Retry-After", "1")
		response.Error(c, http.StatusServiceUnavailable, "Session is still loading. Please retry.", nil)
		c.Abort()
	}
}

// ClearSessionTokenCookie expires the auth_token cookie.
func ClearSessionTokenCookie(c *gin.Context, secureCookies bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionTokenCookieName, "", -1, "/", "", secureCookies, true)
}

// SyncSessionTokenCookie writes the auth_token cookie when the draft's token
// changed. A cleared token expires the cookie. Only store to cookie, never back.
func SyncSessionTokenCookie(c *gin.Context, before, after domain.UserDraft, secureCookies bool) {
	if before.TokenValue() == after.TokenValue() {
		return
	}

	if !after.HasToken() {
		ClearSessionTokenCookie(c, secureCookies)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionTokenCookieName,
		after.TokenValue(),
		int(draftSessionMaxAge.Seconds()),
		"/",
		"",
		secureCookies,
		true,
	)
}
