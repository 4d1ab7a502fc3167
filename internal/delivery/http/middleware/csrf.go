package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"talent-onboarding-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is the name of the header that must contain the CSRF token
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour
)

func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFMiddleware implements the double-submit cookie pattern.
//
// Every response carries a readable csrf_token cookie. Mutating requests
// (POST, PUT, DELETE, PATCH) must echo its value in the X-CSRF-Token header.
// Paths in exempt skip the header check; the identity sync route is exempt
// because it authenticates with a bearer token instead.
func CSRFMiddleware(secureCookies bool, exempt ...string) gin.HandlerFunc {
	exemptPaths := make(map[string]bool, len(exempt))
	for _, p := range exempt {
		exemptPaths[p] = true
	}

	return func(c *gin.Context) {
		csrfCookie, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || csrfCookie == "" {
			newToken, err := generateCSRFToken()
			if err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to generate security token", nil)
				c.Abort()
				return
			}

			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(
				CSRFTokenCookieName,
				newToken,
				int(CSRFTokenExpiry.Seconds()),
				"/",
				"",
				secureCookies,
				false, // HttpOnly = false so JS can read it
			)
			csrfCookie = newToken
		}

		if exemptPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			c.Next()
			return
		}

		headerToken := c.GetHeader(CSRFTokenHeaderName)
		if headerToken == "" {
			response.Error(c, http.StatusForbidden, "Missing CSRF token", nil)
			c.Abort()
			return
		}

		if headerToken != csrfCookie {
			response.Error(c, http.StatusForbidden, "Invalid CSRF token", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
