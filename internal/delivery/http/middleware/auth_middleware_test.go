package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talent-onboarding-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func serveBearer(t *testing.T, setup func(*http.Request)) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	seen := map[string]string{}

	r := gin.New()
	r.POST("/sync", BearerAuth(nil, testSecret), func(c *gin.Context) {
		seen["sub"] = c.GetString(string(domain.KeyUserID))
		seen["email"] = c.GetString(string(domain.KeyUserEmail))
		seen["token"] = c.GetString(string(domain.KeyAccessToken))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/sync", nil)
	setup(req)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, seen
}

func TestBearerAuth_ValidHeaderToken(t *testing.T) {
	tok := signHS256(t, testSecret, jwt.MapClaims{
		"sub":   "user-1",
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	w, seen := serveBearer(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", seen["sub"])
	assert.Equal(t, "ana@example.com", seen["email"])
	assert.Equal(t, tok, seen["token"])
}

func TestBearerAuth_CookieToken(t *testing.T) {
	tok := signHS256(t, testSecret, jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix()})

	w, seen := serveBearer(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionTokenCookieName, Value: tok})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", seen["sub"])
}

func TestBearerAuth_Rejections(t *testing.T) {
	expired := signHS256(t, testSecret, jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(-time.Hour).Unix()})
	wrongKey := signHS256(t, "other-secret", jwt.MapClaims{"sub": "user-1"})
	noSubject := signHS256(t, testSecret, jwt.MapClaims{"email": "ana@example.com"})

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"garbage", "Bearer not-a-jwt"},
		{"expired", "Bearer " + expired},
		{"wrong key", "Bearer " + wrongKey},
		{"no subject", "Bearer " + noSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, seen := serveBearer(t, func(r *http.Request) {
				if tt.header != "" {
					r.Header.Set("Authorization", tt.header)
				}
			})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Empty(t, seen)
		})
	}
}

func TestBearerAuth_RS256WithoutProvider(t *testing.T) {
	// alg RS256 header with a bogus signature; rejected before any key lookup
	tok := "eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiJ1c2VyLTEifQ.c2ln"

	w, _ := serveBearer(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
