package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfRouter() *gin.Engine {
	r := gin.New()
	r.Use(CSRFMiddleware(false, "/exempt"))
	r.GET("/form", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/form", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/exempt", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCSRF_SafeMethodIssuesToken(t *testing.T) {
	w := httptest.NewRecorder()
	csrfRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	c := cookieNamed(w, CSRFTokenCookieName)
	require.NotNil(t, c)
	assert.Len(t, c.Value, CSRFTokenLength*2)
	assert.False(t, c.HttpOnly)
}

func TestCSRF_MutationNeedsMatchingHeader(t *testing.T) {
	r := csrfRouter()

	missing := httptest.NewRecorder()
	r.ServeHTTP(missing, httptest.NewRequest(http.MethodPost, "/form", nil))
	assert.Equal(t, http.StatusForbidden, missing.Code)

	mismatch := httptest.NewRequest(http.MethodPost, "/form", nil)
	mismatch.AddCookie(&http.Cookie{Name: CSRFTokenCookieName, Value: "aaa"})
	mismatch.Header.Set(CSRFTokenHeaderName, "bbb")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, mismatch)
	assert.Equal(t, http.StatusForbidden, w.Code)

	ok := httptest.NewRequest(http.MethodPost, "/form", nil)
	ok.AddCookie(&http.Cookie{Name: CSRFTokenCookieName, Value: "aaa"})
	ok.Header.Set(CSRFTokenHeaderName, "aaa")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, ok)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCSRF_ExemptPath(t *testing.T) {
	w := httptest.NewRecorder()
	csrfRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/exempt", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
