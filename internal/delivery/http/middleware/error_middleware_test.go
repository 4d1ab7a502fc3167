package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"talent-onboarding-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantCode       int
		wantRetryAfter string
	}{
		{name: "app error", err: apperror.Forbidden("nope"), wantCode: http.StatusForbidden},
		{name: "store loading", err: apperror.ServiceUnavailable("loading"), wantCode: http.StatusServiceUnavailable, wantRetryAfter: "1"},
		{name: "plain error hidden", err: errors.New("db exploded"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/", func(c *gin.Context) { _ = c.Error(tt.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantRetryAfter, w.Header().Get("Retry-After"))
			assert.NotContains(t, w.Body.String(), "db exploded")
		})
	}
}
