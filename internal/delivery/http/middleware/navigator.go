package middleware

import (
	"net/http"
	"strings"

	"talent-onboarding-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

// Redirect describes a guard-issued navigation.
type Redirect struct {
	To string
	// Status is used for API callers; browser navigations always get 302.
	Status int
	// Placeholder renders a loading body while the navigation is pending.
	Placeholder bool
}

// Navigator performs guard redirects. Guards decide, the navigator acts, so
// decisions can be tested without a router.
type Navigator interface {
	Redirect(c *gin.Context, r Redirect)
}

// RedirectPayload is the body API callers receive with a redirect
type RedirectPayload struct {
	RedirectTo string `json:"redirect_to"`
	Loading    bool   `json:"loading"`
}

// HTTPNavigator redirects browsers with 302 and answers API callers with a
// JSON envelope carrying the target. Routes are resolved against BaseURL.
type HTTPNavigator struct {
	BaseURL string
}

func NewHTTPNavigator(baseURL string) *HTTPNavigator {
	return &HTTPNavigator{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (n *HTTPNavigator) Redirect(c *gin.Context, r Redirect) {
	location := n.BaseURL + r.To
	c.Header("Location", location)

	if acceptsHTML(c) {
		c.Redirect(http.StatusFound, location)
		c.Abort()
		return
	}

	status := r.Status
	if status == 0 {
		status = http.StatusSeeOther
	}
	response.Error(c, status, "Redirecting", RedirectPayload{RedirectTo: r.To, Loading: r.Placeholder})
	c.Abort()
}

func acceptsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
