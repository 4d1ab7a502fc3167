package v1

import (
	"net/http"
	"time"

	"talent-onboarding-backend/internal/delivery/http/middleware"
	"talent-onboarding-backend/internal/delivery/http/response"
	"talent-onboarding-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{}

// NewDashboardHandler mounts the dashboard routes on r, which must already
// resolve the draft store and run the AuthGuard. Each route adds its own
// RoleGuard.
func NewDashboardHandler(r *gin.RouterGroup, nav middleware.Navigator, grace time.Duration) {
	handler := &DashboardHandler{}

	employer := middleware.RoleGuard(nav, grace, domain.RoleRecruiter, domain.RoleOrgAdmin)
	talent := middleware.RoleGuard(nav, grace, domain.RoleTalent)

	r.GET("", employer, handler.Summary)
	r.GET("/jobs", employer, handler.Jobs)
	r.GET("/cv-screening", employer, handler.CVScreening)
	r.GET("/ai-card", talent, handler.AICard)
}

// Summary godoc
// @Summary      Employer dashboard
// @Description  Employer landing view. Talent sessions are redirected to their AI card.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.DashboardSummary}
// @Failure      401  {object}  response.Response{error=middleware.RedirectPayload}
// @Failure      403  {object}  response.Response{error=middleware.RedirectPayload}
// @Router       /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	store, ok := middleware.MustDraftStore(c)
	if !ok {
		return
	}

	response.Success(c, http.StatusOK, "Dashboard retrieved", domain.NewDashboardSummary(store.Get()))
}

// Jobs godoc
// @Summary      Job postings workspace
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.JobPostingView}
// @Failure      401  {object}  response.Response{error=middleware.RedirectPayload}
// @Failure      403  {object}  response.Response{error=middleware.RedirectPayload}
// @Router       /dashboard/jobs [get]
func (h *DashboardHandler) Jobs(c *gin.Context) {
	store, ok := middleware.MustDraftStore(c)
	if !ok {
		return
	}

	response.Success(c, http.StatusOK, "Job postings retrieved", domain.NewJobPostingView(store.Get()))
}

// CVScreening godoc
// @Summary      CV screening workspace
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CVScreeningView}
// @Failure      401  {object}  response.Response{error=middleware.RedirectPayload}
// @Failure      403  {object}  response.Response{error=middleware.RedirectPayload}
// @Router       /dashboard/cv-screening [get]
func (h *DashboardHandler) CVScreening(c *gin.Context) {
	store, ok := middleware.MustDraftStore(c)
	if !ok {
		return
	}

	response.Success(c, http.StatusOK, "CV screening retrieved", domain.NewCVScreeningView(store.Get()))
}

// AICard godoc
// @Summary      Talent AI card
// @Description  Profile card built from the CV parsing step. Employer sessions are redirected to the dashboard.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.AICard}
// @Failure      401  {object}  response.Response{error=middleware.RedirectPayload}
// @Failure      403  {object}  response.Response{error=middleware.RedirectPayload}
// @Router       /dashboard/ai-card [get]
func (h *DashboardHandler) AICard(c *gin.Context) {
	store, ok := middleware.MustDraftStore(c)
	if !ok {
		return
	}

	response.Success(c, http.StatusOK, "AI card retrieved", domain.NewAICard(store.Get()))
}
