package v1

import (
	"net/http"
	"talent-onboarding-backend/internal/delivery/http/middleware"
	"talent-onboarding-backend/internal/delivery/http/response"
	"talent-onboarding-backend/internal/domain"
	"talent-onboarding-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	onboardingUC domain.OnboardingUsecase
}

func NewOnboardingHandler(r *gin.RouterGroup, onboardingUC domain.OnboardingUsecase) {
	handler := &OnboardingHandler{onboardingUC: onboardingUC}

	onboarding := r.Group("/onboarding")
	{
		onboarding.GET("", handler.GetView)
		onboarding.POST("/next", handler.Next)
		onboarding.POST("/back", handler.Back)
		onboarding.POST("/steps/:key/submit", handler.SubmitStep)
	}
}

// GetView godoc
// @Summary      Get onboarding wizard state
// @Description  Returns the steps for the session's active role, the current step and which navigation controls apply
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.OnboardingView}
// @Router       /onboarding [get]
func (h *OnboardingHandler) GetView(c *gin.Context) {
	store, ok := middleware.MustDraftStore(c)
	if !ok {
		return
	}

	response.Success(c, http.StatusOK, "Onboarding state retrieved", h.onboardingUC.View(store))
}

// Next godoc
// @Summary      Advance onboarding wizard
// @Description  Moves to the next step. Stays on the last step.
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.OnboardingView}
// @Failure      403  {object}  response.Response
// @Router       /onboarding/next [post]
func (h *OnboardingHandler) Next(c *gin.Context) {
	store, ok := middleware.MustDraftStore(c)
	if !ok {
		return
	}

	view, err := h.onboardingUC.Next(store)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Onboarding advanced", view)
}

// Back godoc
// @Summary      Go back in onboarding wizard
// @Description  Moves to the previous step. Stays on the first step.
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.OnboardingView}
// @Failure      403  {object}  response.Response
// @Router       /onboarding/back [post]
func (h *OnboardingHandler) Back(c *gin.Context) {
	store, ok := middleware.MustDraftStore(c)
	if !ok {
		return
	}

	view, err := h.onboardingUC.Back(store)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Onboarding moved back", view)
}

// SubmitStep godoc
// @Summary      Submit onboarding step
// @Description  Validates the step payload, stores it in the draft and advances the wizard
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        key      path      string  true  "Step key"  Enums(role_picker, organisation_registration, employer_profile, cv_parsing)
// @Param        request  body      object  true  "Step payload"
// @Success      200      {object}  response.Response{data=domain.OnboardingView}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /onboarding/steps/{key}/submit [post]
func (h *OnboardingHandler) SubmitStep(c *gin.Context) {
	store, ok := middleware.MustDraftStore(c)
	if !ok {
		return
	}

	key := domain.StepKey(c.Param("key"))
	input, ok := domain.NewStepInput(key)
	if !ok {
		c.Error(apperror.NotFound("Unknown onboarding step: " + string(key)))
		return
	}

	if err := c.ShouldBindJSON(input); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	view, err := h.onboardingUC.SubmitStep(store, key, input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Step submitted", view)
}
