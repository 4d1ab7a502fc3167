package v1

import (
	"net/http"
	"talent-onboarding-backend/internal/delivery/http/middleware"
	"talent-onboarding-backend/internal/delivery/http/response"
	"talent-onboarding-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionUC     domain.SessionUsecase
	secureCookies bool
}

// NewSessionHandler mounts the draft routes on session and the identity sync
// route on identity. Both groups must already resolve the draft store; the
// identity group also verifies the bearer token.
func NewSessionHandler(session, identity *gin.RouterGroup, sessionUC domain.SessionUsecase, secureCookies bool) {
	handler := &SessionHandler{sessionUC: sessionUC, secureCookies: secureCookies}

	session.GET("/draft", handler.GetDraft)
	session.PATCH("/draft", handler.UpdateDraft)
	session.DELETE("/draft", handler.Logout)
	session.POST("/role/switch", handler.BeginRoleSwitch)
	session.POST("/role/switch/complete", handler.CompleteRoleSwitch)

	identity.POST("/identity/sync", handler.SyncIdentity)
}

// GetDraft godoc
// @Summary      Get session draft
// @Description  Returns the session's user draft and whether it has been loaded from storage
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.DraftResponse}
// @Router       /session/draft [get]
func (h *SessionHandler) GetDraft(c *gin.Context) {
	store, ok := middleware.MustDraftStore(c)
	if !ok {
		return
	}

	response.Success(c, http.StatusOK, "Draft retrieved", h.sessionUC.GetDraft(store))
}

// UpdateDraft godoc
// @Summary      Update session draft
// @Description  Merges profile fields into the session draft. Omitted fields are left unchanged.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ProfilePatch  true  "Profile fields"
// @Success      200      {object}  response.Response{data=domain.DraftResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /session/draft [patch]
func (h *SessionHandler) UpdateDraft(c *gin.Context) {
	store, ok := middleware.MustDraftStore(c)
	if !ok {
		return
	}

	var req domain.ProfilePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	before := store.Get()
	result, err := h.sessionUC.UpdateProfile(store, &req)
	if err != nil {
		c.Error(err)
		return
	}
	middleware.SyncSessionTokenCookie(c, before, result.Draft, h.secureCookies)

	response.Success(c, http.StatusOK, "Draft updated", result)
}

// Logout godoc
// @Summary      Reset session draft
// @Description  Restores the default draft and clears the session token cookie
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.DraftResponse}
// @Failure      403  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /session/draft [delete]
func (h *SessionHandler) Logout(c *gin.Context) {
	store, ok := middleware.MustDraftStore(c)
	if !ok {
		return
	}

	result, err := h.sessionUC.Logout(store)
	if err != nil {
		c.Error(err)
		return
	}
	middleware.ClearSessionTokenCookie(c, h.secureCookies)

	response.Success(c, http.StatusOK, "Logged out", result)
}

// SyncIdentity godoc
// @Summary      Sync identity into draft
// @Description  Fetches the identity document for the bearer token and merges it into the session draft
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.DraftResponse}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /session/identity/sync [post]
// @Security     BearerAuth
func (h *SessionHandler) SyncIdentity(c *gin.Context) {
	store, ok := middleware.MustDraftStore(c)
	if !ok {
		return
	}

	token := c.GetString(string(domain.KeyAccessToken))
	subject := c.GetString(string(domain.KeyUserID))

	before := store.Get()
	result, err := h.sessionUC.SyncIdentity(c.Request.Context(), store, token, subject)
	if err != nil {
		c.Error(err)
		return
	}
	middleware.SyncSessionTokenCookie(c, before, result.Draft, h.secureCookies)

	response.Success(c, http.StatusOK, "Identity synchronized", result)
}

// BeginRoleSwitch godoc
// @Summary      Switch active role
// @Description  Activates one of the account's roles and returns the route to navigate to
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RoleSwitchRequest  true  "Target role"
// @Success      200      {object}  response.Response{data=domain.RoleSwitchResult}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /session/role/switch [post]
func (h *SessionHandler) BeginRoleSwitch(c *gin.Context) {
	store, ok := middleware.MustDraftStore(c)
	if !ok {
		return
	}

	var req domain.RoleSwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	result, err := h.sessionUC.BeginRoleSwitch(store, &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Role switch started", result)
}

// CompleteRoleSwitch godoc
// @Summary      Finish role switch
// @Description  Clears the role-switch flag once the client has navigated
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.DraftResponse}
// @Failure      403  {object}  response.Response
// @Router       /session/role/switch/complete [post]
func (h *SessionHandler) CompleteRoleSwitch(c *gin.Context) {
	store, ok := middleware.MustDraftStore(c)
	if !ok {
		return
	}

	result, err := h.sessionUC.CompleteRoleSwitch(store)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Role switch completed", result)
}
