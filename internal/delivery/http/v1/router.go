package v1

import (
	"net/http"
	"talent-onboarding-backend/config"
	"talent-onboarding-backend/internal/delivery/http/middleware"
	"talent-onboarding-backend/internal/delivery/http/response"
	"talent-onboarding-backend/internal/domain"
	"talent-onboarding-backend/internal/usecase"
	"talent-onboarding-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// IdentitySyncPath is exempt from CSRF checks; it authenticates with a bearer token
const IdentitySyncPath = "/v1/session/identity/sync"

type RouterDeps struct {
	SessionUC    domain.SessionUsecase
	OnboardingUC domain.OnboardingUsecase
	HealthUC     usecase.HealthUsecase
	OpenStore    middleware.StoreOpener
	Navigator    middleware.Navigator
	JWKSProvider *auth.Provider
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	nav := deps.Navigator
	if nav == nil {
		nav = middleware.NewHTTPNavigator(cfg.FrontendURL)
	}
	grace := cfg.HydrationGrace
	if grace <= 0 {
		grace = middleware.DefaultHydrationGrace
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	if cfg.RateLimitGlobalThreshold > 0 {
		r.Use(middleware.RateLimitMiddleware(
			middleware.DefaultRateLimitConfig(cfg.RateLimitGlobalThreshold, cfg.RateLimitWindow()),
		))
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Session-scoped routes resolve the caller's draft store from draft_sid
	sessionScoped := v1.Group("")
	sessionScoped.Use(middleware.SessionStore(deps.OpenStore, cfg.CookieSecure))
	sessionScoped.Use(middleware.CSRFMiddleware(cfg.CookieSecure, IdentitySyncPath))
	sessionScoped.Use(middleware.RequireHydration(grace))
	{
		session := sessionScoped.Group("/session")

		identity := session.Group("")
		if cfg.RateLimitIdentitySyncThreshold > 0 {
			identity.Use(middleware.RateLimitMiddleware(
				middleware.IdentitySyncRateLimitConfig(cfg.RateLimitIdentitySyncThreshold, cfg.RateLimitWindow()),
			))
		}
		identity.Use(middleware.BearerAuth(deps.JWKSProvider, cfg.SupabaseJWTSecret))

		NewSessionHandler(session, identity, deps.SessionUC, cfg.CookieSecure)
		NewOnboardingHandler(sessionScoped, deps.OnboardingUC)
	}

	// Guarded routes mirror the front-end's dashboard paths
	dashboard := r.Group(domain.RouteDashboard)
	dashboard.Use(middleware.SessionStore(deps.OpenStore, cfg.CookieSecure))
	dashboard.Use(middleware.AuthGuard(nav, grace))
	NewDashboardHandler(dashboard, nav, grace)

	return r
}
