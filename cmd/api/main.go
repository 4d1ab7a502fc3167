package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talent-onboarding-backend/config"
	_ "talent-onboarding-backend/docs" // Important for Swagger
	"talent-onboarding-backend/internal/delivery/http/middleware"
	v1 "talent-onboarding-backend/internal/delivery/http/v1"
	"talent-onboarding-backend/internal/domain"
	"talent-onboarding-backend/internal/repository/memory"
	"talent-onboarding-backend/internal/repository/postgres"
	redisrepo "talent-onboarding-backend/internal/repository/redis"
	"talent-onboarding-backend/internal/session"
	"talent-onboarding-backend/internal/usecase"
	"talent-onboarding-backend/pkg/auth"
	"talent-onboarding-backend/pkg/database"
	"talent-onboarding-backend/pkg/identity"
	"talent-onboarding-backend/pkg/logger"
	"talent-onboarding-backend/pkg/redis"
	"talent-onboarding-backend/pkg/validation"
)

// @title           Talent Onboarding Backend API
// @version         1.0
// @description     Session draft, onboarding wizard and role-guarded dashboard routes.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting talent onboarding backend", "port", cfg.Port, "draft_store", cfg.DraftStoreBackend)

	// 3. Setup Redis (rate limiting, and the draft store when selected)
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable", "error", err)
	}
	defer redis.Close()

	// 4. Setup Draft Repository
	probes := map[string]usecase.HealthProbe{}
	draftRepo, cleanup, err := newDraftRepository(cfg, probes)
	if err != nil {
		logger.Log.Error("Failed to set up draft store", "backend", cfg.DraftStoreBackend, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	registry := session.NewRegistry(draftRepo, cfg.SessionIdle)

	// 5. Setup UseCases
	validate := validation.New()
	identityClient := identity.NewClient(cfg.IdentityURL, cfg.SupabaseKey)
	sessionUC := usecase.NewSessionUsecase(identityClient, validate)
	onboardingUC := usecase.NewOnboardingUsecase(validate)
	healthUC := usecase.NewHealthUsecase(probes)

	// 6. Setup Auth Provider (JWKS)
	var jwksProvider *auth.Provider
	if cfg.SupabaseUrl != "" {
		jwksProvider = auth.NewProvider(cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json")
	}

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		SessionUC:    sessionUC,
		OnboardingUC: onboardingUC,
		HealthUC:     healthUC,
		OpenStore: func(sessionID string) domain.DraftStore {
			return registry.Open(sessionID)
		},
		Navigator:    middleware.NewHTTPNavigator(cfg.FrontendURL),
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	// Pending draft writes must land before the backends close
	registry.Close()

	logger.Log.Info("Server exiting")
}

// newDraftRepository builds the configured durable store. The returned
// cleanup releases its connections. The backend's health probe is added to
// probes.
func newDraftRepository(cfg *config.Config, probes map[string]usecase.HealthProbe) (domain.DraftRepository, func(), error) {
	switch cfg.DraftStoreBackend {
	case config.BackendPostgres:
		pool, err := database.NewPostgresConnection(context.Background(), cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		probes["postgres"] = pool.Ping
		return postgres.NewDraftRepository(pool), pool.Close, nil

	case config.BackendRedis:
		client := redis.Client()
		if client == nil {
			return nil, nil, redis.ErrNotInitialized
		}
		probes["redis"] = redis.HealthCheck
		return redisrepo.NewDraftRepository(client, cfg.DraftTTL), func() {}, nil

	default:
		logger.Log.Warn("Using in-memory draft store; drafts do not survive a restart")
		return memory.NewDraftRepository(), func() {}, nil
	}
}
