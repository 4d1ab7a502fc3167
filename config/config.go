package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"talent-onboarding-backend/pkg/logger"

	"github.com/joho/godotenv"
)

// Draft store backends
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Port     string
	LogLevel string
	DBUrl    string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Draft store
	DraftStoreBackend string
	DraftTTL          time.Duration
	SessionIdle       time.Duration
	HydrationGrace    time.Duration
	// Identity
	SupabaseUrl       string
	SupabaseKey       string
	SupabaseJWTSecret string
	IdentityURL       string
	// Front-end
	FrontendURL  string
	CookieSecure bool
	// Rate Limiting Configuration
	RateLimitWindowSeconds         int
	RateLimitGlobalThreshold       int
	RateLimitIdentitySyncThreshold int
}

func LoadConfig() (*Config, error) {
	// Load .env file when present; production injects the environment directly
	_ = godotenv.Load()

	supabaseURL := strings.TrimRight(getEnv("SUPABASE_URL", ""), "/")

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DBUrl:    getEnv("DATABASE_URL", ""),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Draft store
		DraftStoreBackend: strings.ToLower(getEnv("DRAFT_STORE_BACKEND", BackendMemory)),
		DraftTTL:          time.Duration(getEnvInt("DRAFT_TTL_HOURS", 24*30)) * time.Hour,
		SessionIdle:       time.Duration(getEnvInt("SESSION_IDLE_MINUTES", 30)) * time.Minute,
		HydrationGrace:    time.Duration(getEnvInt("HYDRATION_GRACE_MS", 150)) * time.Millisecond,
		// Identity
		SupabaseUrl:       supabaseURL,
		SupabaseKey:       getEnv("SUPABASE_KEY", getEnv("SUPABASE_ANON_KEY", "")),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		IdentityURL:       strings.TrimRight(getEnv("IDENTITY_URL", defaultIdentityURL(supabaseURL)), "/"),
		// Front-end
		FrontendURL:  strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		CookieSecure: getEnvBool("COOKIE_SECURE", true),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:         getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold:       getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitIdentitySyncThreshold: getEnvInt("RATE_LIMIT_IDENTITY_SYNC_THRESHOLD", 10),
	}

	switch cfg.DraftStoreBackend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		logger.Log.Warn("Unknown DRAFT_STORE_BACKEND, using memory", "backend", cfg.DraftStoreBackend)
		cfg.DraftStoreBackend = BackendMemory
	}

	if cfg.DraftStoreBackend == BackendPostgres && cfg.DBUrl == "" {
		logger.Log.Warn("DATABASE_URL is missing. Postgres draft store will fail to connect.")
	}

	if cfg.UpstashRedisURL == "" {
		logger.Log.Warn("UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	if cfg.IdentityURL == "" {
		logger.Log.Warn("IDENTITY_URL not configured. Identity sync will fail.")
	}

	return cfg, nil
}

// RateLimitWindow is the shared rate limit window
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

// defaultIdentityURL points at the Supabase user endpoint when no dedicated
// identity service is configured.
func defaultIdentityURL(supabaseURL string) string {
	if supabaseURL == "" {
		return ""
	}
	return supabaseURL + "/functions/v1/me"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
