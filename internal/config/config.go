package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultJWTTTL       = "24h"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultDatabaseURL  = "sparkd.db"
	defaultUploadsDir   = "./uploads"
	defaultStaticBase   = "/static"
	defaultOpenAIBase   = "https://api.openai.com/v1"
	defaultFreeCredits  = "3"
	defaultMaxThemes    = "5"
	defaultMaxFileSize  = "10485760" // 10MB
	defaultRequestDelay = "1s"
	defaultVariations   = "3"
)

type Config struct {
	AppEnv string

	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
	FreeCredits int64

	OpenAIAPIKey  string
	OpenAIBaseURL string
	AnalysisModel string
	EditModel     string

	StripeSecretKey     string
	StripeWebhookSecret string
	PublicBaseURL       string

	UploadsDir string
	StaticBase string

	MaxThemes    int
	MaxFileSize  int64
	RequestDelay time.Duration
	Variations   int
}

// Load reads configuration from the environment, with a best-effort .env file
// for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.FreeCredits, err = parseInt64Env("FREE_CREDITS", defaultFreeCredits)
	if err != nil {
		return nil, err
	}

	cfg.OpenAIAPIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	cfg.OpenAIBaseURL = strings.TrimSpace(getEnv("OPENAI_BASE_URL", defaultOpenAIBase))
	cfg.AnalysisModel = strings.TrimSpace(getEnv("OPENAI_ANALYSIS_MODEL", "gpt-4o"))
	cfg.EditModel = strings.TrimSpace(getEnv("OPENAI_EDIT_MODEL", "gpt-image-1"))

	cfg.StripeSecretKey = strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY"))
	cfg.StripeWebhookSecret = strings.TrimSpace(os.Getenv("STRIPE_WEBHOOK_SECRET"))
	cfg.PublicBaseURL = strings.TrimRight(strings.TrimSpace(getEnv("PUBLIC_BASE_URL", "http://localhost:8080")), "/")

	cfg.UploadsDir = strings.TrimSpace(getEnv("UPLOADS_DIR", defaultUploadsDir))
	cfg.StaticBase = strings.TrimSpace(getEnv("STATIC_BASE", defaultStaticBase))

	maxThemes, err := parseInt64Env("MAX_THEMES", defaultMaxThemes)
	if err != nil {
		return nil, err
	}
	cfg.MaxThemes = int(maxThemes)

	cfg.MaxFileSize, err = parseInt64Env("MAX_FILE_SIZE", defaultMaxFileSize)
	if err != nil {
		return nil, err
	}

	cfg.RequestDelay, err = parseDurationEnv("REQUEST_DELAY", defaultRequestDelay)
	if err != nil {
		return nil, err
	}

	variations, err := parseInt64Env("EDIT_VARIATIONS", defaultVariations)
	if err != nil {
		return nil, err
	}
	cfg.Variations = int(variations)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.MaxThemes <= 0 {
		return fmt.Errorf("MAX_THEMES must be > 0")
	}
	if cfg.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be > 0")
	}
	if cfg.FreeCredits < 0 {
		return fmt.Errorf("FREE_CREDITS must be >= 0")
	}
	if cfg.RequestDelay < 0 {
		return fmt.Errorf("REQUEST_DELAY must be >= 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.OpenAIAPIKey == "" {
			return fmt.Errorf("in prod/release OPENAI_API_KEY must be set")
		}
		if cfg.StripeSecretKey == "" || cfg.StripeWebhookSecret == "" {
			return fmt.Errorf("in prod/release STRIPE_SECRET_KEY and STRIPE_WEBHOOK_SECRET must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseInt64Env(name, fallback string) (int64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
