package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	// PeriodMode is "strict" or "lenient"; see the period guard.
	PeriodMode string

	ReconcileInterval         time.Duration
	ReconcileThresholdMinutes int
	RedisURL                  string

	RateLimit          string
	CORSAllowedOrigins []string

	DuplicateResumeAttempts int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "marketplace-ledger")
	v.SetDefault("PERIOD_MODE", "strict")
	v.SetDefault("RECONCILE_INTERVAL", "5m")
	v.SetDefault("RECONCILE_THRESHOLD_MINUTES", 15)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DUPLICATE_RESUME_ATTEMPTS", 8)

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:               v.GetString("PGSQL_URL"),
		Port:                      v.GetString("PORT"),
		IsProduction:              v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:             v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:            v.GetString("MIGRATIONS_PATH"),
		JWTSecret:                 v.GetString("JWT_SECRET"),
		JWTIssuer:                 v.GetString("JWT_ISSUER"),
		PeriodMode:                strings.ToLower(strings.TrimSpace(v.GetString("PERIOD_MODE"))),
		ReconcileThresholdMinutes: v.GetInt("RECONCILE_THRESHOLD_MINUTES"),
		RedisURL:                  v.GetString("REDIS_URL"),
		RateLimit:                 v.GetString("RATE_LIMIT"),
		DuplicateResumeAttempts:   v.GetInt("DUPLICATE_RESUME_ATTEMPTS"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.PeriodMode != "strict" && cfg.PeriodMode != "lenient" {
		return nil, fmt.Errorf("invalid PERIOD_MODE %q: must be strict or lenient", cfg.PeriodMode)
	}

	interval, err := time.ParseDuration(v.GetString("RECONCILE_INTERVAL"))
	if err != nil || interval <= 0 {
		interval = 5 * time.Minute
		log.Printf("Warning: Invalid value for RECONCILE_INTERVAL. Defaulting to %s.\n", interval)
	}
	cfg.ReconcileInterval = interval

	if cfg.ReconcileThresholdMinutes < 0 {
		return nil, fmt.Errorf("invalid RECONCILE_THRESHOLD_MINUTES %d", cfg.ReconcileThresholdMinutes)
	}

	for _, o := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	return cfg, nil
}
