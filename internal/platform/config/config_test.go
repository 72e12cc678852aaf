package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PERIOD_MODE", "")
	t.Setenv("RECONCILE_INTERVAL", "")
	t.Setenv("RATE_LIMIT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "strict", cfg.PeriodMode)
	assert.Equal(t, 5*time.Minute, cfg.ReconcileInterval)
	assert.Equal(t, 15, cfg.ReconcileThresholdMinutes)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, 8, cfg.DuplicateResumeAttempts)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PERIOD_MODE", "Lenient")
	t.Setenv("RECONCILE_INTERVAL", "30s")
	t.Setenv("RECONCILE_THRESHOLD_MINUTES", "2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "lenient", cfg.PeriodMode)
	assert.Equal(t, 30*time.Second, cfg.ReconcileInterval)
	assert.Equal(t, 2, cfg.ReconcileThresholdMinutes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_InvalidPeriodMode(t *testing.T) {
	t.Setenv("PERIOD_MODE", "sometimes")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "PERIOD_MODE")
}
