package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/finance_test")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.True(t, cfg.Dev())
	assert.True(t, cfg.BillMonthlyGuard)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/finance_test")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestSplitOrigins(t *testing.T) {
	got := splitOrigins("https://app.example.com/, http://localhost:5173 ,,")
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:5173"}, got)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/finance_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENV", "production")
	t.Setenv("BILL_MONTHLY_GUARD", "false")
	t.Setenv("TOKEN_TTL_HOURS", "24")
	t.Setenv("RATE_LIMIT_AUTH_MAX", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Dev())
	assert.False(t, cfg.BillMonthlyGuard)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5, cfg.AuthRateMax)
}
