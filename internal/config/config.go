package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config carries every environment-driven knob the server needs.
type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	JWTSecret   []byte
	TokenTTL    time.Duration

	// CORSOrigins is the allow-list of browser origins.
	CORSOrigins []string

	// BillMonthlyGuard rejects paying the same bill twice in one calendar month.
	BillMonthlyGuard bool

	AdminKey string

	AuthRateMax  int
	WriteRateMax int
	RateWindow   time.Duration
}

const defaultTokenTTL = 7 * 24 * time.Hour

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:              strings.ToLower(getEnv("ENV", "dev")),
		Port:             getEnv("PORT", "3000"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		TokenTTL:         defaultTokenTTL,
		BillMonthlyGuard: getBool("BILL_MONTHLY_GUARD", true),
		AdminKey:         strings.TrimSpace(os.Getenv("ADMIN_KEY")),
		AuthRateMax:      getInt("RATE_LIMIT_AUTH_MAX", 10),
		WriteRateMax:     getInt("RATE_LIMIT_WRITE_MAX", 60),
		RateWindow:       time.Duration(getInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	cfg.JWTSecret = []byte(secret)

	if v := strings.TrimSpace(os.Getenv("TOKEN_TTL_HOURS")); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 {
			return nil, errors.Errorf("invalid TOKEN_TTL_HOURS %q", v)
		}
		cfg.TokenTTL = time.Duration(hours) * time.Hour
	}

	cfg.CORSOrigins = splitOrigins(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"))

	return cfg, nil
}

// Dev reports whether the process runs with the local development conveniences
// (install, test-db, reset-demo routes) enabled.
func (c *Config) Dev() bool {
	return c.Env == "dev"
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p), "/"))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
