package config_test

import (
	"testing"
	"time"

	"github.com/paxinfy/backend/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 40*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TOKEN_TTL", "20m")
	t.Setenv("PORT", "9090")
	t.Setenv("BCRYPT_COST", "12")

	cfg := config.Load()

	assert.Equal(t, 20*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestLoadIgnoresMalformedDurations(t *testing.T) {
	t.Setenv("TOKEN_TTL", "soon")

	cfg := config.Load()
	assert.Equal(t, 40*time.Minute, cfg.TokenTTL)
}

func TestDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "accounts")

	cfg := config.Load()
	assert.Equal(t,
		"host=db.internal user=svc password=pw dbname=accounts port=5432 sslmode=disable TimeZone=UTC",
		cfg.DSN())
}
