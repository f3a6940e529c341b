package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedVars = []string{
	"PORT", "STORAGE_BACKEND", "DATABASE_URL", "DB_MAX_CONNS", "DB_CONNECT_TIMEOUT",
	"JWT_SECRET", "JWT_ISSUER", "JWT_TTL_MINUTES", "BCRYPT_COST", "CORS_ALLOWED_ORIGINS",
	"LOG_LEVEL", "LOG_FORMAT", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER",
	"POSTGRES_PASSWORD", "POSTGRES_DATABASE",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedVars {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/app")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.HTTPAddress())
	assert.Equal(t, StoragePostgres, cfg.StorageBackend)
	assert.Equal(t, int32(5), cfg.DBMaxConns)
	assert.Equal(t, 3*time.Second, cfg.DBConnectTimeout)
	assert.Equal(t, "simula-invest", cfg.JWTIssuer)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, defaultCORSOrigins, cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("DB_MAX_CONNS", "12")
	t.Setenv("DB_CONNECT_TIMEOUT", "750ms")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example ")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, int32(12), cfg.DBMaxConns)
	assert.Equal(t, 750*time.Millisecond, cfg.DBConnectTimeout)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_MAX_CONNS", "-3")
	t.Setenv("JWT_TTL_MINUTES", "abc")
	t.Setenv("DB_CONNECT_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int32(5), cfg.DBMaxConns)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 3*time.Second, cfg.DBConnectTimeout)
}

func TestLoad_BuildsURLFromParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("POSTGRES_USER", "sim")
	t.Setenv("POSTGRES_PASSWORD", "p@ss")
	t.Setenv("POSTGRES_DATABASE", "simula")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://sim:p%40ss@db:6543/simula", cfg.DatabaseURL)
}

func TestLoad_RequiredValues(t *testing.T) {
	t.Run("database url for postgres backend", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("JWT_SECRET", "s3cret")
		_, err := Load()
		assert.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("memory backend needs no database", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE_BACKEND", "memory")
		t.Setenv("JWT_SECRET", "s3cret")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, StorageMemory, cfg.StorageBackend)
	})

	t.Run("jwt secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://localhost/app")
		_, err := Load()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("unknown backend", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE_BACKEND", "mongo")
		t.Setenv("JWT_SECRET", "s3cret")
		_, err := Load()
		assert.ErrorContains(t, err, "STORAGE_BACKEND")
	})
}
