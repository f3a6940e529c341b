package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

var defaultCORSOrigins = []string{
	"http://localhost:5173",
	"https://legendary-dollop-6q7jp4qvqjv355gx-5173.app.github.dev",
	"https://simula-invest-full-stack-jbpj.vercel.app",
}

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port             string
	StorageBackend   string
	DatabaseURL      string
	DBMaxConns       int32
	DBConnectTimeout time.Duration
	JWTSecret        string
	JWTIssuer        string
	JWTTTL           time.Duration
	BcryptCost       int
	CORSOrigins      []string
	LogLevel         string
	LogFormat        string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:             fallback(os.Getenv("PORT"), "3000"),
		StorageBackend:   strings.ToLower(fallback(os.Getenv("STORAGE_BACKEND"), StoragePostgres)),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:       int32(positiveInt(os.Getenv("DB_MAX_CONNS"), 5)),
		DBConnectTimeout: duration(os.Getenv("DB_CONNECT_TIMEOUT"), 3*time.Second),
		JWTSecret:        strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:        fallback(os.Getenv("JWT_ISSUER"), "simula-invest"),
		JWTTTL:           time.Duration(positiveInt(os.Getenv("JWT_TTL_MINUTES"), 60)) * time.Minute,
		BcryptCost:       positiveInt(os.Getenv("BCRYPT_COST"), 10),
		LogLevel:         fallback(os.Getenv("LOG_LEVEL"), "info"),
		LogFormat:        fallback(os.Getenv("LOG_FORMAT"), "text"),
	}

	if origins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); origins != "" {
		cfg.CORSOrigins = parseCSV(origins)
	} else {
		cfg.CORSOrigins = append([]string(nil), defaultCORSOrigins...)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = postgresURLFromParts()
	}

	switch cfg.StorageBackend {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL or POSTGRES_HOST is required")
		}
	case StorageMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// postgresURLFromParts builds a connection URL from the discrete POSTGRES_*
// variables. It returns "" when POSTGRES_HOST is unset.
func postgresURLFromParts() string {
	host := strings.TrimSpace(os.Getenv("POSTGRES_HOST"))
	if host == "" {
		return ""
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, fallback(os.Getenv("POSTGRES_PORT"), "5432")),
		Path:   "/" + strings.TrimSpace(os.Getenv("POSTGRES_DATABASE")),
	}
	if user := strings.TrimSpace(os.Getenv("POSTGRES_USER")); user != "" {
		if pass, ok := os.LookupEnv("POSTGRES_PASSWORD"); ok {
			u.User = url.UserPassword(user, pass)
		} else {
			u.User = url.User(user)
		}
	}
	return u.String()
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func positiveInt(value string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func duration(value string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
