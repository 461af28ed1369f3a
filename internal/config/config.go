package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultHTTPPort          = "8080"
	defaultDatabaseURL       = "freelahub.db"
	defaultJWTSecret         = "change-me-jwt-secret"
	defaultJWTTTL            = "24h"
	defaultBcryptCost        = "12"
	defaultRedisURL          = "redis://localhost:6379/0"
	defaultResetTokenTTL     = "30m"
	defaultSMTPPort          = "587"
	defaultSMTPFrom          = "FreelaHub <no-reply@freelahub.local>"
	defaultHourlyRate        = "50"
	defaultReadTimeout       = "15s"
	defaultWriteTimeout      = "15s"
	defaultShutdownTimeout   = "10s"
	defaultFrontendResetLink = "http://localhost:5173/redefinir-senha"
)

type Config struct {
	AppEnv   string
	HTTP     HTTPConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	Profile  ProfileConfig
}

type HTTPConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	// MetricsToken, when set, is required as a bearer token on /metrics.
	MetricsToken string
}

type DatabaseConfig struct {
	URL string
}

// IsPostgres reports whether URL points at Postgres rather than a SQLite file.
func (c DatabaseConfig) IsPostgres() bool {
	return strings.HasPrefix(c.URL, "postgres://") || strings.HasPrefix(c.URL, "postgresql://")
}

type AuthConfig struct {
	JWTSecret     string
	JWTTTL        time.Duration
	BcryptCost    int
	ResetTokenTTL time.Duration
	ResetLinkBase string
}

type RedisConfig struct {
	URL string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled is false when no SMTP host is configured; mail is then only logged.
func (c SMTPConfig) Enabled() bool { return c.Host != "" }

type ProfileConfig struct {
	DefaultHourlyRate float64
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTP.Port = strings.TrimSpace(getEnv("HTTP_PORT", defaultHTTPPort))
	cfg.HTTP.AllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	cfg.HTTP.MetricsToken = strings.TrimSpace(os.Getenv("METRICS_TOKEN"))
	cfg.Database.URL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.Auth.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.Auth.ResetLinkBase = strings.TrimSpace(getEnv("RESET_LINK_BASE", defaultFrontendResetLink))
	cfg.Redis.URL = strings.TrimSpace(getEnv("REDIS_URL", defaultRedisURL))
	cfg.SMTP.Host = strings.TrimSpace(os.Getenv("SMTP_HOST"))
	cfg.SMTP.Username = os.Getenv("SMTP_USERNAME")
	cfg.SMTP.Password = os.Getenv("SMTP_PASSWORD")
	cfg.SMTP.From = getEnv("SMTP_FROM", defaultSMTPFrom)

	var err error
	if cfg.HTTP.ReadTimeout, err = parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout); err != nil {
		return nil, err
	}
	if cfg.HTTP.WriteTimeout, err = parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout); err != nil {
		return nil, err
	}
	if cfg.HTTP.ShutdownTimeout, err = parseDurationEnv("HTTP_SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return nil, err
	}
	if cfg.Auth.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.Auth.ResetTokenTTL, err = parseDurationEnv("RESET_TOKEN_TTL", defaultResetTokenTTL); err != nil {
		return nil, err
	}
	if cfg.Auth.BcryptCost, err = parseIntEnv("BCRYPT_COST", defaultBcryptCost); err != nil {
		return nil, err
	}
	if cfg.SMTP.Port, err = parseIntEnv("SMTP_PORT", defaultSMTPPort); err != nil {
		return nil, err
	}
	if cfg.Profile.DefaultHourlyRate, err = parseFloatEnv("DEFAULT_HOURLY_RATE", defaultHourlyRate); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.HTTP.Port == "" {
		return fmt.Errorf("HTTP_PORT must not be empty")
	}
	if cfg.HTTP.ReadTimeout <= 0 || cfg.HTTP.WriteTimeout <= 0 || cfg.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP timeouts must be > 0")
	}
	if cfg.Auth.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.Auth.ResetTokenTTL <= 0 {
		return fmt.Errorf("RESET_TOKEN_TTL must be > 0")
	}
	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.Profile.DefaultHourlyRate < 0 {
		return fmt.Errorf("DEFAULT_HOURLY_RATE must be >= 0")
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}

	if IsProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.Auth.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !cfg.Database.IsPostgres() {
			return fmt.Errorf("in prod/release DATABASE_URL must be a postgres DSN")
		}
		if cfg.Auth.BcryptCost < 12 {
			return fmt.Errorf("in prod/release BCRYPT_COST must be >= 12")
		}
	}

	return nil
}

func IsProdLike(env string) bool {
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

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseFloatEnv(name, fallback string) (float64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return f, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
