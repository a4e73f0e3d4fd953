package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultPort         = "8080"
	defaultDatabaseURL  = "flatguide.db"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTTTL       = "24h"
	defaultTimeTimeout  = "3s"
	defaultAdminUser    = "operator"
	defaultTimeURL      = "https://worldtimeapi.org/api/timezone/America/Sao_Paulo"
	defaultGlobalAlert  = ""
	defaultAMQPURL      = ""
	defaultAdminPwdHash = "" // bcrypt hash; login disabled when empty
)

// Config holds the runtime settings of the API process.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	AdminUsername     string
	AdminPasswordHash string

	TimeURL          string
	TimeFetchTimeout time.Duration

	AMQPURL         string
	GlobalAlertText string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.AdminUsername = strings.TrimSpace(getEnv("ADMIN_USERNAME", defaultAdminUser))
	cfg.AdminPasswordHash = strings.TrimSpace(getEnv("ADMIN_PASSWORD_HASH", defaultAdminPwdHash))
	cfg.TimeURL = getEnv("TIME_API_URL", defaultTimeURL)
	cfg.AMQPURL = getEnv("AMQP_URL", defaultAMQPURL)
	cfg.GlobalAlertText = getEnv("GLOBAL_ALERT_TEXT", defaultGlobalAlert)

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.TimeFetchTimeout, err = parseDurationEnv("TIME_FETCH_TIMEOUT", defaultTimeTimeout)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config: env=%s port=%s time_api=%s", cfg.AppEnv, cfg.Port, cfg.TimeURL)

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.TimeFetchTimeout <= 0 {
		return fmt.Errorf("TIME_FETCH_TIMEOUT must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.AdminPasswordHash == "" {
			return fmt.Errorf("in prod/release ADMIN_PASSWORD_HASH must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
