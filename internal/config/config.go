package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// DevSecretKey is only acceptable outside production.
const DevSecretKey = "dev-only-secret"

// ErrMissingSecret is returned when production runs without SECRET_KEY.
var ErrMissingSecret = errors.New("SECRET_KEY must be set in production")

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	DatabasePath   string
	SecretKey      string
	Env            string
	SessionTTL     time.Duration
	BcryptCost     int
	AllowedOrigins []string
	LogLevel       zerolog.Level
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file, then environment variables, applying defaults.
func Load() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("port", 8080)
	v.SetDefault("database_path", "./app.db")
	v.SetDefault("app_env", "development")
	v.SetDefault("session_ttl", "24h")
	v.SetDefault("bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("cors_allowed_origins", "http://localhost:3000")
	v.SetDefault("log_level", "info")
	v.AutomaticEnv()

	port, err := parseInt(v, "port")
	if err != nil {
		return nil, err
	}

	ttl, err := time.ParseDuration(v.GetString("session_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL: must be positive")
	}

	cost, err := parseInt(v, "bcrypt_cost")
	if err != nil {
		return nil, err
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("invalid BCRYPT_COST %d: must be between %d and %d", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	level, err := zerolog.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		ServerPort:     port,
		DatabasePath:   v.GetString("database_path"),
		SecretKey:      v.GetString("secret_key"),
		Env:            v.GetString("app_env"),
		SessionTTL:     ttl,
		BcryptCost:     cost,
		AllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		LogLevel:       level,
	}

	if cfg.SecretKey == "" {
		if cfg.IsProduction() {
			return nil, ErrMissingSecret
		}
		cfg.SecretKey = DevSecretKey
	}

	return cfg, nil
}

func parseInt(v *viper.Viper, key string) (int, error) {
	raw := v.GetString(key)
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToUpper(key), raw, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
