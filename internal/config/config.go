package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"profilecard/internal/validation"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the process settings read from the environment.
type Config struct {
	Port          string
	DatabaseURL   string
	DatabaseName  string
	RabbitMQURL   string
	PublicBaseURL string
	MaxImageBytes int
	BodyLimit     int
	LogLevel      string
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromViper(viper.New())
}

// FromViper applies defaults and environment bindings to v and reads the result.
func FromViper(v *viper.Viper) (Config, error) {
	v.SetDefault("PORT", "5000")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "profilecards")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:5173")
	v.SetDefault("MAX_IMAGE_BYTES", validation.DefaultMaxImageBytes)
	v.SetDefault("BODY_LIMIT", 16<<20)
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()
	// MONGO_URI is the historical name of the connection string.
	if err := v.BindEnv("DATABASE_URL", "DATABASE_URL", "MONGO_URI"); err != nil {
		return Config{}, fmt.Errorf("failed to bind DATABASE_URL: %w", err)
	}

	cfg := Config{
		Port:          strings.TrimPrefix(v.GetString("PORT"), ":"),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		DatabaseName:  v.GetString("DATABASE_NAME"),
		RabbitMQURL:   v.GetString("RABBITMQ_URL"),
		PublicBaseURL: v.GetString("PUBLIC_BASE_URL"),
		MaxImageBytes: v.GetInt("MAX_IMAGE_BYTES"),
		BodyLimit:     v.GetInt("BODY_LIMIT"),
		LogLevel:      strings.ToLower(v.GetString("LOG_LEVEL")),
	}
	if cfg.MaxImageBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_IMAGE_BYTES must be positive, got %d", cfg.MaxImageBytes)
	}
	if cfg.BodyLimit < cfg.MaxImageBytes {
		return Config{}, fmt.Errorf("BODY_LIMIT (%d) must not be below MAX_IMAGE_BYTES (%d)", cfg.BodyLimit, cfg.MaxImageBytes)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }
