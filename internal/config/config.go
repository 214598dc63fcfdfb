package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Addr    string `env:"ADDR" envDefault:":8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	// DBPath is the sqlite database file. Use ":memory:" for an ephemeral store.
	DBPath string `env:"DB_PATH" envDefault:"data/projecthub.db"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"default-secret-key-change-me"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"168h"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// External inference server for AI task dispatch. Empty disables dispatch.
	InferenceURL     string        `env:"INFERENCE_URL"`
	InferenceTimeout time.Duration `env:"INFERENCE_TIMEOUT" envDefault:"30s"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GithubClientID     string `env:"GITHUB_CLIENT_ID"`
	GithubClientSecret string `env:"GITHUB_CLIENT_SECRET"`

	// OAuthRedirectBase is the externally visible base URL used to build
	// provider callback URLs, e.g. https://app.example.com
	OAuthRedirectBase string `env:"OAUTH_REDIRECT_BASE" envDefault:"http://localhost:8080"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
