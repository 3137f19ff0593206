package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration, parsed from the environment.
type Config struct {
	ServerPort   int           `env:"PORT" envDefault:"8080"`
	DatabasePath string        `env:"DATABASE_PATH" envDefault:"./devfeed.db"`
	JWTSecret    string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTTTL       time.Duration `env:"JWT_TTL" envDefault:"24h"`
	DigestCron   string        `env:"DIGEST_CRON" envDefault:"0 * * * *"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigin   string        `env:"CORS_ORIGIN" envDefault:"http://localhost:4200"`
}

// Load parses the configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
