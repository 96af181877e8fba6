package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the whole process configuration, read once at startup and
// injected into components. Nothing else in the tree reads the environment.
type Config struct {
	Env  string `env:"ENV" env-default:"development"`
	Port string `env:"PORT" env-default:"4000"`

	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`

	// JWTSecret signs identity tokens. TokenTTL is the fixed token
	// lifetime; 72h matches the 3-day expiry the client expects.
	JWTSecret string        `env:"JWT_PRIVATE_KEY" env-required:"true"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"72h"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text"`

	DBMaxOpen     int           `env:"DB_MAX_OPEN" env-default:"25"`
	DBMaxIdle     int           `env:"DB_MAX_IDLE" env-default:"25"`
	DBMaxLifetime time.Duration `env:"DB_MAX_LIFETIME" env-default:"300s"`
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
