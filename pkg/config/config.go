package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the admin console, read from the environment
// (optionally seeded from a .env file).
type Config struct {
	App      App
	HTTP     HTTP
	DB       DB
	JWT      JWT
	Redis    Redis
	Grid     Grid
	Security Security
	Log      Log
}

type App struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	Name        string `env:"APP_NAME" envDefault:"Admin Console API"`
	SeedOnStart bool   `env:"SEED_ON_START" envDefault:"false"`
}

type HTTP struct {
	Port        string `env:"PORT" envDefault:"5000"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
}

type DB struct {
	URL          string        `env:"DATABASE_URL"`
	Host         string        `env:"DB_HOST" envDefault:"localhost"`
	Port         string        `env:"DB_PORT" envDefault:"5432"`
	User         string        `env:"DB_USER" envDefault:"postgres"`
	Password     string        `env:"DB_PASSWORD"`
	Name         string        `env:"DB_NAME" envDefault:"admin_console"`
	SSLMode      string        `env:"DB_SSLMODE" envDefault:"disable"`
	TimeZone     string        `env:"DB_TIMEZONE" envDefault:"UTC"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"100"`
	ConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
}

// DSN returns DATABASE_URL when set, otherwise a keyword/value DSN built from the parts.
func (d DB) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.TimeZone,
	)
}

type JWT struct {
	Secret            string `env:"JWT_SECRET" envDefault:"jwt_secret"`
	ExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES" envDefault:"60"`
	Issuer            string `env:"JWT_ISSUER" envDefault:"go-admin-console"`
}

// TTL is the lifetime of issued tokens.
func (j JWT) TTL() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type Redis struct {
	Addr               string        `env:"REDIS_ADDR"`
	Password           string        `env:"REDIS_PASSWORD"`
	DB                 int           `env:"REDIS_DB" envDefault:"0"`
	PermissionCacheTTL time.Duration `env:"PERMISSION_CACHE_TTL" envDefault:"5m"`
}

type Grid struct {
	DefaultLimit int `env:"GRID_DEFAULT_LIMIT" envDefault:"10"`
	MaxLimit     int `env:"GRID_MAX_LIMIT" envDefault:"100"`
}

type Security struct {
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

type Log struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// IsProduction reports whether the app runs with production semantics
// (generic 400 messages, JSON logs).
func (c Config) IsProduction() bool {
	return c.App.Env == "production" || c.App.Env == "prod"
}

// Load reads an optional .env file and parses the environment into Config.
func Load(envPath string) (Config, error) {
	if envPath == "" {
		envPath = ".env"
	}
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envPath, err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.JWT.ExpirationMinutes <= 0 {
		return Config{}, errors.New("JWT_EXPIRATION_MINUTES must be positive")
	}
	if cfg.Grid.DefaultLimit <= 0 || cfg.Grid.MaxLimit < cfg.Grid.DefaultLimit {
		return Config{}, errors.New("GRID_DEFAULT_LIMIT must be positive and not exceed GRID_MAX_LIMIT")
	}
	return cfg, nil
}
