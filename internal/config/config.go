package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when neither an explicit path nor CONFIG_PATH is given
const DefaultPath = "config/config.yml"

type AppConfig struct {
	Port    int    `yaml:"port" env:"APP_PORT"`
	GinMode string `yaml:"gin_mode" env:"GIN_MODE"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER"`
	DSN    string `yaml:"dsn" env:"DATABASE_DSN"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

type JWTConfig struct {
	Secret    string        `yaml:"secret" env:"JWT_SECRET"`
	Issuer    string        `yaml:"issuer" env:"JWT_ISSUER"`
	AccessTTL time.Duration `yaml:"access_ttl" env:"JWT_ACCESS_TTL"`
}

type LoginConfig struct {
	MaxAttempts   int           `yaml:"max_attempts" env:"LOGIN_MAX_ATTEMPTS"`
	LockoutWindow time.Duration `yaml:"lockout_window" env:"LOGIN_LOCKOUT_WINDOW"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

type PaginationConfig struct {
	MaxLimit int `yaml:"max_limit" env:"PAGE_MAX_LIMIT"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `yaml:"auth_token" env:"TWILIO_AUTH_TOKEN"`
	FromNumber string `yaml:"from_number" env:"TWILIO_FROM_NUMBER"`
}

// Config is the process configuration. Values come from the YAML file first,
// then from environment variables, then from defaults for whatever is still unset.
type Config struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	Login      LoginConfig      `yaml:"login"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Pagination PaginationConfig `yaml:"pagination"`
	Twilio     TwilioConfig     `yaml:"twilio"`
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.App.Port)
}

// Load builds the configuration. An empty path falls back to CONFIG_PATH and
// then DefaultPath; only an explicitly named file is required to exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env: %w", err)
	}

	required := true
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
		required = false
	}

	cfg := &Config{}
	if err := loadConfigFile(path, cfg); err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not parse environment: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file at %s: %w", path, err)
	}
	if err := yaml.Unmarshal(bytes, cfg); err != nil {
		return fmt.Errorf("could not parse config yaml: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Port == 0 {
		c.App.Port = 8000
	}
	if c.App.GinMode == "" {
		c.App.GinMode = "release"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = "kpa_forms.db"
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "kpaforms"
	}
	if c.JWT.AccessTTL == 0 {
		c.JWT.AccessTTL = 30 * time.Minute
	}
	if c.Login.MaxAttempts == 0 {
		c.Login.MaxAttempts = 5
	}
	if c.Login.LockoutWindow == 0 {
		c.Login.LockoutWindow = 15 * time.Minute
	}
	if c.Pagination.MaxLimit == 0 {
		c.Pagination.MaxLimit = 100
	}
}

// Validate checks the settings the process cannot start without
func (c *Config) Validate() error {
	err := validation.Errors{
		"app": validation.ValidateStruct(&c.App,
			validation.Field(&c.App.Port, validation.Required, validation.Min(1), validation.Max(65535)),
			validation.Field(&c.App.GinMode, validation.In("debug", "release", "test")),
		),
		"database": validation.ValidateStruct(&c.Database,
			validation.Field(&c.Database.Driver, validation.In("sqlite", "postgres")),
			validation.Field(&c.Database.DSN, validation.Required),
		),
		"jwt": validation.ValidateStruct(&c.JWT,
			validation.Field(&c.JWT.Secret, validation.Required.Error("JWT_SECRET must be set")),
			validation.Field(&c.JWT.AccessTTL, validation.Min(time.Second)),
		),
		"login": validation.ValidateStruct(&c.Login,
			validation.Field(&c.Login.LockoutWindow, validation.Min(time.Second)),
		),
		"rate_limit": validation.ValidateStruct(&c.RateLimit,
			validation.Field(&c.RateLimit.RPS, validation.Min(0.0)),
			validation.Field(&c.RateLimit.Burst, validation.Min(0)),
		),
		"pagination": validation.ValidateStruct(&c.Pagination,
			validation.Field(&c.Pagination.MaxLimit, validation.Min(1)),
		),
	}.Filter()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
