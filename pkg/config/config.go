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

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/sparkify-etl/pkg/apperrors"
	"github.com/ekaya-inc/sparkify-etl/pkg/logging"
)

// DefaultConfigPath is read when present; its absence is not an error.
const DefaultConfigPath = "config.yaml"

// Config holds all configuration for the loader.
// Configuration can come from a YAML file or environment variables.
// Environment variables always override YAML values.
// The database password must only come from the environment.
type Config struct {
	Env string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Source directories
	Data DataConfig `yaml:"data"`

	Log LogConfig `yaml:"log"`

	// ResetSchema drops and recreates every table before loading.
	ResetSchema bool `yaml:"reset_schema" env:"RESET_SCHEMA" env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host           string        `yaml:"host" env:"PGHOST" env-default:"127.0.0.1"`
	Port           int           `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string        `yaml:"user" env:"PGUSER" env-default:"student"`
	Password       string        `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string        `yaml:"database" env:"PGDATABASE" env-default:"sparkifydb"`
	SSLMode        string        `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"PGCONNECT_TIMEOUT" env-default:"10s"`
}

// DataConfig holds the roots of the two source trees.
type DataConfig struct {
	SongDir string `yaml:"song_dir" env:"SONG_DATA_DIR" env-default:"data/song_data"`
	LogDir  string `yaml:"log_dir" env:"LOG_DATA_DIR" env-default:"data/log_data"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"console"`
}

// Load reads configuration from path with environment variable overrides. A missing
// file at path is not an error: configuration then comes from the environment alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	_, statErr := os.Stat(path)
	switch {
	case path != "" && statErr == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	case path == "" || errors.Is(statErr, os.ErrNotExist):
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat %s: %w", path, statErr)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Database.Host == "" {
		problems = append(problems, "database host cannot be empty")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		problems = append(problems, fmt.Sprintf("database port must be between 1 and 65535, got: %d", c.Database.Port))
	}
	if c.Database.User == "" {
		problems = append(problems, "database user cannot be empty")
	}
	if c.Database.Database == "" {
		problems = append(problems, "database name cannot be empty")
	}
	if c.Database.ConnectTimeout < 0 {
		problems = append(problems, "database connect_timeout cannot be negative")
	}
	if c.Data.SongDir == "" {
		problems = append(problems, "song data directory cannot be empty")
	}
	if c.Data.LogDir == "" {
		problems = append(problems, "log data directory cannot be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		problems = append(problems, fmt.Sprintf("log level must be one of: debug, info, warn, error, got: %s", c.Log.Level))
	}
	if c.Log.Format != logging.FormatConsole && c.Log.Format != logging.FormatJSON {
		problems = append(problems, fmt.Sprintf("log format must be one of: console, json, got: %s", c.Log.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  - %s", apperrors.ErrInvalidConfiguration, strings.Join(problems, "\n  - "))
	}
	return nil
}

// ConnectionString returns a postgres:// URL. Every component is escaped, so
// passwords may hold spaces, quotes or backslashes.
func (c *DatabaseConfig) ConnectionString() string {
	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(ResolveHostForDocker(c.Host), strconv.Itoa(c.Port)),
		Path:   "/" + c.Database,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}

	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Dump renders the effective configuration as YAML. The password is never included.
func (c *Config) Dump() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(out), nil
}
