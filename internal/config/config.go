// Package config provides configuration loading for the hotelbilling server.
//
// Values come from three layers, later ones winning: built-in defaults, an
// optional YAML file, then environment variables (a .env file in the working
// directory is loaded into the environment first).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultJWTSecret is only fit for local development.
const DefaultJWTSecret = "hotelbilling-dev-secret"

// Config represents the complete server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Auth   AuthConfig   `yaml:"auth"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the listeners.
type ServerConfig struct {
	// ListenAddr serves the RPC API (default :8080).
	ListenAddr string `yaml:"listen_addr"`
	// MetricsAddr serves /metrics and /healthz. Empty disables it.
	MetricsAddr string `yaml:"metrics_addr"`
	// ShutdownTimeout bounds graceful shutdown, including the final flush.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig configures persistence.
type StoreConfig struct {
	// Driver is one of memory, sqlite, postgres.
	Driver string `yaml:"driver"`
	// Path is the sqlite database file.
	Path string `yaml:"path"`
	// DSN is the postgres connection string.
	DSN string `yaml:"dsn"`
	// WriteAttempts is how many times a snapshot write is tried.
	WriteAttempts int `yaml:"write_attempts"`
	// WriteBackoff is the wait between attempts, multiplied by the attempt number.
	WriteBackoff time.Duration `yaml:"write_backoff"`
	// WriteTimeout bounds a single write.
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// AuthConfig configures session tokens and password hashing.
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenDuration time.Duration `yaml:"token_duration"`
	PasswordCost  int           `yaml:"password_cost"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MetricsAddr:     ":9090",
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Driver:        DriverSQLite,
			Path:          "./data/hotelbilling.db",
			WriteAttempts: 3,
			WriteBackoff:  100 * time.Millisecond,
			WriteTimeout:  5 * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:     DefaultJWTSecret,
			TokenDuration: 12 * time.Hour,
			PasswordCost:  10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is not empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.ListenAddr = getEnv("LISTEN_ADDR", c.Server.ListenAddr)
	c.Server.MetricsAddr = getEnv("METRICS_ADDR", c.Server.MetricsAddr)
	c.Store.Driver = getEnv("STORE_DRIVER", c.Store.Driver)
	c.Store.Path = getEnv("DB_PATH", c.Store.Path)
	c.Store.DSN = getEnv("DATABASE_URL", c.Store.DSN)
	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)

	if v := os.Getenv("TOKEN_DURATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_DURATION: %w", err)
		}
		c.Auth.TokenDuration = d
	}
	if v := os.Getenv("PASSWORD_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PASSWORD_COST: %w", err)
		}
		c.Auth.PasswordCost = n
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("store.driver must be one of %s, %s, %s, got %q",
			DriverMemory, DriverSQLite, DriverPostgres, c.Store.Driver)
	}
	if c.Store.WriteAttempts < 1 {
		return fmt.Errorf("store.write_attempts must be at least 1")
	}
	if c.Store.WriteBackoff < 0 || c.Store.WriteTimeout <= 0 {
		return fmt.Errorf("store.write_backoff must not be negative and store.write_timeout must be positive")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Auth.TokenDuration <= 0 {
		return fmt.Errorf("auth.token_duration must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
