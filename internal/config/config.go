package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultTablePath   = "value_function.json"
	DefaultTableSource = "file"
)

// SolverConfig holds the value iteration settings.
type SolverConfig struct {
	Discount  float32
	Tolerance float32
	MaxSweeps int
	Workers   int
	Seed      uint64
}

// LoadSolverConfig loads solver settings from environment variables, falling back to defaults.
// Out of range settings log a fatal error.
func LoadSolverConfig() *SolverConfig {
	cfg := readSolverConfig()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid solver configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

func readSolverConfig() *SolverConfig {
	return &SolverConfig{
		Discount:  getEnvFloat32("MINITHELLO_DISCOUNT", 0.9),
		Tolerance: getEnvFloat32("MINITHELLO_TOLERANCE", 0.01),
		MaxSweeps: getEnvInt("MINITHELLO_MAX_SWEEPS", 1000),
		Workers:   getEnvInt("MINITHELLO_WORKERS", 1),
		Seed:      getEnvUint64("MINITHELLO_SEED", 0),
	}
}

// Validate checks that the settings describe a run that can converge.
func (c *SolverConfig) Validate() error {
	var errs []error

	if c.Discount <= 0 || c.Discount >= 1 {
		errs = append(errs, fmt.Errorf("MINITHELLO_DISCOUNT must be between 0 and 1 exclusive, got %g", c.Discount))
	}
	if c.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("MINITHELLO_TOLERANCE must be positive, got %g", c.Tolerance))
	}
	if c.MaxSweeps <= 0 {
		errs = append(errs, fmt.Errorf("MINITHELLO_MAX_SWEEPS must be positive, got %d", c.MaxSweeps))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("MINITHELLO_WORKERS must be positive, got %d", c.Workers))
	}

	return errors.Join(errs...)
}

// StoreConfig holds the locations where solved tables are kept. Empty URLs disable a store.
type StoreConfig struct {
	TablePath   string
	TableSource string
	PostgresURL string
	RedisURL    string
}

// LoadStoreConfig loads store locations from environment variables.
func LoadStoreConfig() *StoreConfig {
	return &StoreConfig{
		TablePath:   getEnvDefault("MINITHELLO_TABLE_PATH", DefaultTablePath),
		TableSource: getEnvDefault("MINITHELLO_TABLE_SOURCE", DefaultTableSource),
		PostgresURL: os.Getenv("MINITHELLO_POSTGRES_URL"),
		RedisURL:    os.Getenv("MINITHELLO_REDIS_URL"),
	}
}

// ServerConfig holds all configuration values of the query server.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	BasicAuthUsername string
	BasicAuthPassword string
	Token             string
	Store             StoreConfig
	Solver            SolverConfig
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	token := getEnvMust("MINITHELLO_SERVER_TOKEN")

	return &ServerConfig{
		ServerHost:        getEnvMust("MINITHELLO_SERVER_HOST"),
		ServerPort:        getEnvMust("MINITHELLO_SERVER_PORT"),
		BasicAuthUsername: getEnvDefault("MINITHELLO_SERVER_BASIC_AUTH_USER", "minithello"),
		BasicAuthPassword: getEnvDefault("MINITHELLO_SERVER_BASIC_AUTH_PASS", token),
		Token:             token,
		Store:             *LoadStoreConfig(),
		Solver:            *LoadSolverConfig(),
	}
}

// LoadDotEnv loads variables from a .env file in the working directory, if there is one.
// Variables that are already set are not overwritten.
func LoadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Failed to load .env file", "error", err)
		os.Exit(1)
	}
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

// getEnvDefault returns the environment variable or fallback if it is not set.
func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		slog.Error("Cannot load environment variable, it must be an integer", "key", key, "value", value)
		os.Exit(1)
	}
	return parsed
}

func getEnvUint64(key string, fallback uint64) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		slog.Error("Cannot load environment variable, it must be a non-negative integer", "key", key, "value", value)
		os.Exit(1)
	}
	return parsed
}

func getEnvFloat32(key string, fallback float32) float32 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseFloat(value, 32)
	if err != nil {
		slog.Error("Cannot load environment variable, it must be a number", "key", key, "value", value)
		os.Exit(1)
	}
	return float32(parsed)
}
