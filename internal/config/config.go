// Package config reads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sidquark/minikv/internal/storage"
)

const (
	EnvDataFile  = "MINIKV_DATA_FILE"
	EnvBuckets   = "MINIKV_BUCKETS"
	EnvAutoLoad  = "MINIKV_AUTOLOAD"
	EnvLogLevel  = "MINIKV_LOG_LEVEL"
	EnvLogFormat = "MINIKV_LOG_FORMAT"
)

type Config struct {
	DataFile   string
	NumBuckets int
	AutoLoad   bool
	LogLevel   string
	LogFormat  string
}

func Default() Config {
	return Config{
		DataFile:   "",
		NumBuckets: storage.DefaultBuckets,
		AutoLoad:   true,
		LogLevel:   "warn",
		LogFormat:  "console",
	}
}

// Load reads the given .env files (".env" when none are given) and then the
// environment. A missing .env file is not an error; real environment
// variables take precedence over values from the file.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment alone.
func FromEnv() (Config, error) {
	cfg := Default()

	cfg.DataFile = getEnv(EnvDataFile, cfg.DataFile)
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
	cfg.LogFormat = getEnv(EnvLogFormat, cfg.LogFormat)

	if v := os.Getenv(EnvBuckets); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s must be a positive integer, got %q", EnvBuckets, v)
		}
		cfg.NumBuckets = n
	}

	if v := os.Getenv(EnvAutoLoad); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a boolean, got %q", EnvAutoLoad, v)
		}
		cfg.AutoLoad = b
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
