// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverS3     = "s3"
)

// StoreConfig selects and configures the catalog's backing medium.
type StoreConfig struct {
	Driver      string // file | sqlite | s3
	CatalogPath string // file driver
	DBPath      string // sqlite driver
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
}

// Config holds the runtime configuration. The admin secret is injected
// here rather than hard-coded: commands that need the privileged mode
// fail fast when it is unset.
type Config struct {
	Dev         bool
	Port        int
	AdminSecret string
	Store       StoreConfig
}

// Load reads configuration from the environment, optionally seeded from
// a .env file. A missing .env is fine; environment variables win.
func Load(envPath ...string) (*Config, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil && !os.IsNotExist(err) {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := &Config{
		Dev:         getEnvBool("PORTALSUR_DEV", false),
		Port:        getEnvInt("PORTALSUR_PORT", 8080),
		AdminSecret: os.Getenv("PORTALSUR_ADMIN_SECRET"),
	}

	cfg.Store.Driver = getEnvString("PORTALSUR_STORE_DRIVER", DriverFile)
	switch cfg.Store.Driver {
	case DriverFile, DriverSQLite, DriverS3:
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	cfg.Store.CatalogPath = os.Getenv("PORTALSUR_CATALOG_PATH")
	cfg.Store.DBPath = os.Getenv("PORTALSUR_DB_PATH")
	cfg.Store.S3Bucket = os.Getenv("PORTALSUR_S3_BUCKET")
	cfg.Store.S3Region = os.Getenv("PORTALSUR_S3_REGION")
	cfg.Store.S3Endpoint = os.Getenv("PORTALSUR_S3_ENDPOINT")
	cfg.Store.S3PathStyle = getEnvBool("PORTALSUR_S3_PATH_STYLE", false)

	if cfg.Store.Driver == DriverS3 && cfg.Store.S3Bucket == "" {
		return nil, fmt.Errorf("PORTALSUR_S3_BUCKET is required for the s3 driver")
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("environment variable is not an int, using default",
			"key", key, "value", v, "default", defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("environment variable is not a bool, using default",
			"key", key, "value", v, "default", defaultValue)
		return defaultValue
	}
	return b
}
