// Package config provides functionality for managing configuration
// options for the storefront using command-line flags, environment
// variables and an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// StoragePath is the path of the file-backed key-value store. It is
	// used when neither DatabaseDSN nor RedisURL is set.
	StoragePath string

	// DatabaseDSN selects a PostgreSQL-backed store when non-empty.
	DatabaseDSN string

	// RedisURL selects a Redis-backed store when non-empty.
	RedisURL string

	// LogLevel is the zap log level ("debug", "info", "warn", "error").
	LogLevel string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.StoragePath, "f", "storefront.json", "path to the file-backed store")
	flag.StringVar(&options.DatabaseDSN, "d", "", "postgres dsn for the kv store")
	flag.StringVar(&options.RedisURL, "r", "", "redis url for the kv store")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.StringVar(&options.Config, "config", "", "path to config file")
	flag.StringVar(&options.Config, "c", "", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct
// containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if storagePath := os.Getenv("STORAGE_PATH"); storagePath != "" {
		options.StoragePath = storagePath
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		options.RedisURL = redisURL
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	return options
}
