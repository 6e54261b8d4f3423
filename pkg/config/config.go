// Package config provides configuration management for inslake.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults.
//
// # Design Principles
//
//   - Default config (from New()) is always valid - no validation needed
//   - All mutations go through Option functions - the only way to modify
//     Config
//   - Invalid options are rejected with gn.Warn() - config remains in a
//     valid state
//   - ToOptions() converts persistent fields (those in config.yaml)
//
// # Environment Variables
//
// Use the INSLAKE_ prefix with underscores for nesting:
//
//	INSLAKE_STORAGE_BACKEND=s3
//	INSLAKE_STORAGE_BUCKET=insurance-lake
//	INSLAKE_LOG_LEVEL=info
//	INSLAKE_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete inslake configuration.
type Config struct {
	// Storage contains object-store connection settings.
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	// Generate contains settings for the synthetic raw-data generator.
	Generate GenerateConfig `mapstructure:"generate" yaml:"generate"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// operations, e.g. silver-stage entity cleaners.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It is set by the CLI during init; there is no default value for it.
	HomeDir string

	// DataDir is where generated CSV files live and where bronze
	// ingestion reads them from. Empty means the default under HomeDir.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
}

// StorageConfig contains object-store settings. The pipeline persists
// every stage table through one of three backends.
type StorageConfig struct {
	// Backend selects the store implementation.
	// Valid values: "sqlite" (single-file local lake), "s3", "dir".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Bucket is the S3 bucket name (s3 backend only).
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// Region is the S3 region (s3 backend only).
	Region string `mapstructure:"region" yaml:"region"`

	// Endpoint overrides the S3 endpoint, for S3-compatible stores such
	// as MinIO. Empty means AWS.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// AccessKey and SecretKey are static S3 credentials. When empty the
	// SDK's default credential chain is used.
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`

	// Path is the sqlite database file or the root directory of the
	// "dir" backend. Empty means the default under the cache directory.
	Path string `mapstructure:"path" yaml:"path"`

	// TimeoutSec bounds each load/store call.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// Retries is the number of attempts for transient failures.
	Retries int `mapstructure:"retries" yaml:"retries"`
}

// GenerateConfig controls the synthetic raw-data generator.
type GenerateConfig struct {
	// Row counts per entity. CRM clients are derived as a fraction of
	// clients, so they have no count of their own.
	Clients  int `mapstructure:"clients" yaml:"clients"`
	Vehicles int `mapstructure:"vehicles" yaml:"vehicles"`
	Policies int `mapstructure:"policies" yaml:"policies"`
	Claims   int `mapstructure:"claims" yaml:"claims"`
	Payments int `mapstructure:"payments" yaml:"payments"`

	// Seed makes generation reproducible. Zero means a random seed.
	Seed uint64 `mapstructure:"seed" yaml:"seed"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Storage: StorageConfig{
			Backend:    "sqlite",
			Region:     "us-east-1",
			TimeoutSec: 30,
			Retries:    3,
		},
		Generate: GenerateConfig{
			Clients:  5000,
			Vehicles: 5000,
			Policies: 5000,
			Claims:   2500,
			Payments: 5000,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
