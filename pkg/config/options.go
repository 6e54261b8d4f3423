package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptStorageBackend selects the object-store backend.
func OptStorageBackend(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidEnum("Storage.Backend", s) {
			c.Storage.Backend = s
		}
	}
}

// OptStorageBucket sets the S3 bucket name.
func OptStorageBucket(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Storage Bucket", s) {
			c.Storage.Bucket = s
		}
	}
}

// OptStorageRegion sets the S3 region.
func OptStorageRegion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Storage Region", s) {
			c.Storage.Region = s
		}
	}
}

// OptStorageEndpoint sets a custom S3 endpoint (MinIO and friends).
// Unlike most options an empty value is legal and means AWS.
func OptStorageEndpoint(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Storage.Endpoint = s
	}
}

// OptStorageAccessKey sets a static S3 access key.
func OptStorageAccessKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Storage.AccessKey = s
	}
}

// OptStorageSecretKey sets a static S3 secret key.
func OptStorageSecretKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Storage.SecretKey = s
	}
}

// OptStoragePath sets the sqlite lake file or dir-backend root.
func OptStoragePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Storage Path", s) {
			c.Storage.Path = s
		}
	}
}

// OptStorageTimeoutSec bounds each load/store call, in seconds.
func OptStorageTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Storage Timeout", i) {
			c.Storage.TimeoutSec = i
		}
	}
}

// OptStorageRetries sets the number of attempts for transient failures.
func OptStorageRetries(i int) Option {
	return func(c *Config) {
		if isValidInt("Storage Retries", i) {
			c.Storage.Retries = i
		}
	}
}

// OptGenerateClients sets the synthetic client row count.
func OptGenerateClients(i int) Option {
	return func(c *Config) {
		if isValidInt("Generate Clients", i) {
			c.Generate.Clients = i
		}
	}
}

// OptGenerateVehicles sets the synthetic vehicle row count.
func OptGenerateVehicles(i int) Option {
	return func(c *Config) {
		if isValidInt("Generate Vehicles", i) {
			c.Generate.Vehicles = i
		}
	}
}

// OptGeneratePolicies sets the synthetic policy row count.
func OptGeneratePolicies(i int) Option {
	return func(c *Config) {
		if isValidInt("Generate Policies", i) {
			c.Generate.Policies = i
		}
	}
}

// OptGenerateClaims sets the synthetic claim row count.
func OptGenerateClaims(i int) Option {
	return func(c *Config) {
		if isValidInt("Generate Claims", i) {
			c.Generate.Claims = i
		}
	}
}

// OptGeneratePayments sets the synthetic payment row count.
func OptGeneratePayments(i int) Option {
	return func(c *Config) {
		if isValidInt("Generate Payments", i) {
			c.Generate.Payments = i
		}
	}
}

// OptGenerateSeed makes generation reproducible.
func OptGenerateSeed(i uint64) Option {
	return func(c *Config) {
		c.Generate.Seed = i
	}
}

// OptLogFormat sets the log output format.
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogLevel sets the minimum level of logged events.
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogDestination sets where log output goes.
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory; set once by the CLI at startup.
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

// OptDataDir overrides the CSV data directory.
func OptDataDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Data Directory", s) {
			c.DataDir = s
		}
	}
}
