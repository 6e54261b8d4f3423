package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.Storage.Backend
	if s != "" {
		res = append(res, OptStorageBackend(s))
	}
	s = c.Storage.Bucket
	if s != "" {
		res = append(res, OptStorageBucket(s))
	}
	s = c.Storage.Region
	if s != "" {
		res = append(res, OptStorageRegion(s))
	}
	s = c.Storage.Endpoint
	if s != "" {
		res = append(res, OptStorageEndpoint(s))
	}
	s = c.Storage.AccessKey
	if s != "" {
		res = append(res, OptStorageAccessKey(s))
	}
	s = c.Storage.SecretKey
	if s != "" {
		res = append(res, OptStorageSecretKey(s))
	}
	s = c.Storage.Path
	if s != "" {
		res = append(res, OptStoragePath(s))
	}
	i = c.Storage.TimeoutSec
	if i > 0 {
		res = append(res, OptStorageTimeoutSec(i))
	}
	i = c.Storage.Retries
	if i > 0 {
		res = append(res, OptStorageRetries(i))
	}

	i = c.Generate.Clients
	if i > 0 {
		res = append(res, OptGenerateClients(i))
	}
	i = c.Generate.Vehicles
	if i > 0 {
		res = append(res, OptGenerateVehicles(i))
	}
	i = c.Generate.Policies
	if i > 0 {
		res = append(res, OptGeneratePolicies(i))
	}
	i = c.Generate.Claims
	if i > 0 {
		res = append(res, OptGenerateClaims(i))
	}
	i = c.Generate.Payments
	if i > 0 {
		res = append(res, OptGeneratePayments(i))
	}
	if c.Generate.Seed > 0 {
		res = append(res, OptGenerateSeed(c.Generate.Seed))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}

	s = c.DataDir
	if s != "" {
		res = append(res, OptDataDir(s))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Storage.Backend": {"sqlite": s, "s3": s, "dir": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
