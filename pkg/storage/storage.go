// Package storage defines the contract between the pipeline core and the
// object store that persists stage tables. The core depends on exactly two
// operations, Load and Store; everything else (encoding, credentials,
// retries) belongs to the implementations in internal/iostorage.
package storage

import (
	"context"
	"errors"

	"github.com/inslake/inslake/pkg/table"
)

// Store persists and retrieves named tables.
type Store interface {
	// Load retrieves the named table. It fails with ErrNotFound when the
	// table does not exist, ErrCorruptData when stored bytes cannot be
	// decoded, and ErrTransient on retryable I/O failure.
	Load(ctx context.Context, name string) (*table.Table, error)

	// Store persists the table under the given name, replacing any
	// previous version. It fails with ErrTransient on retryable I/O
	// failure and ErrPermissionDenied on authorization failure.
	Store(ctx context.Context, t *table.Table, name string) error
}

// Error taxonomy for storage failures. Implementations wrap these sentinels
// so callers can branch with errors.Is.
var (
	ErrNotFound         = errors.New("table not found")
	ErrCorruptData      = errors.New("corrupt table data")
	ErrTransient        = errors.New("transient storage failure")
	ErrPermissionDenied = errors.New("storage permission denied")
)

// IsNotFound reports whether err means the named table does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// Stage names of the medallion tiers.
const (
	StageBronze = "bronze"
	StageSilver = "silver"
	StageGold   = "gold"
)

// TableName joins a stage and a table name following the lake convention:
// "{stage}/{source}_{entity}" for bronze/silver, "{stage}/{semantic}" for
// gold.
func TableName(stage, name string) string {
	return stage + "/" + name
}
