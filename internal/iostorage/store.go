// Package iostorage implements the storage.Store contract over three
// backends: an S3 bucket (the lake the original deployment uses), a local
// single-file sqlite catalog, and a plain directory of encoded tables.
// Every backend speaks the same gob table encoding and maps its failures
// into the storage error taxonomy; a retry decorator handles transient
// failures at this boundary so the pipeline core never retries.
package iostorage

import (
	"context"

	"github.com/inslake/inslake/pkg/config"
	"github.com/inslake/inslake/pkg/storage"
)

// New creates the configured storage backend wrapped with per-call
// timeouts and transient-failure retries.
func New(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	var base storage.Store
	var err error

	switch cfg.Storage.Backend {
	case "s3":
		base, err = newS3(ctx, cfg)
	case "sqlite":
		base, err = newSQLite(cfg.ResolvedStoragePath())
	case "dir":
		base = newDir(cfg.ResolvedStoragePath())
	default:
		return nil, BackendError(cfg.Storage.Backend)
	}
	if err != nil {
		return nil, err
	}

	return newRetry(base, cfg.Storage.Retries, cfg.Storage.TimeoutSec), nil
}
