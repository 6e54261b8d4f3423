// Package iobronze implements the bronze stage: raw CSV files named in the
// sources manifest are published as bronze tables, untouched except for
// lenient typing. Ingestion keeps going when a single file fails and gives
// up only when every source failed.
package iobronze

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"

	"github.com/inslake/inslake/internal/iosources"
	"github.com/inslake/inslake/pkg/config"
	"github.com/inslake/inslake/pkg/lifecycle"
	"github.com/inslake/inslake/pkg/storage"
)

type ingestor struct {
	cfg   *config.Config
	store storage.Store
}

// New creates a bronze Ingestor backed by the given store.
func New(cfg *config.Config, store storage.Store) lifecycle.Ingestor {
	return &ingestor{cfg: cfg, store: store}
}

func (ing *ingestor) Ingest(ctx context.Context) error {
	start := time.Now()
	slog.Info("Starting bronze ingestion")

	manifest, err := iosources.Load(ing.cfg)
	if err != nil {
		return err
	}

	dataDir := ing.cfg.ResolvedDataDir()
	var okCount, errCount int

	for _, src := range manifest.DataSources {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err = ing.ingestSource(ctx, src, dataDir); err != nil {
			errCount++
			slog.Error("Failed to ingest source",
				"table", src.Table(),
				"file", src.File,
				"error", err,
			)
			// Keep going; a single bad file must not sink the whole
			// ingestion run.
			continue
		}
		okCount++
	}

	if okCount == 0 {
		return AllSourcesFailedError(errCount)
	}

	gn.Info("Bronze ingestion done: %d ingested, %d failed in %s",
		okCount, errCount, gnfmt.TimeString(time.Since(start).Seconds()),
	)
	slog.Info("Bronze ingestion done",
		"ingested", okCount,
		"failed", errCount,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

func (ing *ingestor) ingestSource(
	ctx context.Context,
	src iosources.DataSource,
	dataDir string,
) error {
	ent, ok := src.Schema()
	if !ok {
		return iosources.SourcesInvalidError(src.Table(), "unknown entity")
	}

	path := src.Path(dataDir)
	t, err := readCSV(path, ent)
	if err != nil {
		return err
	}

	if err = ing.store.Store(ctx, t, ent.BronzeTable()); err != nil {
		return err
	}

	gn.Info("Ingested <em>%s</em>: %s rows",
		ent.BronzeTable(), humanize.Comma(int64(t.Len())),
	)
	slog.Info("Ingested source",
		"table", ent.BronzeTable(),
		"file", src.File,
		"rows", t.Len(),
	)
	return nil
}
