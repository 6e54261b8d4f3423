// Package lifecycle defines the contracts of the pipeline stages. The
// implementations live in internal/io* and are impure; these interfaces
// keep the CLI decoupled from them.
package lifecycle

import (
	"context"
)

// Generator writes synthetic raw CSV files into the data directory, giving
// the pipeline something realistic to ingest during development and tests.
type Generator interface {
	// Generate produces the six raw CSV files. It is destructive: existing
	// files with the same names are overwritten.
	Generate(ctx context.Context) error
}

// Ingestor publishes raw CSV files as bronze tables.
type Ingestor interface {
	// Ingest reads every source named in the manifest and stores its
	// bronze table. A failing source is skipped; Ingest fails only when
	// no source could be ingested at all.
	Ingest(ctx context.Context) error
}

// Refiner recomputes the silver stage from the current bronze snapshot.
type Refiner interface {
	// Refine loads all bronze tables, runs the entity cleaners and writes
	// the silver tables. The stage is all-or-nothing: nothing is written
	// until every input is loaded and every cleaner has finished.
	Refine(ctx context.Context) error
}

// Aggregator recomputes the gold stage from the current silver snapshot.
type Aggregator interface {
	// Aggregate builds the dimension tables and the client summary fact
	// table and writes them. Like Refine it computes everything before
	// writing anything.
	Aggregate(ctx context.Context) error
}
