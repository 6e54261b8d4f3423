// Package iosilver implements the silver stage: it loads the bronze
// snapshot, runs every entity cleaner and publishes the cleaned tables.
// The stage is all-or-nothing: all inputs are loaded and all cleaners run
// before the first write, so a failure never leaves a partial silver
// snapshot behind for the gold stage to trip over.
package iosilver

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"

	"github.com/inslake/inslake/pkg/config"
	"github.com/inslake/inslake/pkg/lifecycle"
	"github.com/inslake/inslake/pkg/refine"
	"github.com/inslake/inslake/pkg/schema"
	"github.com/inslake/inslake/pkg/storage"
	"github.com/inslake/inslake/pkg/table"
)

type refiner struct {
	cfg   *config.Config
	store storage.Store
}

// New creates a silver Refiner backed by the given store.
func New(cfg *config.Config, store storage.Store) lifecycle.Refiner {
	return &refiner{cfg: cfg, store: store}
}

func (r *refiner) Refine(ctx context.Context) error {
	start := time.Now()
	slog.Info("Starting silver refinement")

	bronze, err := r.loadBronze(ctx)
	if err != nil {
		return err
	}

	silver, metrics := cleanAll(ctx, bronze, r.cfg.JobsNumber)

	for _, m := range metrics {
		logMetrics(m)
	}

	// Nothing was written so far; publish the full stage now. A store
	// failure aborts the remaining writes and the run must be repeated.
	for _, ent := range schema.All() {
		t := silver[ent.Table()]
		t.Name = ent.SilverTable()
		if err = r.store.Store(ctx, t, ent.SilverTable()); err != nil {
			return StoreError(ent.SilverTable(), err)
		}
	}

	gn.Info("Silver stage done in %s",
		gnfmt.TimeString(time.Since(start).Seconds()))
	slog.Info("Silver refinement done",
		"tables", len(silver),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

// loadBronze fetches all six bronze tables. Any missing or unreadable
// input aborts the stage; there is no partial cleaning.
func (r *refiner) loadBronze(
	ctx context.Context,
) (map[string]*table.Table, error) {
	res := make(map[string]*table.Table, len(schema.All()))
	for _, ent := range schema.All() {
		t, err := r.store.Load(ctx, ent.BronzeTable())
		if err != nil {
			return nil, LoadError(ent.BronzeTable(), err)
		}
		res[ent.Table()] = t
	}
	return res, nil
}

// cleanAll runs the five cleaner units. They read disjoint bronze inputs
// and write disjoint outputs, so they run in parallel without locks.
func cleanAll(
	ctx context.Context,
	bronze map[string]*table.Table,
	jobs int,
) (map[string]*table.Table, []refine.Metrics) {
	var (
		erpClients, crmClients *table.Table
		vehicles, policies     *table.Table
		claims, payments       *table.Table

		erpM, crmM, vehM, polM, clmM, payM refine.Metrics
	)

	g, _ := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	g.Go(func() error {
		erpClients, crmClients, erpM, crmM = refine.Clients(
			bronze["erp_clients"], bronze["crm_clients"],
		)
		return nil
	})
	g.Go(func() error {
		vehicles, vehM = refine.Vehicles(bronze["erp_vehicles"])
		return nil
	})
	g.Go(func() error {
		policies, polM = refine.Policies(bronze["erp_policies"])
		return nil
	})
	g.Go(func() error {
		claims, clmM = refine.Claims(bronze["erp_claims"])
		return nil
	})
	g.Go(func() error {
		payments, payM = refine.Payments(bronze["erp_payments"])
		return nil
	})

	// Cleaners are total; the group only coordinates completion.
	_ = g.Wait()

	silver := map[string]*table.Table{
		"erp_clients":  erpClients,
		"crm_clients":  crmClients,
		"erp_vehicles": vehicles,
		"erp_policies": policies,
		"erp_claims":   claims,
		"erp_payments": payments,
	}
	metrics := []refine.Metrics{erpM, crmM, vehM, polM, clmM, payM}
	return silver, metrics
}

// logMetrics reports validation degradation as an observability signal.
func logMetrics(m refine.Metrics) {
	var nulled int
	for _, n := range m.Nulled {
		nulled += n
	}
	gn.Info("Cleaned <em>%s</em>: %s rows in, %s rows out",
		m.Entity,
		humanize.Comma(int64(m.RowsIn)),
		humanize.Comma(int64(m.RowsOut)),
	)
	slog.Info("Cleaned entity",
		"entity", m.Entity,
		"rows_in", m.RowsIn,
		"rows_out", m.RowsOut,
		"rows_dropped", m.DroppedTotal(),
		"dropped", m.Dropped,
		"cells_nulled", nulled,
		"nulled", m.Nulled,
	)
}
