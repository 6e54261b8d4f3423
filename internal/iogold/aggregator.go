// Package iogold implements the gold stage: the client and vehicle
// dimensions plus the client-summary fact table, recomputed from the
// current silver snapshot. The three builders are independent and run in
// parallel; like the silver stage, everything is computed before anything
// is written.
package iogold

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"

	"github.com/inslake/inslake/pkg/aggregate"
	"github.com/inslake/inslake/pkg/config"
	"github.com/inslake/inslake/pkg/dimension"
	"github.com/inslake/inslake/pkg/lifecycle"
	"github.com/inslake/inslake/pkg/schema"
	"github.com/inslake/inslake/pkg/storage"
	"github.com/inslake/inslake/pkg/table"
)

type aggregator struct {
	cfg   *config.Config
	store storage.Store
}

// New creates a gold Aggregator backed by the given store.
func New(cfg *config.Config, store storage.Store) lifecycle.Aggregator {
	return &aggregator{cfg: cfg, store: store}
}

func (a *aggregator) Aggregate(ctx context.Context) error {
	start := time.Now()
	slog.Info("Starting gold aggregation")

	var (
		dimClients, dimVehicles, fact *table.Table
		unmatched                     int
	)

	g, gCtx := errgroup.WithContext(ctx)
	if a.cfg.JobsNumber > 0 {
		g.SetLimit(a.cfg.JobsNumber)
	}

	g.Go(func() error {
		clients, err := a.load(gCtx, schema.Clients().SilverTable())
		if err != nil {
			return err
		}
		crm, err := a.load(gCtx, schema.CRMClients().SilverTable())
		if err != nil {
			return err
		}
		dimClients, unmatched, err = dimension.Clients(clients, crm)
		if err != nil {
			return BuildError(schema.DimClientsTable, err)
		}
		return nil
	})

	g.Go(func() error {
		vehicles, err := a.load(gCtx, schema.Vehicles().SilverTable())
		if err != nil {
			return err
		}
		var err2 error
		dimVehicles, err2 = dimension.Vehicles(vehicles)
		if err2 != nil {
			return BuildError(schema.DimVehiclesTable, err2)
		}
		return nil
	})

	g.Go(func() error {
		clients, err := a.load(gCtx, schema.Clients().SilverTable())
		if err != nil {
			return err
		}
		policies, err := a.load(gCtx, schema.Policies().SilverTable())
		if err != nil {
			return err
		}
		payments, err := a.load(gCtx, schema.Payments().SilverTable())
		if err != nil {
			return err
		}
		claims, err := a.load(gCtx, schema.Claims().SilverTable())
		if err != nil {
			return err
		}
		fact, err = aggregate.ClientSummary(
			clients, policies, payments, claims,
		)
		if err != nil {
			return BuildError(schema.FactClientSummaryTable, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	gn.Info("Client dimension: %s clients, %s without CRM data",
		humanize.Comma(int64(dimClients.Len())),
		humanize.Comma(int64(unmatched)),
	)
	slog.Info("Built gold tables",
		"dim_clients", dimClients.Len(),
		"dim_clients_without_crm", unmatched,
		"dim_vehicles", dimVehicles.Len(),
		"fact_client_summary", fact.Len(),
	)

	outputs := []*table.Table{dimClients, dimVehicles, fact}
	for _, t := range outputs {
		if err := a.store.Store(ctx, t, t.Name); err != nil {
			return StoreError(t.Name, err)
		}
	}

	gn.Info("Gold stage done in %s",
		gnfmt.TimeString(time.Since(start).Seconds()))
	slog.Info("Gold aggregation done",
		"tables", len(outputs),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

func (a *aggregator) load(
	ctx context.Context, name string,
) (*table.Table, error) {
	t, err := a.store.Load(ctx, name)
	if err != nil {
		return nil, LoadError(name, err)
	}
	return t, nil
}
