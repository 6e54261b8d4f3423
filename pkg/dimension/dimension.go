// Package dimension builds the gold-stage dimension tables from silver
// inputs. Builders are pure: tables in, tables out.
package dimension

import (
	"fmt"

	"github.com/inslake/inslake/pkg/schema"
	"github.com/inslake/inslake/pkg/table"
)

// crmAttrs are the CRM columns that enrich the client dimension.
var crmAttrs = []string{"client_type", "risk_level", "marketing_opt_in"}

// Clients builds the client dimension: silver ERP clients left-joined with
// the CRM projection {client_id, client_type, risk_level, marketing_opt_in}
// on client_id. Clients without a CRM match keep the three attributes null;
// their count is returned as an observability signal, not an error.
func Clients(clients, crm *table.Table) (*table.Table, int, error) {
	if clients.Col("client_id") < 0 || crm.Col("client_id") < 0 {
		return nil, 0, fmt.Errorf(
			"dimension clients: missing client_id column",
		)
	}
	for _, col := range crmAttrs {
		if crm.Col(col) < 0 {
			return nil, 0, fmt.Errorf(
				"dimension clients: crm table missing column %q", col,
			)
		}
	}

	// CRM attribute lookup; first match wins, mirroring the silver key
	// uniqueness guarantee.
	lookup := make(map[string][]any, crm.Len())
	for i := 0; i < crm.Len(); i++ {
		id, ok := table.AsString(crm.Value(i, "client_id"))
		if !ok {
			continue
		}
		if _, dup := lookup[id]; dup {
			continue
		}
		attrs := make([]any, len(crmAttrs))
		for j, col := range crmAttrs {
			attrs[j] = crm.Value(i, col)
		}
		lookup[id] = attrs
	}

	cols := append([]table.Column{}, clients.Columns...)
	cols = append(cols,
		table.Column{Name: "client_type", Type: table.String},
		table.Column{Name: "risk_level", Type: table.String},
		table.Column{Name: "marketing_opt_in", Type: table.Bool},
	)
	dim := table.New(schema.DimClientsTable, cols...)

	var unmatched int
	for _, row := range clients.Rows {
		newRow := append([]any{}, row...)
		var attrs []any
		if id, ok := table.AsString(row[clients.Col("client_id")]); ok {
			attrs = lookup[id]
		}
		if attrs == nil {
			unmatched++
			attrs = []any{nil, nil, nil}
		}
		newRow = append(newRow, attrs...)
		if err := dim.Append(newRow); err != nil {
			return nil, 0, err
		}
	}
	return dim, unmatched, nil
}

// Vehicles builds the vehicle dimension: a surrogate key equal to the
// natural key, a projection of the descriptive columns, and removal of
// exact-duplicate rows.
func Vehicles(vehicles *table.Table) (*table.Table, error) {
	if vehicles.Col("vehicle_id") < 0 {
		return nil, fmt.Errorf(
			"dimension vehicles: missing vehicle_id column",
		)
	}

	withKey := vehicles.Clone()
	withKey.Columns = append(
		[]table.Column{{Name: "vehicle_key", Type: table.String}},
		withKey.Columns...,
	)
	for i, row := range withKey.Rows {
		key := row[vehicles.Col("vehicle_id")]
		withKey.Rows[i] = append([]any{key}, row...)
	}

	dim, err := withKey.Project(
		schema.DimVehiclesTable,
		"vehicle_key", "vehicle_id", "client_id", "brand", "model",
		"year", "plate",
	)
	if err != nil {
		return nil, err
	}
	return dim.DropDuplicates(), nil
}
