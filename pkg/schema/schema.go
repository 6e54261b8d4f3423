// Package schema is the registry of pipeline entities: their source system,
// key column, column definitions and the table names they publish under in
// each stage. All stage orchestrators and the ingestor consult this registry
// instead of hardcoding table shapes.
package schema

import (
	"github.com/inslake/inslake/pkg/storage"
	"github.com/inslake/inslake/pkg/table"
)

// Entity describes one source entity flowing through bronze and silver.
type Entity struct {
	// Name is the entity name, e.g. "policies".
	Name string

	// Source is the source system prefix, "erp" or "crm".
	Source string

	// Key is the entity's natural key column.
	Key string

	// Columns define the table shape. Column types describe the cleaned
	// (silver) representation; bronze keeps raw values where parsing fails.
	Columns []table.Column
}

// Table returns this entity's table name without a stage prefix,
// e.g. "erp_policies".
func (e Entity) Table() string {
	return e.Source + "_" + e.Name
}

// BronzeTable returns the bronze-stage table name, e.g. "bronze/erp_policies".
func (e Entity) BronzeTable() string {
	return storage.TableName(storage.StageBronze, e.Table())
}

// SilverTable returns the silver-stage table name, e.g. "silver/erp_policies".
func (e Entity) SilverTable() string {
	return storage.TableName(storage.StageSilver, e.Table())
}

// NewTable creates an empty table shaped for this entity.
func (e Entity) NewTable(name string) *table.Table {
	return table.New(name, e.Columns...)
}

// Gold-stage table names.
const (
	DimClientsTable        = "gold/dim_clients"
	DimVehiclesTable       = "gold/dim_vehicles"
	FactClientSummaryTable = "gold/fact_client_summary"
)

// Clients is the ERP clients entity.
func Clients() Entity {
	return Entity{
		Name:   "clients",
		Source: "erp",
		Key:    "client_id",
		Columns: []table.Column{
			{Name: "client_id", Type: table.String},
			{Name: "name", Type: table.String},
			{Name: "email", Type: table.String},
			{Name: "phone", Type: table.String},
			{Name: "address", Type: table.String},
		},
	}
}

// CRMClients is the CRM clients entity, a degraded subset of Clients with
// extra relationship attributes.
func CRMClients() Entity {
	return Entity{
		Name:   "clients",
		Source: "crm",
		Key:    "client_id",
		Columns: []table.Column{
			{Name: "client_id", Type: table.String},
			{Name: "name", Type: table.String},
			{Name: "email", Type: table.String},
			{Name: "phone", Type: table.String},
			{Name: "address", Type: table.String},
			{Name: "iban_account_number", Type: table.String},
			{Name: "company_name", Type: table.String},
			{Name: "client_type", Type: table.String},
			{Name: "risk_level", Type: table.String},
			{Name: "marketing_opt_in", Type: table.Bool},
		},
	}
}

// Vehicles is the ERP vehicles entity.
func Vehicles() Entity {
	return Entity{
		Name:   "vehicles",
		Source: "erp",
		Key:    "vehicle_id",
		Columns: []table.Column{
			{Name: "vehicle_id", Type: table.String},
			{Name: "client_id", Type: table.String},
			{Name: "brand", Type: table.String},
			{Name: "model", Type: table.String},
			{Name: "year", Type: table.Int},
			{Name: "plate", Type: table.String},
		},
	}
}

// Policies is the ERP policies entity.
func Policies() Entity {
	return Entity{
		Name:   "policies",
		Source: "erp",
		Key:    "policy_id",
		Columns: []table.Column{
			{Name: "policy_id", Type: table.String},
			{Name: "client_id", Type: table.String},
			{Name: "vehicle_id", Type: table.String},
			{Name: "coverage", Type: table.String},
			{Name: "status", Type: table.String},
			{Name: "premium", Type: table.Float},
		},
	}
}

// Claims is the ERP claims entity.
func Claims() Entity {
	return Entity{
		Name:   "claims",
		Source: "erp",
		Key:    "claim_id",
		Columns: []table.Column{
			{Name: "claim_id", Type: table.String},
			{Name: "policy_id", Type: table.String},
			{Name: "claim_date", Type: table.Date},
			{Name: "claim_type", Type: table.String},
			{Name: "amount", Type: table.Float},
		},
	}
}

// Payments is the ERP payments entity.
func Payments() Entity {
	return Entity{
		Name:   "payments",
		Source: "erp",
		Key:    "payment_id",
		Columns: []table.Column{
			{Name: "payment_id", Type: table.String},
			{Name: "policy_id", Type: table.String},
			{Name: "amount", Type: table.Float},
			{Name: "payment_date", Type: table.Date},
		},
	}
}

// All returns every source entity in ingestion order.
func All() []Entity {
	return []Entity{
		Clients(),
		CRMClients(),
		Vehicles(),
		Policies(),
		Claims(),
		Payments(),
	}
}

// ByTable returns the entity publishing under the given unprefixed table
// name, e.g. "erp_policies".
func ByTable(name string) (Entity, bool) {
	for _, e := range All() {
		if e.Table() == name {
			return e, true
		}
	}
	return Entity{}, false
}
