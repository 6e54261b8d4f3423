// Package refine implements the silver-stage entity cleaners. Each cleaner
// is a stateless map from bronze table(s) to silver table(s): it applies the
// shared normalizers from pkg/clean plus the entity's own integrity policy
// (which rows are dropped, which fields degrade to null) and reports what it
// did through Metrics. Cleaners never fail on malformed values; re-running a
// cleaner on the same input always yields the same output.
package refine

import (
	"strings"

	"github.com/inslake/inslake/pkg/clean"
	"github.com/inslake/inslake/pkg/table"
)

// Canonical policy statuses produced by the cleaner. Aggregations must
// compare against these constants, not their own literals.
const (
	StatusActive    = "Active"
	StatusExpired   = "Expired"
	StatusCancelled = "Cancelled"
)

// Canonical coverage types.
const (
	CoverageBasic        = "Basic"
	CoverageIntermediate = "Intermediate"
	CoveragePremium      = "Premium"
)

// Canonical claim types.
const (
	ClaimCollision     = "Collision"
	ClaimTheft         = "Theft"
	ClaimWeatherDamage = "Weather Damage"
	ClaimFire          = "Fire"
	ClaimOther         = "Other"
)

var (
	coverageTypes = enumSet(
		CoverageBasic, CoverageIntermediate, CoveragePremium,
	)
	policyStatuses = enumSet(
		StatusActive, StatusExpired, StatusCancelled,
	)
	claimTypes = enumSet(
		ClaimCollision, ClaimTheft, ClaimWeatherDamage, ClaimFire,
		ClaimOther,
	)
)

// Drop reasons reported in Metrics.Dropped.
const (
	DropMissingKey    = "missing_key"
	DropDuplicateKey  = "duplicate_key"
	DropMissingFK     = "missing_fk"
	DropInvalidDate   = "invalid_date"
	DropInvalidAmount = "invalid_amount"
)

// Metrics reports how a cleaner degraded its input. Degradation is an
// observability signal, never an error.
type Metrics struct {
	Entity  string
	RowsIn  int
	RowsOut int

	// Dropped counts removed rows by reason.
	Dropped map[string]int

	// Nulled counts cells set to the canonical null, by column.
	Nulled map[string]int
}

func newMetrics(entity string, rowsIn int) Metrics {
	return Metrics{
		Entity:  entity,
		RowsIn:  rowsIn,
		Dropped: make(map[string]int),
		Nulled:  make(map[string]int),
	}
}

// DroppedTotal returns the total number of dropped rows.
func (m Metrics) DroppedTotal() int {
	var n int
	for _, c := range m.Dropped {
		n += c
	}
	return n
}

// Clients cleans the ERP and CRM client tables with identical field rules.
// CRM rows without a client_id are dropped; the ERP table is not
// key-filtered. Both tables are deduplicated on client_id.
func Clients(
	erp, crm *table.Table,
) (*table.Table, *table.Table, Metrics, Metrics) {
	textCols := []string{
		"name", "address", "company_name", "client_type", "risk_level",
	}

	erpOut, erpM := cleanTable(erp, "erp_clients", rowPolicy{
		key: "client_id",
	}, func(r *rowCleaner) {
		r.id("client_id")
		for _, col := range textCols {
			r.text(col)
		}
		r.apply("email", clean.Email)
		r.apply("phone", clean.Phone)
	})

	crmOut, crmM := cleanTable(crm, "crm_clients", rowPolicy{
		key:            "client_id",
		dropMissingKey: true,
	}, func(r *rowCleaner) {
		r.id("client_id")
		for _, col := range textCols {
			r.text(col)
		}
		r.apply("email", clean.Email)
		r.apply("phone", clean.Phone)
		r.apply("iban_account_number", clean.IBAN)
	})

	return erpOut, crmOut, erpM, crmM
}

// Vehicles cleans the vehicle table. Vehicles cannot be orphaned in silver:
// rows without a client_id are dropped.
func Vehicles(t *table.Table) (*table.Table, Metrics) {
	return cleanTable(t, "erp_vehicles", rowPolicy{
		key:         "vehicle_id",
		requiredFKs: []string{"client_id"},
	}, func(r *rowCleaner) {
		r.id("vehicle_id")
		r.id("client_id")
		r.text("brand")
		r.text("model")
		r.apply("year", clean.Year)
		r.apply("plate", clean.Plate)
	})
}

// Policies cleans the policy table. Rows without client_id or vehicle_id
// are dropped; coverage and status degrade to null outside their
// enumerations; premium degrades to null unless strictly positive.
func Policies(t *table.Table) (*table.Table, Metrics) {
	return cleanTable(t, "erp_policies", rowPolicy{
		key:         "policy_id",
		requiredFKs: []string{"client_id", "vehicle_id"},
	}, func(r *rowCleaner) {
		r.id("policy_id")
		r.id("client_id")
		r.id("vehicle_id")
		r.enum("coverage", coverageTypes)
		r.enum("status", policyStatuses)
		r.apply("premium", clean.Amount)
	})
}

// Claims cleans the claim table. Rows without a policy_id are dropped;
// unparsable or future dates, unknown claim types and non-positive amounts
// degrade to null.
func Claims(t *table.Table) (*table.Table, Metrics) {
	return cleanTable(t, "erp_claims", rowPolicy{
		key:         "claim_id",
		requiredFKs: []string{"policy_id"},
	}, func(r *rowCleaner) {
		r.id("claim_id")
		r.id("policy_id")
		r.apply("claim_date", clean.PastDate)
		r.enum("claim_type", claimTypes)
		r.apply("amount", clean.Amount)
	})
}

// Payments cleans the payment table. Rows without a policy_id are dropped,
// and unlike other entities a payment must carry a parsable date and a
// strictly positive amount to survive: raw payments include refunds and
// garbage that silver discards outright.
func Payments(t *table.Table) (*table.Table, Metrics) {
	return cleanTable(t, "erp_payments", rowPolicy{
		key:         "payment_id",
		requiredFKs: []string{"policy_id"},
		dropOnNull: map[string]string{
			"payment_date": DropInvalidDate,
			"amount":       DropInvalidAmount,
		},
	}, func(r *rowCleaner) {
		r.id("payment_id")
		r.id("policy_id")
		r.apply("amount", clean.Amount)
		r.apply("payment_date", clean.PastDate)
	})
}

// rowPolicy declares the row-level integrity rules of one entity.
type rowPolicy struct {
	// key is the natural key column; duplicates after the first are
	// dropped.
	key string

	// dropMissingKey drops rows whose key is missing instead of keeping
	// them.
	dropMissingKey bool

	// requiredFKs drop the row when missing.
	requiredFKs []string

	// dropOnNull drops the row when the named column cleans to null,
	// reported under the given reason.
	dropOnNull map[string]string
}

// rowCleaner applies field normalizers to the current row and records
// nulled cells.
type rowCleaner struct {
	t       *table.Table
	row     int
	metrics *Metrics
}

// apply runs a normalizer on the named column of the current row.
func (r *rowCleaner) apply(col string, fn func(any) any) {
	raw := r.t.Value(r.row, col)
	cleaned := fn(raw)
	if cleaned == nil && !missing(raw) {
		r.metrics.Nulled[col]++
	}
	r.t.Set(r.row, col, cleaned)
}

func (r *rowCleaner) text(col string) {
	if r.t.Col(col) < 0 {
		return
	}
	r.apply(col, clean.Text)
}

// id trims an identifier column without case normalization.
func (r *rowCleaner) id(col string) {
	r.apply(col, func(v any) any {
		s, ok := v.(string)
		if !ok {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		return s
	})
}

// enum canonicalizes a value into the allowed set, case and whitespace
// insensitively, or nulls it.
func (r *rowCleaner) enum(col string, allowed map[string]struct{}) {
	r.apply(col, func(v any) any {
		s, ok := v.(string)
		if !ok {
			return nil
		}
		s = clean.Title(strings.TrimSpace(s))
		if _, ok := allowed[s]; !ok {
			return nil
		}
		return s
	})
}

func cleanTable(
	in *table.Table,
	name string,
	policy rowPolicy,
	fields func(*rowCleaner),
) (*table.Table, Metrics) {
	m := newMetrics(name, in.Len())

	out := in.Clone()
	out.Name = name
	rc := rowCleaner{t: out, metrics: &m}

	seen := make(map[string]struct{}, out.Len())
	kept := out.Rows[:0:0]

	for i := range out.Rows {
		rc.row = i
		fields(&rc)

		if dropRow(out, i, policy, seen, &m) {
			continue
		}
		kept = append(kept, out.Rows[i])
	}

	out.Rows = kept
	m.RowsOut = len(kept)
	return out, m
}

// dropRow applies the entity's row policy after field cleaning and reports
// whether the row is discarded.
func dropRow(
	t *table.Table,
	i int,
	policy rowPolicy,
	seen map[string]struct{},
	m *Metrics,
) bool {
	for _, fk := range policy.requiredFKs {
		if missing(t.Value(i, fk)) {
			m.Dropped[DropMissingFK]++
			return true
		}
	}

	for col, reason := range policy.dropOnNull {
		if t.Value(i, col) == nil {
			m.Dropped[reason]++
			return true
		}
	}

	key := t.Value(i, policy.key)
	if missing(key) {
		if policy.dropMissingKey {
			m.Dropped[DropMissingKey]++
			return true
		}
		return false
	}
	ks, _ := table.AsString(key)
	if _, dup := seen[ks]; dup {
		m.Dropped[DropDuplicateKey]++
		return true
	}
	seen[ks] = struct{}{}
	return false
}

// missing reports whether a raw value counts as absent: nil or blank text.
func missing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func enumSet(vals ...string) map[string]struct{} {
	res := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		res[v] = struct{}{}
	}
	return res
}
