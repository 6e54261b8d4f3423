package refine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inslake/inslake/pkg/refine"
	"github.com/inslake/inslake/pkg/schema"
	"github.com/inslake/inslake/pkg/table"
)

func mustAppend(t *testing.T, tbl *table.Table, rows ...[]any) {
	t.Helper()
	for _, row := range rows {
		require.NoError(t, tbl.Append(row))
	}
}

func TestClients(t *testing.T) {
	erp := schema.Clients().NewTable("bronze/erp_clients")
	mustAppend(t, erp,
		[]any{"c1", "john SMITH", "john@example.com",
			"+1 (555) 123-4567", "12 main st"},
		[]any{"c2", "  maria lopez ", "not-an-email", "", nil},
		[]any{nil, "No Key", nil, nil, nil},
		[]any{"c1", "Duplicate Of C1", nil, nil, nil},
	)

	crm := schema.CRMClients().NewTable("bronze/crm_clients")
	mustAppend(t, crm,
		[]any{"c1", "JOHN SMITH", "", "555.123.4567", "12 main st",
			"es912100", "acme corp", "gold", "low", true},
		[]any{"", "Missing Key", nil, nil, nil, nil, nil, "silver",
			"high", false},
	)

	erpOut, crmOut, erpM, crmM := refine.Clients(erp, crm)

	t.Run("erp field rules", func(t *testing.T) {
		assert.Equal(t, 3, erpOut.Len(), "dup dropped, keyless kept")
		assert.Equal(t, "John Smith", erpOut.Value(0, "name"))
		assert.Equal(t, "john@example.com", erpOut.Value(0, "email"))
		assert.Equal(t, "+1555123-4567", erpOut.Value(0, "phone"))
		assert.Equal(t, "12 Main St", erpOut.Value(0, "address"))
		assert.Equal(t, "Maria Lopez", erpOut.Value(1, "name"))
		assert.Nil(t, erpOut.Value(1, "email"), "invalid email nulled")
		assert.Nil(t, erpOut.Value(2, "client_id"),
			"erp keeps keyless rows")
	})

	t.Run("erp metrics", func(t *testing.T) {
		assert.Equal(t, 4, erpM.RowsIn)
		assert.Equal(t, 3, erpM.RowsOut)
		assert.Equal(t, 1, erpM.Dropped[refine.DropDuplicateKey])
		assert.Equal(t, 1, erpM.Nulled["email"])
	})

	t.Run("crm drops keyless and cleans iban", func(t *testing.T) {
		assert.Equal(t, 1, crmOut.Len())
		assert.Equal(t, "ES912100",
			crmOut.Value(0, "iban_account_number"))
		assert.Equal(t, "Acme Corp", crmOut.Value(0, "company_name"))
		assert.Equal(t, "Gold", crmOut.Value(0, "client_type"))
		assert.Equal(t, 1, crmM.Dropped[refine.DropMissingKey])
	})
}

func TestVehicles(t *testing.T) {
	in := schema.Vehicles().NewTable("bronze/erp_vehicles")
	mustAppend(t, in,
		[]any{"v1", "c1", "toyota", "COROLLA", int64(2015), "abc 123"},
		[]any{"v2", "", "Ford", "F-150", int64(2020), "xyz-789"},
		[]any{"v3", "c2", "honda", "civic", int64(1850), "qq"},
		[]any{"v1", "c1", "toyota", "COROLLA", int64(2015), "abc 123"},
	)

	out, m := refine.Vehicles(in)

	assert.Equal(t, 2, out.Len())
	assert.Equal(t, "Toyota", out.Value(0, "brand"))
	assert.Equal(t, "Corolla", out.Value(0, "model"))
	assert.Equal(t, "ABC123", out.Value(0, "plate"))
	assert.Equal(t, int64(2015), out.Value(0, "year"))
	assert.Nil(t, out.Value(1, "year"), "out-of-range year nulled")

	assert.Equal(t, 1, m.Dropped[refine.DropMissingFK],
		"orphan vehicle dropped")
	assert.Equal(t, 1, m.Dropped[refine.DropDuplicateKey])
}

func TestPolicies(t *testing.T) {
	in := schema.Policies().NewTable("bronze/erp_policies")
	mustAppend(t, in,
		[]any{"p1", "c1", "v1", "premium", "active", 500.0},
		[]any{"p2", "c1", "v1", " INTERMEDIATE ", "activa", -10.0},
		[]any{"p3", "", "v2", "basic", "expired", 300.0},
		[]any{"p4", "c2", nil, "basic", "cancelled", 300.0},
	)

	out, m := refine.Policies(in)

	require.Equal(t, 2, out.Len())
	assert.Equal(t, refine.CoveragePremium, out.Value(0, "coverage"))
	assert.Equal(t, refine.StatusActive, out.Value(0, "status"))
	assert.Equal(t, 500.0, out.Value(0, "premium"))

	assert.Equal(t, refine.CoverageIntermediate, out.Value(1, "coverage"))
	assert.Nil(t, out.Value(1, "status"), "unknown status nulled")
	assert.Nil(t, out.Value(1, "premium"), "negative premium nulled")

	assert.Equal(t, 2, m.Dropped[refine.DropMissingFK])
	assert.Equal(t, 1, m.Nulled["status"])
	assert.Equal(t, 1, m.Nulled["premium"])
}

func TestClaims(t *testing.T) {
	in := schema.Claims().NewTable("bronze/erp_claims")
	mustAppend(t, in,
		[]any{"cl1", "p1", "2021-06-01", "collision", 1200.0},
		[]any{"cl2", "p1", "2030-01-01", "THEFT", 800.0},
		[]any{"cl3", "", "2020-01-01", "fire", 100.0},
		[]any{"cl4", "p2", "2019-05-05", "hailstorm", 0.0},
	)

	out, m := refine.Claims(in)

	require.Equal(t, 3, out.Len())
	ts, ok := table.AsTime(out.Value(0, "claim_date"))
	require.True(t, ok)
	assert.Equal(t, 2021, ts.Year())
	assert.Equal(t, refine.ClaimCollision, out.Value(0, "claim_type"))

	assert.Nil(t, out.Value(1, "claim_date"), "future date nulled")
	assert.Equal(t, refine.ClaimTheft, out.Value(1, "claim_type"))

	assert.Nil(t, out.Value(2, "claim_type"), "unknown type nulled")
	assert.Nil(t, out.Value(2, "amount"), "zero amount nulled")

	assert.Equal(t, 1, m.Dropped[refine.DropMissingFK])
}

func TestPayments(t *testing.T) {
	in := schema.Payments().NewTable("bronze/erp_payments")
	mustAppend(t, in,
		[]any{"pay1", "p1", 250.0, "2022-01-15"},
		[]any{"pay2", "p1", -100.0, "2022-02-15"},
		[]any{"pay3", "p1", 100.005, "2022-03-15"},
		[]any{"pay4", "p1", 100.0, "not a date"},
		[]any{"pay5", "", 100.0, "2022-04-15"},
	)

	out, m := refine.Payments(in)

	require.Equal(t, 2, out.Len())
	assert.Equal(t, "pay1", out.Value(0, "payment_id"))
	assert.Equal(t, 100.01, out.Value(1, "amount"), "rounded half up")

	assert.Equal(t, 1, m.Dropped[refine.DropInvalidAmount],
		"refunds are dropped, not nulled")
	assert.Equal(t, 1, m.Dropped[refine.DropInvalidDate])
	assert.Equal(t, 1, m.Dropped[refine.DropMissingFK])
	assert.Equal(t, 5, m.RowsIn)
	assert.Equal(t, 2, m.RowsOut)
}

func TestCleanersAreIdempotent(t *testing.T) {
	in := schema.Policies().NewTable("bronze/erp_policies")
	mustAppend(t, in,
		[]any{"p1", "c1", "v1", "premium", "active", 500.0},
		[]any{"p2", "c1", "v1", "basic", "garbage", 300.0},
	)

	once, _ := refine.Policies(in)
	twice, _ := refine.Policies(once)

	assert.Equal(t, once.Rows, twice.Rows,
		"cleaning silver output must be a no-op")
}

func TestCleanersDoNotMutateInput(t *testing.T) {
	in := schema.Vehicles().NewTable("bronze/erp_vehicles")
	mustAppend(t, in,
		[]any{"v1", "c1", "toyota", "corolla", int64(2015), "abc 123"},
	)

	_, _ = refine.Vehicles(in)

	assert.Equal(t, "toyota", in.Value(0, "brand"))
	assert.Equal(t, "abc 123", in.Value(0, "plate"))
}

func TestPastDateRoundTrip(t *testing.T) {
	// Dates already parsed in bronze survive cleaning unchanged.
	in := schema.Payments().NewTable("bronze/erp_payments")
	date := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)
	mustAppend(t, in, []any{"pay1", "p1", 99.0, date})

	out, _ := refine.Payments(in)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, date, out.Value(0, "payment_date"))
}
