// Package aggregate builds the gold-stage fact table: one summary row per
// client known to silver, with per-client aggregates over policies,
// payments and claims and the derived ratios between them.
package aggregate

import (
	"fmt"

	"github.com/inslake/inslake/pkg/refine"
	"github.com/inslake/inslake/pkg/schema"
	"github.com/inslake/inslake/pkg/table"
)

// clientAgg accumulates per-client measures. Counts default to zero; sums
// and dates stay null until the first contributing row arrives.
type clientAgg struct {
	totalPolicies  int64
	totalPremium   any // float64 or nil
	activePolicies int64

	totalPayments   any // float64 or nil
	numPayments     int64
	lastPaymentDate any // time.Time or nil

	totalClaims any // float64 or nil
	numClaims   int64
}

// ClientSummary aggregates silver policies, payments and claims per client
// and anchors the result on the distinct client_id set of the silver client
// table, so a client with no activity still gets a row. Ratios are null
// whenever their denominator is null or zero; they are never a
// divide-by-zero failure.
func ClientSummary(
	clients, policies, payments, claims *table.Table,
) (*table.Table, error) {
	for _, t := range []*table.Table{clients, policies} {
		if t.Col("client_id") < 0 {
			return nil, fmt.Errorf(
				"client summary: table %s has no client_id column", t.Name,
			)
		}
	}

	aggs := make(map[string]*clientAgg)
	agg := func(clientID string) *clientAgg {
		a, ok := aggs[clientID]
		if !ok {
			a = &clientAgg{}
			aggs[clientID] = a
		}
		return a
	}

	// Policies per client, and the policy -> client lookup used to attach
	// client ids to payments and claims.
	policyClient := make(map[string]string, policies.Len())
	for i := 0; i < policies.Len(); i++ {
		clientID, ok := table.AsString(policies.Value(i, "client_id"))
		if !ok {
			continue
		}
		a := agg(clientID)
		a.totalPolicies++
		if premium, ok := table.AsFloat(policies.Value(i, "premium")); ok {
			a.totalPremium = addFloat(a.totalPremium, premium)
		} else if a.totalPremium == nil {
			// A client with policies but no valid premium sums to zero,
			// not null.
			a.totalPremium = 0.0
		}
		if status, _ := table.AsString(policies.Value(i, "status")); status == refine.StatusActive {
			a.activePolicies++
		}
		if policyID, ok := table.AsString(policies.Value(i, "policy_id")); ok {
			if _, dup := policyClient[policyID]; !dup {
				policyClient[policyID] = clientID
			}
		}
	}

	// Payments per client, attached through the policy lookup. Payments
	// whose policy is unknown have no client and drop out of the grouping.
	for i := 0; i < payments.Len(); i++ {
		policyID, ok := table.AsString(payments.Value(i, "policy_id"))
		if !ok {
			continue
		}
		clientID, ok := policyClient[policyID]
		if !ok {
			continue
		}
		a := agg(clientID)
		a.numPayments++
		if amount, ok := table.AsFloat(payments.Value(i, "amount")); ok {
			a.totalPayments = addFloat(a.totalPayments, amount)
		}
		if ts, ok := table.AsTime(payments.Value(i, "payment_date")); ok {
			if last, has := table.AsTime(a.lastPaymentDate); !has || ts.After(last) {
				a.lastPaymentDate = ts
			}
		}
	}

	// Claims per client, attached the same way.
	for i := 0; i < claims.Len(); i++ {
		policyID, ok := table.AsString(claims.Value(i, "policy_id"))
		if !ok {
			continue
		}
		clientID, ok := policyClient[policyID]
		if !ok {
			continue
		}
		a := agg(clientID)
		a.numClaims++
		if amount, ok := table.AsFloat(claims.Value(i, "amount")); ok {
			a.totalClaims = addFloat(a.totalClaims, amount)
		}
	}

	summary := table.New(schema.FactClientSummaryTable,
		table.Column{Name: "client_id", Type: table.String},
		table.Column{Name: "total_policies", Type: table.Int},
		table.Column{Name: "total_premium", Type: table.Float},
		table.Column{Name: "active_policies", Type: table.Int},
		table.Column{Name: "total_payments", Type: table.Float},
		table.Column{Name: "num_payments", Type: table.Int},
		table.Column{Name: "last_payment_date", Type: table.Date},
		table.Column{Name: "total_claims", Type: table.Float},
		table.Column{Name: "num_claims", Type: table.Int},
		table.Column{Name: "payment_to_premium_ratio", Type: table.Float},
		table.Column{Name: "claim_ratio", Type: table.Float},
		table.Column{Name: "avg_payment", Type: table.Float},
		table.Column{Name: "avg_claim", Type: table.Float},
	)

	// Anchor on the distinct clients of the silver client table, keeping
	// first-appearance order so repeated runs produce identical output.
	seen := make(map[string]struct{}, clients.Len())
	for i := 0; i < clients.Len(); i++ {
		clientID, ok := table.AsString(clients.Value(i, "client_id"))
		if !ok {
			continue
		}
		if _, dup := seen[clientID]; dup {
			continue
		}
		seen[clientID] = struct{}{}

		a := aggs[clientID]
		if a == nil {
			a = &clientAgg{}
		}
		err := summary.Append([]any{
			clientID,
			a.totalPolicies,
			a.totalPremium,
			a.activePolicies,
			a.totalPayments,
			a.numPayments,
			a.lastPaymentDate,
			a.totalClaims,
			a.numClaims,
			ratio(a.totalPayments, a.totalPremium),
			ratio(a.totalClaims, a.totalPremium),
			ratio(a.totalPayments, countDenom(a.numPayments)),
			ratio(a.totalClaims, countDenom(a.numClaims)),
		})
		if err != nil {
			return nil, err
		}
	}
	return summary, nil
}

func addFloat(acc any, v float64) any {
	if f, ok := acc.(float64); ok {
		return f + v
	}
	return v
}

// ratio divides two nullable numbers; it is null when either side is null
// or the denominator is zero.
func ratio(num, denom any) any {
	n, ok := table.AsFloat(num)
	if !ok {
		return nil
	}
	d, ok := table.AsFloat(denom)
	if !ok || d == 0 {
		return nil
	}
	return n / d
}

func countDenom(n int64) any {
	if n == 0 {
		return nil
	}
	return float64(n)
}
