// Package iogenerate produces the six raw CSV files the bronze stage
// ingests. The data is deliberately dirty in the same ways the production
// feeds are: missing emails and foreign keys, blank phones, shouty
// casing, refund-negative payment amounts and the occasional claim dated
// in the future. Cleaning quality is only testable against data that
// needs cleaning.
package iogenerate

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"

	"github.com/inslake/inslake/pkg/config"
	"github.com/inslake/inslake/pkg/lifecycle"
)

type generator struct {
	cfg *config.Config
	f   *gofakeit.Faker
}

// New creates a raw-data Generator.
func New(cfg *config.Config) lifecycle.Generator {
	return &generator{
		cfg: cfg,
		f:   gofakeit.New(cfg.Generate.Seed),
	}
}

func (g *generator) Generate(ctx context.Context) error {
	start := time.Now()
	dataDir := g.cfg.ResolvedDataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return WriteError(dataDir, err)
	}
	slog.Info("Generating raw data", "dir", dataDir,
		"seed", g.cfg.Generate.Seed)

	clients, clientIDs := g.clients(g.cfg.Generate.Clients)
	crm := g.crmClients(clients)
	vehicles, vehicleIDs := g.vehicles(g.cfg.Generate.Vehicles, clientIDs)
	policies, policyIDs := g.policies(
		g.cfg.Generate.Policies, clientIDs, vehicleIDs,
	)
	claims := g.claims(g.cfg.Generate.Claims, policyIDs)
	payments := g.payments(g.cfg.Generate.Payments, policyIDs)

	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{"clients.csv",
			[]string{"client_id", "name", "email", "phone", "address"},
			clients},
		{"crm_clients.csv",
			[]string{
				"client_id", "name", "email", "phone", "address",
				"iban_account_number", "company_name", "client_type",
				"risk_level", "marketing_opt_in",
			},
			crm},
		{"vehicles.csv",
			[]string{
				"vehicle_id", "client_id", "brand", "model", "year",
				"plate",
			},
			vehicles},
		{"policies.csv",
			[]string{
				"policy_id", "client_id", "vehicle_id", "coverage",
				"status", "premium",
			},
			policies},
		{"claims.csv",
			[]string{
				"claim_id", "policy_id", "claim_date", "claim_type",
				"amount",
			},
			claims},
		{"payments.csv",
			[]string{"payment_id", "policy_id", "amount", "payment_date"},
			payments},
	}

	for _, file := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		path := filepath.Join(dataDir, file.name)
		if err := writeCSV(path, file.header, file.rows); err != nil {
			return err
		}
		gn.Info("Wrote <em>%s</em>: %d rows", file.name, len(file.rows))
	}

	slog.Info("Raw data generated",
		"duration", gnfmt.TimeString(time.Since(start).Seconds()))
	return nil
}

func (g *generator) clients(n int) ([][]string, []string) {
	bar := newProgressBar(n, "clients ")
	defer bar.Finish()

	rows := make([][]string, 0, n)
	ids := make([]string, 0, n)
	for range n {
		id := shortID()
		email := ""
		if g.f.Float64Range(0, 1) > 0.1 {
			email = g.f.Email()
		}
		phone := ""
		if g.f.Float64Range(0, 1) > 0.1 {
			phone = g.f.PhoneFormatted()
		}
		rows = append(rows, []string{
			id, g.f.Name(), email, phone, g.f.Address().Address,
		})
		ids = append(ids, id)
		bar.Increment()
	}
	return rows, ids
}

// crmClients derives a ~70% subset of the client base with independently
// degraded fields, the way a real CRM drifts from the ERP.
func (g *generator) crmClients(clients [][]string) [][]string {
	bar := newProgressBar(len(clients), "crm      ")
	defer bar.Finish()

	var rows [][]string
	for _, c := range clients {
		bar.Increment()
		if g.f.Float64Range(0, 1) > 0.7 {
			continue
		}
		name := c[1]
		if g.f.Float64Range(0, 1) <= 0.3 {
			name = shout(name)
		}
		email := c[2]
		if g.f.Float64Range(0, 1) <= 0.2 {
			email = ""
		}
		phone := c[3]
		if g.f.Float64Range(0, 1) <= 0.2 {
			phone = ""
		}
		address := c[4]
		if g.f.Float64Range(0, 1) <= 0.3 {
			address = ""
		}
		iban := ""
		if g.f.Float64Range(0, 1) > 0.7 {
			iban = "es" + g.f.DigitN(22)
		}
		company := ""
		if g.f.Float64Range(0, 1) > 0.7 {
			company = g.f.Company()
		}
		rows = append(rows, []string{
			c[0], name, email, phone, address, iban, company,
			g.f.RandomString([]string{"gold", "silver", "bronze"}),
			g.f.RandomString([]string{"low", "medium", "high"}),
			strconv.FormatBool(g.f.Bool()),
		})
	}
	return rows
}

func (g *generator) vehicles(n int, clientIDs []string) ([][]string, []string) {
	bar := newProgressBar(n, "vehicles ")
	defer bar.Finish()

	brands := []string{"toyota", "Honda", "FORD", "chevrolet", "Nissan"}
	models := []string{"corolla", "Civic", "F-150", "CRUZE", "sentra"}

	rows := make([][]string, 0, n)
	ids := make([]string, 0, n)
	for range n {
		id := shortID()
		clientID := ""
		if g.f.Float64Range(0, 1) > 0.05 {
			clientID = g.f.RandomString(clientIDs)
		}
		plate := g.f.LetterN(3) + " " + g.f.DigitN(3)
		rows = append(rows, []string{
			id, clientID,
			g.f.RandomString(brands),
			g.f.RandomString(models),
			strconv.Itoa(g.f.Number(1995, 2024)),
			plate,
		})
		ids = append(ids, id)
		bar.Increment()
	}
	return rows, ids
}

func (g *generator) policies(
	n int, clientIDs, vehicleIDs []string,
) ([][]string, []string) {
	bar := newProgressBar(n, "policies ")
	defer bar.Finish()

	coverages := []string{"basic", "Basic ", "INTERMEDIATE", "premium"}
	statuses := []string{"active", "Active", " expired", "CANCELLED"}

	rows := make([][]string, 0, n)
	ids := make([]string, 0, n)
	for range n {
		id := shortID()
		clientID := ""
		if g.f.Float64Range(0, 1) > 0.05 {
			clientID = g.f.RandomString(clientIDs)
		}
		vehicleID := ""
		if g.f.Float64Range(0, 1) > 0.05 {
			vehicleID = g.f.RandomString(vehicleIDs)
		}
		rows = append(rows, []string{
			id, clientID, vehicleID,
			g.f.RandomString(coverages),
			g.f.RandomString(statuses),
			formatAmount(g.f.Float64Range(200, 3000)),
		})
		ids = append(ids, id)
		bar.Increment()
	}
	return rows, ids
}

func (g *generator) claims(n int, policyIDs []string) [][]string {
	bar := newProgressBar(n, "claims   ")
	defer bar.Finish()

	types := []string{
		"collision", "Theft", "WEATHER DAMAGE", "fire", "Other",
	}

	rows := make([][]string, 0, n)
	for range n {
		policyID := ""
		if g.f.Float64Range(0, 1) > 0.1 {
			policyID = g.f.RandomString(policyIDs)
		}
		date := g.pastDate()
		if g.f.Float64Range(0, 1) <= 0.05 {
			// Fat-fingered claims from the future show up in the real
			// feed too.
			date = "2030-01-01"
		}
		rows = append(rows, []string{
			shortID(), policyID, date,
			g.f.RandomString(types),
			formatAmount(g.f.Float64Range(100, 20000)),
		})
		bar.Increment()
	}
	return rows
}

func (g *generator) payments(n int, policyIDs []string) [][]string {
	bar := newProgressBar(n, "payments ")
	defer bar.Finish()

	rows := make([][]string, 0, n)
	for range n {
		policyID := ""
		if g.f.Float64Range(0, 1) > 0.1 {
			policyID = g.f.RandomString(policyIDs)
		}
		// Refunds and chargebacks land in the same feed, hence the
		// negative range.
		rows = append(rows, []string{
			shortID(), policyID,
			formatAmount(g.f.Float64Range(-100, 3000)),
			g.pastDate(),
		})
		bar.Increment()
	}
	return rows
}

func (g *generator) pastDate() string {
	end := time.Now()
	start := end.AddDate(-10, 0, 0)
	return g.f.DateRange(start, end).Format("2006-01-02")
}

func shortID() string {
	return uuid.NewString()[:8]
}

func shout(s string) string {
	res := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		res = append(res, r)
	}
	return string(res)
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write(header); err != nil {
		return WriteError(path, err)
	}
	if err = w.WriteAll(rows); err != nil {
		return WriteError(path, err)
	}
	w.Flush()
	return w.Error()
}

// newProgressBar creates a progress bar with consistent settings.
func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
