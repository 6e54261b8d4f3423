/*
Copyright © 2025 The inslake authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/inslake/inslake/internal/iogenerate"
	"github.com/inslake/inslake/pkg/config"
)

// getGenerateCmd returns the generate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getGenerateCmd() *cobra.Command {
	var (
		clients, vehicles, policies, claims, payments int
		seed                                          uint64
		dataDir                                       string
	)

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic raw CSV files",
		Long: `Generate the six raw CSV files the bronze stage expects,
with realistic quality problems baked in: missing emails and phones,
orphaned foreign keys, shouty casing, negative payment amounts and the
occasional future claim date.

The files land in the data directory (see 'data_dir' in config.yaml,
default ~/.local/share/inslake/data). Pass --seed for reproducible output.

Examples:
  inslake generate
  inslake generate --clients 10000 --seed 42
  inslake generate --data-dir /tmp/raw`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var genOpts []config.Option
			if cmd.Flags().Changed("clients") {
				genOpts = append(genOpts, config.OptGenerateClients(clients))
			}
			if cmd.Flags().Changed("vehicles") {
				genOpts = append(genOpts, config.OptGenerateVehicles(vehicles))
			}
			if cmd.Flags().Changed("policies") {
				genOpts = append(genOpts, config.OptGeneratePolicies(policies))
			}
			if cmd.Flags().Changed("claims") {
				genOpts = append(genOpts, config.OptGenerateClaims(claims))
			}
			if cmd.Flags().Changed("payments") {
				genOpts = append(genOpts, config.OptGeneratePayments(payments))
			}
			if cmd.Flags().Changed("seed") {
				genOpts = append(genOpts, config.OptGenerateSeed(seed))
			}
			if cmd.Flags().Changed("data-dir") {
				genOpts = append(genOpts, config.OptDataDir(dataDir))
			}
			if len(genOpts) > 0 {
				cfg.Update(genOpts)
			}

			err := iogenerate.New(cfg).Generate(context.Background())
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			gn.Info(`Next steps:
  - Run '<em>inslake bronze</em>' to ingest the raw files
  - Run '<em>inslake run</em>' to build all three stages at once
`)
			return nil
		},
	}

	generateCmd.Flags().IntVar(&clients, "clients", 0,
		"number of client rows")
	generateCmd.Flags().IntVar(&vehicles, "vehicles", 0,
		"number of vehicle rows")
	generateCmd.Flags().IntVar(&policies, "policies", 0,
		"number of policy rows")
	generateCmd.Flags().IntVar(&claims, "claims", 0,
		"number of claim rows")
	generateCmd.Flags().IntVar(&payments, "payments", 0,
		"number of payment rows")
	generateCmd.Flags().Uint64Var(&seed, "seed", 0,
		"random seed (0 = random)")
	generateCmd.Flags().StringVar(&dataDir, "data-dir", "",
		"directory for the generated CSV files")

	return generateCmd
}
