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

	"github.com/inslake/inslake/internal/iogold"
)

// getGoldCmd returns the gold command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getGoldCmd() *cobra.Command {
	goldCmd := &cobra.Command{
		Use:   "gold",
		Short: "Build gold dimensions and facts from silver tables",
		Long: `Build the analytics layer from the current silver snapshot:

  gold/dim_clients           clients enriched with CRM attributes
  gold/dim_vehicles          vehicles keyed by a surrogate vehicle_key
  gold/fact_client_summary   one row per client with policy, payment
                             and claim aggregates

The builders run in parallel; nothing is written unless all three
succeed.

Examples:
  inslake gold`,
		Aliases: []string{"aggregate"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			store, err := newStore(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			if err = iogold.New(cfg, store).Aggregate(ctx); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			gn.Info("Gold tables are ready for analytics")
			return nil
		},
	}

	return goldCmd
}
