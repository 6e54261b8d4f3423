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

	"github.com/inslake/inslake/internal/iobronze"
	"github.com/inslake/inslake/internal/iogold"
	"github.com/inslake/inslake/internal/iosilver"
	"github.com/inslake/inslake/pkg/config"
)

// getRunCmd returns the run command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getRunCmd() *cobra.Command {
	var dataDir string

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run bronze, silver and gold stages in order",
		Long: `Run the full pipeline: ingest the raw CSV files, clean them
into silver and build the gold dimensions and facts. Equivalent to
running 'inslake bronze', 'inslake silver' and 'inslake gold' back to
back; the pipeline stops at the first stage that fails.

Examples:
  inslake run
  inslake run --data-dir /tmp/raw`,
		Aliases: []string{"pipeline"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if cmd.Flags().Changed("data-dir") {
				cfg.Update([]config.Option{config.OptDataDir(dataDir)})
			}

			store, err := newStore(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			if err = iobronze.New(cfg, store).Ingest(ctx); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			if err = iosilver.New(cfg, store).Refine(ctx); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			if err = iogold.New(cfg, store).Aggregate(ctx); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			gn.Info("Pipeline complete, gold tables are ready")
			return nil
		},
	}

	runCmd.Flags().StringVar(&dataDir, "data-dir", "",
		"directory holding the raw CSV files")

	return runCmd
}
