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
	"github.com/inslake/inslake/pkg/config"
)

// getBronzeCmd returns the bronze command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getBronzeCmd() *cobra.Command {
	var dataDir string

	bronzeCmd := &cobra.Command{
		Use:   "bronze",
		Short: "Ingest raw CSV files into the bronze stage",
		Long: `Read the raw CSV files listed in sources.yaml and store them
as bronze tables, preserving the source data as-is apart from light type
coercion (numbers, booleans). A file that cannot be read is logged and
skipped; the stage fails only when no file could be ingested.

Data sources configured in: ~/.config/inslake/sources.yaml

Examples:
  inslake bronze
  inslake bronze --data-dir /tmp/raw`,
		Aliases: []string{"ingest"},
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

			gn.Info(`Next steps:
  - Run '<em>inslake silver</em>' to clean and validate the data
`)
			return nil
		},
	}

	bronzeCmd.Flags().StringVar(&dataDir, "data-dir", "",
		"directory holding the raw CSV files")

	return bronzeCmd
}
