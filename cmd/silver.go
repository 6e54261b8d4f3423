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

	"github.com/inslake/inslake/internal/iosilver"
)

// getSilverCmd returns the silver command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getSilverCmd() *cobra.Command {
	silverCmd := &cobra.Command{
		Use:   "silver",
		Short: "Clean bronze tables into the silver stage",
		Long: `Clean, validate and deduplicate every bronze table into its
silver counterpart.

This stage:
  1. Normalizes names, emails, phones, plates and IBANs
  2. Canonicalizes coverage, status and claim type enums
  3. Drops rows with missing keys, orphaned references,
     invalid dates or non-positive payment amounts
  4. Reports per-entity row counts and drop reasons

All six entities must be present in bronze; the stage aborts without
writing anything if one is missing.

Examples:
  inslake silver`,
		Aliases: []string{"clean"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			store, err := newStore(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			if err = iosilver.New(cfg, store).Refine(ctx); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			gn.Info(`Next steps:
  - Run '<em>inslake gold</em>' to build dimensions and facts
`)
			return nil
		},
	}

	return silverCmd
}
