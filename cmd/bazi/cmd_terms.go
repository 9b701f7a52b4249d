package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"bazi/internal/astro"
	"bazi/internal/terms"
)

// termsCmd lists the solar terms of a year
var termsCmd = &cobra.Command{
	Use:   "terms [year]",
	Short: "List the 24 solar terms of a sexagenary year",
	Long: `Lists the solar-term cycle that opens with 立春 of the given year.
The last two terms fall in the following civil January. Sectional terms,
which open the sexagenary months, are highlighted.

Defaults to the current year.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTerms,
}

func runTerms(cmd *cobra.Command, args []string) error {
	year := time.Now().In(astro.Beijing).Year()
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[0])
		}
		year = n
	}

	occs, err := terms.OfYear(year)
	if err != nil {
		return err
	}

	r := newRenderer(pretty)
	r.Terms(cmd.OutOrStdout(), year, occs)
	return nil
}
