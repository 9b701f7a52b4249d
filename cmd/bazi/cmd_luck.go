package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bazi/internal/chart"
	"bazi/internal/config"
	"bazi/internal/luck"
	"bazi/internal/solartime"
)

var (
	luckGender    string
	luckSect      int
	luckPillars   int
	luckAnnual    int
	luckLongitude string
	luckTrueSolar bool
	luckScope     string
)

// luckCmd schedules the decade luck cycle
var luckCmd = &cobra.Command{
	Use:   "luck [year] [month] [day] [hour] [minute] [second]",
	Short: "Schedule the decade luck pillars of a birth instant",
	Long: `Schedules the luck cycle (大运): walking direction from the year
stem's polarity and the gender, onset from the distance to the adjacent
sectional term, one pillar per decade from the month pillar.

Without --gender both sequences are printed.

Examples:
  bazi luck 1986 4 6 0 20 --gender male --true-solar --lon 115.449444
  bazi luck 1986 4 6 0 20 --sect 1 --annual 10`,
	Args: cobra.RangeArgs(5, 6),
	RunE: runLuck,
}

func init() {
	luckCmd.Flags().StringVar(&luckGender, "gender", "", "male/female (1/0, 男/女); empty prints both")
	luckCmd.Flags().IntVar(&luckSect, "sect", 0, "Onset method: 1 time-branch, 2 exact (default from config)")
	luckCmd.Flags().IntVar(&luckPillars, "pillars", 0, "Decade count (default from config)")
	luckCmd.Flags().IntVar(&luckAnnual, "annual", 0, "Annual pillars listed per decade")
	luckCmd.Flags().StringVar(&luckLongitude, "lon", "", "Birth longitude, feeds the true-solar correction")
	luckCmd.Flags().BoolVar(&luckTrueSolar, "true-solar", false, "Correct to true solar time (requires --lon)")
	luckCmd.Flags().StringVar(&luckScope, "true-solar-scope", "", "Correction scope: all or luck")
}

// trueSolarInstant parses the longitude and corrects the instant to
// true solar time.
func trueSolarInstant(at time.Time, lonArg string) (time.Time, error) {
	lon, err := solartime.ParseDegrees(lonArg, solartime.Longitude)
	if err != nil {
		return time.Time{}, err
	}
	return solartime.Correct(at, lon)
}

func runLuck(cmd *cobra.Command, args []string) error {
	civil, err := parseInstant(args)
	if err != nil {
		return err
	}

	sect := luck.Sect(luckSect)
	if luckSect == 0 {
		sect = luck.Sect(cfg.Sect)
	}
	count := luckPillars
	if count == 0 {
		count = cfg.LuckPillars
	}
	scope := luckScope
	if scope == "" {
		scope = cfg.TrueSolarScope
	}
	if scope != config.ScopeAll && scope != config.ScopeLuck {
		return fmt.Errorf("%w: true-solar scope %q", chart.ErrInvalidInput, scope)
	}

	if luckTrueSolar && luckLongitude == "" {
		return fmt.Errorf("%w: --true-solar requires --lon", chart.ErrInvalidInput)
	}

	// When enabled, the luck onset always uses the corrected instant;
	// the chart does only when the scope says so.
	chartAt, luckAt := civil, civil
	if luckTrueSolar {
		luckAt, err = trueSolarInstant(civil, luckLongitude)
		if err != nil {
			return err
		}
		if scope == config.ScopeAll {
			chartAt = luckAt
		}
	}

	fp, err := chart.Resolve(chartAt)
	if err != nil {
		return err
	}
	logger.Debug("Chart resolved for luck scheduling",
		zap.String("pillars", fp.String()),
		zap.Int("sect", int(sect)))

	out := cmd.OutOrStdout()
	r := newRenderer(pretty)

	genders := []luck.Gender{luck.Male, luck.Female}
	if luckGender != "" {
		g, err := luck.ParseGender(luckGender)
		if err != nil {
			return err
		}
		genders = []luck.Gender{g}
	}

	for _, g := range genders {
		cycle, err := luck.Schedule(luckAt, fp, g, sect, count)
		if err != nil {
			return err
		}
		if len(genders) > 1 {
			fmt.Fprintf(out, "\n%v命：\n", g)
		}
		r.Luck(out, cycle, luckAnnual, chartAt.Year())
	}
	return nil
}
