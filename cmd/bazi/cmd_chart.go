package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bazi/internal/analysis"
	"bazi/internal/chart"
	"bazi/internal/config"
	"bazi/internal/solartime"
	"bazi/internal/terms"
)

var (
	chartLongitude string
	chartLatitude  string
	chartTrueSolar bool
	chartScope     string

	chartGods         bool
	chartStrength     bool
	chartRelations    bool
	chartHidden       bool
	chartNayin        bool
	chartStages       bool
	chartVoids        bool
	chartInteractions bool
	chartAll          bool
)

// chartCmd resolves a chart from a civil birth instant
var chartCmd = &cobra.Command{
	Use:   "chart [year] [month] [day] [hour] [minute] [second]",
	Short: "Resolve the four pillars of a birth instant",
	Long: `Resolves a civil instant (UTC+8) to its four sexagenary pillars.

With --true-solar the instant is first corrected to true solar time for
the --lon longitude (decimal degrees or DMS like E115°26'58"). The
correction scope defaults to luck-only; pass --true-solar-scope all to
correct the pillars themselves. Latitude is recorded for display only.

Examples:
  bazi chart 1986 4 6 0 20
  bazi chart 1986 4 6 0 20 --true-solar --lon 115.449444 --true-solar-scope all --gods`,
	Args: cobra.RangeArgs(5, 6),
	RunE: runChart,
}

func init() {
	chartCmd.Flags().StringVar(&chartLongitude, "lon", "", "Birth longitude, feeds the true-solar correction")
	chartCmd.Flags().StringVar(&chartLatitude, "lat", "", "Birth latitude, shown with the location line")
	chartCmd.Flags().BoolVar(&chartTrueSolar, "true-solar", false, "Correct to true solar time (requires --lon)")
	chartCmd.Flags().StringVar(&chartScope, "true-solar-scope", "", "Correction scope: all or luck")

	chartCmd.Flags().BoolVar(&chartGods, "gods", false, "Show ten-god labels")
	chartCmd.Flags().BoolVar(&chartStrength, "strength", false, "Show the day-master strength verdict")
	chartCmd.Flags().BoolVar(&chartRelations, "relations", false, "Show the element relation flow")
	chartCmd.Flags().BoolVar(&chartHidden, "hidden", false, "Show hidden stems")
	chartCmd.Flags().BoolVar(&chartNayin, "nayin", false, "Show nayin names")
	chartCmd.Flags().BoolVar(&chartStages, "stages", false, "Show twelve-stage positions")
	chartCmd.Flags().BoolVar(&chartVoids, "voids", false, "Show void branches")
	chartCmd.Flags().BoolVar(&chartInteractions, "interactions", false, "Show stem combinations and branch relations")
	chartCmd.Flags().BoolVar(&chartAll, "all", false, "Show every derived attribute")
}

// parseInstant reads year month day hour minute [second] positional args.
func parseInstant(args []string) (time.Time, error) {
	vals := make([]int, 6)
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q is not a number", chart.ErrInvalidInput, a)
		}
		vals[i] = n
	}
	return chart.CivilTime(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5])
}

func runChart(cmd *cobra.Command, args []string) error {
	civil, err := parseInstant(args)
	if err != nil {
		return err
	}

	if chartTrueSolar && chartLongitude == "" {
		return fmt.Errorf("%w: --true-solar requires --lon", chart.ErrInvalidInput)
	}
	scope := chartScope
	if scope == "" {
		scope = cfg.TrueSolarScope
	}
	if scope != config.ScopeAll && scope != config.ScopeLuck {
		return fmt.Errorf("%w: true-solar scope %q", chart.ErrInvalidInput, scope)
	}

	var location []string
	var lonVal float64
	if chartLongitude != "" {
		if lonVal, err = solartime.ParseDegrees(chartLongitude, solartime.Longitude); err != nil {
			return err
		}
		location = append(location, fmt.Sprintf("经 %.4f°", lonVal))
	}
	if chartLatitude != "" {
		latVal, err := solartime.ParseDegrees(chartLatitude, solartime.Latitude)
		if err != nil {
			return err
		}
		location = append(location, fmt.Sprintf("纬 %.4f°", latVal))
	}

	// Without --true-solar the longitude is informational only. With it,
	// the pillars move only when the scope covers them.
	at := civil
	if chartTrueSolar && scope == config.ScopeAll {
		if at, err = solartime.Correct(civil, lonVal); err != nil {
			return err
		}
		logger.Debug("True solar time applied",
			zap.Time("civil", civil),
			zap.Time("corrected", at))
	}

	fp, err := chart.Resolve(at)
	if err != nil {
		return err
	}

	prev, next, err := terms.BoundingSectional(at)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	r := newRenderer(pretty)
	r.Chart(out, at, civil, fp, prev, next)
	if len(location) > 0 {
		r.Location(out, location)
	}

	if chartAll || chartHidden {
		r.Hidden(out, fp)
	}
	if chartAll || chartGods {
		r.Gods(out, fp, analysis.Gods(fp))
	}
	if chartAll || chartRelations {
		r.Relations(out, fp, analysis.RelationFlow(fp))
	}
	if chartAll || chartStrength {
		v := analysis.Assess(fp)
		r.Strength(out, v, analysis.FavorableElements(v))
	}
	if chartAll || chartStages {
		r.Stages(out, analysis.Stages(fp))
	}
	if chartAll || chartNayin {
		r.Nayins(out, analysis.Nayins(fp))
	}
	if chartAll || chartVoids {
		r.Voids(out, analysis.Voids(fp))
	}
	if chartAll || chartInteractions {
		r.Interactions(out, analysis.StemCombinations(fp), analysis.BranchInteractions(fp))
	}
	return nil
}
