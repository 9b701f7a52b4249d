// Package batch evaluates many independent chart queries concurrently.
// Queries never share state, so they fan out over a bounded worker group
// and results land in input order.
package batch

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"bazi/internal/analysis"
	"bazi/internal/chart"
	"bazi/internal/config"
	"bazi/internal/luck"
	"bazi/internal/solartime"
)

// Query is one birth instant to evaluate.
type Query struct {
	Name   string `yaml:"name"`
	Year   int    `yaml:"year"`
	Month  int    `yaml:"month"`
	Day    int    `yaml:"day"`
	Hour   int    `yaml:"hour"`
	Minute int    `yaml:"minute"`
	Second int    `yaml:"second"`

	// TrueSolar corrects the instant to true solar time at Longitude
	// (decimal degrees or DMS) before evaluation.
	TrueSolar bool   `yaml:"true_solar,omitempty"`
	Longitude string `yaml:"longitude,omitempty"`

	// Scope of the correction: "luck" (default) corrects only the
	// luck-onset computation, "all" corrects the pillars too.
	Scope string `yaml:"true_solar_scope,omitempty"`

	// Gender enables luck scheduling.
	Gender string `yaml:"gender,omitempty"`
	Sect   int    `yaml:"sect,omitempty"`
}

// Result is the evaluated output of one query.
type Result struct {
	Query     Query
	Resolved  time.Time // the instant the chart was resolved from
	Chart     chart.FourPillars
	Verdict   analysis.Verdict
	Favorable analysis.Favorable
	Luck      *luck.Cycle // nil when the query names no gender
}

// Options bounds the run.
type Options struct {
	// Concurrency caps simultaneous evaluations; <=0 means unbounded.
	Concurrency int
	// LuckPillars is the decade count scheduled per gendered query.
	LuckPillars int
}

type queryFile struct {
	Queries []Query `yaml:"queries"`
}

// LoadQueries reads a YAML query file. Both a top-level `queries:` list
// and a bare list are accepted.
func LoadQueries(path string) ([]Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read queries: %w", err)
	}

	var f queryFile
	if err := yaml.Unmarshal(data, &f); err == nil && len(f.Queries) > 0 {
		return f.Queries, nil
	}

	var list []Query
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse queries: %w", err)
	}
	return list, nil
}

// Run evaluates the queries concurrently. The first failure cancels the
// group and is returned with the query's position attached; results are
// ordered as the input was.
func Run(ctx context.Context, queries []Query, opts Options) ([]Result, error) {
	results := make([]Result, len(queries))

	eg, egCtx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		eg.SetLimit(opts.Concurrency)
	}

	for i, q := range queries {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res, err := Evaluate(q, opts.LuckPillars)
			if err != nil {
				return fmt.Errorf("query %d (%s): %w", i, q.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Evaluate resolves one query: optional true-solar correction, chart,
// strength verdict, and the luck cycle when a gender is given. The
// correction touches the pillars only under scope "all"; by default it
// reaches the luck onset alone.
func Evaluate(q Query, luckPillars int) (Result, error) {
	at, err := chart.CivilTime(q.Year, q.Month, q.Day, q.Hour, q.Minute, q.Second)
	if err != nil {
		return Result{}, err
	}

	luckAt := at
	if q.TrueSolar {
		if q.Longitude == "" {
			return Result{}, fmt.Errorf("%w: true_solar needs a longitude", chart.ErrInvalidInput)
		}
		scope := q.Scope
		if scope == "" {
			scope = config.ScopeLuck
		}
		if scope != config.ScopeAll && scope != config.ScopeLuck {
			return Result{}, fmt.Errorf("%w: true_solar_scope %q", chart.ErrInvalidInput, scope)
		}
		lon, err := solartime.ParseDegrees(q.Longitude, solartime.Longitude)
		if err != nil {
			return Result{}, err
		}
		if luckAt, err = solartime.Correct(at, lon); err != nil {
			return Result{}, err
		}
		if scope == config.ScopeAll {
			at = luckAt
		}
	}

	fp, err := chart.Resolve(at)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Query:    q,
		Resolved: at,
		Chart:    fp,
		Verdict:  analysis.Assess(fp),
	}
	res.Favorable = analysis.FavorableElements(res.Verdict)

	if q.Gender != "" {
		g, err := luck.ParseGender(q.Gender)
		if err != nil {
			return Result{}, err
		}
		sect := luck.Sect(q.Sect)
		if q.Sect == 0 {
			sect = luck.SectExact
		}
		if luckPillars <= 0 {
			luckPillars = 9
		}
		cycle, err := luck.Schedule(luckAt, fp, g, sect, luckPillars)
		if err != nil {
			return Result{}, err
		}
		res.Luck = &cycle
	}

	return res, nil
}
