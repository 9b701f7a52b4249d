package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bazi/internal/batch"
)

var batchConcurrency int

// batchCmd evaluates a YAML file of queries concurrently
var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Evaluate a YAML file of chart queries concurrently",
	Long: `Reads a YAML list of birth instants and evaluates them in parallel.
Queries are independent, so they fan out over a bounded worker group.

Query fields: name, year, month, day, hour, minute, second, and the
optional true_solar, longitude and true_solar_scope (true-solar
correction, luck-only by default), gender and sect (luck cycle).

Example:
  bazi batch charts.yaml --concurrency 8`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "Maximum parallel evaluations")
}

func runBatch(cmd *cobra.Command, args []string) error {
	queries, err := batch.LoadQueries(args[0])
	if err != nil {
		return err
	}
	logger.Info("Batch loaded",
		zap.String("file", args[0]),
		zap.Int("queries", len(queries)))

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	results, err := batch.Run(ctx, queries, batch.Options{
		Concurrency: batchConcurrency,
		LuckPillars: cfg.LuckPillars,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	r := newRenderer(pretty)
	for i, res := range results {
		name := res.Query.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		fmt.Fprintf(out, "\n%s  %s  %s（%s）\n",
			name,
			res.Resolved.Format("2006-01-02 15:04"),
			res.Chart.String(),
			res.Verdict.Bias)
		if res.Luck != nil {
			r.Luck(out, *res.Luck, 0, res.Resolved.Year())
		}
	}
	return nil
}
