package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/shoplens/shoplens/internal/analytics"
	"github.com/shoplens/shoplens/internal/config"
	"github.com/shoplens/shoplens/internal/facts"
	"github.com/shoplens/shoplens/pkg/database"
	"github.com/shoplens/shoplens/pkg/formatting"
)

var sections = []string{
	"all", "daily-orders", "daily-spend", "products",
	"reviews", "status", "geography", "rfm",
}

func rootCommand() *cobra.Command {
	var (
		start     string
		end       string
		section   string
		outDir    string
		ascending bool
		cityLimit int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate order analytics reports from the fact table",
		Long: `Generate order analytics reports from the fact table.

Loads order facts for the requested approval-date range, runs the
selected aggregation, and writes an indented JSON document to the
output directory. Without --start and --end the full dataset range
is used.

Examples:
  # Full snapshot over the whole dataset
  report

  # Daily order series for one month
  report --section daily-orders --start 2017-06-01 --end 2017-06-30

  # Least popular product categories
  report --section products --ascending`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), start, end, section, outDir, ascending, cityLimit)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Range start date (YYYY-MM-DD, default: dataset minimum)")
	cmd.Flags().StringVar(&end, "end", "", "Range end date (YYYY-MM-DD, default: dataset maximum)")
	cmd.Flags().StringVar(&section, "section", "all", fmt.Sprintf("Report section %v", sections))
	cmd.Flags().StringVar(&outDir, "out", ".", "Output directory for the report document")
	cmd.Flags().BoolVar(&ascending, "ascending", false, "Sort product categories least popular first")
	cmd.Flags().IntVar(&cityLimit, "city-limit", analytics.DefaultCityLimit, "Number of cities in the geography section")

	return cmd
}

func run(ctx context.Context, start, end, section, outDir string, ascending bool, cityLimit int) error {
	if !validSection(section) {
		return fmt.Errorf("unknown section %q, expected one of %v", section, sections)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Connection().Close()

	source := facts.New(db.Connection(), logger)

	from, to, err := resolveRange(ctx, source, start, end)
	if err != nil {
		return err
	}

	table, err := source.LoadRange(ctx, from, to)
	if err != nil {
		return err
	}

	payload, err := buildSection(table, from, to, section, ascending, cityLimit)
	if err != nil {
		return err
	}

	path := outputPath(outDir, section, from, to)
	if err := writeDocument(path, payload); err != nil {
		return err
	}

	logger.Info("report written",
		"section", section,
		"path", path,
		"rows", len(table),
		"total_spend", formatting.BRL(totalSpend(table)),
	)
	return nil
}

// resolveRange fills missing bounds from the dataset's minimum and
// maximum approval dates.
func resolveRange(ctx context.Context, source facts.System, start, end string) (time.Time, time.Time, error) {
	if start != "" && end != "" {
		return parseRange(start, end)
	}

	minAt, maxAt, err := source.Bounds(ctx)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	from := analytics.DateOf(minAt)
	to := analytics.DateOf(maxAt)
	if start != "" {
		if from, err = formatting.ParseDate(start); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if end != "" {
		if to, err = formatting.ParseDate(end); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	from, err := formatting.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --start: %w", err)
	}
	to, err := formatting.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --end: %w", err)
	}
	return from, to, nil
}

func buildSection(table analytics.Table, from, to time.Time, section string, ascending bool, cityLimit int) (any, error) {
	if section == "all" {
		return analytics.Run(table, from, to)
	}

	if err := analytics.Validate(table); err != nil {
		return nil, err
	}
	filtered := analytics.FilterRange(table, from, to)

	switch section {
	case "daily-orders":
		return analytics.DailyOrderSeries(filtered), nil
	case "daily-spend":
		return analytics.DailySpendSeries(filtered), nil
	case "products":
		return analytics.ProductPopularity(filtered, ascending), nil
	case "reviews":
		return analytics.ReviewScores(filtered)
	case "status":
		return analytics.OrderStatuses(filtered)
	case "geography":
		return buildGeography(filtered, cityLimit)
	case "rfm":
		return analytics.RFMSegmentation(filtered), nil
	}
	return nil, fmt.Errorf("unknown section %q", section)
}

func buildGeography(table analytics.Table, cityLimit int) (any, error) {
	states, topState, err := analytics.CustomersByState(table)
	if err != nil {
		return nil, err
	}
	cities, topCity, err := analytics.CustomersByCity(table, cityLimit)
	if err != nil {
		return nil, err
	}
	return analytics.GeographySummary{
		States:   states,
		TopState: topState,
		Cities:   cities,
		TopCity:  topCity,
	}, nil
}

func writeDocument(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func outputPath(outDir, section string, from, to time.Time) string {
	name := fmt.Sprintf("%s_%s_%s_%s.json",
		section,
		formatting.FormatDate(from),
		formatting.FormatDate(to),
		time.Now().UTC().Format("20060102T150405Z"),
	)
	return filepath.Join(outDir, name)
}

func totalSpend(table analytics.Table) float64 {
	var total float64
	for _, row := range table {
		total += row.PaymentValue
	}
	return total
}

func validSection(section string) bool {
	for _, s := range sections {
		if s == section {
			return true
		}
	}
	return false
}
