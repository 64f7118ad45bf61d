package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strconv"
	"time"

	"clovercli/internal/clover"
	"clovercli/internal/config"
	"clovercli/internal/exporter"
	"clovercli/internal/infrastructure"
	"clovercli/internal/report"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "closeout-report failed: %v\n", r)
			fmt.Fprintf(os.Stderr, "stack trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	prev := report.PreviousMonth(time.Now())

	year := flag.Int("year", prev.Year, "report year (default: previous month's year)")
	monthFlag := flag.String("month", strconv.Itoa(int(prev.Month)),
		"month 1-12, or comma-separated list like \"1,2,3\" for individual plus combined reports")
	token := flag.String("token", "", "Clover API access token")
	merchant := flag.String("merchant", "", "Clover merchant ID")
	output := flag.String("output", "", "output CSV path (single-month report, or the combined report for multiple months)")
	useEnv := flag.Bool("env", false, "load credentials from CLOVER_* environment variables only")
	xlsx := flag.Bool("xlsx", false, "additionally write each report as an Excel workbook")
	batchID := flag.String("batch", "", "print the summary of a single batch by id instead of a report")
	flag.Parse()

	// Validate the month selection before touching network or disk.
	months, err := report.ParseMonths(*year, *monthFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(config.Overrides{
		AccessToken: *token,
		MerchantID:  *merchant,
		EnvOnly:     *useEnv,
	})
	if err != nil {
		if errors.Is(err, config.ErrMissingCredentials) {
			printCredentialGuidance()
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := context.Background()
	client := clover.NewClient(cfg.Clover.BaseURL, cfg.Clover.MerchantID, cfg.Clover.AccessToken,
		clover.WithTimeout(cfg.Clover.Timeout),
		clover.WithLogger(logger))

	if *batchID != "" {
		printBatchSummary(ctx, client, *batchID)
		return
	}

	gen := report.NewGenerator(client, logger)
	exp := exporter.NewMonthlyExporter(cfg.Report.OutputDir, cfg.Report.Organization, logger)

	if len(months) == 1 {
		exportSingleMonth(ctx, gen, exp, months[0], *output, *xlsx)
		return
	}
	exportMultipleMonths(ctx, gen, exp, months, *output, *xlsx)
}

// printBatchSummary fetches one batch and prints its settled amounts.
func printBatchSummary(ctx context.Context, client *clover.Client, batchID string) {
	batch := client.BatchDetail(ctx, batchID)
	if batch.ID == "" {
		fmt.Printf("No batch found with ID: %s\n", batchID)
		return
	}
	summary := report.Summarize(batch)
	fmt.Printf("Date: %s, Debit: $%.2f, Tips: $%.2f, Total: $%.2f\n",
		summary.Date, summary.Debit, summary.Tip, summary.Total)
}

func exportSingleMonth(ctx context.Context, gen *report.Generator, exp *exporter.MonthlyExporter, m report.Month, output string, xlsx bool) {
	fmt.Printf("Generating CSV report for %s...\n", m.Name())

	rows := gen.MonthRows(ctx, m)
	path, err := exp.ExportMonth(m, rows, output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("CSV report completed: %s\n", path)

	if xlsx {
		wbPath, err := exp.ExportMonthWorkbook(m, rows, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Excel report completed: %s\n", wbPath)
	}
}

// exportMultipleMonths writes one report per month under derived filenames,
// then a combined report covering all months. The --output override applies
// to the combined file only.
func exportMultipleMonths(ctx context.Context, gen *report.Generator, exp *exporter.MonthlyExporter, months []report.Month, output string, xlsx bool) {
	fmt.Printf("Generating CSV reports for %d months...\n", len(months))

	var combined []report.Row
	for _, m := range months {
		rows := gen.MonthRows(ctx, m)
		combined = append(combined, rows...)

		path, err := exp.ExportMonth(m, rows, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  - %s: %s\n", m.Name(), path)

		if xlsx {
			if _, err := exp.ExportMonthWorkbook(m, rows, ""); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
	}

	combinedPath, err := exp.ExportMultiMonth(months, combined, output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Combined report: %s\n", combinedPath)

	if xlsx {
		wbPath, err := exp.ExportMultiMonthWorkbook(months, combined, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Combined workbook: %s\n", wbPath)
	}
}

func printCredentialGuidance() {
	fmt.Fprintln(os.Stderr, "Error: missing required Clover API credentials.")
	fmt.Fprintln(os.Stderr, "Provide them one of these ways:")
	fmt.Fprintln(os.Stderr, "  1. config.yaml with clover.access_token and clover.merchant_id")
	fmt.Fprintln(os.Stderr, "  2. --env with environment variables:")
	fmt.Fprintln(os.Stderr, "       CLOVER_ACCESS_TOKEN")
	fmt.Fprintln(os.Stderr, "       CLOVER_MERCHANT_ID")
	fmt.Fprintln(os.Stderr, "       CLOVER_BASE_URL (optional)")
	fmt.Fprintln(os.Stderr, "     A .env file in the working directory is honored.")
	fmt.Fprintln(os.Stderr, "  3. --token and --merchant flags for one-time use")
}
