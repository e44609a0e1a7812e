// Package analyze contains the command that runs the full sales analytics
// pipeline.
package analyze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/sales-analytics/internal/config"
	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/pipeline"
	"fjacquet/sales-analytics/internal/pipelineerror"
	"fjacquet/sales-analytics/internal/validation"
)

var (
	inputFile  string
	outputDir  string
	region     string
	minAmount  string
	maxAmount  string
	topN       int
	lowCutoff  int
	catalogURL string
)

// Cmd is the analyze command.
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full pipeline: parse, validate, analyze, enrich and report",
	Long: `Reads the sales data file, validates and filters the transactions,
computes the analytics, enriches the records against the product catalog and
writes the enriched dataset plus the formatted text report.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "path to the pipe-delimited sales file")
	Cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for the enriched dataset and the report")
	Cmd.Flags().StringVarP(&region, "region", "r", "", "keep only transactions from this region")
	Cmd.Flags().StringVar(&minAmount, "min-amount", "", "keep only transactions with amount >= this value")
	Cmd.Flags().StringVar(&maxAmount, "max-amount", "", "keep only transactions with amount <= this value")
	Cmd.Flags().IntVar(&topN, "top", 0, "number of rows in the top products/customers tables")
	Cmd.Flags().IntVar(&lowCutoff, "threshold", -1, "quantity below which a product counts as low performing")
	Cmd.Flags().StringVar(&catalogURL, "catalog-url", "", "base URL of the product catalog service")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return err
	}
	applyFlags(cfg)

	logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))

	filters, err := buildFilters()
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(cfg, logger)
	result, err := runner.Run(cmd.Context(), filters)
	if err != nil {
		var empty *pipelineerror.EmptyDatasetError
		if errors.As(err, &empty) {
			// Fatal for the run but not a usage error: report and stop
			fmt.Printf("✗ %v. Please check your input file and filters.\n", err)
			return nil
		}
		return err
	}

	fmt.Println("Process complete!")
	fmt.Printf("  Records read:      %d\n", result.RawLines)
	fmt.Printf("  Records parsed:    %d\n", result.Parsed)
	fmt.Printf("  Valid records:     %d (invalid: %d)\n", result.Summary.FinalCount, result.Summary.Invalid)
	fmt.Printf("  Records enriched:  %d/%d\n", result.Matched, len(result.Enriched))
	fmt.Println("Files generated:")
	fmt.Printf("  - %s\n", cfg.EnrichedPath())
	fmt.Printf("  - %s\n", cfg.ReportPath())
	return nil
}

// applyFlags overrides configuration values with any flags the user set.
func applyFlags(cfg *config.Config) {
	if inputFile != "" {
		cfg.Input.File = inputFile
	}
	if outputDir != "" {
		cfg.Output.Directory = outputDir
	}
	if topN > 0 {
		cfg.Analytics.TopProducts = topN
		cfg.Analytics.TopCustomers = topN
	}
	if lowCutoff >= 0 {
		cfg.Analytics.LowQtyCutoff = lowCutoff
	}
	if catalogURL != "" {
		cfg.Catalog.BaseURL = catalogURL
	}
}

// buildFilters converts the flag values into validation filters. Amount
// bounds accept thousands separators the same way the source data does.
func buildFilters() (validation.Filters, error) {
	filters := validation.Filters{Region: region}

	if minAmount != "" {
		min, err := parseAmountFlag(minAmount)
		if err != nil {
			return filters, fmt.Errorf("invalid --min-amount: %w", err)
		}
		filters.MinAmount = &min
	}
	if maxAmount != "" {
		max, err := parseAmountFlag(maxAmount)
		if err != nil {
			return filters, fmt.Errorf("invalid --max-amount: %w", err)
		}
		filters.MaxAmount = &max
	}
	return filters, nil
}

func parseAmountFlag(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
}
