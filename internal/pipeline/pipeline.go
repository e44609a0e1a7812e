// Package pipeline orchestrates the end-to-end run: read, parse, validate
// and filter, aggregate, fetch the catalog, enrich, persist, report. The
// collaborators are injected so the whole flow is testable without files or
// network.
package pipeline

import (
	"context"
	"time"

	"fjacquet/sales-analytics/internal/catalog"
	"fjacquet/sales-analytics/internal/config"
	"fjacquet/sales-analytics/internal/enrichment"
	"fjacquet/sales-analytics/internal/fileutils"
	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/models"
	"fjacquet/sales-analytics/internal/pipelineerror"
	"fjacquet/sales-analytics/internal/report"
	"fjacquet/sales-analytics/internal/salesparser"
	"fjacquet/sales-analytics/internal/store"
	"fjacquet/sales-analytics/internal/validation"
)

// ProductFetcher retrieves the product catalog.
type ProductFetcher interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
}

// LineSource produces the raw data lines of the sales feed.
type LineSource func(filePath string, logger logging.Logger) []string

// Result carries the outputs and stage counts of one pipeline run.
type Result struct {
	RawLines int
	Parsed   int
	Summary  models.FilterSummary
	Valid    []models.Transaction
	Enriched []models.EnrichedTransaction
	Matched  int
	Report   string
}

// Runner executes the sales analytics pipeline.
type Runner struct {
	cfg       *config.Config
	logger    logging.Logger
	readLines LineSource
	fetcher   ProductFetcher
	cache     *catalog.Cache
	enrichedW store.EnrichedWriter
	reportW   store.ReportWriter
	composer  *report.Composer
}

// Option configures a Runner, mainly for tests.
type Option func(*Runner)

// WithLineSource overrides the raw-line source.
func WithLineSource(src LineSource) Option {
	return func(r *Runner) { r.readLines = src }
}

// WithFetcher overrides the catalog fetcher.
func WithFetcher(f ProductFetcher) Option {
	return func(r *Runner) { r.fetcher = f }
}

// WithCache overrides the catalog cache.
func WithCache(c *catalog.Cache) Option {
	return func(r *Runner) { r.cache = c }
}

// WithStore overrides both output sinks.
func WithStore(enriched store.EnrichedWriter, reports store.ReportWriter) Option {
	return func(r *Runner) {
		r.enrichedW = enriched
		r.reportW = reports
	}
}

// WithComposer overrides the report composer.
func WithComposer(c *report.Composer) Option {
	return func(r *Runner) { r.composer = c }
}

// NewRunner wires a Runner from the configuration, with file-backed sinks
// and the HTTP catalog client as defaults.
func NewRunner(cfg *config.Config, logger logging.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	fileStore := store.NewFileStore(
		cfg.EnrichedPath(), cfg.ReportPath(),
		[]rune(cfg.Input.Delimiter)[0], logger)

	r := &Runner{
		cfg:       cfg,
		logger:    logger,
		readLines: fileutils.ReadSalesLines,
		fetcher: catalog.NewClient(
			cfg.Catalog.BaseURL, cfg.Catalog.Limit,
			time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second, logger),
		cache:     catalog.NewCache(cfg.Catalog.CacheFile, logger),
		enrichedW: fileStore,
		reportW:   fileStore,
		composer: report.NewComposer(logger,
			report.WithCurrencySymbol(cfg.Report.CurrencySymbol),
			report.WithTopProducts(cfg.Analytics.TopProducts),
			report.WithTopCustomers(cfg.Analytics.TopCustomers),
			report.WithLowQtyCutoff(cfg.Analytics.LowQtyCutoff)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the pipeline with the given filters. It returns an
// EmptyDatasetError when nothing is parsed or nothing survives validation
// and filtering; in that case no outputs are written.
func (r *Runner) Run(ctx context.Context, filters validation.Filters) (*Result, error) {
	result := &Result{}

	// Read
	lines := r.readLines(r.cfg.Input.File, r.logger)
	result.RawLines = len(lines)
	if len(lines) == 0 {
		return result, &pipelineerror.EmptyDatasetError{Stage: "reading"}
	}

	// Parse
	parsed := salesparser.Parse(lines, r.logger)
	result.Parsed = len(parsed)
	if len(parsed) == 0 {
		return result, &pipelineerror.EmptyDatasetError{Stage: "parsing"}
	}

	// Show what can be filtered before applying anything
	regions := validation.AvailableRegions(parsed)
	r.logger.Info("Regions present in dataset",
		logging.Field{Key: logging.FieldCount, Value: len(regions)},
		logging.Field{Key: "regions", Value: regions})
	if min, max, ok := validation.AmountRange(parsed); ok {
		r.logger.Info("Transaction amount range",
			logging.Field{Key: "min", Value: min.StringFixed(2)},
			logging.Field{Key: "max", Value: max.StringFixed(2)})
	}

	// Validate and filter
	valid, _, summary := validation.ValidateAndFilter(parsed, filters, r.logger)
	result.Summary = summary
	result.Valid = valid
	if len(valid) == 0 {
		return result, &pipelineerror.EmptyDatasetError{Stage: "validation and filtering"}
	}

	// Fetch catalog, falling back to the cached snapshot
	mapping := r.fetchMapping(ctx)

	// Enrich
	enriched := enrichment.Enrich(valid, mapping, r.logger)
	result.Enriched = enriched
	result.Matched = enrichment.MatchedCount(enriched)

	// Persist enriched dataset
	if err := r.enrichedW.WriteEnriched(enriched); err != nil {
		return result, err
	}

	// Compose and persist report
	result.Report = r.composer.Compose(valid, enriched)
	if err := r.reportW.WriteReport(result.Report); err != nil {
		return result, err
	}

	return result, nil
}

// fetchMapping builds the product mapping from the remote catalog, the local
// cache when the remote fails, or nothing at all. A missing catalog is a
// recoverable condition: every record then reports no match.
func (r *Runner) fetchMapping(ctx context.Context) models.ProductMapping {
	products, err := r.fetcher.FetchProducts(ctx)
	if err != nil || len(products) == 0 {
		if err != nil {
			r.logger.WithError(err).Warn("Catalog fetch failed, trying cache")
		}
		cached, cacheErr := r.cache.Load()
		if cacheErr != nil {
			r.logger.WithError(cacheErr).Warn("Catalog cache unavailable")
		}
		if len(cached) == 0 {
			r.logger.Warn("Continuing without enrichment data")
			return models.ProductMapping{}
		}
		r.logger.Info("Using cached catalog snapshot",
			logging.Field{Key: logging.FieldCount, Value: len(cached)})
		return models.NewProductMapping(cached)
	}

	if err := r.cache.Save(products); err != nil {
		r.logger.WithError(err).Warn("Failed to update catalog cache")
	}
	return models.NewProductMapping(products)
}
