// Package store persists the pipeline outputs: the enriched dataset and the
// rendered text report. The writer interfaces keep the core logic testable
// without real file I/O.
package store

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"fjacquet/sales-analytics/internal/fileutils"
	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/models"
)

// DefaultDelimiter separates the fields of the enriched output file.
const DefaultDelimiter = '|'

// EnrichedWriter consumes the enriched record set.
type EnrichedWriter interface {
	WriteEnriched(records []models.EnrichedTransaction) error
}

// ReportWriter consumes the rendered report document.
type ReportWriter interface {
	WriteReport(content string) error
}

// FileStore writes the pipeline outputs to flat files.
type FileStore struct {
	enrichedPath string
	reportPath   string
	delimiter    rune
	logger       logging.Logger
}

// NewFileStore creates a FileStore writing the enriched dataset and the
// report to the given paths.
func NewFileStore(enrichedPath, reportPath string, delimiter rune, logger logging.Logger) *FileStore {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &FileStore{
		enrichedPath: enrichedPath,
		reportPath:   reportPath,
		delimiter:    delimiter,
		logger:       logger,
	}
}

// WriteEnriched writes the enriched records as a delimited file with a
// header row.
func (s *FileStore) WriteEnriched(records []models.EnrichedTransaction) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records")
	}

	file, err := fileutils.CreateFile(s.enrichedPath)
	if err != nil {
		return fmt.Errorf("error creating enriched file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = s.delimiter

	if err := gocsv.MarshalCSV(&records, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing enriched data: %w", err)
	}

	s.logger.Info("Wrote enriched dataset",
		logging.Field{Key: logging.FieldFile, Value: s.enrichedPath},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return nil
}

// WriteReport writes the rendered report document.
func (s *FileStore) WriteReport(content string) error {
	if err := fileutils.WriteFile(s.reportPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	s.logger.Info("Wrote sales report",
		logging.Field{Key: logging.FieldFile, Value: s.reportPath})
	return nil
}

// ReadEnrichedFile reads an enriched dataset back from disk. Used by the
// round-trip tests and by downstream tooling that re-consumes the output.
func ReadEnrichedFile(filePath string, delimiter rune) ([]models.EnrichedTransaction, error) {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	file, err := os.Open(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("error opening enriched file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.Comma = delimiter

	var records []models.EnrichedTransaction
	if err := gocsv.UnmarshalCSV(reader, &records); err != nil {
		return nil, fmt.Errorf("error parsing enriched file: %w", err)
	}
	return records, nil
}
