package store

import "fjacquet/sales-analytics/internal/models"

// MockStore is an in-memory implementation of the writer interfaces for
// tests.
type MockStore struct {
	Enriched []models.EnrichedTransaction
	Reports  []string

	EnrichedErr error
	ReportErr   error
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{}
}

// WriteEnriched captures the enriched records.
func (m *MockStore) WriteEnriched(records []models.EnrichedTransaction) error {
	if m.EnrichedErr != nil {
		return m.EnrichedErr
	}
	m.Enriched = append([]models.EnrichedTransaction{}, records...)
	return nil
}

// WriteReport captures the rendered report.
func (m *MockStore) WriteReport(content string) error {
	if m.ReportErr != nil {
		return m.ReportErr
	}
	m.Reports = append(m.Reports, content)
	return nil
}
