// Package pipelineerror defines the error types shared by the pipeline stages.
package pipelineerror

import "fmt"

// ParseError represents a failure to parse a raw field into its typed form.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s='%s': %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a record that failed a validation rule.
type ValidationError struct {
	TransactionID string
	Rule          string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for transaction '%s': %s", e.TransactionID, e.Rule)
}

// FetchError represents a failure to retrieve data from the product catalog
// service. The pipeline recovers from it by continuing with an empty mapping.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog fetch failed for %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("catalog fetch failed for %s: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// EmptyDatasetError is the fatal condition for a run: nothing was parsed, or
// nothing survived validation and filtering. No partial report is generated.
type EmptyDatasetError struct {
	Stage string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("no transactions remaining after %s", e.Stage)
}
