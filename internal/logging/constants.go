package logging

// Standardized field names for structured logging. Using the same keys across
// all pipeline stages keeps the log output filterable.
const (
	FieldFile      = "file_path"
	FieldStage     = "stage"
	FieldCount     = "count"
	FieldInvalid   = "invalid"
	FieldRegion    = "region"
	FieldProduct   = "product"
	FieldCustomer  = "customer"
	FieldDate      = "date"
	FieldURL       = "url"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldEncoding  = "encoding"
	FieldDelimiter = "delimiter"
)
