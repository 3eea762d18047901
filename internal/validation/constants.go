package validation

import "errors"

// ErrSchemaViolation is returned when a document does not match its schema
var ErrSchemaViolation = errors.New("schema validation failed")

// Error messages
const (
	ErrMsgReadDataFmt      = "failed to read data file %s: %w"
	ErrMsgLoadSchemaFmt    = "failed to load schema %s: %w"
	ErrMsgParseData        = "failed to parse JSON data: %w"
	ErrMsgValidationFailed = "validation error: %w"
)
