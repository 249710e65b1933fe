package contract

import "errors"

var (
	ErrModelInvoke      = errors.New("model invoke failed")
	ErrSchemaViolation  = errors.New("model response violates schema")
	ErrPromptMissing    = errors.New("required prompt is missing")
	ErrValidation       = errors.New("validation failed")
	ErrDataMissing      = errors.New("data table is missing")
	ErrInsufficientData = errors.New("not enough data")
	ErrMemoryDisabled   = errors.New("memory store is disabled")
)
