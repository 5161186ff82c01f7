package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig   = fmt.Errorf("configuration not found")
	ErrInvalidConfig   = fmt.Errorf("invalid configuration")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")

	// Source database errors
	ErrSourceUnavailable = fmt.Errorf("source database unavailable")
	ErrUnknownCollection = fmt.Errorf("unknown collection")

	// Destination errors
	ErrWriteFailed = fmt.Errorf("write failed")
)
