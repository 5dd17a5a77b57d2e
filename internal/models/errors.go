package models

import "errors"

var (
	// ErrUnknownProduct is returned for operations on a product that was
	// never registered for monitoring.
	ErrUnknownProduct = errors.New("unknown product")

	// ErrInvalidConditions is returned when an alert is created with no
	// trigger field set.
	ErrInvalidConditions = errors.New("alert conditions must set at least one trigger")

	// ErrEmptyHistory is returned by aggregations that need at least one
	// price record.
	ErrEmptyHistory = errors.New("price history is empty")

	ErrAlertNotFound = errors.New("alert not found")
)
