// Package errors provides common, reusable error values and helpers.
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrCustomerNotFound         = errors.New("customer not found")
	ErrCustomerAlreadyExists    = errors.New("customer already exists")
	ErrAccountNotFound          = errors.New("account not found")
	ErrAccountAlreadyExists     = errors.New("account already exists")
	ErrTransactionNotFound      = errors.New("transaction not found")
	ErrTransactionAlreadyExists = errors.New("transaction already exists")

	// Data source errors
	ErrSourceNotFound  = errors.New("data source not found")
	ErrSourceUnhealthy = errors.New("data source unhealthy")

	// Aggregation errors
	ErrNoAggregationRun = errors.New("no aggregation run recorded")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
