// Package source defines the external data-source contract and the two fake
// bank providers used by aggregation. The stubs serve fixed, seed-derived
// datasets after a simulated delay; nothing here touches a network.
//
// ==============================================================================
// DATA SOURCES - internal/source/source.go
// ==============================================================================
package source

import (
	"context"
	"time"

	"finhub/internal/domain"
)

// DataSource is the provider contract aggregation iterates over. Providers
// are interchangeable: a name, a liveness check, and three list operations.
// List operations for an unknown customer return empty slices, never errors.
type DataSource interface {
	Name() string
	CheckHealth(ctx context.Context) bool
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	ListAccounts(ctx context.Context, customerID string) ([]*domain.Account, error)
	ListTransactions(ctx context.Context, customerID string, start, end *time.Time) ([]*domain.Transaction, error)
}

// Find returns the source with the given name from the configured list.
func Find(sources []DataSource, name string) (DataSource, bool) {
	for _, s := range sources {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}
