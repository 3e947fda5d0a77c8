package store

import (
	"context"
	"sync"
	"time"

	"finhub/internal/domain"
	"finhub/pkg/errors"

	"github.com/google/uuid"
)

type TransactionStore struct {
	mu           sync.RWMutex
	transactions []*domain.Transaction
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{}
}

// Create inserts a transaction and returns the stored copy. A nil ID gets a
// generated one, zero timestamps are stamped, and an empty category defaults
// to unknown. Records pulled from data sources arrive with their own IDs and
// are stored as-is; inserting an ID already present fails with
// ErrTransactionAlreadyExists.
func (s *TransactionStore) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := tx.Clone()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if s.indexOf(t.ID) >= 0 {
		return nil, errors.ErrTransactionAlreadyExists
	}

	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	if t.Category == "" {
		t.Category = domain.CategoryUnknown
	}

	s.transactions = append(s.transactions, t)
	return t.Clone(), nil
}

func (s *TransactionStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, errors.ErrTransactionNotFound
	}
	return s.transactions[idx].Clone(), nil
}

// Exists reports whether a transaction with the given ID is stored. The
// aggregator uses it for identifier-based dedup.
func (s *TransactionStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0, nil
}

func (s *TransactionStore) FindAll(ctx context.Context) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, t.Clone())
	}
	return out, nil
}

func (s *TransactionStore) FindByCustomerID(ctx context.Context, customerID string) ([]*domain.Transaction, error) {
	return s.findWhere(func(t *domain.Transaction) bool {
		return t.CustomerID == customerID
	})
}

func (s *TransactionStore) FindByAccountID(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	return s.findWhere(func(t *domain.Transaction) bool {
		return t.AccountID == accountID
	})
}

func (s *TransactionStore) FindByCategory(ctx context.Context, category domain.Category) ([]*domain.Transaction, error) {
	return s.findWhere(func(t *domain.Transaction) bool {
		return t.Category == category
	})
}

func (s *TransactionStore) FindBySource(ctx context.Context, source string) ([]*domain.Transaction, error) {
	return s.findWhere(func(t *domain.Transaction) bool {
		return t.Source == source
	})
}

// FindByDateRange returns transactions whose date falls inside the inclusive
// [start, end] window. A nil bound leaves that side open.
func (s *TransactionStore) FindByDateRange(ctx context.Context, start, end *time.Time) ([]*domain.Transaction, error) {
	return s.findWhere(func(t *domain.Transaction) bool {
		if start != nil && t.TransactionDate.Before(*start) {
			return false
		}
		if end != nil && t.TransactionDate.After(*end) {
			return false
		}
		return true
	})
}

func (s *TransactionStore) Update(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(tx.ID)
	if idx < 0 {
		return nil, errors.ErrTransactionNotFound
	}

	t := tx.Clone()
	t.CreatedAt = s.transactions[idx].CreatedAt
	t.UpdatedAt = time.Now().UTC()
	s.transactions[idx] = t
	return t.Clone(), nil
}

func (s *TransactionStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return errors.ErrTransactionNotFound
	}
	s.transactions = append(s.transactions[:idx], s.transactions[idx+1:]...)
	return nil
}

func (s *TransactionStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions), nil
}

func (s *TransactionStore) findWhere(match func(*domain.Transaction) bool) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Transaction, 0)
	for _, t := range s.transactions {
		if match(t) {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

func (s *TransactionStore) indexOf(id uuid.UUID) int {
	for i, t := range s.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}
