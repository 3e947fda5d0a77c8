// Package store provides the in-memory entity stores backing the API. Each
// store guards an ordered slice with a single RWMutex and answers queries
// with linear scans. Stores copy on write and clone on read, so callers can
// never mutate shared state through a returned pointer. State lives only in
// process memory and resets on restart.
package store

import (
	"context"
	"sync"
	"time"

	"finhub/internal/domain"
	"finhub/pkg/errors"

	"github.com/google/uuid"
)

type CustomerStore struct {
	mu        sync.RWMutex
	customers []*domain.Customer
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{}
}

// Create inserts a customer and returns the stored copy. A missing ID gets a
// generated one, zero timestamps are stamped, and an empty status defaults to
// active. Inserting an ID already present fails with ErrCustomerAlreadyExists.
func (s *CustomerStore) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := customer.Clone()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if s.indexOf(c.ID) >= 0 {
		return nil, errors.ErrCustomerAlreadyExists
	}

	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	if c.Status == "" {
		c.Status = domain.CustomerStatusActive
	}

	s.customers = append(s.customers, c)
	return c.Clone(), nil
}

func (s *CustomerStore) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, errors.ErrCustomerNotFound
	}
	return s.customers[idx].Clone(), nil
}

func (s *CustomerStore) FindAll(ctx context.Context) ([]*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c.Clone())
	}
	return out, nil
}

func (s *CustomerStore) FindByStatus(ctx context.Context, status domain.CustomerStatus) ([]*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Customer, 0)
	for _, c := range s.customers {
		if c.Status == status {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

// Update replaces the stored customer with the same ID. The original
// CreatedAt is preserved and UpdatedAt is refreshed. A missing ID fails with
// ErrCustomerNotFound so callers can distinguish "updated" from "nothing
// there".
func (s *CustomerStore) Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(customer.ID)
	if idx < 0 {
		return nil, errors.ErrCustomerNotFound
	}

	c := customer.Clone()
	c.CreatedAt = s.customers[idx].CreatedAt
	c.UpdatedAt = time.Now().UTC()
	s.customers[idx] = c
	return c.Clone(), nil
}

func (s *CustomerStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return errors.ErrCustomerNotFound
	}
	s.customers = append(s.customers[:idx], s.customers[idx+1:]...)
	return nil
}

func (s *CustomerStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers), nil
}

// indexOf returns the position of id or -1. Callers must hold the lock.
func (s *CustomerStore) indexOf(id string) int {
	for i, c := range s.customers {
		if c.ID == id {
			return i
		}
	}
	return -1
}
