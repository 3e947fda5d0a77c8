package store

import (
	"context"
	"sync"
	"time"

	"finhub/internal/domain"
	"finhub/pkg/errors"

	"github.com/google/uuid"
)

type AccountStore struct {
	mu       sync.RWMutex
	accounts []*domain.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{}
}

// Create inserts an account and returns the stored copy. A missing ID gets a
// generated one and zero timestamps are stamped. The owning customer ID is an
// opaque reference; no referential check is made against the customer store.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := account.Clone()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if s.indexOf(a.ID) >= 0 {
		return nil, errors.ErrAccountAlreadyExists
	}

	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	if a.Status == "" {
		a.Status = domain.AccountStatusActive
	}

	s.accounts = append(s.accounts, a)
	return a.Clone(), nil
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, errors.ErrAccountNotFound
	}
	return s.accounts[idx].Clone(), nil
}

func (s *AccountStore) FindAll(ctx context.Context) ([]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.Clone())
	}
	return out, nil
}

func (s *AccountStore) FindByCustomerID(ctx context.Context, customerID string) ([]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Account, 0)
	for _, a := range s.accounts {
		if a.CustomerID == customerID {
			out = append(out, a.Clone())
		}
	}
	return out, nil
}

func (s *AccountStore) Update(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(account.ID)
	if idx < 0 {
		return nil, errors.ErrAccountNotFound
	}

	a := account.Clone()
	a.CreatedAt = s.accounts[idx].CreatedAt
	a.UpdatedAt = time.Now().UTC()
	s.accounts[idx] = a
	return a.Clone(), nil
}

func (s *AccountStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return errors.ErrAccountNotFound
	}
	s.accounts = append(s.accounts[:idx], s.accounts[idx+1:]...)
	return nil
}

func (s *AccountStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts), nil
}

func (s *AccountStore) indexOf(id string) int {
	for i, a := range s.accounts {
		if a.ID == id {
			return i
		}
	}
	return -1
}
