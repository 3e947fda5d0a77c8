// ==============================================================================
// BANK STUB ENGINE - internal/source/stub.go
// ==============================================================================
package source

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"finhub/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// catalogEntry is a description/merchant pair drawn when generating
// transactions. Entries are worded so the categorizer has something to match.
type catalogEntry struct {
	description string
	merchant    string
}

// profile holds everything that differs between the two bank stubs.
type profile struct {
	name           string
	refPrefix      string
	latency        time.Duration
	windowDays     int
	minAmountCents int64
	maxAmountCents int64
	minPerCustomer int
	maxPerCustomer int
	injectSalary   bool
	catalog        []catalogEntry
	customers      []*domain.Customer
	accounts       []*domain.Account
}

// BankStub is a fake bank integration. The full dataset is generated once at
// construction from the seed, so every call observes the same records with
// the same identifiers and repeated aggregation runs dedup cleanly. All list
// calls sleep for the profile's latency first, honoring context cancellation.
type BankStub struct {
	profile      profile
	customers    []*domain.Customer
	accounts     map[string]*domain.Account
	transactions map[string][]*domain.Transaction
}

func newBankStub(p profile, seed int64) *BankStub {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	now := time.Now().UTC()

	s := &BankStub{
		profile:      p,
		accounts:     make(map[string]*domain.Account),
		transactions: make(map[string][]*domain.Transaction),
	}

	for _, c := range p.customers {
		cc := c.Clone()
		cc.CreatedAt = now
		cc.UpdatedAt = now
		s.customers = append(s.customers, cc)
	}
	for _, a := range p.accounts {
		aa := a.Clone()
		aa.CreatedAt = now
		aa.UpdatedAt = now
		s.accounts[aa.CustomerID] = aa
	}

	for _, c := range s.customers {
		acct, ok := s.accounts[c.ID]
		if !ok {
			continue
		}
		s.transactions[c.ID] = s.generate(rng, c, acct, now)
	}

	return s
}

// generate builds the fixed transaction set for one customer: a randomized
// batch of debits inside the trailing window, plus the salary credit when the
// profile injects one. Category is left unknown; categorization happens
// during aggregation.
func (s *BankStub) generate(rng *rand.Rand, c *domain.Customer, acct *domain.Account, now time.Time) []*domain.Transaction {
	p := s.profile

	count := p.minPerCustomer
	if span := p.maxPerCustomer - p.minPerCustomer; span > 0 {
		count += rng.Intn(span + 1)
	}

	txs := make([]*domain.Transaction, 0, count+1)
	for i := 0; i < count; i++ {
		entry := p.catalog[rng.Intn(len(p.catalog))]
		cents := p.minAmountCents + rng.Int63n(p.maxAmountCents-p.minAmountCents+1)
		hoursBack := rng.Intn(p.windowDays * 24)

		txs = append(txs, &domain.Transaction{
			ID:              uuid.Must(uuid.NewRandomFromReader(rng)),
			CustomerID:      c.ID,
			AccountID:       acct.ID,
			Amount:          decimal.New(-cents, -2),
			Currency:        acct.Currency,
			TransactionDate: now.Add(-time.Duration(hoursBack) * time.Hour),
			Description:     entry.description,
			MerchantName:    entry.merchant,
			Type:            domain.TransactionTypeDebit,
			Category:        domain.CategoryUnknown,
			Status:          domain.TransactionStatusCompleted,
			ReferenceNumber: fmt.Sprintf("%s-%06d", p.refPrefix, rng.Intn(1000000)),
			Source:          p.name,
		})
	}

	if p.injectSalary {
		txs = append(txs, &domain.Transaction{
			ID:              uuid.Must(uuid.NewRandomFromReader(rng)),
			CustomerID:      c.ID,
			AccountID:       acct.ID,
			Amount:          decimal.NewFromInt(3500),
			Currency:        acct.Currency,
			TransactionDate: now.AddDate(0, 0, -(1 + rng.Intn(13))),
			Description:     "Direct Deposit - Salary",
			MerchantName:    "Employer Inc",
			Type:            domain.TransactionTypeCredit,
			Category:        domain.CategoryUnknown,
			Status:          domain.TransactionStatusCompleted,
			ReferenceNumber: fmt.Sprintf("%s-%06d", p.refPrefix, rng.Intn(1000000)),
			Source:          p.name,
		})
	}

	sort.Slice(txs, func(i, j int) bool {
		return txs[i].TransactionDate.After(txs[j].TransactionDate)
	})
	return txs
}

func (s *BankStub) Name() string {
	return s.profile.name
}

// CheckHealth models a provider liveness probe. The stubs are always up.
func (s *BankStub) CheckHealth(ctx context.Context) bool {
	return true
}

func (s *BankStub) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	out := make([]*domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c.Clone())
	}
	return out, nil
}

func (s *BankStub) ListAccounts(ctx context.Context, customerID string) ([]*domain.Account, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	acct, ok := s.accounts[customerID]
	if !ok {
		return []*domain.Account{}, nil
	}
	return []*domain.Account{acct.Clone()}, nil
}

// ListTransactions returns the customer's fixed transaction set, optionally
// narrowed to the inclusive [start, end] window. Unknown customers yield an
// empty slice.
func (s *BankStub) ListTransactions(ctx context.Context, customerID string, start, end *time.Time) ([]*domain.Transaction, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	out := make([]*domain.Transaction, 0)
	for _, t := range s.transactions[customerID] {
		if start != nil && t.TransactionDate.Before(*start) {
			continue
		}
		if end != nil && t.TransactionDate.After(*end) {
			continue
		}
		out = append(out, t.Clone())
	}
	return out, nil
}

// wait simulates provider latency, aborting early if the context ends.
func (s *BankStub) wait(ctx context.Context) error {
	timer := time.NewTimer(s.profile.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
