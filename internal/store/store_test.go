package store

import (
	"context"
	"testing"
	"time"

	"finhub/internal/domain"
	"finhub/pkg/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCustomerStoreCreateAssignsDefaults(t *testing.T) {
	s := NewCustomerStore()
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Customer{Name: "Ada Lovelace", Email: "ada@example.com"})
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.CustomerStatusActive, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())

	count, err := s.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCustomerStoreCreateDuplicateID(t *testing.T) {
	s := NewCustomerStore()
	ctx := context.Background()

	_, err := s.Create(ctx, &domain.Customer{ID: "cust_dup", Name: "First"})
	assert.NoError(t, err)

	_, err = s.Create(ctx, &domain.Customer{ID: "cust_dup", Name: "Second"})
	assert.ErrorIs(t, err, errors.ErrCustomerAlreadyExists)
}

func TestCustomerStoreFindByID(t *testing.T) {
	s := NewCustomerStore()
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Customer{Name: "Ada Lovelace"})
	assert.NoError(t, err)

	found, err := s.FindByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", found.Name)

	_, err = s.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, errors.ErrCustomerNotFound)
}

func TestCustomerStoreUpdate(t *testing.T) {
	s := NewCustomerStore()
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Customer{Name: "Ada Lovelace", Status: domain.CustomerStatusActive})
	assert.NoError(t, err)

	created.Name = "Ada King"
	created.Status = domain.CustomerStatusSuspended
	updated, err := s.Update(ctx, created)
	assert.NoError(t, err)
	assert.Equal(t, "Ada King", updated.Name)
	assert.Equal(t, domain.CustomerStatusSuspended, updated.Status)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	_, err = s.Update(ctx, &domain.Customer{ID: "missing", Name: "Nobody"})
	assert.ErrorIs(t, err, errors.ErrCustomerNotFound)
}

func TestCustomerStoreDelete(t *testing.T) {
	s := NewCustomerStore()
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Customer{Name: "Ada Lovelace"})
	assert.NoError(t, err)

	assert.NoError(t, s.Delete(ctx, created.ID))

	_, err = s.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, errors.ErrCustomerNotFound)

	assert.ErrorIs(t, s.Delete(ctx, created.ID), errors.ErrCustomerNotFound)
}

func TestCustomerStoreFindByStatus(t *testing.T) {
	s := NewCustomerStore()
	ctx := context.Background()

	_, err := s.Create(ctx, &domain.Customer{Name: "A", Status: domain.CustomerStatusActive})
	assert.NoError(t, err)
	_, err = s.Create(ctx, &domain.Customer{Name: "B", Status: domain.CustomerStatusInactive})
	assert.NoError(t, err)
	_, err = s.Create(ctx, &domain.Customer{Name: "C", Status: domain.CustomerStatusActive})
	assert.NoError(t, err)

	active, err := s.FindByStatus(ctx, domain.CustomerStatusActive)
	assert.NoError(t, err)
	assert.Len(t, active, 2)

	closed, err := s.FindByStatus(ctx, domain.CustomerStatusClosed)
	assert.NoError(t, err)
	assert.Empty(t, closed)
}

// Returned records are clones; mutating them must not leak into the store.
func TestCustomerStoreClonesOnRead(t *testing.T) {
	s := NewCustomerStore()
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Customer{Name: "Ada Lovelace"})
	assert.NoError(t, err)

	created.Name = "mutated"

	found, err := s.FindByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", found.Name)

	found.Name = "also mutated"
	again, err := s.FindByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", again.Name)
}

func TestAccountStoreFindByCustomerID(t *testing.T) {
	s := NewAccountStore()
	ctx := context.Background()

	_, err := s.Create(ctx, &domain.Account{CustomerID: "cust_001", AccountNumber: "CHK-1", Type: domain.AccountTypeChecking})
	assert.NoError(t, err)
	_, err = s.Create(ctx, &domain.Account{CustomerID: "cust_001", AccountNumber: "SAV-1", Type: domain.AccountTypeSavings})
	assert.NoError(t, err)
	_, err = s.Create(ctx, &domain.Account{CustomerID: "cust_002", AccountNumber: "CHK-2", Type: domain.AccountTypeChecking})
	assert.NoError(t, err)

	mine, err := s.FindByCustomerID(ctx, "cust_001")
	assert.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := s.FindByCustomerID(ctx, "cust_999")
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestAccountStoreUpdateAndDelete(t *testing.T) {
	s := NewAccountStore()
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Account{
		CustomerID: "cust_001",
		Type:       domain.AccountTypeChecking,
		Balance:    decimal.NewFromFloat(100.00),
	})
	assert.NoError(t, err)

	created.Balance = decimal.NewFromFloat(250.00)
	updated, err := s.Update(ctx, created)
	assert.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.NewFromFloat(250.00)))

	_, err = s.Update(ctx, &domain.Account{ID: "missing"})
	assert.ErrorIs(t, err, errors.ErrAccountNotFound)

	assert.NoError(t, s.Delete(ctx, created.ID))
	assert.ErrorIs(t, s.Delete(ctx, created.ID), errors.ErrAccountNotFound)
}

func newTx(customerID, accountID string, amount float64, txDate time.Time) *domain.Transaction {
	return &domain.Transaction{
		ID:              uuid.New(),
		CustomerID:      customerID,
		AccountID:       accountID,
		Amount:          decimal.NewFromFloat(amount),
		Currency:        "USD",
		TransactionDate: txDate,
		Description:     "test transaction",
		Type:            domain.TransactionTypeDebit,
		Status:          domain.TransactionStatusCompleted,
		Source:          "test",
	}
}

func TestTransactionStoreCreateDefaults(t *testing.T) {
	s := NewTransactionStore()
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Transaction{
		CustomerID: "cust_001",
		AccountID:  "acct_001",
		Amount:     decimal.NewFromFloat(-10.00),
	})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, domain.CategoryUnknown, created.Category)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestTransactionStoreCreatePreservesSuppliedID(t *testing.T) {
	s := NewTransactionStore()
	ctx := context.Background()

	id := uuid.New()
	tx := newTx("cust_001", "acct_001", -10.00, time.Now())
	tx.ID = id

	created, err := s.Create(ctx, tx)
	assert.NoError(t, err)
	assert.Equal(t, id, created.ID)

	_, err = s.Create(ctx, tx)
	assert.ErrorIs(t, err, errors.ErrTransactionAlreadyExists)
}

func TestTransactionStoreExists(t *testing.T) {
	s := NewTransactionStore()
	ctx := context.Background()

	tx := newTx("cust_001", "acct_001", -10.00, time.Now())
	_, err := s.Create(ctx, tx)
	assert.NoError(t, err)

	ok, err := s.Exists(ctx, tx.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, uuid.New())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestTransactionStoreFilters(t *testing.T) {
	s := NewTransactionStore()
	ctx := context.Background()

	t1 := newTx("cust_001", "acct_001", -10.00, date(2026, time.May, 10))
	t2 := newTx("cust_001", "acct_002", -20.00, date(2026, time.May, 15))
	t3 := newTx("cust_002", "acct_003", 30.00, date(2026, time.May, 20))
	t2.Category = domain.CategoryFood
	t3.Source = "firstnational"

	for _, tx := range []*domain.Transaction{t1, t2, t3} {
		_, err := s.Create(ctx, tx)
		assert.NoError(t, err)
	}

	byCustomer, err := s.FindByCustomerID(ctx, "cust_001")
	assert.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	byAccount, err := s.FindByAccountID(ctx, "acct_002")
	assert.NoError(t, err)
	assert.Len(t, byAccount, 1)

	byCategory, err := s.FindByCategory(ctx, domain.CategoryFood)
	assert.NoError(t, err)
	assert.Len(t, byCategory, 1)
	assert.Equal(t, t2.ID, byCategory[0].ID)

	bySource, err := s.FindBySource(ctx, "firstnational")
	assert.NoError(t, err)
	assert.Len(t, bySource, 1)
	assert.Equal(t, t3.ID, bySource[0].ID)
}

func TestTransactionStoreFindByDateRange(t *testing.T) {
	s := NewTransactionStore()
	ctx := context.Background()

	d1 := date(2026, time.May, 10)
	d2 := date(2026, time.May, 15)
	d3 := date(2026, time.May, 20)
	for _, d := range []time.Time{d1, d2, d3} {
		_, err := s.Create(ctx, newTx("cust_001", "acct_001", -1.00, d))
		assert.NoError(t, err)
	}

	// Both bounds are inclusive.
	got, err := s.FindByDateRange(ctx, &d1, &d2)
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	// Open start.
	got, err = s.FindByDateRange(ctx, nil, &d2)
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	// Open end.
	got, err = s.FindByDateRange(ctx, &d2, nil)
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	// Fully open returns everything.
	got, err = s.FindByDateRange(ctx, nil, nil)
	assert.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestTransactionStoreUpdateAndDelete(t *testing.T) {
	s := NewTransactionStore()
	ctx := context.Background()

	tx := newTx("cust_001", "acct_001", -10.00, time.Now())
	created, err := s.Create(ctx, tx)
	assert.NoError(t, err)

	created.Status = domain.TransactionStatusFailed
	updated, err := s.Update(ctx, created)
	assert.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusFailed, updated.Status)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	missing := newTx("cust_001", "acct_001", -10.00, time.Now())
	_, err = s.Update(ctx, missing)
	assert.ErrorIs(t, err, errors.ErrTransactionNotFound)

	assert.NoError(t, s.Delete(ctx, created.ID))
	assert.ErrorIs(t, s.Delete(ctx, created.ID), errors.ErrTransactionNotFound)
}

func TestSeedLoadsSampleData(t *testing.T) {
	ctx := context.Background()
	customers := NewCustomerStore()
	accounts := NewAccountStore()
	transactions := NewTransactionStore()

	assert.NoError(t, Seed(ctx, customers, accounts, transactions))

	cc, _ := customers.Count(ctx)
	ac, _ := accounts.Count(ctx)
	tc, _ := transactions.Count(ctx)
	assert.Equal(t, 3, cc)
	assert.Equal(t, 4, ac)
	assert.Equal(t, 8, tc)

	// Spot checks: the salary credit is present and categorized, and every
	// seeded transaction carries the seed source name.
	salary, err := transactions.FindByID(ctx, uuid.MustParse("00000000-0000-4000-8000-000000000002"))
	assert.NoError(t, err)
	assert.Equal(t, domain.CategoryIncome, salary.Category)
	assert.True(t, salary.Amount.Equal(decimal.NewFromFloat(3500.00)))

	all, err := transactions.FindAll(ctx)
	assert.NoError(t, err)
	for _, tx := range all {
		assert.Equal(t, SourceManual, tx.Source)
	}

	johns, err := accounts.FindByCustomerID(ctx, "cust_001")
	assert.NoError(t, err)
	assert.Len(t, johns, 2)
}
