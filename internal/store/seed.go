package store

import (
	"context"
	"time"

	"finhub/internal/domain"
	"finhub/pkg/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceManual is the source name recorded on hand-entered records, both the
// fixtures loaded at startup and rows created through the API, distinguishing
// them from rows pulled in by aggregation.
const SourceManual = "manual"

// Seed loads the fixed sample rows into the three stores: three customers,
// four accounts, and eight transactions spanning the common categories. IDs
// are fixed so reseeding after a restart produces the same records.
func Seed(ctx context.Context, customers *CustomerStore, accounts *AccountStore, transactions *TransactionStore) error {
	for _, c := range sampleCustomers() {
		if _, err := customers.Create(ctx, c); err != nil {
			return errors.Wrap(err, "failed to seed customers")
		}
	}
	for _, a := range sampleAccounts() {
		if _, err := accounts.Create(ctx, a); err != nil {
			return errors.Wrap(err, "failed to seed accounts")
		}
	}
	for _, t := range sampleTransactions() {
		if _, err := transactions.Create(ctx, t); err != nil {
			return errors.Wrap(err, "failed to seed transactions")
		}
	}
	return nil
}

func sampleCustomers() []*domain.Customer {
	return []*domain.Customer{
		{
			ID:          "cust_001",
			Name:        "John Doe",
			Email:       "john.doe@example.com",
			Phone:       "+15551230001",
			DateOfBirth: date(1985, time.March, 12),
			Status:      domain.CustomerStatusActive,
		},
		{
			ID:          "cust_002",
			Name:        "Jane Smith",
			Email:       "jane.smith@example.com",
			Phone:       "+15551230002",
			DateOfBirth: date(1990, time.July, 24),
			Status:      domain.CustomerStatusActive,
		},
		{
			ID:          "cust_003",
			Name:        "Robert Johnson",
			Email:       "robert.johnson@example.com",
			Phone:       "+15551230003",
			DateOfBirth: date(1978, time.November, 2),
			Status:      domain.CustomerStatusInactive,
		},
	}
}

func sampleAccounts() []*domain.Account {
	return []*domain.Account{
		{
			ID:               "acct_001",
			CustomerID:       "cust_001",
			AccountNumber:    "CHK-10001",
			Type:             domain.AccountTypeChecking,
			Currency:         "USD",
			Balance:          decimal.NewFromFloat(2540.75),
			AvailableBalance: decimal.NewFromFloat(2540.75),
			Status:           domain.AccountStatusActive,
			OpenedDate:       date(2019, time.June, 15),
		},
		{
			ID:               "acct_002",
			CustomerID:       "cust_001",
			AccountNumber:    "SAV-20001",
			Type:             domain.AccountTypeSavings,
			Currency:         "USD",
			Balance:          decimal.NewFromFloat(15000.00),
			AvailableBalance: decimal.NewFromFloat(15000.00),
			Status:           domain.AccountStatusActive,
			OpenedDate:       date(2019, time.June, 15),
		},
		{
			ID:               "acct_003",
			CustomerID:       "cust_002",
			AccountNumber:    "CHK-10002",
			Type:             domain.AccountTypeChecking,
			Currency:         "USD",
			Balance:          decimal.NewFromFloat(892.10),
			AvailableBalance: decimal.NewFromFloat(812.10),
			Status:           domain.AccountStatusActive,
			OpenedDate:       date(2021, time.February, 1),
		},
		{
			ID:               "acct_004",
			CustomerID:       "cust_003",
			AccountNumber:    "CRD-30001",
			Type:             domain.AccountTypeCredit,
			Currency:         "USD",
			Balance:          decimal.NewFromFloat(-430.55),
			AvailableBalance: decimal.NewFromFloat(4569.45),
			Status:           domain.AccountStatusActive,
			OpenedDate:       date(2020, time.September, 10),
		},
	}
}

func sampleTransactions() []*domain.Transaction {
	return []*domain.Transaction{
		{
			ID:              uuid.MustParse("00000000-0000-4000-8000-000000000001"),
			CustomerID:      "cust_001",
			AccountID:       "acct_001",
			Amount:          decimal.NewFromFloat(-4.50),
			Currency:        "USD",
			TransactionDate: daysAgo(2),
			Description:     "Purchase at Starbucks Coffee",
			MerchantName:    "Starbucks Coffee",
			Type:            domain.TransactionTypeDebit,
			Category:        domain.CategoryFood,
			Status:          domain.TransactionStatusCompleted,
			ReferenceNumber: "REF-10001",
			Source:          SourceManual,
		},
		{
			ID:              uuid.MustParse("00000000-0000-4000-8000-000000000002"),
			CustomerID:      "cust_001",
			AccountID:       "acct_001",
			Amount:          decimal.NewFromFloat(3500.00),
			Currency:        "USD",
			TransactionDate: daysAgo(5),
			Description:     "Direct Deposit - Salary",
			MerchantName:    "Employer Inc",
			Type:            domain.TransactionTypeCredit,
			Category:        domain.CategoryIncome,
			Status:          domain.TransactionStatusCompleted,
			ReferenceNumber: "REF-10002",
			Source:          SourceManual,
		},
		{
			ID:              uuid.MustParse("00000000-0000-4000-8000-000000000003"),
			CustomerID:      "cust_001",
			AccountID:       "acct_001",
			Amount:          decimal.NewFromFloat(-25.00),
			Currency:        "USD",
			TransactionDate: daysAgo(3),
			Description:     "Amazon.com order",
			MerchantName:    "Amazon.com",
			Type:            domain.TransactionTypeDebit,
			Category:        domain.CategoryShopping,
			Status:          domain.TransactionStatusCompleted,
			ReferenceNumber: "REF-10003",
			Source:          SourceManual,
		},
		{
			ID:              uuid.MustParse("00000000-0000-4000-8000-000000000004"),
			CustomerID:      "cust_001",
			AccountID:       "acct_002",
			Amount:          decimal.NewFromFloat(-500.00),
			Currency:        "USD",
			TransactionDate: daysAgo(7),
			Description:     "Transfer to brokerage account",
			MerchantName:    "Vanguard",
			Type:            domain.TransactionTypeTransfer,
			Category:        domain.CategoryTransfer,
			Status:          domain.TransactionStatusCompleted,
			ReferenceNumber: "REF-10004",
			Source:          SourceManual,
		},
		{
			ID:              uuid.MustParse("00000000-0000-4000-8000-000000000005"),
			CustomerID:      "cust_002",
			AccountID:       "acct_003",
			Amount:          decimal.NewFromFloat(-18.20),
			Currency:        "USD",
			TransactionDate: daysAgo(1),
			Description:     "UBER TRIP 8841",
			MerchantName:    "Uber",
			Type:            domain.TransactionTypeDebit,
			Category:        domain.CategoryTransportation,
			Status:          domain.TransactionStatusPending,
			ReferenceNumber: "REF-10005",
			Source:          SourceManual,
		},
		{
			ID:              uuid.MustParse("00000000-0000-4000-8000-000000000006"),
			CustomerID:      "cust_002",
			AccountID:       "acct_003",
			Amount:          decimal.NewFromFloat(-89.99),
			Currency:        "USD",
			TransactionDate: daysAgo(11),
			Description:     "Electric bill autopay",
			MerchantName:    "City Power & Light",
			Type:            domain.TransactionTypeDebit,
			Category:        domain.CategoryBills,
			Status:          domain.TransactionStatusCompleted,
			ReferenceNumber: "REF-10006",
			Source:          SourceManual,
		},
		{
			ID:              uuid.MustParse("00000000-0000-4000-8000-000000000007"),
			CustomerID:      "cust_003",
			AccountID:       "acct_004",
			Amount:          decimal.NewFromFloat(-35.00),
			Currency:        "USD",
			TransactionDate: daysAgo(14),
			Description:     "Annual membership fee",
			MerchantName:    "First National Card Services",
			Type:            domain.TransactionTypeFee,
			Category:        domain.CategoryFee,
			Status:          domain.TransactionStatusCompleted,
			ReferenceNumber: "REF-10007",
			Source:          SourceManual,
		},
		{
			ID:              uuid.MustParse("00000000-0000-4000-8000-000000000008"),
			CustomerID:      "cust_003",
			AccountID:       "acct_004",
			Amount:          decimal.NewFromFloat(-52.30),
			Currency:        "USD",
			TransactionDate: daysAgo(4),
			Description:     "Dinner at Luigi's Restaurant",
			MerchantName:    "Luigi's",
			Type:            domain.TransactionTypeDebit,
			Category:        domain.CategoryFood,
			Status:          domain.TransactionStatusProcessing,
			ReferenceNumber: "REF-10008",
			Source:          SourceManual,
		},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysAgo(n int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -n).Truncate(time.Hour)
}
