package source

import (
	"time"

	"finhub/internal/domain"

	"github.com/shopspring/decimal"
)

// FirstNationalName is the wire name of the First National bank stub.
const FirstNationalName = "firstnational"

// NewFirstNational builds the First National stub: three customers with one
// checking or savings account each, small everyday debits inside a trailing
// 30-day window, and one salary credit injected per customer. A zero seed
// derives one from the clock.
func NewFirstNational(seed int64) *BankStub {
	return newBankStub(firstNationalProfile(), seed)
}

func firstNationalProfile() profile {
	return profile{
		name:           FirstNationalName,
		refPrefix:      "FN",
		latency:        45 * time.Millisecond,
		windowDays:     30,
		minAmountCents: 500,
		maxAmountCents: 2500,
		minPerCustomer: 8,
		maxPerCustomer: 12,
		injectSalary:   true,
		catalog: []catalogEntry{
			{description: "Purchase at Starbucks", merchant: "Starbucks #2219"},
			{description: "Grocery purchase", merchant: "Kroger #441"},
			{description: "Fuel purchase", merchant: "Shell Oil 7731"},
			{description: "UBER TRIP 0522", merchant: "Uber"},
			{description: "NETFLIX.COM subscription", merchant: "Netflix"},
			{description: "Amazon.com order", merchant: "Amazon.com"},
			{description: "Phone bill autopay", merchant: "Verizon Wireless"},
			{description: "Pharmacy purchase", merchant: "CVS Pharmacy #1093"},
		},
		customers: []*domain.Customer{
			{
				ID:          "fn_cust_001",
				Name:        "Alice Walker",
				Email:       "alice.walker@example.com",
				Phone:       "+15550100001",
				DateOfBirth: time.Date(1988, time.April, 17, 0, 0, 0, 0, time.UTC),
				Status:      domain.CustomerStatusActive,
			},
			{
				ID:          "fn_cust_002",
				Name:        "Marcus Chen",
				Email:       "marcus.chen@example.com",
				Phone:       "+15550100002",
				DateOfBirth: time.Date(1992, time.September, 30, 0, 0, 0, 0, time.UTC),
				Status:      domain.CustomerStatusActive,
			},
			{
				ID:          "fn_cust_003",
				Name:        "Priya Patel",
				Email:       "priya.patel@example.com",
				Phone:       "+15550100003",
				DateOfBirth: time.Date(1984, time.January, 22, 0, 0, 0, 0, time.UTC),
				Status:      domain.CustomerStatusActive,
			},
		},
		accounts: []*domain.Account{
			{
				ID:               "fn_acct_001",
				CustomerID:       "fn_cust_001",
				AccountNumber:    "FN-CHK-44101",
				Type:             domain.AccountTypeChecking,
				Currency:         "USD",
				Balance:          decimal.NewFromFloat(3250.40),
				AvailableBalance: decimal.NewFromFloat(3250.40),
				Status:           domain.AccountStatusActive,
				OpenedDate:       time.Date(2018, time.March, 5, 0, 0, 0, 0, time.UTC),
			},
			{
				ID:               "fn_acct_002",
				CustomerID:       "fn_cust_002",
				AccountNumber:    "FN-CHK-44102",
				Type:             domain.AccountTypeChecking,
				Currency:         "USD",
				Balance:          decimal.NewFromFloat(1780.12),
				AvailableBalance: decimal.NewFromFloat(1655.12),
				Status:           domain.AccountStatusActive,
				OpenedDate:       time.Date(2020, time.July, 19, 0, 0, 0, 0, time.UTC),
			},
			{
				ID:               "fn_acct_003",
				CustomerID:       "fn_cust_003",
				AccountNumber:    "FN-SAV-88201",
				Type:             domain.AccountTypeSavings,
				Currency:         "USD",
				Balance:          decimal.NewFromFloat(9400.00),
				AvailableBalance: decimal.NewFromFloat(9400.00),
				Status:           domain.AccountStatusActive,
				OpenedDate:       time.Date(2017, time.November, 2, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}
