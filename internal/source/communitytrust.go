package source

import (
	"time"

	"finhub/internal/domain"

	"github.com/shopspring/decimal"
)

// CommunityTrustName is the wire name of the Community Trust bank stub.
const CommunityTrustName = "communitytrust"

// NewCommunityTrust builds the Community Trust stub: two customers with one
// account each and larger, less frequent debits inside a trailing 90-day
// window. No salary injection. A zero seed derives one from the clock.
func NewCommunityTrust(seed int64) *BankStub {
	return newBankStub(communityTrustProfile(), seed)
}

func communityTrustProfile() profile {
	return profile{
		name:           CommunityTrustName,
		refPrefix:      "CT",
		latency:        70 * time.Millisecond,
		windowDays:     90,
		minAmountCents: 2000,
		maxAmountCents: 60000,
		minPerCustomer: 6,
		maxPerCustomer: 10,
		injectSalary:   false,
		catalog: []catalogEntry{
			{description: "Hotel stay", merchant: "Marriott Hotels"},
			{description: "Airbnb reservation HMAA41", merchant: "Airbnb"},
			{description: "Airline ticket", merchant: "Delta Air Lines"},
			{description: "Brokerage contribution", merchant: "Vanguard"},
			{description: "Auto insurance premium", merchant: "Geico"},
			{description: "Charitable donation", merchant: "Red Cross"},
			{description: "Grocery purchase", merchant: "Whole Foods Market"},
			{description: "Internet bill", merchant: "Comcast"},
		},
		customers: []*domain.Customer{
			{
				ID:          "ct_cust_001",
				Name:        "Dana Brooks",
				Email:       "dana.brooks@example.com",
				Phone:       "+15550200001",
				DateOfBirth: time.Date(1979, time.June, 8, 0, 0, 0, 0, time.UTC),
				Status:      domain.CustomerStatusActive,
			},
			{
				ID:          "ct_cust_002",
				Name:        "Miguel Alvarez",
				Email:       "miguel.alvarez@example.com",
				Phone:       "+15550200002",
				DateOfBirth: time.Date(1995, time.December, 3, 0, 0, 0, 0, time.UTC),
				Status:      domain.CustomerStatusActive,
			},
		},
		accounts: []*domain.Account{
			{
				ID:               "ct_acct_001",
				CustomerID:       "ct_cust_001",
				AccountNumber:    "CT-BUS-10448",
				Type:             domain.AccountTypeBusiness,
				Currency:         "USD",
				Balance:          decimal.NewFromFloat(28450.00),
				AvailableBalance: decimal.NewFromFloat(27962.35),
				Status:           domain.AccountStatusActive,
				OpenedDate:       time.Date(2016, time.May, 23, 0, 0, 0, 0, time.UTC),
			},
			{
				ID:               "ct_acct_002",
				CustomerID:       "ct_cust_002",
				AccountNumber:    "CT-CHK-20517",
				Type:             domain.AccountTypeChecking,
				Currency:         "USD",
				Balance:          decimal.NewFromFloat(5320.77),
				AvailableBalance: decimal.NewFromFloat(5320.77),
				Status:           domain.AccountStatusActive,
				OpenedDate:       time.Date(2022, time.January, 14, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}
