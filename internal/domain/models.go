// Package domain defines the core entities shared by the stores, the
// data sources, the categorizer, and the HTTP layer.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer represents a bank customer known to the platform.
type Customer struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	DateOfBirth time.Time      `json:"date_of_birth"`
	Status      CustomerStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type CustomerStatus string

const (
	CustomerStatusActive    CustomerStatus = "active"
	CustomerStatusInactive  CustomerStatus = "inactive"
	CustomerStatusSuspended CustomerStatus = "suspended"
	CustomerStatusClosed    CustomerStatus = "closed"
)

// Clone returns an independent copy of the customer.
func (c *Customer) Clone() *Customer {
	cp := *c
	return &cp
}

// Account represents a customer's bank account.
type Account struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customer_id"`
	AccountNumber    string          `json:"account_number"`
	Type             AccountType     `json:"type"`
	Currency         string          `json:"currency"`
	Balance          decimal.Decimal `json:"balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	Status           AccountStatus   `json:"status"`
	OpenedDate       time.Time       `json:"opened_date"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeBusiness   AccountType = "business"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
	AccountStatusFrozen   AccountStatus = "frozen"
	AccountStatusClosed   AccountStatus = "closed"
)

// Clone returns an independent copy of the account.
func (a *Account) Clone() *Account {
	cp := *a
	return &cp
}

// Transaction represents a single bank transaction. Records arriving from a
// data source keep the identifier the source assigned; records created
// through the API get a fresh one. CustomerID and AccountID are opaque
// references — the stores do not enforce that they resolve.
type Transaction struct {
	ID              uuid.UUID         `json:"id"`
	CustomerID      string            `json:"customer_id"`
	AccountID       string            `json:"account_id"`
	Amount          decimal.Decimal   `json:"amount"`
	Currency        string            `json:"currency"`
	TransactionDate time.Time         `json:"transaction_date"`
	Description     string            `json:"description"`
	MerchantName    string            `json:"merchant_name"`
	Type            TransactionType   `json:"type"`
	Category        Category          `json:"category"`
	Status          TransactionStatus `json:"status"`
	ReferenceNumber string            `json:"reference_number"`
	Source          string            `json:"source"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

type TransactionType string

const (
	TransactionTypeDebit    TransactionType = "debit"
	TransactionTypeCredit   TransactionType = "credit"
	TransactionTypeTransfer TransactionType = "transfer"
	TransactionTypeFee      TransactionType = "fee"
	TransactionTypeInterest TransactionType = "interest"
	TransactionTypeDividend TransactionType = "dividend"
	TransactionTypeRefund   TransactionType = "refund"
)

type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusCompleted  TransactionStatus = "completed"
	TransactionStatusFailed     TransactionStatus = "failed"
	TransactionStatusCancelled  TransactionStatus = "cancelled"
	TransactionStatusProcessing TransactionStatus = "processing"
)

// Category is the spending category assigned by the categorizer. A
// transaction starts out as CategoryUnknown and stays there until the
// categorizer has seen it; text that matches no rule becomes CategoryOther.
type Category string

const (
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	CategoryEntertainment  Category = "entertainment"
	CategoryShopping       Category = "shopping"
	CategoryBills          Category = "bills"
	CategoryHealthcare     Category = "healthcare"
	CategoryEducation      Category = "education"
	CategoryTravel         Category = "travel"
	CategoryInvestment     Category = "investment"
	CategoryIncome         Category = "income"
	CategoryTransfer       Category = "transfer"
	CategoryFee            Category = "fee"
	CategoryInsurance      Category = "insurance"
	CategoryCharity        Category = "charity"
	CategoryOther          Category = "other"
	CategoryUnknown        Category = "unknown"
)

// Categories lists every category value, rule categories first in rule
// order, the two non-rule values (other, unknown) last.
func Categories() []Category {
	return []Category{
		CategoryFood, CategoryTransportation, CategoryEntertainment,
		CategoryShopping, CategoryBills, CategoryHealthcare,
		CategoryEducation, CategoryTravel, CategoryInvestment,
		CategoryIncome, CategoryTransfer, CategoryFee,
		CategoryInsurance, CategoryCharity, CategoryOther, CategoryUnknown,
	}
}

// Clone returns an independent copy of the transaction.
func (t *Transaction) Clone() *Transaction {
	cp := *t
	return &cp
}
