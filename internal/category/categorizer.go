// Package category implements keyword-based transaction categorization.
//
// ==============================================================================
// CATEGORIZER - internal/category/categorizer.go
// ==============================================================================
package category

import (
	"strings"

	"finhub/internal/domain"

	"github.com/shopspring/decimal"
)

// rule maps a set of keywords to a category. Rules are evaluated in order and
// the first match wins, so broad keywords belong in late rules.
type rule struct {
	category domain.Category
	keywords []string
	// creditOnly gates the rule on a strictly positive amount. Used by the
	// income rule: "payroll deduction" style debits must not classify as
	// income even though the keyword matches.
	creditOnly bool
}

// Categorizer assigns a category to a transaction by scanning its description
// and merchant name for known keywords.
type Categorizer struct {
	rules []rule
}

// New constructs a Categorizer with the built-in rule set.
func New() *Categorizer {
	return &Categorizer{rules: defaultRules()}
}

// defaultRules returns the ordered rule list. Matching is literal substring
// matching on the lowercased text, not word matching: "Trip to Vegas" hits
// the "gas" keyword and classifies as transportation. That is accepted
// behavior for this demo dataset.
func defaultRules() []rule {
	return []rule{
		{category: domain.CategoryFood, keywords: []string{
			"restaurant", "cafe", "coffee", "food", "pizza", "burger", "starbucks",
			"mcdonald", "chipotle", "doordash", "grubhub", "grocery", "supermarket",
			"walmart", "kroger", "whole foods",
		}},
		{category: domain.CategoryTransportation, keywords: []string{
			"uber", "lyft", "taxi", "gas", "fuel", "parking", "metro", "transit",
			"airline", "shell", "chevron", "exxon",
		}},
		{category: domain.CategoryEntertainment, keywords: []string{
			"netflix", "spotify", "hulu", "disney", "movie", "cinema", "theater",
			"concert", "steam", "xbox", "playstation",
		}},
		{category: domain.CategoryShopping, keywords: []string{
			"amazon", "ebay", "etsy", "target", "best buy", "mall", "clothing", "nike",
		}},
		{category: domain.CategoryBills, keywords: []string{
			"electric", "water", "phone", "internet", "cable", "utility", "bill",
			"verizon", "comcast",
		}},
		{category: domain.CategoryHealthcare, keywords: []string{
			"hospital", "doctor", "pharmacy", "cvs", "walgreens", "medical",
			"dental", "clinic",
		}},
		{category: domain.CategoryEducation, keywords: []string{
			"school", "university", "college", "tuition", "course", "student",
		}},
		{category: domain.CategoryTravel, keywords: []string{
			"hotel", "airbnb", "booking", "expedia", "flight", "marriott", "hilton",
		}},
		{category: domain.CategoryInvestment, keywords: []string{
			"stock", "bond", "etf", "mutual fund", "dividend", "broker",
			"robinhood", "fidelity", "vanguard", "schwab",
		}},
		{category: domain.CategoryIncome, creditOnly: true, keywords: []string{
			"salary", "payroll", "paycheck", "direct deposit", "deposit", "wages",
		}},
		{category: domain.CategoryTransfer, keywords: []string{
			"transfer", "wire", "ach", "venmo", "paypal", "zelle", "cash app",
		}},
		{category: domain.CategoryFee, keywords: []string{
			"fee", "charge", "overdraft", "atm", "penalty",
		}},
		{category: domain.CategoryInsurance, keywords: []string{
			"insurance", "premium", "geico", "allstate", "state farm",
		}},
		{category: domain.CategoryCharity, keywords: []string{
			"donation", "charity", "church", "nonprofit", "red cross",
		}},
	}
}

// Categorize returns the category for a single transaction. It never fails;
// text matching no rule yields CategoryOther. The transaction is not
// modified.
func (c *Categorizer) Categorize(tx *domain.Transaction) domain.Category {
	text := strings.ToLower(tx.Description + " " + tx.MerchantName)
	for _, r := range c.rules {
		if r.creditOnly && !tx.Amount.GreaterThan(decimal.Zero) {
			// Keyword may match but the rule does not apply; keep scanning
			// later rules.
			continue
		}
		for _, keyword := range r.keywords {
			if strings.Contains(text, keyword) {
				return r.category
			}
		}
	}
	return domain.CategoryOther
}

// CategorizeAll applies Categorize to each transaction in place, writing the
// result onto the Category field. Input order is preserved.
func (c *Categorizer) CategorizeAll(txs []*domain.Transaction) {
	for _, tx := range txs {
		tx.Category = c.Categorize(tx)
	}
}
