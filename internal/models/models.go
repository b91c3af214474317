// Package models defines the shared data structures for statement extraction,
// categorization and merchant learning.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryUncategorized is the sentinel category assigned to transactions
// that no rule, mapping or fuzzy match could place. It always exists and is
// never deletable.
const CategoryUncategorized = "Uncategorized"

// DefaultCategories is the seed list installed into an empty category store.
var DefaultCategories = []string{
	"Food & Dining", "Transportation", "Shopping",
	"Utilities", "Entertainment", "Health",
	"Travel", "Housing", "Income", "Other",
}

// CandidateTransaction is a transaction extracted from a statement that has
// not been reviewed or persisted yet. Date is always ISO-8601 (YYYY-MM-DD)
// and Amount is a non-negative debit amount.
type CandidateTransaction struct {
	Date        string          `json:"date" csv:"Date"`
	Description string          `json:"description" csv:"Description"`
	Amount      decimal.Decimal `json:"amount" csv:"Amount"`
	Category    string          `json:"category,omitempty" csv:"Category"`
}

// Transaction is a persisted, reviewed transaction row.
type Transaction struct {
	ID          int64           `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Account     string          `json:"account"`
	Source      string          `json:"source"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ScoredTransaction annotates a persisted transaction with a similarity
// score in [0,1] against some query description.
type ScoredTransaction struct {
	Transaction
	Score float64 `json:"similarity_score"`
}

// Category is a user-visible spending category. Names are unique with a
// case-sensitive store and case-insensitive lookup.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MerchantMapping is a persisted rule mapping a normalized, uppercased
// merchant pattern to a category. Patterns are unique.
type MerchantMapping struct {
	ID        int64     `json:"id"`
	Pattern   string    `json:"merchant_pattern"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used"`
}

// CategorySuggestion is an ephemeral mapping proposal mined from historical
// transactions. Confidence is the share of the dominant category in [0,1].
type CategorySuggestion struct {
	Merchant   string  `json:"merchant"`
	Category   string  `json:"category"`
	Frequency  int     `json:"frequency"`
	Confidence float64 `json:"confidence"`
}

// LearningStats summarizes merchant-learning progress over the store.
type LearningStats struct {
	TotalTransactions  int     `json:"total_transactions"`
	Categorized        int     `json:"categorized"`
	Uncategorized      int     `json:"uncategorized"`
	MerchantMappings   int     `json:"merchant_mappings"`
	PendingSuggestions int     `json:"pending_suggestions"`
	CoveredByMapping   int     `json:"transactions_covered_by_mapping"`
	CoveragePercent    float64 `json:"coverage_percentage"`
}

// ApplyResult reports the outcome of bulk-applying mapping suggestions.
type ApplyResult struct {
	Added  int `json:"added"`
	Failed int `json:"failed"`
}
