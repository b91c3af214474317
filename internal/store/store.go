// Package store provides the persistence layer for categories, transactions
// and merchant mappings. Parsing and categorization components receive these
// repositories through their constructors, never as package globals.
package store

import (
	"time"

	"mreyes/kuenta/internal/models"
)

// CategoryStore manages the persisted category list. Names are stored
// case-sensitively; lookups are case-insensitive.
type CategoryStore interface {
	Categories() ([]string, error)
	AddCategory(name string) error
	RenameCategory(oldName, newName string) error
	// DeleteCategory removes a category and reassigns its transactions to
	// Uncategorized. Deleting Uncategorized itself is rejected.
	DeleteCategory(name string) error
}

// TransactionStore manages persisted transactions. Reads used by learning
// and similarity scans return the full history.
type TransactionStore interface {
	Transactions() ([]models.Transaction, error)
	AddTransaction(tx models.Transaction) (int64, error)
	UpdateTransactionCategory(id int64, category string) (bool, error)
}

// MappingStore manages merchant pattern to category rules. Patterns are
// stored uppercased and are unique; adding an existing pattern updates its
// category (upsert).
type MappingStore interface {
	Mappings() ([]models.MerchantMapping, error)
	UpsertMapping(pattern, category string) error
	DeleteMapping(pattern string) (bool, error)
	RenameMapping(oldPattern, newPattern, category string) (bool, error)
	// TouchMapping refreshes the last_used timestamp of a pattern.
	TouchMapping(pattern string) error
}

// Store combines the three repositories. The SQLite implementation and the
// in-memory test double both satisfy it.
type Store interface {
	CategoryStore
	TransactionStore
	MappingStore
}

// now is indirected for deterministic timestamps in tests.
var now = time.Now
