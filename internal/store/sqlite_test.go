package store

import (
	"path/filepath"
	"testing"

	"mreyes/kuenta/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "kuenta.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenSeedsDefaultCategories(t *testing.T) {
	s := openTestStore(t)

	categories, err := s.Categories()
	require.NoError(t, err)
	assert.Contains(t, categories, "Food & Dining")
	assert.Contains(t, categories, models.CategoryUncategorized)
	assert.Len(t, categories, len(models.DefaultCategories)+1)
}

func TestAddAndRenameCategory(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.AddCategory("Subscriptions"))
	require.NoError(t, s.AddCategory("Subscriptions"), "duplicate insert is a no-op")

	require.NoError(t, s.RenameCategory("Subscriptions", "Streaming"))
	categories, err := s.Categories()
	require.NoError(t, err)
	assert.Contains(t, categories, "Streaming")
	assert.NotContains(t, categories, "Subscriptions")
}

func TestDeleteCategoryReassignsTransactions(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.AddCategory("Streaming"))

	id, err := s.AddTransaction(models.Transaction{
		Date:        "2025-11-28",
		Description: "NETFLIX.COM",
		Category:    "Streaming",
		Amount:      decimal.NewFromInt(549),
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory("Streaming"))

	txs, err := s.Transactions()
	require.NoError(t, err)
	for _, tx := range txs {
		if tx.ID == id {
			assert.Equal(t, models.CategoryUncategorized, tx.Category)
		}
	}
}

func TestDeleteUncategorizedRejected(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.DeleteCategory(models.CategoryUncategorized))
}

func TestTransactionRoundTrip(t *testing.T) {
	s := openTestStore(t)

	id, err := s.AddTransaction(models.Transaction{
		Date:        "2025-11-28",
		Description: "GRAB PH",
		Category:    "Transportation",
		Amount:      decimal.RequireFromString("250.50"),
		Account:     "BPI",
		Source:      "statement.pdf",
	})
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	txs, err := s.Transactions()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "GRAB PH", txs[0].Description)
	assert.Equal(t, "250.50", txs[0].Amount.StringFixed(2))
	assert.Equal(t, "BPI", txs[0].Account)
	assert.False(t, txs[0].CreatedAt.IsZero())
}

func TestUpdateTransactionCategory(t *testing.T) {
	s := openTestStore(t)

	id, err := s.AddTransaction(models.Transaction{
		Date: "2025-11-28", Description: "NETFLIX.COM",
		Category: models.CategoryUncategorized, Amount: decimal.NewFromInt(549),
	})
	require.NoError(t, err)

	ok, err := s.UpdateTransactionCategory(id, "Entertainment")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.UpdateTransactionCategory(99999, "Entertainment")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMappingUpsertUppercasesPattern(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.UpsertMapping("starbucks bgc", "Food & Dining"))
	require.NoError(t, s.UpsertMapping("STARBUCKS BGC", "Shopping"), "same pattern updates in place")

	mappings, err := s.Mappings()
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "STARBUCKS BGC", mappings[0].Pattern)
	assert.Equal(t, "Shopping", mappings[0].Category)
}

func TestMappingDeleteAndRename(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.UpsertMapping("NETFLIX", "Entertainment"))

	ok, err := s.RenameMapping("NETFLIX", "NETFLIX.COM", "Entertainment")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteMapping("NETFLIX.COM")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteMapping("NETFLIX.COM")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreMatchesSQLiteSemantics(t *testing.T) {
	m := NewMemoryStore()

	categories, err := m.Categories()
	require.NoError(t, err)
	assert.Contains(t, categories, models.CategoryUncategorized)

	require.NoError(t, m.UpsertMapping("grab ph", "Transportation"))
	mappings, err := m.Mappings()
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "GRAB PH", mappings[0].Pattern)

	assert.Error(t, m.DeleteCategory(models.CategoryUncategorized))
}
