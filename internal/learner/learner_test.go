package learner

import (
	"testing"

	"mreyes/kuenta/internal/models"
	"mreyes/kuenta/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMerchant(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"Payment to Starbucks BGC via card", "STARBUCKS BGC CARD"},
		{"GRAB TRANSPORT MANILA PH EXTRA WORDS", "GRAB TRANSPORT MANILA EXTRA"},
		{"at to of", "AT TO OF"},
		{"NETFLIX.COM", "NETFLIX.COM"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractMerchant(tt.desc), tt.desc)
	}
}

func addTx(t *testing.T, s *store.MemoryStore, desc, category string) {
	t.Helper()
	_, err := s.AddTransaction(models.Transaction{
		Date:        "2025-11-28",
		Description: desc,
		Category:    category,
		Amount:      decimal.NewFromInt(200),
	})
	require.NoError(t, err)
}

func TestSuggestMappingsDominantCategory(t *testing.T) {
	s := store.NewMemoryStore()
	for i := 0; i < 4; i++ {
		addTx(t, s, "STARBUCKS BGC", "Food & Dining")
	}
	addTx(t, s, "STARBUCKS BGC", "Shopping")

	lrn := New(s, s, nil)
	suggestions, err := lrn.SuggestMappings(3, 0.75)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	assert.Equal(t, "STARBUCKS BGC", suggestions[0].Merchant)
	assert.Equal(t, "Food & Dining", suggestions[0].Category)
	assert.Equal(t, 5, suggestions[0].Frequency)
	assert.InDelta(t, 0.8, suggestions[0].Confidence, 1e-9)
}

func TestSuggestMappingsBelowConfidence(t *testing.T) {
	s := store.NewMemoryStore()
	for i := 0; i < 3; i++ {
		addTx(t, s, "STARBUCKS BGC", "Food & Dining")
	}
	addTx(t, s, "STARBUCKS BGC", "Shopping")
	addTx(t, s, "STARBUCKS BGC", "Entertainment")

	lrn := New(s, s, nil)
	suggestions, err := lrn.SuggestMappings(3, 0.75)
	require.NoError(t, err)
	assert.Empty(t, suggestions, "0.6 dominance is below the 0.75 threshold")
}

func TestSuggestMappingsIgnoresUncategorizedAndCovered(t *testing.T) {
	s := store.NewMemoryStore()
	for i := 0; i < 4; i++ {
		addTx(t, s, "STARBUCKS BGC", models.CategoryUncategorized)
	}
	for i := 0; i < 4; i++ {
		addTx(t, s, "JOLLIBEE MAKATI", "Food & Dining")
	}
	require.NoError(t, s.UpsertMapping("JOLLIBEE MAKATI", "Food & Dining"))

	lrn := New(s, s, nil)
	suggestions, err := lrn.SuggestMappings(3, 0.75)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggestMappingsRespectsMinFrequency(t *testing.T) {
	s := store.NewMemoryStore()
	addTx(t, s, "STARBUCKS BGC", "Food & Dining")
	addTx(t, s, "STARBUCKS BGC", "Food & Dining")

	lrn := New(s, s, nil)
	suggestions, err := lrn.SuggestMappings(3, 0.75)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestAutoApply(t *testing.T) {
	s := store.NewMemoryStore()
	for i := 0; i < 4; i++ {
		addTx(t, s, "STARBUCKS BGC", "Food & Dining")
	}

	lrn := New(s, s, nil)
	result, err := lrn.AutoApply(3, 0.75)
	require.NoError(t, err)
	assert.Equal(t, models.ApplyResult{Added: 1}, result)

	mappings, err := s.Mappings()
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "STARBUCKS BGC", mappings[0].Pattern)
	assert.Equal(t, "Food & Dining", mappings[0].Category)
}

func TestStats(t *testing.T) {
	s := store.NewMemoryStore()
	for i := 0; i < 4; i++ {
		addTx(t, s, "STARBUCKS BGC", "Food & Dining")
	}
	addTx(t, s, "UNKNOWN SHOP", models.CategoryUncategorized)
	require.NoError(t, s.UpsertMapping("STARBUCKS BGC", "Food & Dining"))

	lrn := New(s, s, nil)
	stats, err := lrn.Stats()
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalTransactions)
	assert.Equal(t, 4, stats.Categorized)
	assert.Equal(t, 1, stats.Uncategorized)
	assert.Equal(t, 1, stats.MerchantMappings)
	assert.Equal(t, 4, stats.CoveredByMapping)
	assert.InDelta(t, 80.0, stats.CoveragePercent, 1e-9)
}

func TestStatsEmptyStore(t *testing.T) {
	s := store.NewMemoryStore()
	lrn := New(s, s, nil)
	stats, err := lrn.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.TotalTransactions)
	assert.Zero(t, stats.CoveragePercent)
}
