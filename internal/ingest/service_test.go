package ingest

import (
	"context"
	"testing"

	"mreyes/kuenta/internal/categorizer"
	"mreyes/kuenta/internal/docaccess"
	"mreyes/kuenta/internal/logging"
	"mreyes/kuenta/internal/models"
	"mreyes/kuenta/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(pages []string) (*Service, *store.MemoryStore) {
	s := store.NewMemoryStore()
	cat := categorizer.New(s, s, nil)
	accessor := docaccess.NewAccessor(&docaccess.MockTextExtractor{Pages: pages}, nil, nil)
	return NewService(accessor, nil, cat, nil), s
}

func TestCategorizeCandidates(t *testing.T) {
	svc, s := newTestService(nil)
	require.NoError(t, s.UpsertMapping("ZXQWK", "Shopping"))

	candidates := []models.CandidateTransaction{
		{Date: "2025-12-01", Description: "STARBUCKS BGC", Amount: decimal.RequireFromString("150.00")},
		{Date: "2025-12-02", Description: "ZXQWK STORE 41", Amount: decimal.RequireFromString("899.00")},
		{Date: "2025-12-03", Description: "QQQQQ 0001", Amount: decimal.RequireFromString("10.00")},
		{Date: "2025-12-04", Description: "ALREADY SET", Amount: decimal.RequireFromString("5.00"), Category: "Bills & Fees"},
	}

	got := svc.CategorizeCandidates(candidates, 60)
	require.Len(t, got, 4)

	assert.Equal(t, "Food & Dining", got[0].Category)
	assert.Equal(t, "Shopping", got[1].Category)
	assert.Equal(t, models.CategoryUncategorized, got[2].Category)
	assert.Equal(t, "Bills & Fees", got[3].Category, "preset categories are left alone")

	// Input slice is not mutated.
	assert.Empty(t, candidates[0].Category)
}

func TestCategorizeCandidatesEmpty(t *testing.T) {
	svc, _ := newTestService(nil)
	got := svc.CategorizeCandidates(nil, 60)
	assert.Empty(t, got)
}

func TestExtractFileParsesStatement(t *testing.T) {
	pages := []string{
		"BPI Statement of Account\n" +
			"Transaction Date Posting Date Description Amount\n" +
			"December 1 December 2 STARBUCKS BGC 150.00\n" +
			"December 3 December 4 GRAB RIDE MANILA 89.50\n",
	}
	svc, _ := newTestService(pages)

	candidates, err := svc.ExtractFile("statement.pdf", "", "")
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "STARBUCKS BGC", candidates[0].Description)
	assert.Equal(t, "150", candidates[0].Amount.String())
	assert.Equal(t, "GRAB RIDE MANILA", candidates[1].Description)
}

func TestExtractFileUnknownBankFallsBackToGeneric(t *testing.T) {
	pages := []string{
		"Some Neobank App Export\n" +
			"12/01/2025 STARBUCKS COFFEE 150.00\n",
	}
	s := store.NewMemoryStore()
	log := logging.NewMockLogger()
	accessor := docaccess.NewAccessor(&docaccess.MockTextExtractor{Pages: pages}, nil, log)
	svc := NewService(accessor, nil, categorizer.New(s, s, log), log)

	candidates, err := svc.ExtractFile("export.pdf", "", "")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "STARBUCKS COFFEE", candidates[0].Description)
	assert.True(t, log.HasEntry("INFO", "generic parser"))
}

func TestExtractImageWithoutOCR(t *testing.T) {
	svc, _ := newTestService(nil)
	_, err := svc.ExtractImage("shot.png", "")
	require.Error(t, err)
}

func TestProcessBatchSortsResults(t *testing.T) {
	pages := []string{
		"BPI Statement of Account\n" +
			"Transaction Date Posting Date Description Amount\n" +
			"December 1 December 2 STARBUCKS BGC 150.00\n",
	}
	svc, _ := newTestService(pages)

	results := svc.ProcessBatch(context.Background(), []string{"b.pdf", "a.pdf"}, "", "", 2)
	require.Len(t, results, 2)
	assert.Equal(t, "a.pdf", results[0].Path)
	assert.Equal(t, "b.pdf", results[1].Path)
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.Len(t, r.Candidates, 1)
	}
}
