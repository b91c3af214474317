package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mreyes/kuenta/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCandidates() []models.CandidateTransaction {
	return []models.CandidateTransaction{
		{
			Date:        "2025-12-01",
			Description: "STARBUCKS COFFEE",
			Amount:      decimal.RequireFromString("150.5"),
			Category:    "Food & Dining",
		},
		{
			Date:        "2025-12-03",
			Description: "GRAB RIDE",
			Amount:      decimal.RequireFromString("89.999"),
		},
	}
}

func TestWriteCandidatesCSV(t *testing.T) {
	SetDelimiter(',')

	var buf bytes.Buffer
	err := WriteCandidatesCSV(sampleCandidates(), &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Description,Amount,Category", lines[0])
	assert.Equal(t, "2025-12-01,STARBUCKS COFFEE,150.5,Food & Dining", lines[1])
	assert.Contains(t, lines[2], "GRAB RIDE")
	assert.Contains(t, lines[2], "90")
}

func TestWriteCandidatesCSVDoesNotMutateInput(t *testing.T) {
	SetDelimiter(',')

	candidates := sampleCandidates()
	var buf bytes.Buffer
	require.NoError(t, WriteCandidatesCSV(candidates, &buf))

	assert.Equal(t, "89.999", candidates[1].Amount.String(), "rounding must stay local to the output")
}

func TestWriteCandidatesCSVCustomDelimiter(t *testing.T) {
	SetDelimiter(';')
	t.Cleanup(func() { SetDelimiter(',') })

	var buf bytes.Buffer
	err := WriteCandidatesCSV(sampleCandidates(), &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "Date;Description;Amount;Category", lines[0])
}

func TestWriteCandidatesCSVNil(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCandidatesCSV(nil, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil candidates")
}

func TestWriteCandidatesCSVEmpty(t *testing.T) {
	SetDelimiter(',')

	var buf bytes.Buffer
	err := WriteCandidatesCSV([]models.CandidateTransaction{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, "Date,Description,Amount,Category", strings.TrimSpace(buf.String()))
}

func TestWriteCandidatesCSVFile(t *testing.T) {
	SetDelimiter(',')

	csvFile := filepath.Join(t.TempDir(), "out", "candidates.csv")
	err := WriteCandidatesCSVFile(sampleCandidates(), csvFile)
	require.NoError(t, err)

	data, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "STARBUCKS COFFEE")
}
