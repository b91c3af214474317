package bankparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnionBankParseLine(t *testing.T) {
	parser := NewUnionBankParser(nil)
	candidates, err := parser.Parse("01/19/26 01/20/26 SHOPEE PH, MANDALUYONG PHP 220.00\n")
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.Equal(t, "2026-01-19", candidates[0].Date)
	assert.Equal(t, "SHOPEE PH, MANDALUYONG", candidates[0].Description)
	assert.Equal(t, "220.00", candidates[0].Amount.StringFixed(2))
}

func TestUnionBankParseWithoutCurrencyToken(t *testing.T) {
	parser := NewUnionBankParser(nil)
	candidates, err := parser.Parse("03/05/26 03/06/26 GRAB PH 185.00\n")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "2026-03-05", candidates[0].Date)
	assert.Equal(t, "GRAB PH", candidates[0].Description)
}

func TestUnionBankParseSkipsSummaryRows(t *testing.T) {
	text := strings.Join([]string{
		"PREVIOUS BALANCE 12,345.67",
		"MINIMUM AMOUNT DUE 500.00",
		"01/19/26 01/20/26 SHOPEE PH 220.00",
		"CREDIT LIMIT 100,000.00",
	}, "\n")

	parser := NewUnionBankParser(nil)
	candidates, err := parser.Parse(text)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "SHOPEE PH", candidates[0].Description)
}

func TestUnionBankParseRejectsHeaderPrefixes(t *testing.T) {
	text := strings.Join([]string{
		"01/19/26 01/20/26 PAGE 2 OF 3 100.00",
		"01/19/26 01/20/26 LAZADA PH 450.00",
	}, "\n")

	parser := NewUnionBankParser(nil)
	candidates, err := parser.Parse(text)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "LAZADA PH", candidates[0].Description)
}

func TestUnionBankParseDiscardsNegativeAmounts(t *testing.T) {
	text := strings.Join([]string{
		"01/19/26 01/20/26 PAYMENT REVERSAL -500.00",
		"01/21/26 01/22/26 MCDONALDS BGC 260.00",
	}, "\n")

	parser := NewUnionBankParser(nil)
	candidates, err := parser.Parse(text)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "MCDONALDS BGC", candidates[0].Description)
}

func TestUnionBankParseNoTransactions(t *testing.T) {
	parser := NewUnionBankParser(nil)
	_, err := parser.Parse("STATEMENT DATE 01/25/26\nTOTAL 2,000.00\n")
	assert.Error(t, err)
}
