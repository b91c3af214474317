package bankparser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinClock(t *testing.T, year int, month time.Month) {
	t.Helper()
	orig := nowFunc
	nowFunc = func() time.Time {
		return time.Date(year, month, 15, 12, 0, 0, 0, time.UTC)
	}
	t.Cleanup(func() { nowFunc = orig })
}

func TestBPIParseDatedLine(t *testing.T) {
	text := strings.Join([]string{
		"BPI CREDIT CARD",
		"STATEMENT DATE December 10, 2025",
		"Customer Number 1234567890",
		"Post Date Description Amount",
		"Nov 28 Dec 1 NETFLIX.COM 549.00",
	}, "\n")

	parser := NewBPIParser(nil)
	candidates, err := parser.Parse(text)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.Equal(t, "2025-11-28", candidates[0].Date)
	assert.Equal(t, "NETFLIX.COM", candidates[0].Description)
	assert.Equal(t, "549.00", candidates[0].Amount.StringFixed(2))
}

func TestBPIParsePlaceholderDate(t *testing.T) {
	text := strings.Join([]string{
		"STATEMENT DATE December 10, 2025",
		"GRAB PH 250.50",
	}, "\n")

	parser := NewBPIParser(nil)
	candidates, err := parser.Parse(text)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.Equal(t, "2025-12-01", candidates[0].Date)
	assert.Equal(t, "GRAB PH", candidates[0].Description)
}

func TestBPIParseDecemberRollback(t *testing.T) {
	text := strings.Join([]string{
		"STATEMENT DATE January 10, 2026",
		"Dec 28 Dec 30 SPOTIFY PREMIUM 149.00",
	}, "\n")

	parser := NewBPIParser(nil)
	candidates, err := parser.Parse(text)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.Equal(t, "2025-12-28", candidates[0].Date)
}

func TestBPIParseSkipsSummaryAndNegatives(t *testing.T) {
	text := strings.Join([]string{
		"STATEMENT DATE December 10, 2025",
		"Previous Balance 10,000.00",
		"Finance Charge 350.00",
		"Payment - Thank You 5,000.00",
		"Dec 2 Dec 3 REFUND STORE -100.00",
		"Dec 5 Dec 6 LAZADA PH 1,250.00",
	}, "\n")

	parser := NewBPIParser(nil)
	candidates, err := parser.Parse(text)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.Equal(t, "LAZADA PH", candidates[0].Description)
	for _, c := range candidates {
		assert.True(t, c.Amount.Sign() > 0, "amounts must be positive debits")
		upper := strings.ToUpper(c.Description)
		assert.NotContains(t, upper, "PREVIOUS BALANCE")
		assert.NotContains(t, upper, "FINANCE CHARGE")
	}
}

func TestBPIParseInstallmentSectionSkipped(t *testing.T) {
	text := strings.Join([]string{
		"STATEMENT DATE December 10, 2025",
		"Dec 1 Dec 2 JOLLIBEE MAKATI 385.00",
		"Installment Purchase: Gadget Plan",
		"Dec 3 Dec 4 GADGET STORE 5,000.00",
		"Installment Amortization: 1 of 12",
		"Dec 5 Dec 6 SHOPEE PH 799.00",
	}, "\n")

	parser := NewBPIParser(nil)
	candidates, err := parser.Parse(text)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "JOLLIBEE MAKATI", candidates[0].Description)
	assert.Equal(t, "SHOPEE PH", candidates[1].Description)
}

func TestBPIParseStopsAtFooter(t *testing.T) {
	text := strings.Join([]string{
		"STATEMENT DATE December 10, 2025",
		"Dec 1 Dec 2 JOLLIBEE MAKATI 385.00",
		"Installment Balance Summary",
		"Dec 5 Dec 6 FOOTER LINE 999.00",
	}, "\n")

	parser := NewBPIParser(nil)
	candidates, err := parser.Parse(text)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "JOLLIBEE MAKATI", candidates[0].Description)
}

func TestBPIParseWrappedDescription(t *testing.T) {
	text := strings.Join([]string{
		"STATEMENT DATE December 10, 2025",
		"GOOGLE SERVICES",
		"SINGAPORE SG 99.00",
	}, "\n")

	parser := NewBPIParser(nil)
	candidates, err := parser.Parse(text)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "GOOGLE SERVICES SINGAPORE SG", candidates[0].Description)
}

func TestBPIParseSplitColumnPage(t *testing.T) {
	text := strings.Join([]string{
		"STATEMENT DATE December 28, 2025",
		"=== PAGE 3 ===",
		"November 28 NETFLIX.COM MANILA",
		"December 1 GRAB PH",
		"Statement of Account",
		"549.00",
		"250.50",
		"1,000.00",
	}, "\n")

	parser := NewBPIParser(nil)
	candidates, err := parser.Parse(text)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "2025-11-28", candidates[0].Date)
	assert.Equal(t, "November 28 NETFLIX.COM MANILA", candidates[0].Description)
	assert.Equal(t, "549.00", candidates[0].Amount.StringFixed(2))

	assert.Equal(t, "2025-12-01", candidates[1].Date)
	assert.Equal(t, "250.50", candidates[1].Amount.StringFixed(2))
}

func TestBPIParseSplitColumnNeedsEnoughAmounts(t *testing.T) {
	// Fewer amounts than merchants means the pairing would misalign, so
	// the pass must yield nothing.
	text := strings.Join([]string{
		"STATEMENT DATE December 28, 2025",
		"=== PAGE 3 ===",
		"November 28 NETFLIX.COM MANILA",
		"December 1 GRAB PH",
		"Statement of Account",
		"549.00",
	}, "\n")

	parser := NewBPIParser(nil)
	_, err := parser.Parse(text)
	assert.Error(t, err)
}

func TestBPIParseIdempotent(t *testing.T) {
	text := strings.Join([]string{
		"STATEMENT DATE December 10, 2025",
		"Nov 28 Dec 1 NETFLIX.COM 549.00",
		"Dec 5 Dec 6 LAZADA PH 1,250.00",
	}, "\n")

	parser := NewBPIParser(nil)
	first, err := parser.Parse(text)
	require.NoError(t, err)
	second, err := parser.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBPIParseNoTransactions(t *testing.T) {
	parser := NewBPIParser(nil)
	_, err := parser.Parse("Previous Balance 10,000.00\nTotal 10,000.00\n")
	assert.Error(t, err)
}
