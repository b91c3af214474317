package bankparser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"mreyes/kuenta/internal/logging"
	"mreyes/kuenta/internal/models"
	"mreyes/kuenta/internal/parsererror"

	"github.com/shopspring/decimal"
)

// GenericParser is the fallback for statements no bank profile recognizes.
// It runs whole-text regex passes for the common date shapes instead of a
// line-scan, and additionally rejects suspiciously round amounts that
// usually belong to example tables rather than real transactions.
type GenericParser struct {
	BaseParser
}

// NewGenericParser returns the generic fallback parser.
func NewGenericParser(logger logging.Logger) *GenericParser {
	return &GenericParser{BaseParser: NewBaseParser(logger)}
}

// Bank returns the bank identifier.
func (p *GenericParser) Bank() string { return "Generic" }

var genericPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s+([A-Z0-9\s\-\.\,\&\/]+?)\s+([\d,]+\.\d{2})`),
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s+([A-Z0-9\s\-\.\,\&\/]+?)\s+([\d,]+\.\d{2})`),
	regexp.MustCompile(`(\d{2}/\d{2})\s+([A-Z0-9\s\-\.\,\&\/]+?)\s+([\d,]+\.\d{2})`),
}

var roundAmountFloor = decimal.NewFromInt(10000)
var oneHundred = decimal.NewFromInt(100)

// Parse extracts candidate transactions using the generic date patterns.
func (p *GenericParser) Parse(text string) ([]models.CandidateTransaction, error) {
	var candidates []models.CandidateTransaction

	for _, pattern := range genericPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			dateStr, desc, amountStr := match[1], strings.TrimSpace(match[2]), match[3]

			if len(desc) < 3 || containsAny(strings.ToUpper(desc), genericSkipPhrases) {
				continue
			}

			amount, ok := parseAmount(amountStr)
			if !ok || amount.Sign() < 0 {
				continue
			}
			// Large round figures are usually interest-rate examples or
			// sample tables, not purchases.
			if amount.GreaterThan(roundAmountFloor) && amount.Mod(oneHundred).IsZero() {
				continue
			}

			date, err := p.normalizeDate(dateStr)
			if err != nil {
				continue
			}

			candidates = append(candidates, models.CandidateTransaction{
				Date:        date,
				Description: desc,
				Amount:      amount,
			})
		}
	}

	p.Logger().WithFields(
		logging.Field{Key: "bank", Value: p.Bank()},
		logging.Field{Key: "count", Value: len(candidates)},
	).Debug("Generic scan finished")

	if len(candidates) == 0 {
		return nil, parsererror.ErrNoTransactionsFound
	}
	return candidates, nil
}

// normalizeDate converts a matched date token to ISO-8601. Bare MM/DD dates
// assume the current year.
func (p *GenericParser) normalizeDate(s string) (string, error) {
	switch {
	case strings.Contains(s, "/") && strings.Count(s, "/") == 1:
		t, err := time.Parse("01/02", s)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%04d-%02d-%02d", nowFunc().Year(), t.Month(), t.Day()), nil
	case strings.Contains(s, "/"):
		t, err := time.Parse("01/02/2006", s)
		if err != nil {
			return "", err
		}
		return t.Format("2006-01-02"), nil
	default:
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return "", err
		}
		return s, nil
	}
}
