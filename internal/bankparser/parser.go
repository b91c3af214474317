// Package bankparser converts extracted statement text into candidate
// transactions. Each supported bank gets its own parser sharing a common
// line-scan skeleton; a generic fallback handles unrecognized layouts.
package bankparser

import (
	"strings"

	"mreyes/kuenta/internal/logging"
	"mreyes/kuenta/internal/models"
	"mreyes/kuenta/internal/parsererror"
)

// StatementParser turns raw statement text into candidate transactions.
// Parse returns parsererror.ErrNoTransactionsFound when no candidate
// survives filtering; line-level anomalies are skipped silently.
type StatementParser interface {
	Bank() string
	Parse(text string) ([]models.CandidateTransaction, error)
}

// BaseParser carries the logger shared by all parser implementations.
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser returns a BaseParser, falling back to the default logger.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return BaseParser{logger: logger}
}

// Logger returns the configured logger.
func (b *BaseParser) Logger() logging.Logger {
	return b.logger
}

// Detect returns the parser whose identifying markers appear in text.
// More specific banks are checked before broader ones so that, for example,
// a UnionBank statement mentioning "BPI" in a promo footer is still detected
// as UnionBank. Returns nil when no bank matches.
func Detect(text string, logger logging.Logger) StatementParser {
	upper := strings.ToUpper(text)
	for _, p := range []StatementParser{NewUnionBankParser(logger), NewBPIParser(logger)} {
		for _, marker := range profileFor(p.Bank()).Markers {
			if strings.Contains(upper, marker) {
				return p
			}
		}
	}
	return nil
}

// ForBank returns the parser for an explicit bank selector, bypassing
// detection. The selector is matched loosely ("ub", "unionbank", "union
// bank" all resolve to UnionBank).
func ForBank(name string, logger logging.Logger) (StatementParser, error) {
	switch normalizeBankName(name) {
	case "unionbank", "ub":
		return NewUnionBankParser(logger), nil
	case "bpi":
		return NewBPIParser(logger), nil
	case "", "auto":
		return nil, nil
	case "generic":
		return NewGenericParser(logger), nil
	}
	return nil, &parsererror.ParseError{Bank: name, Err: errUnknownBank}
}

func normalizeBankName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
}

// GuessImageParser picks a parser for screenshot OCR text where no statement
// header is available: slashed numeric dates suggest UnionBank, otherwise
// the month-name BPI grammar is assumed.
func GuessImageParser(text string, logger logging.Logger) StatementParser {
	if p := Detect(text, logger); p != nil {
		return p
	}
	if numericDateRe.MatchString(text) {
		return NewUnionBankParser(logger)
	}
	return NewBPIParser(logger)
}
