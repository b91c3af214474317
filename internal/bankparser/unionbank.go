package bankparser

import (
	"mreyes/kuenta/internal/logging"
	"mreyes/kuenta/internal/models"
	"mreyes/kuenta/internal/parsererror"
	"strings"
)

// UnionBankParser parses UnionBank credit card statements. Lines carry a
// transaction date and a posting date in MM/DD/YY form followed by the
// description and a PHP amount.
type UnionBankParser struct {
	BaseParser
	profile Profile
}

// NewUnionBankParser returns a parser configured with the UnionBank grammar.
func NewUnionBankParser(logger logging.Logger) *UnionBankParser {
	return &UnionBankParser{
		BaseParser: NewBaseParser(logger),
		profile:    unionBankProfile,
	}
}

// Bank returns the bank identifier.
func (p *UnionBankParser) Bank() string { return p.profile.Name }

// Parse extracts candidate transactions from UnionBank statement text.
func (p *UnionBankParser) Parse(text string) ([]models.CandidateTransaction, error) {
	lines := strings.Split(text, "\n")
	candidates := scanLines(lines, p.profile, resolveStatementRef(lines))

	p.Logger().WithFields(
		logging.Field{Key: "bank", Value: p.Bank()},
		logging.Field{Key: "count", Value: len(candidates)},
	).Debug("Statement scan finished")

	if len(candidates) == 0 {
		return nil, parsererror.ErrNoTransactionsFound
	}
	return candidates, nil
}
