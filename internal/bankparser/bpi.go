package bankparser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"mreyes/kuenta/internal/dateutils"
	"mreyes/kuenta/internal/logging"
	"mreyes/kuenta/internal/models"
	"mreyes/kuenta/internal/parsererror"
)

// BPIParser parses BPI credit card statements, both native text and OCR
// output. Line items frequently omit an explicit date; those are assigned
// the 1st of the statement month, a documented simplification of the
// statement layout.
type BPIParser struct {
	BaseParser
	profile Profile
}

// NewBPIParser returns a parser configured with the BPI statement grammar.
func NewBPIParser(logger logging.Logger) *BPIParser {
	return &BPIParser{
		BaseParser: NewBaseParser(logger),
		profile:    bpiProfile,
	}
}

// Bank returns the bank identifier.
func (p *BPIParser) Bank() string { return p.profile.Name }

var (
	pageMarkerRe   = regexp.MustCompile(`=== PAGE`)
	fullMonthDayRe = regexp.MustCompile(`(?i)^(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2})`)
	bareAmountRe   = regexp.MustCompile(`^[\d,]+\.\d{2}$`)
)

// splitColumnSkip filters out labels that sit between merchant lines in the
// split-column layout.
var splitColumnSkip = []string{
	"BPI Credit Cards", "Customer Number", "Transaction",
	"Post Date", "BPI REWARDS", "Statement of Account",
}

// Parse extracts candidate transactions from BPI statement text.
func (p *BPIParser) Parse(text string) ([]models.CandidateTransaction, error) {
	lines := strings.Split(text, "\n")
	ref := resolveStatementRef(lines)

	candidates := scanLines(lines[p.transactionsStart(lines):], p.profile, ref)
	candidates = append(candidates, p.splitColumnPass(lines, ref)...)

	p.Logger().WithFields(
		logging.Field{Key: "bank", Value: p.Bank()},
		logging.Field{Key: "count", Value: len(candidates)},
	).Debug("Statement scan finished")

	if len(candidates) == 0 {
		return nil, parsererror.ErrNoTransactionsFound
	}
	return candidates, nil
}

// transactionsStart locates the first line after the "Customer Number"
// block's Description/Amount table header, which is where real transactions
// begin. Everything before it is account summary. Returns 0 when the header
// is not present (screenshots).
func (p *BPIParser) transactionsStart(lines []string) int {
	customerNumberSeen := false
	for i, line := range lines {
		if strings.Contains(line, "Customer Number") {
			customerNumberSeen = true
		}
		if customerNumberSeen &&
			strings.Contains(line, "Description") && strings.Contains(line, "Amount") {
			return i + 1
		}
	}
	return 0
}

// splitColumnPass recovers transactions from continuation pages that list
// all merchant lines in one block, then a "Statement of Account" marker,
// then a parallel block of bare amounts. Merchants and amounts are paired
// positionally; trailing extra amounts (fee totals) are discarded. The pass
// only fires when there are at least as many amounts as merchants.
func (p *BPIParser) splitColumnPass(lines []string, ref statementRef) []models.CandidateTransaction {
	var out []models.CandidateTransaction

	for i := range lines {
		if !pageMarkerRe.MatchString(lines[i]) {
			continue
		}

		var merchants []string
		var merchantDates []string
		var amounts []string

		limit := i + 100
		if limit > len(lines) {
			limit = len(lines)
		}
		for j := i + 1; j < limit; j++ {
			line := strings.TrimSpace(lines[j])
			if strings.Contains(line, "===") && strings.Contains(line, "PAGE") {
				break
			}
			if line == "" {
				continue
			}

			if m := fullMonthDayRe.FindStringSubmatch(line); m != nil &&
				len(line) > 3 &&
				!bareAmountRe.MatchString(line) &&
				!containsAnyLiteral(line, splitColumnSkip) {
				merchants = append(merchants, line)
				merchantDates = append(merchantDates, p.splitColumnDate(m[1], m[2], ref))
			}

			if strings.Contains(line, "Statement of Account") && len(merchants) > 0 {
				amountLimit := j + 30
				if amountLimit > len(lines) {
					amountLimit = len(lines)
				}
				for k := j + 1; k < amountLimit; k++ {
					amountLine := strings.TrimSpace(lines[k])
					if bareAmountRe.MatchString(amountLine) {
						amounts = append(amounts, amountLine)
					}
				}
				break
			}
		}

		if len(merchants) == 0 || len(amounts) < len(merchants) {
			continue
		}
		for n := range merchants {
			amount, ok := parseAmount(amounts[n])
			if !ok || amount.Sign() < 0 {
				continue
			}
			out = append(out, models.CandidateTransaction{
				Date:        merchantDates[n],
				Description: merchants[n],
				Amount:      amount,
			})
		}
	}
	return out
}

// splitColumnDate resolves a full month name + day against the statement
// reference, rolling the year back across a December/January boundary.
func (p *BPIParser) splitColumnDate(monthName, day string, ref statementRef) string {
	month, ok := dateutils.MonthByName(monthName)
	if !ok {
		month = ref.Month
	}
	year := ref.Year
	if ref.Month == time.January && month == time.December {
		year = ref.Year - 1
	}
	var d int
	fmt.Sscanf(day, "%d", &d)
	return fmt.Sprintf("%04d-%02d-%02d", year, month, d)
}

func containsAnyLiteral(line string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(line, p) {
			return true
		}
	}
	return false
}
