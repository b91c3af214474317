package bankparser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"mreyes/kuenta/internal/dateutils"
	"mreyes/kuenta/internal/models"

	"github.com/shopspring/decimal"
)

var (
	// A transaction candidate ends in a monetary pattern: digits with
	// optional thousands separators and exactly two decimals, optionally
	// preceded by a currency token.
	amountTailRe = regexp.MustCompile(`(?i)(?:PHP\s*)?(-?[\d,]+\.\d{2})\s*$`)

	textualDateRe = regexp.MustCompile(`(?i)(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2}`)
	numericDateRe = regexp.MustCompile(`\d{2}/\d{2}/\d{2}`)

	statementYearRe = regexp.MustCompile(`\b20\d{2}\b`)
)

// nowFunc is indirected so tests can pin the clock used for year inference
// when no statement-date header is present.
var nowFunc = time.Now

// statementRef anchors year inference for date grammars without a year.
type statementRef struct {
	Year  int
	Month time.Month
}

// resolveStatementRef scans for the printed "STATEMENT DATE" header and
// extracts its year and month. Falls back to the current date; screenshots
// have no header.
func resolveStatementRef(lines []string) statementRef {
	ref := statementRef{Year: nowFunc().Year(), Month: nowFunc().Month()}
	for _, line := range lines {
		upper := strings.ToUpper(line)
		if !strings.Contains(upper, "STATEMENT DATE") {
			continue
		}
		match := statementYearRe.FindString(line)
		if match == "" {
			continue
		}
		fmt.Sscanf(match, "%d", &ref.Year)
		for _, name := range []string{
			"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE",
			"JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER",
		} {
			if strings.Contains(upper, name) {
				if m, ok := dateutils.MonthByName(name); ok {
					ref.Month = m
				}
				break
			}
		}
		break
	}
	return ref
}

func dateRegexp(style DateStyle) *regexp.Regexp {
	if style == DateNumeric {
		return numericDateRe
	}
	return textualDateRe
}

// parseAmount converts a monetary token to a decimal, stripping separators.
func parseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func containsAny(upper string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}

func hasPrefixAny(upper string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(upper, p) {
			return true
		}
	}
	return false
}

// scanLines is the shared per-bank line scan. It walks the statement
// strictly sequentially: the pending-description and section-skip state make
// the result order dependent, so this must never be parallelized.
func scanLines(lines []string, p Profile, ref statementRef) []models.CandidateTransaction {
	dateRe := dateRegexp(p.DateStyle)

	var out []models.CandidateTransaction
	pending := ""
	skippingSection := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			// A blank line breaks any word-wrapped description.
			pending = ""
			continue
		}

		stop := false
		upper := strings.ToUpper(line)
		for _, phrase := range p.StopPhrases {
			if strings.Contains(upper, phrase) {
				stop = true
				break
			}
		}
		if stop {
			break
		}

		if p.SectionStart != "" && strings.Contains(line, p.SectionStart) {
			skippingSection = true
			pending = ""
			continue
		}
		if p.SectionEnd != "" && strings.Contains(line, p.SectionEnd) {
			skippingSection = false
			pending = ""
			continue
		}
		if skippingSection {
			continue
		}

		if containsAny(upper, p.SkipPhrases) {
			pending = ""
			continue
		}

		loc := amountTailRe.FindStringSubmatchIndex(line)
		if loc == nil {
			// No amount: possibly the first half of a word-wrapped
			// description, unless it already looks like a dated line.
			if len(line) > 3 && !dateRe.MatchString(line) {
				pending = line
			} else {
				pending = ""
			}
			continue
		}

		amountStr := line[loc[2]:loc[3]]
		remaining := strings.TrimSpace(line[:loc[0]])
		if remaining == "" {
			// A bare amount belongs to a split-column page, not to the
			// preceding description line.
			pending = ""
			continue
		}

		var date, desc string
		if dates := dateRe.FindAllStringIndex(remaining, -1); len(dates) > 0 {
			// Two date tokens mean transaction + posting date; the first
			// one is the transaction date and the description follows the
			// last one.
			token := remaining[dates[0][0]:dates[0][1]]
			var t time.Time
			var err error
			if p.DateStyle == DateNumeric {
				t, err = dateutils.ParseNumericDate(token)
			} else {
				t, err = dateutils.ParseTextualDate(token, ref.Year, ref.Month)
			}
			if err != nil {
				pending = ""
				continue
			}
			date = dateutils.ISO(t)
			desc = strings.TrimSpace(remaining[dates[len(dates)-1][1]:])
		} else if p.PlaceholderDate {
			date = fmt.Sprintf("%04d-%02d-01", ref.Year, ref.Month)
			desc = remaining
		} else {
			pending = ""
			continue
		}

		if pending != "" {
			desc = pending + " " + desc
			pending = ""
		}
		if len(desc) < 3 {
			continue
		}
		descUpper := strings.ToUpper(desc)
		if containsAny(descUpper, p.SkipPhrases) {
			continue
		}
		if hasPrefixAny(descUpper, p.RejectDescPrefixes) {
			continue
		}

		amount, ok := parseAmount(amountStr)
		if !ok || amount.Sign() < 0 {
			// Credits, refunds and payments are discarded; only positive
			// debit amounts become candidates.
			continue
		}

		out = append(out, models.CandidateTransaction{
			Date:        date,
			Description: desc,
			Amount:      amount,
		})
	}
	return out
}
