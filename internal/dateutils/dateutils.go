// Package dateutils provides the date grammar helpers shared by the bank
// statement parsers.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Layout constants used across the parsers.
const (
	LayoutISO        = "2006-01-02"
	LayoutUSShort    = "01/02/06"
	LayoutUS         = "01/02/2006"
	LayoutMonthDay   = "Jan 2"
	LayoutMonthFull  = "January 2"
)

var monthNumbers = map[string]time.Month{
	"JANUARY": time.January, "FEBRUARY": time.February, "MARCH": time.March,
	"APRIL": time.April, "MAY": time.May, "JUNE": time.June,
	"JULY": time.July, "AUGUST": time.August, "SEPTEMBER": time.September,
	"OCTOBER": time.October, "NOVEMBER": time.November, "DECEMBER": time.December,
}

// MonthByName resolves a full English month name (any case) to its number.
func MonthByName(name string) (time.Month, bool) {
	m, ok := monthNumbers[strings.ToUpper(strings.TrimSpace(name))]
	return m, ok
}

// ParseTextualDate parses a "Mon D" or "Month D" date token and resolves it
// against refYear. If the resulting month is December while refMonth is
// January, the year is rolled back by one: a January statement listing
// December purchases refers to the previous year.
func ParseTextualDate(token string, refYear int, refMonth time.Month) (time.Time, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(token), ".", "")
	for _, layout := range []string{LayoutMonthDay, LayoutMonthFull} {
		t, err := time.Parse(layout, cleaned)
		if err != nil {
			continue
		}
		year := refYear
		if refMonth == time.January && t.Month() == time.December {
			year = refYear - 1
		}
		return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date token: %q", token)
}

// ParseNumericDate parses an MM/DD/YY date token. Two-digit years follow the
// standard time package pivot (00-68 maps to 2000-2068).
func ParseNumericDate(token string) (time.Time, error) {
	return time.Parse(LayoutUSShort, strings.TrimSpace(token))
}

// ISO formats a time as an ISO-8601 date string.
func ISO(t time.Time) string {
	return t.Format(LayoutISO)
}
