package bankparser

import "errors"

var errUnknownBank = errors.New("unknown bank selector")

// DateStyle selects the date grammar a bank's statements use.
type DateStyle int

const (
	// DateTextual matches "Nov 28" / "November 28" tokens.
	DateTextual DateStyle = iota
	// DateNumeric matches "MM/DD/YY" tokens.
	DateNumeric
)

// Profile describes a bank's statement grammar: how the bank is recognized,
// how its dates look, and which phrases mark summary rows and sections that
// must never become transactions. Profiles are immutable and compiled in.
type Profile struct {
	Name    string
	Markers []string

	DateStyle DateStyle

	// SkipPhrases discard a structurally valid line when any of them occurs
	// in it (uppercase comparison). These are the summary-table rows that
	// mimic transaction shape.
	SkipPhrases []string

	// RejectDescPrefixes discard a line whose description starts with one
	// of these tokens (uppercase comparison).
	RejectDescPrefixes []string

	// StopPhrases end the scan entirely; everything after them is footer.
	StopPhrases []string

	// SectionStart/SectionEnd delimit a region whose lines are skipped
	// (e.g. the installment purchase breakdown).
	SectionStart string
	SectionEnd   string

	// PlaceholderDate assigns the 1st of the statement month to amount
	// lines that carry no date token instead of discarding them.
	PlaceholderDate bool

	// SplitColumns enables the secondary pass that re-pairs merchant and
	// amount blocks listed in separate page columns.
	SplitColumns bool
}

var bpiProfile = Profile{
	Name:      "BPI",
	Markers:   []string{"BPI", "BANK OF THE PHILIPPINE ISLANDS"},
	DateStyle: DateTextual,
	SkipPhrases: []string{
		"PAYMENT -", "FINANCE CHARGE", "PREVIOUS BALANCE",
		"PAST DUE", "ENDING BALANCE", "UNBILLED",
		"TOTAL", "TRANSACTION", "POST DATE",
		"PURCHASE AMOUNT", "REMAINING", "LAST PAYMENT",
	},
	StopPhrases: []string{
		"INSTALLMENT BALANCE SUMMARY", "PAYMENT INSTRUCTIONS",
		"CONTACT US", "KEEP US UPDATED", "BANK OF THE PHILIPPINE ISLANDS",
	},
	SectionStart:    "Installment Purchase:",
	SectionEnd:      "Installment Amortization:",
	PlaceholderDate: true,
	SplitColumns:    true,
}

var unionBankProfile = Profile{
	Name:      "UnionBank",
	Markers:   []string{"UNIONBANK", "UNION BANK"},
	DateStyle: DateNumeric,
	SkipPhrases: []string{
		"BALANCE", "SUBTOTAL", "TOTAL", "AMOUNT DUE",
		"CREDIT LIMIT", "AVAILABLE", "POINTS", "STATEMENT DATE",
		"FINANCE CHARGE", "REWARDS VISA PLATINUM", "CARD NO",
		"MINIMUM AMOUNT DUE", "PREVIOUS BALANCE", "ENDING BALANCE",
	},
	RejectDescPrefixes: []string{"STATEMENT", "PAGE", "TRANSACTION"},
}

var genericSkipPhrases = []string{
	"PAYMENT", "BALANCE", "SUBTOTAL", "TOTAL", "AMOUNT DUE",
	"CREDIT LIMIT", "AVAILABLE", "POINTS", "STATEMENT DATE",
	"FINANCE CHARGE", "DATE POST", "DESCRIPTION AMOUNT",
	"MINIMUM AMOUNT DUE", "PREVIOUS BALANCE", "ENDING BALANCE",
	"POST DATE TRANSACTION", "CARD NO", "INTEREST RATE",
	"STATEMENT SUMMARY", "OVERLIMIT", "DEBITS CREDITS",
}

func profileFor(bank string) Profile {
	switch bank {
	case unionBankProfile.Name:
		return unionBankProfile
	default:
		return bpiProfile
	}
}
