// Package parsererror defines the error taxonomy for document access and
// statement parsing. Terminal failures carry a human-readable cause so the
// user can retry with a different password, bank selection or file.
package parsererror

import (
	"errors"
	"fmt"
)

var (
	// ErrPasswordRequired indicates an encrypted document was supplied
	// without a password. No decryption is attempted in this case.
	ErrPasswordRequired = errors.New("document is password-protected, please provide the password")

	// ErrIncorrectPassword indicates decryption was attempted and rejected.
	ErrIncorrectPassword = errors.New("incorrect password")

	// ErrUnreadableDocument indicates no usable text could be obtained from
	// the document, even after OCR fallback (or with OCR unavailable).
	ErrUnreadableDocument = errors.New("no readable text found in document")

	// ErrNoTransactionsFound indicates text was extracted but no candidate
	// transactions survived parsing and filtering.
	ErrNoTransactionsFound = errors.New("could not extract any transactions; the statement format may not be supported yet")

	// ErrOCRUnavailable indicates an operation required OCR but the OCR
	// capability is not configured.
	ErrOCRUnavailable = errors.New("OCR support is not available")
)

// ExtractionError wraps a lower-level failure encountered while unlocking or
// extracting text from a document.
type ExtractionError struct {
	File  string
	Stage string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Stage, e.File, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ParseError reports a statement-level parsing failure for a specific bank
// grammar. Line-level anomalies are skipped silently, never raised.
type ParseError struct {
	Bank string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s statement parsing failed: %v", e.Bank, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
