// Package docaccess turns bank statement PDFs into raw text, dealing with
// the obstacles real statements put up: password protection, garbled or
// missing text layers, and image-only scans that need OCR.
package docaccess

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"mreyes/kuenta/internal/logging"
	"mreyes/kuenta/internal/ocr"
	"mreyes/kuenta/internal/parsererror"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// minAlnumRatio is the smallest fraction of letters and digits a text
// layer may contain before it is treated as garbled font soup.
const minAlnumRatio = 0.30

// Accessor extracts statement text from PDFs. A nil OCR extractor means
// garbled documents fail with ErrUnreadableDocument instead of falling
// back to OCR.
type Accessor struct {
	extractor TextExtractor
	ocr       *ocr.Extractor
	logger    logging.Logger
}

// NewAccessor builds an Accessor. extractor must not be nil; ocrExtractor
// may be.
func NewAccessor(extractor TextExtractor, ocrExtractor *ocr.Extractor, logger logging.Logger) *Accessor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Accessor{
		extractor: extractor,
		ocr:       ocrExtractor,
		logger:    logger,
	}
}

// Unlock decrypts path into a temporary file and returns the decrypted
// path together with a cleanup func the caller must run when done with it.
// A wrong password surfaces as ErrIncorrectPassword.
func (a *Accessor) Unlock(path, password string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "kuenta-unlocked-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", nil, fmt.Errorf("closing temp file: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	if err := api.DecryptFile(path, tmpPath, conf); err != nil {
		os.Remove(tmpPath)
		return "", nil, fmt.Errorf("%w: %v", parsererror.ErrIncorrectPassword, err)
	}

	cleanup := func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			a.logger.WithError(err).WithField("path", tmpPath).Warn("Failed to remove decrypted temp file")
		}
	}
	return tmpPath, cleanup, nil
}

// ExtractText returns the statement text of the PDF at path. Pages come
// back in reverse document order, newest transactions first the way the
// parsers expect them. Password-protected documents require password to be
// set; a missing one yields ErrPasswordRequired. When the embedded text
// layer is garbled and OCR is available, the result is OCR output instead.
func (a *Accessor) ExtractText(path, password string) (string, error) {
	workPath := path

	if password != "" {
		unlocked, cleanup, err := a.Unlock(path, password)
		if err != nil {
			return "", err
		}
		defer cleanup()
		workPath = unlocked
	} else {
		encrypted, err := a.extractor.IsEncrypted(path)
		if err != nil {
			return "", err
		}
		if encrypted {
			return "", parsererror.ErrPasswordRequired
		}
	}

	pages, err := a.extractor.ExtractPages(workPath)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := len(pages) - 1; i >= 0; i-- {
		if strings.TrimSpace(pages[i]) == "" {
			continue
		}
		sb.WriteString(pages[i])
		sb.WriteString("\n")
	}
	text := sb.String()

	if !isGarbled(text) {
		return text, nil
	}

	if a.ocr == nil {
		a.logger.WithField("file", path).Warn("Text layer unreadable and OCR is disabled")
		return "", parsererror.ErrUnreadableDocument
	}

	a.logger.WithField("file", path).Info("Text layer unreadable, falling back to OCR")
	return a.ocr.ExtractPDF(workPath)
}

// isGarbled reports whether extracted text is unusable for parsing: empty,
// containing raw glyph references from a broken font map, or mostly
// non-alphanumeric noise.
func isGarbled(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	if strings.Contains(trimmed, "(cid:") {
		return true
	}

	var alnum, total int
	for _, r := range trimmed {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum++
		}
	}
	return float64(alnum)/float64(total) < minAlnumRatio
}
