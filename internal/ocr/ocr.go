// Package ocr rasterizes PDF pages and extracts text from them (or from
// uploaded screenshots) through Tesseract. It is both the fallback for
// garbled PDF text layers and the primary path for image uploads.
package ocr

import (
	"fmt"
	"strings"

	"mreyes/kuenta/internal/logging"
	"mreyes/kuenta/internal/parsererror"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

const (
	// DefaultDPI is the raster resolution for PDF pages.
	DefaultDPI = 300
	// DefaultStopMarker is the cover-page heading that, once encountered
	// while scanning pages in reverse, bounds the OCR cost: everything
	// before it is account summary, not transactions.
	DefaultStopMarker = "Statement of Accounts"
	// DefaultLanguage is the Tesseract language model.
	DefaultLanguage = "eng"
)

// Extractor performs OCR over PDF pages and standalone images. Pages are
// rasterized in memory; no intermediate image files touch the disk.
type Extractor struct {
	DPI        float64
	StopMarker string
	Language   string
	logger     logging.Logger
}

// New returns an Extractor with the default DPI, stop marker and language.
func New(logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Extractor{
		DPI:        DefaultDPI,
		StopMarker: DefaultStopMarker,
		Language:   DefaultLanguage,
		logger:     logger,
	}
}

func (e *Extractor) newClient() *gosseract.Client {
	client := gosseract.NewClient()
	if e.Language != "" {
		_ = client.SetLanguage(e.Language)
	}
	// Statements read as a single uniform block of text, one candidate
	// line per visual row.
	_ = client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK)
	return client
}

// ExtractPDF rasterizes the document's pages at the configured DPI and runs
// OCR over them in reverse order (transactions sit near the end). Scanning
// stops early once a page's output contains the stop marker; pages read
// before that are concatenated in reverse order.
func (e *Extractor) ExtractPDF(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", &parsererror.ExtractionError{File: path, Stage: "rasterization", Err: err}
	}
	defer func() {
		if err := doc.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close document")
		}
	}()

	client := e.newClient()
	defer func() {
		if err := client.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close OCR client")
		}
	}()

	marker := strings.ToLower(e.StopMarker)
	var sb strings.Builder
	pagesProcessed := 0

	for page := doc.NumPage() - 1; page >= 0; page-- {
		img, err := doc.ImagePNG(page, e.DPI)
		if err != nil {
			return "", &parsererror.ExtractionError{File: path, Stage: "rasterization", Err: err}
		}
		if err := client.SetImageFromBytes(img); err != nil {
			return "", &parsererror.ExtractionError{File: path, Stage: "ocr", Err: err}
		}
		pageText, err := client.Text()
		if err != nil {
			return "", &parsererror.ExtractionError{File: path, Stage: "ocr", Err: err}
		}

		if marker != "" && strings.Contains(strings.ToLower(pageText), marker) {
			e.logger.WithFields(
				logging.Field{Key: "page", Value: page + 1},
				logging.Field{Key: "marker", Value: e.StopMarker},
			).Debug("OCR stopped at marker page")
			break
		}

		if strings.TrimSpace(pageText) != "" {
			fmt.Fprintf(&sb, "\n=== PAGE %d ===\n%s\n", page+1, pageText)
			pagesProcessed++
		}
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", parsererror.ErrUnreadableDocument
	}

	e.logger.WithField("pages", pagesProcessed).Info("OCR extraction finished")
	return text, nil
}

// ExtractImage runs OCR over a single uploaded image (statement screenshot).
func (e *Extractor) ExtractImage(data []byte) (string, error) {
	client := e.newClient()
	defer func() {
		if err := client.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close OCR client")
		}
	}()

	if err := client.SetImageFromBytes(data); err != nil {
		return "", &parsererror.ExtractionError{File: "image", Stage: "ocr", Err: err}
	}
	text, err := client.Text()
	if err != nil {
		return "", &parsererror.ExtractionError{File: "image", Stage: "ocr", Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", parsererror.ErrUnreadableDocument
	}
	return text, nil
}
