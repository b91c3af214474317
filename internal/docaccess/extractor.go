package docaccess

import (
	"os"

	"mreyes/kuenta/internal/parsererror"

	"github.com/dslipak/pdf"
)

// TextExtractor pulls the embedded text layer out of a PDF, one string per
// page in natural document order, and probes for password protection.
// Implementations do not handle passwords; the Accessor decrypts first.
type TextExtractor interface {
	ExtractPages(path string) ([]string, error)
	IsEncrypted(path string) (bool, error)
}

// PDFTextExtractor is the production TextExtractor.
type PDFTextExtractor struct{}

// NewPDFTextExtractor returns a TextExtractor backed by the pdf library.
func NewPDFTextExtractor() *PDFTextExtractor {
	return &PDFTextExtractor{}
}

// ExtractPages reads the text layer of every page. Pages whose content
// cannot be decoded contribute an empty string rather than failing the
// whole document; garble detection downstream decides what to do with
// sparse output.
func (e *PDFTextExtractor) ExtractPages(path string) ([]string, error) {
	reader, err := pdf.Open(path)
	if err != nil {
		return nil, &parsererror.ExtractionError{File: path, Stage: "open", Err: err}
	}

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// IsEncrypted probes the document with an empty password. The reader
// reports an invalid password only for documents that actually require one.
func (e *PDFTextExtractor) IsEncrypted(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, err
	}

	_, err = pdf.NewReaderEncrypted(f, info.Size(), func() string { return "" })
	if err == pdf.ErrInvalidPassword {
		return true, nil
	}
	if err != nil {
		return false, &parsererror.ExtractionError{File: path, Stage: "open", Err: err}
	}
	return false, nil
}

// MockTextExtractor is a test double returning canned pages.
type MockTextExtractor struct {
	Pages     []string
	Err       error
	Encrypted bool
	Calls     []string
}

// ExtractPages records the requested path and returns the canned result.
func (m *MockTextExtractor) ExtractPages(path string) ([]string, error) {
	m.Calls = append(m.Calls, path)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Pages, nil
}

// IsEncrypted returns the canned encryption flag.
func (m *MockTextExtractor) IsEncrypted(path string) (bool, error) {
	return m.Encrypted, nil
}
