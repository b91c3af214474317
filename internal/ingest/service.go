// Package ingest orchestrates the extraction pipeline: document access,
// bank detection, line parsing and candidate categorization.
package ingest

import (
	"errors"
	"os"

	"mreyes/kuenta/internal/bankparser"
	"mreyes/kuenta/internal/categorizer"
	"mreyes/kuenta/internal/docaccess"
	"mreyes/kuenta/internal/logging"
	"mreyes/kuenta/internal/models"
	"mreyes/kuenta/internal/ocr"
	"mreyes/kuenta/internal/parsererror"
)

// Service runs statements end to end, from PDF or image to categorized
// candidate transactions.
type Service struct {
	accessor    *docaccess.Accessor
	ocr         *ocr.Extractor
	categorizer *categorizer.Categorizer
	logger      logging.Logger
}

// NewService builds a Service. ocrExtractor may be nil when OCR is
// disabled; image extraction then fails with ErrOCRUnavailable.
func NewService(accessor *docaccess.Accessor, ocrExtractor *ocr.Extractor, cat *categorizer.Categorizer, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Service{
		accessor:    accessor,
		ocr:         ocrExtractor,
		categorizer: cat,
		logger:      logger,
	}
}

// ExtractFile extracts candidate transactions from the statement PDF at
// path. password unlocks protected documents; bank forces a parser and
// may be empty for auto-detection.
func (s *Service) ExtractFile(path, password, bank string) ([]models.CandidateTransaction, error) {
	text, err := s.accessor.ExtractText(path, password)
	if err != nil {
		return nil, err
	}
	return s.parseText(text, bank, false)
}

// ExtractImage OCRs a statement screenshot at path and parses the result.
func (s *Service) ExtractImage(path, bank string) ([]models.CandidateTransaction, error) {
	if s.ocr == nil {
		return nil, parsererror.ErrOCRUnavailable
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := s.ocr.ExtractImage(data)
	if err != nil {
		return nil, err
	}
	return s.parseText(text, bank, true)
}

// parseText picks a parser for text and runs it. When the chosen parser
// finds nothing, the generic fallback gets one attempt before giving up.
func (s *Service) parseText(text, bank string, fromImage bool) ([]models.CandidateTransaction, error) {
	var parser bankparser.StatementParser
	var err error

	switch {
	case bank != "" && bank != "auto":
		parser, err = bankparser.ForBank(bank, s.logger)
		if err != nil {
			return nil, err
		}
	case fromImage:
		parser = bankparser.GuessImageParser(text, s.logger)
	default:
		if parser = bankparser.Detect(text, s.logger); parser == nil {
			s.logger.Info("No bank markers found, using generic parser")
			parser = bankparser.NewGenericParser(s.logger)
		}
	}

	s.logger.WithField("bank", parser.Bank()).Debug("Parsing statement text")

	candidates, err := parser.Parse(text)
	if err == nil {
		return candidates, nil
	}
	if !errors.Is(err, parsererror.ErrNoTransactionsFound) {
		return nil, &parsererror.ParseError{Bank: parser.Bank(), Err: err}
	}
	if parser.Bank() == "Generic" {
		return nil, err
	}

	s.logger.WithField("bank", parser.Bank()).Info("No transactions found, trying generic parser")
	fallback := bankparser.NewGenericParser(s.logger)
	candidates, err = fallback.Parse(text)
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// CategorizeCandidates fills in the Category of each candidate whose
// category is still empty, using one auto-categorization pass per unique
// description. Candidates the engine is not confident about come back as
// Uncategorized.
func (s *Service) CategorizeCandidates(candidates []models.CandidateTransaction, threshold float64) []models.CandidateTransaction {
	unique := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if c.Category != "" {
			continue
		}
		if _, ok := seen[c.Description]; ok {
			continue
		}
		seen[c.Description] = struct{}{}
		unique = append(unique, c.Description)
	}

	assigned := s.categorizer.BatchAutoCategorize(unique, threshold)

	out := make([]models.CandidateTransaction, len(candidates))
	copy(out, candidates)
	for i := range out {
		if out[i].Category != "" {
			continue
		}
		if category := assigned[out[i].Description]; category != "" {
			out[i].Category = category
		} else {
			out[i].Category = models.CategoryUncategorized
		}
	}
	return out
}
