// Package common provides shared helpers used by the extraction and
// review surfaces.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mreyes/kuenta/internal/logging"
	"mreyes/kuenta/internal/models"

	"github.com/gocarina/gocsv"
)

var log = logging.GetLogger()

// Delimiter is the CSV output delimiter, configurable via SetDelimiter.
var Delimiter rune = ','

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetLogger replaces the package logger with a configured one.
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// WriteCandidatesCSV writes extracted candidate transactions to w with the
// configured delimiter. Amounts are fixed to two decimal places.
func WriteCandidatesCSV(candidates []models.CandidateTransaction, w io.Writer) error {
	if candidates == nil {
		return fmt.Errorf("cannot write nil candidates to CSV")
	}

	rows := make([]models.CandidateTransaction, len(candidates))
	copy(rows, candidates)
	for i := range rows {
		rows[i].Amount = rows[i].Amount.Round(2)
	}

	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		writer := csv.NewWriter(out)
		writer.Comma = Delimiter
		return gocsv.NewSafeCSVWriter(writer)
	})

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}
	return nil
}

// WriteCandidatesCSVFile writes extracted candidate transactions to a CSV
// file, creating parent directories as needed.
func WriteCandidatesCSVFile(candidates []models.CandidateTransaction, csvFile string) error {
	log.WithFields(
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(candidates)},
	).Info("Writing candidate transactions to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	return WriteCandidatesCSV(candidates, file)
}
