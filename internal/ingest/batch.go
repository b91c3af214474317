package ingest

import (
	"context"
	"sort"
	"sync"

	"mreyes/kuenta/internal/logging"
	"mreyes/kuenta/internal/models"
)

// FileResult is the outcome of extracting one file in a batch. Err is set
// when that file failed; other files in the batch are unaffected.
type FileResult struct {
	Path       string
	Candidates []models.CandidateTransaction
	Err        error
}

// ProcessBatch extracts every file through a bounded worker pool. Results
// come back sorted by path. Extraction within a single document stays
// sequential; only files run in parallel. Cancelling ctx stops handing
// out new files, but in-flight extractions finish.
func (s *Service) ProcessBatch(ctx context.Context, files []string, password, bank string, workers int) []FileResult {
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	fileChan := make(chan string)
	resultChan := make(chan FileResult, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range fileChan {
				candidates, err := s.ExtractFile(path, password, bank)
				if err != nil {
					s.logger.WithError(err).WithField("file", path).Error("Extraction failed")
				}
				select {
				case resultChan <- FileResult{Path: path, Candidates: candidates, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(fileChan)
		for _, path := range files {
			select {
			case fileChan <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]FileResult, 0, len(files))
	for result := range resultChan {
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	s.logger.WithFields(
		logging.Field{Key: "files", Value: len(files)},
		logging.Field{Key: "workers", Value: workers},
	).Debug("Batch extraction completed")
	return results
}
