// Package batch handles directory-level statement extraction
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mreyes/kuenta/cmd/root"
	"mreyes/kuenta/internal/common"

	"github.com/spf13/cobra"
)

var (
	inputDir  string
	outputDir string
	password  string
	workers   int
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract transactions from every statement PDF in a directory",
	Long: `Extract candidate transactions from all PDF files in a directory
through a bounded worker pool, writing one CSV per statement.`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input-dir", "d", "", "Directory containing statement PDFs")
	Cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for CSV output (default: input directory)")
	Cmd.Flags().StringVarP(&password, "password", "p", "", "Password applied to every protected PDF")
	Cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Worker count (default from configuration)")
	_ = Cmd.MarkFlagRequired("input-dir")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("reading input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, filepath.Join(inputDir, entry.Name()))
		}
	}
	if len(files) == 0 {
		return errors.New("no PDF files found in input directory")
	}

	cfg := root.App.GetConfig()
	if workers <= 0 {
		workers = cfg.Batch.Workers
	}
	outDir := outputDir
	if outDir == "" {
		outDir = inputDir
	}

	service := root.App.GetService()
	results := service.ProcessBatch(context.Background(), files, password, root.SharedFlags.Bank, workers)

	succeeded, failed := 0, 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			root.Log.Errorf("%s: %v", result.Path, result.Err)
			continue
		}

		candidates := service.CategorizeCandidates(result.Candidates, cfg.Categorization.ConfidenceThreshold)
		base := strings.TrimSuffix(filepath.Base(result.Path), filepath.Ext(result.Path))
		csvPath := filepath.Join(outDir, base+".csv")
		if err := common.WriteCandidatesCSVFile(candidates, csvPath); err != nil {
			failed++
			root.Log.Errorf("%s: %v", result.Path, err)
			continue
		}
		succeeded++
	}

	root.Log.Infof("Batch finished: %d succeeded, %d failed", succeeded, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}
