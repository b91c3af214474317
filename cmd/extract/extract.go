// Package extract handles statement extraction commands
package extract

import (
	"errors"
	"os"

	"mreyes/kuenta/cmd/root"
	"mreyes/kuenta/internal/common"
	"mreyes/kuenta/internal/models"
	"mreyes/kuenta/internal/parsererror"

	"github.com/spf13/cobra"
)

var (
	password     string
	isImage      bool
	noCategorize bool
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract transactions from a statement PDF or screenshot",
	Long: `Extract candidate transactions from a bank statement PDF (optionally
password-protected) or from a statement screenshot, categorize them, and
write them as CSV.`,
	RunE: extractFunc,
}

func init() {
	Cmd.Flags().StringVarP(&password, "password", "p", "", "Password for protected PDFs")
	Cmd.Flags().BoolVar(&isImage, "image", false, "Treat the input as a statement screenshot")
	Cmd.Flags().BoolVar(&noCategorize, "no-categorize", false, "Skip automatic categorization")
}

func extractFunc(cmd *cobra.Command, args []string) error {
	if root.SharedFlags.Input == "" {
		return errors.New("input file is required (use --input)")
	}

	service := root.App.GetService()
	cfg := root.App.GetConfig()

	var candidates []models.CandidateTransaction
	var err error
	if isImage {
		candidates, err = service.ExtractImage(root.SharedFlags.Input, root.SharedFlags.Bank)
	} else {
		candidates, err = service.ExtractFile(root.SharedFlags.Input, password, root.SharedFlags.Bank)
	}
	if err != nil {
		if errors.Is(err, parsererror.ErrPasswordRequired) {
			return errors.New("this PDF is password-protected, rerun with --password")
		}
		return err
	}

	if !noCategorize {
		candidates = service.CategorizeCandidates(candidates, cfg.Categorization.ConfidenceThreshold)
	}

	root.Log.Infof("Extracted %d transactions from %s", len(candidates), root.SharedFlags.Input)

	if root.SharedFlags.Output != "" {
		return common.WriteCandidatesCSVFile(candidates, root.SharedFlags.Output)
	}
	return common.WriteCandidatesCSV(candidates, os.Stdout)
}
