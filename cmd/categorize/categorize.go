// Package categorize handles transaction categorization commands
package categorize

import (
	"errors"
	"fmt"

	"mreyes/kuenta/cmd/root"

	"github.com/spf13/cobra"
)

var (
	description string
	threshold   float64
	auto        bool
	breakdown   bool
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Suggest or auto-assign a category for a transaction description",
	Long: `Suggest a spending category for a transaction description using
learned merchant mappings, keyword rules and fuzzy matching.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "s", "", "Transaction description to categorize")
	Cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "Confidence threshold for auto mode (default from configuration)")
	Cmd.Flags().BoolVarP(&auto, "auto", "a", false, "Only assign when confident; mapping hits always assign")
	Cmd.Flags().BoolVar(&breakdown, "breakdown", false, "Show keyword scores for every category")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	if description == "" {
		return errors.New("description is required")
	}

	cat := root.App.GetCategorizer()
	if threshold <= 0 {
		threshold = root.App.GetConfig().Categorization.ConfidenceThreshold
	}

	if breakdown {
		for _, score := range cat.ConfidenceBreakdown(description) {
			fmt.Printf("%-20s %.0f\n", score.Category, score.Score)
		}
		return nil
	}

	if auto {
		category, ok := cat.AutoCategorize(description, threshold)
		if !ok {
			root.Log.Infof("Not confident enough to categorize %q (threshold %.0f)", description, threshold)
			return nil
		}
		root.Log.Infof("Category: %s", category)
		return nil
	}

	category, confidence := cat.SuggestCategory(description, nil)
	root.Log.Infof("Category: %s (confidence %.0f)", category, confidence)
	return nil
}
