// Package learn handles merchant learning commands
package learn

import (
	"fmt"

	"mreyes/kuenta/cmd/root"

	"github.com/spf13/cobra"
)

var (
	apply        bool
	stats        bool
	minFrequency int
	confidence   float64
)

// Cmd represents the learn command
var Cmd = &cobra.Command{
	Use:   "learn",
	Short: "Mine merchant mapping suggestions from categorized history",
	Long: `Analyze the transaction history for merchants that keep receiving
the same category and suggest (or apply) merchant mapping rules for them.`,
	RunE: learnFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&apply, "apply", "a", false, "Apply all suggestions as merchant mappings")
	Cmd.Flags().BoolVar(&stats, "stats", false, "Show learning progress statistics")
	Cmd.Flags().IntVar(&minFrequency, "min-frequency", 0, "Minimum merchant recurrence (default from configuration)")
	Cmd.Flags().Float64Var(&confidence, "confidence", 0, "Minimum category dominance in [0,1] (default from configuration)")
}

func learnFunc(cmd *cobra.Command, args []string) error {
	lrn := root.App.GetLearner()
	cfg := root.App.GetConfig()

	if minFrequency <= 0 {
		minFrequency = cfg.Learning.MinFrequency
	}
	if confidence <= 0 {
		confidence = cfg.Learning.ConfidenceThreshold
	}

	if stats {
		s, err := lrn.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("Transactions:         %d\n", s.TotalTransactions)
		fmt.Printf("Categorized:          %d\n", s.Categorized)
		fmt.Printf("Uncategorized:        %d\n", s.Uncategorized)
		fmt.Printf("Merchant mappings:    %d\n", s.MerchantMappings)
		fmt.Printf("Pending suggestions:  %d\n", s.PendingSuggestions)
		fmt.Printf("Covered by mappings:  %d (%.1f%%)\n", s.CoveredByMapping, s.CoveragePercent)
		return nil
	}

	if apply {
		result, err := lrn.AutoApply(minFrequency, confidence)
		if err != nil {
			return err
		}
		root.Log.Infof("Applied %d mappings, %d failed", result.Added, result.Failed)
		return nil
	}

	suggestions, err := lrn.SuggestMappings(minFrequency, confidence)
	if err != nil {
		return err
	}
	if len(suggestions) == 0 {
		root.Log.Info("No mapping suggestions yet; categorize more transactions first")
		return nil
	}
	for _, s := range suggestions {
		fmt.Printf("%-40s -> %-20s (seen %d times, %.0f%% consistent)\n",
			s.Merchant, s.Category, s.Frequency, s.Confidence*100)
	}
	return nil
}
