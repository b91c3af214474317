// Package similar handles description similarity commands
package similar

import (
	"fmt"

	"mreyes/kuenta/cmd/root"

	"github.com/spf13/cobra"
)

var (
	query        string
	threshold    float64
	excludeID    int64
	recategorize string
)

// Cmd represents the similar command
var Cmd = &cobra.Command{
	Use:   "similar",
	Short: "Find transactions with similar descriptions",
	Long: `Find persisted transactions whose descriptions resemble a query,
or recategorize all of them at once.`,
	RunE: similarFunc,
}

func init() {
	Cmd.Flags().StringVarP(&query, "query", "q", "", "Description to match against")
	Cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "Similarity threshold in [0,1] (default from configuration)")
	Cmd.Flags().Int64Var(&excludeID, "exclude-id", 0, "Transaction ID to leave out of the results")
	Cmd.Flags().StringVarP(&recategorize, "recategorize", "r", "", "Assign this category to every match")
	_ = Cmd.MarkFlagRequired("query")
}

func similarFunc(cmd *cobra.Command, args []string) error {
	matcher := root.App.GetMatcher()
	if threshold <= 0 {
		threshold = root.App.GetConfig().Similarity.Threshold
	}

	if recategorize != "" {
		category, err := root.App.GetCategorizer().GetOrCreateCategory(recategorize)
		if err != nil {
			return err
		}
		updated, err := matcher.BulkRecategorize(query, category, threshold)
		if err != nil {
			return err
		}
		root.Log.Infof("Recategorized %d transactions as %s", updated, category)
		return nil
	}

	matches, err := matcher.FindSimilar(query, excludeID, threshold)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		root.Log.Infof("No transactions similar to %q at threshold %.2f", query, threshold)
		return nil
	}
	for _, m := range matches {
		fmt.Printf("%.2f  %-10s %-40s %-20s %s\n",
			m.Score, m.Date, m.Description, m.Category, m.Amount.StringFixed(2))
	}
	return nil
}
