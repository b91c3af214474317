// Package mappings handles merchant mapping management commands
package mappings

import (
	"errors"
	"fmt"
	"strings"

	"mreyes/kuenta/cmd/root"

	"github.com/spf13/cobra"
)

var (
	pattern  string
	category string
)

// Cmd represents the mappings command
var Cmd = &cobra.Command{
	Use:   "mappings",
	Short: "Manage merchant mapping rules",
	Long: `List, add or delete the merchant pattern to category rules used for
automatic categorization.`,
	RunE: listFunc,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or update a merchant mapping",
	RunE:  addFunc,
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a merchant mapping",
	RunE:  deleteFunc,
}

func init() {
	addCmd.Flags().StringVarP(&pattern, "pattern", "m", "", "Merchant pattern (stored uppercased)")
	addCmd.Flags().StringVarP(&category, "category", "c", "", "Category to assign")
	_ = addCmd.MarkFlagRequired("pattern")
	_ = addCmd.MarkFlagRequired("category")

	deleteCmd.Flags().StringVarP(&pattern, "pattern", "m", "", "Merchant pattern to delete")
	_ = deleteCmd.MarkFlagRequired("pattern")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(deleteCmd)
}

func listFunc(cmd *cobra.Command, args []string) error {
	mappings, err := root.App.GetStore().Mappings()
	if err != nil {
		return err
	}
	if len(mappings) == 0 {
		root.Log.Info("No merchant mappings yet; try 'kuenta learn'")
		return nil
	}
	for _, m := range mappings {
		fmt.Printf("%-40s -> %s\n", m.Pattern, m.Category)
	}
	return nil
}

func addFunc(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(pattern) == "" {
		return errors.New("pattern must not be blank")
	}
	canonical, err := root.App.GetCategorizer().GetOrCreateCategory(category)
	if err != nil {
		return err
	}
	if err := root.App.GetStore().UpsertMapping(pattern, canonical); err != nil {
		return err
	}
	root.Log.Infof("Mapped %s to %s", strings.ToUpper(pattern), canonical)
	return nil
}

func deleteFunc(cmd *cobra.Command, args []string) error {
	deleted, err := root.App.GetStore().DeleteMapping(pattern)
	if err != nil {
		return err
	}
	if !deleted {
		root.Log.Warnf("No mapping found for %s", strings.ToUpper(pattern))
		return nil
	}
	root.Log.Infof("Deleted mapping %s", strings.ToUpper(pattern))
	return nil
}
