// Package root contains the root command for the application
package root

import (
	"fmt"

	"mreyes/kuenta/internal/common"
	"mreyes/kuenta/internal/config"
	"mreyes/kuenta/internal/container"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags shared by multiple commands
type CommonFlags struct {
	Input  string
	Output string
	Bank   string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// App is the dependency container, wired before any command runs
	App *container.Container

	// SharedFlags holds flag values common to all commands
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "kuenta",
		Short: "A CLI tool to extract, categorize and learn from bank statements.",
		Long: `kuenta extracts transactions from Philippine bank statement PDFs and
screenshots, suggests spending categories for them, and learns merchant
rules from your categorization history.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to kuenta!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.InitializeConfig()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			Log = config.ConfigureLoggingFromConfig(cfg)

			App, err = container.NewContainer(cfg)
			if err != nil {
				return err
			}
			common.SetLogger(App.GetLogger())
			common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if App == nil {
				return
			}
			if err := App.Close(); err != nil {
				Log.Warnf("Failed to close store: %v", err)
			}
		},
	}
)

// Init initializes the root command and all persistent flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output CSV file (default: stdout)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Bank, "bank", "b", "", "Bank parser to use: bpi, unionbank, generic (default: auto-detect)")
}
