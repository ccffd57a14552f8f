// Package cli defines the callclassifier command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"callclassifier/internal/app"

	"github.com/spf13/cobra"
)

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "callclassifier",
		Short: "Classify customer service call transcripts",
		Long: `callclassifier scores customer call transcripts against a fixed set of
departments, estimates sentiment, urgency and duration, pulls out the services,
issues and requests the customer mentioned, and prints a routing report.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				return os.Setenv("CONFIG_PATH", cfgFile)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or $CONFIG_PATH)")

	rootCmd.AddCommand(
		newClassifyCmd(),
		newBatchCmd(),
		newSamplesCmd(),
		newHistoryCmd(),
		newInboxCmd(),
	)
	return rootCmd
}

// readInput reads the transcript from the named file, or from stdin when the
// argument is missing or "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

func loadApp() (*app.App, error) {
	return app.New()
}
