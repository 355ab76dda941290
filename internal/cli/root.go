// Package cli implements the csvview command line: inspect a CSV file in the
// terminal with the same sort, filter, pagination and chart controls the web
// view offers.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/csvview/internal/config"
	"github.com/JonMunkholm/csvview/internal/logging"
)

// NewRootCmd builds the csvview command tree.
func NewRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "csvview",
		Short:         "Inspect CSV files: sort, filter, paginate and chart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupWriter(cmd.ErrOrStderr(), logLevel, "text")
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(newInspectCmd(config.Load))
	return root
}
