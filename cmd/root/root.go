// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/sales-analytics/cmd/analyze"
	"fjacquet/sales-analytics/cmd/catalogcmd"
	"fjacquet/sales-analytics/internal/config"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "sales-analytics",
		Short: "A CLI tool to analyze pipe-delimited sales data and enrich it with catalog metadata.",
		Long: `sales-analytics ingests a pipe-delimited sales transaction file, validates
and filters the records, computes descriptive analytics, enriches each
transaction with product metadata from a remote catalog, and writes both an
enriched dataset and a formatted text report.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to sales-analytics!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()
		},
	}
)

func init() {
	Cmd.AddCommand(analyze.Cmd)
	Cmd.AddCommand(catalogcmd.Cmd)
}

// Execute runs the root command.
func Execute() error {
	return Cmd.Execute()
}
