// Package cmd wires the stratum CLI together.
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/stratum/internal/log"
)

var (
	projectDirFlag string
	logLevelFlag   string
	logFormatFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "stratum",
	Short: "Validation gates for staged development workflows",
	Long: `stratum is a lightweight validation-gate layer for a staged development
workflow. It parses a declarative task graph, schedules work in dependency
order, runs layered make-target gates, and surfaces cached gate results to
an interactive session through stdin/stdout hooks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config := log.DefaultConfig()
		config.Level = log.ParseLevel(logLevelFlag)
		if logFormatFlag == "text" {
			config.Format = log.FormatText
		}
		log.SetDefaultLogger(log.New(config))
	},
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// projectDir resolves the project root once per invocation: the
// --project-dir flag wins, then STRATUM_PROJECT_DIR, then the working
// directory. Nothing below the cmd layer reads flags or environment.
func projectDir() string {
	if projectDirFlag != "" {
		return projectDirFlag
	}
	if dir := os.Getenv("STRATUM_PROJECT_DIR"); dir != "" {
		return dir
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDirFlag, "project-dir", "", "project root (default: $STRATUM_PROJECT_DIR or current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "json", "log format (json, text)")
}
