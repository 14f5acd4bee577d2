package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/stratum/internal/errors"
	"github.com/felixgeelhaar/stratum/internal/gate"
	"github.com/felixgeelhaar/stratum/internal/log"
	"github.com/felixgeelhaar/stratum/internal/report"
)

var reportQuietFlag bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Work with validation reports",
}

var reportGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run all validation layers and write the report",
	Long: `Run the make target of every validation layer, collect optional metrics,
and write .stratum/reports/validation_report.json. The gate-check hook
reads this report on every prompt instead of running targets itself.

Exits non-zero when any layer fails.`,
	RunE: runReportGenerate,
}

func runReportGenerate(cmd *cobra.Command, args []string) error {
	generator := report.NewGenerator(projectDir(), log.DefaultLogger())

	result, err := generator.Generate(cmd.Context())
	if err != nil {
		return err
	}

	if !reportQuietFlag {
		printReportSummary(cmd, result)
	}

	if report.AnyFailed(result) {
		return errors.New(errors.ErrCodeGateRunFailed, "one or more validation layers failed")
	}
	return nil
}

func printReportSummary(cmd *cobra.Command, result *gate.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Validation report generated")
	for _, layer := range gate.Layers {
		layerResult := result.Layers[layer.Name]
		fmt.Fprintf(out, "  Layer %d (%s): %s\n", layer.Num, layer.Name, layerResult.Status)
		if layerResult.Status == gate.StatusFail && layerResult.Message != "" {
			fmt.Fprintf(out, "    %s\n", layerResult.Message)
		}
	}
	if result.Meta.GitHashShort != "" {
		fmt.Fprintf(out, "  Commit: %s\n", result.Meta.GitHashShort)
	}
}

func init() {
	reportGenerateCmd.Flags().BoolVar(&reportQuietFlag, "quiet", false, "suppress the summary, only write the report")
	reportCmd.AddCommand(reportGenerateCmd)
	rootCmd.AddCommand(reportCmd)
}
