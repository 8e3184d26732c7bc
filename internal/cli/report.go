package cli

import (
	"github.com/spf13/cobra"

	"github.com/cloudbench/gcsbench/internal/logging"
)

var reportOpts struct {
	resultsDir string
	reportPath string
}

// reportCmd rebuilds the consolidated report from result files that
// already exist, without running any benchmarks.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate existing result files into the consolidated report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cfg := getConfig()

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return err
		}
		defer func() { _ = logging.Close() }()

		resultsDir := reportOpts.resultsDir
		if resultsDir == "" {
			resultsDir = cfg.ResultsDirPath()
		}
		reportPath := reportOpts.reportPath
		if reportPath == "" {
			reportPath = cfg.ReportFilePath()
		}
		return buildReport(resultsDir, reportPath)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportOpts.resultsDir, "results-dir", "", "directory holding runner result files")
	reportCmd.Flags().StringVar(&reportOpts.reportPath, "report", "", "destination path for the consolidated report")
}
