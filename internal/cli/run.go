package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cloudbench/gcsbench/internal/logging"
	"github.com/cloudbench/gcsbench/internal/results"
	"github.com/cloudbench/gcsbench/internal/runner"
	"github.com/cloudbench/gcsbench/internal/scenario"
	"github.com/cloudbench/gcsbench/internal/summary"
	"github.com/cloudbench/gcsbench/internal/toolcheck"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark scenario against the configured buckets and build the report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		if err := cfg.Validate(); err != nil {
			// Configuration errors get the usage text.
			return err
		}
		cmd.SilenceUsage = true

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return err
		}
		defer func() { _ = logging.Close() }()

		runnerTool, _ := cfg.RunnerCommandLine()
		tool := toolcheck.Tool{
			Name:        runnerTool,
			VersionArgs: []string{"--version"},
		}
		installer := toolcheck.CommandInstaller{Argv: []string{"pip", "install"}}
		if err := toolcheck.Ensure(cmd.Context(), tool, installer); err != nil {
			return err
		}

		catalog, err := scenario.LoadCatalog(cfg.ScenarioFilePath())
		if err != nil {
			return err
		}
		scen, err := catalog.Lookup(cfg.Scenario)
		if err != nil {
			return err
		}
		scen = scen.WithFileSizes(cfg.FileSizesMB)

		if _, err := runner.New(*cfg, scen).Run(cmd.Context()); err != nil {
			return err
		}

		return buildReport(cfg.ResultsDirPath(), cfg.ReportFilePath())
	},
}

// buildReport aggregates whatever result documents are present and
// writes the consolidated report. Zero result files is a soft skip,
// not a failure: the overall run still succeeds.
func buildReport(resultsDir, reportPath string) error {
	paths, err := results.Discover(resultsDir)
	if err != nil {
		return err
	}

	docs, err := results.LoadDocuments(paths)
	if errors.Is(err, results.ErrNoResults) {
		logging.Eventf("no result files found in %s, skipping report", resultsDir)
		return nil
	}
	if err != nil {
		return err
	}

	rows, err := summary.Aggregate(docs)
	if err != nil {
		return err
	}
	return summary.WriteReport(reportPath, rows)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("regional-bucket", "", "name of the regional bucket to benchmark")
	runCmd.Flags().String("hns-bucket", "", "name of the HNS bucket to benchmark")
	runCmd.Flags().String("zonal-bucket", "", "name of the zonal bucket to benchmark")
	runCmd.Flags().StringP("project", "p", "", "cloud project owning the buckets")
	runCmd.Flags().StringP("scenario", "s", "", "scenario name from the catalog")
	runCmd.Flags().String("scenario-file", "", "path to the scenario catalog")
	runCmd.Flags().String("results-dir", "", "directory for runner result files")
	runCmd.Flags().String("report", "", "destination path for the consolidated report")
	runCmd.Flags().IntSlice("file-sizes", nil, "file sizes in MB overriding the scenario's (e.g. --file-sizes 128,1024)")

	_ = viper.BindPFlag("regionalBucket", runCmd.Flags().Lookup("regional-bucket"))
	_ = viper.BindPFlag("hnsBucket", runCmd.Flags().Lookup("hns-bucket"))
	_ = viper.BindPFlag("zonalBucket", runCmd.Flags().Lookup("zonal-bucket"))
	_ = viper.BindPFlag("project", runCmd.Flags().Lookup("project"))
	_ = viper.BindPFlag("scenario", runCmd.Flags().Lookup("scenario"))
	_ = viper.BindPFlag("scenarioFile", runCmd.Flags().Lookup("scenario-file"))
	_ = viper.BindPFlag("resultsDir", runCmd.Flags().Lookup("results-dir"))
	_ = viper.BindPFlag("report", runCmd.Flags().Lookup("report"))
	_ = viper.BindPFlag("fileSizes", runCmd.Flags().Lookup("file-sizes"))
}
