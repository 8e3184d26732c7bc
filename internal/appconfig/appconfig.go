// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudbench/gcsbench/internal/results"
)

const (
	// DefaultScenarioFile is the default path to the scenario catalog.
	DefaultScenarioFile = "config/scenarios.yaml"
	// DefaultResultsDir is where runner output files land.
	DefaultResultsDir = "results"
	// defaultReportName is the report filename inside the results dir.
	defaultReportName = "consolidated_report.txt"
	// defaultSampleInterval is the resource sampler polling interval.
	defaultSampleInterval = 1 * time.Second
)

// Config represents the merged application configuration
// (flags > config file > defaults).
type Config struct {
	RegionalBucket string `mapstructure:"regionalBucket"`
	HNSBucket      string `mapstructure:"hnsBucket"`
	ZonalBucket    string `mapstructure:"zonalBucket"`
	Project        string `mapstructure:"project"`

	Scenario     string `mapstructure:"scenario"`
	ScenarioFile string `mapstructure:"scenarioFile"`
	FileSizesMB  []int  `mapstructure:"fileSizes"`

	ResultsDir string `mapstructure:"resultsDir"`
	ReportPath string `mapstructure:"report"`

	RunnerCommand         string   `mapstructure:"runnerCommand"`
	RunnerArgs            []string `mapstructure:"runnerArgs"`
	SampleIntervalSeconds int      `mapstructure:"sampleInterval"`

	LogFile string `mapstructure:"logFile"`
	Debug   bool   `mapstructure:"debug"`
}

// BucketRun names one storage target a benchmark run is executed
// against.
type BucketRun struct {
	Type results.BucketType
	Name string
}

// Validate checks the inputs a benchmark run cannot start without.
func (c Config) Validate() error {
	if c.RegionalBucket == "" && c.HNSBucket == "" && c.ZonalBucket == "" {
		return errors.New("at least one of --regional-bucket, --hns-bucket, or --zonal-bucket must be provided")
	}
	if strings.TrimSpace(c.Project) == "" {
		return errors.New("a project must be provided (--project)")
	}
	if strings.TrimSpace(c.Scenario) == "" {
		return errors.New("a scenario must be provided (--scenario)")
	}
	return nil
}

// Buckets returns the configured storage targets in fixed report
// order: regional, hns, zonal.
func (c Config) Buckets() []BucketRun {
	var runs []BucketRun
	if c.RegionalBucket != "" {
		runs = append(runs, BucketRun{Type: results.BucketRegional, Name: c.RegionalBucket})
	}
	if c.HNSBucket != "" {
		runs = append(runs, BucketRun{Type: results.BucketHNS, Name: c.HNSBucket})
	}
	if c.ZonalBucket != "" {
		runs = append(runs, BucketRun{Type: results.BucketZonal, Name: c.ZonalBucket})
	}
	return runs
}

// ScenarioFilePath returns the scenario catalog path, applying the
// default if unset.
func (c Config) ScenarioFilePath() string {
	if strings.TrimSpace(c.ScenarioFile) != "" {
		return c.ScenarioFile
	}
	return DefaultScenarioFile
}

// ResultsDirPath returns the results directory, applying the default
// if unset.
func (c Config) ResultsDirPath() string {
	if strings.TrimSpace(c.ResultsDir) != "" {
		return c.ResultsDir
	}
	return DefaultResultsDir
}

// ReportFilePath returns the report destination, defaulting to a file
// inside the results directory.
func (c Config) ReportFilePath() string {
	if strings.TrimSpace(c.ReportPath) != "" {
		return c.ReportPath
	}
	return c.ResultsDirPath() + string(os.PathSeparator) + defaultReportName
}

// LogFilePath returns the path to the application log file, applying a
// default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "gcsbench.log"
}

// SampleInterval returns the resource sampler polling interval,
// falling back to the default if not specified.
func (c Config) SampleInterval() time.Duration {
	if c.SampleIntervalSeconds <= 0 {
		return defaultSampleInterval
	}
	return time.Duration(c.SampleIntervalSeconds) * time.Second
}

// RunnerCommandLine returns the benchmark runner argv prefix,
// defaulting to pytest.
func (c Config) RunnerCommandLine() (string, []string) {
	if strings.TrimSpace(c.RunnerCommand) == "" {
		return "pytest", nil
	}
	return c.RunnerCommand, c.RunnerArgs
}

// RunEnv materializes the environment for one runner invocation. This
// is the only place configuration crosses the process boundary; the
// orchestrator itself never mutates its own environment. Only the
// bucket being exercised is exported so the runner cannot pick up a
// stale target from an earlier run.
func (c Config) RunEnv(bucket BucketRun) []string {
	env := append([]string(nil), os.Environ()...)

	bucketVars := []struct {
		bt  results.BucketType
		key string
	}{
		{results.BucketRegional, "GCSFS_TEST_BUCKET"},
		{results.BucketHNS, "GCSFS_HNS_TEST_BUCKET"},
		{results.BucketZonal, "GCSFS_ZONAL_TEST_BUCKET"},
	}

	for _, v := range bucketVars {
		value := ""
		if v.bt == bucket.Type {
			value = bucket.Name
		}
		env = append(env, v.key+"="+value)
	}

	env = append(env,
		"GOOGLE_CLOUD_PROJECT="+c.Project,
		"GCSFS_EXPERIMENTAL_ZB_HNS_SUPPORT=true",
		"STORAGE_EMULATOR_HOST=https://storage.googleapis.com",
	)

	if c.Scenario != "" {
		env = append(env, "GCSFS_BENCHMARK_FILTER="+c.Scenario)
	}
	if len(c.FileSizesMB) > 0 {
		sizes := make([]string, 0, len(c.FileSizesMB))
		for _, size := range c.FileSizesMB {
			sizes = append(sizes, strconv.Itoa(size))
		}
		env = append(env, "GCSFS_BENCHMARK_FILE_SIZES="+strings.Join(sizes, ","))
	}

	return env
}

// Describe returns a short human-readable summary of the run targets,
// used in log lines.
func (c Config) Describe() string {
	var parts []string
	for _, b := range c.Buckets() {
		parts = append(parts, fmt.Sprintf("%s=%s", b.Type, b.Name))
	}
	if len(parts) == 0 {
		return "no buckets configured"
	}
	return strings.Join(parts, ", ")
}
