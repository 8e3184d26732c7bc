package appconfig

import (
	"strings"
	"testing"
	"time"

	"github.com/cloudbench/gcsbench/internal/results"
)

func validConfig() Config {
	return Config{
		RegionalBucket: "bucket-regional",
		HNSBucket:      "bucket-hns",
		ZonalBucket:    "bucket-zonal",
		Project:        "my-project",
		Scenario:       "read",
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	noBuckets := validConfig()
	noBuckets.RegionalBucket, noBuckets.HNSBucket, noBuckets.ZonalBucket = "", "", ""
	if err := noBuckets.Validate(); err == nil {
		t.Fatal("expected error with no buckets")
	}

	noProject := validConfig()
	noProject.Project = ""
	if err := noProject.Validate(); err == nil {
		t.Fatal("expected error with no project")
	}

	noScenario := validConfig()
	noScenario.Scenario = ""
	if err := noScenario.Validate(); err == nil {
		t.Fatal("expected error with no scenario")
	}
}

func TestBucketsFixedOrder(t *testing.T) {
	buckets := validConfig().Buckets()
	if len(buckets) != 3 {
		t.Fatalf("buckets = %d, want 3", len(buckets))
	}
	order := []results.BucketType{results.BucketRegional, results.BucketHNS, results.BucketZonal}
	for i, want := range order {
		if buckets[i].Type != want {
			t.Fatalf("bucket order[%d] = %q, want %q", i, buckets[i].Type, want)
		}
	}

	onlyZonal := Config{ZonalBucket: "z"}
	buckets = onlyZonal.Buckets()
	if len(buckets) != 1 || buckets[0].Type != results.BucketZonal || buckets[0].Name != "z" {
		t.Fatalf("zonal-only buckets wrong: %+v", buckets)
	}
}

// envValue returns the effective value of key in env: the last entry
// wins, matching how the OS resolves duplicates for a spawned process.
func envValue(env []string, key string) (string, bool) {
	prefix := key + "="
	for i := len(env) - 1; i >= 0; i-- {
		if strings.HasPrefix(env[i], prefix) {
			return strings.TrimPrefix(env[i], prefix), true
		}
	}
	return "", false
}

func TestRunEnvExportsOnlyActiveBucket(t *testing.T) {
	cfg := validConfig()
	cfg.FileSizesMB = []int{128, 1024}

	env := cfg.RunEnv(BucketRun{Type: results.BucketHNS, Name: "bucket-hns"})

	if got, _ := envValue(env, "GCSFS_HNS_TEST_BUCKET"); got != "bucket-hns" {
		t.Fatalf("hns bucket var = %q", got)
	}
	if got, _ := envValue(env, "GCSFS_TEST_BUCKET"); got != "" {
		t.Fatalf("regional bucket var = %q, want empty", got)
	}
	if got, _ := envValue(env, "GCSFS_ZONAL_TEST_BUCKET"); got != "" {
		t.Fatalf("zonal bucket var = %q, want empty", got)
	}
	if got, _ := envValue(env, "GOOGLE_CLOUD_PROJECT"); got != "my-project" {
		t.Fatalf("project var = %q", got)
	}
	if got, _ := envValue(env, "GCSFS_BENCHMARK_FILTER"); got != "read" {
		t.Fatalf("filter var = %q", got)
	}
	if got, _ := envValue(env, "GCSFS_BENCHMARK_FILE_SIZES"); got != "128,1024" {
		t.Fatalf("file sizes var = %q", got)
	}
}

func TestRunEnvOmitsFileSizesWhenUnset(t *testing.T) {
	env := validConfig().RunEnv(BucketRun{Type: results.BucketRegional, Name: "bucket-regional"})
	if _, ok := envValue(env, "GCSFS_BENCHMARK_FILE_SIZES"); ok {
		t.Fatal("file sizes var exported without an override")
	}
}

func TestDefaults(t *testing.T) {
	var cfg Config
	if got := cfg.ScenarioFilePath(); got != DefaultScenarioFile {
		t.Fatalf("scenario file = %q", got)
	}
	if got := cfg.ResultsDirPath(); got != DefaultResultsDir {
		t.Fatalf("results dir = %q", got)
	}
	if got := cfg.ReportFilePath(); !strings.HasSuffix(got, "consolidated_report.txt") {
		t.Fatalf("report path = %q", got)
	}
	if got := cfg.LogFilePath(); got != "gcsbench.log" {
		t.Fatalf("log file = %q", got)
	}
	if got := cfg.SampleInterval(); got != time.Second {
		t.Fatalf("sample interval = %v", got)
	}

	name, args := cfg.RunnerCommandLine()
	if name != "pytest" || len(args) != 0 {
		t.Fatalf("runner command = %q %v", name, args)
	}

	cfg.SampleIntervalSeconds = 5
	if got := cfg.SampleInterval(); got != 5*time.Second {
		t.Fatalf("sample interval = %v, want 5s", got)
	}
	cfg.ReportPath = "out/report.tsv"
	if got := cfg.ReportFilePath(); got != "out/report.tsv" {
		t.Fatalf("report path override = %q", got)
	}
}
