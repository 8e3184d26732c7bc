// Package runner spawns the external benchmark-runner process, one
// invocation per configured bucket type, and supervises its resource
// usage while it runs.
package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/cloudbench/gcsbench/internal/appconfig"
	"github.com/cloudbench/gcsbench/internal/logging"
	"github.com/cloudbench/gcsbench/internal/scenario"
	"github.com/cloudbench/gcsbench/internal/sysmon"
)

// RunResult records one runner invocation: where its result document
// landed and what resources it used.
type RunResult struct {
	Bucket     appconfig.BucketRun
	ResultPath string
	Duration   time.Duration
	Resources  sysmon.Summary
}

// Runner executes the benchmark scenario against each configured
// bucket, strictly one process at a time.
type Runner struct {
	cfg  appconfig.Config
	scen scenario.Scenario
}

func New(cfg appconfig.Config, scen scenario.Scenario) *Runner {
	return &Runner{cfg: cfg, scen: scen}
}

// Seam for tests.
var newCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}

// Run executes the scenario for every configured bucket. A failed
// runner invocation aborts the remaining buckets; partial result files
// from earlier buckets are left in place for aggregation.
func (r *Runner) Run(ctx context.Context) ([]RunResult, error) {
	buckets := r.cfg.Buckets()
	if len(buckets) == 0 {
		return nil, fmt.Errorf("no buckets configured")
	}

	resultsDir := r.cfg.ResultsDirPath()
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir %s: %w", resultsDir, err)
	}

	logging.Eventf("starting scenario %q against %s", r.scen.Name, r.cfg.Describe())

	bar := progressbar.Default(int64(len(buckets)), "Benchmarking buckets:")
	runs := make([]RunResult, 0, len(buckets))
	for _, bucket := range buckets {
		run, err := r.runBucket(ctx, bucket, resultsDir)
		if err != nil {
			return runs, err
		}
		runs = append(runs, run)
		_ = bar.Add(1)
	}
	return runs, nil
}

func (r *Runner) runBucket(ctx context.Context, bucket appconfig.BucketRun, resultsDir string) (RunResult, error) {
	resultPath := filepath.Join(resultsDir, fmt.Sprintf("benchmark_results_%s.json", bucket.Type))

	name, args := r.cfg.RunnerCommandLine()
	args = append(append([]string(nil), args...), "--benchmark-json="+resultPath)

	cmd := newCommand(ctx, name, args...)
	cmd.Env = r.cfg.RunEnv(bucket)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logging.Eventf("running %s benchmark for bucket %s: %s %v", bucket.Type, bucket.Name, name, args)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return RunResult{}, fmt.Errorf("start benchmark runner for %s: %w", bucket.Type, err)
	}

	sampler := sysmon.NewSampler(cmd.Process.Pid, r.cfg.SampleInterval())
	sampler.Start()

	waitErr := cmd.Wait()
	sampler.Stop()
	sampler.Wait()

	if waitErr != nil {
		return RunResult{}, fmt.Errorf("benchmark runner failed for %s bucket %s: %w", bucket.Type, bucket.Name, waitErr)
	}

	run := RunResult{
		Bucket:     bucket,
		ResultPath: resultPath,
		Duration:   time.Since(start),
		Resources:  sampler.Summary(),
	}
	logging.Eventf("finished %s benchmark in %s (samples=%d peakRSS=%.0fkB meanCPU=%.2f)",
		bucket.Type, run.Duration.Round(time.Millisecond), run.Resources.Samples, run.Resources.PeakRSSKB, run.Resources.MeanCPUBusy)
	return run, nil
}
