package summary

import (
	"testing"

	"github.com/cloudbench/gcsbench/internal/results"
)

func sampleDoc(group string, mean float64, extra map[string]any) results.ResultDocument {
	return results.ResultDocument{
		BucketType: results.BucketRegional,
		Path:       "benchmark_results_regional.json",
		Benchmarks: []results.RawSample{{
			Group: group,
			Stats: results.SampleStats{
				Min:        0.5,
				Max:        3.5,
				Mean:       mean,
				Rounds:     5,
				Iterations: 1,
				Data:       []float64{1.0, 2.0, 3.0, 4.0, 5.0},
			},
			ExtraInfo: extra,
		}},
	}
}

func baseExtra() map[string]any {
	// JSON decoding hands extra_info over as float64 values.
	return map[string]any{
		"bucket_name": "my-bucket",
		"bucket_type": "regional",
		"num_files":   float64(10),
		"file_size":   float64(1048576),
	}
}

func TestAggregateThroughputExample(t *testing.T) {
	rows, err := Aggregate([]results.ResultDocument{sampleDoc("READ_OBJECTS", 2.0, baseExtra())})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	// (10 * 1048576) / MB / 2.0 = 5 MB/s
	if rows[0].Throughput != "5" {
		t.Fatalf("throughput = %q, want \"5\"", rows[0].Throughput)
	}
}

func TestAggregateListGroupThroughputSentinel(t *testing.T) {
	rows, err := Aggregate([]results.ResultDocument{sampleDoc("LIST_OBJECTS", 2.0, baseExtra())})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if rows[0].Throughput != "N/A" {
		t.Fatalf("LIST throughput = %q, want N/A", rows[0].Throughput)
	}
}

func TestAggregateZeroMeanThroughputSentinel(t *testing.T) {
	rows, err := Aggregate([]results.ResultDocument{sampleDoc("READ_OBJECTS", 0, baseExtra())})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if rows[0].Throughput != "N/A" {
		t.Fatalf("zero-mean throughput = %q, want N/A", rows[0].Throughput)
	}
}

func TestAggregateDefaults(t *testing.T) {
	rows, err := Aggregate([]results.ResultDocument{sampleDoc("READ_OBJECTS", 2.0, baseExtra())})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	row := rows[0]
	if row.Pattern != "N/A" {
		t.Fatalf("pattern default = %q, want N/A", row.Pattern)
	}
	if row.Threads != 1 {
		t.Fatalf("threads default = %d, want 1", row.Threads)
	}
	if row.ChunkSizeMB != "N/A" {
		t.Fatalf("chunk size default = %q, want N/A", row.ChunkSizeMB)
	}
}

func TestAggregateFullRow(t *testing.T) {
	extra := baseExtra()
	extra["file_size"] = float64(128 * 1048576)
	extra["chunk_size"] = float64(16 * 1048576)
	extra["pattern"] = "sequential"
	extra["threads"] = float64(4)

	rows, err := Aggregate([]results.ResultDocument{sampleDoc("READ_OBJECTS", 2.0, extra)})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	row := rows[0]

	if row.Group != "READ_OBJECTS" || row.BucketName != "my-bucket" || row.BucketType != "regional" {
		t.Fatalf("identity cells wrong: %+v", row)
	}
	if row.Pattern != "sequential" || row.Threads != 4 {
		t.Fatalf("pattern/threads wrong: %+v", row)
	}
	if row.FileSizeMB != "128" {
		t.Fatalf("file size MB = %q, want 128", row.FileSizeMB)
	}
	if row.ChunkSizeMB != "16" {
		t.Fatalf("chunk size MB = %q, want 16", row.ChunkSizeMB)
	}
	if row.Min != "0.5" || row.Max != "3.5" || row.Mean != "2" {
		t.Fatalf("stats cells wrong: %+v", row)
	}
	if row.Rounds != 5 || row.Iterations != 1 {
		t.Fatalf("rounds/iters wrong: %+v", row)
	}
	if row.P90 != "5" || row.P95 != "5" || row.P99 != "5" {
		t.Fatalf("percentile cells wrong: %+v", row)
	}
	// (10 * 128MB) / 2s = 640 MB/s
	if row.Throughput != "640" {
		t.Fatalf("throughput = %q, want 640", row.Throughput)
	}
}

func TestAggregateRowPerSamplePerDocument(t *testing.T) {
	docA := sampleDoc("READ_OBJECTS", 2.0, baseExtra())
	docB := sampleDoc("WRITE_OBJECTS", 1.0, baseExtra())
	docB.BucketType = results.BucketZonal

	rows, err := Aggregate([]results.ResultDocument{docA, docB})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].BucketType != "regional" || rows[1].BucketType != "zonal" {
		t.Fatalf("bucket type tags wrong: %+v", rows)
	}
}

func TestAggregateEmpty(t *testing.T) {
	rows, err := Aggregate(nil)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
}
