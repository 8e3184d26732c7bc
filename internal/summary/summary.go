// Package summary turns raw benchmark result documents into the
// consolidated tabular report.
package summary

import (
	"strings"

	"github.com/cloudbench/gcsbench/internal/results"
)

const megabyte = 1024 * 1024

// notAvailable is the sentinel emitted for cells that have no
// meaningful value (missing chunk size, LIST throughput, ...).
const notAvailable = "N/A"

// Row is one line of the consolidated report. Float cells are
// pre-formatted strings so sentinel values render uniformly.
type Row struct {
	Group       string
	BucketName  string
	BucketType  string
	Pattern     string
	Threads     int
	NumFiles    int
	FileSizeMB  string
	ChunkSizeMB string
	Min         string
	Max         string
	Mean        string
	Rounds      int
	Iterations  int
	P90         string
	P95         string
	P99         string
	Throughput  string
}

// Aggregate produces one Row per sample per document, in document
// order. Each row is derived from a single sample plus its enclosing
// document's bucket-type tag; there is no cross-document state.
func Aggregate(docs []results.ResultDocument) ([]Row, error) {
	var rows []Row
	for _, doc := range docs {
		for _, sample := range doc.Benchmarks {
			row, err := buildRow(doc, sample)
			if err != nil {
				return nil, &results.MalformedInputError{Path: doc.Path, Err: err}
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func buildRow(doc results.ResultDocument, sample results.RawSample) (Row, error) {
	info, err := sample.DecodeExtraInfo()
	if err != nil {
		return Row{}, err
	}

	pattern := info.Pattern
	if pattern == "" {
		pattern = notAvailable
	}
	threads := 1
	if info.Threads != nil {
		threads = *info.Threads
	}
	chunkSizeMB := notAvailable
	if info.ChunkSize != nil {
		chunkSizeMB = formatValue(float64(*info.ChunkSize) / megabyte)
	}

	return Row{
		Group:       sample.Group,
		BucketName:  info.BucketName,
		BucketType:  string(doc.BucketType),
		Pattern:     pattern,
		Threads:     threads,
		NumFiles:    info.NumFiles,
		FileSizeMB:  formatValue(float64(info.FileSize) / megabyte),
		ChunkSizeMB: chunkSizeMB,
		Min:         formatValue(sample.Stats.Min),
		Max:         formatValue(sample.Stats.Max),
		Mean:        formatValue(sample.Stats.Mean),
		Rounds:      sample.Stats.Rounds,
		Iterations:  sample.Stats.Iterations,
		P90:         formatValue(Percentile(sample.Stats.Data, 90)),
		P95:         formatValue(Percentile(sample.Stats.Data, 95)),
		P99:         formatValue(Percentile(sample.Stats.Data, 99)),
		Throughput:  throughput(sample.Group, info, sample.Stats.Mean),
	}, nil
}

// throughput derives aggregate MB/s from the mean seconds per round.
// Listing benchmarks move no object bytes, so any group containing
// "LIST" reports the sentinel, as does a zero mean.
func throughput(group string, info results.ExtraInfo, mean float64) string {
	if strings.Contains(group, "LIST") || mean == 0 {
		return notAvailable
	}
	totalMB := float64(info.NumFiles) * float64(info.FileSize) / megabyte
	return formatValue(totalMB / mean)
}
