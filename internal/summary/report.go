package summary

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/cloudbench/gcsbench/internal/logging"
)

// header is the fixed column order of the consolidated report. Order
// and spelling are stable across runs; downstream sheets key on them.
var header = []string{
	"Group",
	"Bucket_Name",
	"Bucket_Type",
	"Pattern",
	"Threads",
	"Num_Files",
	"File_Size(MB)",
	"Chunk_Size(MB)",
	"Min(s)",
	"Max(s)",
	"Mean(s)",
	"Rounds",
	"Iters",
	"P90(s)",
	"P95(s)",
	"P99(s)",
	"Throughput(MB/s)",
}

func (r Row) cells() []string {
	return []string{
		r.Group,
		r.BucketName,
		r.BucketType,
		r.Pattern,
		strconv.Itoa(r.Threads),
		strconv.Itoa(r.NumFiles),
		r.FileSizeMB,
		r.ChunkSizeMB,
		r.Min,
		r.Max,
		r.Mean,
		strconv.Itoa(r.Rounds),
		strconv.Itoa(r.Iterations),
		r.P90,
		r.P95,
		r.P99,
		r.Throughput,
	}
}

// Render writes the tab-separated report: the header line followed by
// one line per row.
func Render(w io.Writer, rows []Row) error {
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(row.cells(), "\t")); err != nil {
			return err
		}
	}
	return nil
}

// Echo prints a column-aligned rendition of the report for the
// invoking terminal. The persisted file keeps the plain tab-separated
// form; alignment here is cosmetic.
func Echo(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)
	if _, err := fmt.Fprintln(tw, bold.Sprint(strings.Join(header, "\t"))); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row.cells(), "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteReport persists the report to path and echoes it to stdout.
// With zero rows it logs a skip diagnostic and writes nothing; an
// empty table is never written.
func WriteReport(path string, rows []Row) error {
	if len(rows) == 0 {
		logging.Eventf("no benchmark rows to report, skipping %s", path)
		return nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory for %s: %w", path, err)
		}
	}

	var sb strings.Builder
	if err := Render(&sb, rows); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	if err := Echo(os.Stdout, rows); err != nil {
		return err
	}
	logging.Eventf("report written to %s", path)
	return nil
}
