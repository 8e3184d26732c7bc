// Package results loads raw benchmark result documents produced by the
// external benchmark runner, one JSON file per bucket type.
package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// BucketType classifies the storage target a result document was
// recorded against.
type BucketType string

const (
	BucketRegional BucketType = "regional"
	BucketHNS      BucketType = "hns"
	BucketZonal    BucketType = "zonal"
)

// BucketTypes lists all known bucket types in report order.
var BucketTypes = []BucketType{BucketRegional, BucketHNS, BucketZonal}

// ErrNoResults indicates that no result files were present. Callers
// treat this as a soft skip, not a failure.
var ErrNoResults = errors.New("no benchmark result files found")

// MalformedInputError reports a result file that could not be tagged,
// read, or parsed. The offending path is always carried so it can be
// surfaced to the operator.
type MalformedInputError struct {
	Path string
	Err  error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed result file %s: %v", e.Path, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// ResultDocument is one parsed result file plus the bucket-type tag
// recovered from its filename.
type ResultDocument struct {
	BucketType BucketType
	Path       string
	Benchmarks []RawSample
}

// RawSample is one recorded benchmark group result.
type RawSample struct {
	Group     string         `json:"group"`
	Stats     SampleStats    `json:"stats"`
	ExtraInfo map[string]any `json:"extra_info"`
}

// SampleStats holds the runner's precomputed statistics plus the
// per-iteration timing samples in seconds.
type SampleStats struct {
	Min        float64   `json:"min"`
	Max        float64   `json:"max"`
	Mean       float64   `json:"mean"`
	Rounds     int       `json:"rounds"`
	Iterations int       `json:"iterations"`
	Data       []float64 `json:"data"`
}

// ExtraInfo is the typed view of a sample's extra_info mapping. Sizes
// are in bytes. ChunkSize and Threads are optional in the raw data.
type ExtraInfo struct {
	BucketName string `mapstructure:"bucket_name"`
	BucketType string `mapstructure:"bucket_type"`
	NumFiles   int    `mapstructure:"num_files"`
	FileSize   int64  `mapstructure:"file_size"`
	ChunkSize  *int64 `mapstructure:"chunk_size"`
	Pattern    string `mapstructure:"pattern"`
	Threads    *int   `mapstructure:"threads"`
}

// DecodeExtraInfo converts the raw extra_info mapping into its typed
// form. Unknown keys (block_size, processes, ...) are ignored.
func (s RawSample) DecodeExtraInfo() (ExtraInfo, error) {
	var info ExtraInfo
	if err := mapstructure.Decode(s.ExtraInfo, &info); err != nil {
		return ExtraInfo{}, fmt.Errorf("decode extra_info for group %q: %w", s.Group, err)
	}
	return info, nil
}

var bucketSuffix = regexp.MustCompile(`_(regional|hns|zonal)\.json$`)

// TagPath recovers the bucket type from the result filename suffix
// convention <prefix>_<bucket_type>.json.
func TagPath(path string) (BucketType, error) {
	m := bucketSuffix.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", &MalformedInputError{
			Path: path,
			Err:  errors.New("filename does not match *_<regional|hns|zonal>.json"),
		}
	}
	return BucketType(m[1]), nil
}

// Discover returns the candidate result files under dir, sorted. A
// missing or empty directory yields an empty slice.
func Discover(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan results dir %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadDocuments tags, validates, and parses each result file. The
// paths are processed in sorted order so the output is independent of
// filesystem enumeration order. Zero paths is ErrNoResults; any file
// that cannot be tagged or parsed is a MalformedInputError.
func LoadDocuments(paths []string) ([]ResultDocument, error) {
	if len(paths) == 0 {
		return nil, ErrNoResults
	}

	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	docs := make([]ResultDocument, 0, len(sorted))
	for _, path := range sorted {
		doc, err := loadDocument(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func loadDocument(path string) (ResultDocument, error) {
	bucketType, err := TagPath(path)
	if err != nil {
		return ResultDocument{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ResultDocument{}, &MalformedInputError{Path: path, Err: err}
	}

	if err := validateDocument(data); err != nil {
		return ResultDocument{}, &MalformedInputError{Path: path, Err: err}
	}

	var parsed struct {
		Benchmarks []RawSample `json:"benchmarks"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return ResultDocument{}, &MalformedInputError{Path: path, Err: err}
	}

	return ResultDocument{
		BucketType: bucketType,
		Path:       path,
		Benchmarks: parsed.Benchmarks,
	}, nil
}
