// Package scenario loads the YAML catalog of benchmark scenario
// definitions and resolves the one a run was asked for.
package scenario

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Case is one benchmark case within a scenario: which group to
// exercise and with what parameters. Sizes are in megabytes here; the
// runner converts to bytes when publishing extra_info.
type Case struct {
	Group       string `mapstructure:"group"`
	Pattern     string `mapstructure:"pattern"`
	Threads     int    `mapstructure:"threads"`
	Rounds      int    `mapstructure:"rounds"`
	NumFiles    int    `mapstructure:"num_files"`
	FileSizesMB []int  `mapstructure:"file_sizes_mb"`
	ChunkSizeMB int    `mapstructure:"chunk_size_mb"`
}

// Scenario is a named list of benchmark cases.
type Scenario struct {
	Name        string
	Description string `mapstructure:"description"`
	Cases       []Case `mapstructure:"cases"`
}

// WithFileSizes returns a copy of the scenario with every case's file
// sizes replaced by the given override. An empty override returns the
// scenario unchanged.
func (s Scenario) WithFileSizes(sizesMB []int) Scenario {
	if len(sizesMB) == 0 {
		return s
	}
	out := s
	out.Cases = make([]Case, len(s.Cases))
	for i, c := range s.Cases {
		c.FileSizesMB = append([]int(nil), sizesMB...)
		out.Cases[i] = c
	}
	return out
}

// Catalog is the parsed scenario file.
type Catalog struct {
	scenarios map[string]Scenario
}

// LoadCatalog reads and parses the scenario catalog at path.
func LoadCatalog(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read scenario catalog %s: %w", path, err)
	}

	var parsed struct {
		Scenarios map[string]Scenario `mapstructure:"scenarios"`
	}
	if err := v.Unmarshal(&parsed); err != nil {
		return nil, fmt.Errorf("parse scenario catalog %s: %w", path, err)
	}
	if len(parsed.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario catalog %s defines no scenarios", path)
	}

	for name, s := range parsed.Scenarios {
		s.Name = name
		parsed.Scenarios[name] = s
	}
	return &Catalog{scenarios: parsed.Scenarios}, nil
}

// Names returns the catalog's scenario names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.scenarios))
	for name := range c.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a scenario by name. Unknown names list the known
// ones so a typo is obvious from the error alone.
func (c *Catalog) Lookup(name string) (Scenario, error) {
	if s, ok := c.scenarios[name]; ok {
		return s, nil
	}
	return Scenario{}, fmt.Errorf("unknown scenario %q (known: %s)", name, strings.Join(c.Names(), ", "))
}
