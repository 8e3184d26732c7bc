package results

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema describes the shape the benchmark runner writes. It
// is deliberately loose about extra_info beyond the required keys so
// runner-side additions pass through without a schema bump here.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []string{"benchmarks"},
	"properties": map[string]any{
		"benchmarks": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"group", "stats", "extra_info"},
				"properties": map[string]any{
					"group": map[string]any{"type": "string"},
					"stats": map[string]any{
						"type":     "object",
						"required": []string{"min", "max", "mean", "rounds", "iterations", "data"},
						"properties": map[string]any{
							"min":        map[string]any{"type": "number"},
							"max":        map[string]any{"type": "number"},
							"mean":       map[string]any{"type": "number"},
							"rounds":     map[string]any{"type": "integer", "minimum": 1},
							"iterations": map[string]any{"type": "integer", "minimum": 1},
							"data": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "number"},
							},
						},
					},
					"extra_info": map[string]any{
						"type":     "object",
						"required": []string{"bucket_name", "bucket_type", "num_files", "file_size"},
					},
				},
			},
		},
	},
}

var schemaLoader = gojsonschema.NewGoLoader(documentSchema)

func validateDocument(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var issues []string
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return fmt.Errorf("document does not match benchmark results schema: %s", strings.Join(issues, "; "))
}
