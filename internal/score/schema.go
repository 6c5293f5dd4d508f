package score

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// resultSchema is the JSON Schema every stored record must satisfy before it
// is decoded. Records failing it are skipped individually so one bad entry
// doesn't drop a profile's whole history.
var resultSchema = map[string]any{
	"type": "object",
	"required": []string{
		"profile_id", "tables", "question_count", "answered", "correct",
		"incorrect", "time_limit_seconds", "elapsed_seconds", "timestamp",
	},
	"properties": map[string]any{
		"profile_id":   map[string]any{"type": "string", "minLength": 1},
		"profile_name": map[string]any{"type": "string"},
		"tables": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
		},
		"question_count":     map[string]any{"type": "integer", "minimum": 0},
		"answered":           map[string]any{"type": "integer", "minimum": 0},
		"correct":            map[string]any{"type": "integer", "minimum": 0},
		"incorrect":          map[string]any{"type": "integer", "minimum": 0},
		"time_limit_seconds": map[string]any{"type": "number", "minimum": 0},
		"elapsed_seconds":    map[string]any{"type": "number", "minimum": 0},
		"timestamp":          map[string]any{"type": "string"},
		"table_stats": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"questions":  map[string]any{"type": "number", "minimum": 0},
					"correct":    map[string]any{"type": "number", "minimum": 0},
					"incorrect":  map[string]any{"type": "number", "minimum": 0},
					"total_time": map[string]any{"type": "number", "minimum": 0},
				},
			},
		},
	},
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// validateRecord checks one raw stored record against resultSchema.
func validateRecord(raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := recordSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// recordSchema compiles resultSchema on first use and caches it.
func recordSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The compiler wants the schema as a parsed JSON value, so round-trip
		// the Go literal through encoding/json first.
		defBytes, err := json.Marshal(resultSchema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://test_result.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}
