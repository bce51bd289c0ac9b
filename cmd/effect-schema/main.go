package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/KirkDiggler/pet-battle-effects/internal/dsl"
)

func main() {
	var outPath string
	var pack bool
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.BoolVar(&pack, "pack", false, "describe a pack file (effects and marks) instead of a single effect")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	if err := writeSchema(outPath, buildSchema(pack)); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

func buildSchema(pack bool) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}

	if pack {
		schema := reflector.Reflect(new(dsl.Pack))
		schema.Title = "Pet Battle Content Pack"
		schema.Description = "Validates content files that bundle effects and base marks"
		return schema
	}

	schema := reflector.Reflect(new(dsl.Effect))
	schema.Title = "Pet Battle Effect"
	schema.Description = "Validates one authored effect: triggers, an optional condition and the operators it applies"
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
