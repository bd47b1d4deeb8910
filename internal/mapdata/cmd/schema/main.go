// Command schema reflects over mapdata.FileDefinitions to write a JSON
// Schema document describing the designer-authored map bundle format, and
// can optionally exercise mapdata.Resolver against one or more sample
// bundle files to confirm they actually decode, grounded on
// mine-and-die/server/effects/catalog/cmd/schema/main.go and
// mapdata/resolver.go's multi-source merge.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/mapdata"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	schema := buildSchema()

	if err := writeSchema(outPath, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}

	if bundles := flag.Args(); len(bundles) > 0 {
		maps, err := validateBundles(bundles)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bundle validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "validated %d map(s) across %d bundle file(s)\n", len(maps), len(bundles))
	}
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(mapdata.FileDefinitions))
	schema.Title = "Uniform Dispersion Map Bundle"
	schema.Description = "Validates designer-authored map bundles consumed by mapdata.Resolver"
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

// validateBundles runs every positional argument through mapdata.Resolver,
// the same merge path the running server uses to load designer-authored
// maps, so a schema-valid-but-semantically-broken bundle (layers that do
// not match the declared dimensions, a door outside the volume) is caught
// before it ships. Duplicate map names are not checked, and a door cell
// authored as '#' is made walkable rather than rejected.
func validateBundles(paths []string) ([]mapdata.Map, error) {
	resolver := mapdata.NewResolver()
	for _, p := range paths {
		resolver.AddFile(p)
	}
	return resolver.Resolve()
}
