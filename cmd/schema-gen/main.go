// Schema Generator
//
// Generates JSON Schema files from Go types for API clients and for
// validating stored quotation snapshots.
//
// Usage:
//
//	go run ./cmd/schema-gen [output-dir]
//
// Output (default ./schemas):
//
//	catalog.json
//	quotations.json
//	snapshot.json
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"

	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/database"
	"github.com/tourdesk/quote-service/internal/handlers"
	"github.com/tourdesk/quote-service/internal/itinerary"
)

// SchemaGroup represents a group of related schemas
type SchemaGroup struct {
	Name   string
	Types  []any
	Output string
}

func main() {
	outputDir := "schemas"
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	groups := []SchemaGroup{
		{
			Name: "catalog",
			Types: []any{
				catalog.CatalogItem{},
				handlers.ListCatalogResponse{},
			},
			Output: "catalog.json",
		},
		{
			Name: "quotations",
			Types: []any{
				// Request types
				handlers.CreateQuotationRequest{},
				handlers.AddServiceRequest{},
				handlers.UpdateServiceRequest{},
				handlers.ListQuotationsRequest{},
				// Response types
				handlers.QuotationView{},
				handlers.DayView{},
				handlers.SelectionView{},
				handlers.ServiceResponse{},
				handlers.SaveQuotationResponse{},
				handlers.ListQuotationsResponse{},
				database.QuotationSummary{},
				handlers.ErrorResponse{},
			},
			Output: "quotations.json",
		},
		{
			Name: "snapshot",
			Types: []any{
				itinerary.TripSnapshot{},
				itinerary.SelectionSnapshot{},
			},
			Output: "snapshot.json",
		},
	}

	// Generate schemas for each group
	for _, group := range groups {
		schema := generateGroupSchema(group)
		outputPath := filepath.Join(outputDir, group.Output)

		if err := writeSchema(schema, outputPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", group.Output, err)
			os.Exit(1)
		}

		fmt.Printf("Generated %s\n", outputPath)
	}

	fmt.Println("Schema generation complete!")
}

// generateGroupSchema creates a combined schema with all types in a group
func generateGroupSchema(group SchemaGroup) map[string]any {
	reflector := &jsonschema.Reflector{
		DoNotReference: false,
		ExpandedStruct: false,
		Mapper:         mapType,
	}

	// Create combined definitions
	definitions := make(map[string]any)

	for _, t := range group.Types {
		schema := reflector.Reflect(t)

		typeName := ""
		if schema.Ref != "" {
			// $ref looks like "#/$defs/TripSnapshot"
			typeName = filepath.Base(schema.Ref)
		}

		// Add all definitions from this type's schema
		for name, def := range schema.Definitions {
			definitions[name] = def
		}

		// If there's a main type, add it to definitions too
		if typeName != "" && schema.Definitions[typeName] != nil {
			definitions[typeName] = schema.Definitions[typeName]
		}
	}

	return map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"$id":         fmt.Sprintf("https://schemas.tourdesk.io/quote-service/%s.json", group.Name),
		"title":       fmt.Sprintf("%s API Types", capitalize(group.Name)),
		"description": fmt.Sprintf("JSON Schema for %s API types generated from Go structs", group.Name),
		"$defs":       definitions,
	}
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// mapType renders decimals the way they are serialised: as numeric strings.
func mapType(t reflect.Type) *jsonschema.Schema {
	if t == decimalType {
		return &jsonschema.Schema{
			Type:    "string",
			Pattern: `^-?[0-9]+(\.[0-9]+)?$`,
		}
	}
	return nil
}

// writeSchema writes a schema to a JSON file
func writeSchema(schema map[string]any, path string) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
