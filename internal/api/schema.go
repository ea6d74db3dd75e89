package api

import (
	"embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema validates request bodies against an embedded JSON schema
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// LoadSchema compiles the named embedded schema
func LoadSchema(name string) (*Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("schema %s not found: %w", name, err)
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("schema %s does not compile: %w", name, err)
	}
	return &Schema{name: name, schema: compiled}, nil
}

// MustLoadSchema is LoadSchema for package-level wiring; the schemas are
// embedded so failure is a build defect.
func MustLoadSchema(name string) *Schema {
	s, err := LoadSchema(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks body and returns field -> message for every violation.
// A nil map means the body is valid. Bodies that are not JSON at all
// return an error.
func (s *Schema) Validate(body []byte) (map[string]string, error) {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("malformed JSON body: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	fields := make(map[string]string, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if desc.Type() == "required" {
			if prop, ok := desc.Details()["property"].(string); ok {
				field = prop
			}
		}
		if _, seen := fields[field]; !seen {
			fields[field] = desc.Description()
		}
	}
	return fields, nil
}
