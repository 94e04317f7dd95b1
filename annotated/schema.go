package annotated

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// SchemaID is the $id of the schema returned by [JSONSchema].
const SchemaID = "https://go.jacobcolvin.com/docsplit/parse-result.schema.json"

var propertyDescriptions = map[string]string{
	"sections":            "Sections in increasing original-line order.",
	"codeWithoutComments": "The input with documentation comments removed and inline comments kept.",
	"originalCode":        "The unmodified input.",
	"refMap":              "REF marker id to index into sections.",
	"diagnostics":         "Fallbacks taken while parsing; informational only.",
}

// JSONSchema returns the JSON Schema of a JSON-encoded [ParseResult].
func JSONSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[ParseResult](nil)
	if err != nil {
		return nil, fmt.Errorf("inferring parse result schema: %w", err)
	}

	schema.ID = SchemaID
	schema.Title = "docsplit parse result"
	schema.Description = "Documentation/code sections of one annotated source file."

	for name, desc := range propertyDescriptions {
		if prop, ok := schema.Properties[name]; ok && prop != nil {
			prop.Description = desc
		}
	}

	return schema, nil
}
