package annotated_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/docsplit/annotated"
)

func TestJSONSchema(t *testing.T) {
	t.Parallel()

	schema, err := annotated.JSONSchema()
	require.NoError(t, err)

	assert.Equal(t, annotated.SchemaID, schema.ID)

	for _, name := range []string{"sections", "refMap", "originalCode", "codeWithoutComments"} {
		prop, ok := schema.Properties[name]
		require.True(t, ok, "missing property %q", name)
		assert.NotEmpty(t, prop.Description, "property %q", name)
	}

	resolved, err := schema.Resolve(nil)
	require.NoError(t, err)

	var doc map[string]any

	raw, err := json.Marshal(annotated.Parse("// REF: a\nx()\n// CLOSE: a"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &doc))

	require.NoError(t, resolved.Validate(doc))
}
