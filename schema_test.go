package yakker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchArgs struct {
	Query string `json:"query" desc:"Search query" required:"true"`
	Limit int    `json:"limit" desc:"Max results"`
}

type nestedArgs struct {
	Tags   []string `json:"tags"`
	Filter struct {
		Region string `json:"region" required:"true"`
	} `json:"filter"`
	Meta map[string]any `json:"meta"`
}

func decodeSchema(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))
	return schema
}

func TestSchemaFor(t *testing.T) {
	t.Run("builds an object schema from struct tags", func(t *testing.T) {
		raw, err := SchemaFor[searchArgs]()
		require.NoError(t, err)

		schema := decodeSchema(t, raw)
		assert.Equal(t, "object", schema["type"])

		props := schema["properties"].(map[string]any)
		query := props["query"].(map[string]any)
		assert.Equal(t, "string", query["type"])
		assert.Equal(t, "Search query", query["description"])

		limit := props["limit"].(map[string]any)
		assert.Equal(t, "integer", limit["type"])

		assert.Equal(t, []any{"query"}, schema["required"])
	})

	t.Run("handles slices, nested structs, and maps", func(t *testing.T) {
		raw, err := SchemaFor[nestedArgs]()
		require.NoError(t, err)

		schema := decodeSchema(t, raw)
		props := schema["properties"].(map[string]any)

		tags := props["tags"].(map[string]any)
		assert.Equal(t, "array", tags["type"])
		assert.Equal(t, "string", tags["items"].(map[string]any)["type"])

		filter := props["filter"].(map[string]any)
		assert.Equal(t, "object", filter["type"])
		assert.Equal(t, []any{"region"}, filter["required"])

		meta := props["meta"].(map[string]any)
		assert.Equal(t, "object", meta["type"])
		assert.Nil(t, meta["properties"])
	})

	t.Run("skips unexported and json-dash fields", func(t *testing.T) {
		type args struct {
			Visible string `json:"visible"`
			Skipped string `json:"-"`
			hidden  string
		}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		props := decodeSchema(t, raw)["properties"].(map[string]any)
		assert.Contains(t, props, "visible")
		assert.NotContains(t, props, "Skipped")
		assert.NotContains(t, props, "hidden")
		assert.Len(t, props, 1)
	})

	t.Run("falls back to field name without a json tag", func(t *testing.T) {
		type args struct {
			Plain bool
		}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		props := decodeSchema(t, raw)["properties"].(map[string]any)
		assert.Equal(t, "boolean", props["Plain"].(map[string]any)["type"])
	})

	t.Run("rejects non-struct types", func(t *testing.T) {
		_, err := SchemaFor[string]()
		assert.Error(t, err)

		_, err = SchemaFor[map[string]any]()
		assert.Error(t, err)
	})
}

func TestMustSchemaFor(t *testing.T) {
	t.Run("returns the schema for a valid type", func(t *testing.T) {
		assert.NotEmpty(t, MustSchemaFor[searchArgs]())
	})

	t.Run("panics for an invalid type", func(t *testing.T) {
		assert.Panics(t, func() {
			MustSchemaFor[int]()
		})
	})
}
