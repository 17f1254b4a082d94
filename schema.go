package yakker

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// SchemaFor generates a JSON Schema object from a struct type T.
//
// Field names are taken from json tags. Struct tags refine the schema:
//
//	type ApproveArgs struct {
//	    Action string `json:"action" desc:"Action requiring approval" required:"true"`
//	    Amount int    `json:"amount" desc:"Amount involved"`
//	}
//
// The resulting schema is suitable for a Tool's Parameters field.
func SchemaFor[T any]() (json.RawMessage, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return nil, fmt.Errorf("yakker: cannot build schema for interface type")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("yakker: cannot build schema for %s, want struct", t.Kind())
	}

	schema := schemaFromStruct(t)
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// MustSchemaFor is like SchemaFor but panics on error.
// Useful in initialization code where a bad argument type is a programming error.
func MustSchemaFor[T any]() json.RawMessage {
	schema, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return schema
}

// propertyDef holds the definition of a single schema property.
type propertyDef struct {
	Type        string                  `json:"type"`
	Description string                  `json:"description,omitempty"`
	Items       *propertyDef            `json:"items,omitempty"`
	Properties  map[string]*propertyDef `json:"properties,omitempty"`
	Required    []string                `json:"required,omitempty"`
}

// objectSchema is the top-level schema shape for tool parameters.
type objectSchema struct {
	Type       string                  `json:"type"`
	Properties map[string]*propertyDef `json:"properties"`
	Required   []string                `json:"required,omitempty"`
}

func schemaFromStruct(t reflect.Type) *objectSchema {
	schema := &objectSchema{
		Type:       "object",
		Properties: make(map[string]*propertyDef),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := strings.Split(jsonTag, ",")[0]
		if name == "" {
			name = field.Name
		}

		prop := typeToPropertyDef(field.Type)
		if desc := field.Tag.Get("desc"); desc != "" {
			prop.Description = desc
		}
		schema.Properties[name] = prop

		if field.Tag.Get("required") == "true" {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema
}

func typeToPropertyDef(t reflect.Type) *propertyDef {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return &propertyDef{Type: "string"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &propertyDef{Type: "integer"}

	case reflect.Float32, reflect.Float64:
		return &propertyDef{Type: "number"}

	case reflect.Bool:
		return &propertyDef{Type: "boolean"}

	case reflect.Slice, reflect.Array:
		return &propertyDef{Type: "array", Items: typeToPropertyDef(t.Elem())}

	case reflect.Struct:
		nested := schemaFromStruct(t)
		return &propertyDef{
			Type:       "object",
			Properties: nested.Properties,
			Required:   nested.Required,
		}

	case reflect.Map:
		// Maps become objects with no defined properties.
		return &propertyDef{Type: "object"}

	default:
		return &propertyDef{Type: "string"}
	}
}
