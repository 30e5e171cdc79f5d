package mcp

import (
	"reflect"

	"github.com/ggoodman/mcp-schema-go/internal/reflectschema"
)

// SchemaFor reflects the struct type T into an object Schema suitable for
// Tool.InputSchema or Tool.OutputSchema. Fields without omitempty are
// required; jsonschema struct tags refine the result.
func SchemaFor[T any]() (Schema, error) {
	s, err := reflectschema.For(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	m, err := reflectschema.Map(s)
	if err != nil {
		return nil, err
	}
	return Schema(m), nil
}

// MustSchemaFor is like SchemaFor but panics on error. It is intended for
// package-level tool declarations.
func MustSchemaFor[T any]() Schema {
	s, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return s
}
