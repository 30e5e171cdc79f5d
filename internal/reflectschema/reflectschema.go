// Package reflectschema derives JSON schemas from Go struct types. Results
// are cached per type; callers must treat returned schemas as read-only.
package reflectschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	js "github.com/invopop/jsonschema"
)

var cache sync.Map // map[reflect.Type]*js.Schema

// For returns the inline object schema of t. Pointers are dereferenced; any
// other non-struct type is an error.
func For(t reflect.Type) (*js.Schema, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("reflectschema: type must be struct kind, got %s", t.Kind())
	}
	if v, ok := cache.Load(t); ok {
		return v.(*js.Schema), nil
	}

	r := &js.Reflector{DoNotReference: true, ExpandedStruct: true}
	s := r.ReflectFromType(t)
	if s == nil || s.Type != "object" {
		return nil, fmt.Errorf("reflectschema: %s did not project to an object schema", t)
	}
	// Embedded documents carry no dialect or identity.
	s.Version = ""
	s.ID = ""

	actual, _ := cache.LoadOrStore(t, s)
	return actual.(*js.Schema), nil
}

// Map renders s as a generic JSON object.
func Map(s *js.Schema) (map[string]any, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("reflectschema: marshal: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("reflectschema: unmarshal: %w", err)
	}
	return m, nil
}
