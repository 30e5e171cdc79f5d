package elicitation

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ggoodman/mcp-schema-go/internal/reflectschema"
	"github.com/ggoodman/mcp-schema-go/mcp"
	"github.com/ggoodman/mcp-schema-go/wire"
)

// fieldMeta captures per-field decoding expectations.
type fieldMeta struct {
	Name      string
	Index     []int
	Required  bool
	Kind      reflect.Kind // underlying base kind (not pointer)
	IsPointer bool
	Schema    mcp.PrimitiveSchemaDefinition
}

var projCache sync.Map // map[reflect.Type]*projection

type projection struct {
	schema mcp.ElicitationSchema
	fields []fieldMeta
}

// project derives an elicitation schema and field metadata for the given type.
func project(t reflect.Type) (*projection, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if v, ok := projCache.Load(t); ok {
		return v.(*projection), nil
	}
	root, err := reflectschema.For(t)
	if err != nil {
		return nil, fmt.Errorf("elicitation: %w", err)
	}

	// Map json property names to struct fields.
	fieldMap := map[string]reflect.StructField{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		} // unexported
		name := jsonName(f)
		if name == "-" {
			continue
		}
		fieldMap[name] = f
	}

	requiredSet := map[string]struct{}{}
	for _, n := range root.Required {
		requiredSet[n] = struct{}{}
	}

	out := mcp.ElicitationSchema{Type: "object", Properties: make(map[string]mcp.PrimitiveSchemaDefinition)}
	var metas []fieldMeta

	if root.Properties != nil {
		for el := root.Properties.Oldest(); el != nil; el = el.Next() {
			name := el.Key
			v := el.Value
			if v == nil {
				return nil, fmt.Errorf("elicitation: nil property schema for %s", name)
			}
			// Only flat primitives are allowed.
			if v.Type == "object" || v.Type == "array" || v.Ref != "" || len(v.AllOf) > 0 || len(v.AnyOf) > 0 || len(v.OneOf) > 0 || v.Not != nil {
				return nil, fmt.Errorf("elicitation: unsupported schema feature on field %s", name)
			}
			if v.Items != nil || v.AdditionalProperties != nil {
				return nil, fmt.Errorf("elicitation: complex collection feature on field %s", name)
			}
			if v.Pattern != "" || len(v.Examples) > 0 || v.ContentEncoding != "" || v.ContentMediaType != "" {
				return nil, fmt.Errorf("elicitation: unsupported supplemental keyword on field %s", name)
			}
			if v.Default != nil && v.Type != mcp.SchemaTypeBoolean {
				return nil, fmt.Errorf("elicitation: default only on boolean (%s)", name)
			}
			if len(v.Enum) > 0 && v.Type != mcp.SchemaTypeString {
				return nil, fmt.Errorf("elicitation: enum only on string (%s)", name)
			}

			sf, ok := fieldMap[name]
			if !ok {
				return nil, fmt.Errorf("elicitation: property %s not matched to struct field", name)
			}
			ft := sf.Type
			isPtr := false
			if ft.Kind() == reflect.Pointer {
				isPtr = true
				ft = ft.Elem()
			}

			raw, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("elicitation: field %s: %w", name, err)
			}
			var ps mcp.PrimitiveSchemaDefinition
			if err := wire.Unmarshal(raw, &ps); err != nil {
				return nil, fmt.Errorf("elicitation: field %s: %w", name, err)
			}
			if !kindMatches(ps.Type, ft.Kind()) {
				return nil, fmt.Errorf("elicitation: unsupported type mapping for field %s", name)
			}

			out.Properties[name] = ps
			_, isReq := requiredSet[name]
			isReq = isReq && !isPtr
			if isReq {
				out.Required = append(out.Required, name)
			}
			metas = append(metas, fieldMeta{Name: name, Index: sf.Index, Required: isReq, Kind: ft.Kind(), IsPointer: isPtr, Schema: ps})
		}
	}

	if len(out.Properties) == 0 {
		return nil, fmt.Errorf("elicitation: struct has no exported fields")
	}
	if err := ValidateObjectSchema(&out); err != nil {
		return nil, fmt.Errorf("elicitation: %w", err)
	}
	p := &projection{schema: out, fields: metas}
	actual, _ := projCache.LoadOrStore(t, p)
	return actual.(*projection), nil
}

// SchemaFor projects the struct type T into an elicitation schema. Fields
// without omitempty are required unless they are pointers. Nested objects,
// arrays and combinators are rejected.
func SchemaFor[T any]() (mcp.ElicitationSchema, error) {
	p, err := project(reflect.TypeFor[T]())
	if err != nil {
		return mcp.ElicitationSchema{}, err
	}
	s := p.schema
	s.Properties = maps.Clone(s.Properties)
	s.Required = slices.Clone(s.Required)
	return s, nil
}

// DecodeOption configures DecodeContent.
type DecodeOption func(*decodeConfig)

type decodeConfig struct{ strict bool }

// Strict rejects content keys that do not map to a field.
func Strict() DecodeOption {
	return func(c *decodeConfig) { c.strict = true }
}

// DecodeContent decodes accepted elicitation content into a T, enforcing the
// constraints of the projected schema. Errors are *wire.DecodeError values
// naming the offending field.
func DecodeContent[T any](content map[string]any, opts ...DecodeOption) (T, error) {
	var out T
	var cfg decodeConfig
	for _, o := range opts {
		o(&cfg)
	}
	p, err := project(reflect.TypeFor[T]())
	if err != nil {
		return out, err
	}
	if err := decodeInto(p, reflect.ValueOf(&out).Elem(), content, cfg.strict); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Decode unpacks res into a T. The boolean reports whether the user
// accepted; declined and cancelled results yield the zero T and no error.
func Decode[T any](res mcp.ElicitResult, opts ...DecodeOption) (T, bool, error) {
	var zero T
	if res.Action != mcp.ElicitActionAccept {
		return zero, false, nil
	}
	content, _ := res.Content.Get()
	v, err := DecodeContent[T](content, opts...)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// NewRequest builds an elicitation/create request whose schema is projected
// from T.
func NewRequest[T any](message string) (mcp.ElicitRequest, error) {
	s, err := SchemaFor[T]()
	if err != nil {
		return mcp.ElicitRequest{}, err
	}
	return mcp.ElicitRequest{Message: message, RequestedSchema: s}, nil
}

func decodeInto(p *projection, rv reflect.Value, m map[string]any, strict bool) error {
	fieldByName := make(map[string]fieldMeta, len(p.fields))
	for _, fm := range p.fields {
		fieldByName[fm.Name] = fm
	}

	if strict {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if _, ok := fieldByName[k]; !ok {
				return wire.ConstraintViolation(k, "unknown field")
			}
		}
	}

	for _, fm := range p.fields {
		val, ok := m[fm.Name]
		if !ok {
			if fm.Required {
				return wire.MissingField(fm.Name)
			}
			continue
		}
		if val == nil {
			if fm.Required {
				return wire.TypeMismatch(fm.Name, fm.Schema.Type, "null")
			}
			continue
		}
		fv := rv.FieldByIndex(fm.Index)
		target := fv
		if fm.IsPointer {
			if fv.IsNil() {
				fv.Set(reflect.New(fv.Type().Elem()))
			}
			target = fv.Elem()
		}
		if err := setField(fm, target, val); err != nil {
			return err
		}
	}
	return nil
}

func setField(fm fieldMeta, target reflect.Value, val any) error {
	switch fm.Kind {
	case reflect.String:
		s, ok := val.(string)
		if !ok {
			return wire.TypeMismatch(fm.Name, "string", valueKind(val))
		}
		if err := checkString(fm, s); err != nil {
			return err
		}
		target.SetString(s)
	case reflect.Bool:
		b, ok := val.(bool)
		if !ok {
			return wire.TypeMismatch(fm.Name, "boolean", valueKind(val))
		}
		target.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, err := checkNumber(fm, val, true)
		if err != nil {
			return err
		}
		if target.OverflowInt(int64(f)) {
			return wire.ConstraintViolation(fm.Name, "fits "+target.Type().String())
		}
		target.SetInt(int64(f))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f, err := checkNumber(fm, val, true)
		if err != nil {
			return err
		}
		if f < 0 {
			return wire.ConstraintViolation(fm.Name, "non-negative")
		}
		if target.OverflowUint(uint64(f)) {
			return wire.ConstraintViolation(fm.Name, "fits "+target.Type().String())
		}
		target.SetUint(uint64(f))
	case reflect.Float32, reflect.Float64:
		f, err := checkNumber(fm, val, false)
		if err != nil {
			return err
		}
		target.SetFloat(f)
	default:
		return fmt.Errorf("elicitation: unsupported field kind %s", fm.Kind)
	}
	return nil
}

func checkString(fm fieldMeta, s string) error {
	if len(fm.Schema.Enum) > 0 && !slices.Contains(fm.Schema.Enum, s) {
		return wire.ConstraintViolation(fm.Name, "one of "+strings.Join(fm.Schema.Enum, "|"))
	}
	n := int64(utf8.RuneCountInString(s))
	if lo, ok := fm.Schema.MinLength.Get(); ok && n < lo {
		return wire.ConstraintViolation(fm.Name, "minLength "+strconv.FormatInt(lo, 10))
	}
	if hi, ok := fm.Schema.MaxLength.Get(); ok && n > hi {
		return wire.ConstraintViolation(fm.Name, "maxLength "+strconv.FormatInt(hi, 10))
	}
	return nil
}

func checkNumber(fm fieldMeta, val any, integral bool) (float64, error) {
	f, ok := toFloat(val)
	if !ok {
		return 0, wire.TypeMismatch(fm.Name, "number", valueKind(val))
	}
	if integral && f != math.Trunc(f) {
		return 0, wire.ConstraintViolation(fm.Name, "integer")
	}
	if lo, ok := fm.Schema.Minimum.Get(); ok && f < lo {
		return 0, wire.ConstraintViolation(fm.Name, "minimum "+strconv.FormatFloat(lo, 'g', -1, 64))
	}
	if hi, ok := fm.Schema.Maximum.Get(); ok && f > hi {
		return 0, wire.ConstraintViolation(fm.Name, "maximum "+strconv.FormatFloat(hi, 'g', -1, 64))
	}
	return f, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int, int8, int16, int32, int64:
		return float64(reflect.ValueOf(n).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(n).Uint()), true
	case json.Number:
		f, err := n.Float64()
		if err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func valueKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	if _, ok := toFloat(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name
	}
	return name
}

func kindMatches(schemaType string, k reflect.Kind) bool {
	switch schemaType {
	case mcp.SchemaTypeString:
		return k == reflect.String
	case mcp.SchemaTypeInteger:
		return (k >= reflect.Int && k <= reflect.Int64) || (k >= reflect.Uint && k <= reflect.Uint64)
	case mcp.SchemaTypeNumber:
		return (k >= reflect.Int && k <= reflect.Int64) || (k >= reflect.Uint && k <= reflect.Uint64) || k == reflect.Float32 || k == reflect.Float64
	case mcp.SchemaTypeBoolean:
		return k == reflect.Bool
	}
	return false
}
