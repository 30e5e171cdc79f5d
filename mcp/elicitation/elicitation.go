// Package elicitation builds and consumes the restricted object schemas used
// by elicitation/create. ObjectSchema assembles a schema from parts; SchemaFor
// and DecodeContent project a Go struct into a schema and decode accepted
// content back into it.
package elicitation

import (
	"errors"
	"fmt"

	"github.com/ggoodman/mcp-schema-go/mcp"
	"github.com/ggoodman/mcp-schema-go/wire"
)

// ObjectPart applies a transformation to an ElicitationSchema under construction.
type ObjectPart interface{ apply(*mcp.ElicitationSchema) }

type partFn func(*mcp.ElicitationSchema)

func (f partFn) apply(s *mcp.ElicitationSchema) { f(s) }

// ObjectSchema builds an object-shaped ElicitationSchema from parts.
func ObjectSchema(parts ...ObjectPart) mcp.ElicitationSchema {
	s := mcp.ElicitationSchema{
		Type:       "object",
		Properties: make(map[string]mcp.PrimitiveSchemaDefinition),
	}
	for _, p := range parts {
		p.apply(&s)
	}
	return s
}

func describe(ps *mcp.PrimitiveSchemaDefinition, description string) {
	if description != "" {
		ps.Description = wire.Some(description)
	}
}

// PropString adds a string property.
func PropString(name, description string, opts ...StringOpt) ObjectPart {
	ps := mcp.PrimitiveSchemaDefinition{Type: mcp.SchemaTypeString}
	describe(&ps, description)
	for _, o := range opts {
		o(&ps)
	}
	return partFn(func(s *mcp.ElicitationSchema) { s.Properties[name] = ps })
}

// PropNumber adds a number property.
func PropNumber(name, description string, opts ...NumberOpt) ObjectPart {
	return propNumeric(mcp.SchemaTypeNumber, name, description, opts)
}

// PropInteger adds an integer property.
func PropInteger(name, description string, opts ...NumberOpt) ObjectPart {
	return propNumeric(mcp.SchemaTypeInteger, name, description, opts)
}

func propNumeric(typ, name, description string, opts []NumberOpt) ObjectPart {
	ps := mcp.PrimitiveSchemaDefinition{Type: typ}
	describe(&ps, description)
	for _, o := range opts {
		o(&ps)
	}
	return partFn(func(s *mcp.ElicitationSchema) { s.Properties[name] = ps })
}

// PropBoolean adds a boolean property with an optional default.
func PropBoolean(name, description string, def ...bool) ObjectPart {
	ps := mcp.PrimitiveSchemaDefinition{Type: mcp.SchemaTypeBoolean}
	describe(&ps, description)
	if len(def) > 0 {
		ps.Default = wire.Some(def[0])
	}
	return partFn(func(s *mcp.ElicitationSchema) { s.Properties[name] = ps })
}

// PropEnum convenience for a string enum.
func PropEnum(name, description string, values ...string) ObjectPart {
	return PropString(name, description, WithEnum(values...))
}

// Required marks properties required.
func Required(names ...string) ObjectPart {
	return partFn(func(s *mcp.ElicitationSchema) { s.Required = append(s.Required, names...) })
}

// StringOpt configures a string property.
type StringOpt func(*mcp.PrimitiveSchemaDefinition)

// WithEnum restricts a string property to values.
func WithEnum(values ...string) StringOpt {
	return func(p *mcp.PrimitiveSchemaDefinition) { p.Enum = append([]string(nil), values...) }
}

// WithEnumNames attaches display names to the enum values, position by position.
func WithEnumNames(names ...string) StringOpt {
	return func(p *mcp.PrimitiveSchemaDefinition) { p.EnumNames = append([]string(nil), names...) }
}

// WithFormat sets the string format: email, uri, date or date-time.
func WithFormat(format string) StringOpt {
	return func(p *mcp.PrimitiveSchemaDefinition) { p.Format = wire.Some(format) }
}

// WithLength bounds the string length.
func WithLength(minLen, maxLen int64) StringOpt {
	return func(p *mcp.PrimitiveSchemaDefinition) {
		p.MinLength = wire.Some(minLen)
		p.MaxLength = wire.Some(maxLen)
	}
}

// NumberOpt configures a number or integer property.
type NumberOpt func(*mcp.PrimitiveSchemaDefinition)

func WithMinimum(v float64) NumberOpt {
	return func(p *mcp.PrimitiveSchemaDefinition) { p.Minimum = wire.Some(v) }
}
func WithMaximum(v float64) NumberOpt {
	return func(p *mcp.PrimitiveSchemaDefinition) { p.Maximum = wire.Some(v) }
}

// ValidateObjectSchema validates an object ElicitationSchema produced by
// ObjectSchema.
//
// NOTE: This mutates the provided schema in-place by de-duplicating the Required
// slice while preserving the order of first occurrence.
func ValidateObjectSchema(s *mcp.ElicitationSchema) error {
	if s == nil {
		return errors.New("nil schema")
	}
	if s.Type != "object" {
		return errors.New("schema type must be object")
	}
	if len(s.Properties) == 0 {
		return errors.New("object schema requires at least one property")
	}
	seenReq := map[string]bool{}
	var dedupReq []string
	for _, name := range s.Required {
		if _, ok := s.Properties[name]; !ok {
			return errors.New("required property missing: " + name)
		}
		if !seenReq[name] {
			seenReq[name] = true
			dedupReq = append(dedupReq, name)
		}
	}
	s.Required = dedupReq
	for name, prop := range s.Properties {
		if err := validateProperty(prop); err != nil {
			return fmt.Errorf("property %s: %w", name, err)
		}
	}
	return nil
}

func validateProperty(p mcp.PrimitiveSchemaDefinition) error {
	switch p.Type {
	case mcp.SchemaTypeString, mcp.SchemaTypeNumber, mcp.SchemaTypeInteger, mcp.SchemaTypeBoolean:
	case "":
		return errors.New("missing type")
	default:
		return fmt.Errorf("unsupported type %q", p.Type)
	}
	lo, hasLo := p.Minimum.Get()
	hi, hasHi := p.Maximum.Get()
	if hasLo && hasHi && lo > hi {
		return errors.New("minimum greater than maximum")
	}
	minLen, hasMinLen := p.MinLength.Get()
	maxLen, hasMaxLen := p.MaxLength.Get()
	if (hasMinLen && minLen < 0) || (hasMaxLen && maxLen < 0) {
		return errors.New("negative length bound")
	}
	if hasMinLen && hasMaxLen && minLen > maxLen {
		return errors.New("minLength greater than maxLength")
	}
	if len(p.Enum) > 0 && p.Type != mcp.SchemaTypeString {
		return errors.New("enum only on string")
	}
	uniq := make(map[string]struct{}, len(p.Enum))
	for _, v := range p.Enum {
		uniq[v] = struct{}{}
	}
	if len(uniq) != len(p.Enum) {
		return errors.New("duplicate enum values")
	}
	if p.EnumNames != nil && len(p.EnumNames) != len(p.Enum) {
		return errors.New("enumNames length differs from enum")
	}
	return nil
}
