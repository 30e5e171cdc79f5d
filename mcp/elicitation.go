package mcp

import (
	"encoding/json"

	"github.com/ggoodman/mcp-schema-go/wire"
)

// ElicitationSchema is the restricted object schema an elicitation request
// may ask for: a flat object whose properties are primitives.
type ElicitationSchema struct {
	Type       string                               `json:"type"`
	Properties map[string]PrimitiveSchemaDefinition `json:"properties"`
	Required   []string                             `json:"required,omitzero"`
}

func (s ElicitationSchema) MarshalJSON() ([]byte, error) {
	type body ElicitationSchema
	if s.Type == "" {
		s.Type = "object"
	}
	if s.Properties == nil {
		s.Properties = map[string]PrimitiveSchemaDefinition{}
	}
	return json.Marshal(body(s))
}

func (s *ElicitationSchema) UnmarshalJSON(data []byte) error {
	return s.UnmarshalWire(data, wire.DefaultOptions())
}

func (s *ElicitationSchema) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ElicitationSchema
	wire.RequireWith(obj, "type", &out.Type, wire.Literal("object"))
	wire.RequireWith(obj, "properties", &out.Properties, wire.MapOf(wire.Decode[PrimitiveSchemaDefinition]))
	maybeWith(obj, "required", &out.Required, listOfStrings)
	if err := obj.Err(); err != nil {
		return err
	}
	*s = out
	return nil
}

// Primitive schema types.
const (
	SchemaTypeString  = "string"
	SchemaTypeNumber  = "number"
	SchemaTypeInteger = "integer"
	SchemaTypeBoolean = "boolean"
)

// PrimitiveSchemaDefinition is a leaf schema node for elicitation: a string,
// number, integer, boolean or string-enum schema. Which optional members
// apply depends on Type.
type PrimitiveSchemaDefinition struct {
	Type        string                 `json:"type"`
	Title       wire.Optional[string]  `json:"title,omitzero"`
	Description wire.Optional[string]  `json:"description,omitzero"`
	MinLength   wire.Optional[int64]   `json:"minLength,omitzero"`
	MaxLength   wire.Optional[int64]   `json:"maxLength,omitzero"`
	Format      wire.Optional[string]  `json:"format,omitzero"`
	Minimum     wire.Optional[float64] `json:"minimum,omitzero"`
	Maximum     wire.Optional[float64] `json:"maximum,omitzero"`
	Default     wire.Optional[bool]    `json:"default,omitzero"`
	Enum        []string               `json:"enum,omitzero"`
	EnumNames   []string               `json:"enumNames,omitzero"`

	// Raw is set only for a definition of unknown type admitted by
	// wire.Options.AllowUnknownVariants. It is encoded verbatim.
	Raw json.RawMessage `json:"-"`
}

func (p PrimitiveSchemaDefinition) MarshalJSON() ([]byte, error) {
	if p.Raw != nil {
		return p.Raw, nil
	}
	type body PrimitiveSchemaDefinition
	return json.Marshal(body(p))
}

var decodeStringFormat = wire.Enum("email", "uri", "date", "date-time")

func (p *PrimitiveSchemaDefinition) UnmarshalJSON(data []byte) error {
	return p.UnmarshalWire(data, wire.DefaultOptions())
}

func (p *PrimitiveSchemaDefinition) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	tag, err := wire.Tag(obj, "type")
	if err != nil {
		return err
	}
	out := PrimitiveSchemaDefinition{Type: tag}
	wire.Maybe(obj, "title", &out.Title)
	wire.Maybe(obj, "description", &out.Description)
	switch tag {
	case SchemaTypeString:
		wire.MaybeWith(obj, "minLength", &out.MinLength, wire.NonNegativeInt)
		wire.MaybeWith(obj, "maxLength", &out.MaxLength, wire.NonNegativeInt)
		wire.MaybeWith(obj, "format", &out.Format, decodeStringFormat)
		maybeWith(obj, "enum", &out.Enum, listOfStrings)
		maybeWith(obj, "enumNames", &out.EnumNames, listOfStrings)
		if out.EnumNames != nil && len(out.EnumNames) != len(out.Enum) {
			obj.Fail(wire.ConstraintViolation("enumNames", "same length as enum"))
		}
	case SchemaTypeNumber, SchemaTypeInteger:
		wire.Maybe(obj, "minimum", &out.Minimum)
		wire.Maybe(obj, "maximum", &out.Maximum)
	case SchemaTypeBoolean:
		wire.Maybe(obj, "default", &out.Default)
	default:
		if !opts.AllowUnknownVariants {
			return wire.UnknownVariant("type", tag)
		}
		out.Raw = append(json.RawMessage(nil), data...)
	}
	if err := obj.Err(); err != nil {
		return err
	}
	*p = out
	return nil
}

// ElicitRequest asks the user for structured input.
type ElicitRequest struct {
	Message         string            `json:"message"`
	RequestedSchema ElicitationSchema `json:"requestedSchema"`
	Meta            RequestMeta       `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r ElicitRequest) MarshalJSON() ([]byte, error) {
	type body ElicitRequest
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *ElicitRequest) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ElicitRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ElicitRequest
	wire.Require(obj, "message", &out.Message)
	wire.Require(obj, "requestedSchema", &out.RequestedSchema)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// ElicitAction is the user's response to an elicitation.
type ElicitAction string

const (
	ElicitActionAccept  ElicitAction = "accept"
	ElicitActionDecline ElicitAction = "decline"
	ElicitActionCancel  ElicitAction = "cancel"
)

var decodeElicitAction = wire.Enum(ElicitActionAccept, ElicitActionDecline, ElicitActionCancel)

func (a *ElicitAction) UnmarshalJSON(data []byte) error {
	return a.UnmarshalWire(data, wire.DefaultOptions())
}

func (a *ElicitAction) UnmarshalWire(data []byte, opts wire.Options) error {
	v, err := decodeElicitAction(data, opts)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ElicitResult carries the user's action and, on accept, the submitted
// values. Content values are strings, numbers or booleans.
type ElicitResult struct {
	Action  ElicitAction                  `json:"action"`
	Content wire.Optional[map[string]any] `json:"content,omitzero"`
	Meta    Meta                          `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

// NewElicitResult returns a result for action. Content is attached only when
// non-nil.
func NewElicitResult(action ElicitAction, content map[string]any) ElicitResult {
	r := ElicitResult{Action: action}
	if content != nil {
		r.Content = wire.Some(content)
	}
	return r
}

// Accept returns an accept result carrying content.
func Accept(content map[string]any) ElicitResult {
	if content == nil {
		content = map[string]any{}
	}
	return NewElicitResult(ElicitActionAccept, content)
}

// Decline returns a decline result.
func Decline() ElicitResult { return NewElicitResult(ElicitActionDecline, nil) }

// Cancel returns a cancel result.
func Cancel() ElicitResult { return NewElicitResult(ElicitActionCancel, nil) }

func (r ElicitResult) MarshalJSON() ([]byte, error) {
	type body ElicitResult
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *ElicitResult) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

// UnmarshalWire requires content on accept and forbids it on decline and
// cancel.
func (r *ElicitResult) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ElicitResult
	wire.Require(obj, "action", &out.Action)
	wire.MaybeWith(obj, "content", &out.Content, wire.MapOf(decodePrimitiveValue))
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	switch out.Action {
	case ElicitActionAccept:
		if !out.Content.Set {
			return wire.MissingField("content")
		}
	case ElicitActionDecline, ElicitActionCancel:
		if out.Content.Set {
			return wire.ConstraintViolation("content", "only with action accept")
		}
	}
	*r = out
	return nil
}

func decodePrimitiveValue(data []byte, opts wire.Options) (any, error) {
	var (
		v   any
		err error
	)
	switch kind := wire.KindOf(data); kind {
	case "string":
		v, err = wire.Decode[string](data, opts)
	case "number":
		v, err = wire.Decode[float64](data, opts)
	case "boolean":
		v, err = wire.Decode[bool](data, opts)
	default:
		return nil, wire.TypeMismatch("", "string, number or boolean", kind)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
