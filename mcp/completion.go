package mcp

import (
	"encoding/json"

	"github.com/ggoodman/mcp-schema-go/wire"
)

// Reference discriminators.
const (
	RefTypePrompt   = "ref/prompt"
	RefTypeResource = "ref/resource"
)

// MaxCompletionValues caps Completion.Values.
const MaxCompletionValues = 100

// Reference identifies what a completion request completes: a
// PromptReference, a ResourceTemplateReference, or an UnrecognizedReference
// admitted by policy.
type Reference interface {
	RefType() string
	isReference()
}

// PromptReference identifies a prompt.
type PromptReference struct {
	Name  string                `json:"name"`
	Title wire.Optional[string] `json:"title,omitzero"`
}

func (PromptReference) RefType() string { return RefTypePrompt }
func (PromptReference) isReference()    {}

func (r PromptReference) MarshalJSON() ([]byte, error) {
	type body PromptReference
	return json.Marshal(struct {
		Type string `json:"type"`
		body
	}{RefTypePrompt, body(r)})
}

func (r *PromptReference) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *PromptReference) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := readVariant(data, opts, RefTypePrompt)
	if err != nil {
		return err
	}
	var out PromptReference
	wire.Require(obj, "name", &out.Name)
	wire.Maybe(obj, "title", &out.Title)
	if err := obj.Err(); err != nil {
		return err
	}
	*r = out
	return nil
}

// ResourceTemplateReference identifies a resource or resource template URI.
type ResourceTemplateReference struct {
	URI string `json:"uri"`
}

func (ResourceTemplateReference) RefType() string { return RefTypeResource }
func (ResourceTemplateReference) isReference()    {}

func (r ResourceTemplateReference) MarshalJSON() ([]byte, error) {
	type body ResourceTemplateReference
	return json.Marshal(struct {
		Type string `json:"type"`
		body
	}{RefTypeResource, body(r)})
}

func (r *ResourceTemplateReference) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ResourceTemplateReference) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := readVariant(data, opts, RefTypeResource)
	if err != nil {
		return err
	}
	var out ResourceTemplateReference
	wire.Require(obj, "uri", &out.URI)
	if err := obj.Err(); err != nil {
		return err
	}
	*r = out
	return nil
}

// UnrecognizedReference preserves a reference with an unknown discriminator.
type UnrecognizedReference struct {
	Type string
	Raw  json.RawMessage
}

func (r UnrecognizedReference) RefType() string { return r.Type }
func (UnrecognizedReference) isReference()      {}

func (r UnrecognizedReference) MarshalJSON() ([]byte, error) {
	return r.Raw, nil
}

// DecodeReference decodes any Reference variant.
func DecodeReference(data []byte, opts wire.Options) (Reference, error) {
	tag, err := readTag(data, opts)
	if err != nil {
		return nil, err
	}
	switch tag {
	case RefTypePrompt:
		var r PromptReference
		if err := r.UnmarshalWire(data, opts); err != nil {
			return nil, err
		}
		return r, nil
	case RefTypeResource:
		var r ResourceTemplateReference
		if err := r.UnmarshalWire(data, opts); err != nil {
			return nil, err
		}
		return r, nil
	}
	if opts.AllowUnknownVariants {
		return UnrecognizedReference{Type: tag, Raw: append(json.RawMessage(nil), data...)}, nil
	}
	return nil, wire.UnknownVariant("type", tag)
}

// CompleteArgument is the argument being completed.
type CompleteArgument struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (a *CompleteArgument) UnmarshalJSON(data []byte) error {
	return a.UnmarshalWire(data, wire.DefaultOptions())
}

func (a *CompleteArgument) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out CompleteArgument
	wire.Require(obj, "name", &out.Name)
	wire.Require(obj, "value", &out.Value)
	if err := obj.Err(); err != nil {
		return err
	}
	*a = out
	return nil
}

// CompleteContext carries previously resolved argument values.
type CompleteContext struct {
	Arguments map[string]string `json:"arguments,omitzero"`
}

func (c *CompleteContext) UnmarshalJSON(data []byte) error {
	return c.UnmarshalWire(data, wire.DefaultOptions())
}

func (c *CompleteContext) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out CompleteContext
	maybeWith(obj, "arguments", &out.Arguments, wire.MapOf(wire.Decode[string]))
	if err := obj.Err(); err != nil {
		return err
	}
	*c = out
	return nil
}

// CompleteRequest requests completion suggestions for an argument.
type CompleteRequest struct {
	Ref      Reference                      `json:"ref"`
	Argument CompleteArgument               `json:"argument"`
	Context  wire.Optional[CompleteContext] `json:"context,omitzero"`
	Meta     RequestMeta                    `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r CompleteRequest) MarshalJSON() ([]byte, error) {
	type body CompleteRequest
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *CompleteRequest) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *CompleteRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out CompleteRequest
	wire.RequireWith(obj, "ref", &out.Ref, DecodeReference)
	wire.Require(obj, "argument", &out.Argument)
	wire.Maybe(obj, "context", &out.Context)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// Completion holds suggested values.
type Completion struct {
	Values  []string             `json:"values"`
	Total   wire.Optional[int64] `json:"total,omitzero"`
	HasMore wire.Optional[bool]  `json:"hasMore,omitzero"`
}

func (c Completion) MarshalJSON() ([]byte, error) {
	type body Completion
	c.Values = nonNil(c.Values)
	return json.Marshal(body(c))
}

func (c *Completion) UnmarshalJSON(data []byte) error {
	return c.UnmarshalWire(data, wire.DefaultOptions())
}

func (c *Completion) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out Completion
	wire.RequireWith(obj, "values", &out.Values, decodeCompletionValues)
	wire.MaybeWith(obj, "total", &out.Total, wire.NonNegativeInt)
	wire.Maybe(obj, "hasMore", &out.HasMore)
	if err := obj.Err(); err != nil {
		return err
	}
	*c = out
	return nil
}

var listOfStrings = wire.ListOf(wire.Decode[string])

func decodeCompletionValues(data []byte, opts wire.Options) ([]string, error) {
	vs, err := listOfStrings(data, opts)
	if err != nil {
		return nil, err
	}
	if len(vs) > MaxCompletionValues {
		return nil, wire.ConstraintViolation("", "at most 100 items")
	}
	return vs, nil
}

// CompleteResult contains completion suggestions.
type CompleteResult struct {
	Completion Completion `json:"completion"`
	Meta       Meta       `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r CompleteResult) MarshalJSON() ([]byte, error) {
	type body CompleteResult
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *CompleteResult) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *CompleteResult) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out CompleteResult
	wire.Require(obj, "completion", &out.Completion)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}
