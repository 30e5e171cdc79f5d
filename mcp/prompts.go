package mcp

import (
	"encoding/json"

	"github.com/ggoodman/mcp-schema-go/wire"
)

// Prompt describes a named prompt the server can provide.
type Prompt struct {
	Name        string                `json:"name"`
	Title       wire.Optional[string] `json:"title,omitzero"`
	Description wire.Optional[string] `json:"description,omitzero"`
	Arguments   []PromptArgument      `json:"arguments,omitzero"`
	Meta        Meta                  `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (p Prompt) MarshalJSON() ([]byte, error) {
	type body Prompt
	return wire.MarshalExtra(body(p), p.Extra)
}

func (p *Prompt) UnmarshalJSON(data []byte) error {
	return p.UnmarshalWire(data, wire.DefaultOptions())
}

func (p *Prompt) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out Prompt
	wire.Require(obj, "name", &out.Name)
	wire.Maybe(obj, "title", &out.Title)
	wire.Maybe(obj, "description", &out.Description)
	maybeWith(obj, "arguments", &out.Arguments, wire.ListOf(wire.Decode[PromptArgument]))
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*p = out
	return nil
}

// PromptArgument describes a single prompt argument.
type PromptArgument struct {
	Name        string                `json:"name"`
	Title       wire.Optional[string] `json:"title,omitzero"`
	Description wire.Optional[string] `json:"description,omitzero"`
	Required    wire.Optional[bool]   `json:"required,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (a PromptArgument) MarshalJSON() ([]byte, error) {
	type body PromptArgument
	return wire.MarshalExtra(body(a), a.Extra)
}

func (a *PromptArgument) UnmarshalJSON(data []byte) error {
	return a.UnmarshalWire(data, wire.DefaultOptions())
}

func (a *PromptArgument) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out PromptArgument
	wire.Require(obj, "name", &out.Name)
	wire.Maybe(obj, "title", &out.Title)
	wire.Maybe(obj, "description", &out.Description)
	wire.Maybe(obj, "required", &out.Required)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*a = out
	return nil
}

// PromptMessage is a message used in a prompt. Unlike SamplingMessage it may
// carry any content block, including resources.
type PromptMessage struct {
	Role    Role         `json:"role"`
	Content ContentBlock `json:"content"`
}

func (m *PromptMessage) UnmarshalJSON(data []byte) error {
	return m.UnmarshalWire(data, wire.DefaultOptions())
}

func (m *PromptMessage) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out PromptMessage
	wire.Require(obj, "role", &out.Role)
	wire.RequireWith(obj, "content", &out.Content, DecodeContentBlock)
	if err := obj.Err(); err != nil {
		return err
	}
	*m = out
	return nil
}

// ListPromptsRequest requests available prompts.
type ListPromptsRequest struct {
	Cursor wire.Optional[Cursor] `json:"cursor,omitzero"`
	Meta   RequestMeta           `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r ListPromptsRequest) MarshalJSON() ([]byte, error) {
	type body ListPromptsRequest
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *ListPromptsRequest) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ListPromptsRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	var p paginatedRequest
	if err := p.UnmarshalWire(data, opts); err != nil {
		return err
	}
	*r = ListPromptsRequest(p)
	return nil
}

// ListPromptsResult returns available prompts.
type ListPromptsResult struct {
	Prompts    []Prompt              `json:"prompts"`
	NextCursor wire.Optional[Cursor] `json:"nextCursor,omitzero"`
	Meta       Meta                  `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r ListPromptsResult) MarshalJSON() ([]byte, error) {
	type body ListPromptsResult
	r.Prompts = nonNil(r.Prompts)
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *ListPromptsResult) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ListPromptsResult) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ListPromptsResult
	wire.RequireWith(obj, "prompts", &out.Prompts, wire.ListOf(wire.Decode[Prompt]))
	wire.Maybe(obj, "nextCursor", &out.NextCursor)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// GetPromptRequest requests a prompt by name, with template arguments.
type GetPromptRequest struct {
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments,omitzero"`
	Meta      RequestMeta       `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r GetPromptRequest) MarshalJSON() ([]byte, error) {
	type body GetPromptRequest
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *GetPromptRequest) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *GetPromptRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out GetPromptRequest
	wire.Require(obj, "name", &out.Name)
	maybeWith(obj, "arguments", &out.Arguments, wire.MapOf(wire.Decode[string]))
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// GetPromptResult returns a prompt's messages.
type GetPromptResult struct {
	Description wire.Optional[string] `json:"description,omitzero"`
	Messages    []PromptMessage       `json:"messages"`
	Meta        Meta                  `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r GetPromptResult) MarshalJSON() ([]byte, error) {
	type body GetPromptResult
	r.Messages = nonNil(r.Messages)
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *GetPromptResult) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *GetPromptResult) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out GetPromptResult
	wire.Maybe(obj, "description", &out.Description)
	wire.RequireWith(obj, "messages", &out.Messages, wire.ListOf(wire.Decode[PromptMessage]))
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}
