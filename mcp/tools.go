package mcp

import (
	"encoding/json"

	"github.com/ggoodman/mcp-schema-go/wire"
)

// Schema is a JSON Schema document describing an object shape. It is carried
// opaquely; decoding only checks that it is an object whose "type" is
// "object".
type Schema map[string]any

// ObjectSchema returns the minimal schema {"type":"object"}.
func ObjectSchema() Schema {
	return Schema{"type": "object"}
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	return s.UnmarshalWire(data, wire.DefaultOptions())
}

func (s *Schema) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var typ string
	wire.RequireWith(obj, "type", &typ, wire.Literal("object"))
	if err := obj.Err(); err != nil {
		return err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return wire.At("", err)
	}
	*s = m
	return nil
}

// Tool describes a callable tool and its input schema.
type Tool struct {
	Name         string                         `json:"name"`
	Title        wire.Optional[string]          `json:"title,omitzero"`
	Description  wire.Optional[string]          `json:"description,omitzero"`
	InputSchema  Schema                         `json:"inputSchema"`
	OutputSchema wire.Optional[Schema]          `json:"outputSchema,omitzero"`
	Annotations  wire.Optional[ToolAnnotations] `json:"annotations,omitzero"`
	Meta         Meta                           `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

// ToolOption populates an optional Tool field.
type ToolOption func(*Tool)

// WithTitle sets the human-readable title.
func WithTitle(title string) ToolOption {
	return func(t *Tool) { t.Title = wire.Some(title) }
}

// WithDescription sets the description.
func WithDescription(description string) ToolOption {
	return func(t *Tool) { t.Description = wire.Some(description) }
}

// WithOutputSchema declares the shape of CallToolResult.StructuredContent.
func WithOutputSchema(schema Schema) ToolOption {
	return func(t *Tool) { t.OutputSchema = wire.Some(schema) }
}

// WithAnnotations attaches behavioral hints.
func WithAnnotations(a ToolAnnotations) ToolOption {
	return func(t *Tool) { t.Annotations = wire.Some(a) }
}

// WithToolMeta attaches _meta.
func WithToolMeta(meta Meta) ToolOption {
	return func(t *Tool) { t.Meta = meta }
}

// NewTool returns a tool descriptor. A nil inputSchema is replaced by
// ObjectSchema so the result always encodes.
func NewTool(name string, inputSchema Schema, opts ...ToolOption) Tool {
	if inputSchema == nil {
		inputSchema = ObjectSchema()
	}
	t := Tool{Name: name, InputSchema: inputSchema}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func (t Tool) MarshalJSON() ([]byte, error) {
	type body Tool
	return wire.MarshalExtra(body(t), t.Extra)
}

func (t *Tool) UnmarshalJSON(data []byte) error {
	return t.UnmarshalWire(data, wire.DefaultOptions())
}

func (t *Tool) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out Tool
	wire.Require(obj, "name", &out.Name)
	wire.Maybe(obj, "title", &out.Title)
	wire.Maybe(obj, "description", &out.Description)
	wire.Require(obj, "inputSchema", &out.InputSchema)
	wire.Maybe(obj, "outputSchema", &out.OutputSchema)
	wire.Maybe(obj, "annotations", &out.Annotations)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*t = out
	return nil
}

// ToolAnnotations are hints about tool behavior. Clients must not rely on
// them for security decisions.
type ToolAnnotations struct {
	Title           wire.Optional[string] `json:"title,omitzero"`
	ReadOnlyHint    wire.Optional[bool]   `json:"readOnlyHint,omitzero"`
	DestructiveHint wire.Optional[bool]   `json:"destructiveHint,omitzero"`
	IdempotentHint  wire.Optional[bool]   `json:"idempotentHint,omitzero"`
	OpenWorldHint   wire.Optional[bool]   `json:"openWorldHint,omitzero"`
}

// AnnotationOption populates one hint.
type AnnotationOption func(*ToolAnnotations)

func AnnotationTitle(title string) AnnotationOption {
	return func(a *ToolAnnotations) { a.Title = wire.Some(title) }
}

func ReadOnly(v bool) AnnotationOption {
	return func(a *ToolAnnotations) { a.ReadOnlyHint = wire.Some(v) }
}

func Destructive(v bool) AnnotationOption {
	return func(a *ToolAnnotations) { a.DestructiveHint = wire.Some(v) }
}

func Idempotent(v bool) AnnotationOption {
	return func(a *ToolAnnotations) { a.IdempotentHint = wire.Some(v) }
}

func OpenWorld(v bool) AnnotationOption {
	return func(a *ToolAnnotations) { a.OpenWorldHint = wire.Some(v) }
}

// NewToolAnnotations returns annotations with exactly the given hints present.
func NewToolAnnotations(opts ...AnnotationOption) ToolAnnotations {
	var a ToolAnnotations
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func (a *ToolAnnotations) UnmarshalJSON(data []byte) error {
	return a.UnmarshalWire(data, wire.DefaultOptions())
}

func (a *ToolAnnotations) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ToolAnnotations
	wire.Maybe(obj, "title", &out.Title)
	wire.Maybe(obj, "readOnlyHint", &out.ReadOnlyHint)
	wire.Maybe(obj, "destructiveHint", &out.DestructiveHint)
	wire.Maybe(obj, "idempotentHint", &out.IdempotentHint)
	wire.Maybe(obj, "openWorldHint", &out.OpenWorldHint)
	if err := obj.Err(); err != nil {
		return err
	}
	*a = out
	return nil
}

// ListToolsRequest requests the set of available tools.
type ListToolsRequest struct {
	Cursor wire.Optional[Cursor] `json:"cursor,omitzero"`
	Meta   RequestMeta           `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r ListToolsRequest) MarshalJSON() ([]byte, error) {
	type body ListToolsRequest
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *ListToolsRequest) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ListToolsRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	var p paginatedRequest
	if err := p.UnmarshalWire(data, opts); err != nil {
		return err
	}
	*r = ListToolsRequest(p)
	return nil
}

// ListToolsResult returns the available tools.
type ListToolsResult struct {
	Tools      []Tool                `json:"tools"`
	NextCursor wire.Optional[Cursor] `json:"nextCursor,omitzero"`
	Meta       Meta                  `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r ListToolsResult) MarshalJSON() ([]byte, error) {
	type body ListToolsResult
	r.Tools = nonNil(r.Tools)
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *ListToolsResult) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ListToolsResult) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ListToolsResult
	wire.RequireWith(obj, "tools", &out.Tools, wire.ListOf(wire.Decode[Tool]))
	wire.Maybe(obj, "nextCursor", &out.NextCursor)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// CallToolRequest invokes a tool by name.
type CallToolRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitzero"`
	Meta      RequestMeta    `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r CallToolRequest) MarshalJSON() ([]byte, error) {
	type body CallToolRequest
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *CallToolRequest) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *CallToolRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out CallToolRequest
	wire.Require(obj, "name", &out.Name)
	maybe(obj, "arguments", &out.Arguments)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// CallToolResult represents a tool invocation result.
type CallToolResult struct {
	Content []ContentBlock `json:"content"`
	// StructuredContent conforms to the tool's OutputSchema when one is
	// declared.
	StructuredContent wire.Optional[map[string]any] `json:"structuredContent,omitzero"`
	IsError           wire.Optional[bool]           `json:"isError,omitzero"`
	Meta              Meta                          `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

// ResultOption populates an optional CallToolResult field.
type ResultOption func(*CallToolResult)

// WithStructuredContent attaches the machine-readable payload.
func WithStructuredContent(v map[string]any) ResultOption {
	return func(r *CallToolResult) { r.StructuredContent = wire.Some(v) }
}

// WithIsError sets the error flag explicitly, including to false.
func WithIsError(v bool) ResultOption {
	return func(r *CallToolResult) { r.IsError = wire.Some(v) }
}

// WithResultMeta attaches _meta.
func WithResultMeta(meta Meta) ResultOption {
	return func(r *CallToolResult) { r.Meta = meta }
}

// NewCallToolResult returns a result carrying content.
func NewCallToolResult(content []ContentBlock, opts ...ResultOption) CallToolResult {
	r := CallToolResult{Content: nonNil(content)}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// NewToolError returns an error result with a single text block.
func NewToolError(message string) CallToolResult {
	return NewCallToolResult([]ContentBlock{NewTextContent(message)}, WithIsError(true))
}

func (r CallToolResult) MarshalJSON() ([]byte, error) {
	type body CallToolResult
	r.Content = nonNil(r.Content)
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *CallToolResult) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *CallToolResult) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out CallToolResult
	wire.RequireWith(obj, "content", &out.Content, wire.ListOf(DecodeContentBlock))
	wire.Maybe(obj, "structuredContent", &out.StructuredContent)
	wire.Maybe(obj, "isError", &out.IsError)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// paginatedRequest is the shared shape of every list request.
type paginatedRequest struct {
	Cursor wire.Optional[Cursor] `json:"cursor,omitzero"`
	Meta   RequestMeta           `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (p *paginatedRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out paginatedRequest
	wire.Maybe(obj, "cursor", &out.Cursor)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*p = out
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
