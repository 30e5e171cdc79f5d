package mcp

import (
	"encoding/json"

	"github.com/ggoodman/mcp-schema-go/wire"
)

// Resource represents an addressable resource.
type Resource struct {
	URI         string                     `json:"uri"`
	Name        string                     `json:"name"`
	Title       wire.Optional[string]      `json:"title,omitzero"`
	Description wire.Optional[string]      `json:"description,omitzero"`
	MimeType    wire.Optional[string]      `json:"mimeType,omitzero"`
	Size        wire.Optional[int64]       `json:"size,omitzero"`
	Annotations wire.Optional[Annotations] `json:"annotations,omitzero"`
	Meta        Meta                       `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r Resource) MarshalJSON() ([]byte, error) {
	type body Resource
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *Resource) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *Resource) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out Resource
	readResource(obj, &out)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// readResource is shared by Resource and ResourceLink, which have the same
// members.
func readResource(obj *wire.Object, out *Resource) {
	wire.Require(obj, "uri", &out.URI)
	wire.Require(obj, "name", &out.Name)
	wire.Maybe(obj, "title", &out.Title)
	wire.Maybe(obj, "description", &out.Description)
	wire.MaybeWith(obj, "mimeType", &out.MimeType, decodeMIMEType)
	wire.MaybeWith(obj, "size", &out.Size, wire.NonNegativeInt)
	wire.Maybe(obj, "annotations", &out.Annotations)
	maybe(obj, "_meta", &out.Meta)
}

// ResourceTemplate describes a template for resource URIs.
type ResourceTemplate struct {
	URITemplate string                     `json:"uriTemplate"`
	Name        string                     `json:"name"`
	Title       wire.Optional[string]      `json:"title,omitzero"`
	Description wire.Optional[string]      `json:"description,omitzero"`
	MimeType    wire.Optional[string]      `json:"mimeType,omitzero"`
	Annotations wire.Optional[Annotations] `json:"annotations,omitzero"`
	Meta        Meta                       `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (t ResourceTemplate) MarshalJSON() ([]byte, error) {
	type body ResourceTemplate
	return wire.MarshalExtra(body(t), t.Extra)
}

func (t *ResourceTemplate) UnmarshalJSON(data []byte) error {
	return t.UnmarshalWire(data, wire.DefaultOptions())
}

func (t *ResourceTemplate) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ResourceTemplate
	wire.Require(obj, "uriTemplate", &out.URITemplate)
	wire.Require(obj, "name", &out.Name)
	wire.Maybe(obj, "title", &out.Title)
	wire.Maybe(obj, "description", &out.Description)
	wire.MaybeWith(obj, "mimeType", &out.MimeType, decodeMIMEType)
	wire.Maybe(obj, "annotations", &out.Annotations)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*t = out
	return nil
}

// ListResourcesRequest requests a paginated list of resources.
type ListResourcesRequest struct {
	Cursor wire.Optional[Cursor] `json:"cursor,omitzero"`
	Meta   RequestMeta           `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r ListResourcesRequest) MarshalJSON() ([]byte, error) {
	type body ListResourcesRequest
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *ListResourcesRequest) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ListResourcesRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	var p paginatedRequest
	if err := p.UnmarshalWire(data, opts); err != nil {
		return err
	}
	*r = ListResourcesRequest(p)
	return nil
}

// ListResourcesResult returns a page of resources.
type ListResourcesResult struct {
	Resources  []Resource            `json:"resources"`
	NextCursor wire.Optional[Cursor] `json:"nextCursor,omitzero"`
	Meta       Meta                  `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r ListResourcesResult) MarshalJSON() ([]byte, error) {
	type body ListResourcesResult
	r.Resources = nonNil(r.Resources)
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *ListResourcesResult) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ListResourcesResult) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ListResourcesResult
	wire.RequireWith(obj, "resources", &out.Resources, wire.ListOf(wire.Decode[Resource]))
	wire.Maybe(obj, "nextCursor", &out.NextCursor)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// ListResourceTemplatesRequest requests resource templates.
type ListResourceTemplatesRequest struct {
	Cursor wire.Optional[Cursor] `json:"cursor,omitzero"`
	Meta   RequestMeta           `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r ListResourceTemplatesRequest) MarshalJSON() ([]byte, error) {
	type body ListResourceTemplatesRequest
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *ListResourceTemplatesRequest) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ListResourceTemplatesRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	var p paginatedRequest
	if err := p.UnmarshalWire(data, opts); err != nil {
		return err
	}
	*r = ListResourceTemplatesRequest(p)
	return nil
}

// ListResourceTemplatesResult returns resource templates.
type ListResourceTemplatesResult struct {
	ResourceTemplates []ResourceTemplate    `json:"resourceTemplates"`
	NextCursor        wire.Optional[Cursor] `json:"nextCursor,omitzero"`
	Meta              Meta                  `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r ListResourceTemplatesResult) MarshalJSON() ([]byte, error) {
	type body ListResourceTemplatesResult
	r.ResourceTemplates = nonNil(r.ResourceTemplates)
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *ListResourceTemplatesResult) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ListResourceTemplatesResult) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ListResourceTemplatesResult
	wire.RequireWith(obj, "resourceTemplates", &out.ResourceTemplates, wire.ListOf(wire.Decode[ResourceTemplate]))
	wire.Maybe(obj, "nextCursor", &out.NextCursor)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// ResourceURIRequest is the params shape shared by resources/read,
// resources/subscribe and resources/unsubscribe.
type ResourceURIRequest struct {
	URI  string      `json:"uri"`
	Meta RequestMeta `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r ResourceURIRequest) MarshalJSON() ([]byte, error) {
	type body ResourceURIRequest
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *ResourceURIRequest) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ResourceURIRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ResourceURIRequest
	wire.Require(obj, "uri", &out.URI)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// ReadResourceRequest requests the contents of a resource by URI.
type ReadResourceRequest = ResourceURIRequest

// SubscribeRequest subscribes to updates for the given URI.
type SubscribeRequest = ResourceURIRequest

// UnsubscribeRequest ends a subscription for the given URI.
type UnsubscribeRequest = ResourceURIRequest

// ReadResourceResult returns resource contents.
type ReadResourceResult struct {
	Contents []ResourceContents `json:"contents"`
	Meta     Meta               `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r ReadResourceResult) MarshalJSON() ([]byte, error) {
	type body ReadResourceResult
	r.Contents = nonNil(r.Contents)
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *ReadResourceResult) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ReadResourceResult) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ReadResourceResult
	wire.RequireWith(obj, "contents", &out.Contents, wire.ListOf(DecodeResourceContents))
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// ResourceUpdatedNotification indicates a resource's content changed.
type ResourceUpdatedNotification struct {
	URI  string `json:"uri"`
	Meta Meta   `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (n ResourceUpdatedNotification) MarshalJSON() ([]byte, error) {
	type body ResourceUpdatedNotification
	return wire.MarshalExtra(body(n), n.Extra)
}

func (n *ResourceUpdatedNotification) UnmarshalJSON(data []byte) error {
	return n.UnmarshalWire(data, wire.DefaultOptions())
}

func (n *ResourceUpdatedNotification) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ResourceUpdatedNotification
	wire.Require(obj, "uri", &out.URI)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*n = out
	return nil
}
