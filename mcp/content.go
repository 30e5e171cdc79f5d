package mcp

import (
	"encoding/base64"
	"encoding/json"

	"github.com/ggoodman/mcp-schema-go/wire"
)

// Content block discriminators.
const (
	ContentTypeText         = "text"
	ContentTypeImage        = "image"
	ContentTypeAudio        = "audio"
	ContentTypeResourceLink = "resource_link"
	ContentTypeResource     = "resource"
)

// ContentBlock is one unit of a tool result, prompt message or sampling
// message. The set of implementations is closed: TextContent, ImageContent,
// AudioContent, ResourceLink, EmbeddedResource, and UnrecognizedContent for
// discriminators admitted by wire.Options.AllowUnknownVariants.
type ContentBlock interface {
	ContentType() string
	isContentBlock()
}

// TextContent is plain text.
type TextContent struct {
	Text        string                     `json:"text"`
	Annotations wire.Optional[Annotations] `json:"annotations,omitzero"`
	Meta        Meta                       `json:"_meta,omitzero"`
}

// NewTextContent returns a text block.
func NewTextContent(text string) TextContent {
	return TextContent{Text: text}
}

func (TextContent) ContentType() string { return ContentTypeText }
func (TextContent) isContentBlock()     {}

func (c TextContent) MarshalJSON() ([]byte, error) {
	type body TextContent
	return json.Marshal(struct {
		Type string `json:"type"`
		body
	}{ContentTypeText, body(c)})
}

func (c *TextContent) UnmarshalJSON(data []byte) error {
	return c.UnmarshalWire(data, wire.DefaultOptions())
}

func (c *TextContent) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := readVariant(data, opts, ContentTypeText)
	if err != nil {
		return err
	}
	var out TextContent
	wire.Require(obj, "text", &out.Text)
	wire.Maybe(obj, "annotations", &out.Annotations)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	*c = out
	return nil
}

// ImageContent is base64-encoded image data.
type ImageContent struct {
	Data        string                     `json:"data"`
	MimeType    string                     `json:"mimeType"`
	Annotations wire.Optional[Annotations] `json:"annotations,omitzero"`
	Meta        Meta                       `json:"_meta,omitzero"`
}

// NewImageContent returns an image block from raw bytes.
func NewImageContent(data []byte, mimeType string) ImageContent {
	return ImageContent{Data: base64.StdEncoding.EncodeToString(data), MimeType: mimeType}
}

func (ImageContent) ContentType() string { return ContentTypeImage }
func (ImageContent) isContentBlock()     {}

func (c ImageContent) MarshalJSON() ([]byte, error) {
	type body ImageContent
	return json.Marshal(struct {
		Type string `json:"type"`
		body
	}{ContentTypeImage, body(c)})
}

func (c *ImageContent) UnmarshalJSON(data []byte) error {
	return c.UnmarshalWire(data, wire.DefaultOptions())
}

func (c *ImageContent) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := readVariant(data, opts, ContentTypeImage)
	if err != nil {
		return err
	}
	var out ImageContent
	wire.RequireWith(obj, "data", &out.Data, decodeBase64)
	wire.RequireWith(obj, "mimeType", &out.MimeType, decodeMIMEType)
	wire.Maybe(obj, "annotations", &out.Annotations)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	*c = out
	return nil
}

// AudioContent is base64-encoded audio data.
type AudioContent struct {
	Data        string                     `json:"data"`
	MimeType    string                     `json:"mimeType"`
	Annotations wire.Optional[Annotations] `json:"annotations,omitzero"`
	Meta        Meta                       `json:"_meta,omitzero"`
}

// NewAudioContent returns an audio block from raw bytes.
func NewAudioContent(data []byte, mimeType string) AudioContent {
	return AudioContent{Data: base64.StdEncoding.EncodeToString(data), MimeType: mimeType}
}

func (AudioContent) ContentType() string { return ContentTypeAudio }
func (AudioContent) isContentBlock()     {}

func (c AudioContent) MarshalJSON() ([]byte, error) {
	type body AudioContent
	return json.Marshal(struct {
		Type string `json:"type"`
		body
	}{ContentTypeAudio, body(c)})
}

func (c *AudioContent) UnmarshalJSON(data []byte) error {
	return c.UnmarshalWire(data, wire.DefaultOptions())
}

func (c *AudioContent) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := readVariant(data, opts, ContentTypeAudio)
	if err != nil {
		return err
	}
	var out AudioContent
	wire.RequireWith(obj, "data", &out.Data, decodeBase64)
	wire.RequireWith(obj, "mimeType", &out.MimeType, decodeMIMEType)
	wire.Maybe(obj, "annotations", &out.Annotations)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	*c = out
	return nil
}

// ResourceLink references a resource the client may read separately.
type ResourceLink struct {
	URI         string                     `json:"uri"`
	Name        string                     `json:"name"`
	Title       wire.Optional[string]      `json:"title,omitzero"`
	Description wire.Optional[string]      `json:"description,omitzero"`
	MimeType    wire.Optional[string]      `json:"mimeType,omitzero"`
	Size        wire.Optional[int64]       `json:"size,omitzero"`
	Annotations wire.Optional[Annotations] `json:"annotations,omitzero"`
	Meta        Meta                       `json:"_meta,omitzero"`
}

// NewResourceLink returns a link to uri.
func NewResourceLink(uri, name string) ResourceLink {
	return ResourceLink{URI: uri, Name: name}
}

func (ResourceLink) ContentType() string { return ContentTypeResourceLink }
func (ResourceLink) isContentBlock()     {}

func (c ResourceLink) MarshalJSON() ([]byte, error) {
	type body ResourceLink
	return json.Marshal(struct {
		Type string `json:"type"`
		body
	}{ContentTypeResourceLink, body(c)})
}

func (c *ResourceLink) UnmarshalJSON(data []byte) error {
	return c.UnmarshalWire(data, wire.DefaultOptions())
}

func (c *ResourceLink) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := readVariant(data, opts, ContentTypeResourceLink)
	if err != nil {
		return err
	}
	var out ResourceLink
	var res Resource
	readResource(obj, &res)
	if err := obj.Err(); err != nil {
		return err
	}
	out.URI, out.Name, out.Title, out.Description = res.URI, res.Name, res.Title, res.Description
	out.MimeType, out.Size, out.Annotations, out.Meta = res.MimeType, res.Size, res.Annotations, res.Meta
	*c = out
	return nil
}

// EmbeddedResource carries resource contents inline.
type EmbeddedResource struct {
	Resource    ResourceContents           `json:"resource"`
	Annotations wire.Optional[Annotations] `json:"annotations,omitzero"`
	Meta        Meta                       `json:"_meta,omitzero"`
}

// NewEmbeddedResource wraps contents.
func NewEmbeddedResource(contents ResourceContents) EmbeddedResource {
	return EmbeddedResource{Resource: contents}
}

func (EmbeddedResource) ContentType() string { return ContentTypeResource }
func (EmbeddedResource) isContentBlock()     {}

func (c EmbeddedResource) MarshalJSON() ([]byte, error) {
	type body EmbeddedResource
	return json.Marshal(struct {
		Type string `json:"type"`
		body
	}{ContentTypeResource, body(c)})
}

func (c *EmbeddedResource) UnmarshalJSON(data []byte) error {
	return c.UnmarshalWire(data, wire.DefaultOptions())
}

func (c *EmbeddedResource) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := readVariant(data, opts, ContentTypeResource)
	if err != nil {
		return err
	}
	var out EmbeddedResource
	wire.RequireWith(obj, "resource", &out.Resource, DecodeResourceContents)
	wire.Maybe(obj, "annotations", &out.Annotations)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	*c = out
	return nil
}

// UnrecognizedContent preserves a content block whose discriminator is not
// known to this package. It re-encodes verbatim.
type UnrecognizedContent struct {
	Type string
	Raw  json.RawMessage
}

func (c UnrecognizedContent) ContentType() string { return c.Type }
func (UnrecognizedContent) isContentBlock()       {}

func (c UnrecognizedContent) MarshalJSON() ([]byte, error) {
	return c.Raw, nil
}

// DecodeContentBlock decodes any content block variant. Unknown
// discriminators fail with wire.ErrUnknownVariant unless the policy allows
// them.
func DecodeContentBlock(data []byte, opts wire.Options) (ContentBlock, error) {
	tag, err := readTag(data, opts)
	if err != nil {
		return nil, err
	}
	switch tag {
	case ContentTypeText:
		return variant[TextContent](data, opts)
	case ContentTypeImage:
		return variant[ImageContent](data, opts)
	case ContentTypeAudio:
		return variant[AudioContent](data, opts)
	case ContentTypeResourceLink:
		return variant[ResourceLink](data, opts)
	case ContentTypeResource:
		return variant[EmbeddedResource](data, opts)
	}
	if opts.AllowUnknownVariants {
		return UnrecognizedContent{Type: tag, Raw: append(json.RawMessage(nil), data...)}, nil
	}
	return nil, wire.UnknownVariant("type", tag)
}

// decodeSamplingContent admits only the blocks a model exchanges directly.
func decodeSamplingContent(data []byte, opts wire.Options) (ContentBlock, error) {
	tag, err := readTag(data, opts)
	if err != nil {
		return nil, err
	}
	switch tag {
	case ContentTypeText, ContentTypeImage, ContentTypeAudio:
		return DecodeContentBlock(data, opts)
	case ContentTypeResourceLink, ContentTypeResource:
		return nil, wire.ConstraintViolation("type", "one of text|image|audio")
	}
	return DecodeContentBlock(data, opts)
}

func variant[T ContentBlock, PT interface {
	*T
	wire.Unmarshaler
}](data []byte, opts wire.Options) (ContentBlock, error) {
	var c T
	if err := PT(&c).UnmarshalWire(data, opts); err != nil {
		return nil, err
	}
	return c, nil
}

func readTag(data []byte, opts wire.Options) (string, error) {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return "", err
	}
	return wire.Tag(obj, "type")
}

// readVariant parses a variant object and checks its discriminator.
func readVariant(data []byte, opts wire.Options, tag string) (*wire.Object, error) {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return nil, err
	}
	var got string
	wire.RequireWith(obj, "type", &got, wire.Literal(tag))
	return obj, obj.Err()
}

func decodeBase64(data []byte, opts wire.Options) (string, error) {
	s, err := wire.Decode[string](data, opts)
	if err != nil {
		return "", err
	}
	if _, err := base64.StdEncoding.DecodeString(s); err != nil {
		return "", wire.ConstraintViolation("", "base64")
	}
	return s, nil
}

// ResourceContents is the body of a resource: either TextResourceContents or
// BlobResourceContents.
type ResourceContents interface {
	ResourceURI() string
	isResourceContents()
}

// TextResourceContents is a resource body representable as text.
type TextResourceContents struct {
	URI      string                `json:"uri"`
	MimeType wire.Optional[string] `json:"mimeType,omitzero"`
	Text     string                `json:"text"`
	Meta     Meta                  `json:"_meta,omitzero"`
}

func (c TextResourceContents) ResourceURI() string { return c.URI }
func (TextResourceContents) isResourceContents()   {}

// BlobResourceContents is a base64-encoded binary resource body.
type BlobResourceContents struct {
	URI      string                `json:"uri"`
	MimeType wire.Optional[string] `json:"mimeType,omitzero"`
	Blob     string                `json:"blob"`
	Meta     Meta                  `json:"_meta,omitzero"`
}

func (c BlobResourceContents) ResourceURI() string { return c.URI }
func (BlobResourceContents) isResourceContents()   {}

// DecodeResourceContents picks the variant by which of text or blob is
// present; exactly one must be.
func DecodeResourceContents(data []byte, opts wire.Options) (ResourceContents, error) {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return nil, err
	}
	hasText, hasBlob := obj.Has("text"), obj.Has("blob")
	if hasText == hasBlob {
		return nil, wire.ConstraintViolation("", "exactly one of text or blob")
	}
	var uri string
	var mime wire.Optional[string]
	var meta Meta
	wire.Require(obj, "uri", &uri)
	wire.MaybeWith(obj, "mimeType", &mime, decodeMIMEType)
	maybe(obj, "_meta", &meta)
	if hasText {
		c := TextResourceContents{URI: uri, MimeType: mime, Meta: meta}
		wire.Require(obj, "text", &c.Text)
		if err := obj.Err(); err != nil {
			return nil, err
		}
		return c, nil
	}
	c := BlobResourceContents{URI: uri, MimeType: mime, Meta: meta}
	wire.RequireWith(obj, "blob", &c.Blob, decodeBase64)
	if err := obj.Err(); err != nil {
		return nil, err
	}
	return c, nil
}
