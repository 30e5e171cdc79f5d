package mcp

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ggoodman/mcp-schema-go/wire"
	"github.com/google/go-cmp/cmp"
)

func requireDecodeError(t *testing.T, err error, kind error, field string) *wire.DecodeError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v at %q, got nil", kind, field)
	}
	var de *wire.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *wire.DecodeError, got %T: %v", err, err)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
	if de.Field != field {
		t.Fatalf("field mismatch: want %q, got %q (%v)", field, de.Field, err)
	}
	return de
}

func decodeBlock(t *testing.T, data string, opts ...wire.Option) ContentBlock {
	t.Helper()
	b, err := DecodeContentBlock([]byte(data), wire.NewDecoder(opts...).Options())
	if err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return b
}

func TestContentBlockRoundTrip(t *testing.T) {
	blocks := []ContentBlock{
		NewTextContent("hello"),
		TextContent{Text: "annotated", Annotations: wire.Some(Annotations{Audience: []Role{RoleUser}, Priority: wire.Some(0.5)})},
		NewImageContent([]byte{0x89, 'P', 'N', 'G'}, "image/png"),
		NewAudioContent([]byte("RIFF"), "audio/wav"),
		ResourceLink{URI: "file:///a.txt", Name: "a.txt", MimeType: wire.Some("text/plain"), Size: wire.Some(int64(12))},
		NewEmbeddedResource(TextResourceContents{URI: "file:///a.txt", Text: "body"}),
		NewEmbeddedResource(BlobResourceContents{URI: "file:///a.bin", Blob: "AAE=", MimeType: wire.Some("application/octet-stream")}),
	}
	for _, want := range blocks {
		t.Run(want.ContentType(), func(t *testing.T) {
			data, err := json.Marshal(want)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			got := decodeBlock(t, string(data))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContentBlockTypeFirst(t *testing.T) {
	data, err := json.Marshal(NewTextContent("hi"))
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"type":"text","text":"hi"}`; string(data) != want {
		t.Fatalf("want %s, got %s", want, data)
	}
}

func TestContentBlockUnknownVariant(t *testing.T) {
	const video = `{"type":"video","url":"https://example.com/v.mp4"}`

	_, err := DecodeContentBlock([]byte(video), wire.DefaultOptions())
	de := requireDecodeError(t, err, wire.ErrUnknownVariant, "type")
	if de.Tag != "video" {
		t.Fatalf("tag mismatch: %q", de.Tag)
	}

	var res CallToolResult
	err = wire.Unmarshal([]byte(`{"content":[`+video+`]}`), &res)
	requireDecodeError(t, err, wire.ErrUnknownVariant, "content[0].type")

	b := decodeBlock(t, video, wire.AllowUnknownVariants())
	u, ok := b.(UnrecognizedContent)
	if !ok {
		t.Fatalf("expected UnrecognizedContent, got %T", b)
	}
	if u.ContentType() != "video" {
		t.Fatalf("type mismatch: %q", u.ContentType())
	}
	out, err := json.Marshal(u)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != video {
		t.Fatalf("unrecognized content not preserved: %s", out)
	}
}

func TestContentBlockErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		kind  error
		field string
	}{
		{"not an object", `"text"`, wire.ErrTypeMismatch, ""},
		{"missing type", `{"text":"hi"}`, wire.ErrMissingField, "type"},
		{"missing text", `{"type":"text"}`, wire.ErrMissingField, "text"},
		{"text wrong type", `{"type":"text","text":5}`, wire.ErrTypeMismatch, "text"},
		{"bad base64", `{"type":"image","data":"%%%","mimeType":"image/png"}`, wire.ErrConstraintViolation, "data"},
		{"bad mime", `{"type":"image","data":"AA==","mimeType":"png"}`, wire.ErrConstraintViolation, "mimeType"},
		{"priority out of range", `{"type":"text","text":"x","annotations":{"priority":2}}`, wire.ErrConstraintViolation, "annotations.priority"},
		{"bad audience", `{"type":"text","text":"x","annotations":{"audience":["user","robot"]}}`, wire.ErrConstraintViolation, "annotations.audience[1]"},
		{"embedded without body", `{"type":"resource","resource":{"uri":"file:///a"}}`, wire.ErrConstraintViolation, "resource"},
		{"embedded with both", `{"type":"resource","resource":{"uri":"file:///a","text":"x","blob":"AA=="}}`, wire.ErrConstraintViolation, "resource"},
		{"link missing name", `{"type":"resource_link","uri":"file:///a"}`, wire.ErrMissingField, "name"},
		{"optional null", `{"type":"text","text":"x","annotations":null}`, wire.ErrTypeMismatch, "annotations"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeContentBlock([]byte(tt.data), wire.DefaultOptions())
			requireDecodeError(t, err, tt.kind, tt.field)
		})
	}
}

func TestMIMEValidationPolicy(t *testing.T) {
	const data = `{"type":"audio","data":"AA==","mimeType":"wav"}`
	if _, err := DecodeContentBlock([]byte(data), wire.DefaultOptions()); err == nil {
		t.Fatal("expected mime type rejection")
	}
	b := decodeBlock(t, data, wire.WithMIMETypeValidation(false))
	if got := b.(AudioContent).MimeType; got != "wav" {
		t.Fatalf("mime mismatch: %q", got)
	}
}

func TestSamplingMessageRestrictsContent(t *testing.T) {
	var m SamplingMessage
	err := wire.Unmarshal([]byte(`{"role":"user","content":{"type":"resource_link","uri":"file:///a","name":"a"}}`), &m)
	requireDecodeError(t, err, wire.ErrConstraintViolation, "content.type")

	if err := wire.Unmarshal([]byte(`{"role":"assistant","content":{"type":"text","text":"ok"}}`), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(SamplingMessage{Role: RoleAssistant, Content: NewTextContent("ok")}, m); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPromptMessageAllowsResources(t *testing.T) {
	var m PromptMessage
	data := `{"role":"user","content":{"type":"resource","resource":{"uri":"file:///r","text":"x"}}}`
	if err := wire.Unmarshal([]byte(data), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := PromptMessage{Role: RoleUser, Content: NewEmbeddedResource(TextResourceContents{URI: "file:///r", Text: "x"})}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
