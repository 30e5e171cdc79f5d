package mcp

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/ggoodman/mcp-schema-go/wire"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func keys(t *testing.T, data []byte) []string {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var out []string
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func TestToolDescriptorEncoding(t *testing.T) {
	tool := NewTool("get_weather", Schema{
		"type":       "object",
		"properties": map[string]any{"city": map[string]any{"type": "string"}},
		"required":   []any{"city"},
	}, WithDescription("Current weather for a city"))

	data, err := json.Marshal(tool)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"description", "inputSchema", "name"}, keys(t, data)); diff != "" {
		t.Fatalf("key set mismatch (-want +got):\n%s", diff)
	}

	var got Tool
	if err := wire.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(tool, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if got.Title.Set {
		t.Fatal("absent title decoded as present")
	}
}

func TestToolDescriptorFromWire(t *testing.T) {
	const data = `{"name":"calculate","description":"Perform calculations","inputSchema":{"type":"object"}}`

	var tool Tool
	if err := wire.Unmarshal([]byte(data), &tool); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Tool{
		Name:        "calculate",
		Description: wire.Some("Perform calculations"),
		InputSchema: Schema{"type": "object"},
	}
	if diff := cmp.Diff(want, tool); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if tool.Title.Set || tool.OutputSchema.Set || tool.Annotations.Set {
		t.Fatalf("absent members decoded as present: %+v", tool)
	}

	out, err := json.Marshal(tool)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"description", "inputSchema", "name"}, keys(t, out)); diff != "" {
		t.Fatalf("key set mismatch (-want +got):\n%s", diff)
	}
}

func TestToolWithAllOptions(t *testing.T) {
	tool := NewTool("delete_file", nil,
		WithTitle("Delete file"),
		WithOutputSchema(Schema{"type": "object"}),
		WithAnnotations(NewToolAnnotations(Destructive(true), Idempotent(true), ReadOnly(false))),
		WithToolMeta(Meta{"vendor/x": "y"}),
	)
	data, err := json.Marshal(tool)
	if err != nil {
		t.Fatal(err)
	}
	var got Tool
	if err := wire.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(tool, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if got.InputSchema["type"] != "object" {
		t.Fatalf("nil input schema not defaulted: %v", got.InputSchema)
	}
	a := got.Annotations.Value
	if a.OpenWorldHint.Set {
		t.Fatal("unset hint decoded as present")
	}
	if v, ok := a.ReadOnlyHint.Get(); !ok || v {
		t.Fatalf("explicit false hint lost: %+v", a.ReadOnlyHint)
	}
}

func TestToolInputSchemaMustBeObject(t *testing.T) {
	var tool Tool
	err := wire.Unmarshal([]byte(`{"name":"x","inputSchema":{"type":"string"}}`), &tool)
	requireDecodeError(t, err, wire.ErrConstraintViolation, "inputSchema.type")
}

func TestCallToolResultStructuredContent(t *testing.T) {
	res := NewCallToolResult(
		[]ContentBlock{NewTextContent(`{"temp":21}`)},
		WithStructuredContent(map[string]any{"temp": 21.0}),
	)
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"content", "structuredContent"}, keys(t, data)); diff != "" {
		t.Fatalf("key set mismatch (-want +got):\n%s", diff)
	}
	var got CallToolResult
	if err := wire.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(res, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCallToolResultFromWire(t *testing.T) {
	const data = `{"content":[{"type":"text","text":"ok"}],"structuredContent":{"result":42},"isError":false}`

	var res CallToolResult
	if err := wire.Unmarshal([]byte(data), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := CallToolResult{
		Content:           []ContentBlock{NewTextContent("ok")},
		StructuredContent: wire.Some(map[string]any{"result": 42.0}),
		IsError:           wire.Some(false),
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"content", "isError", "structuredContent"}, keys(t, out)); diff != "" {
		t.Fatalf("key set mismatch (-want +got):\n%s", diff)
	}
	var again map[string]any
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatal(err)
	}
	var orig map[string]any
	if err := json.Unmarshal([]byte(data), &orig); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(orig, again); diff != "" {
		t.Fatalf("re-encoding changed the document (-want +got):\n%s", diff)
	}
}

func TestUnknownMembersSurviveRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		into  wire.Unmarshaler
		extra string
	}{
		{"tool", `{"name":"t","inputSchema":{"type":"object"},"x-vendor":{"a":1}}`, new(Tool), "x-vendor"},
		{"call tool result", `{"content":[],"x-trace":"abc","_meta":{"k":"v"}}`, new(CallToolResult), "x-trace"},
		{"list tools request", `{"cursor":"c1","x-page-size":10}`, new(ListToolsRequest), "x-page-size"},
		{"implementation", `{"name":"srv","version":"1","vendor":"acme"}`, new(Implementation), "vendor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := wire.Unmarshal([]byte(tt.data), tt.into); err != nil {
				t.Fatalf("decode: %v", err)
			}
			out, err := json.Marshal(tt.into)
			if err != nil {
				t.Fatal(err)
			}
			var want, got map[string]any
			if err := json.Unmarshal([]byte(tt.data), &want); err != nil {
				t.Fatal(err)
			}
			if err := json.Unmarshal(out, &got); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
			if _, ok := got[tt.extra]; !ok {
				t.Fatalf("%s dropped: %s", tt.extra, out)
			}
		})
	}

	var tool Tool
	if err := wire.Unmarshal([]byte(`{"name":"t","inputSchema":{"type":"object"},"x-vendor":{"a":1}}`), &tool); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(tool.Extra["x-vendor"]) != `{"a":1}` || len(tool.Extra) != 1 {
		t.Fatalf("unexpected extra members: %v", tool.Extra)
	}

	// Modeled members win over a colliding Extra entry.
	tool.Extra["name"] = json.RawMessage(`"shadow"`)
	out, err := json.Marshal(tool)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"name":"t","inputSchema":{"type":"object"},"x-vendor":{"a":1}}`; string(out) != want {
		t.Fatalf("want %s, got %s", want, out)
	}
}

func TestCallToolResultIsErrorPresence(t *testing.T) {
	for _, tt := range []struct {
		data string
		want wire.Optional[bool]
	}{
		{`{"content":[]}`, wire.None[bool]()},
		{`{"content":[],"isError":false}`, wire.Some(false)},
		{`{"content":[],"isError":true}`, wire.Some(true)},
	} {
		var got CallToolResult
		if err := wire.Unmarshal([]byte(tt.data), &got); err != nil {
			t.Fatalf("decode %s: %v", tt.data, err)
		}
		if got.IsError != tt.want {
			t.Fatalf("%s: isError want %+v, got %+v", tt.data, tt.want, got.IsError)
		}
		out, err := json.Marshal(got)
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != tt.data {
			t.Fatalf("re-encode mismatch: want %s, got %s", tt.data, out)
		}
	}
}

func TestNewToolError(t *testing.T) {
	res := NewToolError("boom")
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"content":[{"type":"text","text":"boom"}],"isError":true}`; string(data) != want {
		t.Fatalf("want %s, got %s", want, data)
	}
}

func TestRequiredSlicesEncodeEmpty(t *testing.T) {
	for _, v := range []any{
		CallToolResult{},
		ListToolsResult{},
		ListResourcesResult{},
		ListPromptsResult{},
		ReadResourceResult{},
		ListRootsResult{},
	} {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		if containsNull(t, data) {
			t.Fatalf("%T encoded a null list: %s", v, data)
		}
	}
}

func containsNull(t *testing.T, data []byte) bool {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, v := range m {
		if v == nil {
			return true
		}
	}
	return false
}

func TestMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		into  wire.Unmarshaler
		data  string
		field string
	}{
		{"tool name", &Tool{}, `{"inputSchema":{"type":"object"}}`, "name"},
		{"tool schema", &Tool{}, `{"name":"x"}`, "inputSchema"},
		{"call name", &CallToolRequest{}, `{"arguments":{}}`, "name"},
		{"call result content", &CallToolResult{}, `{"isError":true}`, "content"},
		{"list tools", &ListToolsResult{}, `{}`, "tools"},
		{"nested tool", &ListToolsResult{}, `{"tools":[{"name":"a","inputSchema":{"type":"object"}},{"name":"b"}]}`, "tools[1].inputSchema"},
		{"resource uri", &Resource{}, `{"name":"r"}`, "uri"},
		{"template", &ResourceTemplate{}, `{"name":"t"}`, "uriTemplate"},
		{"read uri", &ReadResourceRequest{}, `{}`, "uri"},
		{"read contents", &ReadResourceResult{}, `{}`, "contents"},
		{"prompt name", &GetPromptRequest{}, `{"arguments":{}}`, "name"},
		{"prompt messages", &GetPromptResult{}, `{"description":"d"}`, "messages"},
		{"initialize version", &InitializeRequest{}, `{"capabilities":{},"clientInfo":{"name":"c","version":"1"}}`, "protocolVersion"},
		{"client info version", &InitializeRequest{}, `{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"c"}}`, "clientInfo.version"},
		{"server info", &InitializeResult{}, `{"protocolVersion":"2025-06-18","capabilities":{}}`, "serverInfo"},
		{"max tokens", &CreateMessageRequest{}, `{"messages":[]}`, "maxTokens"},
		{"sampling model", &CreateMessageResult{}, `{"role":"assistant","content":{"type":"text","text":"x"}}`, "model"},
		{"complete ref", &CompleteRequest{}, `{"argument":{"name":"a","value":"b"}}`, "ref"},
		{"complete argument value", &CompleteRequest{}, `{"ref":{"type":"ref/prompt","name":"p"},"argument":{"name":"a"}}`, "argument.value"},
		{"completion values", &CompleteResult{}, `{"completion":{}}`, "completion.values"},
		{"set level", &SetLevelRequest{}, `{}`, "level"},
		{"log data", &LoggingMessageNotification{}, `{"level":"info"}`, "data"},
		{"root uri", &ListRootsResult{}, `{"roots":[{"name":"r"}]}`, "roots[0].uri"},
		{"elicit message", &ElicitRequest{}, `{"requestedSchema":{"type":"object","properties":{}}}`, "message"},
		{"elicit action", &ElicitResult{}, `{}`, "action"},
		{"cancelled id", &CancelledNotification{}, `{"reason":"x"}`, "requestId"},
		{"progress", &ProgressNotification{}, `{"progressToken":"t"}`, "progress"},
		{"updated uri", &ResourceUpdatedNotification{}, `{}`, "uri"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wire.Unmarshal([]byte(tt.data), tt.into)
			requireDecodeError(t, err, wire.ErrMissingField, tt.field)
		})
	}
}

func TestListToolsPagination(t *testing.T) {
	var req ListToolsRequest
	if err := wire.Unmarshal([]byte(`{"cursor":"c2","_meta":{"progressToken":7}}`), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := ListToolsRequest{
		Cursor: wire.Some(Cursor("c2")),
		Meta:   RequestMeta{ProgressToken: wire.Some(IntProgressToken(7))},
	}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	res := ListToolsResult{Tools: []Tool{NewTool("a", nil)}, NextCursor: wire.Some(Cursor("c3"))}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	var got ListToolsResult
	if err := wire.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(res, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

type weatherArgs struct {
	City  string `json:"city" jsonschema:"description=City name"`
	Units string `json:"units,omitempty"`
}

func TestSchemaFor(t *testing.T) {
	s, err := SchemaFor[weatherArgs]()
	if err != nil {
		t.Fatalf("SchemaFor: %v", err)
	}
	if s["type"] != "object" {
		t.Fatalf("type mismatch: %v", s["type"])
	}
	if _, ok := s["$schema"]; ok {
		t.Fatal("unexpected $schema")
	}
	if diff := cmp.Diff([]any{"city"}, s["required"]); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	tool := NewTool("weather", MustSchemaFor[weatherArgs]())
	data, err := json.Marshal(tool)
	if err != nil {
		t.Fatal(err)
	}
	var got Tool
	if err := wire.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(tool, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := SchemaFor[string](); err == nil {
		t.Fatal("expected error for non-struct type")
	}
}
