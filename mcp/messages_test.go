package mcp

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/ggoodman/mcp-schema-go/jsonrpc"
	"github.com/ggoodman/mcp-schema-go/wire"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"
)

func TestClientRequestToolsCall(t *testing.T) {
	const data = `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"get_weather","arguments":{"city":"Paris"},"_meta":{"progressToken":"p1"}}}`

	var req ClientRequest
	if err := wire.Unmarshal([]byte(data), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := ClientRequest{
		ID:     jsonrpc.IntID(7),
		Method: ToolsCallMethod,
		Params: CallToolRequest{
			Name:      "get_weather",
			Arguments: map[string]any{"city": "Paris"},
			Meta:      RequestMeta{ProgressToken: wire.Some(StringProgressToken("p1"))},
		},
	}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	var again ClientRequest
	if err := wire.Unmarshal(out, &again); err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if diff := cmp.Diff(req, again); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestClientRequestWithoutParams(t *testing.T) {
	const data = `{"jsonrpc":"2.0","id":1,"method":"ping"}`

	var req ClientRequest
	if err := wire.Unmarshal([]byte(data), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.Params != nil {
		t.Fatalf("expected nil params, got %#v", req.Params)
	}
	out, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"jsonrpc":"2.0","method":"ping","id":1}`; string(out) != want {
		t.Fatalf("want %s, got %s", want, out)
	}

	if err := wire.Unmarshal([]byte(`{"jsonrpc":"2.0","id":"a","method":"tools/list","params":{}}`), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := req.Params.(ListToolsRequest); !ok {
		t.Fatalf("expected ListToolsRequest, got %T", req.Params)
	}
	out, err = json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"jsonrpc":"2.0","method":"tools/list","id":"a","params":{}}`; string(out) != want {
		t.Fatalf("want %s, got %s", want, out)
	}

	err = wire.Unmarshal([]byte(`{"jsonrpc":"2.0","id":"a","method":"tools/call"}`), &req)
	requireDecodeError(t, err, wire.ErrMissingField, "params.name")
}

func TestClientRequestErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		kind  error
		field string
	}{
		{"unknown method", `{"jsonrpc":"2.0","id":1,"method":"tools/explode"}`, wire.ErrUnknownVariant, "method"},
		{"server-only method", `{"jsonrpc":"2.0","id":1,"method":"sampling/createMessage","params":{"messages":[],"maxTokens":1}}`, wire.ErrUnknownVariant, "method"},
		{"missing id", `{"jsonrpc":"2.0","method":"ping"}`, wire.ErrMissingField, "id"},
		{"null id", `{"jsonrpc":"2.0","id":null,"method":"ping"}`, wire.ErrTypeMismatch, "id"},
		{"bad version", `{"jsonrpc":"1.0","id":1,"method":"ping"}`, wire.ErrConstraintViolation, "jsonrpc"},
		{"bad params", `{"jsonrpc":"2.0","id":1,"method":"logging/setLevel","params":{"level":"loud"}}`, wire.ErrConstraintViolation, "params.level"},
		{"params not object", `{"jsonrpc":"2.0","id":1,"method":"ping","params":[]}`, wire.ErrTypeMismatch, "params"},
		{"empty method", `{"jsonrpc":"2.0","id":1,"method":""}`, wire.ErrConstraintViolation, "method"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ClientRequest
			err := wire.Unmarshal([]byte(tt.data), &req)
			requireDecodeError(t, err, tt.kind, tt.field)
		})
	}
}

func TestUnknownMethodPolicy(t *testing.T) {
	dec := wire.NewDecoder(wire.AllowUnknownVariants())

	var req ClientRequest
	const data = `{"jsonrpc":"2.0","id":1,"method":"vendor/op","params":{"k":[1,2]}}`
	if err := dec.Decode([]byte(data), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	p, ok := req.Params.(UnrecognizedParams)
	if !ok {
		t.Fatalf("expected UnrecognizedParams, got %T", req.Params)
	}
	if string(p.Raw) != `{"k":[1,2]}` {
		t.Fatalf("raw params mismatch: %s", p.Raw)
	}

	var n ServerNotification
	if err := dec.Decode([]byte(`{"jsonrpc":"2.0","method":"vendor/event"}`), &n); err != nil {
		t.Fatalf("decode: %v", err)
	}
	out, err := json.Marshal(n)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"jsonrpc":"2.0","method":"vendor/event"}`; string(out) != want {
		t.Fatalf("want %s, got %s", want, out)
	}
}

func TestServerRequestElicitation(t *testing.T) {
	const data = `{"jsonrpc":"2.0","id":"e1","method":"elicitation/create","params":{"message":"Pick a color","requestedSchema":{"type":"object","properties":{"color":{"type":"string","enum":["red","blue"]}},"required":["color"]}}}`

	var req ServerRequest
	if err := wire.Unmarshal([]byte(data), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := ServerRequest{
		ID:     jsonrpc.StringID("e1"),
		Method: ElicitationCreateMethod,
		Params: ElicitRequest{
			Message: "Pick a color",
			RequestedSchema: ElicitationSchema{
				Type:       "object",
				Properties: map[string]PrimitiveSchemaDefinition{"color": {Type: SchemaTypeString, Enum: []string{"red", "blue"}}},
				Required:   []string{"color"},
			},
		},
	}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNotifications(t *testing.T) {
	var cn ClientNotification
	if err := wire.Unmarshal([]byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`), &cn); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cn.Params != nil {
		t.Fatalf("expected nil params, got %#v", cn.Params)
	}
	out, err := json.Marshal(cn)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"jsonrpc":"2.0","method":"notifications/initialized"}`; string(out) != want {
		t.Fatalf("want %s, got %s", want, out)
	}

	err = wire.Unmarshal([]byte(`{"jsonrpc":"2.0","id":1,"method":"notifications/initialized"}`), &cn)
	requireDecodeError(t, err, wire.ErrConstraintViolation, "id")

	var sn ServerNotification
	data := `{"jsonrpc":"2.0","method":"notifications/progress","params":{"progressToken":3,"progress":50,"total":100,"message":"halfway"}}`
	if err := wire.Unmarshal([]byte(data), &sn); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := ProgressNotification{
		ProgressToken: IntProgressToken(3),
		Progress:      50,
		Total:         wire.Some(100.0),
		Message:       wire.Some("halfway"),
	}
	if diff := cmp.Diff(want, sn.Params); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	data = `{"jsonrpc":"2.0","method":"notifications/cancelled","params":{"requestId":"r9","reason":"user"}}`
	if err := wire.Unmarshal([]byte(data), &cn); err != nil {
		t.Fatalf("decode: %v", err)
	}
	c, ok := cn.Params.(CancelledNotification)
	if !ok || !c.RequestID.Equal(jsonrpc.StringID("r9")) {
		t.Fatalf("unexpected cancelled params: %#v", cn.Params)
	}
}

var (
	_ ClientRequestParams      = PingRequest{}
	_ ClientRequestParams      = ReadResourceRequest{}
	_ ServerRequestParams      = ListRootsRequest{}
	_ ServerRequestParams      = CreateMessageRequest{}
	_ ClientNotificationParams = EmptyNotification{}
	_ ServerNotificationParams = LoggingMessageNotification{}
)

// Every registered params decoder yields a value of its direction's union.
func TestRegistriesMatchUnions(t *testing.T) {
	checkRegistry[ClientRequestParams](t, clientRequests)
	checkRegistry[ServerRequestParams](t, serverRequests)
	checkRegistry[ClientNotificationParams](t, clientNotifications)
	checkRegistry[ServerNotificationParams](t, serverNotifications)
}

func checkRegistry[P any](t *testing.T, registry map[Method]decodeFunc) {
	t.Helper()
	for method, fn := range registry {
		data, ok := sampleParams[method]
		if !ok {
			data = `{}`
		}
		v, err := fn([]byte(data), wire.DefaultOptions())
		if err != nil {
			t.Fatalf("%s: %v", method, err)
		}
		if _, ok := v.(P); !ok {
			t.Fatalf("%s: %T is not a %T", method, v, (*P)(nil))
		}
	}
}

// sampleParams holds a minimal valid params document for methods whose
// params have required members.
var sampleParams = map[Method]string{
	InitializeMethod:                   `{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"c","version":"1"}}`,
	CompletionCompleteMethod:           `{"ref":{"type":"ref/prompt","name":"p"},"argument":{"name":"a","value":"v"}}`,
	LoggingSetLevelMethod:              `{"level":"info"}`,
	PromptsGetMethod:                   `{"name":"p"}`,
	ResourcesReadMethod:                `{"uri":"file:///a"}`,
	ResourcesSubscribeMethod:           `{"uri":"file:///a"}`,
	ResourcesUnsubscribeMethod:         `{"uri":"file:///a"}`,
	ToolsCallMethod:                    `{"name":"t"}`,
	SamplingCreateMessageMethod:        `{"messages":[],"maxTokens":1}`,
	ElicitationCreateMethod:            `{"message":"m","requestedSchema":{"type":"object","properties":{}}}`,
	CancelledNotificationMethod:        `{"requestId":1}`,
	ProgressNotificationMethod:         `{"progressToken":1,"progress":0}`,
	LoggingMessageNotificationMethod:   `{"level":"info","data":null}`,
	ResourcesUpdatedNotificationMethod: `{"uri":"file:///a"}`,
}

func TestDecodeResult(t *testing.T) {
	tests := []struct {
		method Method
		data   string
		want   any
	}{
		{PingMethod, `{}`, EmptyResult{}},
		{ResourcesSubscribeMethod, `{}`, EmptyResult{}},
		{ToolsCallMethod, `{"content":[{"type":"text","text":"ok"}]}`, CallToolResult{Content: []ContentBlock{NewTextContent("ok")}}},
		{RootsListMethod, `{"roots":[{"uri":"file:///ws","name":"ws"}]}`, ListRootsResult{Roots: []Root{{URI: "file:///ws", Name: wire.Some("ws")}}}},
		{CompletionCompleteMethod, `{"completion":{"values":["a","b"],"hasMore":false}}`, CompleteResult{Completion: Completion{Values: []string{"a", "b"}, HasMore: wire.Some(false)}}},
		{ElicitationCreateMethod, `{"action":"decline"}`, Decline()},
	}
	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			got, err := DecodeResult(nil, tt.method, []byte(tt.data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeResultErrors(t *testing.T) {
	_, err := DecodeResult(nil, "vendor/op", []byte(`{}`))
	requireDecodeError(t, err, wire.ErrUnknownVariant, "")

	got, err := DecodeResult(wire.NewDecoder(wire.AllowUnknownVariants()), "vendor/op", []byte(`{"x":1}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if u, ok := got.(UnrecognizedResult); !ok || string(u.Raw) != `{"x":1}` {
		t.Fatalf("unexpected result: %#v", got)
	}

	_, err = DecodeResult(nil, ToolsListMethod, []byte(`{"tools":`))
	requireDecodeError(t, err, wire.ErrTypeMismatch, "")

	_, err = DecodeResult(nil, ElicitationCreateMethod, []byte(`{"action":"accept"}`))
	requireDecodeError(t, err, wire.ErrMissingField, "content")
}

func TestIsRequestDirection(t *testing.T) {
	if !IsClientRequest(ToolsCallMethod) || IsServerRequest(ToolsCallMethod) {
		t.Fatal("tools/call is client-to-server")
	}
	if !IsServerRequest(SamplingCreateMessageMethod) || IsClientRequest(SamplingCreateMessageMethod) {
		t.Fatal("sampling/createMessage is server-to-client")
	}
	if !IsClientRequest(PingMethod) || !IsServerRequest(PingMethod) {
		t.Fatal("ping goes both ways")
	}
}

func TestConcurrentDecode(t *testing.T) {
	dec := wire.NewDecoder()
	var g errgroup.Group
	for i := range 64 {
		g.Go(func() error {
			data := fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"tools/call","params":{"name":"t%d","arguments":{"n":%d}}}`, i, i, i)
			var req ClientRequest
			if err := dec.Decode([]byte(data), &req); err != nil {
				return err
			}
			p := req.Params.(CallToolRequest)
			if p.Name != fmt.Sprintf("t%d", i) || p.Arguments["n"] != float64(i) {
				return fmt.Errorf("request %d decoded as %+v", i, p)
			}
			_, err := DecodeResult(dec, ToolsCallMethod, []byte(`{"content":[]}`))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
