package mcp

import (
	"encoding/json"
	"log/slog"

	"github.com/ggoodman/mcp-schema-go/jsonrpc"
	"github.com/ggoodman/mcp-schema-go/wire"
)

// Method is an MCP method identifier used in JSON-RPC messages.
type Method string

// MCP method names and notifications.
const (
	// Initialization
	InitializeMethod              Method = "initialize"
	InitializedNotificationMethod Method = "notifications/initialized"

	// Tools
	ToolsListMethod                    Method = "tools/list"
	ToolsCallMethod                    Method = "tools/call"
	ToolsListChangedNotificationMethod Method = "notifications/tools/list_changed"

	// Resources
	ResourcesListMethod                    Method = "resources/list"
	ResourcesReadMethod                    Method = "resources/read"
	ResourcesTemplatesListMethod           Method = "resources/templates/list"
	ResourcesSubscribeMethod               Method = "resources/subscribe"
	ResourcesUnsubscribeMethod             Method = "resources/unsubscribe"
	ResourcesListChangedNotificationMethod Method = "notifications/resources/list_changed"
	ResourcesUpdatedNotificationMethod     Method = "notifications/resources/updated"

	// Prompts
	PromptsListMethod                    Method = "prompts/list"
	PromptsGetMethod                     Method = "prompts/get"
	PromptsListChangedNotificationMethod Method = "notifications/prompts/list_changed"

	// Logging
	LoggingSetLevelMethod            Method = "logging/setLevel"
	LoggingMessageNotificationMethod Method = "notifications/message"

	// Sampling
	SamplingCreateMessageMethod Method = "sampling/createMessage"

	// Completion
	CompletionCompleteMethod Method = "completion/complete"

	// Roots
	RootsListMethod                    Method = "roots/list"
	RootsListChangedNotificationMethod Method = "notifications/roots/list_changed"

	// Elicitation
	ElicitationCreateMethod Method = "elicitation/create"

	// General
	PingMethod                  Method = "ping"
	CancelledNotificationMethod Method = "notifications/cancelled"
	ProgressNotificationMethod  Method = "notifications/progress"
)

// decodeFunc decodes params or a result into a value of the registered type.
type decodeFunc func(data []byte, opts wire.Options) (any, error)

func decoderFor[T any, PT interface {
	*T
	wire.Unmarshaler
}]() decodeFunc {
	return func(data []byte, opts wire.Options) (any, error) {
		var v T
		if err := PT(&v).UnmarshalWire(data, opts); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// The registries are built once and never written afterwards.
var (
	clientRequests = map[Method]decodeFunc{
		PingMethod:                   decoderFor[PingRequest](),
		InitializeMethod:             decoderFor[InitializeRequest](),
		CompletionCompleteMethod:     decoderFor[CompleteRequest](),
		LoggingSetLevelMethod:        decoderFor[SetLevelRequest](),
		PromptsGetMethod:             decoderFor[GetPromptRequest](),
		PromptsListMethod:            decoderFor[ListPromptsRequest](),
		ResourcesListMethod:          decoderFor[ListResourcesRequest](),
		ResourcesTemplatesListMethod: decoderFor[ListResourceTemplatesRequest](),
		ResourcesReadMethod:          decoderFor[ReadResourceRequest](),
		ResourcesSubscribeMethod:     decoderFor[SubscribeRequest](),
		ResourcesUnsubscribeMethod:   decoderFor[UnsubscribeRequest](),
		ToolsCallMethod:              decoderFor[CallToolRequest](),
		ToolsListMethod:              decoderFor[ListToolsRequest](),
	}

	serverRequests = map[Method]decodeFunc{
		PingMethod:                  decoderFor[PingRequest](),
		SamplingCreateMessageMethod: decoderFor[CreateMessageRequest](),
		RootsListMethod:             decoderFor[ListRootsRequest](),
		ElicitationCreateMethod:     decoderFor[ElicitRequest](),
	}

	clientNotifications = map[Method]decodeFunc{
		CancelledNotificationMethod:        decoderFor[CancelledNotification](),
		ProgressNotificationMethod:         decoderFor[ProgressNotification](),
		InitializedNotificationMethod:      decoderFor[EmptyNotification](),
		RootsListChangedNotificationMethod: decoderFor[EmptyNotification](),
	}

	serverNotifications = map[Method]decodeFunc{
		CancelledNotificationMethod:            decoderFor[CancelledNotification](),
		ProgressNotificationMethod:             decoderFor[ProgressNotification](),
		LoggingMessageNotificationMethod:       decoderFor[LoggingMessageNotification](),
		ResourcesUpdatedNotificationMethod:     decoderFor[ResourceUpdatedNotification](),
		ResourcesListChangedNotificationMethod: decoderFor[EmptyNotification](),
		ToolsListChangedNotificationMethod:     decoderFor[EmptyNotification](),
		PromptsListChangedNotificationMethod:   decoderFor[EmptyNotification](),
	}

	results = map[Method]decodeFunc{
		PingMethod:                   decoderFor[EmptyResult](),
		InitializeMethod:             decoderFor[InitializeResult](),
		CompletionCompleteMethod:     decoderFor[CompleteResult](),
		LoggingSetLevelMethod:        decoderFor[EmptyResult](),
		PromptsGetMethod:             decoderFor[GetPromptResult](),
		PromptsListMethod:            decoderFor[ListPromptsResult](),
		ResourcesListMethod:          decoderFor[ListResourcesResult](),
		ResourcesTemplatesListMethod: decoderFor[ListResourceTemplatesResult](),
		ResourcesReadMethod:          decoderFor[ReadResourceResult](),
		ResourcesSubscribeMethod:     decoderFor[EmptyResult](),
		ResourcesUnsubscribeMethod:   decoderFor[EmptyResult](),
		ToolsCallMethod:              decoderFor[CallToolResult](),
		ToolsListMethod:              decoderFor[ListToolsResult](),
		SamplingCreateMessageMethod:  decoderFor[CreateMessageResult](),
		RootsListMethod:              decoderFor[ListRootsResult](),
		ElicitationCreateMethod:      decoderFor[ElicitResult](),
	}
)

// ClientRequestParams is implemented by the params types of requests a
// client sends.
type ClientRequestParams interface{ isClientRequestParams() }

// ServerRequestParams is implemented by the params types of requests a server
// sends.
type ServerRequestParams interface{ isServerRequestParams() }

// ClientNotificationParams is implemented by the params types of client
// notifications.
type ClientNotificationParams interface{ isClientNotificationParams() }

// ServerNotificationParams is implemented by the params types of server
// notifications.
type ServerNotificationParams interface{ isServerNotificationParams() }

func (InitializeRequest) isClientRequestParams()            {}
func (CompleteRequest) isClientRequestParams()              {}
func (SetLevelRequest) isClientRequestParams()              {}
func (GetPromptRequest) isClientRequestParams()             {}
func (ListPromptsRequest) isClientRequestParams()           {}
func (ListResourcesRequest) isClientRequestParams()         {}
func (ListResourceTemplatesRequest) isClientRequestParams() {}
func (ResourceURIRequest) isClientRequestParams()           {}
func (CallToolRequest) isClientRequestParams()              {}
func (ListToolsRequest) isClientRequestParams()             {}
func (EmptyRequest) isClientRequestParams()                 {}
func (UnrecognizedParams) isClientRequestParams()           {}

func (CreateMessageRequest) isServerRequestParams() {}
func (ElicitRequest) isServerRequestParams()        {}
func (EmptyRequest) isServerRequestParams()         {}
func (UnrecognizedParams) isServerRequestParams()   {}

func (CancelledNotification) isClientNotificationParams() {}
func (ProgressNotification) isClientNotificationParams()  {}
func (EmptyNotification) isClientNotificationParams()     {}
func (UnrecognizedParams) isClientNotificationParams()    {}

func (CancelledNotification) isServerNotificationParams()       {}
func (ProgressNotification) isServerNotificationParams()        {}
func (EmptyNotification) isServerNotificationParams()           {}
func (LoggingMessageNotification) isServerNotificationParams()  {}
func (ResourceUpdatedNotification) isServerNotificationParams() {}
func (UnrecognizedParams) isServerNotificationParams()          {}

// UnrecognizedParams holds the raw params of a method this package does not
// know, admitted by wire.Options.AllowUnknownVariants.
type UnrecognizedParams struct {
	Raw json.RawMessage
}

func (p UnrecognizedParams) MarshalJSON() ([]byte, error) {
	if len(p.Raw) == 0 {
		return []byte("{}"), nil
	}
	return p.Raw, nil
}

// UnrecognizedResult holds the raw result of a method this package does not
// know.
type UnrecognizedResult struct {
	Raw json.RawMessage
}

func (r UnrecognizedResult) MarshalJSON() ([]byte, error) {
	return r.Raw, nil
}

// decodeParams looks up the envelope's method in registry and decodes its
// params as P. Absent params are checked against an empty object, so missing
// required members are still reported, and then yield the zero P.
func decodeParams[P any](registry map[Method]decodeFunc, env envelope, opts wire.Options) (P, error) {
	var zero P
	fn, ok := registry[env.method]
	if !ok {
		if !opts.AllowUnknownVariants {
			return zero, wire.UnknownVariant("method", string(env.method))
		}
		if !env.present {
			return zero, nil
		}
		return any(UnrecognizedParams{Raw: append(json.RawMessage(nil), env.raw...)}).(P), nil
	}
	raw := env.raw
	if !env.present {
		raw = json.RawMessage("{}")
	}
	v, err := fn(raw, opts)
	if err != nil {
		return zero, wire.At("params", err)
	}
	if !env.present {
		return zero, nil
	}
	p, ok := v.(P)
	if !ok {
		return zero, wire.UnknownVariant("method", string(env.method))
	}
	return p, nil
}

type envelope struct {
	method  Method
	id      jsonrpc.RequestID
	raw     json.RawMessage
	present bool
}

func readEnvelope(data []byte, opts wire.Options, withID bool) (envelope, error) {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return envelope{}, err
	}
	var env envelope
	var version string
	wire.RequireWith(obj, "jsonrpc", &version, wire.Literal(jsonrpc.ProtocolVersion))
	wire.RequireWith(obj, "method", &env.method, wire.NonEmpty[Method])
	if withID {
		wire.Require(obj, "id", &env.id)
	} else if obj.Has("id") {
		obj.Fail(wire.ConstraintViolation("id", "notifications carry no id"))
	}
	if err := obj.Err(); err != nil {
		return envelope{}, err
	}
	env.raw, env.present = obj.Raw("params")
	return env, nil
}

// ClientRequest is a request sent from client to server. Params holds the
// value registered for Method, e.g. CallToolRequest for tools/call, or
// UnrecognizedParams. Params is nil when the message carried none.
type ClientRequest struct {
	ID     jsonrpc.RequestID
	Method Method
	Params ClientRequestParams
}

func (r ClientRequest) MarshalJSON() ([]byte, error) {
	return marshalRequest(r.ID, r.Method, r.Params)
}

func (r *ClientRequest) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ClientRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	env, err := readEnvelope(data, opts, true)
	if err != nil {
		return err
	}
	p, err := decodeParams[ClientRequestParams](clientRequests, env, opts)
	if err != nil {
		return err
	}
	*r = ClientRequest{ID: env.id, Method: env.method, Params: p}
	return nil
}

func (r ClientRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("method", string(r.Method)), slog.Any("id", r.ID))
}

// ServerRequest is a request sent from server to client.
type ServerRequest struct {
	ID     jsonrpc.RequestID
	Method Method
	Params ServerRequestParams
}

func (r ServerRequest) MarshalJSON() ([]byte, error) {
	return marshalRequest(r.ID, r.Method, r.Params)
}

func (r *ServerRequest) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ServerRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	env, err := readEnvelope(data, opts, true)
	if err != nil {
		return err
	}
	p, err := decodeParams[ServerRequestParams](serverRequests, env, opts)
	if err != nil {
		return err
	}
	*r = ServerRequest{ID: env.id, Method: env.method, Params: p}
	return nil
}

func (r ServerRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("method", string(r.Method)), slog.Any("id", r.ID))
}

// ClientNotification is a notification sent from client to server.
type ClientNotification struct {
	Method Method
	Params ClientNotificationParams
}

func (n ClientNotification) MarshalJSON() ([]byte, error) {
	return marshalNotification(n.Method, n.Params)
}

func (n *ClientNotification) UnmarshalJSON(data []byte) error {
	return n.UnmarshalWire(data, wire.DefaultOptions())
}

func (n *ClientNotification) UnmarshalWire(data []byte, opts wire.Options) error {
	env, err := readEnvelope(data, opts, false)
	if err != nil {
		return err
	}
	p, err := decodeParams[ClientNotificationParams](clientNotifications, env, opts)
	if err != nil {
		return err
	}
	*n = ClientNotification{Method: env.method, Params: p}
	return nil
}

// ServerNotification is a notification sent from server to client.
type ServerNotification struct {
	Method Method
	Params ServerNotificationParams
}

func (n ServerNotification) MarshalJSON() ([]byte, error) {
	return marshalNotification(n.Method, n.Params)
}

func (n *ServerNotification) UnmarshalJSON(data []byte) error {
	return n.UnmarshalWire(data, wire.DefaultOptions())
}

func (n *ServerNotification) UnmarshalWire(data []byte, opts wire.Options) error {
	env, err := readEnvelope(data, opts, false)
	if err != nil {
		return err
	}
	p, err := decodeParams[ServerNotificationParams](serverNotifications, env, opts)
	if err != nil {
		return err
	}
	*n = ServerNotification{Method: env.method, Params: p}
	return nil
}

// paramsMember returns the value to encode under "params", or nil to omit
// it. A nil interface of any params type is omitted.
func paramsMember(p any) any {
	if p == nil {
		return nil
	}
	if u, ok := p.(UnrecognizedParams); ok && len(u.Raw) == 0 {
		return nil
	}
	return p
}

func marshalRequest(id jsonrpc.RequestID, method Method, params any) ([]byte, error) {
	return json.Marshal(struct {
		JSONRPC string            `json:"jsonrpc"`
		Method  Method            `json:"method"`
		ID      jsonrpc.RequestID `json:"id"`
		Params  any               `json:"params,omitempty"`
	}{jsonrpc.ProtocolVersion, method, id, paramsMember(params)})
}

func marshalNotification(method Method, params any) ([]byte, error) {
	return json.Marshal(struct {
		JSONRPC string `json:"jsonrpc"`
		Method  Method `json:"method"`
		Params  any    `json:"params,omitempty"`
	}{jsonrpc.ProtocolVersion, method, paramsMember(params)})
}

// DecodeResult decodes the result member of a response to a request for
// method. Results carry no discriminator, so the caller supplies the method
// of the originating request. A nil dec applies wire.DefaultOptions.
func DecodeResult(dec *wire.Decoder, method Method, data []byte) (any, error) {
	opts := dec.Options()
	fn, ok := results[method]
	if !ok {
		if !opts.AllowUnknownVariants {
			return nil, wire.UnknownVariant("", string(method))
		}
		if !json.Valid(data) {
			return nil, wire.TypeMismatch("", "json", "malformed input")
		}
		return UnrecognizedResult{Raw: append(json.RawMessage(nil), data...)}, nil
	}
	if !json.Valid(data) {
		return nil, wire.TypeMismatch("", "json", "malformed input")
	}
	return fn(data, opts)
}

// IsClientRequest reports whether method is a request clients send.
func IsClientRequest(method Method) bool {
	_, ok := clientRequests[method]
	return ok
}

// IsServerRequest reports whether method is a request servers send.
func IsServerRequest(method Method) bool {
	_, ok := serverRequests[method]
	return ok
}
