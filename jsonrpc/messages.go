package jsonrpc

import (
	"encoding/json"
	"log/slog"

	"github.com/ggoodman/mcp-schema-go/wire"
)

// ProtocolVersion is the supported JSON-RPC protocol version.
const ProtocolVersion = "2.0"

var decodeVersion = wire.Literal(ProtocolVersion)

// Request is a JSON-RPC request carrying params of type P.
type Request[P any] struct {
	ID     RequestID
	Method string
	Params wire.Optional[P]
}

// NewRequest builds a request with params.
func NewRequest[P any](id RequestID, method string, params P) Request[P] {
	return Request[P]{ID: id, Method: method, Params: wire.Some(params)}
}

func (r Request[P]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		JSONRPC string           `json:"jsonrpc"`
		ID      RequestID        `json:"id"`
		Method  string           `json:"method"`
		Params  wire.Optional[P] `json:"params,omitzero"`
	}{ProtocolVersion, r.ID, r.Method, r.Params})
}

func (r *Request[P]) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *Request[P]) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out Request[P]
	readVersion(obj)
	wire.Require(obj, "id", &out.ID)
	wire.RequireWith(obj, "method", &out.Method, wire.NonEmpty[string])
	wire.Maybe(obj, "params", &out.Params)
	if err := obj.Err(); err != nil {
		return err
	}
	*r = out
	return nil
}

// Notification is a JSON-RPC notification: a request without an id.
type Notification[P any] struct {
	Method string
	Params wire.Optional[P]
}

// NewNotification builds a notification with params.
func NewNotification[P any](method string, params P) Notification[P] {
	return Notification[P]{Method: method, Params: wire.Some(params)}
}

func (n Notification[P]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		JSONRPC string           `json:"jsonrpc"`
		Method  string           `json:"method"`
		Params  wire.Optional[P] `json:"params,omitzero"`
	}{ProtocolVersion, n.Method, n.Params})
}

func (n *Notification[P]) UnmarshalJSON(data []byte) error {
	return n.UnmarshalWire(data, wire.DefaultOptions())
}

func (n *Notification[P]) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	if obj.Has("id") {
		return wire.ConstraintViolation("id", "notifications carry no id")
	}
	var out Notification[P]
	readVersion(obj)
	wire.RequireWith(obj, "method", &out.Method, wire.NonEmpty[string])
	wire.Maybe(obj, "params", &out.Params)
	if err := obj.Err(); err != nil {
		return err
	}
	*n = out
	return nil
}

// Response is a successful JSON-RPC response carrying a result of type R.
type Response[R any] struct {
	ID     RequestID
	Result R
}

// NewResponse builds a successful response.
func NewResponse[R any](id RequestID, result R) Response[R] {
	return Response[R]{ID: id, Result: result}
}

func (r Response[R]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		JSONRPC string    `json:"jsonrpc"`
		ID      RequestID `json:"id"`
		Result  R         `json:"result"`
	}{ProtocolVersion, r.ID, r.Result})
}

func (r *Response[R]) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *Response[R]) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	if obj.Has("error") {
		return wire.ConstraintViolation("error", "result and error are mutually exclusive")
	}
	var out Response[R]
	readVersion(obj)
	wire.Require(obj, "id", &out.ID)
	wire.Require(obj, "result", &out.Result)
	if err := obj.Err(); err != nil {
		return err
	}
	*r = out
	return nil
}

// ErrorResponse is a failed JSON-RPC response. ID is null when the request id
// could not be determined.
type ErrorResponse struct {
	ID    wire.Nullable[RequestID]
	Error Error
}

// NewErrorResponse builds an error response for id.
func NewErrorResponse(id RequestID, code ErrorCode, message string) ErrorResponse {
	return ErrorResponse{ID: wire.NullableOf(id), Error: NewError(code, message)}
}

func (r ErrorResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		JSONRPC string                   `json:"jsonrpc"`
		ID      wire.Nullable[RequestID] `json:"id"`
		Error   Error                    `json:"error"`
	}{ProtocolVersion, r.ID, r.Error})
}

func (r *ErrorResponse) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ErrorResponse) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	if obj.Has("result") {
		return wire.ConstraintViolation("result", "result and error are mutually exclusive")
	}
	var out ErrorResponse
	readVersion(obj)
	wire.RequireNullable(obj, "id", &out.ID)
	wire.Require(obj, "error", &out.Error)
	if err := obj.Err(); err != nil {
		return err
	}
	*r = out
	return nil
}

func readVersion(obj *wire.Object) {
	var v string
	wire.RequireWith(obj, "jsonrpc", &v, decodeVersion)
}

// MessageKind classifies a raw JSON-RPC message.
type MessageKind string

const (
	KindRequest      MessageKind = "request"
	KindNotification MessageKind = "notification"
	KindResponse     MessageKind = "response"
	KindError        MessageKind = "error"
)

// AnyMessage is a generic JSON-RPC message whose payload is left undecoded.
// Decoding enforces JSON-RPC 2.0 framing: a request or notification never
// carries result or error, and a response carries exactly one of them.
type AnyMessage struct {
	Method string                   `json:"method,omitempty"`
	ID     wire.Nullable[RequestID] `json:"id,omitzero"`
	Params json.RawMessage          `json:"params,omitempty"`
	Result json.RawMessage          `json:"result,omitempty"`
	Error  *Error                   `json:"error,omitempty"`
}

func (m AnyMessage) MarshalJSON() ([]byte, error) {
	type alias AnyMessage
	return json.Marshal(struct {
		JSONRPC string `json:"jsonrpc"`
		alias
	}{ProtocolVersion, alias(m)})
}

func (m *AnyMessage) UnmarshalJSON(data []byte) error {
	return m.UnmarshalWire(data, wire.DefaultOptions())
}

func (m *AnyMessage) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out AnyMessage
	readVersion(obj)
	if obj.Has("method") {
		wire.RequireWith(obj, "method", &out.Method, wire.NonEmpty[string])
	}
	wire.MaybeNull(obj, "id", &out.ID)
	var params, result wire.Optional[json.RawMessage]
	wire.Maybe(obj, "params", &params)
	wire.Maybe(obj, "result", &result)
	var errObj wire.Optional[Error]
	wire.Maybe(obj, "error", &errObj)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Params = params.Value
	out.Result = result.Value
	if e, ok := errObj.Get(); ok {
		out.Error = &e
	}

	hasMethod := obj.Has("method")
	switch {
	case hasMethod && (result.Set || errObj.Set):
		return wire.ConstraintViolation("", "request cannot carry result or error")
	case hasMethod && out.ID.IsNull():
		return wire.TypeMismatch("id", "string or integer", "null")
	case !hasMethod && result.Set && errObj.Set:
		return wire.ConstraintViolation("", "response cannot carry both result and error")
	case !hasMethod && !result.Set && !errObj.Set:
		return wire.ConstraintViolation("", "response must carry result or error")
	case !hasMethod && out.ID.IsZero():
		return wire.MissingField("id")
	case result.Set && out.ID.IsNull():
		return wire.TypeMismatch("id", "string or integer", "null")
	}
	*m = out
	return nil
}

// Kind classifies the message.
func (m *AnyMessage) Kind() MessageKind {
	switch {
	case m.Method != "" && m.ID.IsZero():
		return KindNotification
	case m.Method != "":
		return KindRequest
	case m.Error != nil:
		return KindError
	default:
		return KindResponse
	}
}

// AsRequest returns the message as a request with raw params.
func (m *AnyMessage) AsRequest() (Request[json.RawMessage], bool) {
	id, ok := m.ID.Get()
	if m.Kind() != KindRequest || !ok {
		return Request[json.RawMessage]{}, false
	}
	r := Request[json.RawMessage]{ID: id, Method: m.Method}
	if m.Params != nil {
		r.Params = wire.Some(m.Params)
	}
	return r, true
}

// AsNotification returns the message as a notification with raw params.
func (m *AnyMessage) AsNotification() (Notification[json.RawMessage], bool) {
	if m.Kind() != KindNotification {
		return Notification[json.RawMessage]{}, false
	}
	n := Notification[json.RawMessage]{Method: m.Method}
	if m.Params != nil {
		n.Params = wire.Some(m.Params)
	}
	return n, true
}

// AsResponse returns the message as a successful response with a raw result.
func (m *AnyMessage) AsResponse() (Response[json.RawMessage], bool) {
	id, ok := m.ID.Get()
	if m.Kind() != KindResponse || !ok {
		return Response[json.RawMessage]{}, false
	}
	return Response[json.RawMessage]{ID: id, Result: m.Result}, true
}

// AsErrorResponse returns the message as an error response.
func (m *AnyMessage) AsErrorResponse() (ErrorResponse, bool) {
	if m.Kind() != KindError {
		return ErrorResponse{}, false
	}
	return ErrorResponse{ID: m.ID, Error: *m.Error}, true
}

func (m *AnyMessage) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("kind", string(m.Kind()))}
	if m.Method != "" {
		attrs = append(attrs, slog.String("method", m.Method))
	}
	if id, ok := m.ID.Get(); ok {
		attrs = append(attrs, slog.Any("id", id))
	}
	return slog.GroupValue(attrs...)
}
