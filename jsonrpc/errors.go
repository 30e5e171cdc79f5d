package jsonrpc

import (
	"errors"
	"fmt"

	"github.com/ggoodman/mcp-schema-go/wire"
)

// ErrorCode is a JSON-RPC 2.0 error code.
type ErrorCode int

const (
	// ErrorCodeParseError indicates invalid JSON was received by the server.
	ErrorCodeParseError ErrorCode = -32700
	// ErrorCodeInvalidRequest indicates the JSON sent is not a valid Request object.
	ErrorCodeInvalidRequest ErrorCode = -32600
	// ErrorCodeMethodNotFound indicates the method does not exist / is not available.
	ErrorCodeMethodNotFound ErrorCode = -32601
	// ErrorCodeInvalidParams indicates invalid method parameters.
	ErrorCodeInvalidParams ErrorCode = -32602
	// ErrorCodeInternalError indicates an internal JSON-RPC error.
	ErrorCodeInternalError ErrorCode = -32603
)

// Error is a JSON-RPC error object. Data distinguishes an absent member from
// an explicit null.
type Error struct {
	Code    ErrorCode          `json:"code"`
	Message string             `json:"message"`
	Data    wire.Nullable[any] `json:"data,omitzero"`
}

// NewError returns an error object without data.
func NewError(code ErrorCode, message string) Error {
	return Error{Code: code, Message: message}
}

// WithData returns a copy of e carrying data.
func (e Error) WithData(data any) Error {
	e.Data = wire.NullableOf(data)
	return e
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc: %d: %s", e.Code, e.Message)
}

func (e *Error) UnmarshalJSON(data []byte) error {
	return e.UnmarshalWire(data, wire.DefaultOptions())
}

func (e *Error) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var code int64
	var out Error
	wire.Require(obj, "code", &code)
	wire.Require(obj, "message", &out.Message)
	wire.MaybeNull(obj, "data", &out.Data)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Code = ErrorCode(code)
	*e = out
	return nil
}

// FromDecodeError maps a decode failure onto the error object a host would
// send back: malformed JSON becomes a parse error, anything else invalid params.
func FromDecodeError(err error) Error {
	var de *wire.DecodeError
	ok := errors.As(err, &de)
	if ok && de.Kind == wire.KindTypeMismatch && de.Expected == "json" {
		return NewError(ErrorCodeParseError, "Parse error")
	}
	e := NewError(ErrorCodeInvalidParams, "Invalid params")
	if ok {
		e = e.WithData(map[string]any{
			"kind":  de.Kind.String(),
			"field": de.Field,
			"error": de.Error(),
		})
	}
	return e
}
