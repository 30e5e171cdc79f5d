package mcp

import (
	"encoding/json"

	"github.com/ggoodman/mcp-schema-go/wire"
)

// SetLevelRequest sets the minimum level of log notifications the server
// sends.
type SetLevelRequest struct {
	Level LoggingLevel `json:"level"`
	Meta  RequestMeta  `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r SetLevelRequest) MarshalJSON() ([]byte, error) {
	type body SetLevelRequest
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *SetLevelRequest) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *SetLevelRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out SetLevelRequest
	wire.Require(obj, "level", &out.Level)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// LoggingMessageNotification conveys a log message. Data is any JSON value,
// including null.
type LoggingMessageNotification struct {
	Level  LoggingLevel          `json:"level"`
	Logger wire.Optional[string] `json:"logger,omitzero"`
	Data   any                   `json:"data"`
	Meta   Meta                  `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (n LoggingMessageNotification) MarshalJSON() ([]byte, error) {
	type body LoggingMessageNotification
	return wire.MarshalExtra(body(n), n.Extra)
}

func (n *LoggingMessageNotification) UnmarshalJSON(data []byte) error {
	return n.UnmarshalWire(data, wire.DefaultOptions())
}

func (n *LoggingMessageNotification) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out LoggingMessageNotification
	wire.Require(obj, "level", &out.Level)
	wire.Maybe(obj, "logger", &out.Logger)
	wire.Require(obj, "data", &out.Data)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*n = out
	return nil
}
