package mcp

import (
	"encoding/json"

	"github.com/ggoodman/mcp-schema-go/jsonrpc"
	"github.com/ggoodman/mcp-schema-go/wire"
)

// EmptyNotification is the params shape of notifications that carry nothing
// but optional metadata: initialized and the list_changed family.
type EmptyNotification struct {
	Meta Meta `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (n EmptyNotification) MarshalJSON() ([]byte, error) {
	type body EmptyNotification
	return wire.MarshalExtra(body(n), n.Extra)
}

func (n *EmptyNotification) UnmarshalJSON(data []byte) error {
	return n.UnmarshalWire(data, wire.DefaultOptions())
}

func (n *EmptyNotification) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out EmptyNotification
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*n = out
	return nil
}

// CancelledNotification informs the peer that a request was cancelled.
type CancelledNotification struct {
	RequestID jsonrpc.RequestID     `json:"requestId"`
	Reason    wire.Optional[string] `json:"reason,omitzero"`
	Meta      Meta                  `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (n CancelledNotification) MarshalJSON() ([]byte, error) {
	type body CancelledNotification
	return wire.MarshalExtra(body(n), n.Extra)
}

func (n *CancelledNotification) UnmarshalJSON(data []byte) error {
	return n.UnmarshalWire(data, wire.DefaultOptions())
}

func (n *CancelledNotification) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out CancelledNotification
	wire.Require(obj, "requestId", &out.RequestID)
	wire.Maybe(obj, "reason", &out.Reason)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*n = out
	return nil
}

// ProgressNotification conveys progress of a long-running request.
type ProgressNotification struct {
	ProgressToken ProgressToken          `json:"progressToken"`
	Progress      float64                `json:"progress"`
	Total         wire.Optional[float64] `json:"total,omitzero"`
	Message       wire.Optional[string]  `json:"message,omitzero"`
	Meta          Meta                   `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (n ProgressNotification) MarshalJSON() ([]byte, error) {
	type body ProgressNotification
	return wire.MarshalExtra(body(n), n.Extra)
}

func (n *ProgressNotification) UnmarshalJSON(data []byte) error {
	return n.UnmarshalWire(data, wire.DefaultOptions())
}

func (n *ProgressNotification) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ProgressNotification
	wire.Require(obj, "progressToken", &out.ProgressToken)
	wire.Require(obj, "progress", &out.Progress)
	wire.Maybe(obj, "total", &out.Total)
	wire.Maybe(obj, "message", &out.Message)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*n = out
	return nil
}
