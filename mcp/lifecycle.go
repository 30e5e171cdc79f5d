package mcp

import (
	"encoding/json"

	"github.com/ggoodman/mcp-schema-go/wire"
)

// InitializeRequest starts the MCP initialization handshake.
type InitializeRequest struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ClientCapabilities `json:"capabilities"`
	ClientInfo      Implementation     `json:"clientInfo"`
	Meta            RequestMeta        `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r InitializeRequest) MarshalJSON() ([]byte, error) {
	type body InitializeRequest
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *InitializeRequest) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *InitializeRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out InitializeRequest
	wire.Require(obj, "protocolVersion", &out.ProtocolVersion)
	wire.Require(obj, "capabilities", &out.Capabilities)
	wire.Require(obj, "clientInfo", &out.ClientInfo)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// InitializeResult returns negotiated capabilities and server info.
type InitializeResult struct {
	ProtocolVersion string                `json:"protocolVersion"`
	Capabilities    ServerCapabilities    `json:"capabilities"`
	ServerInfo      Implementation        `json:"serverInfo"`
	Instructions    wire.Optional[string] `json:"instructions,omitzero"`
	Meta            Meta                  `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r InitializeResult) MarshalJSON() ([]byte, error) {
	type body InitializeResult
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *InitializeResult) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *InitializeResult) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out InitializeResult
	wire.Require(obj, "protocolVersion", &out.ProtocolVersion)
	wire.Require(obj, "capabilities", &out.Capabilities)
	wire.Require(obj, "serverInfo", &out.ServerInfo)
	wire.Maybe(obj, "instructions", &out.Instructions)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// EmptyRequest is the params shape of requests that take no arguments
// (ping, roots/list).
type EmptyRequest struct {
	Meta RequestMeta `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r EmptyRequest) MarshalJSON() ([]byte, error) {
	type body EmptyRequest
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *EmptyRequest) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *EmptyRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out EmptyRequest
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// PingRequest is a no-op request used to test connectivity.
type PingRequest = EmptyRequest

// ListRootsRequest requests the client's roots.
type ListRootsRequest = EmptyRequest
