package mcp

import "github.com/ggoodman/mcp-schema-go/wire"

// EmptyCapability marks a feature that has no sub-options. Presence of the
// enclosing Optional means the feature is supported.
type EmptyCapability struct{}

// ListChangedCapability is a feature that may emit list_changed notifications.
type ListChangedCapability struct {
	ListChanged wire.Optional[bool] `json:"listChanged,omitzero"`
}

func (c *ListChangedCapability) UnmarshalJSON(data []byte) error {
	return c.UnmarshalWire(data, wire.DefaultOptions())
}

func (c *ListChangedCapability) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ListChangedCapability
	wire.Maybe(obj, "listChanged", &out.ListChanged)
	if err := obj.Err(); err != nil {
		return err
	}
	*c = out
	return nil
}

// ResourcesCapability describes server resource support.
type ResourcesCapability struct {
	Subscribe   wire.Optional[bool] `json:"subscribe,omitzero"`
	ListChanged wire.Optional[bool] `json:"listChanged,omitzero"`
}

func (c *ResourcesCapability) UnmarshalJSON(data []byte) error {
	return c.UnmarshalWire(data, wire.DefaultOptions())
}

func (c *ResourcesCapability) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ResourcesCapability
	wire.Maybe(obj, "subscribe", &out.Subscribe)
	wire.Maybe(obj, "listChanged", &out.ListChanged)
	if err := obj.Err(); err != nil {
		return err
	}
	*c = out
	return nil
}

// ClientCapabilities advertises client features. An absent capability means
// the feature is not supported.
type ClientCapabilities struct {
	Experimental map[string]Meta                      `json:"experimental,omitzero"`
	Roots        wire.Optional[ListChangedCapability] `json:"roots,omitzero"`
	Sampling     wire.Optional[EmptyCapability]       `json:"sampling,omitzero"`
	Elicitation  wire.Optional[EmptyCapability]       `json:"elicitation,omitzero"`
}

func (c *ClientCapabilities) UnmarshalJSON(data []byte) error {
	return c.UnmarshalWire(data, wire.DefaultOptions())
}

func (c *ClientCapabilities) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ClientCapabilities
	maybeWith(obj, "experimental", &out.Experimental, wire.MapOf(wire.Decode[Meta]))
	wire.Maybe(obj, "roots", &out.Roots)
	wire.Maybe(obj, "sampling", &out.Sampling)
	wire.Maybe(obj, "elicitation", &out.Elicitation)
	if err := obj.Err(); err != nil {
		return err
	}
	*c = out
	return nil
}

// ServerCapabilities advertises server features.
type ServerCapabilities struct {
	Experimental map[string]Meta                      `json:"experimental,omitzero"`
	Logging      wire.Optional[EmptyCapability]       `json:"logging,omitzero"`
	Completions  wire.Optional[EmptyCapability]       `json:"completions,omitzero"`
	Prompts      wire.Optional[ListChangedCapability] `json:"prompts,omitzero"`
	Resources    wire.Optional[ResourcesCapability]   `json:"resources,omitzero"`
	Tools        wire.Optional[ListChangedCapability] `json:"tools,omitzero"`
}

func (c *ServerCapabilities) UnmarshalJSON(data []byte) error {
	return c.UnmarshalWire(data, wire.DefaultOptions())
}

func (c *ServerCapabilities) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ServerCapabilities
	maybeWith(obj, "experimental", &out.Experimental, wire.MapOf(wire.Decode[Meta]))
	wire.Maybe(obj, "logging", &out.Logging)
	wire.Maybe(obj, "completions", &out.Completions)
	wire.Maybe(obj, "prompts", &out.Prompts)
	wire.Maybe(obj, "resources", &out.Resources)
	wire.Maybe(obj, "tools", &out.Tools)
	if err := obj.Err(); err != nil {
		return err
	}
	*c = out
	return nil
}
