package mcp

import (
	"encoding/json"

	"github.com/ggoodman/mcp-schema-go/wire"
)

// Root identifies a workspace root. URI must be a file:// URI.
type Root struct {
	URI  string                `json:"uri"`
	Name wire.Optional[string] `json:"name,omitzero"`
	Meta Meta                  `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r Root) MarshalJSON() ([]byte, error) {
	type body Root
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *Root) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *Root) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out Root
	wire.Require(obj, "uri", &out.URI)
	wire.Maybe(obj, "name", &out.Name)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// ListRootsResult returns root entries.
type ListRootsResult struct {
	Roots []Root `json:"roots"`
	Meta  Meta   `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r ListRootsResult) MarshalJSON() ([]byte, error) {
	type body ListRootsResult
	r.Roots = nonNil(r.Roots)
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *ListRootsResult) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *ListRootsResult) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ListRootsResult
	wire.RequireWith(obj, "roots", &out.Roots, wire.ListOf(wire.Decode[Root]))
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}
