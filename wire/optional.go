package wire

import "encoding/json"

// Optional holds a field that may be absent from the wire form. The zero
// value is absent.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// OrElse returns the value if present, otherwise def.
func (o Optional[T]) OrElse(def T) T {
	if o.Set {
		return o.Value
	}
	return def
}

// IsZero reports absence; it drives the `omitzero` tag.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	return o.UnmarshalWire(data, DefaultOptions())
}

// UnmarshalWire decodes a present value. JSON null is a type mismatch: use
// Nullable for fields where the protocol admits null.
func (o *Optional[T]) UnmarshalWire(data []byte, opts Options) error {
	v, err := Decode[T](data, opts)
	if err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// Presence is the three-way state of a Nullable field.
type Presence uint8

const (
	Absent Presence = iota
	Null
	Present
)

// Nullable holds a field that may be absent, explicitly null, or a value.
type Nullable[T any] struct {
	Value T
	State Presence
}

// NullableOf returns a present Nullable holding v.
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Value: v, State: Present}
}

// NullOf returns an explicitly null Nullable.
func NullOf[T any]() Nullable[T] {
	return Nullable[T]{State: Null}
}

// Get returns the value and whether it is present and non-null.
func (n Nullable[T]) Get() (T, bool) {
	return n.Value, n.State == Present
}

// IsNull reports an explicit JSON null.
func (n Nullable[T]) IsNull() bool { return n.State == Null }

// IsZero reports absence; it drives the `omitzero` tag.
func (n Nullable[T]) IsZero() bool { return n.State == Absent }

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.State != Present {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	return n.UnmarshalWire(data, DefaultOptions())
}

func (n *Nullable[T]) UnmarshalWire(data []byte, opts Options) error {
	if kindOf(data) == "null" {
		*n = NullOf[T]()
		return nil
	}
	v, err := Decode[T](data, opts)
	if err != nil {
		return err
	}
	*n = NullableOf(v)
	return nil
}
