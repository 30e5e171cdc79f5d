package wire

import (
	"encoding/json"
	"sort"
)

// Object is a parsed JSON object whose members are decoded on demand. The
// first failure sticks; later Require/Maybe calls become no-ops so a type's
// UnmarshalWire can list its fields and check Err once.
type Object struct {
	fields map[string]json.RawMessage
	seen   map[string]struct{}
	opts   Options
	err    error
}

// ReadObject parses data as a JSON object.
func ReadObject(data []byte, opts Options) (*Object, error) {
	if kind := kindOf(data); kind != "object" {
		return nil, TypeMismatch("", "object", kind)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, asDecodeError(err)
	}
	return &Object{fields: fields, opts: opts}, nil
}

func (o *Object) Options() Options { return o.opts }

// Has reports whether name is present, including as null.
func (o *Object) Has(name string) bool {
	_, ok := o.fields[name]
	return ok
}

// Raw returns the undecoded member and marks it as read.
func (o *Object) Raw(name string) (json.RawMessage, bool) {
	return o.take(name)
}

func (o *Object) take(name string) (json.RawMessage, bool) {
	raw, ok := o.fields[name]
	if !ok {
		return nil, false
	}
	if o.seen == nil {
		o.seen = make(map[string]struct{}, len(o.fields))
	}
	o.seen[name] = struct{}{}
	return raw, true
}

// Extra returns the members that no Require, Maybe, Tag or Raw call has
// read, or nil if there are none.
func (o *Object) Extra() map[string]json.RawMessage {
	var out map[string]json.RawMessage
	for k, v := range o.fields {
		if _, ok := o.seen[k]; ok {
			continue
		}
		if out == nil {
			out = make(map[string]json.RawMessage)
		}
		out[k] = v
	}
	return out
}

// Rest returns the members not named in known, in key order.
func (o *Object) Rest(known ...string) map[string]json.RawMessage {
	skip := make(map[string]struct{}, len(known))
	for _, k := range known {
		skip[k] = struct{}{}
	}
	var out map[string]json.RawMessage
	for k, v := range o.fields {
		if _, ok := skip[k]; ok {
			continue
		}
		if out == nil {
			out = make(map[string]json.RawMessage)
		}
		out[k] = v
	}
	return out
}

// Keys returns the member names in sorted order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.fields))
	for k := range o.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fail records err unless an earlier failure is already recorded.
func (o *Object) Fail(err error) {
	if o.err == nil && err != nil {
		o.err = asDecodeError(err)
	}
}

// Err returns the first recorded failure.
func (o *Object) Err() error {
	if o.err == nil {
		return nil
	}
	return o.err
}

// Require decodes the required member name into dst.
func Require[T any](o *Object, name string, dst *T) {
	RequireWith(o, name, dst, Decode[T])
}

// RequireWith decodes the required member name into dst with fn.
func RequireWith[T any](o *Object, name string, dst *T, fn DecodeFunc[T]) {
	if o.err != nil {
		return
	}
	raw, ok := o.take(name)
	if !ok {
		o.err = MissingField(name)
		return
	}
	v, err := fn(raw, o.opts)
	if err != nil {
		o.Fail(At(name, err))
		return
	}
	*dst = v
}

// Maybe decodes the optional member name into dst. A present null is a type
// mismatch.
func Maybe[T any](o *Object, name string, dst *Optional[T]) {
	MaybeWith(o, name, dst, Decode[T])
}

// MaybeWith decodes the optional member name into dst with fn.
func MaybeWith[T any](o *Object, name string, dst *Optional[T], fn DecodeFunc[T]) {
	if o.err != nil {
		return
	}
	raw, ok := o.take(name)
	if !ok {
		*dst = None[T]()
		return
	}
	v, err := fn(raw, o.opts)
	if err != nil {
		o.Fail(At(name, err))
		return
	}
	*dst = Some(v)
}

// MaybeNull decodes a member that may be absent, null, or a value.
func MaybeNull[T any](o *Object, name string, dst *Nullable[T]) {
	if o.err != nil {
		return
	}
	raw, ok := o.take(name)
	if !ok {
		*dst = Nullable[T]{}
		return
	}
	var n Nullable[T]
	if err := n.UnmarshalWire(raw, o.opts); err != nil {
		o.Fail(At(name, err))
		return
	}
	*dst = n
}

// RequireNullable decodes a member that must be present but may be null.
func RequireNullable[T any](o *Object, name string, dst *Nullable[T]) {
	if o.err != nil {
		return
	}
	if _, ok := o.fields[name]; !ok {
		o.err = MissingField(name)
		return
	}
	MaybeNull(o, name, dst)
}

// Tag reads the string discriminator name. It reports MissingField when the
// member is absent and TypeMismatch when it is not a string.
func Tag(o *Object, name string) (string, error) {
	var tag string
	RequireWith(o, name, &tag, Decode[string])
	return tag, o.Err()
}

// MarshalExtra encodes v, which must encode as a JSON object, and appends the
// members of extra that v does not already define, in key order.
func MarshalExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(data, &known); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if _, ok := known[k]; !ok {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return data, nil
	}
	sort.Strings(keys)

	out := append([]byte(nil), data[:len(data)-1]...)
	for i, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(extra[k])
		if err != nil {
			return nil, err
		}
		if i > 0 || len(known) > 0 {
			out = append(out, ',')
		}
		out = append(out, name...)
		out = append(out, ':')
		out = append(out, val...)
	}
	return append(out, '}'), nil
}
