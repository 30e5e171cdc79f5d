package wire

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

// Unmarshaler is implemented by types that decode under an explicit policy.
type Unmarshaler interface {
	UnmarshalWire(data []byte, opts Options) error
}

// DecodeFunc decodes one JSON value.
type DecodeFunc[T any] func(data []byte, opts Options) (T, error)

// Decoder applies a fixed policy. It holds no mutable state and is safe for
// concurrent use.
type Decoder struct {
	opts Options
}

var defaultDecoder = &Decoder{opts: DefaultOptions()}

// NewDecoder returns a Decoder starting from DefaultOptions.
func NewDecoder(opts ...Option) *Decoder {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Decoder{opts: o}
}

// Options returns the decoder's policy.
func (d *Decoder) Options() Options {
	if d == nil {
		return DefaultOptions()
	}
	return d.opts
}

// Decode parses data into v.
func (d *Decoder) Decode(data []byte, v Unmarshaler) error {
	if !json.Valid(data) {
		return TypeMismatch("", "json", "malformed input")
	}
	return v.UnmarshalWire(data, d.Options())
}

// Unmarshal decodes data into v under DefaultOptions.
func Unmarshal(data []byte, v Unmarshaler) error {
	return defaultDecoder.Decode(data, v)
}

// Marshal encodes v. It exists for symmetry with Unmarshal.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Validate reports whether v is well-formed by encoding it and decoding the
// result under DefaultOptions.
func Validate[T any, PT interface {
	*T
	Unmarshaler
}](v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var out T
	return PT(&out).UnmarshalWire(data, DefaultOptions())
}

// Decode is the default DecodeFunc for T. Types implementing Unmarshaler
// decode themselves; scalars are checked strictly; everything else falls
// back to encoding/json with JSON null rejected.
func Decode[T any](data []byte, opts Options) (T, error) {
	var v T
	if u, ok := any(&v).(Unmarshaler); ok {
		err := u.UnmarshalWire(data, opts)
		return v, err
	}
	kind := kindOf(data)
	switch p := any(&v).(type) {
	case *any:
		err := json.Unmarshal(data, p)
		return v, wrap(err)
	case *json.RawMessage:
		*p = append(json.RawMessage(nil), data...)
		return v, nil
	case *string:
		if kind != "string" {
			return v, TypeMismatch("", "string", kind)
		}
		err := json.Unmarshal(data, p)
		return v, wrap(err)
	case *bool:
		if kind != "boolean" {
			return v, TypeMismatch("", "boolean", kind)
		}
		*p = data[firstByte(data)] == 't'
		return v, nil
	case *float64:
		if kind != "number" {
			return v, TypeMismatch("", "number", kind)
		}
		f, err := strconv.ParseFloat(string(trimSpace(data)), 64)
		if err != nil {
			return v, TypeMismatch("", "number", kind)
		}
		*p = f
		return v, nil
	case *int64:
		n, err := decodeInt(data)
		*p = n
		return v, err
	case *int:
		n, err := decodeInt(data)
		*p = int(n)
		return v, err
	}
	if kind == "null" {
		return v, TypeMismatch("", jsonTypeName(reflect.TypeOf(&v).Elem().Kind().String()), "null")
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, asDecodeError(err)
	}
	return v, nil
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return asDecodeError(err)
}

// decodeInt accepts any JSON number with an integral value representable as
// an int64, without a float64 round trip for plain integer literals.
func decodeInt(data []byte) (int64, error) {
	if kind := kindOf(data); kind != "number" {
		return 0, TypeMismatch("", "integer", kind)
	}
	s := string(trimSpace(data))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f >= 0x1p63 || f < -0x1p63 {
		return 0, ConstraintViolation("", "integer")
	}
	return int64(f), nil
}

// NonEmpty decodes a string that must not be empty.
func NonEmpty[T ~string](data []byte, opts Options) (T, error) {
	s, err := Decode[string](data, opts)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", ConstraintViolation("", "non-empty")
	}
	return T(s), nil
}

// NonNegativeInt decodes an integer that must be >= 0.
func NonNegativeInt(data []byte, _ Options) (int64, error) {
	n, err := decodeInt(data)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, ConstraintViolation("", "non-negative")
	}
	return n, nil
}

// UnitInterval decodes a number in [0, 1].
func UnitInterval(data []byte, opts Options) (float64, error) {
	f, err := Decode[float64](data, opts)
	if err != nil {
		return 0, err
	}
	if f < 0 || f > 1 {
		return 0, ConstraintViolation("", "range [0,1]")
	}
	return f, nil
}

// Literal decodes a string that must equal want.
func Literal(want string) DecodeFunc[string] {
	return func(data []byte, opts Options) (string, error) {
		s, err := Decode[string](data, opts)
		if err != nil {
			return "", err
		}
		if s != want {
			return "", ConstraintViolation("", strconv.Quote(want))
		}
		return s, nil
	}
}

// Enum decodes a string restricted to allowed. Unknown values pass through
// when the policy allows unknown enumeration values.
func Enum[T ~string](allowed ...T) DecodeFunc[T] {
	set := make(map[T]struct{}, len(allowed))
	rule := "one of "
	for i, a := range allowed {
		set[a] = struct{}{}
		if i > 0 {
			rule += "|"
		}
		rule += string(a)
	}
	return func(data []byte, opts Options) (T, error) {
		s, err := Decode[string](data, opts)
		if err != nil {
			return "", err
		}
		v := T(s)
		if _, ok := set[v]; !ok && !opts.AllowUnknownEnumValues {
			return "", ConstraintViolation("", rule)
		}
		return v, nil
	}
}

// ListOf lifts an element decoder to a JSON array decoder. Element errors are
// reported at "[i]". An empty array decodes to an empty, non-nil slice.
func ListOf[T any](fn DecodeFunc[T]) DecodeFunc[[]T] {
	return func(data []byte, opts Options) ([]T, error) {
		if kind := kindOf(data); kind != "array" {
			return nil, TypeMismatch("", "array", kind)
		}
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, asDecodeError(err)
		}
		out := make([]T, 0, len(raws))
		for i, raw := range raws {
			v, err := fn(raw, opts)
			if err != nil {
				return nil, At("["+strconv.Itoa(i)+"]", err)
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// MapOf lifts a value decoder to a JSON object decoder with string keys.
func MapOf[T any](fn DecodeFunc[T]) DecodeFunc[map[string]T] {
	return func(data []byte, opts Options) (map[string]T, error) {
		if kind := kindOf(data); kind != "object" {
			return nil, TypeMismatch("", "object", kind)
		}
		var raws map[string]json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, asDecodeError(err)
		}
		out := make(map[string]T, len(raws))
		for k, raw := range raws {
			v, err := fn(raw, opts)
			if err != nil {
				return nil, At(k, err)
			}
			out[k] = v
		}
		return out, nil
	}
}

// KindOf reports the JSON type of data: object, array, string, number,
// boolean, null, or empty for blank input.
func KindOf(data []byte) string { return kindOf(data) }

func kindOf(data []byte) string {
	i := firstByte(data)
	if i < 0 {
		return ""
	}
	switch data[i] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

func firstByte(data []byte) int {
	for i, c := range data {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return i
	}
	return -1
}

func trimSpace(data []byte) []byte {
	i := firstByte(data)
	if i < 0 {
		return nil
	}
	j := len(data)
	for j > i {
		switch data[j-1] {
		case ' ', '\t', '\n', '\r':
			j--
			continue
		}
		break
	}
	return data[i:j]
}
