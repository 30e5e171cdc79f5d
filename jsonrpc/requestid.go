package jsonrpc

import (
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/ggoodman/mcp-schema-go/wire"
	"github.com/google/uuid"
)

// RequestID is a JSON-RPC id: either a string or an integer. The two forms
// never compare equal, even when they spell the same digits.
type RequestID struct {
	str   string
	num   int64
	isStr bool
}

// StringID returns a string-typed id.
func StringID(s string) RequestID {
	return RequestID{str: s, isStr: true}
}

// IntID returns an integer-typed id.
func IntID(n int64) RequestID {
	return RequestID{num: n}
}

// NewRandomID returns a fresh string id backed by a random UUID.
func NewRandomID() RequestID {
	return StringID(uuid.NewString())
}

// IsString reports whether the id is string-typed.
func (id RequestID) IsString() bool { return id.isStr }

// Str returns the string form if the id is string-typed.
func (id RequestID) Str() (string, bool) { return id.str, id.isStr }

// Int returns the integer form if the id is integer-typed.
func (id RequestID) Int() (int64, bool) { return id.num, !id.isStr }

// String renders the id for display. It does not identify the variant; use
// Equal to compare ids.
func (id RequestID) String() string {
	if id.isStr {
		return id.str
	}
	return strconv.FormatInt(id.num, 10)
}

// Equal reports whether both ids have the same variant and value.
func (id RequestID) Equal(other RequestID) bool {
	return id == other
}

func (id RequestID) LogValue() slog.Value {
	if id.isStr {
		return slog.StringValue(id.str)
	}
	return slog.Int64Value(id.num)
}

func (id RequestID) MarshalJSON() ([]byte, error) {
	if id.isStr {
		return json.Marshal(id.str)
	}
	return strconv.AppendInt(nil, id.num, 10), nil
}

func (id *RequestID) UnmarshalJSON(data []byte) error {
	return id.UnmarshalWire(data, wire.DefaultOptions())
}

// UnmarshalWire accepts a JSON string or an integral JSON number. Integers are
// parsed without passing through float64.
func (id *RequestID) UnmarshalWire(data []byte, opts wire.Options) error {
	switch kind := wire.KindOf(data); kind {
	case "string":
		s, err := wire.Decode[string](data, opts)
		if err != nil {
			return err
		}
		*id = StringID(s)
	case "number":
		n, err := wire.Decode[int64](data, opts)
		if err != nil {
			return err
		}
		*id = IntID(n)
	default:
		return wire.TypeMismatch("", "string or integer", kind)
	}
	return nil
}
