package mcp

import (
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/elnormous/contenttype"
	"github.com/ggoodman/mcp-schema-go/wire"
	"github.com/google/uuid"
)

// LatestProtocolVersion is the latest version of the protocol.
const LatestProtocolVersion = "2025-06-18"

// SupportedProtocolVersions lists the revisions whose shapes this package
// can represent, newest first.
var SupportedProtocolVersions = []string{LatestProtocolVersion, "2025-03-26", "2024-11-05"}

// IsSupportedProtocolVersion reports whether v is in SupportedProtocolVersions.
func IsSupportedProtocolVersion(v string) bool {
	for _, s := range SupportedProtocolVersions {
		if s == v {
			return true
		}
	}
	return false
}

// Role indicates the role of a message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var decodeRole = wire.Enum(RoleUser, RoleAssistant)

func (r *Role) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *Role) UnmarshalWire(data []byte, opts wire.Options) error {
	v, err := decodeRole(data, opts)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// LoggingLevel represents structured log severity.
type LoggingLevel string

// Logging levels mirror syslog severities.
const (
	LoggingLevelDebug     LoggingLevel = "debug"
	LoggingLevelInfo      LoggingLevel = "info"
	LoggingLevelNotice    LoggingLevel = "notice"
	LoggingLevelWarning   LoggingLevel = "warning"
	LoggingLevelError     LoggingLevel = "error"
	LoggingLevelCritical  LoggingLevel = "critical"
	LoggingLevelAlert     LoggingLevel = "alert"
	LoggingLevelEmergency LoggingLevel = "emergency"
)

var loggingLevels = []LoggingLevel{
	LoggingLevelDebug,
	LoggingLevelInfo,
	LoggingLevelNotice,
	LoggingLevelWarning,
	LoggingLevelError,
	LoggingLevelCritical,
	LoggingLevelAlert,
	LoggingLevelEmergency,
}

var decodeLoggingLevel = wire.Enum(loggingLevels...)

// IsValidLoggingLevel reports whether the provided level is one of the
// protocol-defined syslog severities.
func IsValidLoggingLevel(level LoggingLevel) bool {
	for _, l := range loggingLevels {
		if l == level {
			return true
		}
	}
	return false
}

func (l *LoggingLevel) UnmarshalJSON(data []byte) error {
	return l.UnmarshalWire(data, wire.DefaultOptions())
}

func (l *LoggingLevel) UnmarshalWire(data []byte, opts wire.Options) error {
	v, err := decodeLoggingLevel(data, opts)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Cursor is an opaque pagination token.
type Cursor string

// Meta is the free-form `_meta` object. A nil Meta is absent from the wire
// form; an empty, non-nil Meta encodes as {}.
type Meta map[string]any

// RequestMeta is the `_meta` object of request params. The progress token is
// typed; every other key is kept in Extra.
type RequestMeta struct {
	ProgressToken wire.Optional[ProgressToken]
	Extra         Meta
}

func (m RequestMeta) IsZero() bool {
	return !m.ProgressToken.Set && m.Extra == nil
}

func (m RequestMeta) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+1)
	for k, v := range m.Extra {
		out[k] = v
	}
	if tok, ok := m.ProgressToken.Get(); ok {
		out["progressToken"] = tok
	}
	return json.Marshal(out)
}

func (m *RequestMeta) UnmarshalJSON(data []byte) error {
	return m.UnmarshalWire(data, wire.DefaultOptions())
}

func (m *RequestMeta) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out RequestMeta
	wire.Maybe(obj, "progressToken", &out.ProgressToken)
	if err := obj.Err(); err != nil {
		return err
	}
	for k, raw := range obj.Rest("progressToken") {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return wire.At(k, err)
		}
		if out.Extra == nil {
			out.Extra = Meta{}
		}
		out.Extra[k] = v
	}
	if !out.ProgressToken.Set && out.Extra == nil {
		out.Extra = Meta{}
	}
	*m = out
	return nil
}

// ProgressToken correlates progress notifications with a request. It is a
// string or a non-negative integer.
type ProgressToken struct {
	str   string
	num   int64
	isStr bool
}

// StringProgressToken returns a string-typed token.
func StringProgressToken(s string) ProgressToken {
	return ProgressToken{str: s, isStr: true}
}

// IntProgressToken returns an integer-typed token. n must be non-negative to
// decode on the other side.
func IntProgressToken(n int64) ProgressToken {
	return ProgressToken{num: n}
}

// NewProgressToken returns a random string token.
func NewProgressToken() ProgressToken {
	return StringProgressToken(uuid.NewString())
}

func (t ProgressToken) IsString() bool { return t.isStr }

func (t ProgressToken) Str() (string, bool) { return t.str, t.isStr }

func (t ProgressToken) Int() (int64, bool) { return t.num, !t.isStr }

// Equal reports whether both tokens have the same variant and value.
func (t ProgressToken) Equal(o ProgressToken) bool { return t == o }

func (t ProgressToken) String() string {
	if t.isStr {
		return t.str
	}
	return strconv.FormatInt(t.num, 10)
}

func (t ProgressToken) LogValue() slog.Value {
	if t.isStr {
		return slog.StringValue(t.str)
	}
	return slog.Int64Value(t.num)
}

func (t ProgressToken) MarshalJSON() ([]byte, error) {
	if t.isStr {
		return json.Marshal(t.str)
	}
	return strconv.AppendInt(nil, t.num, 10), nil
}

func (t *ProgressToken) UnmarshalJSON(data []byte) error {
	return t.UnmarshalWire(data, wire.DefaultOptions())
}

func (t *ProgressToken) UnmarshalWire(data []byte, opts wire.Options) error {
	switch kind := wire.KindOf(data); kind {
	case "string":
		s, err := wire.Decode[string](data, opts)
		if err != nil {
			return err
		}
		*t = StringProgressToken(s)
	case "number":
		n, err := wire.NonNegativeInt(data, opts)
		if err != nil {
			return err
		}
		*t = IntProgressToken(n)
	default:
		return wire.TypeMismatch("", "string or integer", kind)
	}
	return nil
}

// Implementation describes the name and version of an MCP implementation.
type Implementation struct {
	Name    string                `json:"name"`
	Title   wire.Optional[string] `json:"title,omitzero"`
	Version string                `json:"version"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (i Implementation) MarshalJSON() ([]byte, error) {
	type body Implementation
	return wire.MarshalExtra(body(i), i.Extra)
}

func (i *Implementation) UnmarshalJSON(data []byte) error {
	return i.UnmarshalWire(data, wire.DefaultOptions())
}

func (i *Implementation) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out Implementation
	wire.Require(obj, "name", &out.Name)
	wire.Maybe(obj, "title", &out.Title)
	wire.Require(obj, "version", &out.Version)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*i = out
	return nil
}

// Annotations provide optional routing/prioritization hints.
type Annotations struct {
	Audience     []Role                 `json:"audience,omitzero"`
	Priority     wire.Optional[float64] `json:"priority,omitzero"`
	LastModified wire.Optional[string]  `json:"lastModified,omitzero"`
}

func (a *Annotations) UnmarshalJSON(data []byte) error {
	return a.UnmarshalWire(data, wire.DefaultOptions())
}

func (a *Annotations) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out Annotations
	maybeWith(obj, "audience", &out.Audience, wire.ListOf(wire.Decode[Role]))
	wire.MaybeWith(obj, "priority", &out.Priority, wire.UnitInterval)
	wire.Maybe(obj, "lastModified", &out.LastModified)
	if err := obj.Err(); err != nil {
		return err
	}
	*a = out
	return nil
}

// EmptyResult is returned for operations that do not return data.
type EmptyResult struct {
	Meta Meta `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r EmptyResult) MarshalJSON() ([]byte, error) {
	type body EmptyResult
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *EmptyResult) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *EmptyResult) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out EmptyResult
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// maybe decodes an optional member whose zero value already means absent:
// slices and maps tagged omitzero.
func maybe[T any](obj *wire.Object, name string, dst *T) {
	maybeWith(obj, name, dst, wire.Decode[T])
}

func maybeWith[T any](obj *wire.Object, name string, dst *T, fn wire.DecodeFunc[T]) {
	var o wire.Optional[T]
	wire.MaybeWith(obj, name, &o, fn)
	*dst = o.Value
}

// decodeMIMEType checks that the value parses as type/subtype.
func decodeMIMEType(data []byte, opts wire.Options) (string, error) {
	s, err := wire.Decode[string](data, opts)
	if err != nil || !opts.ValidateMIMETypes {
		return s, err
	}
	mt := contenttype.NewMediaType(s)
	if mt.Type == "" || mt.Subtype == "" {
		return "", wire.ConstraintViolation("", "media type")
	}
	return s, nil
}
