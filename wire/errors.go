package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrorKind classifies a decode failure.
type ErrorKind int

const (
	// KindMissingField reports an absent required field.
	KindMissingField ErrorKind = iota + 1
	// KindTypeMismatch reports a JSON value of the wrong type.
	KindTypeMismatch
	// KindUnknownVariant reports an unrecognized union discriminator.
	KindUnknownVariant
	// KindConstraintViolation reports a value outside its enumeration, range or pattern.
	KindConstraintViolation
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingField:
		return "missing_field"
	case KindTypeMismatch:
		return "type_mismatch"
	case KindUnknownVariant:
		return "unknown_variant"
	case KindConstraintViolation:
		return "constraint_violation"
	default:
		return "unknown"
	}
}

// Sentinels matched by (*DecodeError).Is.
var (
	ErrMissingField        = errors.New("missing required field")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrUnknownVariant      = errors.New("unknown variant")
	ErrConstraintViolation = errors.New("constraint violation")
)

// DecodeError describes why a JSON document could not be decoded into a
// protocol type.
type DecodeError struct {
	Kind ErrorKind
	// Field is the path of the offending value relative to the decoded root.
	// Empty when the root itself is at fault.
	Field string
	// Expected and Actual describe a type mismatch.
	Expected string
	Actual   string
	// Tag is the unrecognized discriminator value.
	Tag string
	// Rule names the violated constraint.
	Rule string
}

// MissingField builds a KindMissingField error.
func MissingField(field string) *DecodeError {
	return &DecodeError{Kind: KindMissingField, Field: field}
}

// TypeMismatch builds a KindTypeMismatch error.
func TypeMismatch(field, expected, actual string) *DecodeError {
	return &DecodeError{Kind: KindTypeMismatch, Field: field, Expected: expected, Actual: actual}
}

// UnknownVariant builds a KindUnknownVariant error.
func UnknownVariant(field, tag string) *DecodeError {
	return &DecodeError{Kind: KindUnknownVariant, Field: field, Tag: tag}
}

// ConstraintViolation builds a KindConstraintViolation error.
func ConstraintViolation(field, rule string) *DecodeError {
	return &DecodeError{Kind: KindConstraintViolation, Field: field, Rule: rule}
}

func (e *DecodeError) Error() string {
	field := e.Field
	if field == "" {
		field = "<root>"
	}
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("wire: missing required field %q", field)
	case KindTypeMismatch:
		return fmt.Sprintf("wire: field %q: expected %s, got %s", field, e.Expected, e.Actual)
	case KindUnknownVariant:
		return fmt.Sprintf("wire: field %q: unknown variant %q", field, e.Tag)
	case KindConstraintViolation:
		return fmt.Sprintf("wire: field %q: violates %s", field, e.Rule)
	default:
		return fmt.Sprintf("wire: field %q: decode error", field)
	}
}

// Is matches the kind sentinels.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrMissingField:
		return e.Kind == KindMissingField
	case ErrTypeMismatch:
		return e.Kind == KindTypeMismatch
	case ErrUnknownVariant:
		return e.Kind == KindUnknownVariant
	case ErrConstraintViolation:
		return e.Kind == KindConstraintViolation
	}
	return false
}

// LogValue renders the error as an attribute group.
func (e *DecodeError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", e.Kind.String()),
		slog.String("field", e.Field),
	}
	if e.Expected != "" {
		attrs = append(attrs, slog.String("expected", e.Expected), slog.String("actual", e.Actual))
	}
	if e.Tag != "" {
		attrs = append(attrs, slog.String("tag", e.Tag))
	}
	if e.Rule != "" {
		attrs = append(attrs, slog.String("rule", e.Rule))
	}
	return slog.GroupValue(attrs...)
}

// At returns err with its field path prefixed by segment. Errors that are
// not *DecodeError are converted first so every failure leaving this
// package is typed.
func At(segment string, err error) error {
	if err == nil {
		return nil
	}
	de := asDecodeError(err)
	cp := *de
	cp.Field = joinPath(segment, de.Field)
	return &cp
}

func joinPath(prefix, rest string) string {
	switch {
	case prefix == "":
		return rest
	case rest == "":
		return prefix
	case strings.HasPrefix(rest, "["):
		return prefix + rest
	default:
		return prefix + "." + rest
	}
}

// asDecodeError maps encoding/json failures onto the taxonomy.
func asDecodeError(err error) *DecodeError {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		expected := "value"
		if ute.Type != nil {
			expected = jsonTypeName(ute.Type.Kind().String())
		}
		return TypeMismatch(ute.Field, expected, ute.Value)
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return TypeMismatch("", "json", "malformed input")
	}
	return TypeMismatch("", "json", err.Error())
}

func jsonTypeName(goKind string) string {
	switch goKind {
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "map", "struct":
		return "object"
	case "slice", "array":
		return "array"
	case "float32", "float64":
		return "number"
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return "integer"
	default:
		return goKind
	}
}
