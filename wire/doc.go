// Package wire holds the decoding machinery shared by the jsonrpc and mcp
// packages. Encoding is plain encoding/json; decoding is strict and reports
// typed errors so a host can turn malformed input into a protocol-level error
// response instead of silently accepting defaults.
//
// # Presence
//
// Optional[T] tracks whether a field was present on the wire. Nullable[T]
// additionally distinguishes an explicit JSON null from an absent key. Both
// implement IsZero so struct fields tagged `omitzero` disappear from the
// encoded object when unset.
//
// # Errors
//
// Every decode failure is a *DecodeError whose Kind is one of
// KindMissingField, KindTypeMismatch, KindUnknownVariant or
// KindConstraintViolation. The Field attribute carries the path of the
// offending value (for example "content[0].type"). The sentinels
// ErrMissingField, ErrTypeMismatch, ErrUnknownVariant and
// ErrConstraintViolation match with errors.Is.
//
// # Policy
//
// Options selects how tolerant decoding is: unknown union discriminators and
// unknown enumeration values are rejected unless explicitly allowed. Policy is
// carried by value through the decode tree; nothing is stored globally.
//
// Example:
//
//	dec := wire.NewDecoder(wire.AllowUnknownVariants())
//	var res mcp.CallToolResult
//	if err := dec.Decode(data, &res); err != nil {
//	    var de *wire.DecodeError
//	    if errors.As(err, &de) {
//	        slog.Warn("bad tool result", slog.Any("err", de))
//	    }
//	}
package wire
