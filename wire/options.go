package wire

import (
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Options is the decode policy. Use DefaultOptions or NewDecoder rather than
// the zero value, which disables media type validation.
type Options struct {
	// AllowUnknownVariants decodes unrecognized union discriminators into the
	// union's explicit fallback variant instead of failing.
	AllowUnknownVariants bool `env:"MCP_WIRE_ALLOW_UNKNOWN_VARIANTS,default=false"`
	// AllowUnknownEnumValues passes unrecognized enumeration strings through
	// verbatim instead of failing.
	AllowUnknownEnumValues bool `env:"MCP_WIRE_ALLOW_UNKNOWN_ENUMS,default=false"`
	// ValidateMIMETypes requires mimeType fields to parse as type/subtype.
	ValidateMIMETypes bool `env:"MCP_WIRE_VALIDATE_MIME_TYPES,default=true"`
}

// DefaultOptions is the strict policy applied by json.Unmarshal.
func DefaultOptions() Options {
	return Options{ValidateMIMETypes: true}
}

// OptionsFromEnv loads Options from the environment using envdecode. Unset
// variables keep their defaults.
func OptionsFromEnv() (Options, error) {
	opts := DefaultOptions()
	if err := envdecode.Decode(&opts); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return DefaultOptions(), nil
		}
		return Options{}, fmt.Errorf("wire: load options from env: %w", err)
	}
	return opts, nil
}

// Option mutates Options during NewDecoder.
type Option func(*Options)

// AllowUnknownVariants tolerates unknown union discriminators.
func AllowUnknownVariants() Option {
	return func(o *Options) { o.AllowUnknownVariants = true }
}

// AllowUnknownEnumValues tolerates unknown enumeration values.
func AllowUnknownEnumValues() Option {
	return func(o *Options) { o.AllowUnknownEnumValues = true }
}

// WithMIMETypeValidation toggles media type validation.
func WithMIMETypeValidation(enabled bool) Option {
	return func(o *Options) { o.ValidateMIMETypes = enabled }
}

// WithOptions replaces the whole policy, e.g. one loaded by OptionsFromEnv.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}
