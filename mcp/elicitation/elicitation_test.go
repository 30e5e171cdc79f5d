package elicitation

import (
	"errors"
	"testing"

	"github.com/ggoodman/mcp-schema-go/mcp"
	"github.com/ggoodman/mcp-schema-go/wire"
	"github.com/stretchr/testify/require"
)

func TestObjectSchemaBasic(t *testing.T) {
	s := ObjectSchema(
		PropString("language", "Target language", WithEnum("French", "Spanish")),
		Required("language"),
	)
	require.NoError(t, ValidateObjectSchema(&s))
	require.Equal(t, "object", s.Type)
	require.Contains(t, s.Properties, "language")
	require.Equal(t, []string{"language"}, s.Required)
	require.Equal(t, []string{"French", "Spanish"}, s.Properties["language"].Enum)
}

func TestObjectSchemaRoundTrip(t *testing.T) {
	s := ObjectSchema(
		PropString("email", "Contact", WithFormat("email"), WithLength(3, 254)),
		PropInteger("age", "", WithMinimum(0), WithMaximum(150)),
		PropBoolean("subscribe", "Newsletter", true),
		Required("email"),
	)
	require.NoError(t, ValidateObjectSchema(&s))

	data, err := wire.Marshal(s)
	require.NoError(t, err)

	var got mcp.ElicitationSchema
	require.NoError(t, wire.Unmarshal(data, &got))
	require.Equal(t, s, got)
}

func TestValidateObjectSchemaErrors(t *testing.T) {
	empty := ObjectSchema()
	require.Error(t, ValidateObjectSchema(&empty))

	badReq := ObjectSchema(PropString("language", "desc"), Required("missing"))
	require.Error(t, ValidateObjectSchema(&badReq))

	bounds := ObjectSchema(PropNumber("n", "", WithMinimum(5), WithMaximum(1)))
	require.Error(t, ValidateObjectSchema(&bounds))

	dupe := ObjectSchema(PropEnum("color", "", "red", "red"))
	require.Error(t, ValidateObjectSchema(&dupe))

	names := ObjectSchema(PropString("color", "", WithEnum("red", "blue"), WithEnumNames("Red")))
	require.Error(t, ValidateObjectSchema(&names))
}

func TestValidateObjectSchemaDedupRequired(t *testing.T) {
	s := ObjectSchema(PropString("a", "A"), Required("a", "a", "a"))
	require.NoError(t, ValidateObjectSchema(&s))
	require.Len(t, s.Required, 1)
}

type sample struct {
	Name  string  `json:"name" jsonschema:"description=User name"`
	Count int     `json:"count" jsonschema:"minimum=1,maximum=10"`
	Note  *string `json:"note,omitempty"`
}

func TestSchemaFor(t *testing.T) {
	s, err := SchemaFor[sample]()
	require.NoError(t, err)
	require.Equal(t, "object", s.Type)
	require.Len(t, s.Properties, 3)
	require.ElementsMatch(t, []string{"name", "count"}, s.Required)

	name := s.Properties["name"]
	require.Equal(t, mcp.SchemaTypeString, name.Type)
	require.Equal(t, wire.Some("User name"), name.Description)

	count := s.Properties["count"]
	require.Equal(t, mcp.SchemaTypeInteger, count.Type)
	require.Equal(t, wire.Some(1.0), count.Minimum)
	require.Equal(t, wire.Some(10.0), count.Maximum)
}

func TestSchemaForRejectsNested(t *testing.T) {
	type nested struct {
		Tags []string `json:"tags"`
	}
	_, err := SchemaFor[nested]()
	require.Error(t, err)
}

func TestDecodeContent(t *testing.T) {
	got, err := DecodeContent[sample](map[string]any{"name": "alice", "count": 3.0, "note": "hi"})
	require.NoError(t, err)
	require.Equal(t, "alice", got.Name)
	require.Equal(t, 3, got.Count)
	require.NotNil(t, got.Note)
	require.Equal(t, "hi", *got.Note)
}

func TestDecodeContentErrors(t *testing.T) {
	tests := []struct {
		name    string
		content map[string]any
		opts    []DecodeOption
		kind    error
		field   string
	}{
		{"missing required", map[string]any{"name": "bob"}, nil, wire.ErrMissingField, "count"},
		{"below minimum", map[string]any{"name": "bob", "count": 0.0}, nil, wire.ErrConstraintViolation, "count"},
		{"fractional integer", map[string]any{"name": "bob", "count": 1.5}, nil, wire.ErrConstraintViolation, "count"},
		{"wrong type", map[string]any{"name": 7.0, "count": 1.0}, nil, wire.ErrTypeMismatch, "name"},
		{"strict unknown", map[string]any{"name": "bob", "count": 1.0, "extra": true}, []DecodeOption{Strict()}, wire.ErrConstraintViolation, "extra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeContent[sample](tt.content, tt.opts...)
			require.ErrorIs(t, err, tt.kind)
			var de *wire.DecodeError
			require.True(t, errors.As(err, &de))
			require.Equal(t, tt.field, de.Field)
		})
	}
}

func TestDecodeResult(t *testing.T) {
	v, ok, err := Decode[sample](mcp.Decline())
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, sample{}, v)

	v, ok, err = Decode[sample](mcp.Accept(map[string]any{"name": "carol", "count": 2.0}))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "carol", v.Name)
}

func TestNewRequest(t *testing.T) {
	req, err := NewRequest[sample]("Who are you?")
	require.NoError(t, err)
	require.Equal(t, "Who are you?", req.Message)
	require.Contains(t, req.RequestedSchema.Properties, "count")
}
