package sampling

import (
	"testing"

	"github.com/ggoodman/mcp-schema-go/mcp"
	"github.com/ggoodman/mcp-schema-go/wire"
	"github.com/stretchr/testify/require"
)

func TestNewCreateMessageBasic(t *testing.T) {
	msg := UserText("hello")
	r := NewCreateMessage([]mcp.SamplingMessage{msg}, WithSystemPrompt("system"), WithMaxTokens(10))
	require.NoError(t, ValidateCreateMessage(r))
	require.Equal(t, wire.Some("system"), r.SystemPrompt)
	require.EqualValues(t, 10, r.MaxTokens)
	require.Len(t, r.Messages, 1)
	require.Equal(t, mcp.NewTextContent("hello"), r.Messages[0].Content)
}

func TestCreateMessageEncodesAndDecodes(t *testing.T) {
	r := NewCreateMessage(
		[]mcp.SamplingMessage{UserText("hi"), AssistantText("hello"), UserImage([]byte{0x89, 0x50}, "image/png")},
		WithTemperature(0.5),
		WithMaxTokens(64),
		WithStopSequences("\n\n"),
		WithIncludeContext(mcp.IncludeContextThisServer),
	)
	require.NoError(t, ValidateCreateMessage(r))

	data, err := wire.Marshal(r)
	require.NoError(t, err)

	var got mcp.CreateMessageRequest
	require.NoError(t, wire.Unmarshal(data, &got))
	require.Equal(t, *r, got)
}

func TestValidateCreateMessageErrors(t *testing.T) {
	require.Error(t, ValidateCreateMessage(nil))
	require.Error(t, ValidateCreateMessage(&mcp.CreateMessageRequest{}))

	noTokens := NewCreateMessage([]mcp.SamplingMessage{UserText("x")})
	require.ErrorContains(t, ValidateCreateMessage(noTokens), "maxTokens")

	badRole := NewCreateMessage([]mcp.SamplingMessage{UserText("x"), {Role: "system", Content: TextBlock("y")}}, WithMaxTokens(1))
	require.ErrorContains(t, ValidateCreateMessage(badRole), "messages[1]")

	link := NewCreateMessage([]mcp.SamplingMessage{{Role: mcp.RoleUser, Content: mcp.NewResourceLink("file:///a", "a")}}, WithMaxTokens(1))
	require.ErrorContains(t, ValidateCreateMessage(link), "messages[0]")

	prefs := NewCreateMessage([]mcp.SamplingMessage{UserText("x")}, WithMaxTokens(1),
		WithModelPreferences(mcp.ModelPreferences{CostPriority: wire.Some(1.5)}))
	require.ErrorContains(t, ValidateCreateMessage(prefs), "costPriority")
}

func TestText(t *testing.T) {
	s, ok := Text(mcp.CreateMessageResult{Role: mcp.RoleAssistant, Content: mcp.NewTextContent("done"), Model: "m"})
	require.True(t, ok)
	require.Equal(t, "done", s)

	_, ok = Text(mcp.CreateMessageResult{Content: mcp.NewImageContent([]byte{1}, "image/png")})
	require.False(t, ok)
}
