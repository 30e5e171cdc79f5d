package sampling

import (
	"errors"
	"fmt"

	"github.com/ggoodman/mcp-schema-go/mcp"
	"github.com/ggoodman/mcp-schema-go/wire"
)

// TextBlock constructs a text content block.
func TextBlock(text string) mcp.ContentBlock {
	return mcp.NewTextContent(text)
}

// UserText returns a SamplingMessage authored by the user with a single text block.
func UserText(text string) mcp.SamplingMessage {
	return mcp.SamplingMessage{Role: mcp.RoleUser, Content: TextBlock(text)}
}

// AssistantText returns a SamplingMessage authored by the assistant with a single text block.
func AssistantText(text string) mcp.SamplingMessage {
	return mcp.SamplingMessage{Role: mcp.RoleAssistant, Content: TextBlock(text)}
}

// UserImage returns a SamplingMessage authored by the user carrying raw image bytes.
func UserImage(data []byte, mimeType string) mcp.SamplingMessage {
	return mcp.SamplingMessage{Role: mcp.RoleUser, Content: mcp.NewImageContent(data, mimeType)}
}

// CreateOption mutates a CreateMessageRequest during construction.
type CreateOption func(*mcp.CreateMessageRequest)

// WithSystemPrompt sets the system prompt.
func WithSystemPrompt(prompt string) CreateOption {
	return func(r *mcp.CreateMessageRequest) { r.SystemPrompt = wire.Some(prompt) }
}

// WithMaxTokens sets the MaxTokens field.
func WithMaxTokens(n int64) CreateOption {
	return func(r *mcp.CreateMessageRequest) { r.MaxTokens = n }
}

// WithTemperature sets the Temperature field.
func WithTemperature(t float64) CreateOption {
	return func(r *mcp.CreateMessageRequest) { r.Temperature = wire.Some(t) }
}

// WithStopSequences sets stop sequences.
func WithStopSequences(stops ...string) CreateOption {
	return func(r *mcp.CreateMessageRequest) { r.StopSequences = append([]string(nil), stops...) }
}

// WithModelPreferences sets model preferences.
func WithModelPreferences(prefs mcp.ModelPreferences) CreateOption {
	return func(r *mcp.CreateMessageRequest) { r.ModelPreferences = wire.Some(prefs) }
}

// WithIncludeContext asks the client to include MCP context from the given servers.
func WithIncludeContext(c mcp.IncludeContext) CreateOption {
	return func(r *mcp.CreateMessageRequest) { r.IncludeContext = wire.Some(c) }
}

// WithMetadata attaches provider-specific metadata.
func WithMetadata(md map[string]any) CreateOption {
	return func(r *mcp.CreateMessageRequest) { r.Metadata = md }
}

// NewCreateMessage constructs a *CreateMessageRequest with the provided messages and options.
func NewCreateMessage(msgs []mcp.SamplingMessage, opts ...CreateOption) *mcp.CreateMessageRequest {
	r := &mcp.CreateMessageRequest{Messages: append([]mcp.SamplingMessage(nil), msgs...)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ValidateCreateMessage performs sanity checks on a CreateMessageRequest.
func ValidateCreateMessage(r *mcp.CreateMessageRequest) error {
	if r == nil {
		return errors.New("nil request")
	}
	if len(r.Messages) == 0 {
		return errors.New("no messages provided")
	}
	for i, m := range r.Messages {
		if m.Role != mcp.RoleUser && m.Role != mcp.RoleAssistant {
			return fmt.Errorf("messages[%d]: invalid role %q", i, m.Role)
		}
		if m.Content == nil {
			return fmt.Errorf("messages[%d]: missing content", i)
		}
		switch m.Content.ContentType() {
		case mcp.ContentTypeText, mcp.ContentTypeImage, mcp.ContentTypeAudio:
		default:
			return fmt.Errorf("messages[%d]: content type %q not allowed in sampling", i, m.Content.ContentType())
		}
	}
	if r.MaxTokens <= 0 {
		return errors.New("maxTokens must be positive")
	}
	if prefs, ok := r.ModelPreferences.Get(); ok {
		for name, p := range map[string]wire.Optional[float64]{
			"costPriority":         prefs.CostPriority,
			"speedPriority":        prefs.SpeedPriority,
			"intelligencePriority": prefs.IntelligencePriority,
		} {
			if v, ok := p.Get(); ok && (v < 0 || v > 1) {
				return fmt.Errorf("modelPreferences.%s: %v outside [0,1]", name, v)
			}
		}
	}
	return nil
}

// Text returns the text of a sampling result, if it carries text content.
func Text(res mcp.CreateMessageResult) (string, bool) {
	tc, ok := res.Content.(mcp.TextContent)
	if !ok {
		return "", false
	}
	return tc.Text, true
}
