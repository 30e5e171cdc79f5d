package mcp

import (
	"encoding/json"

	"github.com/ggoodman/mcp-schema-go/wire"
)

// SamplingMessage is a message used as input to model sampling. Content is
// restricted to TextContent, ImageContent and AudioContent.
type SamplingMessage struct {
	Role    Role         `json:"role"`
	Content ContentBlock `json:"content"`
}

func (m *SamplingMessage) UnmarshalJSON(data []byte) error {
	return m.UnmarshalWire(data, wire.DefaultOptions())
}

func (m *SamplingMessage) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out SamplingMessage
	wire.Require(obj, "role", &out.Role)
	wire.RequireWith(obj, "content", &out.Content, decodeSamplingContent)
	if err := obj.Err(); err != nil {
		return err
	}
	*m = out
	return nil
}

// ModelHint supplies model-specific guidance.
type ModelHint struct {
	Name wire.Optional[string] `json:"name,omitzero"`
}

func (h *ModelHint) UnmarshalJSON(data []byte) error {
	return h.UnmarshalWire(data, wire.DefaultOptions())
}

func (h *ModelHint) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ModelHint
	wire.Maybe(obj, "name", &out.Name)
	if err := obj.Err(); err != nil {
		return err
	}
	*h = out
	return nil
}

// ModelPreferences encode model selection tradeoffs. Priorities lie in [0, 1].
type ModelPreferences struct {
	Hints                []ModelHint            `json:"hints,omitzero"`
	CostPriority         wire.Optional[float64] `json:"costPriority,omitzero"`
	SpeedPriority        wire.Optional[float64] `json:"speedPriority,omitzero"`
	IntelligencePriority wire.Optional[float64] `json:"intelligencePriority,omitzero"`
}

func (p *ModelPreferences) UnmarshalJSON(data []byte) error {
	return p.UnmarshalWire(data, wire.DefaultOptions())
}

func (p *ModelPreferences) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out ModelPreferences
	maybeWith(obj, "hints", &out.Hints, wire.ListOf(wire.Decode[ModelHint]))
	wire.MaybeWith(obj, "costPriority", &out.CostPriority, wire.UnitInterval)
	wire.MaybeWith(obj, "speedPriority", &out.SpeedPriority, wire.UnitInterval)
	wire.MaybeWith(obj, "intelligencePriority", &out.IntelligencePriority, wire.UnitInterval)
	if err := obj.Err(); err != nil {
		return err
	}
	*p = out
	return nil
}

// IncludeContext selects which servers' context the client attaches to a
// sampling request.
type IncludeContext string

const (
	IncludeContextNone       IncludeContext = "none"
	IncludeContextThisServer IncludeContext = "thisServer"
	IncludeContextAllServers IncludeContext = "allServers"
)

var decodeIncludeContext = wire.Enum(IncludeContextNone, IncludeContextThisServer, IncludeContextAllServers)

func (c *IncludeContext) UnmarshalJSON(data []byte) error {
	return c.UnmarshalWire(data, wire.DefaultOptions())
}

func (c *IncludeContext) UnmarshalWire(data []byte, opts wire.Options) error {
	v, err := decodeIncludeContext(data, opts)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Stop reasons reported by clients. The field is open-ended.
const (
	StopReasonEndTurn      = "endTurn"
	StopReasonStopSequence = "stopSequence"
	StopReasonMaxTokens    = "maxTokens"
)

// CreateMessageRequest requests a model-generated message.
type CreateMessageRequest struct {
	Messages         []SamplingMessage               `json:"messages"`
	ModelPreferences wire.Optional[ModelPreferences] `json:"modelPreferences,omitzero"`
	SystemPrompt     wire.Optional[string]           `json:"systemPrompt,omitzero"`
	IncludeContext   wire.Optional[IncludeContext]   `json:"includeContext,omitzero"`
	Temperature      wire.Optional[float64]          `json:"temperature,omitzero"`
	MaxTokens        int64                           `json:"maxTokens"`
	StopSequences    []string                        `json:"stopSequences,omitzero"`
	Metadata         map[string]any                  `json:"metadata,omitzero"`
	Meta             RequestMeta                     `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r CreateMessageRequest) MarshalJSON() ([]byte, error) {
	type body CreateMessageRequest
	r.Messages = nonNil(r.Messages)
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *CreateMessageRequest) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *CreateMessageRequest) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out CreateMessageRequest
	wire.RequireWith(obj, "messages", &out.Messages, wire.ListOf(wire.Decode[SamplingMessage]))
	wire.Maybe(obj, "modelPreferences", &out.ModelPreferences)
	wire.Maybe(obj, "systemPrompt", &out.SystemPrompt)
	wire.Maybe(obj, "includeContext", &out.IncludeContext)
	wire.Maybe(obj, "temperature", &out.Temperature)
	wire.RequireWith(obj, "maxTokens", &out.MaxTokens, wire.NonNegativeInt)
	maybeWith(obj, "stopSequences", &out.StopSequences, wire.ListOf(wire.Decode[string]))
	maybe(obj, "metadata", &out.Metadata)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}

// CreateMessageResult returns a generated message.
type CreateMessageResult struct {
	Role       Role                  `json:"role"`
	Content    ContentBlock          `json:"content"`
	Model      string                `json:"model"`
	StopReason wire.Optional[string] `json:"stopReason,omitzero"`
	Meta       Meta                  `json:"_meta,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r CreateMessageResult) MarshalJSON() ([]byte, error) {
	type body CreateMessageResult
	return wire.MarshalExtra(body(r), r.Extra)
}

func (r *CreateMessageResult) UnmarshalJSON(data []byte) error {
	return r.UnmarshalWire(data, wire.DefaultOptions())
}

func (r *CreateMessageResult) UnmarshalWire(data []byte, opts wire.Options) error {
	obj, err := wire.ReadObject(data, opts)
	if err != nil {
		return err
	}
	var out CreateMessageResult
	wire.Require(obj, "role", &out.Role)
	wire.RequireWith(obj, "content", &out.Content, decodeSamplingContent)
	wire.Require(obj, "model", &out.Model)
	wire.Maybe(obj, "stopReason", &out.StopReason)
	maybe(obj, "_meta", &out.Meta)
	if err := obj.Err(); err != nil {
		return err
	}
	out.Extra = obj.Extra()
	*r = out
	return nil
}
