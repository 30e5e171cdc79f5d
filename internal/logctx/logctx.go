// Package logctx enriches slog records with JSON-RPC message context carried
// on a context.Context.
package logctx

import (
	"context"
	"log/slog"

	"github.com/ggoodman/mcp-schema-go/jsonrpc"
)

// Handler adds "rpc" and "peer" groups to records whose context carries them.
type Handler struct {
	slog.Handler
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if msg, ok := ctx.Value(rpcMsg{}).(*RPCMessage); ok {
		attrs := []any{slog.String("type", msg.Type)}
		if msg.Method != "" {
			attrs = append(attrs, slog.String("method", msg.Method))
		}
		if msg.ID != "" {
			attrs = append(attrs, slog.String("id", msg.ID))
		}
		r.AddAttrs(slog.Group("rpc", attrs...))
	}

	if pd, ok := ctx.Value(peerDataKey{}).(*PeerData); ok {
		r.AddAttrs(slog.Group("peer",
			slog.String("sender", pd.Sender),
			slog.Int("line", pd.Line),
		))
	}

	return h.Handler.Handle(ctx, r)
}

func (h Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Handler{h.Handler.WithAttrs(attrs)}
}

func (h Handler) WithGroup(name string) slog.Handler {
	return Handler{h.Handler.WithGroup(name)}
}

type rpcMsg struct{}

type RPCMessage struct {
	Method string
	ID     string
	Type   string
}

// MessageFrom summarizes m for logging.
func MessageFrom(m *jsonrpc.AnyMessage) *RPCMessage {
	out := &RPCMessage{Method: m.Method, Type: string(m.Kind())}
	if id, ok := m.ID.Get(); ok {
		out.ID = id.String()
	}
	return out
}

func WithRPCMessage(ctx context.Context, msg *RPCMessage) context.Context {
	return context.WithValue(ctx, rpcMsg{}, msg)
}

type peerDataKey struct{}

// PeerData locates a message within a transcript.
type PeerData struct {
	Sender string
	Line   int
}

func WithPeerData(ctx context.Context, data *PeerData) context.Context {
	return context.WithValue(ctx, peerDataKey{}, data)
}
