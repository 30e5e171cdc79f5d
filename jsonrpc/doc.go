// Package jsonrpc implements the JSON-RPC 2.0 envelopes that frame every MCP
// message: requests, notifications, responses and error responses, plus the
// string-or-integer RequestID that correlates them.
//
// Envelopes are generic over their payload so a caller can decode params or
// results straight into a protocol type, or keep them as json.RawMessage and
// dispatch later with AnyMessage.
package jsonrpc
