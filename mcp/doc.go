// Package mcp contains the Model Context Protocol data types: tools,
// resources, prompts, sampling, completion, roots, logging, elicitation and
// the lifecycle messages that carry them. Every type encodes with
// encoding/json and decodes through the wire package, which reports failures
// as *wire.DecodeError values carrying a field path.
//
// The package is free of transport logic. It neither opens connections nor
// dispatches handlers; callers frame messages with the jsonrpc package and
// route them however they like.
//
// # Method Names
//
// JSON-RPC method and notification names are enumerated as Method constants
// (e.g. ToolsListMethod). ClientRequest, ServerRequest, ClientNotification and
// ServerNotification decode a whole message and select the params type by
// method:
//
//	var req mcp.ClientRequest
//	if err := wire.Unmarshal(data, &req); err != nil {
//	    return err
//	}
//	switch p := req.Params.(type) {
//	case mcp.CallToolRequest:
//	    // p.Name, p.Arguments
//	}
//
// Params is nil when the message carried none, and the field only accepts the
// params types valid for that direction.
//
// Results carry no discriminator. DecodeResult takes the method of the
// originating request instead.
//
// # Content
//
// ContentBlock is a closed union keyed by its "type" member. TextContent,
// ImageContent, AudioContent, ResourceLink and EmbeddedResource implement it;
// UnrecognizedContent preserves blocks of unknown type when the decoder is
// configured with wire.AllowUnknownVariants.
//
//	res := mcp.NewCallToolResult([]mcp.ContentBlock{mcp.NewTextContent("hello")})
//
// # Optional members
//
// Optional scalar members use wire.Optional so that absence survives a round
// trip. Optional slices and maps are nil when absent. Required members are
// plain fields and their absence is reported as a missing-field error.
//
// Params, result and descriptor types keep members they do not model in an
// Extra map and write them back after the known members when encoded.
//
// # Metadata
//
// Most types carry a _meta member. Request params use RequestMeta, which
// lifts the progress token out of the map; everything else uses Meta.
//
// # Logging Levels
//
// LoggingLevel values mirror syslog severities. Use IsValidLoggingLevel to
// validate user-provided values.
//
// # Compatibility
//
// LatestProtocolVersion is the most recent protocol revision these types
// describe. SupportedProtocolVersions lists every revision a peer may
// negotiate.
package mcp
