// Package actorsmcp smoke-tests a remote MCP server reachable over SSE,
// such as the Apify Actors MCP server. A run performs a preflight GET
// against the service base URL with a bearer token, opens an MCP session at
// <base-url>/sse, initializes it, lists the remote tools and invokes one of
// them, printing each result to an output writer.
package actorsmcp
