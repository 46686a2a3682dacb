// Package server wires the formcaller MCP server: shared dependencies,
// per-session form loaders and the HTTP transport.
//
// # Key Components
//
// ServerContext holds the token provider, metrics and audit logger used by
// tool handlers. It hands out one loader.Loader per account and MCP session,
// so a newer load only supersedes earlier loads from the same client.
// Loaders of a session are released when the session ends.
//
// HTTPServer serves MCP over streamable HTTP at /mcp. Every request must
// carry a Google access token as a bearer token:
//
//	Authorization: Bearer ya29....
//	X-Formcaller-Account: work        (optional, default "default")
//	X-Google-Token-Expiry: RFC3339    (optional)
//
// The token is attached to the request context, where
// google.ContextTokenProvider prefers it over stored tokens, and is cached in
// an mcp-oauth token store under the account name.
//
// HealthChecker serves /healthz, /readyz and /healthz/detailed. MetricsServer
// serves the Prometheus scrape endpoint on its own port.
package server
