// Package google provides OAuth2 authorization and token management for the
// Google Forms and Drive APIs.
//
// The OAuth client registration is injected through OAuthConfig; nothing is
// compiled in. Tokens come from one of several TokenProvider implementations:
// a per-account file cache (CLI and STDIO transport), a static bearer token,
// or an mcp-oauth token store filled by the HTTP transport.
package google
