package server

import (
	"context"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// ServerName is the MCP implementation name.
const ServerName = "formcaller"

// NewMCPServer creates the MCP server with tool and resource capabilities.
// Per-session loaders are released when a client session ends.
func NewMCPServer(sc *ServerContext, version string) *mcpserver.MCPServer {
	hooks := &mcpserver.Hooks{}
	hooks.AddOnUnregisterSession(func(_ context.Context, session mcpserver.ClientSession) {
		sc.ReleaseSession(session.SessionID())
	})

	return mcpserver.NewMCPServer(ServerName, version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
		mcpserver.WithHooks(hooks),
	)
}

// SessionIDFromContext returns the MCP session ID of the current request,
// or "" outside a session.
func SessionIDFromContext(ctx context.Context) string {
	session := mcpserver.ClientSessionFromContext(ctx)
	if session == nil {
		return ""
	}
	return session.SessionID()
}
