package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/formcaller/internal/agentschema"
	"github.com/teemow/formcaller/internal/formschema"
	"github.com/teemow/formcaller/internal/preview"
	"github.com/teemow/formcaller/internal/server"
)

// Resource URIs.
const (
	CurrentFormURI    = "form://current"
	CurrentSchemaURI  = "form://current/schema"
	CurrentPreviewURI = "form://current/preview"
)

// ErrNoForm is returned when the session has not loaded a form yet.
var ErrNoForm = errors.New("no form loaded in this session; call forms_get_form first")

// RegisterFormResources registers the current-form resources.
func RegisterFormResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if s == nil || sc == nil {
		return errors.New("MCP server and server context are required")
	}

	s.AddResource(mcp.NewResource(CurrentFormURI, "Current Form",
		mcp.WithResourceDescription("The normalized question list of the form loaded in this session"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		form, err := currentForm(ctx, sc)
		if err != nil {
			return nil, err
		}
		return jsonContents(request.Params.URI, form)
	})

	s.AddResource(mcp.NewResource(CurrentSchemaURI, "Current Form Schema",
		mcp.WithResourceDescription("The function-calling schema derived from the form loaded in this session"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		form, err := currentForm(ctx, sc)
		if err != nil {
			return nil, err
		}
		tool, err := agentschema.MCPTool(form, agentschema.Options{})
		if err != nil {
			return nil, fmt.Errorf("failed to build schema: %w", err)
		}
		return jsonContents(request.Params.URI, tool)
	})

	s.AddResource(mcp.NewResource(CurrentPreviewURI, "Current Form Preview",
		mcp.WithResourceDescription("A markdown preview of the form loaded in this session"),
		mcp.WithMIMEType("text/markdown"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		form, err := currentForm(ctx, sc)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/markdown",
				Text:     preview.Markdown(form),
			},
		}, nil
	})

	return nil
}

// currentForm returns the form loaded by the request's account and session.
func currentForm(ctx context.Context, sc *server.ServerContext) (formschema.NormalizedForm, error) {
	account, ok := server.AccountFromContext(ctx)
	if !ok {
		account = server.DefaultAccount
	}
	form, ok := sc.LoaderFor(account, server.SessionIDFromContext(ctx)).Current()
	if !ok {
		return formschema.NormalizedForm{}, ErrNoForm
	}
	return form, nil
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
