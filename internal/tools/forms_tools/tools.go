package forms_tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/formcaller/internal/formschema"
	"github.com/teemow/formcaller/internal/google"
	"github.com/teemow/formcaller/internal/loader"
	"github.com/teemow/formcaller/internal/server"
)

const (
	accountDescription = "Account name (default: 'default'). Used to manage multiple Google accounts."
	formIDDescription  = "The Google Form ID, as found in the form's edit URL. Omit to reuse the form loaded in this session."
)

var errNoFormLoaded = errors.New("formId is required: no form has been loaded in this session")

// RegisterFormsTools registers all Google Forms tools with the MCP server.
func RegisterFormsTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if s == nil || sc == nil {
		return errors.New("MCP server and server context are required")
	}
	registerFormTools(s, sc)
	registerSchemaTools(s, sc)
	return nil
}

// loadForm loads formID through the session loader. An empty formID returns
// the form already loaded in the session.
func loadForm(ctx context.Context, sc *server.ServerContext, account, formID string) (formschema.NormalizedForm, error) {
	l := sc.LoaderFor(account, server.SessionIDFromContext(ctx))

	formID = strings.TrimSpace(formID)
	if formID == "" {
		form, ok := l.Current()
		if !ok {
			return formschema.NormalizedForm{}, errNoFormLoaded
		}
		return form, nil
	}

	form, err := l.Load(ctx, formID)
	if err != nil {
		return formschema.NormalizedForm{}, describeLoadError(account, err)
	}
	return form, nil
}

func describeLoadError(account string, err error) error {
	switch {
	case errors.Is(err, loader.ErrSuperseded):
		return errors.New("this request was replaced by a newer form load in the same session")
	case errors.Is(err, loader.ErrAuthentication):
		return fmt.Errorf("%w. %s", err, google.AuthenticationErrorMessage(account))
	default:
		return err
	}
}

// jsonResult renders v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
