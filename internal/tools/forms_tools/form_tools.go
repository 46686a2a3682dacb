package forms_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/formcaller/internal/forms"
	"github.com/teemow/formcaller/internal/formschema"
	"github.com/teemow/formcaller/internal/instrumentation"
	"github.com/teemow/formcaller/internal/preview"
	"github.com/teemow/formcaller/internal/server"
	"github.com/teemow/formcaller/internal/tools/batch"
	"github.com/teemow/formcaller/internal/tools/common"
)

// Output formats of forms_get_form.
const (
	outputJSON     = "json"
	outputMarkdown = "markdown"
	outputText     = "text"
)

// FormOverview is one entry of forms_summarize_forms.
type FormOverview struct {
	FormID  string             `json:"formId"`
	Title   string             `json:"title"`
	Summary formschema.Summary `json:"summary"`
}

func registerFormTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	getFormTool := mcp.NewTool("forms_get_form",
		mcp.WithDescription("Load a Google Form and return its normalized question list"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("account", mcp.Description(accountDescription)),
		mcp.WithString("formId", mcp.Description(formIDDescription)),
		mcp.WithString("format",
			mcp.Description("Output format: 'json' (normalized form), 'markdown' or 'text' preview (default: json)"),
			mcp.Enum(outputJSON, outputMarkdown, outputText),
		),
	)
	s.AddTool(getFormTool, common.InstrumentedToolHandlerWithService("forms_get_form",
		instrumentation.ServiceForms, instrumentation.OperationGet, sc, handleGetForm(sc)))

	listFormsTool := mcp.NewTool("forms_list_forms",
		mcp.WithDescription("List the Google Forms in the account's Drive, most recently modified first"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("account", mcp.Description(accountDescription)),
		mcp.WithNumber("maxResults",
			mcp.Description(fmt.Sprintf("Maximum number of forms to return (default: %d, max: 1000)", forms.DefaultPageSize)),
		),
	)
	s.AddTool(listFormsTool, common.InstrumentedToolHandlerWithService("forms_list_forms",
		instrumentation.ServiceDrive, instrumentation.OperationList, sc, handleListForms(sc)))

	summarizeTool := mcp.NewTool("forms_summarize_forms",
		mcp.WithDescription("Fetch one or more Google Forms and return their titles and question counts"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("account", mcp.Description(accountDescription)),
		mcp.WithString("formIds",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Form ID (string) or array of up to %d form IDs", batch.MaxItems)),
		),
	)
	s.AddTool(summarizeTool, common.InstrumentedToolHandlerWithService("forms_summarize_forms",
		instrumentation.ServiceForms, instrumentation.OperationGet, sc, handleSummarizeForms(sc)))
}

func handleGetForm(sc *server.ServerContext) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(ctx, args)

		format := strings.ToLower(common.StringArg(args, "format"))
		if format == "" {
			format = outputJSON
		}
		switch format {
		case outputJSON, outputMarkdown, outputText:
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q (supported: json, markdown, text)", format)), nil
		}

		form, err := loadForm(ctx, sc, account, common.StringArg(args, "formId"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		switch format {
		case outputMarkdown:
			return mcp.NewToolResultText(preview.Markdown(form)), nil
		case outputText:
			return mcp.NewToolResultText(preview.PlainText(form)), nil
		default:
			return jsonResult(form)
		}
	}
}

func handleListForms(sc *server.ServerContext) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(ctx, args)

		maxResults, err := common.IntArg(args, "maxResults", forms.DefaultPageSize)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if maxResults < 1 || maxResults > 1000 {
			return mcp.NewToolResultError("maxResults must be between 1 and 1000"), nil
		}

		client, err := sc.FormsClientForAccount(ctx, account)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		list, err := client.ListForms(ctx, int64(maxResults))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return jsonResult(map[string]any{
			"account": account,
			"count":   len(list),
			"forms":   list,
		})
	}
}

func handleSummarizeForms(sc *server.ServerContext) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(ctx, args)

		formIDs, err := batch.ParseStringOrArray(args["formIds"], "formIds")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := sc.FormsClientForAccount(ctx, account)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		results := batch.Process(ctx, formIDs, batch.DefaultConcurrency, func(ctx context.Context, formID string) (FormOverview, error) {
			form, err := client.GetNormalizedForm(ctx, formID)
			if err != nil {
				return FormOverview{}, err
			}
			return FormOverview{FormID: formID, Title: form.Title, Summary: form.Summary()}, nil
		})

		text, err := results.JSON()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}
