package forms_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/formcaller/internal/agentschema"
	"github.com/teemow/formcaller/internal/instrumentation"
	"github.com/teemow/formcaller/internal/server"
	"github.com/teemow/formcaller/internal/tools/common"
)

func registerSchemaTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	schemaTool := mcp.NewTool("forms_get_agent_schema",
		mcp.WithDescription("Derive the function-calling schema an AI agent uses to submit answers to a Google Form. "+
			"Each answerable question becomes one parameter named by its decimal question ID."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("account", mcp.Description(accountDescription)),
		mcp.WithString("formId", mcp.Description(formIDDescription)),
		mcp.WithString("format",
			mcp.Description("Schema flavour: 'mcp', 'genai', 'openai' or 'jsonschema' (default: mcp)"),
			mcp.Enum(string(agentschema.FormatMCP), string(agentschema.FormatGenAI),
				string(agentschema.FormatOpenAI), string(agentschema.FormatJSONSchema)),
		),
		mcp.WithString("name",
			mcp.Description(fmt.Sprintf("Function name (default: %s)", agentschema.FunctionName)),
		),
		mcp.WithString("description",
			mcp.Description("Function description (default: derived from the form title and description)"),
		),
	)
	s.AddTool(schemaTool, common.InstrumentedToolHandlerWithService("forms_get_agent_schema",
		instrumentation.ServiceForms, instrumentation.OperationGet, sc, handleGetAgentSchema(sc)))

	instructionsTool := mcp.NewTool("forms_get_agent_instructions",
		mcp.WithDescription("Build the system instructions for a voice agent that walks a caller through a Google Form"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("account", mcp.Description(accountDescription)),
		mcp.WithString("formId", mcp.Description(formIDDescription)),
		mcp.WithString("instructions",
			mcp.Description("Replaces the default agent instructions. The form is still appended."),
		),
	)
	s.AddTool(instructionsTool, common.InstrumentedToolHandlerWithService("forms_get_agent_instructions",
		instrumentation.ServiceForms, instrumentation.OperationGet, sc, handleGetAgentInstructions(sc)))
}

func handleGetAgentSchema(sc *server.ServerContext) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(ctx, args)

		format, err := agentschema.ParseFormat(common.StringArg(args, "format"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		form, err := loadForm(ctx, sc, account, common.StringArg(args, "formId"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		schema, err := agentschema.Export(form, format, agentschema.Options{
			Name:        common.StringArg(args, "name"),
			Description: common.StringArg(args, "description"),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to build schema: %v", err)), nil
		}
		return jsonResult(schema)
	}
}

func handleGetAgentInstructions(sc *server.ServerContext) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(ctx, args)

		form, err := loadForm(ctx, sc, account, common.StringArg(args, "formId"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		text, err := agentschema.Instructions(form, agentschema.Options{
			Instructions: common.StringArg(args, "instructions"),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to build instructions: %v", err)), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}
