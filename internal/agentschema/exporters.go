package agentschema

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
	"google.golang.org/genai"

	"github.com/teemow/formcaller/internal/formschema"
)

// MCPTool renders the form as an MCP tool definition. Properties are a map,
// so question order is only kept by the normalized form.
func MCPTool(form formschema.NormalizedForm, opts Options) (mcp.Tool, error) {
	params, err := Parameters(form)
	if err != nil {
		return mcp.Tool{}, err
	}

	toolOpts := []mcp.ToolOption{mcp.WithDescription(opts.description(form))}
	for _, p := range params {
		propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}

		switch p.Kind {
		case KindArray:
			items := map[string]any{"type": string(KindString)}
			if len(p.Enum) > 0 {
				items["enum"] = p.Enum
			}
			propOpts = append(propOpts, mcp.Items(items))
			toolOpts = append(toolOpts, mcp.WithArray(p.Name, propOpts...))
		default:
			if len(p.Enum) > 0 {
				propOpts = append(propOpts, mcp.Enum(p.Enum...))
			}
			toolOpts = append(toolOpts, mcp.WithString(p.Name, propOpts...))
		}
	}
	return mcp.NewTool(opts.name(), toolOpts...), nil
}

// GenAIFunctionDeclaration renders the form as a Gemini function declaration.
func GenAIFunctionDeclaration(form formschema.NormalizedForm, opts Options) (*genai.FunctionDeclaration, error) {
	params, err := Parameters(form)
	if err != nil {
		return nil, err
	}

	schema := &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       make(map[string]*genai.Schema, len(params)),
		PropertyOrdering: make([]string, 0, len(params)),
		Required:         RequiredNames(params),
	}
	for _, p := range params {
		schema.Properties[p.Name] = genaiProperty(p)
		schema.PropertyOrdering = append(schema.PropertyOrdering, p.Name)
	}

	return &genai.FunctionDeclaration{
		Name:        opts.name(),
		Description: opts.description(form),
		Parameters:  schema,
	}, nil
}

func genaiProperty(p Parameter) *genai.Schema {
	value := &genai.Schema{Type: genai.TypeString}
	if len(p.Enum) > 0 {
		value.Format = "enum"
		value.Enum = p.Enum
	}

	if p.Kind == KindArray {
		return &genai.Schema{
			Type:        genai.TypeArray,
			Description: p.Description,
			Items:       value,
		}
	}
	value.Description = p.Description
	return value
}

// JSONSchema renders the form's parameters as a JSON Schema object.
// Like MCPTool, it does not keep question order.
func JSONSchema(form formschema.NormalizedForm) (*jsonschema.Schema, error) {
	params, err := Parameters(form)
	if err != nil {
		return nil, err
	}

	schema := &jsonschema.Schema{
		Type:        "object",
		Title:       form.Title,
		Description: form.Description,
		Properties:  make(map[string]*jsonschema.Schema, len(params)),
		Required:    RequiredNames(params),
	}
	for _, p := range params {
		schema.Properties[p.Name] = jsonSchemaProperty(p)
	}
	return schema, nil
}

func jsonSchemaProperty(p Parameter) *jsonschema.Schema {
	value := &jsonschema.Schema{Type: string(KindString)}
	if len(p.Enum) > 0 {
		value.Enum = make([]any, 0, len(p.Enum))
		for _, e := range p.Enum {
			value.Enum = append(value.Enum, e)
		}
	}

	if p.Kind == KindArray {
		return &jsonschema.Schema{
			Type:        string(KindArray),
			Description: p.Description,
			Items:       value,
		}
	}
	value.Description = p.Description
	return value
}

// OpenAIFunction is the function part of an OpenAI style tool.
type OpenAIFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

// OpenAITool is a tool entry for OpenAI style chat completion requests.
type OpenAITool struct {
	Type     string         `json:"type"`
	Function OpenAIFunction `json:"function"`
}

// NewOpenAITool renders the form as an OpenAI style function tool.
func NewOpenAITool(form formschema.NormalizedForm, opts Options) (OpenAITool, error) {
	schema, err := JSONSchema(form)
	if err != nil {
		return OpenAITool{}, err
	}
	return OpenAITool{
		Type: "function",
		Function: OpenAIFunction{
			Name:        opts.name(),
			Description: opts.description(form),
			Parameters:  schema,
		},
	}, nil
}
