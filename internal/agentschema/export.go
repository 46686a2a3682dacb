package agentschema

import (
	"fmt"
	"strings"

	"github.com/teemow/formcaller/internal/formschema"
)

// Format selects the schema flavour produced by Export.
type Format string

const (
	FormatMCP        Format = "mcp"
	FormatGenAI      Format = "genai"
	FormatOpenAI     Format = "openai"
	FormatJSONSchema Format = "jsonschema"
)

// Formats lists the supported formats.
var Formats = []Format{FormatMCP, FormatGenAI, FormatOpenAI, FormatJSONSchema}

// ParseFormat parses a format name, case-insensitively. Empty means FormatMCP.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatMCP, nil
	}
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported schema format %q (supported: mcp, genai, openai, jsonschema)", s)
}

// Export renders the form in the given format. The result is JSON encodable.
func Export(form formschema.NormalizedForm, format Format, opts Options) (any, error) {
	switch format {
	case FormatMCP, "":
		return MCPTool(form, opts)
	case FormatGenAI:
		return GenAIFunctionDeclaration(form, opts)
	case FormatOpenAI:
		return NewOpenAITool(form, opts)
	case FormatJSONSchema:
		return JSONSchema(form)
	default:
		return nil, fmt.Errorf("unsupported schema format %q", format)
	}
}
