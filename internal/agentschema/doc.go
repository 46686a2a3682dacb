// Package agentschema derives function-calling schemas from a normalized form.
//
// A form becomes a single function (default name "fill_form") with one
// parameter per answerable question, keyed by the question's decimal id:
//   - TEXT questions become string parameters
//   - RADIO questions become string parameters restricted to the option values
//   - CHECKBOX questions become arrays of option values
//
// The same parameter list is rendered for several agent runtimes: MCP tools
// (mcp-go), Gemini function declarations (genai) and JSON Schema based tools
// (jsonschema-go), as used by OpenAI style function calling.
package agentschema
