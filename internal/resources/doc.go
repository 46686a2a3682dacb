// Package resources exposes the form loaded in an MCP session as resources.
//
//	form://current          normalized form (application/json)
//	form://current/schema   MCP tool schema of the form (application/json)
//	form://current/preview  markdown preview (text/markdown)
//
// A form is loaded into the session by the forms_* tools.
package resources
