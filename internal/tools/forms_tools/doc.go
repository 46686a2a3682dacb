// Package forms_tools registers the Google Forms MCP tools.
//
// The single-form tools load the form through the caller's session loader, so
// a form loaded by forms_get_form can be turned into an agent schema without
// passing the form ID again.
package forms_tools
