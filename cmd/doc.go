// Package cmd implements the command-line interface for formcaller.
//
// This package provides the following commands:
//   - load: Print a form's normalized question list or a preview of it
//   - schema: Print the function-calling schema derived from a form
//   - instructions: Print the system instructions for a voice agent
//   - list: List the forms in the account's Drive
//   - auth: Authorize an account and cache its token
//   - serve: Start the MCP server to provide tools for AI assistants
//   - generate-docs: Generate markdown documentation for all MCP tools
//   - version: Display version information
//
// load, schema and instructions accept --file to read a saved forms.get JSON
// document instead of calling the API.
package cmd
