// Package logging provides structured logging utilities for formcaller.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog, as text or JSON
//   - Token masking
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithTool(slog.Default(), "forms_get_form")
//	logger.Info("form loaded",
//	    logging.FormID(formID),
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("bearer token received",
//	    slog.String("token", logging.SanitizeToken(token)))
//
// # Security Considerations
//
//   - Tokens are never logged directly
package logging
