// Package instrumentation provides OpenTelemetry instrumentation for the
// formcaller CLI and MCP server.
//
// # Metrics
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Google API Metrics:
//   - forms_api_operations_total: Counter of Forms and Drive API calls by service, operation, status
//   - forms_api_operation_duration_seconds: Histogram of Forms and Drive API call durations
//
// Form Pipeline Metrics:
//   - form_loads_total: Counter of form loads by result (success, auth_failure, fetch_failure, superseded)
//   - form_load_duration_seconds: Histogram of form load durations
//   - form_normalizations_total: Counter of normalized forms, labelled by whether any question was UNKNOWN
//   - form_questions: Histogram of questions per normalized form
//
// Authentication and Tool Metrics:
//   - oauth_auth_total: Counter of bearer token authentication attempts by result
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//
// # Tracing
//
// Spans are created for MCP tool invocations (tool.<name>) and Google API
// calls (google.<service>.<operation>).
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: formcaller)
//   - METRICS_DETAILED_LABELS: Add the account label to tool metrics (default: false)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordFormLoad(ctx, instrumentation.LoadResultSuccess, time.Since(start))
//	recorder.RecordToolInvocation(ctx, "forms_get_agent_schema", "success", "default", time.Since(start))
package instrumentation
