package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrService   = "service"
	attrResult    = "result"
	attrTool      = "tool"
	attrAccount   = "account"
	attrUnknown   = "has_unknown"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// Forms/Drive API metrics
	formsAPIOperationsTotal   metric.Int64Counter
	formsAPIOperationDuration metric.Float64Histogram

	// Form pipeline metrics
	formLoadsTotal          metric.Int64Counter
	formLoadDuration        metric.Float64Histogram
	formNormalizationsTotal metric.Int64Counter
	formQuestions           metric.Int64Histogram

	// Bearer token authentication on the HTTP transport
	oauthAuthTotal metric.Int64Counter

	// MCP Tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.formsAPIOperationsTotal, err = meter.Int64Counter(
		"forms_api_operations_total",
		metric.WithDescription("Total number of Google Forms and Drive API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create forms_api_operations_total counter: %w", err)
	}

	m.formsAPIOperationDuration, err = meter.Float64Histogram(
		"forms_api_operation_duration_seconds",
		metric.WithDescription("Google Forms and Drive API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create forms_api_operation_duration_seconds histogram: %w", err)
	}

	m.formLoadsTotal, err = meter.Int64Counter(
		"form_loads_total",
		metric.WithDescription("Total number of form loads by result"),
		metric.WithUnit("{load}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create form_loads_total counter: %w", err)
	}

	m.formLoadDuration, err = meter.Float64Histogram(
		"form_load_duration_seconds",
		metric.WithDescription("Form load duration in seconds, token acquisition included"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create form_load_duration_seconds histogram: %w", err)
	}

	m.formNormalizationsTotal, err = meter.Int64Counter(
		"form_normalizations_total",
		metric.WithDescription("Total number of normalized forms"),
		metric.WithUnit("{form}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create form_normalizations_total counter: %w", err)
	}

	m.formQuestions, err = meter.Int64Histogram(
		"form_questions",
		metric.WithDescription("Number of questions per normalized form"),
		metric.WithUnit("{question}"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create form_questions histogram: %w", err)
	}

	m.oauthAuthTotal, err = meter.Int64Counter(
		"oauth_auth_total",
		metric.WithDescription("Total number of bearer token authentication attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_auth_total counter: %w", err)
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	)
	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordFormsAPIOperation records a Google API call.
//
// Parameters:
//   - service: ServiceForms or ServiceDrive
//   - operation: OperationGet or OperationList
//   - status: StatusSuccess or StatusError
func (m *Metrics) RecordFormsAPIOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	if m == nil || m.formsAPIOperationsTotal == nil || m.formsAPIOperationDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.formsAPIOperationsTotal.Add(ctx, 1, attrs)
	m.formsAPIOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordFormLoad records the outcome of a form load. Result is one of the
// LoadResult constants.
func (m *Metrics) RecordFormLoad(ctx context.Context, result string, duration time.Duration) {
	if m == nil || m.formLoadsTotal == nil || m.formLoadDuration == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrResult, result))
	m.formLoadsTotal.Add(ctx, 1, attrs)
	m.formLoadDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordFormNormalization records one normalized form with its question
// count and the number of questions that resolved to UNKNOWN.
func (m *Metrics) RecordFormNormalization(ctx context.Context, questions, unknown int) {
	if m == nil || m.formNormalizationsTotal == nil || m.formQuestions == nil {
		return
	}

	m.formNormalizationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool(attrUnknown, unknown > 0)))
	m.formQuestions.Record(ctx, int64(questions))
}

// RecordOAuthAuth records a bearer token authentication attempt.
// Result should be one of: "success", "failure"
func (m *Metrics) RecordOAuthAuth(ctx context.Context, result string) {
	if m == nil || m.oauthAuthTotal == nil {
		return
	}

	m.oauthAuthTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordToolInvocation records an MCP tool invocation. The account label is
// only added when detailed labels are enabled.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status, account string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels && account != "" {
		attrs = append(attrs, attribute.String(attrAccount, account))
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
