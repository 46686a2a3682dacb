package instrumentation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccount = "work"
	testFormID  = "1FAIpQLSfD2kExample"
	testTool    = "forms_get_agent_schema"
)

func attrMap(attrs []slog.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Value.String()
	}
	return m
}

func TestToolInvocation_Complete(t *testing.T) {
	ti := NewToolInvocation(testTool)
	assert.False(t, ti.StartTime.IsZero())

	ti.CompleteSuccess()
	assert.True(t, ti.Success)
	assert.Equal(t, StatusSuccess, ti.Status())
	assert.GreaterOrEqual(t, ti.Duration.Nanoseconds(), int64(0))
	assert.Empty(t, ti.Error)

	failed := NewToolInvocation(testTool).CompleteWithError(errors.New("permission denied"))
	assert.False(t, failed.Success)
	assert.Equal(t, StatusError, failed.Status())
	assert.Equal(t, "permission denied", failed.Error)

	noErr := NewToolInvocation(testTool).Complete(false, nil)
	assert.Empty(t, noErr.Error)
}

func TestToolInvocation_LogAttrs(t *testing.T) {
	ti := NewToolInvocation(testTool).
		WithAccount(testAccount).
		WithForm(testFormID).
		WithService(ServiceForms, OperationGet).
		CompleteWithError(errors.New("boom"))
	ti.TraceID = "abc123"
	ti.SpanID = "span789"

	attrs := attrMap(ti.LogAttrs())
	assert.Equal(t, testTool, attrs["tool"])
	assert.Equal(t, testAccount, attrs["account"])
	assert.Equal(t, "1FAIpQ...", attrs["form_id"])
	assert.Equal(t, ServiceForms, attrs["service"])
	assert.Equal(t, OperationGet, attrs["operation"])
	assert.Equal(t, "abc123", attrs["trace_id"])
	assert.Equal(t, "boom", attrs["error"])
	assert.NotContains(t, attrs, "span_id")

	audit := attrMap(ti.LogAuditAttrs())
	assert.Equal(t, testFormID, audit["form_id"])
	assert.Equal(t, "span789", audit["span_id"])
}

func TestToolInvocation_LogAttrs_DefaultAccount(t *testing.T) {
	ti := NewToolInvocation("forms_list_forms").WithAccount("default").CompleteSuccess()

	attrs := attrMap(ti.LogAttrs())
	assert.NotContains(t, attrs, "account")
	assert.NotContains(t, attrs, "form_id")

	audit := attrMap(ti.LogAuditAttrs())
	assert.Equal(t, "default", audit["account"])
}

func TestToolInvocation_WithSpanContext_NoSpan(t *testing.T) {
	ti := NewToolInvocation(testTool).WithSpanContext(context.Background())
	assert.Empty(t, ti.TraceID)
	assert.Empty(t, ti.SpanID)
}

func TestAuditLogger_LogToolInvocation(t *testing.T) {
	tests := []struct {
		name       string
		config     AuditLoggingConfig
		success    bool
		wantMsg    string
		wantFormID string
	}{
		{
			name:       "success redacts form id",
			config:     AuditLoggingConfig{Enabled: true},
			success:    true,
			wantMsg:    "tool_executed",
			wantFormID: "1FAIpQ...",
		},
		{
			name:       "failure logged as warning",
			config:     AuditLoggingConfig{Enabled: true},
			success:    false,
			wantMsg:    "tool_failed",
			wantFormID: "1FAIpQ...",
		},
		{
			name:       "include pii logs full form id",
			config:     AuditLoggingConfig{Enabled: true, IncludePII: true},
			success:    true,
			wantMsg:    "tool_executed",
			wantFormID: testFormID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			al := NewAuditLoggerWithConfig(slog.New(slog.NewJSONHandler(&buf, nil)), tt.config)

			ti := NewToolInvocation(testTool).WithForm(testFormID)
			ti.Complete(tt.success, nil)
			al.LogToolInvocation(ti)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
			assert.Equal(t, tt.wantMsg, entry["msg"])
			assert.Equal(t, tt.wantFormID, entry["form_id"])
			if !tt.success {
				assert.Equal(t, "WARN", entry["level"])
			}
		})
	}
}

func TestAuditLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLoggerWithConfig(slog.New(slog.NewTextHandler(&buf, nil)), AuditLoggingConfig{Enabled: false})
	al.LogToolInvocation(NewToolInvocation(testTool).CompleteSuccess())
	assert.Empty(t, strings.TrimSpace(buf.String()))

	var nilLogger *AuditLogger
	assert.NotPanics(t, func() { nilLogger.LogToolInvocation(NewToolInvocation(testTool)) })

	assert.NotNil(t, NewAuditLogger(nil))
}
