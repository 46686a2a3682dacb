package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T, detailedLabels bool) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp.Meter("formcaller-test"), detailedLabels)
	require.NoError(t, err)
	return m, reader
}

// counterPoints returns the data points of the named int64 counter.
func counterPoints(t *testing.T, reader *sdkmetric.ManualReader, name string) []metricdata.DataPoint[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			return sum.DataPoints
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func attrValue(set attribute.Set, key string) string {
	v, ok := set.Value(attribute.Key(key))
	if !ok {
		return ""
	}
	return v.Emit()
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()

	m.RecordHTTPRequest(ctx, "POST", "/mcp", 200, 100*time.Millisecond)
	m.RecordHTTPRequest(ctx, "POST", "/mcp", 200, 50*time.Millisecond)
	m.RecordHTTPRequest(ctx, "POST", "/mcp", 401, 5*time.Millisecond)

	points := counterPoints(t, reader, "http_requests_total")
	byStatus := map[string]int64{}
	for _, p := range points {
		byStatus[attrValue(p.Attributes, attrStatus)] += p.Value
	}
	assert.Equal(t, map[string]int64{"200": 2, "401": 1}, byStatus)
}

func TestMetrics_RecordFormsAPIOperation(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()

	m.RecordFormsAPIOperation(ctx, ServiceForms, OperationGet, StatusSuccess, 200*time.Millisecond)
	m.RecordFormsAPIOperation(ctx, ServiceDrive, OperationList, StatusError, 500*time.Millisecond)

	points := counterPoints(t, reader, "forms_api_operations_total")
	require.Len(t, points, 2)
	got := map[string]string{}
	for _, p := range points {
		got[attrValue(p.Attributes, attrService)+"."+attrValue(p.Attributes, attrOperation)] = attrValue(p.Attributes, attrStatus)
	}
	assert.Equal(t, map[string]string{"forms.get": StatusSuccess, "drive.list": StatusError}, got)
}

func TestMetrics_RecordFormLoad(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()

	m.RecordFormLoad(ctx, LoadResultSuccess, time.Second)
	m.RecordFormLoad(ctx, LoadResultSuperseded, time.Second)
	m.RecordFormLoad(ctx, LoadResultSuccess, time.Second)

	byResult := map[string]int64{}
	for _, p := range counterPoints(t, reader, "form_loads_total") {
		byResult[attrValue(p.Attributes, attrResult)] += p.Value
	}
	assert.Equal(t, map[string]int64{LoadResultSuccess: 2, LoadResultSuperseded: 1}, byResult)
}

func TestMetrics_RecordFormNormalization(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()

	m.RecordFormNormalization(ctx, 5, 0)
	m.RecordFormNormalization(ctx, 3, 2)

	byUnknown := map[string]int64{}
	for _, p := range counterPoints(t, reader, "form_normalizations_total") {
		byUnknown[attrValue(p.Attributes, attrUnknown)] += p.Value
	}
	assert.Equal(t, map[string]int64{"false": 1, "true": 1}, byUnknown)
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	tests := []struct {
		name           string
		detailedLabels bool
		wantAccount    string
	}{
		{name: "account omitted by default", detailedLabels: false, wantAccount: ""},
		{name: "account with detailed labels", detailedLabels: true, wantAccount: "work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, reader := newTestMetrics(t, tt.detailedLabels)
			m.RecordToolInvocation(context.Background(), "forms_get_agent_schema", StatusSuccess, "work", time.Millisecond)

			points := counterPoints(t, reader, "mcp_tool_invocations_total")
			require.Len(t, points, 1)
			assert.Equal(t, "forms_get_agent_schema", attrValue(points[0].Attributes, attrTool))
			assert.Equal(t, tt.wantAccount, attrValue(points[0].Attributes, attrAccount))
		})
	}
}

func TestMetrics_RecordOAuthAuth(t *testing.T) {
	m, reader := newTestMetrics(t, false)

	m.RecordOAuthAuth(context.Background(), OAuthResultSuccess)
	m.RecordOAuthAuth(context.Background(), OAuthResultFailure)

	points := counterPoints(t, reader, "oauth_auth_total")
	assert.Len(t, points, 2)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest(ctx, "GET", "/healthz", 200, time.Millisecond)
		m.RecordFormsAPIOperation(ctx, ServiceForms, OperationGet, StatusSuccess, time.Millisecond)
		m.RecordFormLoad(ctx, LoadResultFetchFailure, time.Millisecond)
		m.RecordFormNormalization(ctx, 1, 0)
		m.RecordOAuthAuth(ctx, OAuthResultFailure)
		m.RecordToolInvocation(ctx, "forms_list_forms", StatusError, "", time.Millisecond)
	})

	empty := &Metrics{}
	assert.NotPanics(t, func() {
		empty.RecordFormLoad(ctx, LoadResultSuccess, time.Millisecond)
	})
}
