package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/formcaller/internal/formschema"
)

func testForm(t *testing.T) formschema.NormalizedForm {
	t.Helper()
	form, err := loadFormFile("testdata/form.json")
	require.NoError(t, err)
	return form
}

func TestWriteForm(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		contains []string
	}{
		{
			name:     "json",
			format:   outputJSON,
			contains: []string{`"title": "Event registration"`, `"id": 26`, `"type": "RADIO"`},
		},
		{
			name:     "yaml",
			format:   outputYAML,
			contains: []string{"title: Event registration\n", "  - id: 26\n", "    type: RADIO\n"},
		},
		{
			name:     "markdown",
			format:   outputMarkdown,
			contains: []string{"# Event registration", "**Your name**"},
		},
		{
			name:     "text",
			format:   outputText,
			contains: []string{"Event registration\n==================", "( ) Day 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeForm(&buf, tt.format, testForm(t)))
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestWriteValue_YAMLKeepsKeyOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeValue(&buf, outputYAML, testForm(t)))

	out := buf.String()
	formID := strings.Index(out, "formId:")
	title := strings.Index(out, "title:")
	questions := strings.Index(out, "questions:")
	assert.True(t, formID < title && title < questions, "keys out of order:\n%s", out)
	assert.NotContains(t, out, "{", "flow style leaked into YAML output")
}

func TestWriteValue_YAMLQuotesAmbiguousStrings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeValue(&buf, outputYAML, map[string]any{"value": "true", "empty": ""}))

	assert.Contains(t, buf.String(), `value: "true"`)
	assert.Contains(t, buf.String(), `empty: ""`)
}

func TestWriteValue_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := writeValue(&buf, "xml", map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported output format "xml"`)
}
