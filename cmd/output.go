package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teemow/formcaller/internal/formschema"
	"github.com/teemow/formcaller/internal/preview"
)

// Output formats.
const (
	outputJSON     = "json"
	outputYAML     = "yaml"
	outputMarkdown = "markdown"
	outputText     = "text"
)

// writeForm writes form as json, yaml, markdown or text.
func writeForm(w io.Writer, format string, form formschema.NormalizedForm) error {
	switch strings.ToLower(format) {
	case outputMarkdown, "md":
		_, err := io.WriteString(w, preview.Markdown(form))
		return err
	case outputText:
		_, err := io.WriteString(w, preview.PlainText(form))
		return err
	default:
		return writeValue(w, format, form)
	}
}

// writeValue writes v as indented JSON or as YAML. YAML output keeps the
// field names and order of the JSON encoding.
func writeValue(w io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	switch strings.ToLower(format) {
	case outputJSON, "":
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case outputYAML, "yml":
		return writeYAML(w, data)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeYAML(w io.Writer, jsonData []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(jsonData, &node); err != nil {
		return fmt.Errorf("failed to convert output to YAML: %w", err)
	}
	blockStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// blockStyle drops the flow and quoting styles a JSON document decodes with.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
