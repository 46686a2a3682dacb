package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/formcaller/internal/agentschema"
)

func newSchemaCmd() *cobra.Command {
	var (
		src         formSource
		format      string
		name        string
		description string
		output      string
	)

	formatNames := make([]string, 0, len(agentschema.Formats))
	for _, f := range agentschema.Formats {
		formatNames = append(formatNames, string(f))
	}

	cmd := &cobra.Command{
		Use:   "schema [formId]",
		Short: "Print the function-calling schema for a Google Form",
		Long: `Print the function-calling schema an AI agent uses to submit answers to a form.

Every answerable question becomes one parameter. Required questions are listed
as required parameters and choice questions carry their options as an enum.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := agentschema.ParseFormat(format)
			if err != nil {
				return err
			}
			form, err := loadForm(cmd.Context(), src, args)
			if err != nil {
				return err
			}
			schema, err := agentschema.Export(form, f, agentschema.Options{
				Name:        name,
				Description: description,
			})
			if err != nil {
				return fmt.Errorf("failed to build schema: %w", err)
			}
			return writeValue(cmd.OutOrStdout(), output, schema)
		},
	}

	cmd.Flags().StringVarP(&src.file, "file", "f", "", "Read the form from a Forms API JSON file")
	cmd.Flags().StringVar(&format, "format", string(agentschema.FormatMCP),
		fmt.Sprintf("Schema format: %s", strings.Join(formatNames, ", ")))
	cmd.Flags().StringVar(&name, "name", agentschema.FunctionName, "Function name")
	cmd.Flags().StringVar(&description, "description", "", "Function description (defaults to one derived from the form)")
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "Output format: json or yaml")

	return cmd
}
