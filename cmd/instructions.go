package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/formcaller/internal/agentschema"
)

func newInstructionsCmd() *cobra.Command {
	var (
		src              formSource
		instructions     string
		instructionsFile string
		name             string
	)

	cmd := &cobra.Command{
		Use:   "instructions [formId]",
		Short: "Print the agent instructions for a Google Form",
		Long: `Print the instructions an AI agent is given before it fills in a form.

The instructions are the base prompt followed by the normalized form as JSON.
Replace the base prompt with --instructions or --instructions-file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if instructions != "" && instructionsFile != "" {
				return fmt.Errorf("pass either --instructions or --instructions-file, not both")
			}
			if instructionsFile != "" {
				data, err := os.ReadFile(instructionsFile)
				if err != nil {
					return fmt.Errorf("failed to read instructions file: %w", err)
				}
				instructions = string(data)
			}

			form, err := loadForm(cmd.Context(), src, args)
			if err != nil {
				return err
			}
			text, err := agentschema.Instructions(form, agentschema.Options{
				Name:         name,
				Instructions: instructions,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVarP(&src.file, "file", "f", "", "Read the form from a Forms API JSON file")
	cmd.Flags().StringVar(&instructions, "instructions", "", "Base prompt to use instead of the default")
	cmd.Flags().StringVar(&instructionsFile, "instructions-file", "", "Read the base prompt from a file")
	cmd.Flags().StringVar(&name, "name", agentschema.FunctionName, "Function name the instructions refer to")

	return cmd
}
