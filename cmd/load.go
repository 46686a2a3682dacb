package cmd

import (
	"github.com/spf13/cobra"
)

func newLoadCmd() *cobra.Command {
	var (
		src    formSource
		output string
	)

	cmd := &cobra.Command{
		Use:   "load [formId]",
		Short: "Load a Google Form and print its normalized questions",
		Long: `Load a Google Form and print the normalized question list.

The form is fetched from the Google Forms API with the cached token of --account,
or read from a file holding a Forms API response (--file). Without a form ID
or --file, the form ID is asked for interactively.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := loadForm(cmd.Context(), src, args)
			if err != nil {
				return err
			}
			return writeForm(cmd.OutOrStdout(), output, form)
		},
	}

	cmd.Flags().StringVarP(&src.file, "file", "f", "", "Read the form from a Forms API JSON file")
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "Output format: json, yaml, markdown or text")

	return cmd
}
