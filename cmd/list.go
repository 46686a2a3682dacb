package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/teemow/formcaller/internal/forms"
	"github.com/teemow/formcaller/internal/google"
)

func newListCmd() *cobra.Command {
	var (
		maxResults int64
		output     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the Google Forms of an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if maxResults < 1 {
				return errors.New("--max-results must be at least 1")
			}

			client, err := forms.NewClientForAccountWithProvider(cmd.Context(), globals.account, cliTokenProvider())
			if err != nil {
				return fmt.Errorf("%w\n%s", err, google.AuthenticationErrorMessage(globals.account))
			}
			summaries, err := client.ListForms(cmd.Context(), maxResults)
			if err != nil {
				return err
			}

			if output != outputText {
				return writeValue(cmd.OutOrStdout(), output, summaries)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tMODIFIED")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.Name, s.ModifiedTime)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().Int64Var(&maxResults, "max-results", forms.DefaultPageSize, "Maximum number of forms to list")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")

	return cmd
}
