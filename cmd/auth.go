package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/teemow/formcaller/internal/google"
)

func newAuthCmd() *cobra.Command {
	var (
		scopes string
		code   string
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize formcaller to read Google Forms",
		Long: `Run the OAuth authorization flow for --account and cache the token.

The OAuth client is read from GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and
GOOGLE_REDIRECT_URL. Open the printed URL, approve access and paste the
authorization code back, or pass it with --code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			account := globals.account
			if err := google.ValidateAccountName(account); err != nil {
				return err
			}

			authorizer, err := google.NewAuthorizer(oauthConfigFromEnv(parseCommaSeparatedList(scopes)))
			if err != nil {
				if errors.Is(err, google.ErrMissingClientID) {
					return fmt.Errorf("%w: set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET", err)
				}
				return err
			}

			if code == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Open this URL in your browser to authorize account %q:\n\n%s\n\n",
					account, authorizer.AuthCodeURL("formcaller-"+account))
				prompt := &survey.Input{Message: "Authorization code:"}
				if err := survey.AskOne(prompt, &code, survey.WithValidator(survey.Required)); err != nil {
					return fmt.Errorf("failed to read authorization code: %w", err)
				}
			}

			tok, err := authorizer.Exchange(cmd.Context(), strings.TrimSpace(code))
			if err != nil {
				return err
			}

			if err := google.NewFileTokenProvider(authorizer).SaveTokenForAccount(account, tok); err != nil {
				return err
			}
			slog.Debug("token cached", slog.String("account", account), slog.String("dir", google.DefaultTokenDir()))
			fmt.Fprintf(cmd.OutOrStdout(), "Account %q is authorized.\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&scopes, "scopes", "", "Comma-separated OAuth scopes (defaults to forms and drive metadata read access)")
	cmd.Flags().StringVar(&code, "code", "", "Authorization code, skips the interactive prompt")

	return cmd
}
