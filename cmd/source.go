package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/teemow/formcaller/internal/forms"
	"github.com/teemow/formcaller/internal/formschema"
	"github.com/teemow/formcaller/internal/google"
	"github.com/teemow/formcaller/internal/instrumentation"
	"github.com/teemow/formcaller/internal/loader"
)

const accessTokenEnv = "FORMCALLER_ACCESS_TOKEN"

// formSource says where a command reads its form from.
type formSource struct {
	file string
}

// oauthConfigFromEnv reads the OAuth client registration from the environment.
func oauthConfigFromEnv(scopes []string) google.OAuthConfig {
	return google.OAuthConfig{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes:       scopes,
	}
}

// cliTokenProvider returns the token provider for CLI commands: the explicit
// access token if one is given, otherwise the on-disk token cache. Cached
// tokens are refreshed when GOOGLE_CLIENT_ID is set.
func cliTokenProvider() google.TokenProvider {
	token := globals.accessToken
	if token == "" {
		token = os.Getenv(accessTokenEnv)
	}
	if token != "" {
		return google.NewStaticTokenProvider(token)
	}

	authorizer, err := google.NewAuthorizer(oauthConfigFromEnv(nil))
	if err != nil {
		slog.Debug("token refresh disabled", slog.String("reason", err.Error()))
		authorizer = nil
	}
	return google.NewFileTokenProvider(authorizer)
}

// promptFormID asks for a form ID on the terminal.
func promptFormID() (string, error) {
	var formID string
	prompt := &survey.Input{
		Message: "Google Form ID:",
		Help:    "The ID in the form's edit URL: https://docs.google.com/forms/d/<ID>/edit",
	}
	if err := survey.AskOne(prompt, &formID, survey.WithValidator(survey.Required)); err != nil {
		return "", fmt.Errorf("failed to read form ID: %w", err)
	}
	return strings.TrimSpace(formID), nil
}

// loadForm returns the normalized form from --file, the form ID argument,
// or an interactive prompt, in that order.
func loadForm(ctx context.Context, src formSource, args []string) (formschema.NormalizedForm, error) {
	if src.file != "" {
		if len(args) > 0 {
			return formschema.NormalizedForm{}, errors.New("pass either a form ID or --file, not both")
		}
		return loadFormFile(src.file)
	}

	var formID string
	if len(args) > 0 {
		formID = args[0]
	} else {
		var err error
		if formID, err = promptFormID(); err != nil {
			return formschema.NormalizedForm{}, err
		}
	}

	l := loader.New(
		google.AccountTokenSource{Provider: cliTokenProvider(), Account: globals.account},
		forms.NewAPIFetcher(),
	)
	form, err := l.Load(ctx, formID)
	if errors.Is(err, loader.ErrAuthentication) {
		return formschema.NormalizedForm{}, fmt.Errorf("%w\n%s", err, google.AuthenticationErrorMessage(globals.account))
	}
	return form, err
}

func loadFormFile(path string) (formschema.NormalizedForm, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return formschema.NormalizedForm{}, fmt.Errorf("failed to read form file: %w", err)
	}
	raw, err := formschema.ParseRawForm(data)
	if err != nil {
		return formschema.NormalizedForm{}, err
	}
	form := formschema.Normalize(raw)
	slog.Debug("form read from file",
		slog.String("file", path),
		slog.String("form_id", instrumentation.RedactID(form.FormID)),
		slog.Int("questions", len(form.Questions)))
	return form, nil
}
