package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// DefaultRedirectURL is the loopback redirect used by installed apps. The
// authorization code is read from the redirect's "code" query parameter.
const DefaultRedirectURL = "http://localhost"

// ErrMissingClientID is returned when no OAuth client ID is configured.
var ErrMissingClientID = errors.New("google OAuth client ID is required (set GOOGLE_CLIENT_ID)")

// OAuthConfig holds the OAuth client registration. It is injected at
// construction time instead of being compiled in.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Authorizer runs the OAuth authorization code flow for Google APIs.
type Authorizer struct {
	conf *oauth2.Config
}

// NewAuthorizer creates an Authorizer from the given client registration.
func NewAuthorizer(cfg OAuthConfig) (*Authorizer, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}

	redirect := cfg.RedirectURL
	if redirect == "" {
		redirect = DefaultRedirectURL
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultOAuthScopes
	}

	return &Authorizer{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  redirect,
			Scopes:       scopes,
		},
	}, nil
}

// Config returns the underlying oauth2 configuration.
func (a *Authorizer) Config() *oauth2.Config {
	return a.conf
}

// AuthCodeURL returns the URL the user visits to grant access.
func (a *Authorizer) AuthCodeURL(state string) string {
	return a.conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token.
func (a *Authorizer) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, errors.New("authorization code is required")
	}
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return tok, nil
}

// TokenSource returns a refreshing token source for tok.
func (a *Authorizer) TokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource {
	return a.conf.TokenSource(ctx, tok)
}

// NewHTTPClient returns an HTTP client that authenticates with ts.
// The client is configured to use HTTP/1.1 to avoid HTTP/2 protocol errors,
// and outgoing requests are traced.
func NewHTTPClient(ctx context.Context, ts oauth2.TokenSource) *http.Client {
	client := oauth2.NewClient(ctx, ts)
	if transport, ok := client.Transport.(*oauth2.Transport); ok {
		if base, ok := http.DefaultTransport.(*http.Transport); ok {
			clone := base.Clone()
			clone.ForceAttemptHTTP2 = false
			transport.Base = otelhttp.NewTransport(clone)
		}
	}
	return client
}

var accountNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateAccountName checks that an account name is safe to use in a
// token file name.
func ValidateAccountName(account string) error {
	if account == "" {
		return errors.New("account name cannot be empty")
	}
	if !accountNamePattern.MatchString(account) {
		return fmt.Errorf("invalid account name %q: only letters, digits, '-' and '_' are allowed", account)
	}
	return nil
}

// DefaultTokenDir is the directory used for cached tokens.
func DefaultTokenDir() string {
	return filepath.Join(userCacheDir(), "formcaller")
}

func tokenFileName(account string) string {
	return "google-" + account + ".token"
}

func userCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir
	}
	if runtime.GOOS == "windows" {
		return os.TempDir()
	}
	return filepath.Join(os.Getenv("HOME"), ".cache")
}

// AuthenticationErrorMessage explains how to authorize an account.
func AuthenticationErrorMessage(account string) string {
	return fmt.Sprintf("Google OAuth token not found for account %q. "+
		"Run 'formcaller auth --account %s' to authorize access to Google Forms, "+
		"or provide a bearer token with FORMCALLER_ACCESS_TOKEN.", account, account)
}
