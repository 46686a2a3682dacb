package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/giantswarm/mcp-oauth/storage"
	"golang.org/x/oauth2"
)

// ErrNoToken is returned when no token is available for an account.
var ErrNoToken = errors.New("no Google OAuth token found")

// TokenProvider is an interface for providing OAuth tokens for Google APIs.
type TokenProvider interface {
	// GetTokenForAccount retrieves an OAuth token for the specified account
	GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error)

	// HasTokenForAccount checks if a token exists for the specified account
	HasTokenForAccount(account string) bool
}

// FileTokenProvider reads tokens cached on disk by the auth command.
// When an Authorizer is set, expired tokens are refreshed and written back.
type FileTokenProvider struct {
	dir        string
	authorizer *Authorizer
}

// NewFileTokenProvider creates a provider backed by DefaultTokenDir.
func NewFileTokenProvider(authorizer *Authorizer) *FileTokenProvider {
	return NewFileTokenProviderWithDir(DefaultTokenDir(), authorizer)
}

// NewFileTokenProviderWithDir creates a provider backed by dir.
func NewFileTokenProviderWithDir(dir string, authorizer *Authorizer) *FileTokenProvider {
	return &FileTokenProvider{dir: dir, authorizer: authorizer}
}

func (p *FileTokenProvider) path(account string) string {
	return filepath.Join(p.dir, tokenFileName(account))
}

// GetTokenForAccount loads the cached token for account.
func (p *FileTokenProvider) GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error) {
	if err := ValidateAccountName(account); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.path(account))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w for account %s", ErrNoToken, account)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("invalid token file for account %s: %w", account, err)
	}

	if tok.Valid() || p.authorizer == nil {
		return &tok, nil
	}

	refreshed, err := p.authorizer.TokenSource(ctx, &tok).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token for account %s: %w", account, err)
	}
	if refreshed.AccessToken != tok.AccessToken {
		if err := p.SaveTokenForAccount(account, refreshed); err != nil {
			return nil, err
		}
	}
	return refreshed, nil
}

// HasTokenForAccount checks if a token file exists for account.
func (p *FileTokenProvider) HasTokenForAccount(account string) bool {
	if ValidateAccountName(account) != nil {
		return false
	}
	_, err := os.Stat(p.path(account))
	return err == nil
}

// SaveTokenForAccount writes tok to the account's token file.
func (p *FileTokenProvider) SaveTokenForAccount(account string, tok *oauth2.Token) error {
	if err := ValidateAccountName(account); err != nil {
		return err
	}
	if tok == nil {
		return errors.New("token is nil")
	}

	if err := os.MkdirAll(p.dir, 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(p.path(account), data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// StaticTokenProvider serves a single access token for every account.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a provider for a bearer token supplied
// directly, for example through FORMCALLER_ACCESS_TOKEN.
func NewStaticTokenProvider(accessToken string) *StaticTokenProvider {
	return &StaticTokenProvider{token: accessToken}
}

// GetTokenForAccount returns the static token.
func (p *StaticTokenProvider) GetTokenForAccount(_ context.Context, account string) (*oauth2.Token, error) {
	if p.token == "" {
		return nil, fmt.Errorf("%w for account %s", ErrNoToken, account)
	}
	return &oauth2.Token{AccessToken: p.token, TokenType: "Bearer"}, nil
}

// HasTokenForAccount reports whether a token is configured.
func (p *StaticTokenProvider) HasTokenForAccount(string) bool {
	return p.token != ""
}

// StoreTokenProvider serves tokens from an mcp-oauth token store, which the
// HTTP transport fills from incoming bearer tokens.
type StoreTokenProvider struct {
	store storage.TokenStore
}

// NewStoreTokenProvider creates a provider backed by store.
func NewStoreTokenProvider(store storage.TokenStore) *StoreTokenProvider {
	return &StoreTokenProvider{store: store}
}

// GetTokenForAccount retrieves the token stored for account.
func (p *StoreTokenProvider) GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error) {
	tok, err := p.store.GetToken(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("%w for account %s: %v", ErrNoToken, account, err)
	}
	return tok, nil
}

// HasTokenForAccount checks if the store holds a token for account.
func (p *StoreTokenProvider) HasTokenForAccount(account string) bool {
	_, err := p.store.GetToken(context.Background(), account)
	return err == nil
}

// SaveToken stores tok for account.
func (p *StoreTokenProvider) SaveToken(ctx context.Context, account string, tok *oauth2.Token) error {
	return p.store.SaveToken(ctx, account, tok)
}

// AccountTokenSource binds a TokenProvider to one account.
type AccountTokenSource struct {
	Provider TokenProvider
	Account  string
}

// Token returns the account's current token.
func (s AccountTokenSource) Token(ctx context.Context) (*oauth2.Token, error) {
	if s.Provider == nil {
		return nil, errors.New("no token provider configured")
	}
	tok, err := s.Provider.GetTokenForAccount(ctx, s.Account)
	if err != nil {
		return nil, err
	}
	if tok == nil || tok.AccessToken == "" {
		return nil, fmt.Errorf("%w for account %s", ErrNoToken, s.Account)
	}
	return tok, nil
}

type tokenContextKey struct{}

// ContextWithToken returns a copy of ctx carrying tok for the current request.
func ContextWithToken(ctx context.Context, tok *oauth2.Token) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, tok)
}

// TokenFromContext returns the request token stored by ContextWithToken.
func TokenFromContext(ctx context.Context) (*oauth2.Token, bool) {
	tok, ok := ctx.Value(tokenContextKey{}).(*oauth2.Token)
	return tok, ok && tok != nil && tok.AccessToken != ""
}

// ContextTokenProvider prefers the token attached to the request context and
// falls back to another provider. Concurrent HTTP requests for the same
// account each use their own bearer token.
type ContextTokenProvider struct {
	fallback TokenProvider
}

// NewContextTokenProvider wraps fallback, which may be nil.
func NewContextTokenProvider(fallback TokenProvider) *ContextTokenProvider {
	return &ContextTokenProvider{fallback: fallback}
}

// GetTokenForAccount returns the context token, or the fallback's token.
func (p *ContextTokenProvider) GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error) {
	if tok, ok := TokenFromContext(ctx); ok {
		return tok, nil
	}
	if p.fallback == nil {
		return nil, fmt.Errorf("%w for account %s", ErrNoToken, account)
	}
	return p.fallback.GetTokenForAccount(ctx, account)
}

// HasTokenForAccount reports whether the fallback holds a token. Context
// tokens are only known per request.
func (p *ContextTokenProvider) HasTokenForAccount(account string) bool {
	return p.fallback != nil && p.fallback.HasTokenForAccount(account)
}
