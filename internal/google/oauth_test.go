package google

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/giantswarm/mcp-oauth/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name    string
		account string
		wantErr bool
	}{
		{"valid default", "default", false},
		{"valid work", "work", false},
		{"valid with hyphen", "work-email", false},
		{"valid with underscore", "personal_email", false},
		{"valid alphanumeric", "account123", false},
		{"empty", "", true},
		{"with spaces", "my account", true},
		{"with special chars", "account@work", true},
		{"with slash", "work/personal", true},
		{"with dot", "work.email", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountName(tt.account)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAccountName() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewAuthorizer(t *testing.T) {
	_, err := NewAuthorizer(OAuthConfig{})
	assert.ErrorIs(t, err, ErrMissingClientID)

	a, err := NewAuthorizer(OAuthConfig{ClientID: "client-123"})
	require.NoError(t, err)
	assert.Equal(t, DefaultRedirectURL, a.Config().RedirectURL)
	assert.Equal(t, DefaultOAuthScopes, a.Config().Scopes)

	u, err := url.Parse(a.AuthCodeURL("state-xyz"))
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "client-123", q.Get("client_id"))
	assert.Equal(t, "state-xyz", q.Get("state"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Contains(t, q.Get("scope"), FormsBodyReadonlyScope)
}

func TestAuthorizer_ExchangeRequiresCode(t *testing.T) {
	a, err := NewAuthorizer(OAuthConfig{ClientID: "client-123", Scopes: []string{FormsBodyReadonlyScope}})
	require.NoError(t, err)

	_, err = a.Exchange(context.Background(), "")
	assert.Error(t, err)
}

func TestFileTokenProvider(t *testing.T) {
	dir := t.TempDir()
	p := NewFileTokenProviderWithDir(dir, nil)
	ctx := context.Background()

	assert.False(t, p.HasTokenForAccount("work"))
	_, err := p.GetTokenForAccount(ctx, "work")
	assert.True(t, errors.Is(err, ErrNoToken))

	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
	}
	require.NoError(t, p.SaveTokenForAccount("work", tok))
	assert.True(t, p.HasTokenForAccount("work"))

	info, err := os.Stat(filepath.Join(dir, "google-work.token"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := p.GetTokenForAccount(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, "access", got.AccessToken)
	assert.Equal(t, "refresh", got.RefreshToken)
	assert.True(t, tok.Expiry.Equal(got.Expiry))
}

func TestFileTokenProvider_InvalidAccount(t *testing.T) {
	p := NewFileTokenProviderWithDir(t.TempDir(), nil)

	assert.False(t, p.HasTokenForAccount("../etc"))
	_, err := p.GetTokenForAccount(context.Background(), "../etc")
	assert.Error(t, err)
	assert.Error(t, p.SaveTokenForAccount("a b", &oauth2.Token{AccessToken: "x"}))
}

func TestFileTokenProvider_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "google-default.token"), []byte("not json"), 0600))

	_, err := NewFileTokenProviderWithDir(dir, nil).GetTokenForAccount(context.Background(), "default")
	assert.Error(t, err)
}

func TestStaticTokenProvider(t *testing.T) {
	ctx := context.Background()

	empty := NewStaticTokenProvider("")
	assert.False(t, empty.HasTokenForAccount("default"))
	_, err := empty.GetTokenForAccount(ctx, "default")
	assert.ErrorIs(t, err, ErrNoToken)

	p := NewStaticTokenProvider("ya29.token")
	assert.True(t, p.HasTokenForAccount("anything"))
	tok, err := p.GetTokenForAccount(ctx, "anything")
	require.NoError(t, err)
	assert.Equal(t, "ya29.token", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
}

func TestStoreTokenProvider(t *testing.T) {
	store := memory.New()
	defer store.Stop()

	ctx := context.Background()
	p := NewStoreTokenProvider(store)

	assert.False(t, p.HasTokenForAccount("default"))
	_, err := p.GetTokenForAccount(ctx, "default")
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, p.SaveToken(ctx, "default", &oauth2.Token{
		AccessToken: "stored",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	}))
	assert.True(t, p.HasTokenForAccount("default"))

	tok, err := p.GetTokenForAccount(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "stored", tok.AccessToken)
}

func TestAccountTokenSource(t *testing.T) {
	ctx := context.Background()

	tok, err := AccountTokenSource{Provider: NewStaticTokenProvider("abc"), Account: "default"}.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.AccessToken)

	_, err = AccountTokenSource{Provider: NewStaticTokenProvider(""), Account: "default"}.Token(ctx)
	assert.ErrorIs(t, err, ErrNoToken)

	_, err = AccountTokenSource{}.Token(ctx)
	assert.Error(t, err)
}

func TestAuthenticationErrorMessage(t *testing.T) {
	for _, account := range []string{"default", "work", "personal"} {
		t.Run(account, func(t *testing.T) {
			msg := AuthenticationErrorMessage(account)
			assert.True(t, strings.Contains(msg, account))
			assert.Contains(t, msg, "OAuth")
		})
	}
}

func TestContextTokenProvider(t *testing.T) {
	fallback := NewStaticTokenProvider("from-fallback")
	p := NewContextTokenProvider(fallback)

	tok, err := p.GetTokenForAccount(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "from-fallback", tok.AccessToken)
	assert.True(t, p.HasTokenForAccount("default"))

	ctx := ContextWithToken(context.Background(), &oauth2.Token{AccessToken: "from-request"})
	tok, err = p.GetTokenForAccount(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "from-request", tok.AccessToken)

	// an empty context token does not shadow the fallback
	ctx = ContextWithToken(context.Background(), &oauth2.Token{})
	tok, err = p.GetTokenForAccount(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "from-fallback", tok.AccessToken)

	bare := NewContextTokenProvider(nil)
	assert.False(t, bare.HasTokenForAccount("default"))
	_, err = bare.GetTokenForAccount(context.Background(), "default")
	assert.ErrorIs(t, err, ErrNoToken)
}
