package forms

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/teemow/formcaller/internal/formschema"
)

// APIFetcher fetches raw forms with a caller-supplied bearer token.
type APIFetcher struct {
	opts []Option
}

// NewAPIFetcher creates a fetcher that builds clients with opts.
func NewAPIFetcher(opts ...Option) *APIFetcher {
	return &APIFetcher{opts: opts}
}

// FetchRawForm retrieves formID using token.
func (f *APIFetcher) FetchRawForm(ctx context.Context, token *oauth2.Token, formID string) (*formschema.RawForm, error) {
	client, err := NewClientWithToken(ctx, token, f.opts...)
	if err != nil {
		return nil, err
	}
	return client.GetRawForm(ctx, formID)
}
