package forms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	drive "google.golang.org/api/drive/v3"
	formsapi "google.golang.org/api/forms/v1"
	"google.golang.org/api/option"

	"github.com/teemow/formcaller/internal/formschema"
	"github.com/teemow/formcaller/internal/google"
	"github.com/teemow/formcaller/internal/instrumentation"
)

// FormMimeType is the Drive MIME type of Google Forms.
const FormMimeType = "application/vnd.google-apps.form"

// DefaultPageSize is the number of forms listed when no page size is given.
const DefaultPageSize = 25

// ErrFormIDRequired is returned when an empty form ID is requested.
var ErrFormIDRequired = errors.New("formID is required")

// Client wraps the Google Forms and Drive API services
type Client struct {
	formsService *formsapi.Service
	driveService *drive.Service
	account      string // The account this client is associated with
	metrics      *instrumentation.Metrics
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	apiOptions []option.ClientOption
	metrics    *instrumentation.Metrics
	authorizer *google.Authorizer
}

// WithAPIOptions passes extra options to the generated API services, for
// example option.WithEndpoint in tests.
func WithAPIOptions(opts ...option.ClientOption) Option {
	return func(o *clientOptions) { o.apiOptions = append(o.apiOptions, opts...) }
}

// WithMetrics records API operations on m.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(o *clientOptions) { o.metrics = m }
}

// WithAuthorizer lets the client refresh expired tokens.
func WithAuthorizer(a *google.Authorizer) Option {
	return func(o *clientOptions) { o.authorizer = a }
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccountWithProvider checks if a valid OAuth token exists for the specified account
func HasTokenForAccountWithProvider(account string, provider google.TokenProvider) bool {
	if provider == nil {
		return false
	}
	return provider.HasTokenForAccount(account)
}

// NewClientForAccountWithProvider creates a new Google Forms client for a specific account.
// The OAuth token is retrieved from the provided token provider.
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider, opts ...Option) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	c, err := NewClientWithToken(ctx, token, opts...)
	if err != nil {
		return nil, err
	}
	c.account = account
	return c, nil
}

// NewClientWithToken creates a new Google Forms client that authenticates with token.
func NewClientWithToken(ctx context.Context, token *oauth2.Token, opts ...Option) (*Client, error) {
	if token == nil {
		return nil, fmt.Errorf("token cannot be nil")
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	var ts oauth2.TokenSource = oauth2.StaticTokenSource(token)
	if o.authorizer != nil {
		ts = o.authorizer.TokenSource(ctx, token)
	}
	httpClient := google.NewHTTPClient(ctx, ts)

	svcOpts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, o.apiOptions...)

	formsService, err := formsapi.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Forms service: %w", err)
	}

	driveService, err := drive.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{
		formsService: formsService,
		driveService: driveService,
		metrics:      o.metrics,
	}, nil
}

// GetForm retrieves a form's structure by form ID.
func (c *Client) GetForm(ctx context.Context, formID string) (*formsapi.Form, error) {
	if formID == "" {
		return nil, ErrFormIDRequired
	}

	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceForms, instrumentation.OperationGet,
		instrumentation.NewSpanAttributeBuilder().WithResource("form", formID).Build()...)
	defer span.End()

	start := time.Now()
	form, err := c.formsService.Forms.Get(formID).Context(ctx).Do()
	c.record(ctx, instrumentation.ServiceForms, instrumentation.OperationGet, start, err)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, fmt.Errorf("failed to get form %s: %w", formID, err)
	}

	instrumentation.SetSpanSuccess(span)
	return form, nil
}

// GetRawForm retrieves a form and converts it to the raw model.
func (c *Client) GetRawForm(ctx context.Context, formID string) (*formschema.RawForm, error) {
	form, err := c.GetForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	return formschema.FromAPI(form), nil
}

// GetNormalizedForm retrieves and normalizes a form.
func (c *Client) GetNormalizedForm(ctx context.Context, formID string) (formschema.NormalizedForm, error) {
	raw, err := c.GetRawForm(ctx, formID)
	if err != nil {
		return formschema.NormalizedForm{}, err
	}
	return formschema.Normalize(raw), nil
}

// ListForms lists the forms visible to the account, most recently modified first.
func (c *Client) ListForms(ctx context.Context, pageSize int64) ([]FormSummary, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceDrive, instrumentation.OperationList)
	defer span.End()

	start := time.Now()
	resp, err := c.driveService.Files.List().
		Q(fmt.Sprintf("mimeType='%s' and trashed=false", FormMimeType)).
		Fields("files(id, name, createdTime, modifiedTime, webViewLink)").
		OrderBy("modifiedTime desc").
		PageSize(pageSize).
		Context(ctx).
		Do()
	c.record(ctx, instrumentation.ServiceDrive, instrumentation.OperationList, start, err)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}

	summaries := make([]FormSummary, 0, len(resp.Files))
	for _, f := range resp.Files {
		summaries = append(summaries, FormSummary{
			ID:           f.Id,
			Name:         f.Name,
			CreatedTime:  f.CreatedTime,
			ModifiedTime: f.ModifiedTime,
			WebViewLink:  f.WebViewLink,
		})
	}

	instrumentation.SetSpanSuccess(span)
	return summaries, nil
}

func (c *Client) record(ctx context.Context, service, operation string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	c.metrics.RecordFormsAPIOperation(ctx, service, operation, status, time.Since(start))
}
