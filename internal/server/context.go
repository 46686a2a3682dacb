package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/api/option"

	"github.com/teemow/formcaller/internal/forms"
	"github.com/teemow/formcaller/internal/google"
	"github.com/teemow/formcaller/internal/instrumentation"
	"github.com/teemow/formcaller/internal/loader"
	"github.com/teemow/formcaller/internal/logging"
)

// DefaultAccount is used when a request names no account.
const DefaultAccount = "default"

// ServerContext holds the dependencies shared by all MCP tool handlers.
type ServerContext struct {
	ctx           context.Context
	cancel        context.CancelFunc
	tokenProvider google.TokenProvider
	apiOptions    []option.ClientOption
	metrics       *instrumentation.Metrics
	auditLogger   *instrumentation.AuditLogger
	logger        *slog.Logger

	mu       sync.RWMutex
	loaders  map[loaderKey]*loader.Loader
	shutdown bool
}

// Option configures a ServerContext.
type Option func(*ServerContext)

// WithMetrics sets the metrics recorder used by tools, clients and loaders.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(sc *ServerContext) { sc.metrics = m }
}

// WithAuditLogger sets the audit logger for tool invocations.
func WithAuditLogger(al *instrumentation.AuditLogger) Option {
	return func(sc *ServerContext) { sc.auditLogger = al }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(sc *ServerContext) { sc.logger = logger }
}

// WithAPIOptions passes options to every Forms and Drive service, for
// example option.WithEndpoint in tests.
func WithAPIOptions(opts ...option.ClientOption) Option {
	return func(sc *ServerContext) { sc.apiOptions = append(sc.apiOptions, opts...) }
}

// NewServerContext creates a server context that obtains Google tokens from
// tokenProvider.
func NewServerContext(ctx context.Context, tokenProvider google.TokenProvider, opts ...Option) (*ServerContext, error) {
	if tokenProvider == nil {
		return nil, errors.New("token provider cannot be nil")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)
	sc := &ServerContext{
		ctx:           shutdownCtx,
		cancel:        cancel,
		tokenProvider: tokenProvider,
		logger:        slog.Default(),
		loaders:       make(map[loaderKey]*loader.Loader),
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// TokenProvider returns the provider used for Google API tokens.
func (sc *ServerContext) TokenProvider() google.TokenProvider {
	return sc.tokenProvider
}

// Metrics returns the metrics recorder, or nil when not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// AuditLogger returns the audit logger, or nil when not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	return sc.auditLogger
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

func (sc *ServerContext) clientOptions() []forms.Option {
	return []forms.Option{
		forms.WithAPIOptions(sc.apiOptions...),
		forms.WithMetrics(sc.metrics),
	}
}

// FormsClientForAccount returns a Forms client authenticated as account.
// Clients are not cached because HTTP transport tokens change per request.
func (sc *ServerContext) FormsClientForAccount(ctx context.Context, account string) (*forms.Client, error) {
	if sc.IsShutdown() {
		return nil, errors.New("server is shutting down")
	}
	client, err := forms.NewClientForAccountWithProvider(ctx, account, sc.tokenProvider, sc.clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", google.AuthenticationErrorMessage(account), err)
	}
	return client, nil
}

// loaderKey identifies a loader. An empty session is the loader used
// outside any MCP session.
type loaderKey struct {
	account string
	session string
}

// LoaderFor returns the form loader for account within an MCP session,
// creating it on first use. Each session gets its own loader, so a newer
// load only supersedes older loads from the same client.
func (sc *ServerContext) LoaderFor(account, session string) *loader.Loader {
	key := loaderKey{account: account, session: session}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	if l, ok := sc.loaders[key]; ok {
		return l
	}

	l := loader.New(
		google.AccountTokenSource{Provider: sc.tokenProvider, Account: account},
		forms.NewAPIFetcher(sc.clientOptions()...),
		loader.WithMetrics(sc.metrics),
		loader.WithLogger(sc.logger.With(logging.Account(account))),
	)
	sc.loaders[key] = l
	return l
}

// ReleaseSession drops the loaders of a closed MCP session.
func (sc *ServerContext) ReleaseSession(session string) {
	if session == "" {
		return
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	for key := range sc.loaders {
		if key.session == session {
			delete(sc.loaders, key)
		}
	}
}

// LoaderCount returns the number of live loaders.
func (sc *ServerContext) LoaderCount() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.loaders)
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context and drops all loaders.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.loaders = make(map[loaderKey]*loader.Loader)
	sc.cancel()
	return nil
}
