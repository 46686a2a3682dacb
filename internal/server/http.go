package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/giantswarm/mcp-oauth/storage"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"

	"github.com/teemow/formcaller/internal/google"
	"github.com/teemow/formcaller/internal/instrumentation"
	"github.com/teemow/formcaller/internal/logging"
)

const (
	// AccountHeader selects the token account for a request. Requests
	// without it use DefaultAccount.
	AccountHeader = "X-Formcaller-Account"

	// TokenExpiryHeader optionally carries the bearer token's expiry in
	// RFC3339 format.
	TokenExpiryHeader = "X-Google-Token-Expiry"

	// DefaultHTTPAddr is the default listen address for the HTTP transport.
	DefaultHTTPAddr = ":8080"

	// Google access tokens typically expire in one hour.
	defaultAccessTokenExpiry = 1 * time.Hour

	tokenStoreTimeout = 5 * time.Second
)

type accountContextKey struct{}

// ContextWithAccount returns a copy of ctx carrying the request account.
func ContextWithAccount(ctx context.Context, account string) context.Context {
	return context.WithValue(ctx, accountContextKey{}, account)
}

// AccountFromContext returns the account set by BearerTokenMiddleware.
func AccountFromContext(ctx context.Context) (string, bool) {
	account, ok := ctx.Value(accountContextKey{}).(string)
	return account, ok && account != ""
}

// BearerTokenConfig configures BearerTokenMiddleware.
type BearerTokenConfig struct {
	// Store caches the forwarded Google tokens per account (optional).
	Store storage.TokenStore

	// Logger for audit and debug logging (optional, uses slog.Default if nil)
	Logger *slog.Logger

	// Metrics records authentication attempts (optional).
	Metrics *instrumentation.Metrics
}

// BearerTokenMiddleware requires a Google access token in the Authorization
// header. The token is stored under the request account and injected into the
// request context, where google.ContextTokenProvider picks it up.
func BearerTokenMiddleware(config BearerTokenConfig) func(http.Handler) http.Handler {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			accessToken := bearerToken(r.Header.Get("Authorization"))
			if accessToken == "" {
				config.Metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
				w.Header().Set("WWW-Authenticate", `Bearer realm="formcaller"`)
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			account := strings.TrimSpace(r.Header.Get(AccountHeader))
			if account == "" {
				account = DefaultAccount
			}
			if err := google.ValidateAccountName(account); err != nil {
				config.Metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			token := &oauth2.Token{
				AccessToken: accessToken,
				TokenType:   "Bearer",
				Expiry:      parseTokenExpiry(r.Header.Get(TokenExpiryHeader)),
			}

			if config.Store != nil {
				storeCtx, cancel := context.WithTimeout(ctx, tokenStoreTimeout)
				err := config.Store.SaveToken(storeCtx, account, token)
				cancel()
				if err != nil {
					logger.Error("failed to store bearer token",
						logging.Account(account),
						logging.Err(err))
				} else {
					logger.Debug("stored bearer token",
						logging.Account(account),
						slog.String("token", logging.SanitizeToken(accessToken)),
						slog.String("expires_in", time.Until(token.Expiry).Round(time.Second).String()))
				}
			}

			ctx = google.ContextWithToken(ctx, token)
			ctx = ContextWithAccount(ctx, account)
			config.Metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultSuccess)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// parseTokenExpiry parses an RFC3339 expiry and falls back to one hour from now.
func parseTokenExpiry(value string) time.Time {
	if value == "" {
		return time.Now().Add(defaultAccessTokenExpiry)
	}
	expiry, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Now().Add(defaultAccessTokenExpiry)
	}
	return expiry
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps server-sent event streams working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// MetricsMiddleware records http_requests_total and request durations.
func MetricsMiddleware(metrics *instrumentation.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			metrics.RecordHTTPRequest(r.Context(), r.Method, instrumentation.NormalizePath(r.URL.Path), rec.status, time.Since(start))
		})
	}
}

// HTTPServerConfig holds configuration for the HTTP transport.
type HTTPServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string

	// DisableStreaming turns off server-sent event responses.
	DisableStreaming bool

	// TokenStore caches forwarded bearer tokens (optional).
	TokenStore storage.TokenStore

	Metrics *instrumentation.Metrics
	Logger  *slog.Logger

	// Health registers /healthz and /readyz when set.
	Health *HealthChecker
}

// HTTPServer serves MCP over streamable HTTP at /mcp.
type HTTPServer struct {
	mcpServer  *mcpserver.MCPServer
	config     HTTPServerConfig
	httpServer *http.Server
}

// NewHTTPServer creates an HTTP transport for mcpServer.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, config HTTPServerConfig) (*HTTPServer, error) {
	if mcpServer == nil {
		return nil, errors.New("MCP server cannot be nil")
	}
	if config.Addr == "" {
		config.Addr = DefaultHTTPAddr
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &HTTPServer{mcpServer: mcpServer, config: config}, nil
}

// Handler returns the HTTP handler with all routes registered.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer,
		mcpserver.WithEndpointPath(instrumentation.PathMCP),
		mcpserver.WithDisableStreaming(s.config.DisableStreaming),
	)

	var mcpHandler http.Handler = streamable
	mcpHandler = BearerTokenMiddleware(BearerTokenConfig{
		Store:   s.config.TokenStore,
		Logger:  s.config.Logger,
		Metrics: s.config.Metrics,
	})(mcpHandler)
	mcpHandler = otelhttp.NewHandler(mcpHandler, "mcp")
	mux.Handle(instrumentation.PathMCP, mcpHandler)

	if s.config.Health != nil {
		s.config.Health.RegisterHealthEndpoints(mux)
	}

	return MetricsMiddleware(s.config.Metrics)(mux)
}

// Start listens on the configured address and blocks until the server stops.
func (s *HTTPServer) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.config.Logger.Info("starting MCP HTTP server",
		slog.String("addr", s.config.Addr),
		logging.Transport("streamable-http"))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Addr returns the configured listen address.
func (s *HTTPServer) Addr() string {
	return s.config.Addr
}
