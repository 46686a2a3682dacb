package loader

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/teemow/formcaller/internal/formschema"
	"github.com/teemow/formcaller/internal/instrumentation"
	"github.com/teemow/formcaller/internal/logging"
)

// TokenSource yields the bearer token used for a load.
type TokenSource interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// Fetcher retrieves a raw form document.
type Fetcher interface {
	FetchRawForm(ctx context.Context, token *oauth2.Token, formID string) (*formschema.RawForm, error)
}

// State is the lifecycle state of a Loader.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateFailed
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateFailed:
		return "failed"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time view of a Loader.
type Snapshot struct {
	State  State
	FormID string
	// Form is set only in StateLoaded.
	Form *formschema.NormalizedForm
	// Err is set only in StateFailed.
	Err      error
	LoadedAt time.Time
}

// Loader loads one form at a time: it acquires a token, fetches the form and
// normalizes it. When loads overlap, the most recently started one wins and
// results of earlier loads are discarded.
type Loader struct {
	tokens    TokenSource
	fetcher   Fetcher
	normalize func(*formschema.RawForm) formschema.NormalizedForm
	metrics   *instrumentation.Metrics
	logger    *slog.Logger
	now       func() time.Time

	mu         sync.Mutex
	generation uint64
	snap       Snapshot
}

// Option configures a Loader.
type Option func(*Loader)

// WithMetrics records load and normalization metrics on m.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(l *Loader) { l.metrics = m }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithNormalizer replaces formschema.Normalize.
func WithNormalizer(fn func(*formschema.RawForm) formschema.NormalizedForm) Option {
	return func(l *Loader) { l.normalize = fn }
}

// WithClock sets the time source used for LoadedAt.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// New creates a Loader.
func New(tokens TokenSource, fetcher Fetcher, opts ...Option) *Loader {
	l := &Loader{
		tokens:    tokens,
		fetcher:   fetcher,
		normalize: formschema.Normalize,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads formID and returns the normalized form. A failed load returns a
// *LoadError. A load overtaken by a newer Load or Reset returns ErrSuperseded
// and leaves the Loader's state to the newer request.
func (l *Loader) Load(ctx context.Context, formID string) (formschema.NormalizedForm, error) {
	formID = strings.TrimSpace(formID)
	if formID == "" {
		return formschema.NormalizedForm{}, ErrFormIDRequired
	}

	start := time.Now()
	gen := l.begin(formID)
	logger := l.logger.With(logging.FormID(formID))
	logger.Debug("loading form")

	token, err := l.tokens.Token(ctx)
	if err == nil && (token == nil || token.AccessToken == "") {
		err = errors.New("empty access token")
	}
	if err != nil {
		return l.fail(ctx, gen, start, &LoadError{Kind: ErrAuthentication, FormID: formID, Err: err})
	}

	raw, err := l.fetcher.FetchRawForm(ctx, token, formID)
	if err == nil && raw == nil {
		err = errors.New("empty form document")
	}
	if err != nil {
		return l.fail(ctx, gen, start, &LoadError{Kind: ErrFetch, FormID: formID, Err: err})
	}

	form := l.normalize(raw)
	if form.FormID == "" {
		form.FormID = formID
	}
	if l.metrics != nil {
		s := form.Summary()
		l.metrics.RecordFormNormalization(ctx, s.Total, s.Unknown)
	}

	if !l.commit(gen, form) {
		l.record(ctx, instrumentation.LoadResultSuperseded, start)
		return formschema.NormalizedForm{}, ErrSuperseded
	}

	l.record(ctx, instrumentation.LoadResultSuccess, start)
	logger.Info("form loaded",
		slog.Int("questions", len(form.Questions)),
		logging.Duration(time.Since(start)))
	return form, nil
}

// Snapshot returns the current state.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// Current returns the loaded form, if any.
func (l *Loader) Current() (formschema.NormalizedForm, bool) {
	snap := l.Snapshot()
	if snap.State != StateLoaded || snap.Form == nil {
		return formschema.NormalizedForm{}, false
	}
	return *snap.Form, true
}

// Reset discards the current form and any in-flight load.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	l.snap = Snapshot{State: StateEmpty}
}

func (l *Loader) begin(formID string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	l.snap = Snapshot{State: StateLoading, FormID: formID}
	return l.generation
}

func (l *Loader) commit(gen uint64, form formschema.NormalizedForm) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		return false
	}
	l.snap = Snapshot{State: StateLoaded, FormID: form.FormID, Form: &form, LoadedAt: l.now()}
	return true
}

func (l *Loader) fail(ctx context.Context, gen uint64, start time.Time, loadErr *LoadError) (formschema.NormalizedForm, error) {
	l.mu.Lock()
	superseded := gen != l.generation
	if !superseded {
		l.snap = Snapshot{State: StateFailed, FormID: loadErr.FormID, Err: loadErr}
	}
	l.mu.Unlock()

	if superseded {
		l.record(ctx, instrumentation.LoadResultSuperseded, start)
		return formschema.NormalizedForm{}, ErrSuperseded
	}

	result := instrumentation.LoadResultFetchFailure
	if errors.Is(loadErr, ErrAuthentication) {
		result = instrumentation.LoadResultAuthFailure
	}
	l.record(ctx, result, start)
	l.logger.Warn("form load failed",
		logging.FormID(loadErr.FormID),
		logging.Status(result),
		logging.Err(loadErr.Err))
	return formschema.NormalizedForm{}, loadErr
}

func (l *Loader) record(ctx context.Context, result string, start time.Time) {
	if l.metrics == nil {
		return
	}
	l.metrics.RecordFormLoad(ctx, result, time.Since(start))
}
