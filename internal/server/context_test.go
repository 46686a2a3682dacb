package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/formcaller/internal/google"
)

func newTestServerContext(t *testing.T, opts ...Option) *ServerContext {
	t.Helper()
	sc, err := NewServerContext(context.Background(), google.NewStaticTokenProvider("test-token"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestNewServerContext_NilProvider(t *testing.T) {
	sc, err := NewServerContext(context.Background(), nil)
	assert.Error(t, err)
	assert.Nil(t, sc)
}

func TestServerContext_LoaderFor(t *testing.T) {
	sc := newTestServerContext(t)

	a := sc.LoaderFor("default", "")
	assert.Same(t, a, sc.LoaderFor("default", ""), "loader should be cached per account")

	work := sc.LoaderFor("work", "")
	assert.NotSame(t, a, work)

	s1 := sc.LoaderFor("default", "session-1")
	s2 := sc.LoaderFor("default", "session-2")
	assert.NotSame(t, s1, s2, "sessions must not share a loader")
	assert.NotSame(t, a, s1)
	assert.Same(t, s1, sc.LoaderFor("default", "session-1"))

	assert.Equal(t, 4, sc.LoaderCount())
}

func TestServerContext_ReleaseSession(t *testing.T) {
	sc := newTestServerContext(t)

	sc.LoaderFor("default", "")
	sc.LoaderFor("default", "session-1")
	sc.LoaderFor("work", "session-1")
	sc.LoaderFor("default", "session-2")
	require.Equal(t, 4, sc.LoaderCount())

	sc.ReleaseSession("")
	assert.Equal(t, 4, sc.LoaderCount())

	sc.ReleaseSession("session-1")
	assert.Equal(t, 2, sc.LoaderCount())

	sc.ReleaseSession("session-2")
	assert.Equal(t, 1, sc.LoaderCount())
}

func TestServerContext_ReleaseSession_SlashInID(t *testing.T) {
	sc := newTestServerContext(t)

	nested := sc.LoaderFor("default", "a/b")
	sc.LoaderFor("default", "b")
	require.Equal(t, 2, sc.LoaderCount())

	sc.ReleaseSession("b")
	assert.Equal(t, 1, sc.LoaderCount())
	assert.Same(t, nested, sc.LoaderFor("default", "a/b"))
}

func TestServerContext_Shutdown(t *testing.T) {
	sc := newTestServerContext(t)
	sc.LoaderFor("default", "")

	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	assert.Equal(t, 0, sc.LoaderCount())
	assert.ErrorIs(t, sc.Context().Err(), context.Canceled)

	// idempotent
	require.NoError(t, sc.Shutdown())

	_, err := sc.FormsClientForAccount(context.Background(), "default")
	assert.ErrorContains(t, err, "shutting down")
}

func TestServerContext_FormsClientForAccount_NoToken(t *testing.T) {
	sc, err := NewServerContext(context.Background(), google.NewContextTokenProvider(nil))
	require.NoError(t, err)

	_, err = sc.FormsClientForAccount(context.Background(), "work")
	require.Error(t, err)
	assert.ErrorIs(t, err, google.ErrNoToken)
	assert.Contains(t, err.Error(), "formcaller auth --account work")
}

func TestServerContext_Defaults(t *testing.T) {
	sc := newTestServerContext(t)
	assert.NotNil(t, sc.Logger())
	assert.Nil(t, sc.Metrics())
	assert.Nil(t, sc.AuditLogger())
	assert.NotNil(t, sc.TokenProvider())
}
