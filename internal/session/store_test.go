package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/goldshop-api/internal/session"
)

func TestStoreNewAndGet(t *testing.T) {
	store := session.NewStore(time.Hour)

	sess := store.New()
	require.NotEmpty(t, sess.ID)
	require.NotNil(t, sess.Ledger)
	require.Equal(t, 1, store.Len())

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	require.Same(t, sess, got)

	_, ok = store.Get("")
	require.False(t, ok)
	_, ok = store.Get("nope")
	require.False(t, ok)
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	current := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	store := session.NewStoreWithClock(time.Hour, func() time.Time { return current })

	idle := store.New()
	current = current.Add(30 * time.Minute)
	active := store.New()

	// The idle session ages past the TTL; the active one is touched.
	current = current.Add(45 * time.Minute)
	_, ok := store.Get(active.ID)
	require.True(t, ok)

	require.Equal(t, 1, store.Sweep())
	require.Equal(t, 1, store.Len())

	_, ok = store.Get(idle.ID)
	require.False(t, ok)
	_, ok = store.Get(active.ID)
	require.True(t, ok)
}

func TestMiddleware(t *testing.T) {
	store := session.NewStore(time.Hour)
	var seen *session.Session
	handler := store.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		require.True(t, ok)
		seen = sess
		w.WriteHeader(http.StatusNoContent)
	}))

	// First request starts a session.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	id := rec.Header().Get(session.HeaderName)
	require.NotEmpty(t, id)
	require.Equal(t, seen.ID, id)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, session.CookieName, cookies[0].Name)
	require.Equal(t, id, cookies[0].Value)

	// Header round-trip reuses it.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(session.HeaderName, id)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req)
	require.Equal(t, id, rec2.Header().Get(session.HeaderName))

	// Cookie works as fallback transport.
	req3 := httptest.NewRequest(http.MethodGet, "/", nil)
	req3.AddCookie(&http.Cookie{Name: session.CookieName, Value: id})
	rec3 := httptest.NewRecorder()
	handler.ServeHTTP(rec3, req3)
	require.Equal(t, id, rec3.Header().Get(session.HeaderName))

	// An unknown id starts fresh rather than failing.
	req4 := httptest.NewRequest(http.MethodGet, "/", nil)
	req4.Header.Set(session.HeaderName, "stale-id")
	rec4 := httptest.NewRecorder()
	handler.ServeHTTP(rec4, req4)
	require.NotEmpty(t, rec4.Header().Get(session.HeaderName))
	require.NotEqual(t, "stale-id", rec4.Header().Get(session.HeaderName))
}
