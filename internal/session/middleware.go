package session

import (
	"net/http"
	"time"
)

// HeaderName carries the session identifier on requests and responses.
const HeaderName = "X-Session-ID"

// CookieName is the fallback transport for browser clients.
const CookieName = "gold_session"

// Middleware resolves the caller's session from header or cookie, starting
// a fresh one when the id is missing or unknown. The resolved id is echoed
// on the response so clients can keep it.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderName)
		if id == "" {
			if c, err := r.Cookie(CookieName); err == nil {
				id = c.Value
			}
		}
		sess, ok := s.Get(id)
		if !ok {
			sess = s.New()
		}
		w.Header().Set(HeaderName, sess.ID)
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    sess.ID,
			Path:     "/",
			MaxAge:   int(s.ttl / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}
