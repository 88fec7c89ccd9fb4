// Package health exposes liveness and readiness probes.
package health

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

var ready atomic.Bool

// SetReady flips the process readiness flag. Main sets it true once the
// server is listening and false when shutdown begins.
func SetReady(v bool) { ready.Store(v) }

// Ready reports the current readiness flag.
func Ready() bool { return ready.Load() }

// SessionCounter reports how many live sessions the store holds.
type SessionCounter interface {
	Len() int
}

// Handler exposes the health endpoints.
type Handler struct {
	Sessions SessionCounter
}

// Live reports liveness.
func (Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ReadyHandler reports readiness and the live session count.
func (h Handler) ReadyHandler(w http.ResponseWriter, _ *http.Request) {
	status := map[string]any{"status": "ok"}
	if h.Sessions != nil {
		status["sessions"] = h.Sessions.Len()
	}
	w.Header().Set("Content-Type", "application/json")
	if !Ready() {
		status["status"] = "shutting down"
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}
