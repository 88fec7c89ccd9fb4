// Package ratelimit guards the API with a per-client request budget.
package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"time"

	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/noah-isme/goldshop-api/internal/common"
)

// NewMemoryLimiter builds an in-process limiter allowing rpm requests per
// minute per key.
func NewMemoryLimiter(rpm int) *limiter.Limiter {
	if rpm <= 0 {
		rpm = 120
	}
	return limiter.New(memory.NewStore(), limiter.Rate{
		Period: time.Minute,
		Limit:  int64(rpm),
	})
}

// Handler enforces the limit before delegating to the next handler.
type Handler struct {
	Limiter *limiter.Limiter
	KeyFunc func(*http.Request) string
	OnError func(error)
}

// Middleware implements the chi middleware shape. Limiter errors fail
// open.
func (h Handler) Middleware(next http.Handler) http.Handler {
	if h.Limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if h.KeyFunc != nil {
			key = h.KeyFunc(r)
		}
		lctx, err := h.Limiter.Get(r.Context(), key)
		if err != nil {
			if h.OnError != nil {
				h.OnError(err)
			}
			next.ServeHTTP(w, r)
			return
		}

		headers := w.Header()
		headers.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		headers.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			retryAfter := lctx.Reset - time.Now().Unix()
			if retryAfter < 0 {
				retryAfter = 0
			}
			headers.Set("Retry-After", strconv.FormatInt(retryAfter, 10))
			common.JSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
