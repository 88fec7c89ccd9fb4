package session

import (
	"net/http"

	"github.com/noah-isme/goldshop-api/internal/common"
)

// Handler exposes the session introspection endpoint.
type Handler struct{}

// Get handles GET /api/v1/session, summarising the caller's session.
func (Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := FromContext(r.Context())
	if !ok {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "session middleware not configured", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"sessionId":    sess.ID,
		"createdAt":    sess.CreatedAt,
		"transactions": sess.Ledger.Len(),
	}})
}
