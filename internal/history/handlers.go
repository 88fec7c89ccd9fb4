package history

import (
	"net/http"
	"strconv"

	"github.com/noah-isme/goldshop-api/internal/common"
	"github.com/noah-isme/goldshop-api/internal/obs"
)

const maxDays = 3650

// Handler serves the simulated price-history endpoint.
type Handler struct {
	Sim               *Simulator
	DefaultRate24K    float64
	DefaultDays       int
	DefaultVolatility float64
}

// Get handles GET /api/v1/history. Query parameters: rate24k, days,
// volatility, karat; all optional.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Sim == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "history handler not configured", nil)
		return
	}
	q := r.URL.Query()

	rate24K, err := parseFloat(q.Get("rate24k"), h.DefaultRate24K)
	if err != nil || rate24K <= 0 {
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_INPUT", "rate24k must be a positive number", map[string]any{"field": "rate24k"})
		return
	}
	days := common.AtoiDefault(q.Get("days"), h.DefaultDays)
	if days < 1 || days > maxDays {
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_INPUT", "days must be between 1 and 3650", map[string]any{"field": "days"})
		return
	}
	volatility, err := parseFloat(q.Get("volatility"), h.DefaultVolatility)
	if err != nil || volatility < 0 || volatility > 1 {
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_INPUT", "volatility must be between 0 and 1", map[string]any{"field": "volatility"})
		return
	}
	karat, err := parseFloat(q.Get("karat"), 24)
	if err != nil || karat <= 0 {
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_INPUT", "karat must be a positive number", map[string]any{"field": "karat"})
		return
	}

	points := h.Sim.Simulate(rate24K, days, volatility)
	if karat != 24 {
		points = ScaleForKarat(points, karat)
	}
	if obs.HistoryRequestsTotal != nil {
		obs.HistoryRequestsTotal.Inc()
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data":      points,
		"karat":     karat,
		"simulated": true,
	})
}

func parseFloat(raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}
