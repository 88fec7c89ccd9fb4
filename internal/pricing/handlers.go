package pricing

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/goldshop-api/internal/common"
	"github.com/noah-isme/goldshop-api/internal/obs"
)

// Handler exposes the stateless pricing endpoints.
type Handler struct {
	Validate       *validator.Validate
	DefaultRate24K float64
}

// DecodeInput parses a CalculationInput from JSON. The default 24K rate
// applies only when the rate24k field is absent; an explicit zero or
// negative value is kept so validation can reject it.
func DecodeInput(r io.Reader, defaultRate24K float64) (CalculationInput, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return CalculationInput{}, err
	}
	var in CalculationInput
	if err := json.Unmarshal(body, &in); err != nil {
		return CalculationInput{}, err
	}
	var rate struct {
		Rate24K *float64 `json:"rate24k"`
	}
	if err := json.Unmarshal(body, &rate); err != nil {
		return CalculationInput{}, err
	}
	if rate.Rate24K == nil {
		in.Rate24K = defaultRate24K
	}
	return in, nil
}

// Quote handles POST /api/v1/quotes. It prices an item without touching
// the session ledger.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Validate == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "pricing handler not configured", nil)
		return
	}
	in, err := DecodeInput(r.Body, h.DefaultRate24K)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := ValidateInput(h.Validate, in); err != nil {
		common.WriteError(w, err)
		return
	}
	result := Calculate(in)
	if obs.QuotesTotal != nil {
		obs.QuotesTotal.WithLabelValues(karatLabel(in.Karat)).Inc()
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": result})
}

// Rate handles GET /api/v1/rates/{karat}. The 24K reference rate comes
// from the rate24k query parameter, falling back to the configured value.
func (h *Handler) Rate(w http.ResponseWriter, r *http.Request) {
	karat, err := strconv.ParseFloat(chi.URLParam(r, "karat"), 64)
	if err != nil || karat <= 0 {
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_INPUT", "karat must be a positive number", map[string]any{"field": "karat"})
		return
	}
	rate24K := h.DefaultRate24K
	if raw := r.URL.Query().Get("rate24k"); raw != "" {
		rate24K, err = strconv.ParseFloat(raw, 64)
		if err != nil || rate24K <= 0 {
			common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_INPUT", "rate24k must be a positive number", map[string]any{"field": "rate24k"})
			return
		}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"karat":       karat,
		"rate24k":     rate24K,
		"ratePerGram": Round2(RateForKarat(rate24K, karat)),
	}})
}

func karatLabel(karat float64) string {
	return strconv.FormatFloat(karat, 'f', -1, 64)
}
