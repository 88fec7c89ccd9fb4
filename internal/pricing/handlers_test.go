package pricing_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/goldshop-api/internal/pricing"
)

type quoteResponse struct {
	Data pricing.CalculationResult `json:"data"`
}

type errorResponse struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newHandler() *pricing.Handler {
	return &pricing.Handler{
		Validate:       validator.New(validator.WithRequiredStructEnabled()),
		DefaultRate24K: 6000,
	}
}

func TestQuote(t *testing.T) {
	handler := newHandler()

	t.Run("prices an item", func(t *testing.T) {
		body := `{"karat":22,"weightGrams":10,"rate24k":6000,"makingMode":"percent","makingValue":2,"hallmarkCharge":50,"taxPercent":3}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Quote(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp quoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.InDelta(t, 57850.28, resp.Data.FinalPrice, 0.005)
	})

	t.Run("applies the configured default rate", func(t *testing.T) {
		body := `{"karat":24,"weightGrams":1,"makingMode":"percent"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Quote(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp quoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.InDelta(t, 6000, resp.Data.RatePerGram, 0.005)
	})

	t.Run("rejects an explicit zero rate", func(t *testing.T) {
		body := `{"karat":24,"weightGrams":1,"rate24k":0,"makingMode":"percent"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Quote(rec, req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "INVALID_INPUT", resp.Error.Code)
		require.Equal(t, "Rate24K", resp.Error.Details["field"])
	})

	t.Run("rejects invalid input naming the field", func(t *testing.T) {
		body := `{"karat":22,"weightGrams":-1,"rate24k":6000,"makingMode":"percent"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Quote(rec, req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "INVALID_INPUT", resp.Error.Code)
		require.Equal(t, "WeightGrams", resp.Error.Details["field"])
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		handler.Quote(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRate(t *testing.T) {
	handler := newHandler()
	r := chi.NewRouter()
	r.Get("/api/v1/rates/{karat}", handler.Rate)

	t.Run("tabulated karat", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/rates/22?rate24k=6000", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Data struct {
				RatePerGram float64 `json:"ratePerGram"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.InDelta(t, 5501.50, resp.Data.RatePerGram, 0.005)
	})

	t.Run("rejects non-positive karat", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/rates/0", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
