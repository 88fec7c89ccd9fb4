package ledger_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/goldshop-api/internal/invoice"
	"github.com/noah-isme/goldshop-api/internal/ledger"
	"github.com/noah-isme/goldshop-api/internal/session"
)

type stubRenderer struct {
	enabled bool
	last    invoice.Document
}

func (s *stubRenderer) Available() bool { return s.enabled }

func (s *stubRenderer) Render(doc invoice.Document) ([]byte, error) {
	s.last = doc
	return []byte("%PDF-stub"), nil
}

type transactionResponse struct {
	Data ledger.Transaction `json:"data"`
}

type listResponse struct {
	Data       []ledger.Transaction `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		PerPage    int `json:"per_page"`
		TotalItems int `json:"total_items"`
	} `json:"pagination"`
}

func newRouter(renderer invoice.Renderer) (*chi.Mux, *session.Store) {
	sessions := session.NewStore(time.Hour)
	handler := &ledger.Handler{
		FromRequest: func(r *http.Request) *ledger.Ledger {
			if sess, ok := session.FromContext(r.Context()); ok {
				return sess.Ledger
			}
			return nil
		},
		Validate:       validator.New(validator.WithRequiredStructEnabled()),
		DefaultRate24K: 6000,
		Currency:       "INR",
		ShopName:       "Test Shop",
		Invoices:       renderer,
		DefaultPerPage: 50,
	}
	r := chi.NewRouter()
	r.Route("/api/v1/transactions", func(t chi.Router) {
		t.Use(sessions.Middleware)
		t.Post("/", handler.Create)
		t.Get("/", handler.List)
		t.Get("/export.csv", handler.ExportCSV)
		t.Get("/{invoiceNo}/invoice.pdf", handler.InvoicePDF)
	})
	return r, sessions
}

const createBody = `{"karat":22,"weightGrams":10,"rate24k":6000,"makingMode":"percent","makingValue":2,"hallmarkCharge":50,"taxPercent":3,"itemLabel":"Gold Ring"}`

func TestTransactionLifecycle(t *testing.T) {
	r, _ := newRouter(&stubRenderer{enabled: true})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/", strings.NewReader(createBody))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	sessionID := rec.Header().Get(session.HeaderName)
	require.NotEmpty(t, sessionID)

	var created transactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Regexp(t, `^INV-\d{8}-0001$`, created.Data.InvoiceNo)
	require.Equal(t, "Gold Ring", created.Data.ItemLabel)
	require.InDelta(t, 57850.28, created.Data.FinalPrice, 0.005)

	t.Run("list is session scoped", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/", nil)
		req.Header.Set(session.HeaderName, sessionID)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var list listResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list.Data, 1)
		require.Equal(t, 1, list.Pagination.TotalItems)

		// A caller without the session header gets a fresh empty ledger.
		fresh := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/", nil)
		freshRec := httptest.NewRecorder()
		r.ServeHTTP(freshRec, fresh)
		var freshList listResponse
		require.NoError(t, json.Unmarshal(freshRec.Body.Bytes(), &freshList))
		require.Empty(t, freshList.Data)
	})

	t.Run("csv export", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/export.csv", nil)
		req.Header.Set(session.HeaderName, sessionID)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		require.Contains(t, rec.Body.String(), created.Data.InvoiceNo)
	})

	t.Run("invoice pdf", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/"+created.Data.InvoiceNo+"/invoice.pdf", nil)
		req.Header.Set(session.HeaderName, sessionID)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		require.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
	})

	t.Run("unknown invoice", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/INV-19700101-9999/invoice.pdf", nil)
		req.Header.Set(session.HeaderName, sessionID)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListPaginationOutOfRange(t *testing.T) {
	r, _ := newRouter(&stubRenderer{enabled: true})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/", strings.NewReader(createBody))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionID := rec.Header().Get(session.HeaderName)

	for _, query := range []string{
		"?page=9223372036854775807",
		"?page=2147483647&limit=2147483647",
		"?page=2",
	} {
		listReq := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/"+query, nil)
		listReq.Header.Set(session.HeaderName, sessionID)
		listRec := httptest.NewRecorder()
		r.ServeHTTP(listRec, listReq)

		require.Equal(t, http.StatusOK, listRec.Code, "query %s", query)
		var list listResponse
		require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
		require.Empty(t, list.Data, "query %s", query)
		require.Equal(t, 1, list.Pagination.TotalItems, "query %s", query)
	}
}

func TestCreateRejectsExplicitZeroRate(t *testing.T) {
	r, _ := newRouter(&stubRenderer{enabled: true})

	body := `{"karat":22,"weightGrams":10,"rate24k":0,"makingMode":"percent"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "Rate24K")
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	r, _ := newRouter(&stubRenderer{enabled: true})

	body := `{"karat":22,"weightGrams":0,"rate24k":6000,"makingMode":"percent"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_INPUT")
	require.Contains(t, rec.Body.String(), "WeightGrams")
}

func TestInvoicePDFDisabled(t *testing.T) {
	r, _ := newRouter(invoice.PDF{Enabled: false})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/", strings.NewReader(createBody))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionID := rec.Header().Get(session.HeaderName)

	var created transactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	pdfReq := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/"+created.Data.InvoiceNo+"/invoice.pdf", nil)
	pdfReq.Header.Set(session.HeaderName, sessionID)
	pdfRec := httptest.NewRecorder()
	r.ServeHTTP(pdfRec, pdfReq)

	require.Equal(t, http.StatusNotFound, pdfRec.Code)
	require.Contains(t, pdfRec.Body.String(), "PDF_DISABLED")
}
