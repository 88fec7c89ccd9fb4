package ledger

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/goldshop-api/internal/common"
	"github.com/noah-isme/goldshop-api/internal/invoice"
	"github.com/noah-isme/goldshop-api/internal/obs"
	"github.com/noah-isme/goldshop-api/internal/pricing"
)

// Handler exposes the session-scoped transaction endpoints. The ledger is
// resolved per request so each session sees only its own transactions.
type Handler struct {
	FromRequest    func(*http.Request) *Ledger
	Validate       *validator.Validate
	DefaultRate24K float64
	Currency       string
	ShopName       string
	Invoices       invoice.Renderer
	DefaultPerPage int
}

// Create handles POST /api/v1/transactions: price the item and commit the
// result to the session ledger in one step.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	led := h.ledger(w, r)
	if led == nil {
		return
	}
	in, err := pricing.DecodeInput(r.Body, h.DefaultRate24K)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := pricing.ValidateInput(h.Validate, in); err != nil {
		common.WriteError(w, err)
		return
	}
	tx := led.Record(pricing.Calculate(in), in.ItemLabel)
	if obs.TransactionsTotal != nil {
		obs.TransactionsTotal.WithLabelValues(strconv.FormatFloat(in.Karat, 'f', -1, 64)).Inc()
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": tx})
}

// List handles GET /api/v1/transactions, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	led := h.ledger(w, r)
	if led == nil {
		return
	}
	perPage := h.DefaultPerPage
	if perPage <= 0 {
		perPage = 50
	}
	page, perPage := common.ParsePagination(r, perPage)
	all := led.List()
	start := (page - 1) * perPage
	if start < 0 || start > len(all) {
		start = len(all)
	}
	end := start + perPage
	if end < start || end > len(all) {
		end = len(all)
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data":       all[start:end],
		"pagination": common.Pagination{Page: page, PerPage: perPage, TotalItems: len(all)},
	})
}

// ExportCSV handles GET /api/v1/transactions/export.csv in recorded order.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	led := h.ledger(w, r)
	if led == nil {
		return
	}
	data, err := led.ExportCSV()
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "export failed", nil)
		return
	}
	if obs.CSVExportsTotal != nil {
		obs.CSVExportsTotal.Inc()
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// InvoicePDF handles GET /api/v1/transactions/{invoiceNo}/invoice.pdf.
// Responds 404 PDF_DISABLED when rendering is not available; transactions
// remain fully usable either way.
func (h *Handler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	led := h.ledger(w, r)
	if led == nil {
		return
	}
	if h.Invoices == nil || !h.Invoices.Available() {
		common.JSONError(w, http.StatusNotFound, "PDF_DISABLED", "invoice rendering is not enabled", nil)
		return
	}
	invoiceNo := chi.URLParam(r, "invoiceNo")
	tx, ok := led.Get(invoiceNo)
	if !ok {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "unknown invoice number", nil)
		return
	}
	data, err := h.Invoices.Render(invoice.Document{
		Title:    "GOLD SHOP INVOICE",
		ShopName: h.ShopName,
		Fields:   h.invoiceFields(tx),
	})
	if err != nil {
		if obs.InvoiceRendersTotal != nil {
			obs.InvoiceRendersTotal.WithLabelValues("error").Inc()
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "invoice rendering failed", nil)
		return
	}
	if obs.InvoiceRendersTotal != nil {
		obs.InvoiceRendersTotal.WithLabelValues("ok").Inc()
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tx.InvoiceNo+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// invoiceFields enumerates the typed transaction as label/value pairs for
// the presentation layer.
func (h *Handler) invoiceFields(tx Transaction) []invoice.Field {
	amount := func(v float64) string {
		if h.Currency == "" {
			return pricing.FormatAmount(v)
		}
		return h.Currency + " " + pricing.FormatAmount(v)
	}
	return []invoice.Field{
		{Label: "Invoice No", Value: tx.InvoiceNo},
		{Label: "Item", Value: tx.ItemLabel},
		{Label: "Karat", Value: strconv.FormatFloat(tx.Karat, 'f', -1, 64) + "K"},
		{Label: "Weight (g)", Value: strconv.FormatFloat(tx.WeightGrams, 'f', -1, 64)},
		{Label: "Effective Weight (g)", Value: strconv.FormatFloat(tx.EffectiveGrams, 'f', 3, 64)},
		{Label: "Rate / Gram", Value: amount(tx.RatePerGram)},
		{Label: "Gold Value", Value: amount(tx.GoldValue)},
		{Label: "Making Charge", Value: amount(tx.MakingCharge)},
		{Label: "Hallmark Charge", Value: amount(tx.HallmarkCharge)},
		{Label: "Pre-tax Subtotal", Value: amount(tx.PreTax)},
		{Label: "Tax", Value: amount(tx.TaxAmount)},
		{Label: "Final Price", Value: amount(tx.FinalPrice)},
		{Label: "Date", Value: tx.CreatedAt.Format("2006-01-02 15:04")},
	}
}

func (h *Handler) ledger(w http.ResponseWriter, r *http.Request) *Ledger {
	if h.FromRequest == nil || h.Validate == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "ledger handler not configured", nil)
		return nil
	}
	led := h.FromRequest(r)
	if led == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "no session ledger", nil)
		return nil
	}
	return led
}
