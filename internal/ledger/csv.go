package ledger

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/noah-isme/goldshop-api/internal/pricing"
)

// csvHeader fixes the export column order. Changing it breaks downstream
// spreadsheets, so treat it as a wire format.
var csvHeader = []string{
	"invoice_no",
	"item",
	"karat",
	"weight_grams",
	"effective_grams",
	"rate_per_gram",
	"gold_value",
	"making_charge",
	"hallmark_charge",
	"pre_tax",
	"tax_amount",
	"final_price",
	"created_at",
}

// ExportCSV serializes all transactions in recorded order. The output is
// deterministic for a given ledger state: stable columns, fixed number
// formatting, RFC 3339 timestamps.
func (l *Ledger) ExportCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, tx := range l.Snapshot() {
		row := []string{
			tx.InvoiceNo,
			tx.ItemLabel,
			formatNumber(tx.Karat),
			formatNumber(tx.WeightGrams),
			formatNumber(tx.EffectiveGrams),
			pricing.FormatAmount(tx.RatePerGram),
			pricing.FormatAmount(tx.GoldValue),
			pricing.FormatAmount(tx.MakingCharge),
			pricing.FormatAmount(tx.HallmarkCharge),
			pricing.FormatAmount(tx.PreTax),
			pricing.FormatAmount(tx.TaxAmount),
			pricing.FormatAmount(tx.FinalPrice),
			tx.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
