// Package invoice renders printable invoices from the label/value pairs
// supplied by the ledger layer. The core pricing contract never depends
// on whether PDF rendering is available.
package invoice

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Field is one label/value line on the invoice.
type Field struct {
	Label string
	Value string
}

// Document is everything the renderer needs for a one-page invoice.
type Document struct {
	Title    string
	ShopName string
	Fields   []Field
}

// Renderer produces invoice bytes. Available reports whether rendering is
// enabled; callers must not invoke Render when it returns false.
type Renderer interface {
	Available() bool
	Render(doc Document) ([]byte, error)
}

// PDF renders single-page A4 invoices with go-pdf/fpdf.
type PDF struct {
	Enabled bool
}

// Available implements Renderer.
func (p PDF) Available() bool { return p.Enabled }

// Render implements Renderer.
func (p PDF) Render(doc Document) ([]byte, error) {
	if !p.Enabled {
		return nil, fmt.Errorf("pdf rendering disabled")
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")
	if doc.ShopName != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, doc.ShopName, "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 10)
	for _, f := range doc.Fields {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(55, 7, f.Label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, f.Value, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
