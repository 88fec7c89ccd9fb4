// Package ledger keeps the append-only record of committed calculations
// for one session, together with invoice numbering.
package ledger

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/noah-isme/goldshop-api/internal/pricing"
)

// Transaction is a committed calculation. Immutable once recorded: the
// ledger only appends and lists, never mutates or deletes.
type Transaction struct {
	InvoiceNo string `json:"invoiceNo"`
	ItemLabel string `json:"itemLabel"`
	pricing.CalculationResult
	CreatedAt time.Time `json:"createdAt"`
}

// Ledger is an insertion-ordered, process-lifetime transaction log. The
// invoice sequence is a single atomic counter so numbers stay unique and
// strictly increasing even under concurrent commits.
type Ledger struct {
	mu        sync.RWMutex
	seq       atomic.Uint64
	entries   []Transaction
	now       func() time.Time
	createdAt time.Time
}

// New constructs an empty ledger using the wall clock.
func New() *Ledger {
	return NewWithClock(time.Now)
}

// NewWithClock constructs a ledger with an injected clock for tests.
func NewWithClock(now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{now: now, createdAt: now()}
}

// Record commits a calculation under a freshly generated invoice number
// of the form INV-YYYYMMDD-NNNN and returns the stored transaction.
func (l *Ledger) Record(result pricing.CalculationResult, itemLabel string) Transaction {
	n := l.seq.Add(1)
	now := l.now()
	tx := Transaction{
		InvoiceNo:         fmt.Sprintf("INV-%s-%04d", now.Format("20060102"), n),
		ItemLabel:         itemLabel,
		CalculationResult: result,
		CreatedAt:         now,
	}
	l.mu.Lock()
	l.entries = append(l.entries, tx)
	l.mu.Unlock()
	return tx
}

// List returns the transactions newest first, for display.
func (l *Ledger) List() []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Transaction, len(l.entries))
	for i, tx := range l.entries {
		out[len(l.entries)-1-i] = tx
	}
	return out
}

// Snapshot returns the transactions in recorded order, for export.
func (l *Ledger) Snapshot() []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Transaction, len(l.entries))
	copy(out, l.entries)
	return out
}

// Get looks up a transaction by invoice number.
func (l *Ledger) Get(invoiceNo string) (Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, tx := range l.entries {
		if tx.InvoiceNo == invoiceNo {
			return tx, true
		}
	}
	return Transaction{}, false
}

// Len reports the number of recorded transactions.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// CreatedAt reports when the ledger was opened.
func (l *Ledger) CreatedAt() time.Time {
	return l.createdAt
}
