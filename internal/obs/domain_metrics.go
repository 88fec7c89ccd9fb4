package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuotesTotal counts priced quotes by karat.
	QuotesTotal *prometheus.CounterVec
	// TransactionsTotal counts committed ledger transactions by karat.
	TransactionsTotal *prometheus.CounterVec
	// CSVExportsTotal counts ledger CSV downloads.
	CSVExportsTotal prometheus.Counter
	// InvoiceRendersTotal counts PDF invoice rendering outcomes.
	InvoiceRendersTotal *prometheus.CounterVec
	// HistoryRequestsTotal counts simulated price-history requests.
	HistoryRequestsTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers the shop collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuotesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_total",
			Help:      "Count of priced quotes by karat.",
		}, []string{"karat"})
		TransactionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Count of committed ledger transactions by karat.",
		}, []string{"karat"})
		CSVExportsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "csv_exports_total",
			Help:      "Count of ledger CSV exports.",
		})
		InvoiceRendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_renders_total",
			Help:      "Count of PDF invoice rendering outcomes.",
		}, []string{"result"})
		HistoryRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_requests_total",
			Help:      "Count of simulated price-history requests.",
		})

		registerCollector(reg, QuotesTotal, func(c prometheus.Collector) {
			if v, ok := c.(*prometheus.CounterVec); ok {
				QuotesTotal = v
			}
		})
		registerCollector(reg, TransactionsTotal, func(c prometheus.Collector) {
			if v, ok := c.(*prometheus.CounterVec); ok {
				TransactionsTotal = v
			}
		})
		registerCollector(reg, CSVExportsTotal, func(c prometheus.Collector) {
			if v, ok := c.(prometheus.Counter); ok {
				CSVExportsTotal = v
			}
		})
		registerCollector(reg, InvoiceRendersTotal, func(c prometheus.Collector) {
			if v, ok := c.(*prometheus.CounterVec); ok {
				InvoiceRendersTotal = v
			}
		})
		registerCollector(reg, HistoryRequestsTotal, func(c prometheus.Collector) {
			if v, ok := c.(prometheus.Counter); ok {
				HistoryRequestsTotal = v
			}
		})
	})
}
