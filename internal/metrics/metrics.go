// Package metrics exposes Prometheus instrumentation for billing operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotelbilling"

// Metrics holds the billing collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	BillsCreated   prometheus.Counter
	BillsFinalized prometheus.Counter
	LineItemsAdded prometheus.Counter
	Revenue        prometheus.Counter
	OpenBills      prometheus.Gauge
	LoginAttempts  *prometheus.CounterVec
	StoreWrites    *prometheus.CounterVec
}

// New registers the billing collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		BillsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_created_total",
			Help:      "Bills opened on a table.",
		}),
		BillsFinalized: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_finalized_total",
			Help:      "Bills marked paid.",
		}),
		LineItemsAdded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "line_items_added_total",
			Help:      "Units of menu items added to bills.",
		}),
		Revenue: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_total",
			Help:      "Tax-inclusive total of finalized bills.",
		}),
		OpenBills: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_bills",
			Help:      "Bills currently open.",
		}),
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		StoreWrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_writes_total",
			Help:      "Collection snapshot writes by key and result.",
		}, []string{"key", "result"}),
	}
}

func (m *Metrics) BillCreated() {
	if m == nil {
		return
	}
	m.BillsCreated.Inc()
	m.OpenBills.Inc()
}

func (m *Metrics) BillFinalized(total float64) {
	if m == nil {
		return
	}
	m.BillsFinalized.Inc()
	m.OpenBills.Dec()
	m.Revenue.Add(total)
}

func (m *Metrics) LineItemAdded(qty int) {
	if m == nil {
		return
	}
	m.LineItemsAdded.Add(float64(qty))
}

// SetOpenBills resets the open bill gauge, e.g. after loading persisted state.
func (m *Metrics) SetOpenBills(n int) {
	if m == nil {
		return
	}
	m.OpenBills.Set(float64(n))
}

func (m *Metrics) LoginAttempt(ok bool) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) StoreWrite(key string, ok bool) {
	if m == nil {
		return
	}
	m.StoreWrites.WithLabelValues(key, result(ok)).Inc()
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
