// Package metrics defines the Prometheus collectors for ledger operations.
// There is no HTTP exposition; the registry is written to a node_exporter
// textfile on exit when a path is configured.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Metrics holds the collectors and the registry they are registered with.
type Metrics struct {
	Registry *prometheus.Registry

	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec

	BillsCreated  prometheus.Counter
	SalesAmount   prometheus.Counter
	GSTCollected  prometheus.Counter
	DiscountGiven prometheus.Counter
	RejectedItems prometheus.Counter
	LoadFailures  prometheus.Counter
}

// New creates and registers all collectors. Every series carries a run_id
// label so textfiles from different sessions can be told apart.
func New(runID string) *Metrics {
	reg := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(prometheus.Labels{"run_id": runID}, reg)

	m := &Metrics{
		Registry: reg,
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kirana",
			Name:      "operations_total",
			Help:      "Ledger operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kirana",
			Name:      "operation_duration_seconds",
			Help:      "Ledger operation latency, including the snapshot save.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"operation"}),
		BillsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kirana",
			Name:      "bills_created_total",
			Help:      "Bills written to the ledger.",
		}),
		SalesAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kirana",
			Name:      "sales_amount_total",
			Help:      "Sum of payable bill totals.",
		}),
		GSTCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kirana",
			Name:      "gst_collected_total",
			Help:      "Sum of GST charged on bills.",
		}),
		DiscountGiven: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kirana",
			Name:      "discount_given_total",
			Help:      "Sum of promotional discounts.",
		}),
		RejectedItems: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kirana",
			Name:      "bill_items_rejected_total",
			Help:      "Cart lines skipped because of an unknown product or bad quantity.",
		}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kirana",
			Name:      "ledger_load_failures_total",
			Help:      "Startups that fell back to an empty ledger.",
		}),
	}

	wrapped.MustRegister(
		m.Operations, m.Duration,
		m.BillsCreated, m.SalesAmount, m.GSTCollected, m.DiscountGiven,
		m.RejectedItems, m.LoadFailures,
	)
	return m
}

// RecordBill adds one bill's amounts to the sales counters. Counters are
// float64, so these are for monitoring only, never for accounting.
func (m *Metrics) RecordBill(total, gst, discount decimal.Decimal, rejected int) {
	m.BillsCreated.Inc()
	m.SalesAmount.Add(nonNegative(total))
	m.GSTCollected.Add(nonNegative(gst))
	m.DiscountGiven.Add(nonNegative(discount))
	m.RejectedItems.Add(float64(rejected))
}

// Counter.Add panics on negative input.
func nonNegative(d decimal.Decimal) float64 {
	if d.IsNegative() {
		return 0
	}
	return d.InexactFloat64()
}

// WriteTextfile writes the registry in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
