package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// DealMetrics records lifecycle transition and order placement counters.
type DealMetrics struct {
	transitions *prometheus.CounterVec
	orders      prometheus.Counter
}

// NewDealMetrics registers the marketplace metrics on the provided registerer.
func NewDealMetrics(reg prometheus.Registerer) *DealMetrics {
	if reg == nil {
		return &DealMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "deal_transitions_total",
		Help: "Deal lifecycle transition attempts by action and outcome.",
	}, []string{"action", "outcome"})
	orders := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Successfully placed orders.",
	})
	reg.MustRegister(transitions, orders)
	return &DealMetrics{
		transitions: transitions,
		orders:      orders,
	}
}

// IncTransition counts one transition attempt for the named action.
func (d *DealMetrics) IncTransition(action string, ok bool) {
	if d == nil || d.transitions == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	d.transitions.WithLabelValues(normalizeLabel(action), outcome).Inc()
}

// IncOrderPlaced counts one successfully placed order.
func (d *DealMetrics) IncOrderPlaced() {
	if d == nil || d.orders == nil {
		return
	}
	d.orders.Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}
