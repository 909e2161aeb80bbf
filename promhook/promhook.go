// Package promhook exports scheduler events as Prometheus metrics.
package promhook

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tomasbasham/edfsched"
)

// Ensure Hook implements [edfsched.MetricsHook].
var _ edfsched.MetricsHook[any] = (*Hook[any])(nil)

// Hook is an [edfsched.MetricsHook] backed by Prometheus collectors.
type Hook[T any] struct {
	admitted  prometheus.Counter
	selected  prometheus.Counter
	removed   prometheus.Counter
	empty     prometheus.Counter
	pending   prometheus.Gauge
	remaining prometheus.Histogram
}

// New creates a [Hook] for schedulers over domain d and registers its
// collectors with reg. Metric names are prefixed with namespace.
func New[T any](reg prometheus.Registerer, namespace string, d edfsched.Domain) (*Hook[T], error) {
	h := &Hook[T]{
		admitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_admitted_total",
			Help:      "Number of tasks admitted.",
		}),
		selected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_selected_total",
			Help:      "Number of tasks selected and removed.",
		}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_removed_total",
			Help:      "Number of tasks removed without being selected.",
		}),
		empty: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_selections_total",
			Help:      "Number of selections made with no pending tasks.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tasks_pending",
			Help:      "Number of tasks waiting to be selected.",
		}),
		remaining: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "selected_remaining_ticks",
			Help:      "Remaining ticks of selected tasks. Negative values are overdue.",
			Buckets:   buckets(d),
		}),
	}

	if err := register(reg, h.admitted, h.selected, h.removed, h.empty, h.pending, h.remaining); err != nil {
		return nil, err
	}
	return h, nil
}

// register registers every collector with reg. If any registration fails the
// collectors registered before it are unregistered again.
func register(reg prometheus.Registerer, cs ...prometheus.Collector) error {
	for i, c := range cs {
		if err := reg.Register(c); err != nil {
			for _, done := range cs[:i] {
				reg.Unregister(done)
			}
			return err
		}
	}
	return nil
}

func (h *Hook[T]) OnAdmit(*edfsched.Task[T]) {
	h.admitted.Inc()
	h.pending.Inc()
}

func (h *Hook[T]) OnSelect(result edfsched.Result[T]) {
	h.selected.Inc()
	h.pending.Dec()
	h.remaining.Observe(float64(result.Remaining))
}

func (h *Hook[T]) OnRemove(*edfsched.Task[T]) {
	h.removed.Inc()
	h.pending.Dec()
}

func (h *Hook[T]) OnEmpty(edfsched.Tick) {
	h.empty.Inc()
}

// buckets spans the range of remaining values d can produce in eight steps.
func buckets(d edfsched.Domain) []float64 {
	size := float64(d.Size())
	lo := 0.0
	if d.Policy().IsSigned() {
		lo = -size / 2
	}
	return prometheus.LinearBuckets(lo, size/8, 8)
}
