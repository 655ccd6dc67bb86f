package view

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus counters for the synchronization engine.
type metrics struct {
	modelToView        prometheus.Counter
	viewToModel        prometheus.Counter
	resolutionFailures prometheus.Counter
}

var (
	globalMetrics     *metrics
	globalMetricsOnce sync.Once
)

// EnableMetrics registers the engine's counters with reg and starts
// counting. Pass nil to use prometheus.DefaultRegisterer. Counting stays
// disabled (zero overhead beyond a nil check) until this is called; the
// first call wins.
func EnableMetrics(reg prometheus.Registerer) {
	globalMetricsOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		factory := promauto.With(reg)
		globalMetrics = &metrics{
			modelToView: factory.NewCounter(prometheus.CounterOpts{
				Namespace: "rawview",
				Name:      "model_to_view_total",
				Help:      "Total number of raw-to-view synchronization passes",
			}),
			viewToModel: factory.NewCounter(prometheus.CounterOpts{
				Namespace: "rawview",
				Name:      "view_to_model_total",
				Help:      "Total number of effective view-to-raw writes",
			}),
			resolutionFailures: factory.NewCounter(prometheus.CounterOpts{
				Namespace: "rawview",
				Name:      "resolution_failures_total",
				Help:      "Total number of field reads skipped because address resolution or the source read failed",
			}),
		}
	})
}

func incModelToView() {
	if m := globalMetrics; m != nil {
		m.modelToView.Inc()
	}
}

func incViewToModel() {
	if m := globalMetrics; m != nil {
		m.viewToModel.Inc()
	}
}

func incResolutionFailure() {
	if m := globalMetrics; m != nil {
		m.resolutionFailures.Inc()
	}
}
