// Package metrics exposes the Prometheus scrape endpoint and the product
// write counter.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeDuplicate = "duplicate"
	OutcomeError     = "error"
)

type Registry struct {
	registry      *prometheus.Registry
	productWrites *prometheus.CounterVec
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	writes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "product_catalog",
		Name:      "writes_total",
		Help:      "Product write requests by operation and outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(writes)

	return &Registry{registry: reg, productWrites: writes}
}

// ProductWrite counts one add or update request. A nil Registry is a no-op.
func (r *Registry) ProductWrite(operation, outcome string) {
	if r == nil {
		return
	}
	r.productWrites.WithLabelValues(operation, outcome).Inc()
}

// ProductWriteCount reports the current value of one write counter.
func (r *Registry) ProductWriteCount(operation, outcome string) float64 {
	var m dto.Metric
	if err := r.productWrites.WithLabelValues(operation, outcome).Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
