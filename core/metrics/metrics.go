// Package metrics exposes reconciliation counters in the Prometheus format.
package metrics

import (
	"net/http"

	"mpu-janitor/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mpu_janitor"

// Recorder counts reconcile outcomes on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	Reconciliations *prometheus.CounterVec
	Errors          *prometheus.CounterVec
	Duration        prometheus.Histogram
}

// NewRecorder creates a Recorder with Go and process collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		Reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliations_total",
			Help:      "Number of bucket reconciliations by action and trigger.",
		}, []string{"action", "trigger"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_errors_total",
			Help:      "Number of failed bucket reconciliations by error kind and trigger.",
		}, []string{"kind", "trigger"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reconcile_duration_seconds",
			Help:      "Time spent reconciling a single bucket.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	r.registry.MustRegister(
		r.Reconciliations,
		r.Errors,
		r.Duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Observe records one outcome. It satisfies reconcile.Observer.
func (r *Recorder) Observe(o reconcile.BucketOutcome) {
	r.Duration.Observe(o.Duration.Seconds())

	if o.Err != nil {
		r.Errors.WithLabelValues(reconcile.ErrorKind(o.Err), o.Trigger).Inc()
		return
	}
	r.Reconciliations.WithLabelValues(string(o.Result.Action), o.Trigger).Inc()
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
