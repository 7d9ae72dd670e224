// Package metrics collects and exposes Prometheus metrics for the
// publish scheduler and the HTTP layer.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and updates all application metrics. A nil
// Collector is valid and records nothing, so callers never have to
// branch on whether metrics are wired.
type Collector struct {
	jobsScheduled prometheus.Counter
	jobsCanceled  prometheus.Counter
	jobsFired     prometheus.Counter
	jobsFailed    prometheus.Counter
	jobsPending   prometheus.Gauge
	httpStatus    *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		jobsScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "focusword_publish_jobs_scheduled_total",
			Help: "Deferred publish jobs registered.",
		}),
		jobsCanceled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "focusword_publish_jobs_canceled_total",
			Help: "Deferred publish jobs canceled before firing.",
		}),
		jobsFired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "focusword_publish_jobs_fired_total",
			Help: "Deferred publish jobs that fired and materialized.",
		}),
		jobsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "focusword_publish_jobs_failed_total",
			Help: "Publish job callbacks that failed.",
		}),
		jobsPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "focusword_publish_jobs_pending",
			Help: "Publish jobs currently waiting to fire.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "focusword_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.jobsScheduled,
		c.jobsCanceled,
		c.jobsFired,
		c.jobsFailed,
		c.jobsPending,
		c.httpStatus,
	)
	return c
}

// JobScheduled counts a newly registered publish job.
func (c *Collector) JobScheduled() {
	if c == nil {
		return
	}
	c.jobsScheduled.Inc()
}

// JobCanceled counts a job removed before it fired.
func (c *Collector) JobCanceled() {
	if c == nil {
		return
	}
	c.jobsCanceled.Inc()
}

// JobFired counts a job that fired and materialized its draft.
func (c *Collector) JobFired() {
	if c == nil {
		return
	}
	c.jobsFired.Inc()
}

// JobFailed counts a job callback that returned an error.
func (c *Collector) JobFailed() {
	if c == nil {
		return
	}
	c.jobsFailed.Inc()
}

// SetPendingJobs records the current registry size.
func (c *Collector) SetPendingJobs(n int) {
	if c == nil {
		return
	}
	c.jobsPending.Set(float64(n))
}

// RecordHTTPStatus counts an HTTP response by status code.
func (c *Collector) RecordHTTPStatus(code int) {
	if c == nil {
		return
	}
	c.httpStatus.WithLabelValues(strconv.Itoa(code)).Inc()
}

// Handler returns the /metrics endpoint for the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
