package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resumerefiner",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumerefiner",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	requestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "resumerefiner",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of HTTP requests currently being served.",
		},
	)

	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumerefiner",
			Subsystem: "analysis",
			Name:      "submissions_total",
			Help:      "Analysis submissions by mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)

	analysisFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumerefiner",
			Subsystem: "analysis",
			Name:      "failures_total",
			Help:      "Analysis failures by pipeline stage.",
		},
		[]string{"stage"},
	)

	modelCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resumerefiner",
			Subsystem: "model",
			Name:      "call_duration_seconds",
			Help:      "Latency of calls to the external model provider.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"model", "status"},
	)
)

// Register installs all collectors on the default registry. Safe to
// call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			requestDuration,
			requestTotal,
			requestsInFlight,
			analysesTotal,
			analysisFailures,
			modelCallDuration,
		)
	})
}

// FiberMiddleware records duration, count and in-flight gauge for
// every request.
func FiberMiddleware() fiber.Handler {
	Register()

	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		labels := prometheus.Labels{
			"method": c.Method(),
			"path":   path,
			"status": strconv.Itoa(c.Response().StatusCode()),
		}

		requestDuration.With(labels).Observe(time.Since(start).Seconds())
		requestTotal.With(labels).Inc()

		return err
	}
}

// AnalysisCompleted counts one successful submission.
func AnalysisCompleted(mode string) {
	analysesTotal.With(prometheus.Labels{"mode": mode, "outcome": "success"}).Inc()
}

// AnalysisFailed counts one failed submission and the pipeline stage
// that rejected it.
func AnalysisFailed(mode, stage string) {
	analysesTotal.With(prometheus.Labels{"mode": mode, "outcome": "failed"}).Inc()
	analysisFailures.With(prometheus.Labels{"stage": stage}).Inc()
}

// ObserveModelCall records the latency of one provider call.
func ObserveModelCall(model string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	modelCallDuration.With(prometheus.Labels{"model": model, "status": status}).Observe(d.Seconds())
}
