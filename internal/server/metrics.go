package server

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	md2cv "github.com/alnah/go-md2cv"
)

var (
	registerOnce sync.Once

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "md2cv",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "md2cv",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	requestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "md2cv",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "HTTP requests currently being served.",
		},
	)

	exportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "md2cv",
			Subsystem: "export",
			Name:      "duration_seconds",
			Help:      "PDF export latency in seconds.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"quality", "outcome"},
	)

	exportsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "md2cv",
			Subsystem: "export",
			Name:      "in_flight",
			Help:      "Exports started and not yet done or failed.",
		},
	)

	exportPages = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "md2cv",
			Subsystem: "export",
			Name:      "pages",
			Help:      "Pages per exported PDF.",
			Buckets:   []float64{1, 2, 3, 4, 6, 10},
		},
	)
)

func registerMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(requestDuration, requestTotal, requestsInFlight, exportDuration, exportsInFlight, exportPages)
	})
}

// Metrics records Prometheus request metrics for every route.
func Metrics() gin.HandlerFunc {
	registerMetrics()

	return func(c *gin.Context) {
		start := time.Now()
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		c.Next()

		labels := prometheus.Labels{
			"method": c.Request.Method,
			"path":   routePath(c),
			"status": strconv.Itoa(c.Writer.Status()),
		}
		requestDuration.With(labels).Observe(time.Since(start).Seconds())
		requestTotal.With(labels).Inc()
	}
}

// ObserveStage tracks exports in flight. Pass it to md2cv.WithStageObserver
// on every pooled converter.
func ObserveStage(s md2cv.Stage) {
	switch {
	case s == md2cv.StageIdle:
		exportsInFlight.Inc()
	case s.Terminal():
		exportsInFlight.Dec()
	}
}

// observeExport records one export outcome.
func observeExport(quality string, start time.Time, pages int, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	exportDuration.WithLabelValues(quality, outcome).Observe(time.Since(start).Seconds())
	if err == nil {
		exportPages.Observe(float64(pages))
	}
}
