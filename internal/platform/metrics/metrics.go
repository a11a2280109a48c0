package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "equipment_lending", Name: "http_requests_total", Help: "Handled HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "equipment_lending", Name: "http_request_duration_seconds", Help: "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	jobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "equipment_lending", Name: "job_runs_total", Help: "Background job runs",
		},
		[]string{"job", "outcome"},
	)
	statusChanges = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "equipment_lending", Name: "status_refresh_changes_total", Help: "Equipment snapshots whose status changed during a refresh",
	})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, jobRuns, statusChanges)
}

func Handler() http.Handler { return promhttp.Handler() }

// GinMiddleware records request counts and latency labelled by the matched route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveJob records one background job run.
func ObserveJob(job string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	jobRuns.WithLabelValues(job, outcome).Inc()
}

func AddStatusChanges(n int) {
	if n > 0 {
		statusChanges.Add(float64(n))
	}
}

// PushJobMetrics sends the job counters to a Pushgateway under the job name.
// Short lived processes use it since nothing scrapes them.
func PushJobMetrics(ctx context.Context, gatewayURL, job string) error {
	return push.New(gatewayURL, job).
		Collector(jobRuns).
		Collector(statusChanges).
		PushContext(ctx)
}
