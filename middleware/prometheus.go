package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_http_requests_total",
			Help: "HTTP requests by route and status class",
		},
		[]string{"method", "route", "class"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inkwell_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// 正在处理的请求
	requestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inkwell_http_requests_in_flight",
		Help: "HTTP requests currently being served",
	})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, requestsInFlight)
}

// statusClass folds a status code into 2xx/4xx/5xx.
func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}

func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsInFlight.Inc()
		start := time.Now()

		c.Next()

		requestsInFlight.Dec()
		requestsTotal.WithLabelValues(c.Request.Method, route, statusClass(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
