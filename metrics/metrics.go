package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "journify",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	likeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journify",
		Name:      "like_toggles_total",
		Help:      "Like and unlike requests by outcome.",
	}, []string{"action", "outcome"})
)

const (
	ActionLike   = "like"
	ActionUnlike = "unlike"

	OutcomeChanged   = "changed"
	OutcomeUnchanged = "unchanged"
)

// Middleware records request latency. Unmatched routes share one label so
// scanners cannot grow the series count.
func Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.
			WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// ObserveToggle counts one like or unlike; changed is false for no-ops.
func ObserveToggle(action string, changed bool) {
	outcome := OutcomeUnchanged
	if changed {
		outcome = OutcomeChanged
	}
	likeToggles.WithLabelValues(action, outcome).Inc()
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
