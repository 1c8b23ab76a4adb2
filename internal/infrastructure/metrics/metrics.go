// Package metrics exposes the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "corretora"

var (
	proposalsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proposals_created_total",
		Help:      "Proposals created through /simulate, by product kind.",
	}, []string{"kind"})

	proposalsEffectuated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proposals_effectuated_total",
		Help:      "Staff decisions on proposals, by resulting status.",
	}, []string{"status"})

	effectuateConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proposals_effectuate_conflicts_total",
		Help:      "Effectuate calls rejected because the proposal was no longer pending.",
	})

	premiumPayments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "premium_payments_total",
		Help:      "Premium installment payments, by status.",
	}, []string{"status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "code"})
)

func ProposalCreated(kind string) {
	proposalsCreated.WithLabelValues(kind).Inc()
}

func ProposalEffectuated(status string) {
	proposalsEffectuated.WithLabelValues(status).Inc()
}

func EffectuateConflict() {
	effectuateConflicts.Inc()
}

func PremiumPayment(status string) {
	premiumPayments.WithLabelValues(status).Inc()
}

// Middleware records request latency labelled by the matched route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
