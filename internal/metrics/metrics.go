// file: internal/metrics/metrics.go
// version: 1.0.0
// guid: fb7b0c89-7b66-42e8-b96a-8ef6f5b12dc8

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yardim_paneli",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by route and status class",
	}, []string{"route", "status"})
	rateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "yardim_paneli",
		Name:      "http_rate_limited_total",
		Help:      "Total requests rejected by the rate limiter",
	})

	searchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "yardim_paneli",
		Name:      "search_duration_seconds",
		Help:      "Histogram of in-memory search durations by resource",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms up to ~2s
	}, []string{"resource"})
	searchResults = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "yardim_paneli",
		Name:      "search_results",
		Help:      "Histogram of result counts per search by resource",
		Buckets:   prometheus.LinearBuckets(0, 10, 10),
	}, []string{"resource"})

	messagesSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yardim_paneli",
		Name:      "messages_sent_total",
		Help:      "Total messages accepted by a provider, by channel",
	}, []string{"channel"})
	messagesFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yardim_paneli",
		Name:      "messages_failed_total",
		Help:      "Total messages rejected by a provider, by channel",
	}, []string{"channel"})

	beneficiariesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "yardim_paneli",
		Name:      "beneficiaries_total",
		Help:      "Current number of beneficiaries on record",
	})
	donationsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "yardim_paneli",
		Name:      "donations_total",
		Help:      "Current number of donations on record",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(requestsTotal, rateLimited,
			searchDuration, searchResults,
			messagesSent, messagesFailed,
			beneficiariesGauge, donationsGauge)
	})
}

// Request counters
func IncRequest(route, status string) { requestsTotal.WithLabelValues(route, status).Inc() }
func IncRateLimited()                 { rateLimited.Inc() }

// Search instrumentation
func ObserveSearch(resource string, d time.Duration, results int) {
	searchDuration.WithLabelValues(resource).Observe(d.Seconds())
	searchResults.WithLabelValues(resource).Observe(float64(results))
}

// Messaging counters
func IncMessageSent(channel string)   { messagesSent.WithLabelValues(channel).Inc() }
func IncMessageFailed(channel string) { messagesFailed.WithLabelValues(channel).Inc() }

// Gauges
func SetBeneficiaries(n int) { beneficiariesGauge.Set(float64(n)) }
func SetDonations(n int)     { donationsGauge.Set(float64(n)) }
