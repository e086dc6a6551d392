// Package metrics exposes Prometheus collectors for report filing and listing.
package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/reports"
)

var (
	filingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reports",
		Name:      "filings_total",
		Help:      "Report filings by resource kind and outcome.",
	}, []string{"kind", "outcome"})

	filingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "reports",
		Name:      "filing_duration_seconds",
		Help:      "Time to file a report, including resource lookup and persistence.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"outcome"})

	listingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reports",
		Name:      "listings_total",
		Help:      "Report listings by outcome.",
	}, []string{"outcome"})
)

// Recorder implements reports.Observer on the package collectors.
type Recorder struct{}

var _ reports.Observer = Recorder{}

func (Recorder) ObserveFiling(kind reports.Kind, outcome string, elapsed time.Duration) {
	filingsTotal.WithLabelValues(string(kind), outcome).Inc()
	filingDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (Recorder) ObserveListing(outcome string) {
	listingsTotal.WithLabelValues(outcome).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
