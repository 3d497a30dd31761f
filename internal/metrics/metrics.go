package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counts cleaned URLs by the handler that produced them.
var URLsCleaned = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "scrubber_urls_cleaned_total",
	Help: "Total number of valid URLs run through the cleaner",
}, []string{"platform"})

// Counts query parameters dropped, by handler.
var ParamsRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "scrubber_params_removed_total",
	Help: "Total number of tracking parameters removed",
}, []string{"platform"})

var InvalidInputs = promauto.NewCounter(prometheus.CounterOpts{
	Name: "scrubber_invalid_inputs_total",
	Help: "Total number of inputs that held no cleanable URL",
})

var RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "scrubber_request_duration_seconds",
	Help:    "Time spent serving API requests",
	Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8), // 100µs to ~1.6s
}, []string{"route"})

// ObserveClean records one cleaning outcome.
func ObserveClean(platform string, removed int, valid bool) {
	if !valid {
		InvalidInputs.Inc()
		return
	}
	URLsCleaned.WithLabelValues(platform).Inc()
	if removed > 0 {
		ParamsRemoved.WithLabelValues(platform).Add(float64(removed))
	}
}
