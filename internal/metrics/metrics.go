package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"sync"
)

const (
	OutcomeFound    = "found"
	OutcomeEmpty    = "empty"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeBusy     = "busy"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sam_finder_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	SearchesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sam_finder_searches_total",
			Help: "Total number of search actions by outcome.",
		},
		[]string{"outcome"},
	)
	SamRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sam_finder_sam_request_duration_seconds",
			Help:    "Duration of SAM.gov search requests in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
	ReportedOpportunities = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sam_finder_reported_opportunities",
			Help:    "Total records reported by SAM.gov per successful search.",
			Buckets: prometheus.ExponentialBuckets(1, 10, 6),
		},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(SearchesCounter)
		prometheus.MustRegister(SamRequestDuration)
		prometheus.MustRegister(ReportedOpportunities)
	})
}

func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}
