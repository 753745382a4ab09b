package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lead submission outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeInFlight  = "in_flight"
	OutcomeCaptcha   = "captcha_failed"
	OutcomeFailed    = "error"
	OutcomeRateLimit = "rate_limited"
)

var (
	// Buckets sized for a single remote insert, from a local sqlite write to a slow REST round trip
	StoreBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

	LeadSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_submissions_total",
			Help: "Lead form submissions by outcome",
		},
		[]string{"outcome"},
	)

	LeadStoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lead_store_insert_duration_seconds",
			Help:    "Duration of lead inserts against the storage backend",
			Buckets: StoreBuckets,
		},
		[]string{"store", "status"},
	)

	FAQToggles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "faq_toggles_total",
			Help: "FAQ entry expand/collapse interactions",
		},
	)

	OutboundClicks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbound_clicks_total",
			Help: "Redirects to outbound contact channels",
		},
		[]string{"channel"},
	)

	LeadNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_notifications_total",
			Help: "Attorney notification e-mails by status",
		},
		[]string{"status"},
	)

	PageViews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_views_total",
			Help: "Landing page renders by composition",
		},
		[]string{"variant"},
	)
)
