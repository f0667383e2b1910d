package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campushub_http_requests_total",
		Help: "HTTP requests served, by method, route and status code",
	}, []string{"method", "path", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "campushub_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	RsvpOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campushub_rsvp_ops_total",
		Help: "RSVP ledger operations, by op (add, remove)",
	}, []string{"op"})

	CheckinAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campushub_checkin_attempts_total",
		Help: "Check-in token redemptions, by result (success, failure)",
	}, []string{"result"})

	FeedbackSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campushub_feedback_submitted_total",
		Help: "Feedback records accepted",
	})
)
