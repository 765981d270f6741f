package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProfilesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profiles_created_total",
			Help: "Total number of profiles persisted, by kind",
		},
		[]string{"kind"},
	)

	ProfileRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_rejections_total",
			Help: "Total number of rejected profile requests, by kind and error category",
		},
		[]string{"kind", "category"},
	)

	EventPublishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_event_publish_errors_total",
			Help: "Total number of profile events that could not be published",
		},
	)

	CardsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cards_rendered_total",
			Help: "Total number of card images rendered, by kind and format",
		},
		[]string{"kind", "format"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"method", "route", "status"},
	)
)
