// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_sync_messages_processed_total",
			Help: "Total number of messages fully reconciled",
		},
	)

	MessagesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_sync_messages_skipped_total",
			Help: "Total number of messages skipped before reconciliation",
		},
		[]string{"reason"},
	)

	ExtractionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_sync_extraction_failures_total",
			Help: "Total number of oracle calls that produced nothing usable",
		},
	)

	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "booking_sync_extraction_duration_seconds",
			Help: "Duration of extraction oracle calls in seconds",
		},
	)

	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_sync_bookings_created_total",
			Help: "Total number of new booking records inserted",
		},
	)

	BookingsUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_sync_bookings_updated_total",
			Help: "Total number of booking records amended",
		},
	)

	BookingsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_sync_bookings_cancelled_total",
			Help: "Total number of booking records deleted on cancellation",
		},
	)

	DuplicateMessages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_sync_duplicates_total",
			Help: "Total number of messages whose merge produced no changes",
		},
	)

	UnmatchedCancellations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_sync_unmatched_cancellations_total",
			Help: "Total number of cancellations with no stored booking",
		},
	)
)

// Skip reasons for MessagesSkipped.
const (
	SkipReasonFiltered         = "filtered"
	SkipReasonAlreadySeen      = "already_seen"
	SkipReasonMissingReference = "missing_reference"
)
