// Package metrics exposes the bot's Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EntriesCreated counts ledger entries by entry type.
	EntriesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vatbot_entries_created_total",
			Help: "Total number of ledger entries created",
		},
		[]string{"type"},
	)

	// MessagesIngested counts inbound free-text messages by outcome:
	// "entries" when at least one line parsed, "empty" otherwise.
	MessagesIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vatbot_messages_ingested_total",
			Help: "Total number of ingested messages by outcome",
		},
		[]string{"outcome"},
	)

	// ClassifierRequests counts classification calls by outcome.
	ClassifierRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vatbot_classifier_requests_total",
			Help: "Total number of classifier calls by outcome",
		},
		[]string{"outcome"},
	)

	// ClassifierDuration observes classification call latency.
	ClassifierDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vatbot_classifier_duration_seconds",
			Help:    "Duration of classifier calls",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CommandsHandled counts bot commands by name.
	CommandsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vatbot_commands_handled_total",
			Help: "Total number of bot commands handled",
		},
		[]string{"command"},
	)

	// SessionsCreated counts lazily created sessions.
	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vatbot_sessions_created_total",
			Help: "Total number of sessions created",
		},
	)

	// TelegramSendErrors counts failed message deliveries after retries.
	TelegramSendErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vatbot_telegram_send_errors_total",
			Help: "Total number of Telegram send failures",
		},
	)
)
