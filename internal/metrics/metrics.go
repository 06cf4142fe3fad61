package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	NotificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total notifications sent, by channel",
		},
		[]string{"channel"},
	)

	NotificationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_failures_total",
			Help: "Total failed notification attempts, by channel",
		},
		[]string{"channel"},
	)

	OutboxDrained = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "outbox_drained_total",
			Help: "Total outbox entries dispatched",
		},
	)

	OfflineFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "offline_cache_fallbacks_total",
			Help: "Total reads served from the offline cache",
		},
	)

	ReplayedActions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "offline_replayed_actions_total",
			Help: "Total queued offline actions replayed",
		},
	)
)

func Init() {
	prometheus.MustRegister(NotificationsSent)
	prometheus.MustRegister(NotificationFailures)
	prometheus.MustRegister(OutboxDrained)
	prometheus.MustRegister(OfflineFallbacks)
	prometheus.MustRegister(ReplayedActions)
}
