package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhooksReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "project_notifier_webhooks_received_total",
		Help: "The total number of received webhook deliveries",
	}, []string{"event"})

	notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "project_notifier_notifications_total",
		Help: "Processed project item events by outcome",
	}, []string{"outcome"})

	perf = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "project_notifier_notify_seconds",
		Help: "Time spent handling a single project item event",
	})
)
