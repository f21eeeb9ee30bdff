package automod

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var messageProcessDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "warden_message_duration_sec",
	Help: "Total duration of message evaluation and action execution",
})

var messageProcessCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "warden_messages_processed",
	Help: "Number of messages processed, by terminal outcome",
}, []string{"outcome"})

var messageErrorCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "warden_message_errors",
	Help: "Number of messages which failed processing",
}, []string{"stage"})

var actionCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "warden_actions_taken",
	Help: "Number of enforcement actions applied against the platform",
}, []string{"kind"})

var actionErrorCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "warden_action_errors",
	Help: "Number of enforcement actions which failed, by stage",
}, []string{"stage"})

var reportsSent = promauto.NewCounter(prometheus.CounterOpts{
	Name: "warden_reports_sent",
	Help: "Number of moderation reports delivered",
})
