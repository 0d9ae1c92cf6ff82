package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	OutcomeSent        = "sent"
	OutcomeParseFailed = "parse_failed"
	OutcomeSendFailed  = "send_failed"
	OutcomeDuplicate   = "duplicate"
)

var (
	MessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "confirmation_messages_total",
		Help: "Order messages handled, by outcome",
	}, []string{"outcome"})
	SendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "confirmation_send_duration_seconds",
		Help:    "Time spent in the mail service per confirmation email",
		Buckets: prometheus.DefBuckets,
	})
	BatchSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "confirmation_batch_size",
		Help:    "Messages per delivered batch",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
	})
)

func init() {
	prometheus.MustRegister(MessagesTotal, SendDuration, BatchSize)
}
