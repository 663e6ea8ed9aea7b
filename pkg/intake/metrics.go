package intake

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triagedesk_queries_submitted_total",
		Help: "Queries pushed onto the intake queue, by service class.",
	}, []string{"class"})

	processedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triagedesk_queries_processed_total",
		Help: "Queries completed by the worker, by outcome.",
	}, []string{"outcome"})

	timedOutTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triagedesk_submit_timeouts_total",
		Help: "Submissions that hit the wait ceiling before the worker finished.",
	})

	rejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triagedesk_queries_rejected_total",
		Help: "Submissions rejected because the queue was full or closed.",
	})

	processSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triagedesk_process_duration_seconds",
		Help:    "Wall time the worker spent processing one query.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
	})
)

// RegisterDepthGauge exposes the dispatcher queue depth as a gauge.
// Called once at wiring time.
func RegisterDepthGauge(d *Dispatcher) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "triagedesk_queue_depth",
		Help: "Current number of queued queries.",
	}, func() float64 { return float64(d.QueueDepth()) })
}
