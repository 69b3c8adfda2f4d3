package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements client.Recorder using Prometheus. One counter and one
// histogram observation are recorded per engine operation.
type Collector struct {
	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewCollector creates a collector registered on the default registerer.
func NewCollector() *Collector {
	return NewCollectorWith(prometheus.DefaultRegisterer)
}

// NewCollectorWith creates a collector registered on the given registerer.
func NewCollectorWith(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dagukit_operations_total",
				Help: "Total number of engine operations, by outcome",
			},
			[]string{"operation", "status"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dagukit_operation_duration_seconds",
				Help:    "Engine operation round-trip duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"operation"},
		),
	}
}

// RecordOperation records the outcome and duration of one engine operation.
func (c *Collector) RecordOperation(operation, status string, elapsed time.Duration) {
	c.operations.WithLabelValues(operation, status).Inc()
	c.operationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
