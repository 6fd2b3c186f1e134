// internal/metrics/metrics.go
package metrics

import (
    "net/http"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the dispatch engine records against.
type Recorder interface {
    RecordSend(campaign, status string)
    RecordBulkSize(n int)
}

// Collector is the Prometheus-backed Recorder implementation.
type Collector struct {
    sends    *prometheus.CounterVec
    bulkSize prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
    c := &Collector{
        sends: prometheus.NewCounterVec(prometheus.CounterOpts{
            Name: "campaign_sends_total",
            Help: "Campaign emails attempted, by campaign type and outcome",
        }, []string{"campaign", "status"}),
        bulkSize: prometheus.NewHistogram(prometheus.HistogramOpts{
            Name:    "campaign_bulk_batch_size",
            Help:    "Recipient counts of bulk send requests",
            Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
        }),
    }

    reg.MustRegister(c.sends, c.bulkSize)
    return c
}

// RecordSend counts one send attempt outcome.
func (c *Collector) RecordSend(campaign, status string) {
    c.sends.WithLabelValues(campaign, status).Inc()
}

// RecordBulkSize records the size of one bulk batch.
func (c *Collector) RecordBulkSize(n int) {
    c.bulkSize.Observe(float64(n))
}

// Handler returns the scrape handler for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
    return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

var _ Recorder = (*Collector)(nil)
