// Package metrics exports logging sink counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/philipp01105/foldersync/handler"
	"github.com/philipp01105/foldersync/logger"
)

const namespace = "foldersync"

// Collector reads handler.Stats from the sinks currently attached to a
// logging context on every scrape. Counters belong to a sink, so they
// restart from zero when Configure replaces it.
type Collector struct {
	ctx       *logger.Context
	processed *prometheus.Desc
	filtered  *prometheus.Desc
	failed    *prometheus.Desc
}

// NewCollector creates a collector for ctx. Register it with a
// prometheus.Registerer.
func NewCollector(ctx *logger.Context) *Collector {
	labels := []string{"sink"}
	return &Collector{
		ctx: ctx,
		processed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "log", "records_total"),
			"Log records written by a sink",
			labels, nil,
		),
		filtered: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "log", "records_filtered_total"),
			"Log records dropped by a sink's level threshold",
			labels, nil,
		),
		failed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "log", "records_failed_total"),
			"Log records a sink failed to write",
			labels, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.processed
	ch <- c.filtered
	ch <- c.failed
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, h := range c.ctx.Handlers() {
		sp, ok := h.(handler.StatsProvider)
		if !ok {
			continue
		}
		s := sp.Stats()
		ch <- prometheus.MustNewConstMetric(c.processed, prometheus.CounterValue, float64(s.ProcessedTotal), s.Sink)
		ch <- prometheus.MustNewConstMetric(c.filtered, prometheus.CounterValue, float64(s.FilteredTotal), s.Sink)
		ch <- prometheus.MustNewConstMetric(c.failed, prometheus.CounterValue, float64(s.FailedTotal), s.Sink)
	}
}
