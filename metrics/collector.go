package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/suprax-engine/broadphase"
	"github.com/suprax-engine/broadphase/dbvtphase"
)

// statsSource is satisfied by *dbvtphase.Phase (not by *sap.Engine, which
// has no stage ring or optimize-budget ratio to report); Collect
// type-asserts for it and only emits the DBVT-specific gauges when present.
type statsSource interface {
	Stats() dbvtphase.Stats
}

// Collector reports one broadphase.Interface instance's bookkeeping as
// Prometheus gauges. It is not registered anywhere by default; call
// prometheus.Register(collector) (or MustRegister) from the host.
type Collector struct {
	bp     broadphase.Interface
	labels prometheus.Labels

	proxyCount    *prometheus.Desc
	pairCount     *prometheus.Desc
	dynamicLeaves *prometheus.Desc
	fixedLeaves   *prometheus.Desc
	updatesRatio  *prometheus.Desc
}

// NewCollector builds a Collector over bp. name distinguishes this
// instance's series from any other broad-phase registered in the same
// process (e.g. "world", "ray-accelerator").
func NewCollector(name string, bp broadphase.Interface) *Collector {
	labels := prometheus.Labels{"instance": name}
	constLabels := []string{"instance"}

	return &Collector{
		bp:     bp,
		labels: labels,
		proxyCount: prometheus.NewDesc("broadphase_proxy_count", "Live proxy count.",
			constLabels, nil),
		pairCount: prometheus.NewDesc("broadphase_pair_count", "Tracked overlapping-pair count.",
			constLabels, nil),
		dynamicLeaves: prometheus.NewDesc("broadphase_dbvt_dynamic_leaves", "DBVT dynamic-set leaf count.",
			constLabels, nil),
		fixedLeaves: prometheus.NewDesc("broadphase_dbvt_fixed_leaves", "DBVT fixed-set leaf count.",
			constLabels, nil),
		updatesRatio: prometheus.NewDesc("broadphase_dbvt_updates_ratio", "DBVT reinsert-to-update ratio over the last cycle.",
			constLabels, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.proxyCount
	ch <- c.pairCount
	ch <- c.dynamicLeaves
	ch <- c.fixedLeaves
	ch <- c.updatesRatio
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	name := c.labels["instance"]

	ch <- prometheus.MustNewConstMetric(c.proxyCount, prometheus.GaugeValue, float64(c.bp.Count()), name)
	ch <- prometheus.MustNewConstMetric(c.pairCount, prometheus.GaugeValue, float64(c.bp.GetOverlappingPairCache().Count()), name)

	if source, ok := c.bp.(statsSource); ok {
		stats := source.Stats()
		ch <- prometheus.MustNewConstMetric(c.dynamicLeaves, prometheus.GaugeValue, float64(stats.DynamicLeaves), name)
		ch <- prometheus.MustNewConstMetric(c.fixedLeaves, prometheus.GaugeValue, float64(stats.FixedLeaves), name)
		ch <- prometheus.MustNewConstMetric(c.updatesRatio, prometheus.GaugeValue, stats.UpdatesRatio, name)
	}
}

var _ prometheus.Collector = (*Collector)(nil)
