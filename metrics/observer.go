// Package metrics provides a Prometheus-backed loader.StatsObserver,
// following the registry+MustRegister pattern the rest of the stack uses
// for its own instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alerm-sml/strongswan/loader"
)

// PluginLoaderMetrics exports the loader's per-instance Stats as Prometheus
// gauges, labeled by loader ID so multiple Loader instances in one process
// report independently.
type PluginLoaderMetrics struct {
	registry *prometheus.Registry

	loadedPlugins   *prometheus.GaugeVec
	failedFeatures  *prometheus.GaugeVec
	dependsFailures *prometheus.GaugeVec
	criticalFailed  *prometheus.GaugeVec
}

// NewPluginLoaderMetrics creates and registers the collector set under
// prefix, mirroring the Namespace/Subsystem/Name convention used elsewhere
// in the stack.
func NewPluginLoaderMetrics(prefix string) *PluginLoaderMetrics {
	registry := prometheus.NewRegistry()

	m := &PluginLoaderMetrics{
		registry: registry,
		loadedPlugins: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prefix,
			Subsystem: "plugin_loader",
			Name:      "plugins_loaded",
			Help:      "Number of plugin entries currently held by the loader",
		}, []string{"loader_id"}),
		failedFeatures: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prefix,
			Subsystem: "plugin_loader",
			Name:      "features_failed",
			Help:      "Number of features that failed to load in the last Load/Unload cycle",
		}, []string{"loader_id"}),
		dependsFailures: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prefix,
			Subsystem: "plugin_loader",
			Name:      "features_failed_depends",
			Help:      "Subset of features_failed caused by unmet dependencies",
		}, []string{"loader_id"}),
		criticalFailed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prefix,
			Subsystem: "plugin_loader",
			Name:      "critical_features_failed",
			Help:      "Subset of features_failed belonging to critical plugins",
		}, []string{"loader_id"}),
	}

	registry.MustRegister(
		m.loadedPlugins,
		m.failedFeatures,
		m.dependsFailures,
		m.criticalFailed,
	)
	return m
}

// Observe implements loader.StatsObserver.
func (m *PluginLoaderMetrics) Observe(loaderID string, s loader.Stats, loadedPluginCount int) {
	m.loadedPlugins.WithLabelValues(loaderID).Set(float64(loadedPluginCount))
	m.failedFeatures.WithLabelValues(loaderID).Set(float64(s.Failed))
	m.dependsFailures.WithLabelValues(loaderID).Set(float64(s.Depends))
	m.criticalFailed.WithLabelValues(loaderID).Set(float64(s.Critical))
}

// Handler returns the HTTP handler exposing the collected metrics.
func (m *PluginLoaderMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

var _ loader.StatsObserver = &PluginLoaderMetrics{}
