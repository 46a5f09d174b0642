// Package metrics owns the prometheus registry the service exposes, so
// metrics are never registered on the global default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry *prometheus.Registry
var auto promauto.Factory

func init() {
	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto = promauto.With(registry)
}

// Auto returns the factory for registering metrics with the registry.
func Auto() promauto.Factory {
	return auto
}

// Registry returns the registry for serving the metrics.
func Registry() *prometheus.Registry {
	return registry
}
