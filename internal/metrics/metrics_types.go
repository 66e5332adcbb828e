package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every metric a numagraph run exposes (SPEC_FULL.md
// §3): edge_map's mode-selection counters and round-duration
// histogram, the current frontier size, and the per-partition load
// VEBO balanced for.
type Registry struct {
	EdgeMapModeTotal    *prometheus.CounterVec
	EdgeMapRoundSeconds prometheus.Histogram
	FrontierSize        prometheus.Gauge

	PartitionVertices *prometheus.GaugeVec
	PartitionEdges    *prometheus.GaugeVec

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with every metric
// initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.EdgeMapModeTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "numagraph_edgemap_mode_total",
			Help: "Total edge_map rounds by selected execution mode",
		},
		[]string{"mode"},
	)

	r.EdgeMapRoundSeconds = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "numagraph_edgemap_round_seconds",
			Help:    "edge_map round latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	r.FrontierSize = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "numagraph_frontier_size",
			Help: "Active vertex count of the most recent frontier",
		},
	)

	r.PartitionVertices = promauto.With(reg).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "numagraph_partition_vertices",
			Help: "Vertex count per partition after VEBO relabeling",
		},
		[]string{"partition"},
	)

	r.PartitionEdges = promauto.With(reg).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "numagraph_partition_edges",
			Help: "In-edge count per partition after VEBO relabeling",
		},
		[]string{"partition"},
	)

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry, for
// serving /metrics over net/http.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
