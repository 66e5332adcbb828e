package metrics

import (
	"strconv"
	"time"
)

// RecordEdgeMapRound records one edge_map round: which mode was
// selected and how long the round took.
func (r *Registry) RecordEdgeMapRound(mode string, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.EdgeMapModeTotal.WithLabelValues(mode).Inc()
	r.EdgeMapRoundSeconds.Observe(duration.Seconds())
}

// SetFrontierSize updates the current frontier's active-vertex gauge.
func (r *Registry) SetFrontierSize(size int) {
	r.FrontierSize.Set(float64(size))
}

// SetPartitionLoad records the per-partition vertex and in-edge counts
// VEBO balanced for, one gauge value per partition.
func (r *Registry) SetPartitionLoad(verts, edges []int) {
	for p, v := range verts {
		label := strconv.Itoa(p)
		r.PartitionVertices.WithLabelValues(label).Set(float64(v))
	}
	for p, e := range edges {
		label := strconv.Itoa(p)
		r.PartitionEdges.WithLabelValues(label).Set(float64(e))
	}
}
