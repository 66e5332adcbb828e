package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component field helpers for common component names
func Component(name string) Field {
	return String("component", name)
}

// Partition identifies the partition index a log line pertains to.
func Partition(p int) Field {
	return Int("partition", p)
}

// NUMANode identifies the NUMA node a log line pertains to.
func NUMANode(node int) Field {
	return Int("numa_node", node)
}

// Round identifies the edge_map/vertex_map iteration a log line pertains to.
func Round(r int) Field {
	return Int("round", r)
}

// FrontierSize records the active-vertex count of a frontier.
func FrontierSize(m int) Field {
	return Int("frontier_size", m)
}

// Mode records the edge-map execution mode selected for a round.
func Mode(mode string) Field {
	return String("mode", mode)
}

// RunID correlates every log line from one driver invocation (spanning
// multiple -rounds repetitions) with the uuid cmd/numagraph-run
// generates for it.
func RunID(id string) Field {
	return String("run_id", id)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
