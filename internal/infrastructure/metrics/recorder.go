package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mcp-agent/internal/application/port/output"
)

var _ output.MetricsPort = (*Recorder)(nil)

const namespace = "agent"

// Recorder keeps its collectors on a private registry so several
// instances can coexist in one process.
type Recorder struct {
	registry        *prometheus.Registry
	turns           *prometheus.CounterVec
	toolCalls       *prometheus.CounterVec
	gatewayDuration prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "turns_total",
				Help:      "Total number of resolved user turns by outcome",
			},
			[]string{"outcome"},
		),
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "Total number of dispatched tool calls",
			},
			[]string{"tool", "kind", "outcome"},
		),
		gatewayDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "gateway_request_duration_seconds",
				Help:      "Latency of chat requests to the model gateway",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
			},
		),
	}

	r.registry.MustRegister(r.turns, r.toolCalls, r.gatewayDuration)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) ObserveTurn(outcome string) {
	r.turns.WithLabelValues(outcome).Inc()
}

func (r *Recorder) ObserveToolCall(tool, kind, outcome string) {
	r.toolCalls.WithLabelValues(tool, kind, outcome).Inc()
}

func (r *Recorder) ObserveGatewayLatency(d time.Duration) {
	r.gatewayDuration.Observe(d.Seconds())
}
