package output

import "time"

type MetricsPort interface {
	ObserveTurn(outcome string)
	ObserveToolCall(tool, kind, outcome string)
	ObserveGatewayLatency(d time.Duration)
}
