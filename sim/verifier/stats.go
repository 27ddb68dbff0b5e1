package verifier

import (
	"github.com/celskeggs/cobslink/sim/fixture"
)

// TraceStats summarizes byte flow through one recorded trace.
type TraceStats struct {
	Ticks          int
	ResetTicks     int
	StallTicks     int
	AcceptedBytes  int
	DeliveredBytes int
	Frames         int
}

// MeasureTrace tallies flow statistics over a trace. An accepted byte is a
// valid input on a tick where the producer handshake completes; a delivered
// byte is a valid output on a tick where the consumer handshake completes.
func MeasureTrace(records []fixture.ResultRecord) TraceStats {
	stats := TraceStats{Ticks: len(records)}
	for _, r := range records {
		if r.Reset {
			stats.ResetTicks++
		}
		if !r.ConsumerReady {
			stats.StallTicks++
		}
		if r.InputValid && r.ProducerReady && !r.Reset {
			stats.AcceptedBytes++
		}
		if r.Delivered() {
			stats.DeliveredBytes++
			if r.OutputLast {
				stats.Frames++
			}
		}
	}
	return stats
}

// Efficiency is the ratio of delivered payload bytes to accepted encoded
// bytes; stuffing overhead and separators push it below 1.
func (s TraceStats) Efficiency() float64 {
	if s.AcceptedBytes == 0 {
		return 0
	}
	return float64(s.DeliveredBytes) / float64(s.AcceptedBytes)
}
