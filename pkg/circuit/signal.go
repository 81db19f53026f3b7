package circuit

import "fmt"

// Gate delays in abstract units.
const (
	DelayAND   = 1.0
	DelayOR    = 1.0
	DelayXOR   = 1.5
	DelayBooth = 4.0 // Booth encoder plus partial-product selector
)

// CompressorID addresses a compressor inside a [Registry].
type CompressorID int

// NoProducer marks signals that no compressor drives.
const NoProducer CompressorID = -1

// ZeroName is the name of the tied-low constant.
const ZeroName = "1'b0"

// Signal is a named value node with its critical-path latency.
// The zero value is not usable - build signals with NewInput, Zero or a Registry.
type Signal struct {
	name     string
	latency  float64
	producer CompressorID
}

// NewInput creates a primary signal with no producer.
func NewInput(name string, latency float64) Signal {
	return Signal{name: name, latency: latency, producer: NoProducer}
}

// Zero returns the tied-low constant used for unused carry inputs.
func Zero() Signal {
	return Signal{name: ZeroName, latency: 0, producer: NoProducer}
}

// Name returns the stable identifier of the signal.
func (s Signal) Name() string { return s.name }

// Latency returns the worst-case delay from any primary input.
func (s Signal) Latency() float64 { return s.latency }

// Producer returns the driving compressor, or false for primary inputs.
func (s Signal) Producer() (CompressorID, bool) {
	return s.producer, s.producer != NoProducer
}

// IsPrimary reports whether no compressor drives the signal.
func (s Signal) IsPrimary() bool { return s.producer == NoProducer }

// IsZero reports whether the signal is the tied-low constant.
func (s Signal) IsZero() bool { return s.producer == NoProducer && s.name == ZeroName }

func (s Signal) String() string {
	return fmt.Sprintf("%s@%.1f", s.name, s.latency)
}

// MaxLatency returns the largest latency among sigs, or 0 for none.
func MaxLatency(sigs []Signal) float64 {
	var m float64
	for _, s := range sigs {
		m = max(m, s.latency)
	}
	return m
}

// Names extracts the name of each signal, preserving order.
func Names(sigs []Signal) []string {
	names := make([]string, len(sigs))
	for i, s := range sigs {
		names[i] = s.name
	}
	return names
}
