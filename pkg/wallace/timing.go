package wallace

import (
	"slices"

	"github.com/matzehuels/boothtree/pkg/circuit"
)

// LevelTiming summarises one reduction level.
type LevelTiming struct {
	Level       int
	Compressors int
	Latency     float64 // latest output of the level
}

// Timing is the latency profile of a tree.
type Timing struct {
	// Critical is the latest latency among the live signals.
	Critical float64
	// CriticalSignal names the signal that reaches Critical first in
	// column order.
	CriticalSignal string
	// Levels holds one entry per completed level.
	Levels []LevelTiming
	// Columns holds the latest live latency of each result column.
	Columns []float64
}

// Timing computes the latency profile of the current live signals.
func (t *Tree) Timing() Timing {
	tm := Timing{
		Levels:  make([]LevelTiming, t.levels),
		Columns: make([]float64, len(t.columns)),
	}
	for i := range tm.Levels {
		tm.Levels[i].Level = i
	}
	for _, c := range t.registry.All() {
		lt := &tm.Levels[c.Level]
		lt.Compressors++
		lt.Latency = max(lt.Latency, c.Latency())
	}
	for col, live := range t.columns {
		for _, s := range live {
			tm.Columns[col] = max(tm.Columns[col], s.Latency())
			if s.Latency() > tm.Critical || tm.CriticalSignal == "" {
				tm.Critical = s.Latency()
				tm.CriticalSignal = s.Name()
			}
		}
	}
	return tm
}

// CriticalPath traces the critical signal back to a primary input, following
// at each compressor the input with the latest latency (the first one on
// ties). The path starts at the primary input and ends at the critical signal.
func (t *Tree) CriticalPath() []circuit.Signal {
	var (
		sig   circuit.Signal
		found bool
	)
	for _, live := range t.columns {
		for _, s := range live {
			if !found || s.Latency() > sig.Latency() {
				sig, found = s, true
			}
		}
	}
	if !found {
		return nil
	}

	path := []circuit.Signal{sig}
	for {
		c, ok := t.registry.Producer(sig)
		if !ok {
			break
		}
		next := c.Inputs[0].Signal
		for _, b := range c.Inputs[1:] {
			if b.Signal.Latency() > next.Latency() {
				next = b.Signal
			}
		}
		sig = next
		path = append(path, sig)
	}
	slices.Reverse(path)
	return path
}
