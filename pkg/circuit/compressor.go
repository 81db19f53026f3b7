package circuit

import "fmt"

// Site locates a compressor in the tree and makes its name unique.
type Site struct {
	Column   int // bit column of the inputs and the sum
	Level    int // reduction round
	Sequence int // position among compressors of the same column and level
}

// Binding attaches a signal to a compressor port.
type Binding struct {
	Port   Port
	Signal Signal
}

// Compressor is one instantiated reduction cell.
type Compressor struct {
	ID   CompressorID
	Kind Kind
	Site
	Inputs  []Binding // ordered like Kind.InputPorts
	Outputs []Binding // ordered like Kind.OutputPorts
}

// Name returns the instance name, e.g. "u_cmprs_4to2_7_0_1".
func (c *Compressor) Name() string {
	return instanceName(c.Kind, c.Site)
}

func instanceName(k Kind, s Site) string {
	return fmt.Sprintf("u_%s_%d_%d_%d", k.Module(), s.Column, s.Level, s.Sequence)
}

// Input returns the signal bound to an input port.
func (c *Compressor) Input(p Port) (Signal, bool) { return lookup(c.Inputs, p) }

// Output returns the signal bound to an output port.
func (c *Compressor) Output(p Port) (Signal, bool) { return lookup(c.Outputs, p) }

// Sum returns the same-weight output.
func (c *Compressor) Sum() Signal { return c.Outputs[0].Signal }

// Carries returns the outputs weighted one column higher, in port order.
func (c *Compressor) Carries() []Signal {
	carries := make([]Signal, 0, len(c.Outputs)-1)
	for _, b := range c.Outputs[1:] {
		carries = append(carries, b.Signal)
	}
	return carries
}

// Latency returns the latest output latency.
func (c *Compressor) Latency() float64 {
	var m float64
	for _, b := range c.Outputs {
		m = max(m, b.Signal.latency)
	}
	return m
}

// InputLatency returns the latest input latency.
func (c *Compressor) InputLatency() float64 {
	var m float64
	for _, b := range c.Inputs {
		m = max(m, b.Signal.latency)
	}
	return m
}

func lookup(bs []Binding, p Port) (Signal, bool) {
	for _, b := range bs {
		if b.Port == p {
			return b.Signal, true
		}
	}
	return Signal{}, false
}
