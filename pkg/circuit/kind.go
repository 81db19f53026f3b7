package circuit

import "fmt"

// Kind identifies a compressor variant.
type Kind int

const (
	// Kind2to1 reduces two bits to a sum and one carry.
	Kind2to1 Kind = iota
	// Kind3to2 reduces three bits to a sum and one carry.
	Kind3to2
	// Kind4to2 reduces four bits plus a carry-in to a sum and two carries.
	Kind4to2
)

// Kinds lists every compressor kind in declaration order.
var Kinds = []Kind{Kind2to1, Kind3to2, Kind4to2}

// Port names an input or output slot of a compressor.
type Port string

const (
	PortA     Port = "a"
	PortB     Port = "b"
	PortC     Port = "c"
	PortD     Port = "d"
	PortCin   Port = "cin"
	PortSum   Port = "sum"
	PortCout  Port = "cout"
	PortCoutA Port = "cout_a"
	PortCoutB Port = "cout_b"
)

var (
	inputs2  = []Port{PortA, PortB}
	inputs3  = []Port{PortA, PortB, PortC}
	inputs5  = []Port{PortA, PortB, PortC, PortD, PortCin}
	outputs2 = []Port{PortSum, PortCout}
	outputs3 = []Port{PortSum, PortCoutA, PortCoutB}
)

func (k Kind) String() string {
	switch k {
	case Kind2to1:
		return "2to1"
	case Kind3to2:
		return "3to2"
	case Kind4to2:
		return "4to2"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Module returns the hardware module name instantiated for this kind.
func (k Kind) Module() string { return "cmprs_" + k.String() }

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return k >= Kind2to1 && k <= Kind4to2 }

// InputPorts returns the input slots in positional order.
func (k Kind) InputPorts() []Port {
	switch k {
	case Kind2to1:
		return inputs2
	case Kind3to2:
		return inputs3
	case Kind4to2:
		return inputs5
	}
	panic(fmt.Sprintf("circuit: unknown compressor kind %d", int(k)))
}

// OutputPorts returns the output slots in positional order. The first one is
// always the sum; the rest are carries weighted one column higher.
func (k Kind) OutputPorts() []Port {
	switch k {
	case Kind2to1, Kind3to2:
		return outputs2
	case Kind4to2:
		return outputs3
	}
	panic(fmt.Sprintf("circuit: unknown compressor kind %d", int(k)))
}

// Arity returns the number of inputs the kind consumes.
func (k Kind) Arity() int { return len(k.InputPorts()) }

// Delays derives output latencies, ordered like OutputPorts, from input
// latencies ordered like InputPorts. The caller guarantees len(in) == Arity().
func (k Kind) Delays(in []float64) []float64 {
	switch k {
	case Kind2to1:
		// sum = a ^ b, cout = a & b
		m := max(in[0], in[1])
		return []float64{m + DelayXOR, m + DelayAND}
	case Kind3to2:
		// sum = a ^ b ^ c, cout = majority(a, b, c)
		m := max(in[0], in[1], in[2])
		return []float64{m + 2*DelayXOR, m + DelayAND + DelayOR}
	case Kind4to2:
		m3 := max(in[0], in[1], in[2])
		m4 := max(m3, in[3])
		all := max(m4, in[4])
		// cout_a = (xor(a,b,c,d) & cin) | (~xor(a,b,c,d) & d)
		xorStage := m4 + 2*DelayXOR
		cinStage := in[4] + DelayAND
		return []float64{
			all + 3*DelayXOR,
			max(xorStage, cinStage) + DelayOR,
			m3 + DelayAND + DelayOR,
		}
	}
	panic(fmt.Sprintf("circuit: unknown compressor kind %d", int(k)))
}
