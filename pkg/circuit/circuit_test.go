package circuit

import (
	"testing"

	"github.com/matzehuels/boothtree/pkg/errors"
)

func inputs(n int, latency float64) []Signal {
	sigs := make([]Signal, n)
	for i := range sigs {
		sigs[i] = NewInput(string(rune('p'+i)), latency)
	}
	return sigs
}

func TestSignal(t *testing.T) {
	s := NewInput("pp_ext[0][3]", DelayBooth)
	if s.Name() != "pp_ext[0][3]" {
		t.Errorf("Name() = %q", s.Name())
	}
	if s.Latency() != 4.0 {
		t.Errorf("Latency() = %v, want 4", s.Latency())
	}
	if _, ok := s.Producer(); ok {
		t.Error("primary input should have no producer")
	}
	if !s.IsPrimary() || s.IsZero() {
		t.Errorf("IsPrimary = %v, IsZero = %v", s.IsPrimary(), s.IsZero())
	}

	z := Zero()
	if z.Name() != "1'b0" || z.Latency() != 0 || !z.IsZero() {
		t.Errorf("Zero() = %v", z)
	}
}

func TestKindPorts(t *testing.T) {
	tests := []struct {
		kind    Kind
		name    string
		module  string
		arity   int
		outputs int
	}{
		{Kind2to1, "2to1", "cmprs_2to1", 2, 2},
		{Kind3to2, "3to2", "cmprs_3to2", 3, 2},
		{Kind4to2, "4to2", "cmprs_4to2", 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.kind.String() != tt.name {
				t.Errorf("String() = %q", tt.kind.String())
			}
			if tt.kind.Module() != tt.module {
				t.Errorf("Module() = %q", tt.kind.Module())
			}
			if tt.kind.Arity() != tt.arity {
				t.Errorf("Arity() = %d, want %d", tt.kind.Arity(), tt.arity)
			}
			if got := len(tt.kind.OutputPorts()); got != tt.outputs {
				t.Errorf("outputs = %d, want %d", got, tt.outputs)
			}
			if tt.kind.OutputPorts()[0] != PortSum {
				t.Errorf("first output = %q, want sum", tt.kind.OutputPorts()[0])
			}
		})
	}
	if Kind(7).Valid() {
		t.Error("Kind(7) should be invalid")
	}
	if Kind(7).String() != "Kind(7)" {
		t.Errorf("String() = %q", Kind(7).String())
	}
}

func TestDelays(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		in   []float64
		want []float64
	}{
		{"2to1 equal", Kind2to1, []float64{4, 4}, []float64{5.5, 5}},
		{"2to1 skewed", Kind2to1, []float64{4, 7}, []float64{8.5, 8}},
		{"3to2 equal", Kind3to2, []float64{4, 4, 4}, []float64{7, 6}},
		{"3to2 skewed", Kind3to2, []float64{6, 4, 5}, []float64{9, 8}},
		{"4to2 tied low", Kind4to2, []float64{4, 4, 4, 4, 0}, []float64{8.5, 8, 6}},
		{"4to2 late cin", Kind4to2, []float64{4, 4, 4, 4, 10}, []float64{14.5, 12, 6}},
		{"4to2 late d", Kind4to2, []float64{4, 4, 4, 6, 4}, []float64{10.5, 10, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.kind.Delays(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Delays() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Delays()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()
	site := Site{Column: 7, Level: 0, Sequence: 1}
	c, err := r.Add(Kind4to2, site, append(inputs(4, 4), Zero())...)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if c.ID != 0 || r.Len() != 1 {
		t.Errorf("ID = %d, Len = %d", c.ID, r.Len())
	}
	if c.Name() != "u_cmprs_4to2_7_0_1" {
		t.Errorf("Name() = %q", c.Name())
	}
	if c.Column != 7 || c.Level != 0 || c.Sequence != 1 {
		t.Errorf("site = %+v", c.Site)
	}

	cin, ok := c.Input(PortCin)
	if !ok || !cin.IsZero() {
		t.Errorf("cin = %v, %v", cin, ok)
	}
	if _, ok := c.Input(PortCout); ok {
		t.Error("cout is not an input port")
	}

	sum := c.Sum()
	if sum.Name() != "u_cmprs_4to2_7_0_1_sum" || sum.Latency() != 8.5 {
		t.Errorf("sum = %v", sum)
	}
	carries := c.Carries()
	if len(carries) != 2 {
		t.Fatalf("carries = %v", carries)
	}
	if carries[0].Name() != "u_cmprs_4to2_7_0_1_cout_a" || carries[0].Latency() != 8 {
		t.Errorf("cout_a = %v", carries[0])
	}
	if carries[1].Name() != "u_cmprs_4to2_7_0_1_cout_b" || carries[1].Latency() != 6 {
		t.Errorf("cout_b = %v", carries[1])
	}
	if c.Latency() != 8.5 || c.InputLatency() != 4 {
		t.Errorf("Latency = %v, InputLatency = %v", c.Latency(), c.InputLatency())
	}

	p, ok := r.Producer(sum)
	if !ok || p != c {
		t.Errorf("Producer(sum) = %v, %v", p, ok)
	}
	if _, ok := r.Producer(cin); ok {
		t.Error("Producer(zero) should be absent")
	}
}

func TestRegistryAddArity(t *testing.T) {
	r := NewRegistry()
	_, err := r.Add(Kind3to2, Site{}, inputs(2, 4)...)
	if !errors.Is(err, errors.ErrCodePrecondition) {
		t.Fatalf("Add with 2 inputs = %v, want PRECONDITION_FAILED", err)
	}
	if _, err := r.Add(Kind(9), Site{}); !errors.Is(err, errors.ErrCodePrecondition) {
		t.Fatalf("Add unknown kind = %v, want PRECONDITION_FAILED", err)
	}
	if r.Len() != 0 {
		t.Errorf("failed Add must not register, Len = %d", r.Len())
	}
}

func TestRegistryQueries(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Add(Kind2to1, Site{Column: 1}, inputs(2, 4)...)
	b, _ := r.Add(Kind3to2, Site{Column: 2}, inputs(3, 4)...)
	c, _ := r.Add(Kind2to1, Site{Column: 2, Level: 1}, a.Sum(), b.Sum())

	counts := r.CountByKind()
	if counts[Kind2to1] != 2 || counts[Kind3to2] != 1 || counts[Kind4to2] != 0 {
		t.Errorf("CountByKind() = %v", counts)
	}
	if got := r.Level(1); len(got) != 1 || got[0] != c {
		t.Errorf("Level(1) = %v", got)
	}
	if _, ok := r.At(3); ok {
		t.Error("At(3) should be absent")
	}
	if _, ok := r.At(-1); ok {
		t.Error("At(-1) should be absent")
	}

	all := r.All()
	all[0] = nil
	if got, _ := r.At(0); got != a {
		t.Error("All() must return a copy")
	}
	if c.Sum().Latency() != 8.5 {
		t.Errorf("chained sum latency = %v, want 8.5", c.Sum().Latency())
	}
	if r.String() != "3 compressors (2to1=2 3to2=1 4to2=0)" {
		t.Errorf("String() = %q", r.String())
	}
}

func TestSignalHelpers(t *testing.T) {
	sigs := []Signal{NewInput("a", 4), NewInput("b", 7.5), Zero()}
	if MaxLatency(sigs) != 7.5 {
		t.Errorf("MaxLatency = %v", MaxLatency(sigs))
	}
	if MaxLatency(nil) != 0 {
		t.Error("MaxLatency(nil) should be 0")
	}
	names := Names(sigs)
	if len(names) != 3 || names[2] != "1'b0" {
		t.Errorf("Names = %v", names)
	}
}
