package circuit

import (
	"fmt"
	"slices"

	"github.com/matzehuels/boothtree/pkg/errors"
)

// Registry is the append-only arena of every compressor in one tree.
// It is not safe for concurrent use; each tree owns its own registry.
type Registry struct {
	items []*Compressor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add instantiates a compressor of the given kind at site, binding inputs to
// the kind's input ports in order. Output signals are named after the
// instance and carry latencies from Kind.Delays.
func (r *Registry) Add(kind Kind, site Site, inputs ...Signal) (*Compressor, error) {
	if !kind.Valid() {
		return nil, errors.New(errors.ErrCodePrecondition, "unknown compressor kind %d", int(kind))
	}
	if len(inputs) != kind.Arity() {
		return nil, errors.New(errors.ErrCodePrecondition,
			"%s compressor needs %d inputs, got %d", kind, kind.Arity(), len(inputs))
	}

	id := CompressorID(len(r.items))
	c := &Compressor{
		ID:      id,
		Kind:    kind,
		Site:    site,
		Inputs:  make([]Binding, len(inputs)),
		Outputs: make([]Binding, len(kind.OutputPorts())),
	}

	lat := make([]float64, len(inputs))
	for i, p := range kind.InputPorts() {
		c.Inputs[i] = Binding{Port: p, Signal: inputs[i]}
		lat[i] = inputs[i].latency
	}

	name := c.Name()
	delays := kind.Delays(lat)
	for i, p := range kind.OutputPorts() {
		c.Outputs[i] = Binding{
			Port:   p,
			Signal: Signal{name: name + "_" + string(p), latency: delays[i], producer: id},
		}
	}

	r.items = append(r.items, c)
	return c, nil
}

// Len returns the number of compressors.
func (r *Registry) Len() int { return len(r.items) }

// At returns the compressor with the given ID.
func (r *Registry) At(id CompressorID) (*Compressor, bool) {
	if id < 0 || int(id) >= len(r.items) {
		return nil, false
	}
	return r.items[id], true
}

// All returns every compressor in creation order.
// The slice is a copy; the compressors are shared and must not be modified.
func (r *Registry) All() []*Compressor { return slices.Clone(r.items) }

// Producer returns the compressor driving s, or false for primary inputs.
func (r *Registry) Producer(s Signal) (*Compressor, bool) {
	id, ok := s.Producer()
	if !ok {
		return nil, false
	}
	return r.At(id)
}

// CountByKind tallies compressors per kind.
func (r *Registry) CountByKind() map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for _, c := range r.items {
		counts[c.Kind]++
	}
	return counts
}

// Level returns the compressors created in one reduction level, in creation order.
func (r *Registry) Level(level int) []*Compressor {
	var out []*Compressor
	for _, c := range r.items {
		if c.Level == level {
			out = append(out, c)
		}
	}
	return out
}

func (r *Registry) String() string {
	counts := r.CountByKind()
	return fmt.Sprintf("%d compressors (2to1=%d 3to2=%d 4to2=%d)",
		len(r.items), counts[Kind2to1], counts[Kind3to2], counts[Kind4to2])
}
