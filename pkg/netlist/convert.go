package netlist

import (
	"fmt"

	"github.com/matzehuels/boothtree/pkg/circuit"
	"github.com/matzehuels/boothtree/pkg/wallace"
)

// Output port names used for result nodes.
const (
	truncatedPrefix = "truncated"
	resultPrefix    = "result"
)

// ResultID names the result port of the i-th live signal in a column.
func ResultID(col, i int) string { return fmt.Sprintf("%s[%d][%d]", resultPrefix, col, i) }

// FromTree converts the current state of a tree into a netlist. Unreduced
// trees convert too; their primary inputs connect straight to result ports.
func FromTree(t *wallace.Tree) (*Netlist, error) {
	n := New()
	outRow := t.Levels() + 1

	// source maps every signal name to the node driving it.
	source := make(map[string]string)

	for col := 0; col < t.ResultWidth(); col++ {
		rows, err := t.Layout().ColumnRows(col)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			name := wallace.PrimaryName(t.Prefix(), row, col)
			if err := n.AddNode(Node{
				ID:     name,
				Kind:   NodeKindInput,
				Column: col,
				Meta:   Metadata{"pp_row": row, "latency": circuit.DelayBooth},
			}); err != nil {
				return nil, fmt.Errorf("input %s: %w", name, err)
			}
			source[name] = name
		}
	}

	compressors := t.Registry().All()
	for _, c := range compressors {
		if !usesZero(c) {
			continue
		}
		if err := n.AddNode(Node{ID: circuit.ZeroName, Kind: NodeKindConstant, Meta: Metadata{"latency": 0.0}}); err != nil {
			return nil, fmt.Errorf("constant: %w", err)
		}
		source[circuit.ZeroName] = circuit.ZeroName
		break
	}

	for _, c := range compressors {
		id := c.Name()
		if err := n.AddNode(Node{
			ID:     id,
			Kind:   NodeKindCompressor,
			Row:    c.Level + 1,
			Column: c.Column,
			Meta: Metadata{
				"kind":     c.Kind.String(),
				"module":   c.Kind.Module(),
				"level":    c.Level,
				"sequence": c.Sequence,
				"latency":  c.Latency(),
			},
		}); err != nil {
			return nil, fmt.Errorf("compressor %s: %w", id, err)
		}
		for _, b := range c.Inputs {
			if err := n.connect(source, b.Signal, id, string(b.Port)); err != nil {
				return nil, fmt.Errorf("compressor %s: %w", id, err)
			}
		}
		for _, b := range c.Outputs {
			source[b.Signal.Name()] = id
		}
	}

	for col, live := range t.Columns() {
		for i, s := range live {
			if err := n.addResult(source, ResultID(col, i), col, outRow, s); err != nil {
				return nil, err
			}
		}
	}
	for i, s := range t.Truncated() {
		id := fmt.Sprintf("%s[%d]", truncatedPrefix, i)
		if err := n.addResult(source, id, t.ResultWidth(), outRow, s); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (n *Netlist) addResult(source map[string]string, id string, col, row int, s circuit.Signal) error {
	if err := n.AddNode(Node{
		ID:     id,
		Kind:   NodeKindOutput,
		Row:    row,
		Column: col,
		Meta:   Metadata{"signal": s.Name(), "latency": s.Latency()},
	}); err != nil {
		return fmt.Errorf("result %s: %w", id, err)
	}
	if err := n.connect(source, s, id, "in"); err != nil {
		return fmt.Errorf("result %s: %w", id, err)
	}
	return nil
}

func (n *Netlist) connect(source map[string]string, s circuit.Signal, to, port string) error {
	from, ok := source[s.Name()]
	if !ok {
		return fmt.Errorf("signal %s: %w", s.Name(), ErrUnknownSourceNode)
	}
	return n.AddEdge(Edge{From: from, To: to, Signal: s.Name(), Port: port, Latency: s.Latency()})
}

func usesZero(c *circuit.Compressor) bool {
	for _, b := range c.Inputs {
		if b.Signal.IsZero() {
			return true
		}
	}
	return false
}
