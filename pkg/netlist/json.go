package netlist

import (
	"encoding/json"
	"fmt"
	"io"
)

var kindFromString = map[string]NodeKind{
	"input":      NodeKindInput,
	"constant":   NodeKindConstant,
	"compressor": NodeKindCompressor,
	"output":     NodeKindOutput,
}

type document struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

type jsonNode struct {
	ID     string   `json:"id"`
	Kind   string   `json:"kind"`
	Row    int      `json:"row"`
	Column int      `json:"column"`
	Meta   Metadata `json:"meta,omitempty"`
}

type jsonEdge struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Signal  string  `json:"signal"`
	Port    string  `json:"port"`
	Latency float64 `json:"latency"`
}

// MarshalJSON encodes the netlist as {"nodes": [...], "edges": [...]}.
func (n *Netlist) MarshalJSON() ([]byte, error) {
	doc := document{
		Nodes: make([]jsonNode, 0, len(n.order)),
		Edges: make([]jsonEdge, 0, len(n.edges)),
	}
	for _, nd := range n.order {
		doc.Nodes = append(doc.Nodes, jsonNode{
			ID:     nd.ID,
			Kind:   nd.Kind.String(),
			Row:    nd.Row,
			Column: nd.Column,
			Meta:   nd.Meta,
		})
	}
	for _, e := range n.edges {
		doc.Edges = append(doc.Edges, jsonEdge(e))
	}
	return json.Marshal(doc)
}

// WriteJSON writes the indented JSON encoding of n to w.
func WriteJSON(n *Netlist, w io.Writer) error {
	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ReadJSON decodes a netlist written by WriteJSON and validates it.
// Metadata numbers decode as float64.
func ReadJSON(r io.Reader) (*Netlist, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	n := New()
	for _, jn := range doc.Nodes {
		kind, ok := kindFromString[jn.Kind]
		if !ok {
			return nil, fmt.Errorf("node %s: unknown kind %q", jn.ID, jn.Kind)
		}
		if err := n.AddNode(Node{ID: jn.ID, Kind: kind, Row: jn.Row, Column: jn.Column, Meta: jn.Meta}); err != nil {
			return nil, fmt.Errorf("node %s: %w", jn.ID, err)
		}
	}
	for _, je := range doc.Edges {
		if err := n.AddEdge(Edge(je)); err != nil {
			return nil, fmt.Errorf("edge %s -> %s: %w", je.From, je.To, err)
		}
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}
