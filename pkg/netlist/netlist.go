// Package netlist converts a reduced Wallace tree into a plain component
// graph for export and visualisation.
//
// Nodes are primary inputs, the tied-low constant, compressors, and result
// ports (one per signal left in a column, plus one per truncated carry).
// Edges follow signals from their producer to their consumer and carry the
// signal name, the consuming port and the signal latency. Rows group nodes by
// reduction level: inputs sit in row 0, compressors of level L in row L+1 and
// result ports in the last row.
//
// Unlike a layered DAG, edges may skip rows: a signal that passes through a
// level unchanged connects non-adjacent rows.
package netlist

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by AddNode when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by AddNode when the ID is already used.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by AddEdge when From does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by AddEdge when To does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrBackwardEdge is returned by Validate when an edge does not point to
	// a later row.
	ErrBackwardEdge = errors.New("edge must point to a later row")

	// ErrGraphHasCycle is returned by Validate when a cycle is detected.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes.
type Metadata map[string]any

// NodeKind distinguishes the roles of netlist nodes.
type NodeKind int

const (
	NodeKindInput NodeKind = iota
	NodeKindConstant
	NodeKindCompressor
	NodeKindOutput
)

var kindNames = map[NodeKind]string{
	NodeKindInput:      "input",
	NodeKindConstant:   "constant",
	NodeKindCompressor: "compressor",
	NodeKindOutput:     "output",
}

func (k NodeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Node is one component of the netlist.
type Node struct {
	ID     string
	Kind   NodeKind
	Row    int
	Column int
	Meta   Metadata // never nil after AddNode
}

// Edge is one signal connecting a producer to a consumer.
type Edge struct {
	From    string
	To      string
	Signal  string
	Port    string // port on the consumer
	Latency float64
}

// Netlist is a directed acyclic component graph.
// Iteration order is insertion order, so exports are deterministic.
// The zero value is not usable - use New.
type Netlist struct {
	nodes    map[string]*Node
	order    []*Node
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
	rows     map[int][]*Node
}

// New creates an empty netlist.
func New() *Netlist {
	return &Netlist{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		rows:     make(map[int][]*Node),
	}
}

// AddNode adds a node and indexes it by row.
func (n *Netlist) AddNode(node Node) error {
	if node.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := n.nodes[node.ID]; exists {
		return ErrDuplicateNodeID
	}
	if node.Meta == nil {
		node.Meta = Metadata{}
	}
	p := &node
	n.nodes[p.ID] = p
	n.order = append(n.order, p)
	n.rows[p.Row] = append(n.rows[p.Row], p)
	return nil
}

// AddEdge connects two existing nodes.
func (n *Netlist) AddEdge(e Edge) error {
	if _, ok := n.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := n.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	n.edges = append(n.edges, e)
	n.outgoing[e.From] = append(n.outgoing[e.From], e.To)
	n.incoming[e.To] = append(n.incoming[e.To], e.From)
	return nil
}

// Node returns the node with the given ID.
func (n *Netlist) Node(id string) (*Node, bool) {
	node, ok := n.nodes[id]
	return node, ok
}

// Nodes returns all nodes in insertion order.
func (n *Netlist) Nodes() []*Node { return slices.Clone(n.order) }

// Edges returns a copy of all edges in insertion order.
func (n *Netlist) Edges() []Edge { return slices.Clone(n.edges) }

// NodeCount returns the number of nodes.
func (n *Netlist) NodeCount() int { return len(n.nodes) }

// EdgeCount returns the number of edges.
func (n *Netlist) EdgeCount() int { return len(n.edges) }

// Children returns the consumers of a node. The slice must not be modified.
func (n *Netlist) Children(id string) []string { return n.outgoing[id] }

// Parents returns the producers feeding a node. The slice must not be modified.
func (n *Netlist) Parents(id string) []string { return n.incoming[id] }

// NodesInRow returns the nodes of one row in insertion order.
func (n *Netlist) NodesInRow(row int) []*Node { return n.rows[row] }

// RowIDs returns all row indices in ascending order.
func (n *Netlist) RowIDs() []int { return slices.Sorted(maps.Keys(n.rows)) }

// CountByKind tallies nodes per kind.
func (n *Netlist) CountByKind() map[NodeKind]int {
	counts := make(map[NodeKind]int)
	for _, node := range n.order {
		counts[node.Kind]++
	}
	return counts
}

// Validate checks that every edge points to a later row and that the graph
// is acyclic.
func (n *Netlist) Validate() error {
	for _, e := range n.edges {
		if n.nodes[e.To].Row <= n.nodes[e.From].Row {
			return ErrBackwardEdge
		}
	}
	return n.detectCycles()
}

func (n *Netlist) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(n.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range n.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for _, node := range n.order {
		if color[node.ID] == white {
			dfs(node.ID)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
