// Package dot renders compressor netlists as Graphviz node-link diagrams.
//
// [ToDOT] produces DOT source with one rank per reduction level: primary
// inputs on top, compressors level by level below them, result ports at the
// bottom. [RenderSVG] lays the source out in-process with
// [github.com/goccy/go-graphviz].
//
//	src := dot.ToDOT(n, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(ctx, src)
package dot

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/boothtree/pkg/netlist"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds metadata to node labels and latencies to edge labels.
	Detailed bool
}

var kindAttrs = map[netlist.NodeKind]string{
	netlist.NodeKindInput:      `shape=ellipse, fillcolor="#e8f1fb"`,
	netlist.NodeKindConstant:   `shape=plaintext, style="", fontcolor=grey40`,
	netlist.NodeKindCompressor: `shape=box, fillcolor="#fdf3e1"`,
	netlist.NodeKindOutput:     `shape=invhouse, fillcolor="#e6f5e9"`,
}

// ToDOT converts a netlist to Graphviz DOT source. Node and edge order
// follows the netlist, so equal netlists give identical output.
func ToDOT(n *netlist.Netlist, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph netlist {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"rounded,filled\", fillcolor=white, fontsize=12, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [arrowsize=0.6, color=grey30, fontsize=9];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.2;\n")

	for _, row := range n.RowIDs() {
		fmt.Fprintf(&buf, "\n  subgraph row_%d {\n    rank=same;\n", row)
		for _, node := range n.NodesInRow(row) {
			fmt.Fprintf(&buf, "    %q [label=%q, %s];\n", node.ID, fmtLabel(node, opts.Detailed), kindAttrs[node.Kind])
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range n.Edges() {
		if opts.Detailed {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, fmt.Sprintf("%s %.1f", e.Port, e.Latency))
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *netlist.Node, detailed bool) string {
	label := n.ID
	if n.Kind == netlist.NodeKindCompressor {
		if k, ok := n.Meta["kind"]; ok {
			label = fmt.Sprintf("%v\n%s", k, n.ID)
		}
	}
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("column: %d", n.Column)}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

// RenderSVG lays out DOT source with Graphviz and returns the SVG document.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with one whose
// viewBox starts at the origin and whose size matches the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
