package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/boothtree/pkg/netlist"
	"github.com/matzehuels/boothtree/pkg/render/dot"
	"github.com/matzehuels/boothtree/pkg/render/report"
	"github.com/matzehuels/boothtree/pkg/wallace"
)

// Render produces one artifact for a built tree.
func Render(ctx context.Context, t *wallace.Tree, n *netlist.Netlist, format string, detailed bool) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := netlist.WriteJSON(n, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(dot.ToDOT(n, dot.Options{Detailed: detailed})), nil
	case FormatSVG:
		return dot.RenderSVG(ctx, dot.ToDOT(n, dot.Options{Detailed: detailed}))
	case FormatTXT:
		return []byte(report.Render(t, report.Options{Detailed: detailed})), nil
	default:
		return nil, ValidateFormat(format)
	}
}
