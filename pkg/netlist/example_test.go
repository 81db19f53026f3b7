package netlist_test

import (
	"fmt"

	"github.com/matzehuels/boothtree/pkg/netlist"
	"github.com/matzehuels/boothtree/pkg/wallace"
)

func ExampleFromTree() {
	tr, _ := wallace.Build(8, wallace.Options{})
	n, _ := netlist.FromTree(tr)

	counts := n.CountByKind()
	fmt.Println("inputs:", counts[netlist.NodeKindInput])
	fmt.Println("compressors:", counts[netlist.NodeKindCompressor])
	fmt.Println("outputs:", counts[netlist.NodeKindOutput])
	fmt.Println("rows:", n.RowIDs())
	// Output:
	// inputs: 60
	// compressors: 24
	// outputs: 30
	// rows: [0 1 2 3 4]
}
