package wallace

import (
	"fmt"
	"slices"

	"github.com/matzehuels/boothtree/pkg/booth"
	"github.com/matzehuels/boothtree/pkg/circuit"
	"github.com/matzehuels/boothtree/pkg/errors"
)

const (
	// DefaultLogicDepth is the smallest level cap DefaultLogicDepthFor returns.
	// A 64-bit multiplier needs 21 levels.
	DefaultLogicDepth = 32

	// DefaultPrefix names partial-product signals when Options.Prefix is empty.
	DefaultPrefix = "pp"

	// maxLive is the largest column population left for the final adder.
	maxLive = 2
)

// Options configures tree construction.
type Options struct {
	// LogicDepth caps the number of reduction levels. It does not insert
	// pipeline registers; callers plan stages from Tree.Timing.
	LogicDepth int

	// Prefix names partial-product signals: "<Prefix>_ext[row][col]".
	Prefix string
}

// DefaultLogicDepthFor returns the level cap used for a width-bit multiplier
// when Options.LogicDepth is zero. Lone carries ripple one column per level,
// so the level count grows with width; width/2+2 stays above it for every
// width errors.ValidateWidth accepts.
func DefaultLogicDepthFor(width int) int {
	return max(DefaultLogicDepth, width/2+2)
}

func (o *Options) setDefaults(width int) {
	if o.LogicDepth == 0 {
		o.LogicDepth = DefaultLogicDepthFor(width)
	}
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
}

func (o Options) validate() error {
	if err := errors.ValidateLogicDepth(o.LogicDepth); err != nil {
		return err
	}
	return errors.ValidatePrefix(o.Prefix)
}

// Tree is the reduction engine state for one multiplier.
type Tree struct {
	layout    *booth.Layout
	opts      Options
	columns   [][]circuit.Signal
	registry  *circuit.Registry
	levels    int
	truncated []circuit.Signal
}

// New lays out the partial products of a width-bit multiplier and builds the
// primary signal list of every result column. Zero-valued options take their
// defaults; a zero LogicDepth becomes DefaultLogicDepthFor(width).
func New(width int, opts Options) (*Tree, error) {
	opts.setDefaults(width)
	if err := opts.validate(); err != nil {
		return nil, err
	}
	layout, err := booth.NewLayout(width)
	if err != nil {
		return nil, err
	}

	t := &Tree{
		layout:   layout,
		opts:     opts,
		columns:  make([][]circuit.Signal, layout.ResultWidth()),
		registry: circuit.NewRegistry(),
	}
	for col := range t.columns {
		rows, err := layout.ColumnRows(col)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			t.columns[col] = append(t.columns[col], circuit.NewInput(PrimaryName(opts.Prefix, row, col), circuit.DelayBooth))
		}
	}
	return t, nil
}

// Build creates a tree and reduces it to at most two signals per column.
func Build(width int, opts Options) (*Tree, error) {
	t, err := New(width, opts)
	if err != nil {
		return nil, err
	}
	if err := t.Reduce(); err != nil {
		return nil, err
	}
	return t, nil
}

// PrimaryName returns the name of the partial-product bit at (row, col).
func PrimaryName(prefix string, row, col int) string {
	return fmt.Sprintf("%s_ext[%d][%d]", prefix, row, col)
}

// Width returns the operand width.
func (t *Tree) Width() int { return t.layout.Width() }

// ResultWidth returns the product width.
func (t *Tree) ResultWidth() int { return t.layout.ResultWidth() }

// PPNum returns the number of partial-product rows.
func (t *Tree) PPNum() int { return t.layout.PPNum() }

// LogicDepth returns the reduction level cap.
func (t *Tree) LogicDepth() int { return t.opts.LogicDepth }

// Prefix returns the partial-product naming prefix.
func (t *Tree) Prefix() string { return t.opts.Prefix }

// Layout returns the partial-product layout.
func (t *Tree) Layout() *booth.Layout { return t.layout }

// Registry returns every compressor created so far.
func (t *Tree) Registry() *circuit.Registry { return t.registry }

// Levels returns the number of completed reduction levels.
func (t *Tree) Levels() int { return t.levels }

// Truncated returns carries that left the most significant result column.
func (t *Tree) Truncated() []circuit.Signal { return slices.Clone(t.truncated) }

// Column returns a copy of the live signals of a result column.
func (t *Tree) Column(col int) ([]circuit.Signal, error) {
	if err := errors.CheckIndex("column", col, len(t.columns)); err != nil {
		return nil, err
	}
	return slices.Clone(t.columns[col]), nil
}

// ColumnCount returns the number of live signals in a result column.
func (t *Tree) ColumnCount(col int) (int, error) {
	if err := errors.CheckIndex("column", col, len(t.columns)); err != nil {
		return 0, err
	}
	return len(t.columns[col]), nil
}

// Columns returns a copy of every live signal list, least significant first.
func (t *Tree) Columns() [][]circuit.Signal {
	out := make([][]circuit.Signal, len(t.columns))
	for i, col := range t.columns {
		out[i] = slices.Clone(col)
	}
	return out
}

// Population returns the live signal count of every column.
func (t *Tree) Population() []int {
	pop := make([]int, len(t.columns))
	for i, col := range t.columns {
		pop[i] = len(col)
	}
	return pop
}

// Done reports whether every column holds at most two signals.
func (t *Tree) Done() bool {
	for _, col := range t.columns {
		if len(col) > maxLive {
			return false
		}
	}
	return true
}

// ReduceLevel reduces every column holding more than two signals once and
// moves each column's carries into the next column. Columns with two or
// fewer signals are carried over unchanged.
func (t *Tree) ReduceLevel() error {
	level := t.levels
	next := make([][]circuit.Signal, len(t.columns))
	var carries []circuit.Signal
	for col, live := range t.columns {
		sums := live
		var out []circuit.Signal
		if len(live) > maxLive {
			red, err := ReduceColumn(live, circuit.Site{Column: col, Level: level}, t.registry)
			if err != nil {
				return err
			}
			sums, out = red.Sums, red.Carries
		}
		next[col] = append(slices.Clone(sums), carries...)
		carries = out
	}
	t.truncated = append(t.truncated, carries...)
	t.columns = next
	t.levels++
	return nil
}

// Reduce runs levels until Done. It fails with NO_CONVERGENCE when the tree
// still has a column above two signals after LogicDepth levels.
func (t *Tree) Reduce() error {
	for !t.Done() {
		if t.levels >= t.opts.LogicDepth {
			return errors.New(errors.ErrCodeNoConvergence,
				"width %d: %d columns still above %d signals after %d levels",
				t.Width(), t.overfull(), maxLive, t.levels)
		}
		before := t.registry.Len()
		if err := t.ReduceLevel(); err != nil {
			return err
		}
		if t.registry.Len() == before {
			return errors.New(errors.ErrCodeNoConvergence, "level %d made no progress", t.levels-1)
		}
	}
	return nil
}

func (t *Tree) overfull() int {
	n := 0
	for _, col := range t.columns {
		if len(col) > maxLive {
			n++
		}
	}
	return n
}
