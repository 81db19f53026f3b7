// Package booth computes the partial-product layout of a radix-4 (modified)
// Booth-encoded multiplier.
//
// A w-bit multiplier recodes into w/2+1 digits, each selecting one partial
// product row. Rows are padded with Booth add bits, sign extension and the
// two-bit negative carry-in of the row above, which gives three row widths:
//
//	          x x x x x x             row 0:      w+4
//	 ~s s s e x x x x x x             middle rows: w+5
//	1 s e x x x x x x t t             last row:    w+3
//	...
//	s x x x x x x t t
//
// Rows 0 and 1 start at column 0; row r > 1 starts at column 2r-2.
package booth

import (
	"strings"

	"github.com/matzehuels/boothtree/pkg/errors"
)

// guardColumns is the number of columns past the product kept in the matrix.
const guardColumns = 2

// Layout is the populated-column bitmap of every partial-product row.
// A Layout is immutable after NewLayout returns.
type Layout struct {
	width int
	ppNum int
	cells [][]bool
}

// NewLayout computes the layout for a multiplier of the given width.
func NewLayout(width int) (*Layout, error) {
	if err := errors.ValidateWidth(width); err != nil {
		return nil, err
	}
	l := &Layout{width: width, ppNum: width/2 + 1}
	cols := l.ResultWidth() + guardColumns
	l.cells = make([][]bool, l.ppNum)
	for row := range l.cells {
		start, w := l.rowStart(row), l.rowWidth(row)
		l.cells[row] = make([]bool, cols)
		for col := start; col < start+w && col < cols; col++ {
			l.cells[row][col] = true
		}
	}
	return l, nil
}

// Width returns the operand width.
func (l *Layout) Width() int { return l.width }

// PPNum returns the number of Booth-encoded partial-product rows.
func (l *Layout) PPNum() int { return l.ppNum }

// ResultWidth returns the product width, 2·width.
func (l *Layout) ResultWidth() int { return 2 * l.width }

// Columns returns the number of matrix columns including the guard columns.
func (l *Layout) Columns() int { return l.ResultWidth() + guardColumns }

// RowWidth returns the number of populated columns in a row.
func (l *Layout) RowWidth(row int) (int, error) {
	if err := errors.CheckIndex("row", row, l.ppNum); err != nil {
		return 0, err
	}
	return l.rowWidth(row), nil
}

// RowStart returns the first populated column of a row.
func (l *Layout) RowStart(row int) (int, error) {
	if err := errors.CheckIndex("row", row, l.ppNum); err != nil {
		return 0, err
	}
	return l.rowStart(row), nil
}

// Span returns the half-open column range [start, end) populated by a row.
func (l *Layout) Span(row int) (start, end int, err error) {
	if err := errors.CheckIndex("row", row, l.ppNum); err != nil {
		return 0, 0, err
	}
	start = l.rowStart(row)
	return start, start + l.rowWidth(row), nil
}

func (l *Layout) rowWidth(row int) int {
	switch row {
	case 0:
		// 2 Booth add bits + 2 sign extension bits
		return l.width + 4
	case l.ppNum - 1:
		// 1 Booth add bit + 2 negative carry-in bits
		return l.width + 3
	default:
		// 2 Booth add bits + 1 sign extension bit + 2 negative carry-in bits
		return l.width + 5
	}
}

func (l *Layout) rowStart(row int) int {
	if row <= 1 {
		return 0
	}
	return 2*row - 2
}

// At reports whether row populates a result column.
func (l *Layout) At(row, col int) (bool, error) {
	if err := errors.CheckIndex("row", row, l.ppNum); err != nil {
		return false, err
	}
	if err := errors.CheckIndex("column", col, l.ResultWidth()); err != nil {
		return false, err
	}
	return l.cells[row][col], nil
}

// ColumnRows returns the rows populating a result column, in row order.
func (l *Layout) ColumnRows(col int) ([]int, error) {
	if err := errors.CheckIndex("column", col, l.ResultWidth()); err != nil {
		return nil, err
	}
	var rows []int
	for row := range l.cells {
		if l.cells[row][col] {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// Population returns the number of partial-product bits in each result column.
func (l *Layout) Population() []int {
	pop := make([]int, l.ResultWidth())
	for _, cells := range l.cells {
		for col := range pop {
			if cells[col] {
				pop[col]++
			}
		}
	}
	return pop
}

// Matrix returns a copy of the full bitmap, pp_num rows by result_width+2
// columns, with 1 for populated cells. Column 0 is the least significant.
func (l *Layout) Matrix() [][]int {
	m := make([][]int, len(l.cells))
	for row, cells := range l.cells {
		m[row] = make([]int, len(cells))
		for col, set := range cells {
			if set {
				m[row][col] = 1
			}
		}
	}
	return m
}

// String renders the matrix one row per line, least significant column first.
func (l *Layout) String() string {
	var b strings.Builder
	for _, cells := range l.cells {
		for _, set := range cells {
			if set {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
