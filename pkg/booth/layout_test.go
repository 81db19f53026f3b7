package booth

import (
	"slices"
	"testing"

	"github.com/matzehuels/boothtree/pkg/errors"
)

func TestNewLayoutInvalidWidth(t *testing.T) {
	for _, w := range []int{-1, 0, 3} {
		if _, err := NewLayout(w); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("NewLayout(%d) = %v, want INVALID_CONFIG", w, err)
		}
	}
}

func TestLayoutDimensions(t *testing.T) {
	for w := 4; w <= 64; w++ {
		l, err := NewLayout(w)
		if err != nil {
			t.Fatalf("NewLayout(%d): %v", w, err)
		}
		if l.PPNum() != w/2+1 {
			t.Errorf("w=%d: PPNum() = %d, want %d", w, l.PPNum(), w/2+1)
		}
		if l.ResultWidth() != 2*w {
			t.Errorf("w=%d: ResultWidth() = %d, want %d", w, l.ResultWidth(), 2*w)
		}
		m := l.Matrix()
		if len(m) != l.PPNum() || len(m[0]) != 2*w+2 {
			t.Errorf("w=%d: matrix %dx%d", w, len(m), len(m[0]))
		}
		for row := range m {
			want, _ := l.RowWidth(row)
			sum := 0
			for _, v := range m[row] {
				sum += v
			}
			if sum != want {
				t.Errorf("w=%d row=%d: row sum = %d, want %d", w, row, sum, want)
			}
		}
	}
}

func TestLayoutRowWidths(t *testing.T) {
	tests := []struct {
		width  int
		widths []int
		starts []int
	}{
		{width: 4, widths: []int{8, 9, 7}, starts: []int{0, 0, 2}},
		{width: 8, widths: []int{12, 13, 13, 13, 11}, starts: []int{0, 0, 2, 4, 6}},
	}
	for _, tt := range tests {
		l, err := NewLayout(tt.width)
		if err != nil {
			t.Fatal(err)
		}
		if l.PPNum() != len(tt.widths) {
			t.Fatalf("w=%d: PPNum() = %d, want %d", tt.width, l.PPNum(), len(tt.widths))
		}
		for row := range tt.widths {
			w, _ := l.RowWidth(row)
			s, _ := l.RowStart(row)
			if w != tt.widths[row] || s != tt.starts[row] {
				t.Errorf("w=%d row=%d: width,start = %d,%d want %d,%d",
					tt.width, row, w, s, tt.widths[row], tt.starts[row])
			}
			start, end, _ := l.Span(row)
			if start != s || end != s+w {
				t.Errorf("w=%d row=%d: Span() = [%d,%d)", tt.width, row, start, end)
			}
		}
	}
}

func TestLayoutString(t *testing.T) {
	l, _ := NewLayout(4)
	want := "1111111100\n" +
		"1111111110\n" +
		"0011111110\n"
	if got := l.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestLayoutPopulation(t *testing.T) {
	l, _ := NewLayout(8)
	want := []int{2, 2, 3, 3, 4, 4, 5, 5, 5, 5, 5, 5, 4, 3, 3, 2}
	if got := l.Population(); !slices.Equal(got, want) {
		t.Errorf("Population() = %v, want %v", got, want)
	}
	rows, err := l.ColumnRows(6)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(rows, []int{0, 1, 2, 3, 4}) {
		t.Errorf("ColumnRows(6) = %v", rows)
	}
	if rows, _ := l.ColumnRows(15); !slices.Equal(rows, []int{3, 4}) {
		t.Errorf("ColumnRows(15) = %v", rows)
	}
}

func TestLayoutOutOfRange(t *testing.T) {
	l, _ := NewLayout(8)
	tests := []struct {
		name string
		call func() error
	}{
		{"RowWidth(-1)", func() error { _, err := l.RowWidth(-1); return err }},
		{"RowWidth(5)", func() error { _, err := l.RowWidth(5); return err }},
		{"RowStart(5)", func() error { _, err := l.RowStart(5); return err }},
		{"Span(9)", func() error { _, _, err := l.Span(9); return err }},
		{"At(5,0)", func() error { _, err := l.At(5, 0); return err }},
		{"At(0,16)", func() error { _, err := l.At(0, 16); return err }},
		{"At(0,-1)", func() error { _, err := l.At(0, -1); return err }},
		{"ColumnRows(16)", func() error { _, err := l.ColumnRows(16); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, errors.ErrCodeOutOfRange) {
				t.Errorf("err = %v, want OUT_OF_RANGE", err)
			}
		})
	}

	set, err := l.At(4, 15)
	if err != nil || !set {
		t.Errorf("At(4,15) = %v, %v", set, err)
	}
	set, err = l.At(0, 12)
	if err != nil || set {
		t.Errorf("At(0,12) = %v, %v", set, err)
	}
}

func TestLayoutMatrixIsCopy(t *testing.T) {
	l, _ := NewLayout(4)
	m := l.Matrix()
	m[0][0] = 0
	if set, _ := l.At(0, 0); !set {
		t.Error("Matrix() must not alias the layout")
	}
}
