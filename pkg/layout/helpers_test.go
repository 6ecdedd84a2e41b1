package layout

import (
	"fmt"
	"math"

	"tabula/pkg/style"
)

// box is test content with a natural size. Under a narrower width
// constraint it wraps into as many lines as needed.
type box struct {
	W, H float64
}

var boxMeasurer = MeasurerFunc(func(c Content, k Constraint) (Size, error) {
	b, ok := c.(box)
	if !ok {
		return Size{}, fmt.Errorf("unexpected content %T", c)
	}
	if k.Bounded && k.Width > 0 && b.W > k.Width {
		lines := math.Ceil(b.W / k.Width)
		return Size{Width: k.Width, Height: b.H * lines}, nil
	}
	return Size{Width: b.W, Height: b.H}, nil
})

func cellOf(w, h float64) DeclaredCell {
	return NewCell(box{w, h})
}

func proportionalColumns(n int) []Column {
	cols := make([]Column, n)
	for i := range cols {
		cols[i] = NewColumn(Proportional(1))
	}
	return cols
}

// gridRows returns rows × cols rows of 1×1 cells, each 10×10.
func gridRows(rows, cols int) []Row {
	out := make([]Row, rows)
	for r := range out {
		cells := make([]DeclaredCell, cols)
		for c := range cells {
			cells[c] = cellOf(10, 10)
		}
		out[r] = NewRow(cells...)
	}
	return out
}

// lowerBounds lists the first column of every cell per row.
func lowerBounds(rows []PlacedRow) [][]int {
	out := make([][]int, len(rows))
	for r, row := range rows {
		for _, cell := range row.Cells {
			out[r] = append(out[r], cell.ColRange.Lower)
		}
	}
	return out
}

var red = style.RGB(255, 0, 0)
