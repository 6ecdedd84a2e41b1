package layout

import (
	"fmt"
	"math"
)

// Constraint limits the width content may occupy when measured.
type Constraint struct {
	Width   float64
	Bounded bool
}

// Unconstrained asks for the content's natural size.
var Unconstrained = Constraint{}

// MaxWidth constrains content to at most w wide.
func MaxWidth(w float64) Constraint {
	return Constraint{Width: w, Bounded: true}
}

// Measurer reports the intrinsic size of a cell's content. It must return
// the same size for the same content and constraint.
type Measurer interface {
	Measure(content Content, c Constraint) (Size, error)
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(content Content, c Constraint) (Size, error)

// Measure calls f.
func (f MeasurerFunc) Measure(content Content, c Constraint) (Size, error) {
	return f(content, c)
}

// Measurements holds one intrinsic size per grid position, indexed
// [column][row]. Only the top-left position of a placed cell is set.
type Measurements [][]Size

// NewMeasurements returns an all-zero matrix.
func NewMeasurements(cols, rows int) Measurements {
	m := make(Measurements, cols)
	for c := range m {
		m[c] = make([]Size, rows)
	}
	return m
}

// At returns the size recorded at (col, row), zero when out of range.
func (m Measurements) At(col, row int) Size {
	if col < 0 || col >= len(m) || row < 0 || row >= len(m[col]) {
		return Size{}
	}
	return m[col][row]
}

// Equal reports whether both matrices hold identical sizes.
func (m Measurements) Equal(other Measurements) bool {
	if len(m) != len(other) {
		return false
	}
	for c := range m {
		if len(m[c]) != len(other[c]) {
			return false
		}
		for r := range m[c] {
			if m[c][r] != other[c][r] {
				return false
			}
		}
	}
	return true
}

// measureCells measures every placed cell under the given column widths.
//
// The first column of a cell decides how it is measured. Cells starting in a
// fit column are measured unconstrained and padded on all sides. Other cells
// are measured at the width of their spanned columns less horizontal
// padding; the recorded size is that full width by the content height plus
// vertical padding. Overlapping cells overwrite earlier ones.
func measureCells(columns []Column, rows []PlacedRow, widths []float64, m Measurer) (Measurements, error) {
	out := NewMeasurements(len(columns), len(rows))
	for _, row := range rows {
		for _, cell := range row.Cells {
			size, err := measureCell(columns, cell, widths, m)
			if err != nil {
				return nil, err
			}
			out[cell.ColRange.Lower][cell.RowRange.Lower] = size
		}
	}
	return out, nil
}

func measureCell(columns []Column, cell PlacedCell, widths []float64, m Measurer) (Size, error) {
	pad := cell.Composed.Padding
	first := columns[cell.ColRange.Lower]

	if first.Sizing.Mode == ColumnFit {
		s, err := measureContent(m, cell, Unconstrained)
		if err != nil {
			return Size{}, err
		}
		return Size{Width: s.Width + pad.Horizontal(), Height: s.Height + pad.Vertical()}, nil
	}

	total := sumRange(widths, cell.ColRange)
	available := total - pad.Horizontal()
	if available < 0 {
		available = 0
	}
	s, err := measureContent(m, cell, MaxWidth(available))
	if err != nil {
		return Size{}, err
	}
	return Size{Width: total, Height: s.Height + pad.Vertical()}, nil
}

func measureContent(m Measurer, cell PlacedCell, c Constraint) (Size, error) {
	if cell.Content == nil || m == nil {
		return Size{}, nil
	}
	name := CellName(cell.ColRange.Lower, cell.RowRange.Lower)
	s, err := m.Measure(cell.Content, c)
	if err != nil {
		return Size{}, fmt.Errorf("measuring cell %s: %w", name, err)
	}
	if !validLength(s.Width) || !validLength(s.Height) {
		return Size{}, fmt.Errorf("cell %s measured %vx%v: %w", name, s.Width, s.Height, ErrInvalidMeasurement)
	}
	return s, nil
}

func validLength(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func sumRange(values []float64, r Range) float64 {
	total := 0.0
	for i := r.Lower; i <= r.Upper && i < len(values); i++ {
		total += values[i]
	}
	return total
}

func sumTo(values []float64, end int) float64 {
	total := 0.0
	for i := 0; i < end && i < len(values); i++ {
		total += values[i]
	}
	return total
}
