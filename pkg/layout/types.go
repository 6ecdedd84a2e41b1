package layout

import "tabula/pkg/style"

// Size represents dimensions (width and height)
type Size struct {
	Width  float64
	Height float64
}

// Point represents a 2D coordinate in table-local space.
type Point struct {
	X float64
	Y float64
}

// Rect represents a rectangular region. The origin is the top-left corner,
// y grows downward.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// MaxX returns the x coordinate of the trailing edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the y coordinate of the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Inset shrinks the rect by the given edges. Width and height never go
// below zero.
func (r Rect) Inset(e style.Edges) Rect {
	out := Rect{
		X:      r.X + e.Leading,
		Y:      r.Y + e.Top,
		Width:  r.Width - e.Horizontal(),
		Height: r.Height - e.Vertical(),
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Range is an inclusive range of grid indices.
type Range struct {
	Lower int
	Upper int
}

// Span returns a Range starting at start covering n indices.
func Span(start, n int) Range {
	return Range{Lower: start, Upper: start + n - 1}
}

// Len returns the number of indices covered.
func (r Range) Len() int { return r.Upper - r.Lower + 1 }

// Contains reports whether i lies within the range.
func (r Range) Contains(i int) bool { return i >= r.Lower && i <= r.Upper }

// ColumnMode selects how a column's width is determined.
type ColumnMode int

const (
	ColumnProportional ColumnMode = iota
	ColumnFit
	ColumnFixed
)

func (m ColumnMode) String() string {
	switch m {
	case ColumnFit:
		return "fit"
	case ColumnFixed:
		return "fixed"
	default:
		return "proportional"
	}
}

// ColumnSizing is a column sizing strategy. The zero value is not useful on
// its own; build one with Fixed, Fit or Proportional.
type ColumnSizing struct {
	Mode   ColumnMode
	Width  float64 // ColumnFixed
	Factor float64 // ColumnProportional
}

// Fixed sizes a column to exactly width.
func Fixed(width float64) ColumnSizing {
	return ColumnSizing{Mode: ColumnFixed, Width: width}
}

// Fit sizes a column to its widest measured cell.
func Fit() ColumnSizing {
	return ColumnSizing{Mode: ColumnFit}
}

// Proportional gives a column factor shares of the width left after fixed
// and fit columns.
func Proportional(factor float64) ColumnSizing {
	return ColumnSizing{Mode: ColumnProportional, Factor: factor}
}

// proportionalFactor returns the column's share weight, zero for
// non-proportional columns.
func (s ColumnSizing) proportionalFactor() float64 {
	if s.Mode == ColumnProportional {
		return s.Factor
	}
	return 0
}

// RowMode selects how a row's height is determined.
type RowMode int

const (
	RowFit RowMode = iota
	RowFixed
	RowRatio
)

func (m RowMode) String() string {
	switch m {
	case RowFixed:
		return "fixed"
	case RowRatio:
		return "ratio"
	default:
		return "fit"
	}
}

// RowSizing is a row sizing strategy. The zero value is RowFit.
type RowSizing struct {
	Mode   RowMode
	Height float64 // RowFixed
	Ratio  float64 // RowRatio
	Column int     // RowRatio
}

// FitRow sizes a row to its tallest measured cell.
func FitRow() RowSizing {
	return RowSizing{Mode: RowFit}
}

// FixedRow sizes a row to exactly height.
func FixedRow(height float64) RowSizing {
	return RowSizing{Mode: RowFixed, Height: height}
}

// RatioOfColumn sizes a row to ratio times the resolved width of column.
func RatioOfColumn(ratio float64, column int) RowSizing {
	return RowSizing{Mode: RowRatio, Ratio: ratio, Column: column}
}

// Content is an opaque handle to something a Measurer can size and a
// renderer can draw. The layout engine never inspects it.
type Content interface{}

// Column is a grid column. Its index in the table is its identity.
type Column struct {
	Sizing ColumnSizing
	Style  style.CellStyle
}

// NewColumn returns a column with default style.
func NewColumn(sizing ColumnSizing) Column {
	return Column{Sizing: sizing}
}

// DeclaredCell is a cell as authored, before placement.
type DeclaredCell struct {
	ColSpan int
	RowSpan int
	Style   style.CellStyle
	Content Content
}

// NewCell returns a 1×1 cell holding content.
func NewCell(content Content) DeclaredCell {
	return DeclaredCell{ColSpan: 1, RowSpan: 1, Content: content}
}

// Span returns a copy of the cell spanning cols columns and rows rows.
func (c DeclaredCell) Span(cols, rows int) DeclaredCell {
	c.ColSpan = cols
	c.RowSpan = rows
	return c
}

// WithStyle returns a copy of the cell with its declared style replaced.
func (c DeclaredCell) WithStyle(s style.CellStyle) DeclaredCell {
	c.Style = s
	return c
}

// Row is a grid row as declared, holding un-placed cells.
type Row struct {
	Sizing RowSizing
	Style  style.CellStyle
	Cells  []DeclaredCell
}

// NewRow returns a fit row holding cells.
func NewRow(cells ...DeclaredCell) Row {
	return Row{Cells: cells}
}

// PlacedCell is a DeclaredCell with its grid occupancy and composed style
// resolved. Produced once by Place and never changed afterwards.
type PlacedCell struct {
	DeclaredCell
	ColRange Range
	RowRange Range
	Composed style.ComposedStyle
}

// PlacedRow is a row whose cells have been placed.
type PlacedRow struct {
	Sizing RowSizing
	Style  style.CellStyle
	Cells  []PlacedCell
}
