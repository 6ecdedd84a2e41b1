package layout

import "tabula/pkg/style"

// Side names one edge of a cell.
type Side int

const (
	SideTop Side = iota
	SideLeading
	SideBottom
	SideTrailing
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideLeading:
		return "leading"
	case SideBottom:
		return "bottom"
	default:
		return "trailing"
	}
}

// BorderSegment is a border line lying exactly on one edge of a cell frame.
// Width is the stroke thickness, centered on the From-To line.
type BorderSegment struct {
	Side  Side
	From  Point
	To    Point
	Width float64
	Color style.Color
}

// CellGeometry is the projected position of a placed cell.
type CellGeometry struct {
	Cell    PlacedCell
	Frame   Rect // spanned columns and rows
	Content Rect // Frame inset by the composed padding
	Borders []BorderSegment
}

// Align returns the top-left point at which content of the given size is
// drawn inside the padded area, according to the cell's alignment.
func (g CellGeometry) Align(content Size) Point {
	fx, fy := g.Cell.Composed.Alignment.Fractions()
	return Point{
		X: g.Content.X + fx*(g.Content.Width-content.Width),
		Y: g.Content.Y + fy*(g.Content.Height-content.Height),
	}
}

// Project turns resolved widths and heights into per-cell rectangles and
// border segments, in the order cells were declared.
func Project(rows []PlacedRow, widths, heights []float64) []CellGeometry {
	out := make([]CellGeometry, 0, countCells(rows))
	for _, row := range rows {
		for _, cell := range row.Cells {
			frame := Rect{
				X:      sumTo(widths, cell.ColRange.Lower),
				Y:      sumTo(heights, cell.RowRange.Lower),
				Width:  sumRange(widths, cell.ColRange),
				Height: sumRange(heights, cell.RowRange),
			}
			out = append(out, CellGeometry{
				Cell:    cell,
				Frame:   frame,
				Content: frame.Inset(cell.Composed.Padding),
				Borders: borderSegments(frame, cell.Composed.Borders),
			})
		}
	}
	return out
}

func borderSegments(frame Rect, b style.ComposedBorders) []BorderSegment {
	var segs []BorderSegment
	if b.Top.Width > 0 {
		segs = append(segs, BorderSegment{Side: SideTop,
			From: Point{frame.X, frame.Y}, To: Point{frame.MaxX(), frame.Y},
			Width: b.Top.Width, Color: b.Top.Color})
	}
	if b.Leading.Width > 0 {
		segs = append(segs, BorderSegment{Side: SideLeading,
			From: Point{frame.X, frame.Y}, To: Point{frame.X, frame.MaxY()},
			Width: b.Leading.Width, Color: b.Leading.Color})
	}
	if b.Bottom.Width > 0 {
		segs = append(segs, BorderSegment{Side: SideBottom,
			From: Point{frame.X, frame.MaxY()}, To: Point{frame.MaxX(), frame.MaxY()},
			Width: b.Bottom.Width, Color: b.Bottom.Color})
	}
	if b.Trailing.Width > 0 {
		segs = append(segs, BorderSegment{Side: SideTrailing,
			From: Point{frame.MaxX(), frame.Y}, To: Point{frame.MaxX(), frame.MaxY()},
			Width: b.Trailing.Width, Color: b.Trailing.Color})
	}
	return segs
}

func countCells(rows []PlacedRow) int {
	n := 0
	for _, row := range rows {
		n += len(row.Cells)
	}
	return n
}
