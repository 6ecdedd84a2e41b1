package layout

import (
	"fmt"
	"math"

	"tabula/pkg/style"
)

// occupancy records, for grid positions in rows below a spanning cell's
// first row, the column span of the cell that claims them.
type occupancy struct {
	cols  int
	spans []int // row-major, 0 = free
}

func newOccupancy(cols, rows int) *occupancy {
	return &occupancy{cols: cols, spans: make([]int, cols*rows)}
}

func (o *occupancy) at(col, row int) (int, bool) {
	if col < 0 || col >= o.cols {
		return 0, false
	}
	span := o.spans[row*o.cols+col]
	return span, span > 0
}

// claim marks every position of colRange in rows (first, last] as taken by
// a cell of the given column span. Later claims overwrite earlier ones.
func (o *occupancy) claim(colRange, rowRange Range, colSpan int) {
	for r := rowRange.Lower + 1; r <= rowRange.Upper; r++ {
		for c := colRange.Lower; c <= colRange.Upper; c++ {
			o.spans[r*o.cols+c] = colSpan
		}
	}
}

// Place assigns every declared cell its column and row range and composes
// its style from the cell, row, column and table layers.
//
// Rows are processed in order with a cursor starting at column 0. Before a
// cell is placed the cursor skips over columns still covered by row spans of
// cells from earlier rows, advancing by the spanning cell's column span each
// time. The declared cells are never modified; placed copies are returned.
func Place(columns []Column, rows []Row, tableStyle style.CellStyle) ([]PlacedRow, error) {
	if len(columns) == 0 || len(rows) == 0 {
		return nil, &ConfigError{Err: ErrEmptyGrid, Row: -1, Cell: -1, Column: -1,
			Detail: fmt.Sprintf("%d columns, %d rows", len(columns), len(rows))}
	}
	for i, col := range columns {
		if problem := columnSizingProblem(col.Sizing); problem != "" {
			return nil, &ConfigError{Err: ErrInvalidSizing, Row: -1, Cell: -1, Column: i, Detail: problem}
		}
	}

	claims := newOccupancy(len(columns), len(rows))
	placed := make([]PlacedRow, len(rows))

	for r, row := range rows {
		if problem := rowSizingProblem(row.Sizing); problem != "" {
			return nil, &ConfigError{Err: ErrInvalidSizing, Row: r, Cell: -1, Column: -1, Detail: problem}
		}

		cursor := 0
		cells := make([]PlacedCell, 0, len(row.Cells))
		for i, cell := range row.Cells {
			if cell.ColSpan < 1 || cell.RowSpan < 1 {
				return nil, cellError(ErrInvalidSpan, r, i,
					fmt.Sprintf("colSpan %d, rowSpan %d", cell.ColSpan, cell.RowSpan))
			}

			for {
				span, taken := claims.at(cursor, r)
				if !taken {
					break
				}
				cursor += span
			}

			colRange := Span(cursor, cell.ColSpan)
			rowRange := Span(r, cell.RowSpan)
			if colRange.Upper >= len(columns) {
				return nil, cellError(ErrColumnOverflow, r, i,
					fmt.Sprintf("needs columns %d..%d, table has %d", colRange.Lower, colRange.Upper, len(columns)))
			}
			if rowRange.Upper >= len(rows) {
				return nil, cellError(ErrRowOverflow, r, i,
					fmt.Sprintf("needs rows %d..%d, table has %d", rowRange.Lower, rowRange.Upper, len(rows)))
			}
			claims.claim(colRange, rowRange, cell.ColSpan)

			cells = append(cells, PlacedCell{
				DeclaredCell: cell,
				ColRange:     colRange,
				RowRange:     rowRange,
				Composed:     style.Compose(cell.Style, row.Style, columns[colRange.Lower].Style, tableStyle),
			})
			cursor += cell.ColSpan
		}

		placed[r] = PlacedRow{Sizing: row.Sizing, Style: row.Style, Cells: cells}
	}

	return placed, nil
}

// columnSizingProblem describes why s is invalid, or returns "".
func columnSizingProblem(s ColumnSizing) string {
	switch s.Mode {
	case ColumnFixed:
		if s.Width < 0 || math.IsNaN(s.Width) {
			return fmt.Sprintf("fixed width %v", s.Width)
		}
	case ColumnProportional:
		if s.Factor < 0 || math.IsNaN(s.Factor) {
			return fmt.Sprintf("proportional factor %v", s.Factor)
		}
	case ColumnFit:
	default:
		return fmt.Sprintf("unknown column mode %d", int(s.Mode))
	}
	return ""
}

// rowSizingProblem describes why s is invalid, or returns "". An out-of-range ratio column is
// not an error; it falls back to content fit at sizing time.
func rowSizingProblem(s RowSizing) string {
	switch s.Mode {
	case RowFixed:
		if s.Height < 0 || math.IsNaN(s.Height) {
			return fmt.Sprintf("fixed height %v", s.Height)
		}
	case RowRatio:
		if s.Ratio < 0 || math.IsNaN(s.Ratio) {
			return fmt.Sprintf("ratio %v", s.Ratio)
		}
	case RowFit:
	default:
		return fmt.Sprintf("unknown row mode %d", int(s.Mode))
	}
	return ""
}
