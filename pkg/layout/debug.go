package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// columnLetters converts a 0-based column index to spreadsheet letters:
// 0 → A, 25 → Z, 26 → AA.
func columnLetters(col int) string {
	if col < 26 {
		return string(rune('A' + col))
	}
	return columnLetters(col/26-1) + string(rune('A'+col%26))
}

// CellName returns the A1-style name of a grid position.
func CellName(col, row int) string {
	return columnLetters(col) + strconv.Itoa(row+1)
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func joinDecimals(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = oneDecimal(v)
	}
	return strings.Join(parts, " ; ")
}

// Report describes a layout pass: the measured size of every cell followed
// by the resolved column widths and row heights.
func Report(res *Result) []string {
	lines := make([]string, 0, len(res.Cells)+2)
	for _, g := range res.Cells {
		cr, rr := g.Cell.ColRange, g.Cell.RowRange
		size := res.Measured.At(cr.Lower, rr.Lower)
		name := CellName(cr.Lower, rr.Lower)
		if cr.Upper > cr.Lower || rr.Upper > rr.Lower {
			name += "→" + CellName(cr.Upper, rr.Upper)
		}
		lines = append(lines, fmt.Sprintf("Cell %s: size = %s × %s", name, oneDecimal(size.Width), oneDecimal(size.Height)))
	}
	lines = append(lines,
		"Column widths: "+joinDecimals(res.ColumnWidths),
		"Row heights: "+joinDecimals(res.RowHeights),
	)
	return lines
}
