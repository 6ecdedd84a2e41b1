package layout

// fitWidth is the widest size recorded in column col.
func fitWidth(m Measurements, col int) float64 {
	widest := 0.0
	if col < 0 || col >= len(m) {
		return widest
	}
	for _, s := range m[col] {
		if s.Width > widest {
			widest = s.Width
		}
	}
	return widest
}

// ResolveColumnWidths computes one width per column for an available width.
//
// Fixed columns get their width and fit columns their widest measurement.
// What remains of available is shared between proportional columns by
// factor. A negative remainder is clamped to zero and a zero factor sum
// gives every proportional column zero width.
func ResolveColumnWidths(columns []Column, m Measurements, available float64) []float64 {
	fixedAndFit := 0.0
	factors := 0.0
	for x, col := range columns {
		switch col.Sizing.Mode {
		case ColumnFixed:
			fixedAndFit += col.Sizing.Width
		case ColumnFit:
			fixedAndFit += fitWidth(m, x)
		}
		factors += col.Sizing.proportionalFactor()
	}

	remaining := available - fixedAndFit
	if remaining < 0 {
		remaining = 0
	}
	unit := 0.0
	if factors > 0 {
		unit = remaining / factors
	}

	widths := make([]float64, len(columns))
	for x, col := range columns {
		switch col.Sizing.Mode {
		case ColumnFixed:
			widths[x] = col.Sizing.Width
		case ColumnFit:
			widths[x] = fitWidth(m, x)
		default:
			widths[x] = col.Sizing.Factor * unit
		}
	}
	return widths
}

// ResolveRowHeights computes one height per row. Ratio rows referencing a
// column outside widths fall back to content fit.
func ResolveRowHeights(rows []PlacedRow, m Measurements, widths []float64) []float64 {
	heights := make([]float64, len(rows))
	for y, row := range rows {
		switch s := row.Sizing; {
		case s.Mode == RowFixed:
			heights[y] = s.Height
		case s.Mode == RowRatio && s.Column >= 0 && s.Column < len(widths):
			heights[y] = s.Ratio * widths[s.Column]
		default:
			tallest := 0.0
			for col := range m {
				if h := m.At(col, y).Height; h > tallest {
					tallest = h
				}
			}
			heights[y] = tallest
		}
	}
	return heights
}
