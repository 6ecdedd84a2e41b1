package layout

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabula/pkg/style"
)

// spansDeclaration mirrors the colspan/rowspan demo: a three-column span in
// row 1 and two three-row spans starting in row 2.
func spansDeclaration() ([]Column, []Row) {
	columns := []Column{
		NewColumn(Fit()),
		NewColumn(Proportional(1)),
		NewColumn(Proportional(3)),
		NewColumn(Proportional(1)),
		NewColumn(Fit()),
	}
	c := func() DeclaredCell { return cellOf(10, 10) }
	rows := []Row{
		NewRow(c(), c(), c(), c(), c()),
		NewRow(c(), c().Span(3, 1), c()),
		NewRow(c(), c().Span(1, 3), c(), c().Span(1, 3), c()),
		NewRow(c(), c(), c()),
		NewRow(c(), c(), c()),
		NewRow(c(), c(), c(), c(), c()),
	}
	return columns, rows
}

func TestPlace_SpansPushLaterCells(t *testing.T) {
	columns, rows := spansDeclaration()

	placed, err := Place(columns, rows, style.None)
	require.NoError(t, err)

	want := [][]int{
		{0, 1, 2, 3, 4},
		{0, 1, 4},
		{0, 1, 2, 3, 4},
		{0, 2, 4},
		{0, 2, 4},
		{0, 1, 2, 3, 4},
	}
	if diff := cmp.Diff(want, lowerBounds(placed)); diff != "" {
		t.Errorf("column placement mismatch (-want +got):\n%s", diff)
	}

	g := placed[1].Cells[1]
	assert.Equal(t, Range{1, 3}, g.ColRange)
	assert.Equal(t, Range{1, 1}, g.RowRange)

	j := placed[2].Cells[1]
	assert.Equal(t, Range{1, 1}, j.ColRange)
	assert.Equal(t, Range{2, 4}, j.RowRange)
}

func TestPlace_ColspanShift(t *testing.T) {
	columns := proportionalColumns(5)
	rows := []Row{
		NewRow(cellOf(1, 1), cellOf(1, 1).Span(3, 3), cellOf(1, 1)),
		NewRow(cellOf(1, 1), cellOf(1, 1)),
		NewRow(cellOf(1, 1), cellOf(1, 1)),
	}

	placed, err := Place(columns, rows, style.None)
	require.NoError(t, err)

	assert.Equal(t, 1, placed[0].Cells[1].ColRange.Lower)
	assert.Equal(t, 4, placed[1].Cells[1].ColRange.Lower)
	assert.Equal(t, 4, placed[2].Cells[1].ColRange.Lower)
}

func TestPlace_SkipsByOccupantColSpan(t *testing.T) {
	// A 2×2 cell in the middle of a 4-column grid pushes the second cell of
	// row 1 from column 1 to column 3.
	columns := proportionalColumns(4)
	rows := []Row{
		NewRow(cellOf(1, 1), cellOf(1, 1).Span(2, 2), cellOf(1, 1)),
		NewRow(cellOf(1, 1), cellOf(1, 1)),
	}

	placed, err := Place(columns, rows, style.None)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 3}, {0, 3}}, lowerBounds(placed))
}

func TestPlace_Deterministic(t *testing.T) {
	columns, rows := spansDeclaration()

	first, err := Place(columns, rows, style.None)
	require.NoError(t, err)
	second, err := Place(columns, rows, style.None)
	require.NoError(t, err)

	for r := range first {
		for i := range first[r].Cells {
			assert.Equal(t, first[r].Cells[i].ColRange, second[r].Cells[i].ColRange)
			assert.Equal(t, first[r].Cells[i].RowRange, second[r].Cells[i].RowRange)
		}
	}
}

func TestPlace_DoesNotModifyDeclaration(t *testing.T) {
	columns, rows := spansDeclaration()
	before := rows[2].Cells[1]

	_, err := Place(columns, rows, style.None)
	require.NoError(t, err)

	assert.Equal(t, before, rows[2].Cells[1])
	assert.Len(t, rows[1].Cells, 3)
}

func TestPlace_ComposesWithFirstSpannedColumn(t *testing.T) {
	blue := style.RGB(0, 0, 255)
	columns := []Column{
		NewColumn(Proportional(1)),
		NewColumn(Proportional(1)).WithStyle(style.None.WithBackground(blue)),
		NewColumn(Proportional(1)).WithStyle(style.None.WithBackground(red)),
	}
	rows := []Row{
		NewRow(cellOf(1, 1), cellOf(1, 1).Span(2, 1)).
			WithStyle(style.None.WithPadding(style.EdgeAll(3))),
	}
	table := style.None.WithAlignment(style.Bottom).WithPadding(style.EdgeAll(9))

	placed, err := Place(columns, rows, table)
	require.NoError(t, err)

	spanning := placed[0].Cells[1].Composed
	assert.Equal(t, blue, spanning.Background)
	assert.Equal(t, style.EdgeAll(3), spanning.Padding)
	assert.Equal(t, style.Bottom, spanning.Alignment)

	first := placed[0].Cells[0].Composed
	assert.True(t, first.Background.IsTransparent())
}

func TestPlace_Errors(t *testing.T) {
	tests := []struct {
		name    string
		columns []Column
		rows    []Row
		want    error
		row     int
		cell    int
	}{
		{
			name:    "no columns",
			columns: nil,
			rows:    gridRows(1, 1),
			want:    ErrEmptyGrid,
			row:     -1, cell: -1,
		},
		{
			name:    "no rows",
			columns: proportionalColumns(2),
			want:    ErrEmptyGrid,
			row:     -1, cell: -1,
		},
		{
			name:    "too many cells",
			columns: proportionalColumns(2),
			rows:    gridRows(1, 3),
			want:    ErrColumnOverflow,
			row:     0, cell: 2,
		},
		{
			name:    "column span past the edge",
			columns: proportionalColumns(3),
			rows:    []Row{NewRow(cellOf(1, 1), cellOf(1, 1).Span(3, 1))},
			want:    ErrColumnOverflow,
			row:     0, cell: 1,
		},
		{
			name:    "pushed past the edge by a row span",
			columns: proportionalColumns(2),
			rows: []Row{
				NewRow(cellOf(1, 1), cellOf(1, 1).Span(1, 2)),
				NewRow(cellOf(1, 1), cellOf(1, 1)),
			},
			want: ErrColumnOverflow,
			row:  1, cell: 1,
		},
		{
			name:    "row span past the last row",
			columns: proportionalColumns(2),
			rows:    []Row{NewRow(cellOf(1, 1).Span(1, 2))},
			want:    ErrRowOverflow,
			row:     0, cell: 0,
		},
		{
			name:    "zero span",
			columns: proportionalColumns(2),
			rows:    []Row{NewRow(DeclaredCell{ColSpan: 0, RowSpan: 1})},
			want:    ErrInvalidSpan,
			row:     0, cell: 0,
		},
		{
			name:    "negative fixed width",
			columns: []Column{NewColumn(Fixed(-1))},
			rows:    gridRows(1, 1),
			want:    ErrInvalidSizing,
			row:     -1, cell: -1,
		},
		{
			name:    "negative row ratio",
			columns: proportionalColumns(1),
			rows:    []Row{NewRow(cellOf(1, 1)).WithSizing(RatioOfColumn(-2, 0))},
			want:    ErrInvalidSizing,
			row:     0, cell: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Place(tt.columns, tt.rows, style.None)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.row, cfgErr.Row)
			assert.Equal(t, tt.cell, cfgErr.Cell)
		})
	}
}

func TestPlace_RatioToMissingColumnIsAccepted(t *testing.T) {
	rows := []Row{NewRow(cellOf(1, 1)).WithSizing(RatioOfColumn(1, 7))}
	_, err := Place(proportionalColumns(1), rows, style.None)
	assert.NoError(t, err)
}

func TestConfigError_Message(t *testing.T) {
	err := cellError(ErrColumnOverflow, 2, 1, "needs columns 4..5, table has 5")
	assert.Equal(t, "row 2 cell 1: cell overflows the declared columns (needs columns 4..5, table has 5)", err.Error())

	colErr := &ConfigError{Err: ErrInvalidSizing, Row: -1, Cell: -1, Column: 3}
	assert.Equal(t, "column 3: invalid sizing", colErr.Error())
}
