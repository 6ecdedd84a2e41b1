package layout

import "tabula/pkg/style"

// Builder collects columns and rows in declaration order.
type Builder struct {
	columns []Column
	rows    []Row
	style   style.CellStyle
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Style sets the table-level default cell style.
func (b *Builder) Style(s style.CellStyle) *Builder {
	b.style = s
	return b
}

// AddColumn appends columns.
func (b *Builder) AddColumn(cols ...Column) *Builder {
	b.columns = append(b.columns, cols...)
	return b
}

// AddColumns appends n copies of col.
func (b *Builder) AddColumns(n int, col Column) *Builder {
	for i := 0; i < n; i++ {
		b.columns = append(b.columns, col)
	}
	return b
}

// AddRow appends rows.
func (b *Builder) AddRow(rows ...Row) *Builder {
	b.rows = append(b.rows, rows...)
	return b
}

// Columns returns the columns collected so far.
func (b *Builder) Columns() []Column { return b.columns }

// Rows returns the rows collected so far.
func (b *Builder) Rows() []Row { return b.rows }

// Build places the collected rows and returns the table. The builder's
// style is applied before opts, so WithStyle in opts overrides it.
func (b *Builder) Build(m Measurer, opts ...Option) (*Table, error) {
	all := append([]Option{WithStyle(b.style)}, opts...)
	return NewTable(b.columns, b.rows, m, all...)
}

// WithSizing returns a copy of the row with its sizing replaced.
func (r Row) WithSizing(s RowSizing) Row {
	r.Sizing = s
	return r
}

// WithStyle returns a copy of the row with its default cell style replaced.
func (r Row) WithStyle(s style.CellStyle) Row {
	r.Style = s
	return r
}

// Add returns a copy of the row with cells appended.
func (r Row) Add(cells ...DeclaredCell) Row {
	r.Cells = append(append([]DeclaredCell(nil), r.Cells...), cells...)
	return r
}

// WithStyle returns a copy of the column with its default cell style replaced.
func (c Column) WithStyle(s style.CellStyle) Column {
	c.Style = s
	return c
}
