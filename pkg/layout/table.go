package layout

import (
	"fmt"

	"go.uber.org/zap"

	"tabula/pkg/style"
)

// Change names an input of the layout that the host observed changing.
type Change uint8

const (
	// ChangeWidth means the available container width changed.
	ChangeWidth Change = 1 << iota
	// ChangeContent means some cell content, and so its measurement, changed.
	ChangeContent
)

// MaxPasses bounds the measure/resolve passes of one Recompute call: the
// initial pass plus a single fix-up pass when column widths moved.
const MaxPasses = 2

// Result is the geometry of one layout pass. A fresh Result is returned
// by every Recompute that does work; callers may keep it.
type Result struct {
	Width        float64 // available width the pass ran with
	ColumnWidths []float64
	RowHeights   []float64
	Measured     Measurements
	Cells        []CellGeometry
	Size         Size // extent of the whole grid
	Passes       int  // measure/resolve passes used, at most MaxPasses
}

// Option configures a Table.
type Option func(*Table)

// WithStyle sets the table-level default cell style.
func WithStyle(s style.CellStyle) Option {
	return func(t *Table) { t.style = s }
}

// WithLogger sets the logger used for pass summaries and debug reports.
func WithLogger(l *zap.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithDebug turns on the per-pass size report.
func WithDebug(on bool) Option {
	return func(t *Table) { t.debug = on }
}

// Table owns a placed grid and the latest geometry computed for it. The
// grid topology is fixed at construction; only geometry is recomputed.
// A Table is not safe for concurrent use.
type Table struct {
	columns  []Column
	rows     []PlacedRow
	style    style.CellStyle
	measurer Measurer
	logger   *zap.Logger
	debug    bool

	dirty  Change
	result *Result
}

// NewTable places rows over columns and returns a table ready for
// Recompute. Measurement goes through m; a nil m measures all content as
// zero-sized.
func NewTable(columns []Column, rows []Row, m Measurer, opts ...Option) (*Table, error) {
	t := &Table{
		columns:  append([]Column(nil), columns...),
		measurer: m,
		logger:   zap.NewNop(),
		dirty:    ChangeWidth | ChangeContent,
	}
	for _, opt := range opts {
		opt(t)
	}

	placed, err := Place(t.columns, rows, t.style)
	if err != nil {
		return nil, fmt.Errorf("placing cells: %w", err)
	}
	t.rows = placed
	return t, nil
}

// Columns returns the table's columns.
func (t *Table) Columns() []Column { return append([]Column(nil), t.columns...) }

// Rows returns the placed rows.
func (t *Table) Rows() []PlacedRow { return t.rows }

// Result returns the latest successful layout, or nil before the first.
func (t *Table) Result() *Result { return t.result }

// Invalidate records that an input changed. The next Recompute runs even
// if the width is the same as last time.
func (t *Table) Invalidate(c Change) { t.dirty |= c }

// Dirty reports the changes recorded since the last successful Recompute.
func (t *Table) Dirty() Change { return t.dirty }

// Recompute lays the table out for the available width.
//
// Cells are measured under the current column widths, then widths and
// heights are resolved. When that moves any column width, the cells whose
// measurement depends on the moved columns are measured again before row
// heights are resolved. Fit column widths come from unconstrained
// measurements only, so one fix-up pass always settles the layout.
//
// On error the previous Result is kept.
func (t *Table) Recompute(width float64) (*Result, error) {
	if !validLength(width) {
		return nil, fmt.Errorf("recompute with width %v: %w", width, ErrInvalidWidth)
	}
	if t.result != nil && t.dirty == 0 && t.result.Width == width {
		return t.result, nil
	}

	widths := make([]float64, len(t.columns))
	if t.result != nil {
		copy(widths, t.result.ColumnWidths)
	}

	measured, err := measureCells(t.columns, t.rows, widths, t.measurer)
	if err != nil {
		return nil, fmt.Errorf("recompute layout: %w", err)
	}
	resolved := ResolveColumnWidths(t.columns, measured, width)
	passes := 1

	if !equalWidths(resolved, widths) {
		// The fix-up pass never remeasures cells starting in fit columns, and
		// only those feed column widths, so resolving again would give back
		// resolved. Heights still pick up the new measurements.
		measured, err = t.remeasure(measured, widths, resolved)
		if err != nil {
			return nil, fmt.Errorf("recompute layout: %w", err)
		}
		passes++
	}

	heights := ResolveRowHeights(t.rows, measured, resolved)
	res := &Result{
		Width:        width,
		ColumnWidths: resolved,
		RowHeights:   heights,
		Measured:     measured,
		Cells:        Project(t.rows, resolved, heights),
		Size:         Size{Width: sumTo(resolved, len(resolved)), Height: sumTo(heights, len(heights))},
		Passes:       passes,
	}

	t.result = res
	t.dirty = 0

	t.logger.Debug("layout recomputed",
		zap.Float64("width", width),
		zap.Int("passes", passes),
		zap.Float64("height", res.Size.Height))
	if t.debug {
		for _, line := range Report(res) {
			t.logger.Info(line)
		}
	}
	return res, nil
}

// remeasure measures again the cells affected by the move from old to
// current widths: cells not starting in a fit column whose span covers a
// column that changed. All other measurements are carried over.
func (t *Table) remeasure(prev Measurements, old, current []float64) (Measurements, error) {
	out := NewMeasurements(len(t.columns), len(t.rows))
	for c := range prev {
		copy(out[c], prev[c])
	}
	for _, row := range t.rows {
		for _, cell := range row.Cells {
			if t.columns[cell.ColRange.Lower].Sizing.Mode == ColumnFit {
				continue
			}
			if !changedWithin(old, current, cell.ColRange) {
				continue
			}
			size, err := measureCell(t.columns, cell, current, t.measurer)
			if err != nil {
				return nil, err
			}
			out[cell.ColRange.Lower][cell.RowRange.Lower] = size
		}
	}
	return out, nil
}

func changedWithin(old, current []float64, r Range) bool {
	for i := r.Lower; i <= r.Upper; i++ {
		if old[i] != current[i] {
			return true
		}
	}
	return false
}

func equalWidths(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
