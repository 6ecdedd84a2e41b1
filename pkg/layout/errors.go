package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGrid is returned for a table with no columns or no rows.
	ErrEmptyGrid = errors.New("table needs at least one column and one row")
	// ErrColumnOverflow is returned when a placed cell would occupy a column
	// past the last declared column.
	ErrColumnOverflow = errors.New("cell overflows the declared columns")
	// ErrRowOverflow is returned when a row span runs past the last row.
	ErrRowOverflow = errors.New("cell overflows the declared rows")
	// ErrInvalidSpan is returned for a column or row span below 1.
	ErrInvalidSpan = errors.New("span must be at least 1")
	// ErrInvalidSizing is returned for negative fixed sizes, factors or ratios.
	ErrInvalidSizing = errors.New("invalid sizing")
	// ErrInvalidWidth is returned by Recompute for a negative or NaN width.
	ErrInvalidWidth = errors.New("available width must be a non-negative number")
	// ErrInvalidMeasurement is returned when a Measurer reports a negative or
	// NaN size.
	ErrInvalidMeasurement = errors.New("invalid measurement")
)

// ConfigError reports a table declaration that cannot be laid out. Row and
// Cell locate the offending declaration; -1 means not applicable.
type ConfigError struct {
	Err    error
	Row    int
	Cell   int
	Column int
	Detail string
}

func (e *ConfigError) Error() string {
	msg := e.Err.Error()
	switch {
	case e.Row >= 0 && e.Cell >= 0:
		msg = fmt.Sprintf("row %d cell %d: %s", e.Row, e.Cell, msg)
	case e.Row >= 0:
		msg = fmt.Sprintf("row %d: %s", e.Row, msg)
	case e.Column >= 0:
		msg = fmt.Sprintf("column %d: %s", e.Column, msg)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

func cellError(err error, row, cell int, detail string) *ConfigError {
	return &ConfigError{Err: err, Row: row, Cell: cell, Column: -1, Detail: detail}
}
