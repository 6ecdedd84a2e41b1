// Package layout computes grid geometry for tables of columns, rows and
// spanning cells.
//
// A table is built once from its declaration. Place assigns every cell its
// column and row range and composes its style; Recompute then measures the
// cells through a Measurer, resolves column widths and row heights for the
// available width and projects each cell to a rectangle with border
// segments. Columns are Fixed, Fit or Proportional; rows are fit, fixed or a
// ratio of a column's width.
//
// Coordinates are table-local with the origin at the top-left corner and y
// growing downward.
package layout
