package decl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabula/pkg/layout"
	"tabula/pkg/style"
	"tabula/pkg/text"
)

const spansJSON = `{
  "style": {"padding": {"all": 2}, "border": {"all": {"width": 1}}},
  "columns": [
    {"sizing": {"mode": "fit"}},
    {"sizing": {"mode": "fixed", "width": 40}},
    {"sizing": {"mode": "proportional", "factor": 2}, "style": {"background": "#eee"}},
    {}
  ],
  "rows": [
    {"cells": [{"text": "Title", "colSpan": 4, "bold": true, "fontSize": 20}]},
    {"sizing": {"mode": "ratio", "ratio": 0.5, "column": 1},
     "style": {"alignment": "topLeading"},
     "cells": [{"text": "a", "rowSpan": 2}, {"text": "b"}, {"text": "c", "color": "red"}, {"text": "d"}]},
    {"sizing": {"mode": "fixed", "height": 30},
     "cells": [{"text": "e", "style": {"padding": {"h": 5, "top": 1}}}, {"text": "f"}, {"text": "g"}]}
  ]
}`

func TestParseJSON(t *testing.T) {
	d, err := ParseJSON([]byte(spansJSON))
	require.NoError(t, err)

	require.Len(t, d.Columns, 4)
	require.Len(t, d.Rows, 3)
	assert.Equal(t, "fit", d.Columns[0].Sizing.Mode)
	assert.Nil(t, d.Columns[3].Sizing)
	assert.Equal(t, 4, d.Rows[0].Cells[0].ColSpan)
}

func TestLayoutColumns(t *testing.T) {
	d, err := ParseJSON([]byte(spansJSON))
	require.NoError(t, err)

	cols := d.LayoutColumns()
	assert.Equal(t, layout.Fit(), cols[0].Sizing)
	assert.Equal(t, layout.Fixed(40), cols[1].Sizing)
	assert.Equal(t, layout.Proportional(2), cols[2].Sizing)
	assert.Equal(t, layout.Proportional(1), cols[3].Sizing)
	require.NotNil(t, cols[2].Style.Background)
	assert.Equal(t, style.RGB(0xee, 0xee, 0xee), *cols[2].Style.Background)
}

func TestLayoutRows(t *testing.T) {
	d, err := ParseJSON([]byte(spansJSON))
	require.NoError(t, err)

	rows, err := d.LayoutRows()
	require.NoError(t, err)
	assert.Equal(t, layout.FitRow(), rows[0].Sizing)
	assert.Equal(t, layout.RatioOfColumn(0.5, 1), rows[1].Sizing)
	assert.Equal(t, layout.FixedRow(30), rows[2].Sizing)

	title := rows[0].Cells[0]
	assert.Equal(t, 4, title.ColSpan)
	assert.Equal(t, 1, title.RowSpan)
	assert.Equal(t, text.Content{Text: "Title", Size: 20, Bold: true, Color: style.Black}, title.Content)

	c := rows[1].Cells[2].Content.(text.Content)
	assert.Equal(t, style.RGB(255, 0, 0), c.Color)
	assert.Equal(t, text.DefaultFontSize, c.Size)

	e := rows[2].Cells[0]
	require.NotNil(t, e.Style.Padding)
	assert.Equal(t, style.EdgeInsets(1, 5, 0, 5), *e.Style.Padding)
}

func TestBuildPlacesAndComposes(t *testing.T) {
	d, err := ParseJSON([]byte(spansJSON))
	require.NoError(t, err)

	table, err := d.Build(text.NewMeasurer(text.FontConfig{}))
	require.NoError(t, err)

	rows := table.Rows()
	// "a" spans two rows, so row 3 starts at column 1.
	assert.Equal(t, layout.Range{Lower: 1, Upper: 1}, rows[2].Cells[0].ColRange)

	b := rows[1].Cells[1].Composed
	assert.Equal(t, style.TopLeading, b.Alignment)
	assert.Equal(t, style.EdgeAll(2), b.Padding)
	assert.Equal(t, style.BorderSide{Color: style.Black, Width: 1}, b.Borders.Top)

	cBg := rows[1].Cells[2].Composed.Background
	assert.Equal(t, style.RGB(0xee, 0xee, 0xee), cBg)

	res, err := table.Recompute(300)
	require.NoError(t, err)
	assert.InDelta(t, 300, res.Size.Width, 1e-9)
	assert.Equal(t, 20.0, res.RowHeights[1])
	assert.Equal(t, 30.0, res.RowHeights[2])
}

func TestBuildReportsPlacementError(t *testing.T) {
	d, err := ParseJSON([]byte(`{
	  "columns": [{}, {}],
	  "rows": [{"cells": [{"text": "x", "colSpan": 3}]}]
	}`))
	require.NoError(t, err)

	_, err = d.Build(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, layout.ErrColumnOverflow))
}

func TestParseJSONRejectsUnknownFields(t *testing.T) {
	_, err := ParseJSON([]byte(`{"columns": [{}], "rows": [{"cells": [{"txt": "x"}]}]}`))
	assert.Error(t, err)
}

func TestParseJSONSyntaxError(t *testing.T) {
	_, err := ParseJSON([]byte(`{"columns": [`))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidDeclaration))
}

func TestBorderSidesOverrideAll(t *testing.T) {
	d, err := ParseJSON([]byte(`{
	  "columns": [{}],
	  "rows": [{"cells": [{"style": {"border": {"all": {"color": "blue", "width": 1}, "bottom": {"width": 3}}}}]}]
	}`))
	require.NoError(t, err)

	b := d.Rows[0].Cells[0].Style.cellStyle().Borders
	require.NotNil(t, b.Top)
	require.NotNil(t, b.Bottom)
	assert.Equal(t, style.BorderSide{Color: style.RGB(0, 0, 255), Width: 1}, *b.Top)
	assert.Equal(t, style.BorderSide{Color: style.Black, Width: 3}, *b.Bottom)
}
