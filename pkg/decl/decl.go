// Package decl loads table declarations from JSON documents and JavaScript
// scripts and turns them into layout tables of text and image cells.
//
// A declaration lists columns, then rows of cells in reading order:
//
//	{
//	  "style":   {"padding": {"all": 4}, "border": {"all": {"color": "gray", "width": 1}}},
//	  "columns": [{"sizing": {"mode": "fit"}}, {"sizing": {"mode": "proportional", "factor": 2}}],
//	  "rows": [
//	    {"cells": [{"text": "Title", "colSpan": 2, "bold": true}]},
//	    {"sizing": {"mode": "ratio", "ratio": 1, "column": 0}, "cells": [{"text": "a"}, {"text": "b"}]}
//	  ]
//	}
package decl

import (
	"fmt"

	"tabula/pkg/images"
	"tabula/pkg/layout"
	"tabula/pkg/style"
	"tabula/pkg/text"
)

// Declaration is a whole table.
type Declaration struct {
	Style   *Style   `json:"style,omitempty" validate:"omitempty"`
	Columns []Column `json:"columns" validate:"required,min=1,dive"`
	Rows    []Row    `json:"rows" validate:"required,min=1,dive"`

	// Images loads image cells. Nil accepts data URIs only.
	Images *images.Loader `json:"-" validate:"-"`
}

// Column declares one grid column. A missing sizing is proportional with
// factor 1.
type Column struct {
	Sizing *ColumnSizing `json:"sizing,omitempty" validate:"omitempty"`
	Style  *Style        `json:"style,omitempty" validate:"omitempty"`
}

type ColumnSizing struct {
	Mode   string   `json:"mode" validate:"omitempty,oneof=fixed fit proportional"`
	Width  float64  `json:"width,omitempty" validate:"gte=0"`
	Factor *float64 `json:"factor,omitempty" validate:"omitempty,gte=0"`
}

// Row declares a row and its cells. A missing sizing fits the content.
type Row struct {
	Sizing *RowSizing `json:"sizing,omitempty" validate:"omitempty"`
	Style  *Style     `json:"style,omitempty" validate:"omitempty"`
	Cells  []Cell     `json:"cells" validate:"dive"`
}

type RowSizing struct {
	Mode   string  `json:"mode" validate:"omitempty,oneof=fit fixed ratio"`
	Height float64 `json:"height,omitempty" validate:"gte=0"`
	Ratio  float64 `json:"ratio,omitempty" validate:"gte=0"`
	Column int     `json:"column,omitempty" validate:"gte=0"`
}

// Cell is a text cell, or an image cell when Image is set. Zero spans mean
// 1. Width and Height size an image; a single one keeps its aspect ratio.
type Cell struct {
	Text     string  `json:"text"`
	Image    string  `json:"image,omitempty" validate:"omitempty,excluded_with=Text"`
	Width    float64 `json:"width,omitempty" validate:"gte=0"`
	Height   float64 `json:"height,omitempty" validate:"gte=0"`
	ColSpan  int     `json:"colSpan,omitempty" validate:"omitempty,gte=1"`
	RowSpan  int     `json:"rowSpan,omitempty" validate:"omitempty,gte=1"`
	FontSize float64 `json:"fontSize,omitempty" validate:"gte=0"`
	Bold     bool    `json:"bold,omitempty"`
	Color    string  `json:"color,omitempty" validate:"omitempty,color"`
	Style    *Style  `json:"style,omitempty" validate:"omitempty"`
}

// Style mirrors style.CellStyle with string colors and alignment names.
type Style struct {
	Alignment  string   `json:"alignment,omitempty" validate:"omitempty,alignment"`
	Padding    *Padding `json:"padding,omitempty" validate:"omitempty"`
	Background string   `json:"background,omitempty" validate:"omitempty,color"`
	Border     *Border  `json:"border,omitempty" validate:"omitempty"`
}

// Padding sets edges from shorthands, then from individual sides: all,
// then h and v, then top, leading, bottom, trailing.
type Padding struct {
	All      *float64 `json:"all,omitempty" validate:"omitempty,gte=0"`
	H        *float64 `json:"h,omitempty" validate:"omitempty,gte=0"`
	V        *float64 `json:"v,omitempty" validate:"omitempty,gte=0"`
	Top      *float64 `json:"top,omitempty" validate:"omitempty,gte=0"`
	Leading  *float64 `json:"leading,omitempty" validate:"omitempty,gte=0"`
	Bottom   *float64 `json:"bottom,omitempty" validate:"omitempty,gte=0"`
	Trailing *float64 `json:"trailing,omitempty" validate:"omitempty,gte=0"`
}

// Border sets sides from the all shorthand, then from individual sides.
type Border struct {
	All      *BorderSide `json:"all,omitempty" validate:"omitempty"`
	Top      *BorderSide `json:"top,omitempty" validate:"omitempty"`
	Leading  *BorderSide `json:"leading,omitempty" validate:"omitempty"`
	Bottom   *BorderSide `json:"bottom,omitempty" validate:"omitempty"`
	Trailing *BorderSide `json:"trailing,omitempty" validate:"omitempty"`
}

type BorderSide struct {
	Color string  `json:"color,omitempty" validate:"omitempty,color"`
	Width float64 `json:"width" validate:"gte=0"`
}

// Build validates d and constructs a table measuring through m.
func (d *Declaration) Build(m layout.Measurer, opts ...layout.Option) (*layout.Table, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}
	rows, err := d.LayoutRows()
	if err != nil {
		return nil, err
	}
	opts = append([]layout.Option{layout.WithStyle(d.Style.cellStyle())}, opts...)
	return layout.NewTable(d.LayoutColumns(), rows, m, opts...)
}

// LayoutColumns converts the declared columns.
func (d *Declaration) LayoutColumns() []layout.Column {
	out := make([]layout.Column, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = layout.NewColumn(c.Sizing.sizing()).WithStyle(c.Style.cellStyle())
	}
	return out
}

// LayoutRows converts the declared rows, loading image cells. Cell
// content is text.Content or images.Content.
func (d *Declaration) LayoutRows() ([]layout.Row, error) {
	loader := d.Images
	if loader == nil {
		loader = images.NewLoader("", false)
	}
	out := make([]layout.Row, len(d.Rows))
	for i, r := range d.Rows {
		cells := make([]layout.DeclaredCell, len(r.Cells))
		for j, c := range r.Cells {
			cell, err := c.declared(loader)
			if err != nil {
				return nil, fmt.Errorf("row %d cell %d: %w", i, j, err)
			}
			cells[j] = cell
		}
		out[i] = layout.NewRow(cells...).
			WithSizing(r.Sizing.sizing()).
			WithStyle(r.Style.cellStyle())
	}
	return out, nil
}

func (s *ColumnSizing) sizing() layout.ColumnSizing {
	if s == nil {
		return layout.Proportional(1)
	}
	switch s.Mode {
	case "fixed":
		return layout.Fixed(s.Width)
	case "fit":
		return layout.Fit()
	default:
		factor := 1.0
		if s.Factor != nil {
			factor = *s.Factor
		}
		return layout.Proportional(factor)
	}
}

func (s *RowSizing) sizing() layout.RowSizing {
	if s == nil {
		return layout.FitRow()
	}
	switch s.Mode {
	case "fixed":
		return layout.FixedRow(s.Height)
	case "ratio":
		return layout.RatioOfColumn(s.Ratio, s.Column)
	default:
		return layout.FitRow()
	}
}

func (c Cell) declared(loader *images.Loader) (layout.DeclaredCell, error) {
	content, err := c.content(loader)
	if err != nil {
		return layout.DeclaredCell{}, err
	}

	cols, rows := c.ColSpan, c.RowSpan
	if cols == 0 {
		cols = 1
	}
	if rows == 0 {
		rows = 1
	}
	return layout.NewCell(content).Span(cols, rows).WithStyle(c.Style.cellStyle()), nil
}

func (c Cell) content(loader *images.Loader) (layout.Content, error) {
	if c.Image != "" {
		img, err := loader.Load(c.Image)
		if err != nil {
			return nil, err
		}
		return images.Content{Source: c.Image, Image: img, Width: c.Width, Height: c.Height}, nil
	}

	content := text.Plain(c.Text)
	if c.FontSize > 0 {
		content.Size = c.FontSize
	}
	content.Bold = c.Bold
	if color, ok := style.ParseColor(c.Color); ok {
		content.Color = color
	}
	return content, nil
}

func (s *Style) cellStyle() style.CellStyle {
	cs := style.None
	if s == nil {
		return cs
	}
	if a, err := style.ParseAlignment(s.Alignment); s.Alignment != "" && err == nil {
		cs = cs.WithAlignment(a)
	}
	if s.Padding != nil {
		cs = cs.WithPadding(s.Padding.edges())
	}
	if bg, ok := style.ParseColor(s.Background); s.Background != "" && ok {
		cs = cs.WithBackground(bg)
	}
	if s.Border != nil {
		cs = cs.WithBorders(s.Border.borders())
	}
	return cs
}

func (p *Padding) edges() style.Edges {
	var e style.Edges
	if p.All != nil {
		e = style.EdgeAll(*p.All)
	}
	if p.H != nil {
		e.Leading, e.Trailing = *p.H, *p.H
	}
	if p.V != nil {
		e.Top, e.Bottom = *p.V, *p.V
	}
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&e.Top, p.Top)
	set(&e.Leading, p.Leading)
	set(&e.Bottom, p.Bottom)
	set(&e.Trailing, p.Trailing)
	return e
}

func (b *Border) borders() style.Borders {
	var out style.Borders
	if b.All != nil {
		out = style.BorderAll(b.All.side())
	}
	set := func(dst **style.BorderSide, src *BorderSide) {
		if src != nil {
			side := src.side()
			*dst = &side
		}
	}
	set(&out.Top, b.Top)
	set(&out.Leading, b.Leading)
	set(&out.Bottom, b.Bottom)
	set(&out.Trailing, b.Trailing)
	return out
}

// side defaults a missing color to black.
func (b *BorderSide) side() style.BorderSide {
	color := style.Black
	if c, ok := style.ParseColor(b.Color); b.Color != "" && ok {
		color = c
	}
	return style.BorderSide{Color: color, Width: b.Width}
}
