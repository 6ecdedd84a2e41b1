// Package style composes per-cell styles from the cell, row, column and
// table layers of a grid.
package style

// BorderSide describes one side of a cell border.
type BorderSide struct {
	Color Color
	Width float64
}

// Borders holds optional border sides. A nil side is inherited from the
// next style layer.
type Borders struct {
	Top      *BorderSide
	Leading  *BorderSide
	Bottom   *BorderSide
	Trailing *BorderSide
}

// composed fills the sides missing from b with the sides of other.
func (b Borders) composed(other Borders) Borders {
	if b.Top == nil {
		b.Top = other.Top
	}
	if b.Leading == nil {
		b.Leading = other.Leading
	}
	if b.Bottom == nil {
		b.Bottom = other.Bottom
	}
	if b.Trailing == nil {
		b.Trailing = other.Trailing
	}
	return b
}

// BorderAll returns Borders using side on all four edges.
func BorderAll(side BorderSide) Borders {
	return Borders{Top: &side, Leading: &side, Bottom: &side, Trailing: &side}
}

// CellStyle is one layer of style attributes. Each attribute is optional;
// an absent attribute is resolved from a lower-precedence layer.
type CellStyle struct {
	Alignment  *Alignment
	Padding    *Edges
	Background *Color
	Borders    Borders
}

// None is the style with no attributes set.
var None = CellStyle{}

// WithAlignment returns a copy of s with the alignment set.
func (s CellStyle) WithAlignment(a Alignment) CellStyle {
	s.Alignment = &a
	return s
}

// WithPadding returns a copy of s with the padding set.
func (s CellStyle) WithPadding(p Edges) CellStyle {
	s.Padding = &p
	return s
}

// WithBackground returns a copy of s with the background color set.
func (s CellStyle) WithBackground(c Color) CellStyle {
	s.Background = &c
	return s
}

// WithBorders returns a copy of s with the borders replaced.
func (s CellStyle) WithBorders(b Borders) CellStyle {
	s.Borders = b
	return s
}

// WithBorderAll returns a copy of s with the same border on every side.
func (s CellStyle) WithBorderAll(color Color, width float64) CellStyle {
	s.Borders = BorderAll(BorderSide{Color: color, Width: width})
	return s
}

// ComposedBorders has every side resolved. Sides that were never specified
// have zero width.
type ComposedBorders struct {
	Top      BorderSide
	Leading  BorderSide
	Bottom   BorderSide
	Trailing BorderSide
}

// ComposedStyle is a fully resolved, default-filled cell style.
type ComposedStyle struct {
	Alignment  Alignment
	Padding    Edges
	Background Color
	Borders    ComposedBorders
}

var noBorder = BorderSide{Color: Black, Width: 0}

// Default is the style of a cell for which no layer sets anything.
var Default = ComposedStyle{
	Alignment:  Center,
	Background: Transparent,
	Borders: ComposedBorders{
		Top:      noBorder,
		Leading:  noBorder,
		Bottom:   noBorder,
		Trailing: noBorder,
	},
}

// Compose resolves each attribute from the first layer that sets it.
// Layers are given in precedence order: cell, row, column, table.
// Attributes are resolved independently, border sides included.
func Compose(layers ...CellStyle) ComposedStyle {
	var merged CellStyle
	for _, layer := range layers {
		if merged.Alignment == nil {
			merged.Alignment = layer.Alignment
		}
		if merged.Padding == nil {
			merged.Padding = layer.Padding
		}
		if merged.Background == nil {
			merged.Background = layer.Background
		}
		merged.Borders = merged.Borders.composed(layer.Borders)
	}

	out := Default
	if merged.Alignment != nil {
		out.Alignment = *merged.Alignment
	}
	if merged.Padding != nil {
		out.Padding = *merged.Padding
	}
	if merged.Background != nil {
		out.Background = *merged.Background
	}
	out.Borders.Top = sideOrNone(merged.Borders.Top)
	out.Borders.Leading = sideOrNone(merged.Borders.Leading)
	out.Borders.Bottom = sideOrNone(merged.Borders.Bottom)
	out.Borders.Trailing = sideOrNone(merged.Borders.Trailing)
	return out
}

func sideOrNone(side *BorderSide) BorderSide {
	if side == nil {
		return noBorder
	}
	return *side
}
