package images

import (
	"image"

	"tabula/pkg/layout"
)

// Content is an image cell. A zero Width or Height is derived from the
// other, or from the image's natural size when both are zero.
type Content struct {
	Source string
	Image  image.Image
	Width  float64
	Height float64
}

// Natural returns the display size before fitting.
func (c Content) Natural() layout.Size {
	if c.Image == nil {
		return layout.Size{Width: c.Width, Height: c.Height}
	}
	b := c.Image.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	switch {
	case c.Width > 0 && c.Height > 0:
		return layout.Size{Width: c.Width, Height: c.Height}
	case c.Width > 0 && iw > 0:
		return layout.Size{Width: c.Width, Height: ih * c.Width / iw}
	case c.Height > 0 && ih > 0:
		return layout.Size{Width: iw * c.Height / ih, Height: c.Height}
	default:
		return layout.Size{Width: iw, Height: ih}
	}
}

// Fit returns the size c is drawn at under constraint: the display size,
// scaled down with its aspect ratio kept when wider than a bounded width.
func Fit(c Content, constraint layout.Constraint) layout.Size {
	s := c.Natural()
	if !constraint.Bounded || s.Width <= constraint.Width || s.Width == 0 {
		return s
	}
	scale := constraint.Width / s.Width
	return layout.Size{Width: constraint.Width, Height: s.Height * scale}
}

// Measurer measures image Content and hands everything else to Next.
type Measurer struct {
	Next layout.Measurer
}

// NewMeasurer returns a Measurer deferring non-image content to next.
func NewMeasurer(next layout.Measurer) *Measurer {
	return &Measurer{Next: next}
}

func (m *Measurer) Measure(content layout.Content, constraint layout.Constraint) (layout.Size, error) {
	switch c := content.(type) {
	case Content:
		return Fit(c, constraint), nil
	case *Content:
		if c == nil {
			return layout.Size{}, nil
		}
		return Fit(*c, constraint), nil
	}
	if m.Next == nil {
		return layout.Size{}, nil
	}
	return m.Next.Measure(content, constraint)
}
