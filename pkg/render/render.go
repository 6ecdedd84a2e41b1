// Package render paints a computed table layout onto a gg canvas.
package render

import (
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"

	"tabula/pkg/images"
	"tabula/pkg/layout"
	"tabula/pkg/style"
	"tabula/pkg/text"
)

type Renderer struct {
	context  *gg.Context
	measurer *text.Measurer
}

// NewRenderer returns a renderer with a width×height canvas. Text is laid
// out with m, which should be the measurer the table was computed with.
func NewRenderer(width, height int, m *text.Measurer) *Renderer {
	return &Renderer{context: gg.NewContext(width, height), measurer: m}
}

// NewRendererForImage returns a renderer that paints into img.
func NewRendererForImage(img *image.RGBA, m *text.Measurer) *Renderer {
	return &Renderer{context: gg.NewContextForRGBA(img), measurer: m}
}

// ForResult returns a renderer whose canvas exactly covers res.
func ForResult(res *layout.Result, m *text.Measurer) *Renderer {
	w := int(math.Ceil(res.Size.Width))
	h := int(math.Ceil(res.Size.Height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return NewRenderer(w, h, m)
}

// Render clears the canvas to white and paints every cell of res in
// declaration order: background, then content, then borders.
func (r *Renderer) Render(res *layout.Result) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()
	if res == nil {
		return
	}
	for _, cell := range res.Cells {
		r.drawBackground(cell)
		r.drawImage(cell)
		r.drawText(cell)
		r.drawBorders(cell)
	}
}

func (r *Renderer) setColor(c style.Color) {
	r.context.SetRGBA(c.RGBA())
}

func (r *Renderer) drawBackground(cell layout.CellGeometry) {
	bg := cell.Cell.Composed.Background
	if bg.IsTransparent() {
		return
	}
	r.setColor(bg)
	f := cell.Frame
	r.context.DrawRectangle(f.X, f.Y, f.Width, f.Height)
	r.context.Fill()
}

// drawBorders strokes each segment centered on its cell edge.
func (r *Renderer) drawBorders(cell layout.CellGeometry) {
	for _, seg := range cell.Borders {
		if seg.Color.IsTransparent() {
			continue
		}
		r.setColor(seg.Color)
		r.context.SetLineWidth(seg.Width)
		r.context.DrawLine(seg.From.X, seg.From.Y, seg.To.X, seg.To.Y)
		r.context.Stroke()
	}
}

// drawImage scales image content to its fitted size and aligns it in the
// cell's padded area.
func (r *Renderer) drawImage(cell layout.CellGeometry) {
	var content images.Content
	switch c := cell.Cell.Content.(type) {
	case images.Content:
		content = c
	case *images.Content:
		if c == nil {
			return
		}
		content = *c
	default:
		return
	}
	if content.Image == nil {
		return
	}

	size := images.Fit(content, layout.MaxWidth(cell.Content.Width))
	b := content.Image.Bounds()
	if size.Width <= 0 || size.Height <= 0 || b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	origin := cell.Align(size)

	r.context.Push()
	r.context.Translate(origin.X, origin.Y)
	r.context.Scale(size.Width/float64(b.Dx()), size.Height/float64(b.Dy()))
	r.context.DrawImage(content.Image, -b.Min.X, -b.Min.Y)
	r.context.Pop()
}

// drawText lays text out in the cell's padded area. Lines wrap when the
// unwrapped text is wider than that area. A zero text color draws black.
func (r *Renderer) drawText(cell layout.CellGeometry) {
	if r.measurer == nil {
		return
	}
	content, ok := text.From(cell.Cell.Content)
	if !ok || content.Text == "" {
		return
	}

	constraint := layout.Unconstrained
	if size, err := r.measurer.Measure(content, layout.Unconstrained); err == nil && size.Width > cell.Content.Width {
		constraint = layout.MaxWidth(cell.Content.Width)
	}
	lines, lineHeight := r.measurer.Lines(content, constraint)

	face := r.measurer.Face(content)
	r.context.SetFontFace(face)
	descent := float64(face.Metrics().Descent) / 64

	widths := make([]float64, len(lines))
	block := layout.Size{Height: lineHeight * float64(len(lines))}
	for i, line := range lines {
		widths[i], _ = r.context.MeasureString(line)
		block.Width = math.Max(block.Width, widths[i])
	}

	color := content.Color
	if color == (style.Color{}) {
		color = style.Black
	}
	r.setColor(color)

	origin := cell.Align(block)
	fx, _ := cell.Cell.Composed.Alignment.Fractions()
	for i, line := range lines {
		x := origin.X + fx*(block.Width-widths[i])
		baseline := origin.Y + float64(i+1)*lineHeight - descent
		r.context.DrawString(line, x, baseline)
	}
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

// EncodePNG writes the canvas to w as PNG.
func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}

// SavePNG saves the canvas to a PNG file.
func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}
