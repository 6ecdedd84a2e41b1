// Package view shows a table in a fyne window. The widget's layout pass is
// the width-change signal: each new width invalidates the table and lays
// it out again before painting.
package view

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"tabula/pkg/layout"
	"tabula/pkg/render"
	"tabula/pkg/text"
)

// TableView is a widget painting a table at the width it is given.
type TableView struct {
	widget.BaseWidget

	// OnLayout is called after each layout that produced a new result.
	OnLayout func(*layout.Result)
	// OnError is called when a layout fails; the previous image is kept.
	OnError func(error)

	mu       sync.Mutex
	table    *layout.Table
	measurer *text.Measurer
	logger   *zap.Logger
	painted  *layout.Result
	image    image.Image
}

// NewTableView returns a view of t. m must be the measurer t was built
// with. A nil logger discards logs.
func NewTableView(t *layout.Table, m *text.Measurer, logger *zap.Logger) *TableView {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &TableView{table: t, measurer: m, logger: logger}
	v.ExtendBaseWidget(v)
	return v
}

// SetTable replaces the shown table, e.g. after reloading its declaration.
func (v *TableView) SetTable(t *layout.Table, m *text.Measurer) {
	v.mu.Lock()
	v.table = t
	v.measurer = m
	v.painted = nil
	v.image = nil
	v.mu.Unlock()
	v.Refresh()
}

// Result returns the latest layout, or nil before the first.
func (v *TableView) Result() *layout.Result {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.table == nil {
		return nil
	}
	return v.table.Result()
}

// CreateRenderer implements fyne.Widget.
func (v *TableView) CreateRenderer() fyne.WidgetRenderer {
	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	img.FillMode = canvas.ImageFillOriginal
	img.ScaleMode = canvas.ImageScalePixels
	return &tableViewRenderer{view: v, image: img}
}

// paint lays the table out for width and returns its image. The image is
// reused while the table's result is unchanged.
func (v *TableView) paint(width float32) (image.Image, *layout.Result, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.table == nil {
		return nil, nil, false, nil
	}

	w := float64(width)
	if prev := v.table.Result(); prev == nil || prev.Width != w {
		v.table.Invalidate(layout.ChangeWidth)
	}
	res, err := v.table.Recompute(w)
	if err != nil {
		return v.image, v.painted, false, err
	}
	if res == v.painted && v.image != nil {
		return v.image, res, false, nil
	}

	painter := render.ForResult(res, v.measurer)
	painter.Render(res)
	v.image = painter.Image()
	v.painted = res
	v.logger.Debug("table painted",
		zap.Float64("width", w),
		zap.Float64("height", res.Size.Height),
		zap.Int("passes", res.Passes))
	return v.image, res, true, nil
}

type tableViewRenderer struct {
	view  *TableView
	image *canvas.Image
}

func (r *tableViewRenderer) Layout(size fyne.Size) {
	img, res, fresh, err := r.view.paint(size.Width)
	if err != nil {
		r.view.logger.Warn("layout failed", zap.Error(err))
		if r.view.OnError != nil {
			r.view.OnError(err)
		}
	}
	if img == nil || res == nil {
		return
	}
	if fresh {
		r.image.Image = img
		r.image.Refresh()
		if r.view.OnLayout != nil {
			r.view.OnLayout(res)
		}
	}
	r.image.Move(fyne.NewPos(0, 0))
	r.image.Resize(fyne.NewSize(float32(res.Size.Width), float32(res.Size.Height)))
}

func (r *tableViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(1, 1)
}

func (r *tableViewRenderer) Refresh() {
	r.Layout(r.view.Size())
}

func (r *tableViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.image}
}

func (r *tableViewRenderer) Destroy() {}
