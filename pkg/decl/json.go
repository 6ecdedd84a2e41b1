package decl

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"tabula/pkg/layout"
	"tabula/pkg/text"
)

// strict rejects unknown fields so typos in declarations surface as errors.
var strict = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	DisallowUnknownFields:  true,
}.Froze()

// ParseJSON decodes and validates a JSON declaration.
func ParseJSON(data []byte) (*Declaration, error) {
	var d Declaration
	if err := strict.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decoding declaration: %w", err)
	}
	if err := Validate(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Geometry is the wire form of a layout result.
type Geometry struct {
	Width        float64        `json:"width"`
	Height       float64        `json:"height"`
	ColumnWidths []float64      `json:"columnWidths"`
	RowHeights   []float64      `json:"rowHeights"`
	Passes       int            `json:"passes"`
	Cells        []CellGeometry `json:"cells"`
	Report       []string       `json:"report,omitempty"`
}

type CellGeometry struct {
	Name       string          `json:"name"`
	Column     int             `json:"column"`
	Row        int             `json:"row"`
	ColSpan    int             `json:"colSpan"`
	RowSpan    int             `json:"rowSpan"`
	Text       string          `json:"text,omitempty"`
	Frame      Rect            `json:"frame"`
	Content    Rect            `json:"content"`
	Alignment  string          `json:"alignment"`
	Background string          `json:"background,omitempty"`
	Borders    []BorderSegment `json:"borders,omitempty"`
}

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type BorderSegment struct {
	Side  string  `json:"side"`
	From  Point   `json:"from"`
	To    Point   `json:"to"`
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

// NewGeometry converts res for output. withReport adds the size report.
func NewGeometry(res *layout.Result, withReport bool) Geometry {
	g := Geometry{
		Width:        res.Size.Width,
		Height:       res.Size.Height,
		ColumnWidths: res.ColumnWidths,
		RowHeights:   res.RowHeights,
		Passes:       res.Passes,
		Cells:        make([]CellGeometry, len(res.Cells)),
	}
	for i, c := range res.Cells {
		composed := c.Cell.Composed
		cg := CellGeometry{
			Name:      layout.CellName(c.Cell.ColRange.Lower, c.Cell.RowRange.Lower),
			Column:    c.Cell.ColRange.Lower,
			Row:       c.Cell.RowRange.Lower,
			ColSpan:   c.Cell.ColRange.Len(),
			RowSpan:   c.Cell.RowRange.Len(),
			Frame:     rect(c.Frame),
			Content:   rect(c.Content),
			Alignment: composed.Alignment.String(),
		}
		if t, ok := text.From(c.Cell.Content); ok {
			cg.Text = t.Text
		}
		if !composed.Background.IsTransparent() {
			cg.Background = composed.Background.Hex()
		}
		for _, seg := range c.Borders {
			cg.Borders = append(cg.Borders, BorderSegment{
				Side:  seg.Side.String(),
				From:  Point{seg.From.X, seg.From.Y},
				To:    Point{seg.To.X, seg.To.Y},
				Width: seg.Width,
				Color: seg.Color.Hex(),
			})
		}
		g.Cells[i] = cg
	}
	if withReport {
		g.Report = layout.Report(res)
	}
	return g
}

func rect(r layout.Rect) Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// WriteGeometry encodes g to w as indented JSON.
func WriteGeometry(w io.Writer, g Geometry) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}
