// Package text measures and lays out plain text cell content with gg font
// metrics.
package text

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"tabula/pkg/layout"
	"tabula/pkg/style"
)

// DefaultFontSize is used for content that does not set a size.
const DefaultFontSize = 16.0

// FontConfig holds paths to TrueType font files used for measurement and
// rendering. Empty paths fall back to gg's built-in 7×13 bitmap face.
type FontConfig struct {
	Regular string
	Bold    string
}

// FontPath returns the font path for a weight.
func (fc FontConfig) FontPath(bold bool) string {
	if bold && fc.Bold != "" {
		return fc.Bold
	}
	return fc.Regular
}

// Content is a block of text in a cell. Newlines start new lines.
type Content struct {
	Text  string
	Size  float64
	Bold  bool
	Color style.Color
}

// Plain returns black text at the default size.
func Plain(s string) Content {
	return Content{Text: s, Size: DefaultFontSize, Color: style.Black}
}

func (c Content) fontSize() float64 {
	if c.Size <= 0 {
		return DefaultFontSize
	}
	return c.Size
}

type faceKey struct {
	size float64
	bold bool
}

// Measurer implements layout.Measurer for Content. Faces are loaded once
// per size and weight. A Measurer is safe for concurrent use.
type Measurer struct {
	fonts FontConfig

	mu    sync.Mutex
	dc    *gg.Context
	faces map[faceKey]font.Face
}

// NewMeasurer returns a Measurer using fonts.
func NewMeasurer(fonts FontConfig) *Measurer {
	return &Measurer{
		fonts: fonts,
		dc:    gg.NewContext(1, 1),
		faces: make(map[faceKey]font.Face),
	}
}

// Fonts returns the measurer's font configuration.
func (m *Measurer) Fonts() FontConfig { return m.fonts }

// face must be called with m.mu held.
func (m *Measurer) face(size float64, bold bool) font.Face {
	key := faceKey{size, bold}
	if f, ok := m.faces[key]; ok {
		return f
	}
	var f font.Face = basicfont.Face7x13
	if path := m.fonts.FontPath(bold); path != "" {
		if loaded, err := gg.LoadFontFace(path, size); err == nil {
			f = loaded
		}
	}
	m.faces[key] = f
	return f
}

// Face returns the font face for content, shared with the renderer so that
// drawn text matches measured text.
func (m *Measurer) Face(c Content) font.Face {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.face(c.fontSize(), c.Bold)
}

// Measure returns the size of the text's lines under constraint.
// Accepted content is Content, *Content or a plain string.
func (m *Measurer) Measure(content layout.Content, constraint layout.Constraint) (layout.Size, error) {
	c, err := asContent(content)
	if err != nil {
		return layout.Size{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	lines := m.lines(c, constraint)
	width := 0.0
	for _, line := range lines {
		if w, _ := m.dc.MeasureString(line); w > width {
			width = w
		}
	}
	_, lineHeight := m.dc.MeasureString("")
	return layout.Size{Width: width, Height: lineHeight * float64(len(lines))}, nil
}

// Lines returns the lines the text is drawn as under constraint, along
// with the height of one line.
func (m *Measurer) Lines(c Content, constraint layout.Constraint) ([]string, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := m.lines(c, constraint)
	_, lineHeight := m.dc.MeasureString("")
	return lines, lineHeight
}

// lines sets the face on m.dc and breaks c into lines. m.mu must be held.
func (m *Measurer) lines(c Content, constraint layout.Constraint) []string {
	m.dc.SetFontFace(m.face(c.fontSize(), c.Bold))
	paragraphs := strings.Split(c.Text, "\n")
	if !constraint.Bounded {
		return paragraphs
	}
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		out = append(out, breakIntoLines(m.dc, p, constraint.Width)...)
	}
	return out
}

// breakIntoLines greedily fills lines of at most maxWidth. A word wider
// than maxWidth gets a line of its own.
func breakIntoLines(dc *gg.Context, text string, maxWidth float64) []string {
	if w, _ := dc.MeasureString(text); w <= maxWidth {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	lines := make([]string, 0)
	currentLine := ""
	for _, word := range words {
		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}
		if lineWidth, _ := dc.MeasureString(testLine); lineWidth <= maxWidth || currentLine == "" {
			currentLine = testLine
			continue
		}
		lines = append(lines, currentLine)
		currentLine = word
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

// From reports whether content is text this package can measure, and
// returns it as a Content.
func From(content layout.Content) (Content, bool) {
	c, err := asContent(content)
	return c, err == nil && content != nil
}

func asContent(content layout.Content) (Content, error) {
	switch c := content.(type) {
	case Content:
		return c, nil
	case *Content:
		if c == nil {
			return Content{}, nil
		}
		return *c, nil
	case string:
		return Plain(c), nil
	default:
		return Content{}, fmt.Errorf("text: cannot measure content of type %T", content)
	}
}
