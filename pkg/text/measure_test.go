package text

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tabula/pkg/layout"
	"tabula/pkg/style"
)

// With no font files configured the measurer uses the 7×13 bitmap face,
// so sizes below are exact.

func TestMeasureUnconstrained(t *testing.T) {
	m := NewMeasurer(FontConfig{})

	size, err := m.Measure(Plain("abc"), layout.Unconstrained)
	require.NoError(t, err)
	assert.Equal(t, layout.Size{Width: 21, Height: 13}, size)

	size, err = m.Measure(Plain("aaa bbb ccc"), layout.Unconstrained)
	require.NoError(t, err)
	assert.Equal(t, layout.Size{Width: 77, Height: 13}, size)
}

func TestMeasureWrapsUnderMaxWidth(t *testing.T) {
	m := NewMeasurer(FontConfig{})

	size, err := m.Measure(Plain("aaa bbb ccc"), layout.MaxWidth(50))
	require.NoError(t, err)
	assert.Equal(t, layout.Size{Width: 49, Height: 26}, size)

	lines, lineHeight := m.Lines(Plain("aaa bbb ccc"), layout.MaxWidth(50))
	assert.Equal(t, []string{"aaa bbb", "ccc"}, lines)
	assert.Equal(t, 13.0, lineHeight)
}

func TestMeasureLongWordOverflows(t *testing.T) {
	m := NewMeasurer(FontConfig{})

	size, err := m.Measure(Plain("abcdefghij xy"), layout.MaxWidth(20))
	require.NoError(t, err)
	assert.Equal(t, 70.0, size.Width)
	assert.Equal(t, 26.0, size.Height)
}

func TestMeasureNewlines(t *testing.T) {
	m := NewMeasurer(FontConfig{})

	size, err := m.Measure(Plain("A1\nText"), layout.Unconstrained)
	require.NoError(t, err)
	assert.Equal(t, layout.Size{Width: 28, Height: 26}, size)
}

func TestMeasureContentForms(t *testing.T) {
	m := NewMeasurer(FontConfig{})
	c := Content{Text: "hi", Size: 20, Color: style.Black}

	byValue, err := m.Measure(c, layout.Unconstrained)
	require.NoError(t, err)
	byPointer, err := m.Measure(&c, layout.Unconstrained)
	require.NoError(t, err)
	byString, err := m.Measure("hi", layout.Unconstrained)
	require.NoError(t, err)

	assert.Equal(t, byValue, byPointer)
	assert.Equal(t, byValue, byString)

	_, err = m.Measure(42, layout.Unconstrained)
	assert.Error(t, err)
}

func TestMissingFontFallsBack(t *testing.T) {
	m := NewMeasurer(FontConfig{Regular: "/nonexistent/font.ttf"})

	size, err := m.Measure(Plain("abc"), layout.Unconstrained)
	require.NoError(t, err)
	assert.Equal(t, layout.Size{Width: 21, Height: 13}, size)
}

func TestFontPath(t *testing.T) {
	fc := FontConfig{Regular: "r.ttf"}
	assert.Equal(t, "r.ttf", fc.FontPath(true))
	fc.Bold = "b.ttf"
	assert.Equal(t, "b.ttf", fc.FontPath(true))
	assert.Equal(t, "r.ttf", fc.FontPath(false))
}

func TestMeasureConcurrent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	m := NewMeasurer(FontConfig{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			size, err := m.Measure(Plain("aaa bbb ccc"), layout.MaxWidth(50))
			assert.NoError(t, err)
			assert.Equal(t, 26.0, size.Height)
		}()
	}
	wg.Wait()
}

func TestMeasureInTable(t *testing.T) {
	m := NewMeasurer(FontConfig{})
	table, err := layout.NewBuilder().
		AddColumn(layout.NewColumn(layout.Fit()), layout.NewColumn(layout.Proportional(1))).
		AddRow(layout.NewRow(layout.NewCell(Plain("abc")), layout.NewCell(Plain("aaa bbb ccc")))).
		Build(m)
	require.NoError(t, err)

	res, err := table.Recompute(71)
	require.NoError(t, err)
	assert.Equal(t, []float64{21, 50}, res.ColumnWidths)
	assert.Equal(t, []float64{26}, res.RowHeights)
}
