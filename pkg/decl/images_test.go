package decl

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabula/pkg/images"
	"tabula/pkg/layout"
	"tabula/pkg/text"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestImageCellFromDataURI(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 40, 20))
	d, err := ParseJSON([]byte(`{
		"columns": [{"sizing": {"mode": "fit"}}, {"sizing": {"mode": "fixed", "width": 10}}],
		"rows": [{"cells": [{"image": "` + uri + `", "width": 30}, {"image": "` + uri + `"}]}]
	}`))
	require.NoError(t, err)

	table, err := d.Build(images.NewMeasurer(text.NewMeasurer(text.FontConfig{})))
	require.NoError(t, err)
	res, err := table.Recompute(100)
	require.NoError(t, err)

	assert.Equal(t, []float64{30, 10}, res.ColumnWidths)
	assert.Equal(t, layout.Size{Width: 30, Height: 15}, res.Measured.At(0, 0))
	// The second image is scaled down to its fixed column.
	assert.Equal(t, layout.Size{Width: 10, Height: 5}, res.Measured.At(1, 0))
	assert.Equal(t, []float64{15}, res.RowHeights)

	c, ok := res.Cells[0].Cell.Content.(images.Content)
	require.True(t, ok)
	assert.Equal(t, uri, c.Source)
}

func TestImageCellFilesNeedLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.png"), pngBytes(t, 8, 4), 0o644))
	src := `{"columns": [{}], "rows": [{"cells": [{"image": "logo.png"}]}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "table.json"), []byte(src), 0o644))

	d, err := ParseJSON([]byte(src))
	require.NoError(t, err)
	_, err = d.LayoutRows()
	assert.ErrorIs(t, err, images.ErrFilesDisabled)
	assert.Contains(t, err.Error(), "row 0 cell 0")

	d, err = Load(context.Background(), filepath.Join(dir, "table.json"), nil)
	require.NoError(t, err)
	rows, err := d.LayoutRows()
	require.NoError(t, err)
	c := rows[0].Cells[0].Content.(images.Content)
	assert.Equal(t, 8, c.Image.Bounds().Dx())
}

func TestImageCellExcludesText(t *testing.T) {
	_, err := ParseJSON([]byte(`{"columns": [{}], "rows": [{"cells": [{"text": "a", "image": "x.png"}]}]}`))
	assert.ErrorIs(t, err, ErrInvalidDeclaration)
	assert.Contains(t, err.Error(), "rows[0].cells[0].image")
}

func TestScriptImageHelper(t *testing.T) {
	d, err := NewScript("image.js", `table({columns: [fit()], rows: [{cells: [image("logo.png", {width: 12})]}]})`, nil).
		Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "logo.png", d.Rows[0].Cells[0].Image)
	assert.Equal(t, 12.0, d.Rows[0].Cells[0].Width)
}
