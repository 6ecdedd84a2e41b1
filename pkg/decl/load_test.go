package decl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tinyJSON = `{"columns": [{}, {}], "rows": [{"cells": [{"text": "a"}, {"text": "b"}]}]}`

const tinyScript = `table({columns: [{}, {}, {}], rows: [{cells: [cell("a")]}]})`

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatScript, DetectFormat("demo.js", ""))
	assert.Equal(t, FormatScript, DetectFormat("DEMO.JS", ""))
	assert.Equal(t, FormatScript, DetectFormat("/table", "application/javascript; charset=utf-8"))
	assert.Equal(t, FormatJSON, DetectFormat("demo.json", ""))
	assert.Equal(t, FormatJSON, DetectFormat("/table", "application/json"))
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "t.json")
	jsPath := filepath.Join(dir, "t.js")
	require.NoError(t, os.WriteFile(jsonPath, []byte(tinyJSON), 0o644))
	require.NoError(t, os.WriteFile(jsPath, []byte(tinyScript), 0o644))

	d, err := Load(context.Background(), jsonPath, nil)
	require.NoError(t, err)
	assert.Len(t, d.Columns, 2)

	d, err = Load(context.Background(), jsPath, nil)
	require.NoError(t, err)
	assert.Len(t, d.Columns, 3)

	_, err = Load(context.Background(), filepath.Join(dir, "missing.json"), nil)
	assert.Error(t, err)
}

func TestLoadURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/table.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "tabula")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(tinyJSON))
	})
	mux.HandleFunc("/script", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		_, _ = w.Write([]byte(tinyScript))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	d, err := Load(context.Background(), srv.URL+"/table.json", nil)
	require.NoError(t, err)
	assert.Len(t, d.Columns, 2)

	d, err = Load(context.Background(), srv.URL+"/script", nil)
	require.NoError(t, err)
	assert.Len(t, d.Columns, 3)

	_, err = Load(context.Background(), srv.URL+"/missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestIsNetworkURL(t *testing.T) {
	assert.True(t, IsNetworkURL("http://example.com/t.json"))
	assert.True(t, IsNetworkURL("https://example.com/t.js"))
	assert.False(t, IsNetworkURL("examples/demo.js"))
	assert.False(t, IsNetworkURL("file:///tmp/t.json"))
}
