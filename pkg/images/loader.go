// Package images provides image cell content: loading from files or data
// URIs, measurement and fitting into a cell's width.
package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrFilesDisabled is returned by a loader that only accepts data URIs.
var ErrFilesDisabled = errors.New("loading images from files is disabled")

// Loader loads and caches images by source.
type Loader struct {
	baseDir    string
	allowFiles bool

	mu    sync.RWMutex
	cache map[string]image.Image
}

// NewLoader returns a loader resolving relative paths against baseDir.
// When allowFiles is false only data URIs are accepted.
func NewLoader(baseDir string, allowFiles bool) *Loader {
	return &Loader{baseDir: baseDir, allowFiles: allowFiles, cache: make(map[string]image.Image)}
}

// Load loads an image from a data URI or a file path.
func (l *Loader) Load(src string) (image.Image, error) {
	l.mu.RLock()
	if img, ok := l.cache[src]; ok {
		l.mu.RUnlock()
		return img, nil
	}
	l.mu.RUnlock()

	var img image.Image
	var err error
	switch {
	case IsDataURI(src):
		img, err = LoadImageFromDataURI(src)
	case !l.allowFiles:
		err = ErrFilesDisabled
	default:
		img, err = l.loadFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("loading image %s: %w", shorten(src), err)
	}

	l.mu.Lock()
	l.cache[src] = img
	l.mu.Unlock()
	return img, nil
}

func (l *Loader) loadFile(path string) (image.Image, error) {
	if !filepath.IsAbs(path) && l.baseDir != "" {
		path = filepath.Join(l.baseDir, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	return img, err
}

// IsDataURI reports whether s is a data: URI.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// LoadImageFromDataURI decodes a base64 or percent-encoded data URI.
func LoadImageFromDataURI(uri string) (image.Image, error) {
	if !IsDataURI(uri) {
		return nil, errors.New("not a data URI")
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, errors.New("data URI has no payload")
	}

	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 payload: %w", err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding payload: %w", err)
		}
		data = []byte(unescaped)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// shorten keeps data URIs out of error messages.
func shorten(src string) string {
	if IsDataURI(src) && len(src) > 32 {
		return src[:32] + "..."
	}
	return src
}
