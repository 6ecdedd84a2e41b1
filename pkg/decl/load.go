package decl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"tabula/pkg/images"
)

// Format is the syntax of a declaration source.
type Format int

const (
	FormatJSON Format = iota
	FormatScript
)

// DetectFormat picks the format from a file name or URL path, then from a
// content type. Anything not recognisably JavaScript is JSON.
func DetectFormat(name, contentType string) Format {
	if strings.EqualFold(filepath.Ext(name), ".js") {
		return FormatScript
	}
	if strings.Contains(contentType, "javascript") {
		return FormatScript
	}
	return FormatJSON
}

// Parse decodes a declaration in the given format.
func Parse(ctx context.Context, name string, data []byte, format Format, logger *zap.Logger) (*Declaration, error) {
	if format == FormatScript {
		return NewScript(name, string(data), logger).Run(ctx)
	}
	d, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

// Load reads a declaration from a file path or an http(s) URL. Image cells
// of a file declaration may name files relative to its directory; fetched
// declarations only accept data URIs.
func Load(ctx context.Context, source string, logger *zap.Logger) (*Declaration, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if IsNetworkURL(source) {
		body, contentType, err := Fetch(ctx, source)
		if err != nil {
			return nil, err
		}
		logger.Debug("fetched declaration",
			zap.String("url", source),
			zap.String("content_type", contentType),
			zap.Int("bytes", len(body)))
		return Parse(ctx, source, body, DetectFormat(urlPath(source), contentType), logger)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("reading declaration: %w", err)
	}
	d, err := Parse(ctx, source, data, DetectFormat(source, ""), logger)
	if err != nil {
		return nil, err
	}
	d.Images = images.NewLoader(filepath.Dir(source), true)
	return d, nil
}
