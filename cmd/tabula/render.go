package main

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tabula/pkg/decl"
	rendering "tabula/pkg/render"
	"tabula/pkg/text"
)

func newRenderCmd(a *app) *cobra.Command {
	var outDir string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "render SOURCE...",
		Short: "Render declarations (files or http(s) URLs) to PNG",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("output-dir") {
				a.cfg.Render.OutputDir = outDir
			}
			if cmd.Flags().Changed("concurrency") {
				a.cfg.Render.Concurrency = concurrency
			}
			if err := os.MkdirAll(a.cfg.Render.OutputDir, 0o755); err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(a.cfg.Render.Concurrency, 1))
			for _, source := range args {
				source := source
				g.Go(func() error {
					// One measurer and table per source; tables are single-writer.
					m := text.NewMeasurer(a.fonts())
					res, err := a.compute(ctx, source, m)
					if err != nil {
						return err
					}
					painter := rendering.ForResult(res, m)
					painter.Render(res)

					out := filepath.Join(a.cfg.Render.OutputDir, outputName(source))
					if err := painter.SavePNG(out); err != nil {
						return err
					}
					a.logger.Info("rendered",
						zap.String("source", source),
						zap.String("output", out),
						zap.Float64("width", res.Size.Width),
						zap.Float64("height", res.Size.Height))
					return nil
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVarP(&outDir, "output-dir", "o", "", "directory for PNG files (default from config)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "sources rendered at once (default from config)")
	return cmd
}

// outputName is the source's base name with a .png extension.
func outputName(source string) string {
	base := filepath.Base(source)
	if decl.IsNetworkURL(source) {
		base = path.Base(strings.SplitN(strings.SplitN(source, "?", 2)[0], "#", 2)[0])
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = "table"
	}
	return base + ".png"
}
