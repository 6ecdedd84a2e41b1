// Command tabulaview shows a table declaration in a window and lays it out
// again whenever the window width changes.
package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"tabula/pkg/config"
	"tabula/pkg/decl"
	"tabula/pkg/images"
	"tabula/pkg/layout"
	"tabula/pkg/logging"
	"tabula/pkg/text"
	"tabula/pkg/view"
)

func main() {
	var cfgFile string
	cmd := &cobra.Command{
		Use:          "tabulaview SOURCE",
		Short:        "Show a table declaration in a resizable window",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.New(), cfgFile)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			return show(cmd.Context(), cfg, logger, args[0])
		},
	}
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./tabula.yaml)")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func load(ctx context.Context, cfg *config.Config, logger *zap.Logger, source string) (*layout.Table, *text.Measurer, error) {
	d, err := decl.Load(ctx, source, logger)
	if err != nil {
		return nil, nil, err
	}
	m := text.NewMeasurer(text.FontConfig{Regular: cfg.Fonts.Regular, Bold: cfg.Fonts.Bold})
	table, err := d.Build(images.NewMeasurer(m), layout.WithLogger(logger), layout.WithDebug(cfg.Debug))
	if err != nil {
		return nil, nil, err
	}
	return table, m, nil
}

func show(ctx context.Context, cfg *config.Config, logger *zap.Logger, source string) error {
	table, m, err := load(ctx, cfg, logger, source)
	if err != nil {
		return err
	}

	a := app.New()
	w := a.NewWindow("tabula: " + source)
	w.Resize(fyne.NewSize(float32(cfg.Width), 480))

	status := widget.NewLabel("")
	tv := view.NewTableView(table, m, logger)
	tv.OnLayout = func(res *layout.Result) {
		status.SetText(fmt.Sprintf("%.0f × %.0f, %d pass(es)", res.Size.Width, res.Size.Height, res.Passes))
	}
	tv.OnError = func(err error) {
		status.SetText("Layout error: " + err.Error())
	}

	reload := widget.NewButton("Reload", func() {
		status.SetText("Loading " + source + "...")
		go func() {
			table, m, err := load(ctx, cfg, logger, source)
			fyne.Do(func() {
				if err != nil {
					status.SetText("Error: " + err.Error())
					return
				}
				tv.SetTable(table, m)
			})
		}()
	})

	topBar := container.NewHBox(reload, widget.NewLabel(source))
	w.SetContent(container.NewBorder(topBar, status, nil, nil, tv))
	w.ShowAndRun()
	return nil
}
