package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"tabula/pkg/config"
	"tabula/pkg/decl"
	"tabula/pkg/images"
	"tabula/pkg/layout"
	"tabula/pkg/logging"
	"tabula/pkg/text"
)

// app carries what every subcommand needs once the root has loaded
// configuration.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "tabula",
		Short:         "Lay out and render grid tables with spans and styles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./tabula.yaml)")
	flags.Bool("debug", false, "log the per-cell size report after each layout")
	flags.Float64P("width", "w", 0, "available width (default from config)")
	flags.String("log-level", "", "log level (default from config)")

	root.AddCommand(newRenderCmd(a), newLayoutCmd(a), newCompareCmd(a), newServeCmd(a))
	return root
}

// init binds the persistent flags that were set, loads configuration and
// builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	flags := cmd.Flags()
	for key, name := range map[string]string{
		"debug":     "debug",
		"width":     "width",
		"log.level": "log-level",
	} {
		if f := flags.Lookup(name); f != nil && f.Changed {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) fonts() text.FontConfig {
	return text.FontConfig{Regular: a.cfg.Fonts.Regular, Bold: a.cfg.Fonts.Bold}
}

// compute loads source and lays it out at the configured width.
func (a *app) compute(ctx context.Context, source string, m *text.Measurer) (*layout.Result, error) {
	d, err := decl.Load(ctx, source, a.logger)
	if err != nil {
		return nil, err
	}
	table, err := d.Build(images.NewMeasurer(m),
		layout.WithLogger(a.logger.With(zap.String("source", source))),
		layout.WithDebug(a.cfg.Debug))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	res, err := table.Recompute(a.cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return res, nil
}
