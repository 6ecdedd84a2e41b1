package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	rendering "tabula/pkg/render"
	"tabula/pkg/text"
	"tabula/pkg/visualtest"
)

// errMismatch is returned when a rendering differs from its reference.
var errMismatch = errors.New("rendering does not match reference")

func newCompareCmd(a *app) *cobra.Command {
	var (
		update   bool
		diffPath string
		opts     = visualtest.DefaultOptions()
	)

	cmd := &cobra.Command{
		Use:   "compare SOURCE REFERENCE",
		Short: "Render a declaration and compare it with a reference PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, reference := args[0], args[1]

			m := text.NewMeasurer(a.fonts())
			res, err := a.compute(cmd.Context(), source, m)
			if err != nil {
				return err
			}
			painter := rendering.ForResult(res, m)
			painter.Render(res)

			if update {
				if err := painter.SavePNG(reference); err != nil {
					return err
				}
				a.logger.Info("reference updated", zap.String("reference", reference))
				return nil
			}

			expected, err := visualtest.LoadPNG(reference)
			if err != nil {
				return err
			}
			opts.Diff = diffPath != ""
			result, err := visualtest.Compare(painter.Image(), expected, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}
			if result.Diff != nil {
				if err := visualtest.SavePNG(result.Diff, diffPath); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d of %d pixels differ (%.2f%%), max channel difference %d\n",
				source, result.DifferentPixels, result.TotalPixels, result.DifferentPercent(), result.MaxDifference)
			if !result.Match {
				return fmt.Errorf("%s: %w", source, errMismatch)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&update, "update", false, "write the rendering as the new reference")
	flags.StringVar(&diffPath, "diff", "", "write a diff image to this file")
	flags.IntVar(&opts.Tolerance, "tolerance", opts.Tolerance, "per-channel difference still counted as equal")
	flags.IntVar(&opts.FuzzyRadius, "fuzzy", 0, "match pixels against neighbours within this radius")
	flags.Float64Var(&opts.MaxDifferentPercent, "max-diff", 0, "percentage of differing pixels still accepted")
	return cmd
}
