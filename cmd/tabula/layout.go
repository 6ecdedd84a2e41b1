package main

import (
	"github.com/spf13/cobra"

	"tabula/pkg/decl"
	"tabula/pkg/text"
)

func newLayoutCmd(a *app) *cobra.Command {
	var report bool

	cmd := &cobra.Command{
		Use:   "layout SOURCE",
		Short: "Print the computed geometry of a declaration as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.compute(cmd.Context(), args[0], text.NewMeasurer(a.fonts()))
			if err != nil {
				return err
			}
			return decl.WriteGeometry(cmd.OutOrStdout(), decl.NewGeometry(res, report))
		},
	}
	cmd.Flags().BoolVar(&report, "report", false, "include the per-cell size report")
	return cmd
}
