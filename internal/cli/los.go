// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cli

import (
	"github.com/2dChan/polygrid/los"
	"github.com/spf13/cobra"
)

type losOpts struct {
	grid gridOpts
	los  los.Options
}

func newLOSCmd() *cobra.Command {
	var opts losOpts
	cmd := &cobra.Command{
		Use:   "los START END",
		Short: "Check the line of sight between two cells",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseCellPair(args)
			if err != nil {
				return err
			}
			return runLOS(cmd, start, end, &opts)
		},
	}
	addGridFlags(cmd, &opts.grid)
	f := cmd.Flags()
	f.IntVar(&opts.los.Resolution, "resolution", los.MinResolution, "samples per step of distance")
	f.BoolVar(&opts.los.Exhaustive, "exhaustive", false, "also try the vertices of the end cell")
	f.IntVar(&opts.los.GroupMask, "group-mask", 0, "only see through cells in these groups")
	return cmd
}

func runLOS(cmd *cobra.Command, start, end int, opts *losOpts) error {
	g, err := opts.grid.build(cmd)
	if err != nil {
		return err
	}
	res := g.LineOfSight(start, end, opts.los)
	out := cmd.OutOrStdout()
	printResult(out, res.Visible, "line of sight %d %s %d", start, iconArrow, end)
	printKeyValue(out, "cells", formatCells(res.Cells))
	printKeyValue(out, "samples", len(res.Points))
	return nil
}
