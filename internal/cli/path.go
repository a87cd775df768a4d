// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cli

import (
	"fmt"
	"strconv"

	"github.com/2dChan/polygrid/pathfinding"
	"github.com/spf13/cobra"
)

type pathOpts struct {
	grid        gridOpts
	heuristic   string
	noDiagonals bool
	maxSteps    int
	maxCost     float64
	groupMask   int
	ignoreCross bool
}

func newPathCmd() *cobra.Command {
	var opts pathOpts
	cmd := &cobra.Command{
		Use:   "path START END",
		Short: "Find the cheapest path between two cells",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseCellPair(args)
			if err != nil {
				return err
			}
			return runPath(cmd, start, end, &opts)
		},
	}
	addGridFlags(cmd, &opts.grid)
	f := cmd.Flags()
	f.StringVar(&opts.heuristic, "heuristic", "", "heuristic: euclidean, euclidean-nosqr, manhattan, max-dxdy, diagonal-shortcut")
	f.BoolVar(&opts.noDiagonals, "no-diagonals", false, "disable diagonal moves on box grids")
	f.IntVar(&opts.maxSteps, "max-steps", 0, "maximum path length")
	f.Float64Var(&opts.maxCost, "max-cost", 0, "maximum path cost")
	f.IntVar(&opts.groupMask, "group-mask", 0, "only cross cells in these groups")
	f.BoolVar(&opts.ignoreCross, "ignore-can-cross", false, "ignore the can-cross flag of start and end")
	return cmd
}

func runPath(cmd *cobra.Command, start, end int, opts *pathOpts) error {
	g, err := opts.grid.build(cmd)
	if err != nil {
		return err
	}
	settings := g.PathFindingConfig()
	if opts.heuristic != "" {
		if settings.Heuristic, err = pathfinding.ParseHeuristic(opts.heuristic); err != nil {
			return err
		}
	}
	if opts.noDiagonals {
		settings.Diagonals = false
	}
	g.SetPathFindingConfig(settings)

	q := pathfinding.Query{
		MaxSteps:  opts.maxSteps,
		MaxCost:   opts.maxCost,
		GroupMask: opts.groupMask,
	}
	if opts.ignoreCross {
		q.CrossCheck = pathfinding.CrossCheckIgnoreStartEnd
	}

	path, cost, ok := g.FindPath(start, end, q)
	out := cmd.OutOrStdout()
	printResult(out, ok, "path %d %s %d", start, iconArrow, end)
	if !ok {
		return nil
	}
	printKeyValue(out, "steps", len(path))
	printKeyValue(out, "cost", strconv.FormatFloat(cost, 'f', 2, 64))
	printKeyValue(out, "cells", formatCells(append([]int{start}, path...)))
	return nil
}

func parseCellPair(args []string) (int, int, error) {
	start, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start cell %q: %w", args[0], err)
	}
	end, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end cell %q: %w", args[1], err)
	}
	return start, end, nil
}
