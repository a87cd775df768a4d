// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cli

import (
	"fmt"
	"os"

	"github.com/2dChan/polygrid"
	"github.com/2dChan/polygrid/los"
	"github.com/2dChan/polygrid/pathfinding"
	"github.com/2dChan/polygrid/render"
	"github.com/spf13/cobra"
)

const defaultOutput = "polygrid.svg"

type renderOpts struct {
	grid        gridOpts
	output      string
	width       int
	height      int
	territories bool
	centers     bool
	path        []int
	sight       []int
}

func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		output:      defaultOutput,
		width:       render.DefaultWidth,
		height:      render.DefaultHeight,
		territories: true,
	}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a grid to SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(opts.path) != 0 && len(opts.path) != 2 {
				return fmt.Errorf("--path takes START,END, got %d cells", len(opts.path))
			}
			if len(opts.sight) != 0 && len(opts.sight) != 2 {
				return fmt.Errorf("--los takes START,END, got %d cells", len(opts.sight))
			}
			return runRender(cmd, &opts)
		},
	}
	addGridFlags(cmd, &opts.grid)
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", opts.output, "output SVG file")
	f.IntVar(&opts.width, "width", opts.width, "canvas width")
	f.IntVar(&opts.height, "height", opts.height, "canvas height")
	f.BoolVar(&opts.territories, "territories", opts.territories, "fill cells by territory and draw frontiers")
	f.BoolVar(&opts.centers, "centers", false, "mark cell centers")
	f.IntSliceVar(&opts.path, "path", nil, "draw the path between START,END")
	f.IntSliceVar(&opts.sight, "los", nil, "draw the line of sight samples between START,END")
	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOpts) error {
	logger := loggerFromContext(cmd.Context())
	g, err := opts.grid.build(cmd)
	if err != nil {
		return err
	}

	setters, err := opts.overlays(g)
	if err != nil {
		return err
	}
	f, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := render.SVG(f, g.Cells(), g.Territories(), setters...); err != nil {
		return err
	}
	logger.Debug("rendered", "file", opts.output, "width", opts.width, "height", opts.height)
	printFile(cmd.OutOrStdout(), opts.output)
	return nil
}

func (opts *renderOpts) overlays(g *polygrid.Grid) ([]render.Option, error) {
	setters := []render.Option{
		render.WithSize(opts.width, opts.height),
		render.WithCenters(opts.centers),
	}
	if opts.territories {
		setters = append(setters, render.WithTerritories(g.TerritoryFrontiers()))
	}
	if len(opts.path) == 2 {
		start, end := opts.path[0], opts.path[1]
		path, _, ok := g.FindPath(start, end, pathfinding.Query{})
		if !ok {
			return nil, fmt.Errorf("no path from %d to %d", start, end)
		}
		setters = append(setters, render.WithPath(append([]int{start}, path...)), render.WithHighlight(start, end))
	}
	if len(opts.sight) == 2 {
		res := g.LineOfSight(opts.sight[0], opts.sight[1], los.Options{})
		setters = append(setters, render.WithPoints(res.Points))
	}
	return setters, nil
}
