// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package polygrid

import (
	"github.com/2dChan/polygrid/los"
)

func (g *Grid) tracer() *los.Tracer {
	return los.NewTracer(g.params.Topology, g.cells, g.sortedCells(), g.params.EvenLayout)
}

// LineOfSight reports whether cell end can be seen from cell start, with
// the cells and sample points along the line.
func (g *Grid) LineOfSight(start, end int, opts los.Options) los.Result {
	return g.tracer().Trace(start, end, opts)
}

// CellLine samples the line between two cell centers without checking
// anything along it.
func (g *Grid) CellLine(start, end, resolution int) los.Result {
	return g.tracer().Line(start, end, resolution)
}
