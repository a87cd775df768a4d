// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package polygrid

import (
	"slices"

	"github.com/2dChan/polygrid/adjacency"
	"github.com/2dChan/polygrid/geom"
)

// CellMerge joins cell b into its neighbour a. The merged outline drops the
// segments the two cells shared, the merged center is the mean of both
// centers and a keeps its other settings. Cells after b shift down by one.
// It returns the new index of the merged cell, or -1 when the cells are not
// neighbours or their union does not close.
func (g *Grid) CellMerge(a, b int) int {
	if !g.validCell(a) || !g.validCell(b) || a == b {
		return -1
	}
	ca, cb := g.cells[a], g.cells[b]
	if !slices.Contains(ca.Neighbours(), b) {
		return -1
	}

	all := slices.Concat(ca.Region.Segments, cb.Region.Segments)
	count := make(map[geom.SegmentKey]int, len(all))
	for _, s := range all {
		count[s.Key()]++
	}
	var conn geom.Connector
	for _, s := range all {
		if count[s.Key()] == 1 {
			conn.Add(s)
		}
	}
	poly := conn.Polygon()
	if poly == nil {
		return -1
	}
	for _, s := range all {
		if count[s.Key()] > 1 {
			s.Deleted = true
		}
	}

	ca.Region.Segments = conn.Segments()
	ca.Region.Polygon = poly
	ca.Region.UpdateBounds()
	ca.Center = ca.Center.Add(cb.Center).Mul(0.5)
	g.removeCell(b)
	g.logger.Debug("cells merged", "cell", a, "merged", b)
	if a > b {
		return a - 1
	}
	return a
}

// CellRemove deletes cell i, leaving a hole in the grid. Cells after i
// shift down by one.
func (g *Grid) CellRemove(i int) bool {
	if !g.validCell(i) {
		return false
	}
	g.removeCell(i)
	return true
}

func (g *Grid) removeCell(i int) {
	g.cells = slices.Delete(g.cells, i, i+1)
	for k := i; k < len(g.cells); k++ {
		g.cells[k].Index = k
	}
	// Segments shared with the removed cell become borders.
	adjacency.Build(g.cells)

	for _, t := range g.territories {
		switch {
		case t.Capital == i:
			t.Capital = -1
		case t.Capital > i:
			t.Capital--
		}
	}
	g.finder = nil
	g.dirty |= dirtyCellSet
	g.resetInteraction()
}
