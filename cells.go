// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package polygrid

import (
	"slices"

	"github.com/2dChan/polygrid/adjacency"
	"github.com/2dChan/polygrid/core"
	"github.com/2dChan/polygrid/geom"
)

// CellCount returns the number of cells.
func (g *Grid) CellCount() int {
	return len(g.cells)
}

// Cell returns cell i, or nil when i is out of range. Use the Grid setters
// to change a cell so cached data stays valid.
func (g *Grid) Cell(i int) *core.Cell {
	if !g.validCell(i) {
		return nil
	}
	return g.cells[i]
}

// Cells returns all cells indexed by cell index.
func (g *Grid) Cells() []*core.Cell {
	return g.cells
}

// CellIndex returns the index of the cell at row and column of a box or
// hexagonal grid. Out of range positions are clamped when clamp is set and
// return -1 otherwise. Irregular grids always return -1.
func (g *Grid) CellIndex(row, column int, clamp bool) int {
	positions := g.positionIndex()
	if positions == nil {
		return -1
	}
	rows, cols := g.params.Rows, g.params.Columns
	if clamp {
		row = min(max(row, 0), rows-1)
		column = min(max(column, 0), cols-1)
	}
	if row < 0 || row >= rows || column < 0 || column >= cols {
		return -1
	}
	return positions[row*cols+column]
}

// CellAtRowColumn returns the cell at row and column, or nil.
func (g *Grid) CellAtRowColumn(row, column int) *core.Cell {
	return g.Cell(g.CellIndex(row, column, false))
}

// CellAt returns the visible cell containing p, or -1. Cells with smaller
// bounds win where bounds overlap.
func (g *Grid) CellAt(p geom.Point) int {
	return adjacency.CellAt(g.cells, g.sortedCells(), p)
}

// CellPosition returns the center of cell i.
func (g *Grid) CellPosition(i int) (geom.Point, bool) {
	if !g.validCell(i) {
		return geom.Point{}, false
	}
	return g.cells[i].Center, true
}

// CellVertexCount returns the number of outline vertices of cell i.
func (g *Grid) CellVertexCount(i int) int {
	if !g.validCell(i) || g.cells[i].Polygon() == nil {
		return 0
	}
	return len(g.cells[i].Polygon().Outer())
}

// CellVertex returns outline vertex v of cell i.
func (g *Grid) CellVertex(i, v int) (geom.Point, bool) {
	if v < 0 || v >= g.CellVertexCount(i) {
		return geom.Point{}, false
	}
	return g.cells[i].Polygon().Outer()[v], true
}

// CellNeighbours returns a copy of the neighbour indices of cell i.
func (g *Grid) CellNeighbours(i int) []int {
	if !g.validCell(i) {
		return nil
	}
	return slices.Clone(g.cells[i].Neighbours())
}

// CellIsBorder reports whether cell i touches the grid edge.
func (g *Grid) CellIsBorder(i int) bool {
	return g.validCell(i) && g.cells[i].IsBorder()
}

// CellSetVisible shows or hides cell i. Hidden cells are skipped by point
// queries, path finding and territory outlines.
func (g *Grid) CellSetVisible(i int, visible bool) {
	if !g.validCell(i) || g.cells[i].Visible == visible {
		return
	}
	g.cells[i].Visible = visible
	g.dirty |= dirtyTerritories
	if !visible && g.highlightedCell == i {
		g.highlightedCell = -1
	}
}

func (g *Grid) CellIsVisible(i int) bool {
	return g.validCell(i) && g.cells[i].Visible
}

// ApplyMask hides the cells whose center keep rejects and shows the rest.
// It returns the number of visible cells.
func (g *Grid) ApplyMask(keep func(center geom.Point) bool) int {
	visible := 0
	for i, c := range g.cells {
		v := keep(c.Center)
		g.CellSetVisible(i, v)
		if v {
			visible++
		}
	}
	return visible
}

func (g *Grid) CellSetColor(i int, c core.Color) {
	if g.validCell(i) {
		g.cells[i].Color = c
	}
}

func (g *Grid) CellColor(i int) core.Color {
	if !g.validCell(i) {
		return core.Color{}
	}
	return g.cells[i].Color
}

// CellSetTexture stores an opaque texture index for a renderer; -1 clears it.
func (g *Grid) CellSetTexture(i, texture int) {
	if g.validCell(i) {
		g.cells[i].TextureIndex = max(texture, -1)
	}
}

func (g *Grid) CellTextureIndex(i int) int {
	if !g.validCell(i) {
		return -1
	}
	return g.cells[i].TextureIndex
}

// CellSetCanCross sets whether path finding may enter cell i.
func (g *Grid) CellSetCanCross(i int, canCross bool) {
	if g.validCell(i) {
		g.cells[i].CanCross = canCross
	}
}

func (g *Grid) CellCanCross(i int) bool {
	return g.validCell(i) && g.cells[i].CanCross
}

// CellSetGroup sets the group bits matched against path finding and line
// of sight masks.
func (g *Grid) CellSetGroup(i, group int) {
	if g.validCell(i) {
		g.cells[i].Group = group
	}
}

// CellGroup returns the group bits of cell i, or 0.
func (g *Grid) CellGroup(i int) int {
	if !g.validCell(i) {
		return 0
	}
	return g.cells[i].Group
}

// CellsInGroup returns the cells whose group shares a bit with mask.
func (g *Grid) CellsInGroup(mask int) []int {
	var out []int
	for i, c := range g.cells {
		if c.Group&mask != 0 {
			out = append(out, i)
		}
	}
	return out
}

// CellSetTag sets a lookup tag on cell i. Tag 0 means untagged. When two
// cells share a tag, CellWithTag returns the lower index.
func (g *Grid) CellSetTag(i, tag int) {
	if g.validCell(i) {
		g.cells[i].Tag = tag
		g.dirty |= dirtyTags
	}
}

func (g *Grid) CellTag(i int) int {
	if !g.validCell(i) {
		return 0
	}
	return g.cells[i].Tag
}

// CellWithTag returns the cell carrying tag, or -1.
func (g *Grid) CellWithTag(tag int) int {
	if tag == 0 {
		return -1
	}
	if g.dirty&dirtyTags != 0 {
		g.tags = make(map[int]int)
		for i, c := range g.cells {
			if _, ok := g.tags[c.Tag]; c.Tag != 0 && !ok {
				g.tags[c.Tag] = i
			}
		}
		g.dirty &^= dirtyTags
	}
	if i, ok := g.tags[tag]; ok {
		return i
	}
	return -1
}
