// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package pathfinding

import (
	"slices"

	"github.com/2dChan/polygrid/core"
)

// move is one edge out of a search location. side is the side of the
// destination cell that is crossed.
type move struct {
	loc      int
	side     core.Side
	diagonal bool
}

// space maps cells onto search locations.
type space interface {
	size() int
	// locate returns the location of cell i, or -1.
	locate(i int) int
	// cell returns the cell index at loc, or -1 for an empty location.
	cell(loc int) int
	expand(loc int, diagonals bool, buf []move) []move
	// delta returns the estimate inputs between two locations, in steps.
	delta(from, to int) (dx, dy float64)
	// around appends the locations within distance steps of loc, loc
	// excluded. Matrix spaces use the enclosing square.
	around(loc, distance int, buf []int) []int
}

// matrixSpace addresses box and hexagonal cells by column and row.
// Locations are row*columns + column. A merged cell keeps a single
// location, so adjacency neighbours the offsets miss are expanded from
// the cell graph.
type matrixSpace struct {
	topology   core.Topology
	cells      []*core.Cell
	rows       int
	columns    int
	evenLayout bool
	grid       []int
	locs       []int
}

func newMatrixSpace(t core.Topology, cells []*core.Cell, rows, columns int, evenLayout bool) *matrixSpace {
	m := &matrixSpace{
		topology:   t,
		cells:      cells,
		rows:       rows,
		columns:    columns,
		evenLayout: evenLayout,
		grid:       make([]int, rows*columns),
		locs:       make([]int, len(cells)),
	}
	for i := range m.grid {
		m.grid[i] = -1
	}
	for i, c := range cells {
		m.locs[i] = -1
		if c.Row < 0 || c.Row >= rows || c.Column < 0 || c.Column >= columns {
			continue
		}
		loc := c.Row*columns + c.Column
		if m.grid[loc] == -1 {
			m.grid[loc] = i
			m.locs[i] = loc
		}
	}
	return m
}

func (m *matrixSpace) size() int { return len(m.grid) }

func (m *matrixSpace) locate(i int) int {
	if i < 0 || i >= len(m.locs) {
		return -1
	}
	return m.locs[i]
}

func (m *matrixSpace) cell(loc int) int { return m.grid[loc] }

func (m *matrixSpace) expand(loc int, diagonals bool, buf []move) []move {
	first := len(buf)
	col, row := loc%m.columns, loc/m.columns
	sides := core.HexSides
	if m.topology == core.TopologyBox {
		sides = core.BoxSides[:4]
		if diagonals {
			sides = core.BoxSides
		}
	}
	for _, s := range sides {
		dc, dr, ok := core.Offset(m.topology, s, col, m.evenLayout)
		if !ok {
			continue
		}
		c, r := col+dc, row+dr
		if c < 0 || c >= m.columns || r < 0 || r >= m.rows {
			continue
		}
		next := r*m.columns + c
		if m.grid[next] == -1 {
			continue
		}
		buf = append(buf, move{
			loc:      next,
			side:     s.Opposite(),
			diagonal: m.topology == core.TopologyBox && s.IsDiagonal(),
		})
	}

	from := m.cells[m.grid[loc]]
	for _, n := range from.Neighbours() {
		next := m.locate(n)
		if next < 0 || slices.ContainsFunc(buf[first:], func(mv move) bool { return mv.loc == next }) {
			continue
		}
		buf = append(buf, move{
			loc:  next,
			side: core.EnteringSide(m.topology, m.cells[n].Center.Sub(from.Center)),
		})
	}
	return buf
}

func (m *matrixSpace) delta(from, to int) (dx, dy float64) {
	c0, r0 := from%m.columns, from/m.columns
	c1, r1 := to%m.columns, to/m.columns
	if m.topology == core.TopologyHexagonal {
		return float64(core.HexDistance(c0, r0, c1, r1, m.evenLayout)), 0
	}
	return float64(c1 - c0), float64(r1 - r0)
}

func (m *matrixSpace) around(loc, distance int, buf []int) []int {
	col, row := loc%m.columns, loc/m.columns
	for r := max(row-distance, 0); r <= min(row+distance, m.rows-1); r++ {
		for c := max(col-distance, 0); c <= min(col+distance, m.columns-1); c++ {
			next := r*m.columns + c
			if next != loc && m.grid[next] != -1 {
				buf = append(buf, next)
			}
		}
	}
	return buf
}

// graphSpace walks the cell adjacency graph directly. Locations are cell
// indices and no distance estimate is made.
type graphSpace struct {
	topology core.Topology
	cells    []*core.Cell
}

func (g *graphSpace) size() int { return len(g.cells) }

func (g *graphSpace) locate(i int) int { return i }

func (g *graphSpace) cell(loc int) int { return loc }

func (g *graphSpace) expand(loc int, _ bool, buf []move) []move {
	from := g.cells[loc]
	for _, n := range from.Neighbours() {
		if n < 0 || n >= len(g.cells) {
			continue
		}
		buf = append(buf, move{
			loc:  n,
			side: core.EnteringSide(g.topology, g.cells[n].Center.Sub(from.Center)),
		})
	}
	return buf
}

func (g *graphSpace) delta(_, _ int) (dx, dy float64) { return 0, 0 }

func (g *graphSpace) around(loc, distance int, buf []int) []int {
	hops := map[int]int{loc: 0}
	queue := []int{loc}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if hops[cur] == distance {
			continue
		}
		for _, n := range g.cells[cur].Neighbours() {
			if _, seen := hops[n]; seen || n < 0 || n >= len(g.cells) {
				continue
			}
			hops[n] = hops[cur] + 1
			queue = append(queue, n)
			buf = append(buf, n)
		}
	}
	return buf
}
