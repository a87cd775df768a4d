// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package polygrid

import (
	"github.com/2dChan/polygrid/core"
)

// neighbourAcross returns the cell on the other side of side s of cell i,
// or -1. Box and hexagonal grids use the column/row offsets; irregular
// grids pick the first neighbour entered through the opposite side.
func (g *Grid) neighbourAcross(i int, s core.Side) int {
	c := g.cells[i]
	if g.params.Topology.HasRowsColumns() {
		dc, dr, ok := core.Offset(g.params.Topology, s, c.Column, g.params.EvenLayout)
		if !ok {
			return -1
		}
		return g.CellIndex(c.Row+dr, c.Column+dc, false)
	}
	want := s.Opposite()
	for _, n := range c.Neighbours() {
		if core.EnteringSide(g.params.Topology, g.cells[n].Center.Sub(c.Center)) == want {
			return n
		}
	}
	return -1
}

// sides returns the sides that can hold a cost on the grid topology.
func (g *Grid) sides() []core.Side {
	if g.params.Topology == core.TopologyBox {
		return core.BoxSides
	}
	return core.HexSides
}

// CellSetSideCrossCost sets the cost of crossing side s of cell i.
// DirectionEntering charges moves into cell i, DirectionExiting charges
// moves out of it (stored on the neighbour across s), DirectionBoth does
// both.
func (g *Grid) CellSetSideCrossCost(i int, s core.Side, cost float64, dir core.Direction) {
	if !g.validCell(i) {
		return
	}
	if dir != core.DirectionExiting {
		g.cells[i].SetSideCrossCost(s, cost)
	}
	if dir != core.DirectionEntering {
		if n := g.neighbourAcross(i, s); n >= 0 {
			g.cells[n].SetSideCrossCost(s.Opposite(), cost)
		}
	}
}

// CellSideCrossCost returns the cost of crossing side s of cell i in the
// given direction. DirectionBoth reads the entering cost. It returns 0 for
// an invalid cell or a side without neighbour when exiting.
func (g *Grid) CellSideCrossCost(i int, s core.Side, dir core.Direction) float64 {
	if !g.validCell(i) {
		return 0
	}
	if dir != core.DirectionExiting {
		return g.cells[i].SideCrossCost(s)
	}
	n := g.neighbourAcross(i, s)
	if n < 0 {
		return 0
	}
	return g.cells[n].SideCrossCost(s.Opposite())
}

// CellSetCrossCost sets the same cost on every side of cell i.
func (g *Grid) CellSetCrossCost(i int, cost float64, dir core.Direction) {
	if !g.validCell(i) {
		return
	}
	if dir != core.DirectionExiting {
		g.cells[i].SetCrossCost(cost)
	}
	if dir == core.DirectionEntering {
		return
	}
	if !g.params.Topology.HasRowsColumns() {
		c := g.cells[i]
		for _, n := range c.Neighbours() {
			side := core.EnteringSide(g.params.Topology, g.cells[n].Center.Sub(c.Center))
			g.cells[n].SetSideCrossCost(side, cost)
		}
		return
	}
	for _, s := range g.sides() {
		if n := g.neighbourAcross(i, s); n >= 0 {
			g.cells[n].SetSideCrossCost(s.Opposite(), cost)
		}
	}
}

// CellCrossCost returns the cost of crossing the top side of cell i, which
// is the cell cost when it was set with CellSetCrossCost.
func (g *Grid) CellCrossCost(i int, dir core.Direction) float64 {
	return g.CellSideCrossCost(i, core.SideTop, dir)
}

// CellSetCrossCostBetween sets the cost of moving from cell a into the
// adjacent cell b.
func (g *Grid) CellSetCrossCostBetween(a, b int, cost float64) {
	if !g.validCell(a) || !g.validCell(b) {
		return
	}
	g.cells[b].SetSideCrossCost(g.enteringSide(a, b), cost)
}

// CellCrossCostBetween returns the cost of moving from cell a into the
// adjacent cell b.
func (g *Grid) CellCrossCostBetween(a, b int) float64 {
	if !g.validCell(a) || !g.validCell(b) {
		return 0
	}
	return g.cells[b].SideCrossCost(g.enteringSide(a, b))
}

// enteringSide returns the side of b crossed when moving from a.
func (g *Grid) enteringSide(a, b int) core.Side {
	ca, cb := g.cells[a], g.cells[b]
	if g.params.Topology.HasRowsColumns() {
		for _, s := range g.sides() {
			dc, dr, _ := core.Offset(g.params.Topology, s, ca.Column, g.params.EvenLayout)
			if ca.Column+dc == cb.Column && ca.Row+dr == cb.Row {
				return s.Opposite()
			}
		}
	}
	return core.EnteringSide(g.params.Topology, cb.Center.Sub(ca.Center))
}

// CellSetSideBlocksLOS marks side s of cell i, and the facing side of the
// neighbour across it, as blocking line of sight.
func (g *Grid) CellSetSideBlocksLOS(i int, s core.Side, blocks bool) {
	if !g.validCell(i) {
		return
	}
	g.cells[i].SetSideBlocksLOS(s, blocks)
	if n := g.neighbourAcross(i, s); n >= 0 {
		g.cells[n].SetSideBlocksLOS(s.Opposite(), blocks)
	}
}

func (g *Grid) CellSideBlocksLOS(i int, s core.Side) bool {
	return g.validCell(i) && g.cells[i].SideBlocksLOS(s)
}

// CellHexagonDistance returns the number of hexagon steps between two
// cells regardless of costs, or -1.
func (g *Grid) CellHexagonDistance(a, b int) int {
	if !g.validCell(a) || !g.validCell(b) {
		return -1
	}
	ca, cb := g.cells[a], g.cells[b]
	return core.HexDistance(ca.Column, ca.Row, cb.Column, cb.Row, g.params.EvenLayout)
}

// CellBoxDistance returns the number of king moves between two box cells
// regardless of costs, or -1.
func (g *Grid) CellBoxDistance(a, b int) int {
	if !g.validCell(a) || !g.validCell(b) {
		return -1
	}
	ca, cb := g.cells[a], g.cells[b]
	return core.BoxDistance(ca.Column, ca.Row, cb.Column, cb.Row)
}
