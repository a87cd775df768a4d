// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package polygrid

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/2dChan/polygrid/core"
	"github.com/2dChan/polygrid/geom"
	"github.com/2dChan/polygrid/territory"
)

// AssignTerritories clears every cell territory and grows n territories
// from the grid seed. It returns the number actually created, which is
// lower than n when visible cells run out.
func (g *Grid) AssignTerritories(n int) int {
	n = min(max(n, 0), territory.MaxTerritories)
	g.territories = territory.Assign(g.cells, n, g.cfg.Seed)
	g.dirty |= dirtyTerritories | dirtyTerritoryOrder
	if len(g.territories) < n {
		g.logger.Warn("fewer territories than requested", "requested", n, "created", len(g.territories))
	}
	return len(g.territories)
}

// RecomputeTerritories rebuilds territory membership, neighbours, outlines
// and frontiers from the cell territory indices. Reads through the Grid
// call it on demand; call it directly before reading territory geometry
// held from an earlier read.
func (g *Grid) RecomputeTerritories() {
	g.frontiers = territory.FindFrontiers(g.cells, g.territories)
	g.dirty &^= dirtyTerritories
	g.dirty |= dirtyTerritoryOrder
	g.logger.Debug("territories recomputed", "territories", len(g.territories), "frontiers", len(g.frontiers))
}

func (g *Grid) territoriesReady() {
	if g.dirty&dirtyTerritories != 0 {
		g.RecomputeTerritories()
	}
}

// TerritoryCount returns the number of territories.
func (g *Grid) TerritoryCount() int {
	return len(g.territories)
}

// Territory returns territory i, or nil.
func (g *Grid) Territory(i int) *core.Territory {
	if !g.validTerritory(i) {
		return nil
	}
	g.territoriesReady()
	return g.territories[i]
}

// Territories returns all territories.
func (g *Grid) Territories() []*core.Territory {
	g.territoriesReady()
	return g.territories
}

// TerritoryNeighbours returns a copy of the territories adjacent to i.
func (g *Grid) TerritoryNeighbours(i int) []int {
	if !g.validTerritory(i) {
		return nil
	}
	g.territoriesReady()
	return slices.Clone(g.territories[i].Neighbours())
}

// TerritoryCells returns a copy of the member cells of territory i.
func (g *Grid) TerritoryCells(i int) []int {
	if !g.validTerritory(i) {
		return nil
	}
	g.territoriesReady()
	return slices.Clone(g.territories[i].Cells)
}

// TerritoryFrontiers returns every frontier segment of the last recompute.
func (g *Grid) TerritoryFrontiers() []*geom.Segment {
	g.territoriesReady()
	return g.frontiers
}

// TerritoryAt returns the visible territory whose outline contains p, or -1.
func (g *Grid) TerritoryAt(p geom.Point) int {
	g.territoriesReady()
	if g.dirty&dirtyTerritoryOrder != 0 {
		g.territoryOrder = make([]int, len(g.territories))
		for i := range g.territoryOrder {
			g.territoryOrder[i] = i
		}
		slices.SortStableFunc(g.territoryOrder, func(a, b int) int {
			return cmp.Compare(g.territories[a].Region.RectArea, g.territories[b].Region.RectArea)
		})
		g.dirty &^= dirtyTerritoryOrder
	}
	for _, i := range g.territoryOrder {
		t := g.territories[i]
		if t.Visible && t.Contains(p) {
			return i
		}
	}
	return -1
}

func (g *Grid) TerritorySetVisible(i int, visible bool) {
	if g.validTerritory(i) {
		g.territories[i].Visible = visible
		if !visible && g.highlightedTerritory == i {
			g.highlightedTerritory = -1
		}
	}
}

func (g *Grid) TerritoryIsVisible(i int) bool {
	return g.validTerritory(i) && g.territories[i].Visible
}

// CellSetTerritory moves cell i into territory t, or out of any territory
// when t is -1. Territories up to t are created when missing. It reports
// whether the cell changed.
func (g *Grid) CellSetTerritory(i, t int) bool {
	if !g.validCell(i) || t < -1 || t >= territory.MaxTerritories {
		return false
	}
	if g.cells[i].TerritoryIndex == t {
		return false
	}
	if t >= len(g.territories) {
		palette := territory.Palette(t + 1)
		for k := len(g.territories); k <= t; k++ {
			terr := core.NewTerritory(k, strconv.Itoa(k))
			terr.FillColor = palette[k]
			g.territories = append(g.territories, terr)
		}
	}
	g.cells[i].TerritoryIndex = t
	g.dirty |= dirtyTerritories
	return true
}

// CellTerritoryIndex returns the territory of cell i, or -1.
func (g *Grid) CellTerritoryIndex(i int) int {
	if !g.validCell(i) {
		return -1
	}
	return g.cells[i].TerritoryIndex
}
