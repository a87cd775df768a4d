// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package polygrid

import (
	"github.com/2dChan/polygrid/pathfinding"
)

// FindPath returns the cheapest route from start to end, start excluded and
// end included, with its cost. ok is false when no route exists within the
// query limits. A query without CostFunc uses the grid cross cost function.
func (g *Grid) FindPath(start, end int, q pathfinding.Query) (path []int, cost float64, ok bool) {
	if q.CostFunc == nil {
		q.CostFunc = g.crossCostFunc
	}
	return g.routeFinder().FindPath(start, end, q)
}

// CellNeighboursWithin returns the cells reachable from cell i in at most
// maxDistance steps under q. Each candidate around i is searched on its own.
func (g *Grid) CellNeighboursWithin(i, maxDistance int, q pathfinding.Query) []int {
	if q.CostFunc == nil {
		q.CostFunc = g.crossCostFunc
	}
	return g.routeFinder().Within(i, maxDistance, q)
}

// SetCrossCostFunc installs a function adding a dynamic cost for entering
// a cell to every path query. nil removes it.
func (g *Grid) SetCrossCostFunc(f func(cell int) float64) {
	g.crossCostFunc = f
}

// PathFindingConfig returns the path finding session defaults.
func (g *Grid) PathFindingConfig() pathfinding.Settings {
	return g.cfg.PathFinding
}

// SetPathFindingConfig replaces the path finding session defaults.
func (g *Grid) SetPathFindingConfig(s pathfinding.Settings) {
	g.cfg.PathFinding = s
	if g.finder != nil {
		g.finder.SetSettings(s)
	}
}
