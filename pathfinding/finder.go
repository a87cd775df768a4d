// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package pathfinding runs A* over a cell set. Box and hexagonal cells are
// searched on their column/row matrix; irregular cells are searched on the
// adjacency graph.
package pathfinding

import (
	"container/heap"
	"fmt"
	"slices"

	"github.com/2dChan/polygrid/core"
)

const (
	DefaultMaxSteps     = 2000
	DefaultMaxCost      = 200000
	DefaultDiagonalCost = 1.4
)

// Settings are the session defaults applied to every query.
type Settings struct {
	Heuristic Heuristic `toml:"heuristic" json:"heuristic"`
	// HeuristicEstimate scales the heuristic. Values above 1 trade path
	// quality for speed.
	HeuristicEstimate float64 `toml:"heuristic_estimate" json:"heuristic_estimate"`
	// Diagonals enables corner moves on box grids.
	Diagonals    bool    `toml:"diagonals" json:"diagonals"`
	DiagonalCost float64 `toml:"diagonal_cost" json:"diagonal_cost"`
	MaxSteps     int     `toml:"max_steps" json:"max_steps"`
	MaxCost      float64 `toml:"max_cost" json:"max_cost"`
}

// DefaultSettings returns the settings used by a new Finder.
func DefaultSettings() Settings {
	return Settings{
		Heuristic:         HeuristicEuclidean,
		HeuristicEstimate: 1,
		Diagonals:         true,
		DiagonalCost:      DefaultDiagonalCost,
		MaxSteps:          DefaultMaxSteps,
		MaxCost:           DefaultMaxCost,
	}
}

// CrossCheck selects which cells must have CanCross set.
type CrossCheck int

const (
	// CrossCheckDefault requires CanCross on every cell, start and end included.
	CrossCheckDefault CrossCheck = iota
	CrossCheckIgnoreAll
	CrossCheckIgnoreStartEnd
)

func (c CrossCheck) String() string {
	switch c {
	case CrossCheckDefault:
		return "default"
	case CrossCheckIgnoreAll:
		return "ignore-all"
	case CrossCheckIgnoreStartEnd:
		return "ignore-start-end"
	}
	return fmt.Sprintf("CrossCheck(%d)", int(c))
}

// Query holds the per-call limits and filters. Zero limits fall back to
// the finder settings.
type Query struct {
	MaxCost  float64
	MaxSteps int
	// GroupMask keeps cells whose Group shares a bit with it. 0 keeps all.
	GroupMask  int
	CrossCheck CrossCheck
	// CostFunc adds an extra cost for entering a cell.
	CostFunc func(cell int) float64
}

// Finder answers path queries over one cell set. The search space is built
// once from the cell positions; cell flags and costs are read live, so only
// a change of the cell set or its layout needs a new Finder.
//
// A Finder reuses scratch buffers between queries and is not safe for
// concurrent use.
type Finder struct {
	cells    []*core.Cell
	space    space
	settings Settings

	g      []float64
	parent []int
	steps  []int
	stamp  []uint32
	closed []uint32
	gen    uint32
	open   nodePQ
	moves  []move
}

// NewFinder returns a finder over cells. Box and hexagonal topologies with
// positive rows and columns use the column/row matrix; anything else falls
// back to the adjacency graph.
func NewFinder(t core.Topology, cells []*core.Cell, rows, columns int, evenLayout bool) *Finder {
	var sp space
	if t.HasRowsColumns() && rows > 0 && columns > 0 {
		sp = newMatrixSpace(t, cells, rows, columns, evenLayout)
	} else {
		sp = &graphSpace{topology: t, cells: cells}
	}
	n := sp.size()
	return &Finder{
		cells:    cells,
		space:    sp,
		settings: DefaultSettings(),
		g:        make([]float64, n),
		parent:   make([]int, n),
		steps:    make([]int, n),
		stamp:    make([]uint32, n),
		closed:   make([]uint32, n),
	}
}

// Settings returns the session defaults.
func (f *Finder) Settings() Settings {
	return f.settings
}

// SetSettings replaces the session defaults.
func (f *Finder) SetSettings(s Settings) {
	f.settings = s
}

// FindPath returns the cheapest route from start to end as cell indices,
// start excluded and end included, with its total cost. ok is false when
// no route satisfies the query. A route from a cell to itself is empty.
//
// The cost of a step is the entered cell's cross cost on the entered side,
// multiplied by the diagonal cost for box corner moves, plus CostFunc.
// Hidden cells are never entered.
func (f *Finder) FindPath(start, end int, q Query) (path []int, cost float64, ok bool) {
	if start < 0 || start >= len(f.cells) || end < 0 || end >= len(f.cells) {
		return nil, 0, false
	}
	if start == end {
		return []int{}, 0, true
	}
	src, dst := f.space.locate(start), f.space.locate(end)
	if src < 0 || dst < 0 || !f.cells[start].Visible {
		return nil, 0, false
	}
	if q.CrossCheck == CrossCheckDefault && !f.cells[start].CanCross {
		return nil, 0, false
	}
	if !f.passable(end, true, q) {
		return nil, 0, false
	}

	maxSteps := firstPositive(q.MaxSteps, f.settings.MaxSteps, DefaultMaxSteps)
	maxCost := firstPositive(q.MaxCost, f.settings.MaxCost, DefaultMaxCost)
	diagonalCost := firstPositive(f.settings.DiagonalCost, DefaultDiagonalCost)

	f.reset()
	f.mark(src, 0, -1, 0)
	f.open = f.open[:0]
	heap.Push(&f.open, nodeItem{loc: src, f: f.estimate(src, dst, diagonalCost)})

	for f.open.Len() > 0 {
		it := heap.Pop(&f.open).(nodeItem)
		if f.closed[it.loc] == f.gen || it.g > f.g[it.loc] {
			continue
		}
		f.closed[it.loc] = f.gen
		if it.loc == dst {
			return f.route(src, dst), f.g[dst], true
		}
		if f.steps[it.loc] >= maxSteps {
			continue
		}

		f.moves = f.space.expand(it.loc, f.settings.Diagonals, f.moves[:0])
		for _, mv := range f.moves {
			if f.closed[mv.loc] == f.gen {
				continue
			}
			ci := f.space.cell(mv.loc)
			if !f.passable(ci, mv.loc == dst, q) {
				continue
			}
			step := f.cells[ci].SideCrossCost(mv.side)
			if mv.diagonal {
				step *= diagonalCost
			}
			if q.CostFunc != nil {
				step += q.CostFunc(ci)
			}
			ng := it.g + max(step, 0)
			if ng > maxCost {
				continue
			}
			if f.stamp[mv.loc] == f.gen && ng >= f.g[mv.loc] {
				continue
			}
			f.mark(mv.loc, ng, it.loc, f.steps[it.loc]+1)
			heap.Push(&f.open, nodeItem{loc: mv.loc, f: ng + f.estimate(mv.loc, dst, diagonalCost), g: ng})
		}
	}
	return nil, 0, false
}

// Within returns, in ascending order, the cells other than origin that can
// be reached in at most maxDistance steps under q. Candidates are searched
// one by one with FindPath.
func (f *Finder) Within(origin, maxDistance int, q Query) []int {
	if origin < 0 || origin >= len(f.cells) || maxDistance <= 0 {
		return nil
	}
	loc := f.space.locate(origin)
	if loc < 0 {
		return nil
	}
	if q.MaxSteps <= 0 || q.MaxSteps > maxDistance {
		q.MaxSteps = maxDistance
	}
	var out []int
	for _, l := range f.space.around(loc, maxDistance, nil) {
		ci := f.space.cell(l)
		if _, _, ok := f.FindPath(origin, ci, q); ok {
			out = append(out, ci)
		}
	}
	slices.Sort(out)
	return out
}

func (f *Finder) passable(ci int, isEnd bool, q Query) bool {
	c := f.cells[ci]
	if !c.Visible {
		return false
	}
	if q.GroupMask != 0 && c.Group&q.GroupMask == 0 {
		return false
	}
	switch q.CrossCheck {
	case CrossCheckIgnoreAll:
		return true
	case CrossCheckIgnoreStartEnd:
		if isEnd {
			return true
		}
	}
	return c.CanCross
}

func (f *Finder) estimate(from, to int, diagonalCost float64) float64 {
	dx, dy := f.space.delta(from, to)
	if dx == 0 && dy == 0 {
		return 0
	}
	k := firstPositive(f.settings.HeuristicEstimate, 1)
	return k * f.settings.Heuristic.estimate(dx, dy, diagonalCost)
}

func (f *Finder) reset() {
	f.gen++
	if f.gen == 0 {
		clear(f.stamp)
		clear(f.closed)
		f.gen = 1
	}
}

func (f *Finder) mark(loc int, g float64, parent, steps int) {
	f.stamp[loc] = f.gen
	f.g[loc] = g
	f.parent[loc] = parent
	f.steps[loc] = steps
}

func (f *Finder) route(src, dst int) []int {
	path := make([]int, 0, f.steps[dst])
	for loc := dst; loc != src; loc = f.parent[loc] {
		path = append(path, f.space.cell(loc))
	}
	slices.Reverse(path)
	return path
}

func firstPositive[T int | float64](vs ...T) T {
	for _, v := range vs {
		if v > 0 {
			return v
		}
	}
	var zero T
	return zero
}
