// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package polygrid builds polygon grids (irregular Voronoi, box or
// hexagonal) in the normalized square [-0.5, 0.5]² and answers queries over
// them: cell lookup, territories, path finding and line of sight.
//
// A Grid is an explicit handle; there is no package level state. Mutating
// calls mark derived data stale and the next read rebuilds it. A Grid is
// not safe for concurrent use.
package polygrid

import (
	"fmt"
	"io"

	"github.com/2dChan/polygrid/adjacency"
	"github.com/2dChan/polygrid/core"
	"github.com/2dChan/polygrid/geom"
	"github.com/2dChan/polygrid/pathfinding"
	"github.com/2dChan/polygrid/topology"
	"github.com/charmbracelet/log"
)

type dirtyFlags uint8

const (
	dirtyCellOrder dirtyFlags = 1 << iota
	dirtyPositions
	dirtyTags
	dirtyRoutes
	dirtyTerritories
	dirtyTerritoryOrder

	dirtyCellSet = dirtyCellOrder | dirtyPositions | dirtyTags | dirtyRoutes | dirtyTerritories | dirtyTerritoryOrder
)

// Grid is a generated cell set with its territories and query caches.
type Grid struct {
	cfg    Config
	params topology.Params
	logger *log.Logger

	cells       []*core.Cell
	territories []*core.Territory
	frontiers   []*geom.Segment

	dirty          dirtyFlags
	cellOrder      []int
	territoryOrder []int
	positions      []int
	tags           map[int]int
	finder         *pathfinding.Finder
	crossCostFunc  func(cell int) float64

	observers            []observerEntry
	nextObserverID       int
	hoveredCell          int
	hoveredTerritory     int
	highlightedCell      int
	highlightedTerritory int
	last                 Interaction
}

// New generates a grid from DefaultConfig adjusted by setters.
func New(setters ...Option) (*Grid, error) {
	return NewFromConfig(DefaultConfig(), setters...)
}

// NewFromConfig generates a grid from cfg adjusted by setters.
func NewFromConfig(cfg Config, setters ...Option) (*Grid, error) {
	opts := Options{
		Config: cfg,
		Logger: log.New(io.Discard),
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	g := &Grid{
		cfg:    opts.Config,
		logger: opts.Logger,
	}
	if err := g.Generate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Config returns the configuration the grid was generated from.
func (g *Grid) Config() Config {
	return g.cfg
}

// SetConfig replaces the configuration and regenerates the grid. On error
// the grid is left unchanged.
func (g *Grid) SetConfig(cfg Config) error {
	prev := g.cfg
	g.cfg = cfg
	if err := g.Generate(); err != nil {
		g.cfg = prev
		return err
	}
	return nil
}

// Logger returns the grid logger.
func (g *Grid) Logger() *log.Logger {
	return g.logger
}

// Topology returns the cell layout.
func (g *Grid) Topology() core.Topology {
	return g.params.Topology
}

// Rows returns the number of rows of a box or hexagonal grid, or 0.
func (g *Grid) Rows() int {
	if !g.params.Topology.HasRowsColumns() {
		return 0
	}
	return g.params.Rows
}

// Columns returns the number of columns of a box or hexagonal grid, or 0.
func (g *Grid) Columns() int {
	if !g.params.Topology.HasRowsColumns() {
		return 0
	}
	return g.params.Columns
}

// EvenLayout reports whether even hexagonal columns are shifted down.
func (g *Grid) EvenLayout() bool {
	return g.params.EvenLayout
}

// Generate rebuilds every cell from the configuration, then regrows the
// configured number of territories. Cell settings are lost.
func (g *Grid) Generate() error {
	p := topology.Params{
		Topology:    g.cfg.Topology,
		CellCount:   g.cfg.CellCount,
		Rows:        g.cfg.Rows,
		Columns:     g.cfg.Columns,
		Seed:        g.cfg.Seed,
		Relaxation:  g.cfg.Relaxation,
		Curvature:   g.cfg.Curvature,
		EvenLayout:  g.cfg.EvenLayout,
		Sites:       g.cfg.Sites,
		Territories: g.cfg.Territories,
	}
	p, err := p.Normalize()
	if err != nil {
		return fmt.Errorf("polygrid: %w", err)
	}
	cells, err := topology.Generate(p)
	if err != nil {
		return fmt.Errorf("polygrid: %w", err)
	}
	adjacency.Build(cells)
	adjacency.UpdateBounds(cells)

	g.params = p
	g.cells = cells
	g.territories = nil
	g.frontiers = nil
	g.finder = nil
	g.dirty = dirtyCellSet
	g.resetInteraction()
	g.logger.Debug("grid generated",
		"topology", p.Topology, "cells", len(cells), "relaxation", p.Relaxation, "curvature", p.Curvature)

	g.AssignTerritories(g.cfg.Territories)
	return nil
}

func (g *Grid) validCell(i int) bool {
	return i >= 0 && i < len(g.cells)
}

func (g *Grid) validTerritory(i int) bool {
	return i >= 0 && i < len(g.territories)
}

// sortedCells returns the cell indices in point query order.
func (g *Grid) sortedCells() []int {
	if g.dirty&dirtyCellOrder != 0 {
		g.cellOrder = adjacency.SortByArea(g.cells)
		g.dirty &^= dirtyCellOrder
	}
	return g.cellOrder
}

// positionIndex maps row*columns+column to a cell index or -1.
func (g *Grid) positionIndex() []int {
	if g.dirty&dirtyPositions == 0 {
		return g.positions
	}
	g.dirty &^= dirtyPositions
	if !g.params.Topology.HasRowsColumns() {
		g.positions = nil
		return nil
	}
	rows, cols := g.params.Rows, g.params.Columns
	g.positions = make([]int, rows*cols)
	for i := range g.positions {
		g.positions[i] = -1
	}
	for i, c := range g.cells {
		if c.Row < 0 || c.Row >= rows || c.Column < 0 || c.Column >= cols {
			continue
		}
		if k := c.Row*cols + c.Column; g.positions[k] == -1 {
			g.positions[k] = i
		}
	}
	return g.positions
}

func (g *Grid) routeFinder() *pathfinding.Finder {
	if g.finder == nil || g.dirty&dirtyRoutes != 0 {
		g.finder = pathfinding.NewFinder(g.params.Topology, g.cells, g.Rows(), g.Columns(), g.params.EvenLayout)
		g.finder.SetSettings(g.cfg.PathFinding)
		g.dirty &^= dirtyRoutes
		g.logger.Debug("route matrix rebuilt", "cells", len(g.cells))
	}
	return g.finder
}
