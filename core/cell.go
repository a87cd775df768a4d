// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package core

import (
	"slices"

	"github.com/2dChan/polygrid/geom"
	"github.com/golang/geo/r2"
)

// Color is a straight RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Region is the shape of a cell or territory together with its neighbour
// list. Neighbours hold indices into the owner's slice.
type Region struct {
	Polygon    *geom.Polygon
	Segments   []*geom.Segment
	Neighbours []int

	Rect     r2.Rect
	RectArea float64
}

// NewRegion returns an empty region.
func NewRegion() *Region {
	return &Region{Rect: r2.EmptyRect()}
}

// UpdateBounds recomputes the cached rectangle and its area from the polygon,
// or from the segments when no polygon is set.
func (r *Region) UpdateBounds() {
	switch {
	case r.Polygon != nil:
		r.Rect = r.Polygon.Bounds()
	case len(r.Segments) > 0:
		r.Rect = r2.EmptyRect()
		for _, s := range r.Segments {
			r.Rect = r.Rect.AddPoint(s.Start).AddPoint(s.End)
		}
	default:
		r.Rect = r2.EmptyRect()
	}
	if r.Rect.IsEmpty() {
		r.RectArea = 0
		return
	}
	size := r.Rect.Size()
	r.RectArea = size.X * size.Y
}

// Contains reports whether p lies inside the region polygon.
func (r *Region) Contains(p geom.Point) bool {
	if r == nil || r.Polygon == nil {
		return false
	}
	if !r.Rect.IsEmpty() && !r.Rect.ContainsPoint(p) {
		return false
	}
	return r.Polygon.Contains(p)
}

// AddNeighbour appends i unless it is already listed.
func (r *Region) AddNeighbour(i int) bool {
	if slices.Contains(r.Neighbours, i) {
		return false
	}
	r.Neighbours = append(r.Neighbours, i)
	return true
}

// Cell is one polygon of the grid.
type Cell struct {
	Index  int
	Row    int
	Column int
	Center geom.Point
	Region *Region

	CanCross bool
	// Group is a bit field matched against path finding masks.
	Group          int
	TerritoryIndex int
	Visible        bool
	BorderVisible  bool
	Tag            int
	Color          Color
	TextureIndex   int

	crossCost []float64
	blocksLOS []bool
}

// NewCell returns a visible, crossable cell in group 1 without a territory.
func NewCell(index int, center geom.Point) *Cell {
	return &Cell{
		Index:          index,
		Center:         center,
		Region:         NewRegion(),
		CanCross:       true,
		Group:          1,
		TerritoryIndex: -1,
		Visible:        true,
		TextureIndex:   -1,
	}
}

// SideCrossCost returns the cost of entering the cell through s. Sides
// without an explicit cost cost 1.
func (c *Cell) SideCrossCost(s Side) float64 {
	if c.crossCost == nil || s < 0 || s >= NumSides {
		return 1
	}
	return c.crossCost[s]
}

// SetSideCrossCost sets the cost of entering the cell through s.
func (c *Cell) SetSideCrossCost(s Side, cost float64) {
	if s < 0 || s >= NumSides {
		return
	}
	c.ensureCrossCost()
	c.crossCost[s] = cost
}

// SetCrossCost sets the same entering cost on every side.
func (c *Cell) SetCrossCost(cost float64) {
	c.ensureCrossCost()
	for i := range c.crossCost {
		c.crossCost[i] = cost
	}
}

// HasCrossCost reports whether any side cost was ever set.
func (c *Cell) HasCrossCost() bool {
	return c.crossCost != nil
}

func (c *Cell) ensureCrossCost() {
	if c.crossCost != nil {
		return
	}
	c.crossCost = make([]float64, NumSides)
	for i := range c.crossCost {
		c.crossCost[i] = 1
	}
}

// SideBlocksLOS reports whether line of sight through s is blocked.
func (c *Cell) SideBlocksLOS(s Side) bool {
	if c.blocksLOS == nil || s < 0 || s >= NumSides {
		return false
	}
	return c.blocksLOS[s]
}

// SetSideBlocksLOS marks side s as blocking line of sight.
func (c *Cell) SetSideBlocksLOS(s Side, blocks bool) {
	if s < 0 || s >= NumSides {
		return
	}
	if c.blocksLOS == nil {
		if !blocks {
			return
		}
		c.blocksLOS = make([]bool, NumSides)
	}
	c.blocksLOS[s] = blocks
}

// Neighbours returns the indices of the adjacent cells.
func (c *Cell) Neighbours() []int {
	if c.Region == nil {
		return nil
	}
	return c.Region.Neighbours
}

// Polygon returns the cell outline.
func (c *Cell) Polygon() *geom.Polygon {
	if c.Region == nil {
		return nil
	}
	return c.Region.Polygon
}

// Contains reports whether p falls inside the cell.
func (c *Cell) Contains(p geom.Point) bool {
	return c.Region.Contains(p)
}

// IsBorder reports whether any boundary segment of the cell lies on the
// outer edge of the grid.
func (c *Cell) IsBorder() bool {
	if c.Region == nil {
		return false
	}
	for _, s := range c.Region.Segments {
		if s.Border {
			return true
		}
	}
	return false
}

// Territory is a group of cells sharing a territory index.
type Territory struct {
	Index     int
	Name      string
	Cells     []int
	FillColor Color
	// Capital is the index of the cell the territory grew from, or -1.
	Capital int
	Center  geom.Point
	Visible bool
	Region  *Region
}

// NewTerritory returns a visible territory without cells.
func NewTerritory(index int, name string) *Territory {
	return &Territory{
		Index:   index,
		Name:    name,
		Capital: -1,
		Visible: true,
		Region:  NewRegion(),
	}
}

// Neighbours returns the indices of adjacent territories.
func (t *Territory) Neighbours() []int {
	if t.Region == nil {
		return nil
	}
	return t.Region.Neighbours
}

// Contains reports whether p falls inside the territory outline.
func (t *Territory) Contains(p geom.Point) bool {
	return t.Region.Contains(p)
}
