// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package territory groups cells into territories by seeded round-robin
// growth and derives the territory outlines from the cell segments.
package territory

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/2dChan/polygrid/core"
	"github.com/2dChan/polygrid/geom"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// MaxTerritories bounds the number of territories a grid can hold.
const MaxTerritories = 256

// goldenAngle spreads palette hues so neighbouring indices differ clearly.
const goldenAngle = 137.50776405003785

// Assign clears every cell's territory and grows count territories from
// random seed cells. Each round every territory claims at most one free,
// visible neighbour, which keeps territory sizes balanced. The same seed
// over the same cells always yields the same partition.
//
// Fewer than count territories are returned when the visible cells run out.
func Assign(cells []*core.Cell, count int, seed int64) []*core.Territory {
	for _, c := range cells {
		c.TerritoryIndex = -1
	}
	count = min(count, MaxTerritories)
	n := len(cells)
	if count <= 0 || n == 0 {
		return nil
	}

	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	palette := Palette(count)
	territories := make([]*core.Territory, 0, count)
	for t := range count {
		p := random.Intn(n)
		z := 0
		for (cells[p].TerritoryIndex != -1 || !cells[p].Visible) && z <= n {
			p++
			if p >= n {
				p = 0
			}
			z++
		}
		if z > n {
			break
		}
		terr := core.NewTerritory(t, strconv.Itoa(t))
		terr.FillColor = palette[t]
		terr.Capital = p
		terr.Center = cells[p].Center
		terr.Cells = append(terr.Cells, p)
		cells[p].TerritoryIndex = t
		territories = append(territories, terr)
	}

	// cursor[k] skips cells of territory k that have no free neighbour left.
	cursor := make([]int, len(territories))
	for {
		claimed := false
		for k, terr := range territories {
			for cursor[k] < len(terr.Cells) {
				if claimNeighbour(cells, terr, cells[terr.Cells[cursor[k]]]) {
					claimed = true
					break
				}
				cursor[k]++
			}
		}
		if !claimed {
			break
		}
	}
	return territories
}

func claimNeighbour(cells []*core.Cell, terr *core.Territory, c *core.Cell) bool {
	for _, nb := range c.Neighbours() {
		other := cells[nb]
		if other.TerritoryIndex == -1 && other.Visible {
			other.TerritoryIndex = terr.Index
			terr.Cells = append(terr.Cells, nb)
			return true
		}
	}
	return false
}

// Palette returns count distinct fill colors.
func Palette(count int) []core.Color {
	colors := make([]core.Color, count)
	for i := range colors {
		h := math.Mod(float64(i)*goldenAngle, 360)
		c := colorful.Hsv(h, 0.55, 0.85)
		colors[i] = core.Color{R: c.R, G: c.G, B: c.B, A: 1}
	}
	return colors
}

// FindFrontiers rebuilds territory membership, neighbours and outlines from
// the cells' territory indices and returns every frontier segment.
//
// A segment is a frontier when it lies on the grid border of an assigned
// visible cell, or when the cells on its two sides belong to different
// territories. Segments separating two territories get TerritoryIndex -1 and
// make those territories neighbours. Hidden cells stay members of their
// territory but leave a gap in its outline. Cells whose index is at or
// beyond len(territories) are ignored.
func FindFrontiers(cells []*core.Cell, territories []*core.Territory) []*geom.Segment {
	n := len(territories)
	connectors := make([]geom.Connector, n)
	for _, t := range territories {
		t.Cells = t.Cells[:0]
		t.Region.Neighbours = t.Region.Neighbours[:0]
	}

	seen := make(map[geom.SegmentKey]int)
	var frontiers []*geom.Segment
	for i, c := range cells {
		ti := c.TerritoryIndex
		if ti >= n {
			continue
		}
		if ti >= 0 {
			territories[ti].Cells = append(territories[ti].Cells, i)
		}
		owner := -1
		if ti >= 0 && c.Visible {
			owner = ti
		}
		for _, s := range c.Region.Segments {
			if s.Border {
				s.TerritoryIndex = owner
				if owner >= 0 {
					connectors[owner].Add(s)
					frontiers = append(frontiers, s)
				}
				continue
			}
			k := s.Key()
			other, ok := seen[k]
			if !ok {
				seen[k] = owner
				s.TerritoryIndex = owner
				continue
			}
			if other == owner {
				continue
			}
			frontiers = append(frontiers, s)
			switch {
			case owner >= 0 && other >= 0:
				s.TerritoryIndex = -1
				connectors[owner].Add(s)
				connectors[other].Add(s)
				territories[owner].Region.AddNeighbour(other)
				territories[other].Region.AddNeighbour(owner)
			case owner >= 0:
				s.TerritoryIndex = owner
				connectors[owner].Add(s)
			default:
				s.TerritoryIndex = other
				connectors[other].Add(s)
			}
		}
	}

	for k, t := range territories {
		t.Region.Segments = connectors[k].Segments()
		if len(t.Cells) == 0 {
			t.Region.Polygon = nil
		} else {
			t.Region.Polygon = connectors[k].Polygon()
		}
		t.Region.UpdateBounds()
		if t.Region.Polygon != nil {
			t.Center = t.Region.Polygon.Centroid()
		}
	}
	return frontiers
}
