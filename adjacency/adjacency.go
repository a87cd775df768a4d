// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package adjacency derives the neighbour graph of a cell set from shared
// boundary segments and maintains the cached cell bounds.
package adjacency

import (
	"cmp"
	"slices"

	"github.com/2dChan/polygrid/core"
	"github.com/2dChan/polygrid/geom"
)

// Build recomputes every cell's neighbour list and the Border flag of every
// boundary segment. Two cells are neighbours when they own a segment with
// the same key; a segment owned by only one cell is a border segment.
func Build(cells []*core.Cell) {
	owners := make(map[geom.SegmentKey]segmentOwner, len(cells)*6)
	for _, c := range cells {
		c.Region.Neighbours = c.Region.Neighbours[:0]
	}
	for i, c := range cells {
		for _, s := range c.Region.Segments {
			k := s.Key()
			prev, ok := owners[k]
			if !ok {
				s.Border = true
				owners[k] = segmentOwner{cell: i, segment: s}
				continue
			}
			s.Border = false
			prev.segment.Border = false
			if prev.cell == i {
				continue
			}
			cells[prev.cell].Region.AddNeighbour(i)
			c.Region.AddNeighbour(prev.cell)
		}
	}
}

type segmentOwner struct {
	cell    int
	segment *geom.Segment
}

// UpdateBounds refreshes the cached rectangle and area of every cell.
func UpdateBounds(cells []*core.Cell) {
	for _, c := range cells {
		c.Region.UpdateBounds()
	}
}

// SortByArea returns the cell indices ordered by ascending bounding
// rectangle area, so point queries hit small cells nested in large
// rectangles first. Ties keep index order.
func SortByArea(cells []*core.Cell) []int {
	order := make([]int, len(cells))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(cells[a].Region.RectArea, cells[b].Region.RectArea)
	})
	return order
}

// CellAt returns the first visible cell in order that contains p, or -1.
func CellAt(cells []*core.Cell, order []int, p geom.Point) int {
	for _, i := range order {
		c := cells[i]
		if c.Visible && c.Contains(p) {
			return i
		}
	}
	return -1
}
