// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"errors"
	"fmt"

	"github.com/2dChan/polygrid/geom"
	"github.com/golang/geo/r2"
)

// ErrBoundsEdge is returned by Cell.Neighbor for edges on the clip bounds.
var ErrBoundsEdge = errors.New("voronoi: edge lies on the diagram bounds")

// Cell is the clipped region of one site, read through its Diagram.
type Cell struct {
	idx int
	d   *Diagram
}

// Site returns the site point of the cell.
func (c Cell) Site() r2.Point {
	return c.d.Sites[c.idx]
}

// NumVertices returns the number of vertices in the cell.
// This equals the number of edges. Cells of duplicated sites have none.
func (c Cell) NumVertices() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// VertexIndices returns the indices of the vertices that form the cell in the Diagram's Vertices,
// sorted in counter-clockwise order.
func (c Cell) VertexIndices() []int {
	return c.d.CellVertices[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Vertex returns corner i of the outline, counter-clockwise.
func (c Cell) Vertex(i int) (r2.Point, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return r2.Point{}, fmt.Errorf("Vertex: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Vertices[c.d.CellVertices[start+i]], nil
}

// NumNeighbors returns the number of edges, including edges on the bounds.
func (c Cell) NumNeighbors() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// NeighborIndices returns, per edge, the index of the cell on the other side
// or -1 for edges on the bounds.
func (c Cell) NeighborIndices() []int {
	return c.d.CellNeighbors[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Neighbor returns the cell across edge i, the edge from corner i to
// corner i+1. Edges on the clip bounds return ErrBoundsEdge.
func (c Cell) Neighbor(i int) (Cell, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return Cell{}, fmt.Errorf("Neighbor: index %d out of range [0 %d)", i, end-start)
	}
	nIdx := c.d.CellNeighbors[start+i]
	if nIdx < 0 {
		return Cell{}, fmt.Errorf("%w: edge %d", ErrBoundsEdge, i)
	}
	return c.d.Cell(nIdx)
}

// Contour returns the cell outline.
func (c Cell) Contour() geom.Contour {
	idx := c.VertexIndices()
	ct := make(geom.Contour, len(idx))
	for i, v := range idx {
		ct[i] = c.d.Vertices[v]
	}
	return ct
}

// Centroid returns the area centroid of the cell, or the site for empty cells.
func (c Cell) Centroid() r2.Point {
	if c.NumVertices() < 3 {
		return c.Site()
	}
	return geom.NewPolygon(c.Contour()).Centroid()
}
