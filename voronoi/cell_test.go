// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"errors"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
)

// Cell

func TestDiagram_CellOutOfRange(t *testing.T) {
	vd := mustNewDiagram(t, 10)
	for _, i := range []int{-1, 10} {
		if _, err := vd.Cell(i); err == nil {
			t.Errorf("vd.Cell(%d) error = nil, want non-nil", i)
		}
	}
}

func TestCell_Site(t *testing.T) {
	vd := mustNewDiagram(t, 100)
	for i, want := range vd.Sites {
		c := mustCell(t, vd, i)
		if got := c.Site(); got != want {
			t.Errorf("c.Site() = %v, want %v", got, want)
		}
	}
}

func TestCell_VertexIndices(t *testing.T) {
	vd := mustNewDiagram(t, 100)
	for i := range vd.Sites {
		c := mustCell(t, vd, i)
		want := vd.CellVertices[vd.CellOffsets[i]:vd.CellOffsets[i+1]]
		if diff := cmp.Diff(want, c.VertexIndices()); diff != "" {
			t.Errorf("c.VertexIndices() mismatch (-want +got):\n%s", diff)
		}
		if got := c.NumVertices(); got != len(want) {
			t.Errorf("c.NumVertices() = %v, want %v", got, len(want))
		}
	}
}

func TestCell_Vertex(t *testing.T) {
	vd := mustNewDiagram(t, 100)
	for i := range vd.Sites {
		c := mustCell(t, vd, i)
		for j, idx := range c.VertexIndices() {
			got, err := c.Vertex(j)
			if err != nil {
				t.Fatalf("c.Vertex(%d) error = %v, want nil", j, err)
			}
			if want := vd.Vertices[idx]; got != want {
				t.Errorf("c.Vertex(%d) = %v, want %v", j, got, want)
			}
		}
		if _, err := c.Vertex(c.NumVertices()); err == nil {
			t.Errorf("c.Vertex(%d) error = nil, want non-nil", c.NumVertices())
		}
	}
}

func TestCell_Neighbor(t *testing.T) {
	sites := []r2.Point{{X: -0.2, Y: 0.05}, {X: 0.3, Y: -0.1}}
	vd, err := NewDiagram(sites)
	if err != nil {
		t.Fatalf("NewDiagram(...) error = %v, want nil", err)
	}
	c := mustCell(t, vd, 0)
	if got := c.NumNeighbors(); got != 4 {
		t.Fatalf("c.NumNeighbors() = %v, want 4", got)
	}
	inner := 0
	for j, n := range c.NeighborIndices() {
		nc, err := c.Neighbor(j)
		if n < 0 {
			if !errors.Is(err, ErrBoundsEdge) {
				t.Errorf("c.Neighbor(%d) error = %v, want ErrBoundsEdge", j, err)
			}
			continue
		}
		inner++
		if err != nil || nc.Site() != sites[1] {
			t.Errorf("c.Neighbor(%d) = %v, %v, want site %v", j, nc.Site(), err, sites[1])
		}
	}
	if inner != 1 {
		t.Errorf("inner edges = %v, want 1", inner)
	}
	if got := c.Centroid(); !c.Contour().Contains(got) {
		t.Errorf("c.Centroid() = %v, want inside the cell", got)
	}
}
