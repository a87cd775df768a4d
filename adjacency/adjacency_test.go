// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package adjacency

import (
	"slices"
	"testing"

	"github.com/2dChan/polygrid/core"
	"github.com/2dChan/polygrid/geom"
	"github.com/2dChan/polygrid/topology"
	"github.com/google/go-cmp/cmp"
)

func TestBuild_Box(t *testing.T) {
	cells := mustGenerate(t, topology.Params{Topology: core.TopologyBox, Rows: 3, Columns: 3})
	Build(cells)

	tests := []struct {
		cell int
		want []int
	}{
		{0, []int{1, 3}},
		{4, []int{1, 3, 5, 7}},
		{8, []int{5, 7}},
	}
	for _, tt := range tests {
		got := slices.Clone(cells[tt.cell].Neighbours())
		slices.Sort(got)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("cells[%d].Neighbours() mismatch (-want +got):\n%s", tt.cell, diff)
		}
	}
	if cells[4].IsBorder() {
		t.Errorf("cells[4].IsBorder() = true, want false")
	}
	if !cells[0].IsBorder() {
		t.Errorf("cells[0].IsBorder() = false, want true")
	}
}

func TestBuild_Hexagonal(t *testing.T) {
	cells := mustGenerate(t, topology.Params{Topology: core.TopologyHexagonal, Rows: 5, Columns: 5, EvenLayout: true})
	Build(cells)

	byPos := make(map[[2]int]int)
	for i, c := range cells {
		byPos[[2]int{c.Column, c.Row}] = i
	}
	for i, c := range cells {
		var want []int
		for _, s := range core.HexSides {
			dc, dr, _ := core.Offset(core.TopologyHexagonal, s, c.Column, true)
			if j, ok := byPos[[2]int{c.Column + dc, c.Row + dr}]; ok {
				want = append(want, j)
			}
		}
		got := slices.Clone(c.Neighbours())
		slices.Sort(got)
		slices.Sort(want)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("cells[%d] (col %d row %d) neighbours mismatch (-want +got):\n%s", i, c.Column, c.Row, diff)
		}
	}
}

func TestBuild_Symmetric(t *testing.T) {
	tests := []struct {
		name string
		p    topology.Params
	}{
		{"irregular", topology.Params{Topology: core.TopologyIrregular, CellCount: 200, Seed: 1, Relaxation: 2}},
		{"irregular curved", topology.Params{Topology: core.TopologyIrregular, CellCount: 200, Seed: 1, Curvature: 0.08}},
		{"box", topology.Params{Topology: core.TopologyBox, Rows: 7, Columns: 9}},
		{"hex", topology.Params{Topology: core.TopologyHexagonal, Rows: 6, Columns: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := mustGenerate(t, tt.p)
			Build(cells)
			for i, c := range cells {
				if len(c.Neighbours()) == 0 {
					t.Errorf("cells[%d] has no neighbours", i)
				}
				for _, n := range c.Neighbours() {
					if n == i {
						t.Errorf("cells[%d] lists itself as neighbour", i)
					}
					if !slices.Contains(cells[n].Neighbours(), i) {
						t.Errorf("cells[%d] -> %d not mirrored", i, n)
					}
				}
			}
		})
	}
}

func TestBuild_CurvatureKeepsTopology(t *testing.T) {
	p := topology.Params{Topology: core.TopologyIrregular, CellCount: 120, Seed: 5}
	flat := mustGenerate(t, p)
	p.Curvature = 0.1
	curved := mustGenerate(t, p)
	Build(flat)
	Build(curved)
	for i := range flat {
		a := slices.Clone(flat[i].Neighbours())
		b := slices.Clone(curved[i].Neighbours())
		slices.Sort(a)
		slices.Sort(b)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("cells[%d] neighbours changed with curvature (-flat +curved):\n%s", i, diff)
		}
	}
}

func TestBuild_Idempotent(t *testing.T) {
	cells := mustGenerate(t, topology.Params{Topology: core.TopologyBox, Rows: 4, Columns: 4})
	Build(cells)
	first := slices.Clone(cells[5].Neighbours())
	Build(cells)
	if diff := cmp.Diff(first, cells[5].Neighbours()); diff != "" {
		t.Errorf("second Build changed neighbours (-want +got):\n%s", diff)
	}
}

func TestSortByArea(t *testing.T) {
	cells := []*core.Cell{core.NewCell(0, geom.Point{}), core.NewCell(1, geom.Point{}), core.NewCell(2, geom.Point{})}
	cells[0].Region.RectArea = 3
	cells[1].Region.RectArea = 1
	cells[2].Region.RectArea = 3
	if diff := cmp.Diff([]int{1, 0, 2}, SortByArea(cells)); diff != "" {
		t.Errorf("SortByArea() mismatch (-want +got):\n%s", diff)
	}
}

func TestCellAt(t *testing.T) {
	cells := mustGenerate(t, topology.Params{Topology: core.TopologyBox, Rows: 2, Columns: 2})
	UpdateBounds(cells)
	order := SortByArea(cells)

	if got := CellAt(cells, order, geom.Point{X: 0.25, Y: 0.25}); got != 3 {
		t.Errorf("CellAt(0.25, 0.25) = %v, want 3", got)
	}
	cells[3].Visible = false
	if got := CellAt(cells, order, geom.Point{X: 0.25, Y: 0.25}); got != -1 {
		t.Errorf("CellAt(0.25, 0.25) on hidden cell = %v, want -1", got)
	}
	if got := CellAt(cells, order, geom.Point{X: 2, Y: 2}); got != -1 {
		t.Errorf("CellAt(2, 2) = %v, want -1", got)
	}
}

// Helpers

func mustGenerate(t *testing.T, p topology.Params) []*core.Cell {
	t.Helper()
	cells, err := topology.Generate(p)
	if err != nil {
		t.Fatalf("topology.Generate(%+v) error = %v, want nil", p, err)
	}
	return cells
}
