// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/2dChan/polygrid/utils"
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// DiagramOptions

func TestWithEps(t *testing.T) {
	tests := []struct {
		name    string
		eps     float64
		wantErr bool
	}{
		{"eps positive", 1e-6, false},
		{"eps zero", 0, true},
		{"eps negative", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &DiagramOptions{Eps: defaultEps}
			err := WithEps(tt.eps)(opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithEps(%v) error = %v, wantErr %v", tt.eps, err, tt.wantErr)
			}
			if err == nil && opts.Eps != tt.eps {
				t.Errorf("WithEps(%v) opts.Eps = %v, want %v", tt.eps, opts.Eps, tt.eps)
			}
		})
	}
}

func TestWithBounds(t *testing.T) {
	tests := []struct {
		name    string
		bounds  r2.Rect
		wantErr bool
	}{
		{"unit", DefaultBounds, false},
		{"empty", r2.EmptyRect(), true},
		{"flat", r2.Rect{X: r1.Interval{Lo: 0, Hi: 1}, Y: r1.Interval{Lo: 0, Hi: 0}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &DiagramOptions{}
			if err := WithBounds(tt.bounds)(opts); (err != nil) != tt.wantErr {
				t.Errorf("WithBounds(%v) error = %v, wantErr %v", tt.bounds, err, tt.wantErr)
			}
		})
	}
}

// Diagram

func TestNewDiagram_NoSites(t *testing.T) {
	if _, err := NewDiagram(nil); !errors.Is(err, ErrNoSites) {
		t.Errorf("NewDiagram(nil) error = %v, want %v", err, ErrNoSites)
	}
}

func TestDiagram_Invariants(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"single", 1},
		{"minimal", 3},
		{"small", 10},
		{"medium", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vd := mustNewDiagram(t, tt.size)

			if got := vd.NumCells(); got != tt.size {
				t.Errorf("vd.NumCells() = %v, want %v", got, tt.size)
			}

			// Cells tile the bounds.
			var area float64
			for i := range vd.NumCells() {
				c := mustCell(t, vd, i)
				area += c.Contour().Area()
			}
			if math.Abs(area-1) > 1e-9 {
				t.Errorf("sum of cell areas = %v, want 1", area)
			}
		})
	}
}

func TestNewDiagram_SiteInsideCell(t *testing.T) {
	vd := mustNewDiagram(t, 300)

	for i := range vd.NumCells() {
		c := mustCell(t, vd, i)
		if !c.Contour().Contains(c.Site()) {
			t.Errorf("vd.Cell(%d) does not contain its site %v", i, c.Site())
		}
	}
}

func TestNewDiagram_VerifyCCW(t *testing.T) {
	vd := mustNewDiagram(t, 300)

	for i := range vd.NumCells() {
		c := mustCell(t, vd, i)
		ct := c.Contour()
		n := len(ct)
		for j := range n {
			a, b, o := ct[j], ct[(j+1)%n], c.Site()
			if a.Sub(o).Cross(b.Sub(o)) <= 0 {
				t.Errorf("vd.Cell(%d) vertices %d,%d not sorted in CCW", i, j, (j+1)%n)
			}
		}
	}
}

func TestNewDiagram_NeighborsSymmetric(t *testing.T) {
	vd := mustNewDiagram(t, 300)

	for i := range vd.NumCells() {
		c := mustCell(t, vd, i)
		for _, n := range c.NeighborIndices() {
			if n < 0 {
				continue
			}
			nc := mustCell(t, vd, n)
			if !slices.Contains(nc.NeighborIndices(), i) {
				t.Errorf("vd.Cell(%d) lists %d as neighbor, reverse link missing", i, n)
			}
		}
	}
}

func TestNewDiagram_BoundsEdges(t *testing.T) {
	vd := mustNewDiagram(t, 50)
	bounds := vd.Bounds()

	for i := range vd.NumCells() {
		c := mustCell(t, vd, i)
		ct := c.Contour()
		for j, n := range c.NeighborIndices() {
			if n >= 0 {
				continue
			}
			a, b := ct[j], ct[(j+1)%len(ct)]
			onX := (a.X == b.X) && (a.X == bounds.X.Lo || a.X == bounds.X.Hi)
			onY := (a.Y == b.Y) && (a.Y == bounds.Y.Lo || a.Y == bounds.Y.Hi)
			if !onX && !onY {
				t.Errorf("vd.Cell(%d) edge %d (%v,%v) labelled bounds, not on bounds", i, j, a, b)
			}
		}
	}
}

func TestDiagram_Relax(t *testing.T) {
	vd := mustNewDiagram(t, 100)
	if err := vd.Relax(-1); err == nil {
		t.Errorf("vd.Relax(-1) error = nil, want non-nil")
	}

	before := spread(t, vd)
	if err := vd.Relax(5); err != nil {
		t.Fatalf("vd.Relax(5) error = %v, want nil", err)
	}
	after := spread(t, vd)
	if after >= before {
		t.Errorf("cell area spread after Relax(5) = %v, want below %v", after, before)
	}
	for i, s := range vd.Sites {
		if !vd.Bounds().ContainsPoint(s) {
			t.Errorf("vd.Sites[%d] = %v escaped bounds", i, s)
		}
	}
}

// Benchmarks

func BenchmarkNewDiagram(b *testing.B) {
	sizes := []int{1e+2, 1e+3, 1e+4}
	for _, pointsCnt := range sizes {
		b.Run(fmt.Sprintf("N%d", pointsCnt), func(b *testing.B) {
			points := utils.GenerateRandomPoints(pointsCnt, 0)

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				if _, err := NewDiagram(points); err != nil {
					b.Fatalf("NewDiagram(...) error = %v, want nil", err)
				}
			}
		})
	}
}

// Helpers

func mustNewDiagram(t *testing.T, n int) *Diagram {
	t.Helper()
	points := utils.GenerateRandomPoints(n, 0)
	vd, err := NewDiagram(points)
	if err != nil {
		t.Fatalf("NewDiagram(...) error = %v, want nil", err)
	}
	return vd
}

func mustCell(t *testing.T, vd *Diagram, i int) Cell {
	t.Helper()
	c, err := vd.Cell(i)
	if err != nil {
		t.Fatalf("vd.Cell(%d) error = %v, want nil", i, err)
	}
	return c
}

// spread returns the difference between the largest and smallest cell area.
func spread(t *testing.T, vd *Diagram) float64 {
	t.Helper()
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range vd.NumCells() {
		a := mustCell(t, vd, i).Contour().Area()
		lo = min(lo, a)
		hi = max(hi, a)
	}
	return hi - lo
}
