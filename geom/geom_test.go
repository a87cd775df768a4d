// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Segment

func TestSegment_Key(t *testing.T) {
	a, b := Point{X: 0.1, Y: 0.2}, Point{X: -0.3, Y: 0.4}
	tests := []struct {
		name string
		s1   *Segment
		s2   *Segment
		same bool
	}{
		{"same direction", NewSegment(a, b, false), NewSegment(a, b, true), true},
		{"swapped endpoints", NewSegment(a, b, false), NewSegment(b, a, false), true},
		{"tiny jitter", NewSegment(a, b, false), NewSegment(a, Point{X: b.X + 1e-13, Y: b.Y}, false), true},
		{"different", NewSegment(a, b, false), NewSegment(a, Point{X: 0.3, Y: 0.4}, false), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s1.Key() == tt.s2.Key(); got != tt.same {
				t.Errorf("Key() equal = %v, want %v", got, tt.same)
			}
		})
	}
}

func TestSegment_SubdivideCanonical(t *testing.T) {
	a, b := Point{X: -0.2, Y: 0.1}, Point{X: 0.3, Y: -0.05}
	fwd := NewSegment(a, b, false).Subdivide(3, 0.1)
	rev := NewSegment(b, a, false).Subdivide(3, 0.1)
	if len(fwd) != 3 || len(rev) != 3 {
		t.Fatalf("Subdivide(3, 0.1) len = %d, %d, want 3", len(fwd), len(rev))
	}
	want := make(map[SegmentKey]bool)
	for _, s := range fwd {
		want[s.Key()] = true
	}
	for i, s := range rev {
		if !want[s.Key()] {
			t.Errorf("reversed Subdivide(...)[%d] = %v, not present in forward pieces", i, s)
		}
	}
	if fwd[0].Start != a || fwd[2].End != b {
		t.Errorf("Subdivide(...) endpoints = %v..%v, want %v..%v", fwd[0].Start, fwd[2].End, a, b)
	}
}

func TestSegment_SubdivideCached(t *testing.T) {
	s := NewSegment(Point{X: 0, Y: 0}, Point{X: 0.1, Y: 0}, true)
	first := s.Subdivide(3, 0.2)
	second := s.Subdivide(3, 0.2)
	if first[1] != second[1] {
		t.Errorf("Subdivide(3, 0.2) returned new pieces on second call, want cached")
	}
	if got := s.Subdivide(3, 0); len(got) != 1 || got[0] != s {
		t.Errorf("Subdivide(3, 0) = %v, want the segment itself", got)
	}
	for i, p := range first {
		if !p.Border {
			t.Errorf("Subdivide(...)[%d].Border = false, want inherited true", i)
		}
	}
}

// Polygon

func TestContour_Area(t *testing.T) {
	square := Contour{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	if got := square.SignedArea(); got != 1 {
		t.Errorf("SignedArea() = %v, want 1", got)
	}
	cw := Contour{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	if got := cw.SignedArea(); got != -1 {
		t.Errorf("SignedArea() = %v, want -1", got)
	}
}

func TestPolygon_ContainsWithHole(t *testing.T) {
	outer := Contour{{X: -2, Y: -2}, {X: 2, Y: -2}, {X: 2, Y: 2}, {X: -2, Y: 2}}
	hole := Contour{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	p := NewPolygon(outer, hole)
	tests := []struct {
		name string
		pt   Point
		want bool
	}{
		{"ring", Point{X: 1.5, Y: 0}, true},
		{"hole", Point{X: 0, Y: 0}, false},
		{"outside", Point{X: 3, Y: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.pt); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
	if got, want := p.Area(), 12.0; got != want {
		t.Errorf("Area() = %v, want %v", got, want)
	}
	if p.Contours[1].SignedArea() > 0 {
		t.Errorf("hole orientation = CCW, want CW")
	}
}

func TestPolygon_Centroid(t *testing.T) {
	p := NewPolygon(Contour{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}})
	got := p.Centroid()
	want := Point{X: 1, Y: 1}
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 {
		t.Errorf("Centroid() = %v, want %v", got, want)
	}
}

// Connector

func TestConnector_Polygon(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	var c Connector
	// Shuffled and flipped segments.
	c.Add(NewSegment(pts[2], pts[1], false))
	c.Add(NewSegment(pts[0], pts[1], false))
	c.Add(NewSegment(pts[3], pts[0], false))
	c.Add(NewSegment(pts[2], pts[3], false))
	c.Add(NewSegment(pts[1], pts[0], false))

	if got := c.Len(); got != 4 {
		t.Errorf("Len() = %v, want 4", got)
	}
	p := c.Polygon()
	if p == nil {
		t.Fatalf("Polygon() = nil, want square")
	}
	if got := p.Area(); math.Abs(got-1) > 1e-12 {
		t.Errorf("Polygon().Area() = %v, want 1", got)
	}
}

func TestConnector_Holes(t *testing.T) {
	var c Connector
	addRing(&c, []Point{{X: -2, Y: -2}, {X: 2, Y: -2}, {X: 2, Y: 2}, {X: -2, Y: 2}})
	addRing(&c, []Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}})
	addRing(&c, []Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}})

	p := c.Polygon()
	if p == nil {
		t.Fatalf("Polygon() = nil, want polygon with hole")
	}
	if got := len(p.Contours); got != 2 {
		t.Errorf("len(Polygon().Contours) = %v, want 2", got)
	}
	if diff := cmp.Diff(16.0, p.Contours[0].Area()); diff != "" {
		t.Errorf("outer area mismatch (-want +got):\n%s", diff)
	}
}

func TestConnector_OpenStrip(t *testing.T) {
	var c Connector
	c.Add(NewSegment(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, false))
	c.Add(NewSegment(Point{X: 1, Y: 0}, Point{X: 1, Y: 1}, false))
	if p := c.Polygon(); p != nil {
		t.Errorf("Polygon() = %v, want nil", p)
	}
}

// Helpers

func addRing(c *Connector, pts []Point) {
	for i := range pts {
		c.Add(NewSegment(pts[i], pts[(i+1)%len(pts)], false))
	}
}
