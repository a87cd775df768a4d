// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package geom provides the planar primitives shared by the grid packages:
// points, segments with an order independent hash key, polygons and a
// connector that chains loose segments back into closed contours.
package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point is a position in the normalized grid frame, where the grid covers
// the square [-0.5, 0.5] x [-0.5, 0.5].
type Point = r2.Point

// snapScale is the inverse of the lattice step used to hash coordinates.
const snapScale = 1e9

// PointKey is a point snapped to the hashing lattice.
type PointKey struct {
	X, Y int64
}

// KeyOf returns the lattice key of p.
func KeyOf(p Point) PointKey {
	return PointKey{
		X: int64(math.Round(p.X * snapScale)),
		Y: int64(math.Round(p.Y * snapScale)),
	}
}

func (k PointKey) less(o PointKey) bool {
	if k.X != o.X {
		return k.X < o.X
	}
	return k.Y < o.Y
}

// SegmentKey identifies a segment by its snapped endpoints regardless of
// their order, so (a,b) and (b,a) hash to the same key.
type SegmentKey struct {
	A, B PointKey
}

// Segment is a boundary edge of a cell. Box and hexagonal grids share one
// Segment value between both cells it separates.
type Segment struct {
	Start, End Point

	// Border is set when only one cell owns the segment.
	Border  bool
	Deleted bool
	// TerritoryIndex is the territory owning the segment after the frontier
	// pass, or -1 when the segment separates two territories.
	TerritoryIndex int

	subdivisions []*Segment
	curvature    float64
}

// NewSegment returns a segment from start to end.
func NewSegment(start, end Point, border bool) *Segment {
	return &Segment{
		Start:          start,
		End:            end,
		Border:         border,
		TerritoryIndex: -1,
	}
}

// Key returns the order independent hash key of s.
func (s *Segment) Key() SegmentKey {
	a, b := KeyOf(s.Start), KeyOf(s.End)
	if b.less(a) {
		a, b = b, a
	}
	return SegmentKey{A: a, B: b}
}

// Length returns the euclidean length of s.
func (s *Segment) Length() float64 {
	return s.End.Sub(s.Start).Norm()
}

// Midpoint returns the point halfway between the endpoints.
func (s *Segment) Midpoint() Point {
	return s.Start.Add(s.End).Mul(0.5)
}

// Subdivide splits s into n consecutive pieces whose inner points are pushed
// sideways by curvature times the segment length. The pieces are computed in
// a canonical endpoint order, so two segments with swapped endpoints produce
// the same geometry, and the result is cached on s.
func (s *Segment) Subdivide(n int, curvature float64) []*Segment {
	if n < 2 || curvature == 0 {
		return []*Segment{s}
	}
	if len(s.subdivisions) == n && s.curvature == curvature {
		return s.subdivisions
	}

	a, b := s.Start, s.End
	reversed := KeyOf(b).less(KeyOf(a))
	if reversed {
		a, b = b, a
	}
	d := b.Sub(a)
	normal := d.Ortho()

	pts := make([]Point, n+1)
	pts[0], pts[n] = a, b
	for k := 1; k < n; k++ {
		t := float64(k) / float64(n)
		bow := curvature * math.Sin(math.Pi*t)
		pts[k] = a.Add(d.Mul(t)).Add(normal.Mul(bow))
	}
	if reversed {
		for i, j := 0, n; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}

	subs := make([]*Segment, n)
	for k := range n {
		subs[k] = NewSegment(pts[k], pts[k+1], s.Border)
	}
	s.subdivisions = subs
	s.curvature = curvature
	return subs
}
