// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Contour is a closed ring of points. The closing edge from the last point
// back to the first is implicit.
type Contour []Point

// SignedArea returns the shoelace area, positive for counter-clockwise rings.
func (c Contour) SignedArea() float64 {
	n := len(c)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := range n {
		p, q := c[i], c[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Area returns the absolute area of the ring.
func (c Contour) Area() float64 {
	return math.Abs(c.SignedArea())
}

// Contains reports whether p lies inside the ring using the even-odd rule.
func (c Contour) Contains(p Point) bool {
	inside := false
	n := len(c)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := c[i], c[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the axis aligned bounding rectangle of the ring.
func (c Contour) Bounds() r2.Rect {
	return r2.RectFromPoints(c...)
}

// Reverse flips the ring orientation in place.
func (c Contour) Reverse() {
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}

// Polygon is an outer ring with optional holes. Contours[0] is the outer ring.
type Polygon struct {
	Contours []Contour
}

// NewPolygon returns a polygon with a counter-clockwise outer ring and
// clockwise holes.
func NewPolygon(outer Contour, holes ...Contour) *Polygon {
	if outer.SignedArea() < 0 {
		outer.Reverse()
	}
	p := &Polygon{Contours: make([]Contour, 0, 1+len(holes))}
	p.Contours = append(p.Contours, outer)
	for _, h := range holes {
		if h.SignedArea() > 0 {
			h.Reverse()
		}
		p.Contours = append(p.Contours, h)
	}
	return p
}

// Outer returns the outer ring, or nil for an empty polygon.
func (p *Polygon) Outer() Contour {
	if p == nil || len(p.Contours) == 0 {
		return nil
	}
	return p.Contours[0]
}

// Area returns the outer area minus the area of the holes.
func (p *Polygon) Area() float64 {
	if p == nil || len(p.Contours) == 0 {
		return 0
	}
	area := p.Contours[0].Area()
	for _, h := range p.Contours[1:] {
		area -= h.Area()
	}
	return area
}

// Contains reports whether pt lies inside the outer ring and outside every hole.
func (p *Polygon) Contains(pt Point) bool {
	if p == nil || len(p.Contours) == 0 {
		return false
	}
	if !p.Contours[0].Contains(pt) {
		return false
	}
	for _, h := range p.Contours[1:] {
		if h.Contains(pt) {
			return false
		}
	}
	return true
}

// Bounds returns the bounding rectangle of the outer ring.
func (p *Polygon) Bounds() r2.Rect {
	if p == nil || len(p.Contours) == 0 {
		return r2.EmptyRect()
	}
	return p.Contours[0].Bounds()
}

// Centroid returns the area centroid of the outer ring. Degenerate rings fall
// back to the vertex average.
func (p *Polygon) Centroid() Point {
	outer := p.Outer()
	n := len(outer)
	if n == 0 {
		return Point{}
	}
	var cx, cy, a float64
	for i := range n {
		p0, p1 := outer[i], outer[(i+1)%n]
		cross := p0.X*p1.Y - p1.X*p0.Y
		a += cross
		cx += (p0.X + p1.X) * cross
		cy += (p0.Y + p1.Y) * cross
	}
	if math.Abs(a) < 1e-18 {
		var sum Point
		for _, q := range outer {
			sum = sum.Add(q)
		}
		return sum.Mul(1 / float64(n))
	}
	return Point{X: cx / (3 * a), Y: cy / (3 * a)}
}
