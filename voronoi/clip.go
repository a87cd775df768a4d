// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"github.com/2dChan/polygrid/geom"
	"github.com/golang/geo/r2"
)

// ring is a cell outline under construction. labels[j] belongs to the edge
// from pts[j] to pts[j+1].
type ring struct {
	pts    []r2.Point
	labels []int
}

func (r *ring) add(p r2.Point, label int) {
	r.pts = append(r.pts, p)
	r.labels = append(r.labels, label)
}

// clip cuts r against the four sides of bounds (Sutherland-Hodgman). Edges
// created along the bounds are labelled -1.
func (r ring) clip(bounds r2.Rect) ring {
	r = r.clipAxis(func(p r2.Point) bool { return p.X >= bounds.X.Lo },
		func(p, q r2.Point) r2.Point { return atX(p, q, bounds.X.Lo) })
	r = r.clipAxis(func(p r2.Point) bool { return p.X <= bounds.X.Hi },
		func(p, q r2.Point) r2.Point { return atX(p, q, bounds.X.Hi) })
	r = r.clipAxis(func(p r2.Point) bool { return p.Y >= bounds.Y.Lo },
		func(p, q r2.Point) r2.Point { return atY(p, q, bounds.Y.Lo) })
	r = r.clipAxis(func(p r2.Point) bool { return p.Y <= bounds.Y.Hi },
		func(p, q r2.Point) r2.Point { return atY(p, q, bounds.Y.Hi) })
	return r
}

func (r ring) clipAxis(inside func(r2.Point) bool, cross func(p, q r2.Point) r2.Point) ring {
	n := len(r.pts)
	out := ring{
		pts:    make([]r2.Point, 0, n+2),
		labels: make([]int, 0, n+2),
	}
	for j := range n {
		p, q := r.pts[j], r.pts[(j+1)%n]
		label := r.labels[j]
		pin, qin := inside(p), inside(q)
		switch {
		case pin && qin:
			out.add(p, label)
		case pin:
			out.add(p, label)
			out.add(cross(p, q), -1)
		case qin:
			out.add(cross(p, q), label)
		}
	}
	return out
}

// dedupe drops vertices that snap onto their predecessor, keeping the label
// of the surviving edge.
func (r ring) dedupe() ring {
	n := len(r.pts)
	if n == 0 {
		return r
	}
	out := ring{
		pts:    make([]r2.Point, 0, n),
		labels: make([]int, 0, n),
	}
	for j := range n {
		last := len(out.pts) - 1
		if last >= 0 && geom.KeyOf(out.pts[last]) == geom.KeyOf(r.pts[j]) {
			out.labels[last] = r.labels[j]
			continue
		}
		out.add(r.pts[j], r.labels[j])
	}
	for len(out.pts) > 1 && geom.KeyOf(out.pts[0]) == geom.KeyOf(out.pts[len(out.pts)-1]) {
		last := len(out.pts) - 1
		out.pts = out.pts[:last]
		out.labels = out.labels[:last]
	}
	return out
}

// atX intersects segment pq with the vertical line x. The endpoints are
// ordered first so both cells sharing the segment get the same point.
func atX(p, q r2.Point, x float64) r2.Point {
	if less(q, p) {
		p, q = q, p
	}
	t := (x - p.X) / (q.X - p.X)
	return r2.Point{X: x, Y: p.Y + t*(q.Y-p.Y)}
}

func atY(p, q r2.Point, y float64) r2.Point {
	if less(q, p) {
		p, q = q, p
	}
	t := (y - p.Y) / (q.Y - p.Y)
	return r2.Point{X: p.X + t*(q.X-p.X), Y: y}
}

func less(a, b r2.Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}
