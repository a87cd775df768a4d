// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package delaunay implements planar Delaunay triangulation. Points are lifted
// onto the paraboloid z = x² + y² and the lower faces of their 3D convex hull
// are projected back to the plane.
package delaunay

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
)

const (
	defaultEps = 1e-12
	maxEps     = 1e-2
)

var (
	ErrInsufficientVertices = errors.New("delaunay: insufficient vertices for triangulation (minimum 3 required)")
	ErrDegenerate           = errors.New("delaunay: all vertices are collinear")
)

// Triangulation is a planar Delaunay triangulation. Triangles are stored in
// counter-clockwise vertex order.
type Triangulation struct {
	Vertices  []r2.Point
	Triangles [][3]int
	// NOTE: Sorted CCW around each vertex.
	IncidentTriangleIndices []int
	IncidentTriangleOffsets []int
}

// IncidentTriangles returns the triangles around vertex vIdx sorted
// counter-clockwise. For vertices on the convex hull the fan starts at the
// clockwise-most triangle.
func (dt *Triangulation) IncidentTriangles(vIdx int) []int {
	if vIdx < 0 || vIdx+1 >= len(dt.IncidentTriangleOffsets) {
		panic("IncidentTriangles: vIdx out of range")
	}
	start := dt.IncidentTriangleOffsets[vIdx]
	end := dt.IncidentTriangleOffsets[vIdx+1]
	return dt.IncidentTriangleIndices[start:end]
}

// TriangleVertices returns the three corners of triangle tIdx.
func (dt *Triangulation) TriangleVertices(tIdx int) (r2.Point, r2.Point, r2.Point) {
	if tIdx < 0 || tIdx >= len(dt.Triangles) {
		panic("TriangleVertices: tIdx out of range")
	}
	t := dt.Triangles[tIdx]
	return dt.Vertices[t[0]], dt.Vertices[t[1]], dt.Vertices[t[2]]
}

// Circumcenter returns the center of the circle through the corners of
// triangle tIdx.
func (dt *Triangulation) Circumcenter(tIdx int) r2.Point {
	a, b, c := dt.TriangleVertices(tIdx)
	return TriangleCircumcenter(a, b, c)
}

type TriangulationOptions struct {
	Eps float64
}

type TriangulationOption func(*TriangulationOptions) error

// WithEps sets the hull tolerance. It must lie in (0, 1e-2].
func WithEps(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if eps <= 0 || eps > maxEps {
			return fmt.Errorf("WithEps: eps %v out of range (0 %v]", eps, maxEps)
		}
		o.Eps = eps
		return nil
	}
}

// NewTriangulation triangulates vertices. Duplicate vertices are not
// supported and end up without incident triangles.
func NewTriangulation(vertices []r2.Point, setters ...TriangulationOption) (*Triangulation, error) {
	opts := TriangulationOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	numVertices := len(vertices)
	if numVertices < 3 {
		return nil, ErrInsufficientVertices
	}
	if collinear(vertices) {
		return nil, ErrDegenerate
	}

	lifted := make([]r3.Vector, numVertices)
	var centroid r3.Vector
	for i, p := range vertices {
		lifted[i] = r3.Vector{X: p.X, Y: p.Y, Z: p.X*p.X + p.Y*p.Y}
		centroid = centroid.Add(lifted[i])
	}
	centroid = centroid.Mul(1 / float64(numVertices))

	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(lifted, true, true, opts.Eps)

	dt := &Triangulation{
		Vertices:                vertices,
		IncidentTriangleOffsets: make([]int, numVertices+1),
	}
	for i := 0; i+2 < len(ch.Indices); i += 3 {
		t := [3]int{ch.Indices[i], ch.Indices[i+1], ch.Indices[i+2]}
		if !isLowerFace(t, lifted, centroid) {
			continue
		}
		sortTriangleVerticesCCW(&t, vertices)
		dt.Triangles = append(dt.Triangles, t)
	}
	if len(dt.Triangles) == 0 {
		return nil, ErrDegenerate
	}

	numTriangles := len(dt.Triangles)
	dt.IncidentTriangleIndices = make([]int, numTriangles*3)
	for _, t := range dt.Triangles {
		for _, v := range t {
			dt.IncidentTriangleOffsets[v+1]++
		}
	}
	for i := range numVertices {
		dt.IncidentTriangleOffsets[i+1] += dt.IncidentTriangleOffsets[i]
	}

	nxt := make([]int, numVertices)
	copy(nxt, dt.IncidentTriangleOffsets[:numVertices])
	for i, t := range dt.Triangles {
		for _, v := range t {
			dt.IncidentTriangleIndices[nxt[v]] = i
			nxt[v]++
		}
	}

	for i := range numVertices {
		sortIncidentTriangleIndicesCCW(i, dt.IncidentTriangles(i), dt.Triangles)
	}

	return dt, nil
}

// isLowerFace reports whether the outward normal of the lifted face points
// down, i.e. the face belongs to the Delaunay triangulation.
func isLowerFace(t [3]int, lifted []r3.Vector, centroid r3.Vector) bool {
	a, b, c := lifted[t[0]], lifted[t[1]], lifted[t[2]]
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Dot(a.Sub(centroid)) < 0 {
		n = n.Mul(-1)
	}
	norm := n.Norm()
	if norm == 0 {
		return false
	}
	return n.Z < -1e-12*norm
}

func collinear(v []r2.Point) bool {
	a := v[0]
	dir := r2.Point{}
	for _, p := range v[1:] {
		d := p.Sub(a)
		if dir == (r2.Point{}) {
			dir = d
			continue
		}
		if math.Abs(dir.Cross(d)) > 1e-18 {
			return false
		}
	}
	return true
}

func sortTriangleVerticesCCW(t *[3]int, v []r2.Point) {
	p0, p1, p2 := v[t[0]], v[t[1]], v[t[2]]
	if p1.Sub(p0).Cross(p2.Sub(p0)) < 0 {
		t[1], t[2] = t[2], t[1]
	}
}

func sortIncidentTriangleIndicesCCW(vIdx int, incidentTris []int, tris [][3]int) {
	n := len(incidentTris)
	if n == 0 {
		return
	}

	// An open fan must start at the triangle with no clockwise predecessor.
	for i := range n {
		first := NextVertex(tris[incidentTris[i]], vIdx)
		open := true
		for j := range n {
			if j != i && PrevVertex(tris[incidentTris[j]], vIdx) == first {
				open = false
				break
			}
		}
		if open {
			incidentTris[0], incidentTris[i] = incidentTris[i], incidentTris[0]
			break
		}
	}

	for i := 1; i < n; i++ {
		prv := PrevVertex(tris[incidentTris[i-1]], vIdx)
		for j := i; j < n; j++ {
			if NextVertex(tris[incidentTris[j]], vIdx) == prv {
				incidentTris[i], incidentTris[j] = incidentTris[j], incidentTris[i]
				break
			}
		}
	}
}

// PrevVertex returns the corner preceding vIdx in CCW triangle t.
func PrevVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}

// NextVertex returns the corner following vIdx in CCW triangle t.
func NextVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}

// TriangleCircumcenter returns the circumcenter of triangle abc. Collinear
// corners yield a point at infinity.
func TriangleCircumcenter(a, b, c r2.Point) r2.Point {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if d == 0 {
		return r2.Point{X: math.Inf(1), Y: math.Inf(1)}
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return r2.Point{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}
}
