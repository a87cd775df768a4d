// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package voronoi implements planar Voronoi diagrams clipped to a rectangle,
// built as the dual of a Delaunay triangulation.
package voronoi

import (
	"errors"
	"fmt"

	"github.com/2dChan/polygrid/delaunay"
	"github.com/2dChan/polygrid/geom"
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

const (
	defaultEps = 1e-12
	maxEps     = 1e-2
	// guardScale places the guard sites this many bound extents away from
	// the center, far enough that no point of the bounds is closer to a
	// guard than to the nearest real site.
	guardScale = 4
)

var ErrNoSites = errors.New("voronoi: at least one site required")

// DefaultBounds is the normalized grid square.
var DefaultBounds = r2.Rect{
	X: r1.Interval{Lo: -0.5, Hi: 0.5},
	Y: r1.Interval{Lo: -0.5, Hi: 0.5},
}

// Diagram is a Voronoi diagram clipped to Bounds.
type Diagram struct {
	Sites    []r2.Point
	Vertices []r2.Point

	// NOTE: Sorted CCW per cell.
	CellVertices []int
	// CellNeighbors[CellOffsets[i]+j] is the site across the edge from vertex
	// j to vertex j+1 of cell i, or -1 when the edge lies on Bounds.
	CellNeighbors []int
	CellOffsets   []int

	opts DiagramOptions
}

type DiagramOptions struct {
	Eps    float64
	Bounds r2.Rect
}

type DiagramOption func(*DiagramOptions) error

// WithEps sets the tolerance passed to the triangulation.
func WithEps(eps float64) DiagramOption {
	return func(o *DiagramOptions) error {
		if eps <= 0 || eps > maxEps {
			return fmt.Errorf("WithEps: eps %v out of range (0 %v]", eps, maxEps)
		}
		o.Eps = eps
		return nil
	}
}

// WithBounds sets the clipping rectangle.
func WithBounds(bounds r2.Rect) DiagramOption {
	return func(o *DiagramOptions) error {
		if bounds.IsEmpty() || bounds.Size().X == 0 || bounds.Size().Y == 0 {
			return errors.New("WithBounds: bounds must have a positive area")
		}
		o.Bounds = bounds
		return nil
	}
}

// NumCells returns the number of cells, one per site.
func (d *Diagram) NumCells() int {
	return len(d.Sites)
}

// Bounds returns the clipping rectangle.
func (d *Diagram) Bounds() r2.Rect {
	return d.opts.Bounds
}

// Cell returns a view of cell i.
func (d *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= d.NumCells() {
		return Cell{}, fmt.Errorf("Cell: index %d out of range [0 %d)", i, d.NumCells())
	}
	return Cell{idx: i, d: d}, nil
}

// NewDiagram computes the diagram of sites. Sites should be distinct and lie
// inside the bounds; a duplicated site yields an empty cell.
func NewDiagram(sites []r2.Point, setters ...DiagramOption) (*Diagram, error) {
	opts := DiagramOptions{
		Eps:    defaultEps,
		Bounds: DefaultBounds,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	return newDiagram(sites, opts)
}

func newDiagram(sites []r2.Point, opts DiagramOptions) (*Diagram, error) {
	numSites := len(sites)
	if numSites == 0 {
		return nil, ErrNoSites
	}

	all := make([]r2.Point, numSites, numSites+4)
	copy(all, sites)
	center := opts.Bounds.Center()
	size := opts.Bounds.Size()
	extent := guardScale * max(size.X, size.Y)
	all = append(all,
		r2.Point{X: center.X - extent, Y: center.Y - extent},
		r2.Point{X: center.X + extent, Y: center.Y - extent},
		r2.Point{X: center.X + extent, Y: center.Y + extent},
		r2.Point{X: center.X - extent, Y: center.Y + extent},
	)

	dt, err := delaunay.NewTriangulation(all, delaunay.WithEps(opts.Eps))
	if err != nil {
		return nil, err
	}

	circumcenters := make([]r2.Point, len(dt.Triangles))
	for i := range dt.Triangles {
		circumcenters[i] = dt.Circumcenter(i)
	}

	d := &Diagram{
		Sites:       sites,
		CellOffsets: make([]int, numSites+1),
		opts:        opts,
	}
	vertexIndex := make(map[geom.PointKey]int)
	for i := range numSites {
		fan := dt.IncidentTriangles(i)
		r := ring{
			pts:    make([]r2.Point, len(fan)),
			labels: make([]int, len(fan)),
		}
		for j, tIdx := range fan {
			r.pts[j] = circumcenters[tIdx]
			nb := delaunay.PrevVertex(dt.Triangles[tIdx], i)
			if nb >= numSites {
				nb = -1
			}
			r.labels[j] = nb
		}
		r = r.clip(opts.Bounds).dedupe()
		if len(r.pts) < 3 {
			d.CellOffsets[i+1] = len(d.CellVertices)
			continue
		}
		for j, p := range r.pts {
			k := geom.KeyOf(p)
			vIdx, ok := vertexIndex[k]
			if !ok {
				vIdx = len(d.Vertices)
				vertexIndex[k] = vIdx
				d.Vertices = append(d.Vertices, p)
			}
			d.CellVertices = append(d.CellVertices, vIdx)
			d.CellNeighbors = append(d.CellNeighbors, r.labels[j])
		}
		d.CellOffsets[i+1] = len(d.CellVertices)
	}

	return d, nil
}

// Relax applies steps rounds of Lloyd relaxation. Each round moves every
// site halfway toward the centroid of its cell and recomputes the diagram.
func (d *Diagram) Relax(steps int) error {
	if steps < 0 {
		return fmt.Errorf("Relax: steps %d must be non-negative", steps)
	}
	for range steps {
		sites := make([]r2.Point, len(d.Sites))
		for i, s := range d.Sites {
			c := Cell{idx: i, d: d}
			if c.NumVertices() < 3 {
				sites[i] = s
				continue
			}
			sites[i] = s.Add(c.Centroid()).Mul(0.5)
		}
		nd, err := newDiagram(sites, d.opts)
		if err != nil {
			return err
		}
		*d = *nd
	}
	return nil
}
