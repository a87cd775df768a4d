// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package los traces straight lines between cell centers and reports
// whether anything along the way blocks the view.
package los

import (
	"math"

	"github.com/2dChan/polygrid/adjacency"
	"github.com/2dChan/polygrid/core"
	"github.com/2dChan/polygrid/geom"
)

// MinResolution is the lowest number of samples taken per step of distance.
const MinResolution = 2

// Options configure a trace.
type Options struct {
	// GroupMask keeps cells whose Group shares a bit with it. 0 keeps all.
	GroupMask int
	// Resolution is the number of samples per step of distance, at least
	// MinResolution.
	Resolution int
	// Exhaustive retries against every vertex of the destination when the
	// center line is blocked.
	Exhaustive bool
}

// Result is the outcome of a trace. Cells lists the cells entered along the
// line, start excluded. Points are the sampled positions.
type Result struct {
	Visible bool
	Cells   []int
	Points  []geom.Point
}

// Tracer walks lines over one cell set.
type Tracer struct {
	topology   core.Topology
	cells      []*core.Cell
	order      []int
	evenLayout bool
}

// NewTracer returns a tracer over cells. order is the point query order as
// returned by adjacency.SortByArea; nil computes it.
func NewTracer(t core.Topology, cells []*core.Cell, order []int, evenLayout bool) *Tracer {
	if order == nil {
		order = adjacency.SortByArea(cells)
	}
	return &Tracer{topology: t, cells: cells, order: order, evenLayout: evenLayout}
}

// Trace reports whether end can be seen from start. The line between the
// two centers is sampled; every new cell met must pass the group mask and
// CanCross, except the destination, and no side crossed on the way may
// block line of sight in either direction. A visible result carries the
// center to center line.
func (t *Tracer) Trace(start, end int, opts Options) Result {
	if !t.valid(start) || !t.valid(end) {
		return Result{}
	}
	resolution := max(opts.Resolution, MinResolution)
	from := t.cells[start].Center

	targets := []geom.Point{t.cells[end].Center}
	if opts.Exhaustive {
		if poly := t.cells[end].Polygon(); poly != nil {
			targets = append(targets, poly.Outer()...)
		}
	}

	var last Result
	for i, to := range targets {
		last = t.walk(start, end, from, to, resolution, opts.GroupMask)
		if !last.Visible {
			continue
		}
		if i == 0 {
			return last
		}
		line := t.Line(start, end, resolution)
		line.Visible = true
		return line
	}
	return last
}

// Line samples the line between two cell centers without any check. Visible
// is always false.
func (t *Tracer) Line(start, end, resolution int) Result {
	if !t.valid(start) || !t.valid(end) {
		return Result{}
	}
	resolution = max(resolution, MinResolution)
	from, to := t.cells[start].Center, t.cells[end].Center
	steps := t.steps(start, end, from, to, resolution)

	var res Result
	last := start
	for k := 1; k <= steps; k++ {
		p := lerp(from, to, float64(k)/float64(steps))
		ci := adjacency.CellAt(t.cells, t.order, p)
		if ci >= 0 && ci != last {
			res.Cells = append(res.Cells, ci)
		}
		res.Points = append(res.Points, p)
		last = ci
	}
	return res
}

func (t *Tracer) walk(start, end int, from, to geom.Point, resolution, mask int) Result {
	steps := t.steps(start, end, from, to, resolution)
	res := Result{Visible: true}
	last := start
	for k := 1; k <= steps; k++ {
		p := lerp(from, to, float64(k)/float64(steps))
		ci := end
		if k < steps {
			ci = adjacency.CellAt(t.cells, t.order, p)
		}
		if ci >= 0 && ci != last {
			if ci != end {
				c := t.cells[ci]
				if !c.CanCross || (mask != 0 && c.Group&mask == 0) {
					res.Visible = false
					return res
				}
			}
			if t.blocked(last, ci) || t.blocked(ci, last) {
				res.Visible = false
				return res
			}
			res.Cells = append(res.Cells, ci)
			last = ci
		}
		res.Points = append(res.Points, p)
	}
	return res
}

// steps returns the number of samples for a line. Box and hexagonal grids
// use their step distance; irregular grids scale the euclidean distance by
// the mean cell width.
func (t *Tracer) steps(start, end int, from, to geom.Point, resolution int) int {
	a, b := t.cells[start], t.cells[end]
	var n int
	switch t.topology {
	case core.TopologyHexagonal:
		n = core.HexDistance(a.Column, a.Row, b.Column, b.Row, t.evenLayout) * resolution
	case core.TopologyBox:
		n = core.BoxDistance(a.Column, a.Row, b.Column, b.Row) * resolution
		if n%2 == 0 {
			n++
		}
	default:
		d := to.Sub(from).Norm()
		n = int(math.Ceil(d * float64(resolution) * math.Sqrt(float64(len(t.cells)))))
	}
	return max(n, 1)
}

// blocked reports whether moving from a into b crosses a side of b that
// blocks line of sight.
func (t *Tracer) blocked(a, b int) bool {
	c1, c2 := t.cells[a], t.cells[b]
	if t.topology != core.TopologyBox {
		return c2.SideBlocksLOS(core.EnteringSide(t.topology, c2.Center.Sub(c1.Center)))
	}
	if c1.Row == c2.Row && c1.Column == c2.Column {
		return false
	}
	vertical := c2.SideBlocksLOS(core.SideTop)
	if c1.Row < c2.Row {
		vertical = c2.SideBlocksLOS(core.SideBottom)
	}
	horizontal := c2.SideBlocksLOS(core.SideRight)
	if c1.Column < c2.Column {
		horizontal = c2.SideBlocksLOS(core.SideLeft)
	}
	switch {
	case c1.Row == c2.Row:
		return horizontal
	case c1.Column == c2.Column:
		return vertical
	}
	return horizontal || vertical
}

func (t *Tracer) valid(i int) bool {
	return i >= 0 && i < len(t.cells)
}

func lerp(a, b geom.Point, f float64) geom.Point {
	return a.Add(b.Sub(a).Mul(f))
}
