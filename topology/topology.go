// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package topology generates the cells of irregular (Voronoi), box and
// hexagonal grids in the normalized square [-0.5, 0.5]².
package topology

import (
	"errors"
	"fmt"

	"github.com/2dChan/polygrid/core"
	"github.com/2dChan/polygrid/geom"
	"github.com/2dChan/polygrid/utils"
	"github.com/2dChan/polygrid/voronoi"
)

const (
	MaxCells              = 10000
	MaxTerritories        = 256
	MaxRowsOrColumns      = 100
	MaxCellsForRelaxation = 500
	MaxCellsForCurvature  = 500
	MaxCurvature          = 0.1

	// curvatureSubdivisions is the number of pieces a curved edge is split into.
	curvatureSubdivisions = 3
	siteEps               = 1e-9
)

var (
	ErrInvalidDimension = errors.New("topology: cell count, rows and columns must be positive")
	ErrNoCells          = errors.New("topology: generation produced no cells")
)

// Params describes the grid to generate.
type Params struct {
	Topology   core.Topology
	CellCount  int
	Rows       int
	Columns    int
	Seed       int64
	Relaxation int
	Curvature  float64
	EvenLayout bool
	// Sites overrides random site generation for irregular grids.
	Sites []geom.Point
	// Territories raises the minimum cell count of irregular grids.
	Territories int
}

// Normalize validates p and clamps its fields into the supported ranges.
// Out of range values are clamped; only non-positive dimensions fail.
func (p Params) Normalize() (Params, error) {
	switch p.Topology {
	case core.TopologyIrregular:
		if len(p.Sites) > 0 {
			p.Sites = utils.DedupePoints(p.Sites, siteEps)
			if len(p.Sites) > MaxCells {
				p.Sites = p.Sites[:MaxCells]
			}
			p.CellCount = len(p.Sites)
			break
		}
		if p.CellCount <= 0 {
			return p, fmt.Errorf("%w: cell count %d", ErrInvalidDimension, p.CellCount)
		}
		p.CellCount = clamp(p.CellCount, max(p.Territories, 2), MaxCells)
	case core.TopologyBox, core.TopologyHexagonal:
		if p.Rows <= 0 || p.Columns <= 0 {
			return p, fmt.Errorf("%w: %d rows, %d columns", ErrInvalidDimension, p.Rows, p.Columns)
		}
		p.Rows = min(p.Rows, MaxRowsOrColumns)
		p.Columns = min(p.Columns, MaxRowsOrColumns)
		p.CellCount = p.Rows * p.Columns
	default:
		return p, fmt.Errorf("%w: %v", core.ErrUnknownTopology, p.Topology)
	}

	p.Relaxation = max(p.Relaxation, 1)
	p.Curvature = min(max(p.Curvature, 0), MaxCurvature)
	if p.CellCount > MaxCellsForRelaxation {
		p.Relaxation = 1
	}
	if p.CellCount > MaxCellsForCurvature {
		p.Curvature = 0
	}
	return p, nil
}

// Generate normalizes p and builds its cells. Cell indices follow creation
// order, skipping degenerate polygons.
func Generate(p Params) ([]*core.Cell, error) {
	p, err := p.Normalize()
	if err != nil {
		return nil, err
	}
	var cells []*core.Cell
	switch p.Topology {
	case core.TopologyBox:
		cells = Box(p.Rows, p.Columns, p.Curvature)
	case core.TopologyHexagonal:
		cells = Hexagonal(p.Rows, p.Columns, p.EvenLayout, p.Curvature)
	default:
		sites := p.Sites
		if len(sites) == 0 {
			sites = utils.GenerateRandomPoints(p.CellCount, p.Seed)
		}
		cells, err = Irregular(sites, p.Relaxation, p.Curvature)
		if err != nil {
			return nil, err
		}
	}
	if len(cells) == 0 {
		return nil, ErrNoCells
	}
	return cells, nil
}

// Irregular builds one cell per Voronoi site after relaxation-1 rounds of
// Lloyd relaxation. Edges shared by two cells share one Segment.
func Irregular(sites []geom.Point, relaxation int, curvature float64) ([]*core.Cell, error) {
	vd, err := voronoi.NewDiagram(sites)
	if err != nil {
		return nil, err
	}
	if err := vd.Relax(max(relaxation-1, 0)); err != nil {
		return nil, err
	}

	shared := make(map[geom.SegmentKey]*geom.Segment)
	cells := make([]*core.Cell, 0, vd.NumCells())
	for i := range vd.NumCells() {
		vc, err := vd.Cell(i)
		if err != nil {
			return nil, err
		}
		ct := vc.Contour()
		if len(ct) < 3 || ct.Area() == 0 {
			continue
		}
		segs := make([]*geom.Segment, 0, len(ct))
		for j := range len(ct) {
			a, err := vc.Vertex(j)
			if err != nil {
				return nil, err
			}
			b, err := vc.Vertex((j + 1) % len(ct))
			if err != nil {
				return nil, err
			}
			_, err = vc.Neighbor(j)
			if err != nil && !errors.Is(err, voronoi.ErrBoundsEdge) {
				return nil, err
			}
			s := geom.NewSegment(a, b, err != nil)
			if prev, ok := shared[s.Key()]; ok {
				s = prev
			} else {
				shared[s.Key()] = s
			}
			segs = append(segs, s)
		}
		if c := newCell(len(cells), vc.Site(), segs, curvature); c != nil {
			cells = append(cells, c)
		}
	}
	return cells, nil
}

// Box builds a rows x columns grid of quads. Row 0 is at the bottom.
func Box(rows, columns int, curvature float64) []*core.Cell {
	qx, qy := float64(columns), float64(rows)
	stepX, stepY := 1/qx, 1/qy
	halfStepX, halfStepY := stepX/2, stepY/2

	// 0 = left, 1 = top, 2 = right, 3 = bottom
	sides := make([][4]*geom.Segment, rows*columns)
	at := func(k, j int) *[4]*geom.Segment { return &sides[j*columns+k] }

	cells := make([]*core.Cell, 0, rows*columns)
	for j := range rows {
		for k := range columns {
			center := geom.Point{
				X: float64(k)/qx - 0.5 + halfStepX,
				Y: float64(j)/qy - 0.5 + halfStepY,
			}
			off := func(dx, dy float64) geom.Point { return geom.Point{X: center.X + dx, Y: center.Y + dy} }

			var left, bottom *geom.Segment
			if k > 0 {
				left = at(k-1, j)[2]
			} else {
				left = geom.NewSegment(off(-halfStepX, -halfStepY), off(-halfStepX, halfStepY), true)
			}
			top := geom.NewSegment(off(-halfStepX, halfStepY), off(halfStepX, halfStepY), j == rows-1)
			right := geom.NewSegment(off(halfStepX, halfStepY), off(halfStepX, -halfStepY), k == columns-1)
			if j > 0 {
				bottom = at(k, j-1)[1]
			} else {
				bottom = geom.NewSegment(off(halfStepX, -halfStepY), off(-halfStepX, -halfStepY), true)
			}
			*at(k, j) = [4]*geom.Segment{left, top, right, bottom}

			c := newCell(len(cells), center, []*geom.Segment{top, right, bottom, left}, curvature)
			if c == nil {
				continue
			}
			c.Row, c.Column = j, k
			cells = append(cells, c)
		}
	}
	return cells
}

// Hexagonal builds a rows x columns grid of flat-topped hexagons. With
// evenLayout even columns sit half a row lower, otherwise odd columns do.
func Hexagonal(rows, columns int, evenLayout bool, curvature float64) []*core.Cell {
	qx := 1 + float64(columns-1)*3/4
	qy := float64(rows) + 0.5
	stepX, stepY := 1/qx, 1/qy
	halfStepX, halfStepY := stepX/2, stepY/2

	// 0 = left-up, 1 = top, 2 = right-up, 3 = right-down, 4 = down, 5 = left-down
	sides := make([][6]*geom.Segment, rows*columns)
	at := func(k, j int) *[6]*geom.Segment { return &sides[j*columns+k] }

	cells := make([]*core.Cell, 0, rows*columns)
	for j := range rows {
		for k := range columns {
			center := geom.Point{
				X: float64(k)/qx - 0.5 + halfStepX - float64(k)*halfStepX/2,
				Y: float64(j)/qy - 0.5 + stepY,
			}
			var offsetY float64
			lower := core.IsLowerColumn(k, evenLayout)
			if lower {
				offsetY = -halfStepY
			}
			off := func(dx, dy float64) geom.Point {
				return geom.Point{X: center.X + dx, Y: center.Y + dy + offsetY}
			}

			var leftUp, rightDown, bottom, leftDown *geom.Segment
			if k > 0 && lower {
				leftUp = at(k-1, j)[3]
			} else {
				leftUp = geom.NewSegment(off(-halfStepX, 0), off(-halfStepX/2, halfStepY),
					k == 0 || (j == rows-1 && !lower))
			}
			top := geom.NewSegment(off(-halfStepX/2, halfStepY), off(halfStepX/2, halfStepY), j == rows-1)
			rightUp := geom.NewSegment(off(halfStepX/2, halfStepY), off(halfStepX, 0),
				k == columns-1 || (j == rows-1 && !lower))
			if j > 0 && k < columns-1 && lower {
				rightDown = at(k+1, j-1)[0]
			} else {
				rightDown = geom.NewSegment(off(halfStepX, 0), off(halfStepX/2, -halfStepY),
					(j == 0 && lower) || k == columns-1)
			}
			if j > 0 {
				bottom = at(k, j-1)[1]
			} else {
				bottom = geom.NewSegment(off(halfStepX/2, -halfStepY), off(-halfStepX/2, -halfStepY), true)
			}
			switch {
			case lower && j > 0 && k > 0:
				leftDown = at(k-1, j-1)[2]
			case !lower && k > 0:
				leftDown = at(k-1, j)[2]
			default:
				leftDown = geom.NewSegment(off(-halfStepX/2, -halfStepY), off(-halfStepX, 0), true)
			}
			*at(k, j) = [6]*geom.Segment{leftUp, top, rightUp, rightDown, bottom, leftDown}

			segs := []*geom.Segment{top, rightUp, rightDown, bottom, leftDown, leftUp}
			c := newCell(len(cells), geom.Point{X: center.X, Y: center.Y + offsetY}, segs, curvature)
			if c == nil {
				continue
			}
			c.Row, c.Column = j, k
			cells = append(cells, c)
		}
	}
	return cells
}

// newCell assembles a cell from its boundary segments, subdividing them when
// curvature is set. It returns nil when the segments do not close.
func newCell(index int, center geom.Point, segs []*geom.Segment, curvature float64) *core.Cell {
	c := core.NewCell(index, center)
	var connector geom.Connector
	for _, s := range segs {
		if s.Deleted {
			continue
		}
		if curvature > 0 {
			c.Region.Segments = append(c.Region.Segments, s.Subdivide(curvatureSubdivisions, curvature)...)
		} else {
			c.Region.Segments = append(c.Region.Segments, s)
		}
	}
	connector.AddAll(c.Region.Segments)
	c.Region.Polygon = connector.Polygon()
	if c.Region.Polygon == nil || c.Region.Polygon.Area() == 0 {
		return nil
	}
	c.Region.UpdateBounds()
	return c
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
