// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package render draws a cell set as SVG.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/2dChan/polygrid/core"
	"github.com/2dChan/polygrid/geom"
	svg "github.com/ajstarks/svgo"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 800

	backgroundStyle = "fill:rgb(255,255,255)"
	cellStroke      = "stroke:rgb(170,170,170);stroke-width:1;stroke-opacity:1.0"
	frontierStyle   = "stroke:rgb(40,40,40);stroke-width:2"
	pathStyle       = "fill:none;stroke:rgb(220,40,40);stroke-width:3;stroke-linejoin:round"
	sightStyle      = "fill:rgb(40,90,220)"
	centerStyle     = "fill:rgb(120,120,120)"
	highlightStyle  = "fill:none;stroke:rgb(255,170,0);stroke-width:3"
)

var (
	ErrInvalidSize = errors.New("render: width and height must be positive")
	ErrNilWriter   = errors.New("render: nil writer")
)

// Options select what is drawn besides the cell outlines.
type Options struct {
	Width, Height int
	// Territories fills uncolored cells with their territory color.
	Territories bool
	Frontiers   []*geom.Segment
	// Path is a cell sequence joined through the cell centers.
	Path []int
	// Points are sample positions, typically from a line of sight trace.
	Points    []geom.Point
	Highlight []int
	Centers   bool
}

type Option func(*Options) error

func WithSize(width, height int) Option {
	return func(o *Options) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("WithSize: %w: %dx%d", ErrInvalidSize, width, height)
		}
		o.Width, o.Height = width, height
		return nil
	}
}

// WithTerritories fills cells by territory and strokes the frontiers.
func WithTerritories(frontiers []*geom.Segment) Option {
	return func(o *Options) error {
		o.Territories = true
		o.Frontiers = frontiers
		return nil
	}
}

func WithPath(cells []int) Option {
	return func(o *Options) error {
		o.Path = cells
		return nil
	}
}

func WithPoints(points []geom.Point) Option {
	return func(o *Options) error {
		o.Points = points
		return nil
	}
}

func WithHighlight(cells ...int) Option {
	return func(o *Options) error {
		o.Highlight = cells
		return nil
	}
}

func WithCenters(show bool) Option {
	return func(o *Options) error {
		o.Centers = show
		return nil
	}
}

// SVG writes the visible cells to w. Cells with a color keep it; others
// take their territory color when territories are drawn, or white.
func SVG(w io.Writer, cells []*core.Cell, territories []*core.Territory, setters ...Option) error {
	if w == nil {
		return ErrNilWriter
	}
	opts := Options{Width: DefaultWidth, Height: DefaultHeight}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return err
		}
	}
	s := screen{width: opts.Width, height: opts.Height}

	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, backgroundStyle)

	xs := make([]int, 0, 8)
	ys := make([]int, 0, 8)
	for _, c := range cells {
		if !c.Visible || c.Polygon() == nil {
			continue
		}
		xs, ys = s.contour(c.Polygon().Outer(), xs[:0], ys[:0])
		canvas.Polygon(xs, ys, "fill:"+fill(c, territories, opts.Territories)+";"+cellStroke)
	}

	for _, seg := range opts.Frontiers {
		x1, y1 := s.point(seg.Start)
		x2, y2 := s.point(seg.End)
		canvas.Line(x1, y1, x2, y2, frontierStyle)
	}

	for _, i := range opts.Highlight {
		if i < 0 || i >= len(cells) || cells[i].Polygon() == nil {
			continue
		}
		xs, ys = s.contour(cells[i].Polygon().Outer(), xs[:0], ys[:0])
		canvas.Polygon(xs, ys, highlightStyle)
	}

	if opts.Centers {
		for _, c := range cells {
			if c.Visible {
				x, y := s.point(c.Center)
				canvas.Circle(x, y, 2, centerStyle)
			}
		}
	}

	if len(opts.Path) > 1 {
		xs, ys = xs[:0], ys[:0]
		for _, i := range opts.Path {
			if i < 0 || i >= len(cells) {
				continue
			}
			x, y := s.point(cells[i].Center)
			xs = append(xs, x)
			ys = append(ys, y)
		}
		canvas.Polyline(xs, ys, pathStyle)
	}

	for _, p := range opts.Points {
		x, y := s.point(p)
		canvas.Circle(x, y, 2, sightStyle)
	}

	canvas.End()
	return nil
}

func fill(c *core.Cell, territories []*core.Territory, byTerritory bool) string {
	col := c.Color
	if col.A <= 0 && byTerritory && c.TerritoryIndex >= 0 && c.TerritoryIndex < len(territories) {
		col = territories[c.TerritoryIndex].FillColor
	}
	if col.A <= 0 {
		return "rgb(255,255,255)"
	}
	return colorful.Color{R: col.R, G: col.G, B: col.B}.Clamped().Hex()
}

// screen maps the normalized square onto the canvas, y up.
type screen struct {
	width, height int
}

func (s screen) point(p geom.Point) (int, int) {
	x := (p.X + 0.5) * float64(s.width)
	y := (0.5 - p.Y) * float64(s.height)
	return int(x + 0.5), int(y + 0.5)
}

func (s screen) contour(c geom.Contour, xs, ys []int) ([]int, []int) {
	for _, p := range c {
		x, y := s.point(p)
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}
