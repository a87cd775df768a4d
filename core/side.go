// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package core holds the data model shared by the grid packages: cells,
// territories, their regions and the side tables used to move between
// neighbouring cells of box and hexagonal grids.
package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/2dChan/polygrid/geom"
)

// ErrUnknownTopology is returned when a topology name cannot be parsed.
var ErrUnknownTopology = errors.New("core: unknown topology")

// Topology selects how cells are laid out.
type Topology int

const (
	TopologyIrregular Topology = iota
	TopologyBox
	TopologyHexagonal
)

var topologyNames = [...]string{"irregular", "box", "hexagonal"}

func (t Topology) String() string {
	if t < 0 || int(t) >= len(topologyNames) {
		return fmt.Sprintf("Topology(%d)", int(t))
	}
	return topologyNames[t]
}

// ParseTopology parses a topology name. "hex" is accepted for hexagonal.
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "irregular", "voronoi":
		return TopologyIrregular, nil
	case "box", "square":
		return TopologyBox, nil
	case "hexagonal", "hex":
		return TopologyHexagonal, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTopology, s)
}

func (t Topology) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Topology) UnmarshalText(text []byte) error {
	v, err := ParseTopology(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// HasRowsColumns reports whether cells of t are addressed by row and column.
func (t Topology) HasRowsColumns() bool {
	return t == TopologyBox || t == TopologyHexagonal
}

// Side names a cell edge. Box cells use the four orthogonal sides plus the
// diagonals as corners; hexagonal cells use the first six.
type Side int

const (
	SideTopLeft Side = iota
	SideTop
	SideTopRight
	SideBottomRight
	SideBottom
	SideBottomLeft
	SideLeft
	SideRight
)

// NumSides is the number of slots in per-side tables.
const NumSides = 8

var sideNames = [NumSides]string{
	"top-left", "top", "top-right", "bottom-right", "bottom", "bottom-left", "left", "right",
}

func (s Side) String() string {
	if s < 0 || s >= NumSides {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideNames[s]
}

var oppositeSide = [NumSides]Side{
	SideBottomRight, SideBottom, SideBottomLeft, SideTopLeft,
	SideTop, SideTopRight, SideRight, SideLeft,
}

// Opposite returns the side facing s on the neighbouring cell.
func (s Side) Opposite() Side {
	return oppositeSide[s]
}

// BoxSides lists box moves, orthogonal first.
var BoxSides = []Side{
	SideTop, SideRight, SideBottom, SideLeft,
	SideTopRight, SideBottomRight, SideBottomLeft, SideTopLeft,
}

// HexSides lists the six hexagon sides.
var HexSides = []Side{
	SideTopLeft, SideTop, SideTopRight, SideBottomRight, SideBottom, SideBottomLeft,
}

// IsDiagonal reports whether moving across s on a box grid is a diagonal move.
func (s Side) IsDiagonal() bool {
	switch s {
	case SideTopLeft, SideTopRight, SideBottomLeft, SideBottomRight:
		return true
	}
	return false
}

// Direction selects which cell of a pair receives a side cost.
type Direction int

const (
	// DirectionExiting charges leaving the cell, stored on the neighbour.
	DirectionExiting Direction = iota
	// DirectionEntering charges entering the cell through the side.
	DirectionEntering
	DirectionBoth
)

// IsLowerColumn reports whether hexagonal column is drawn half a step lower
// than its neighbours.
func IsLowerColumn(column int, evenLayout bool) bool {
	return (column%2 == 0) == evenLayout
}

type offset struct{ dc, dr int }

var boxOffsets = [NumSides]offset{
	SideTopLeft:     {-1, 1},
	SideTop:         {0, 1},
	SideTopRight:    {1, 1},
	SideBottomRight: {1, -1},
	SideBottom:      {0, -1},
	SideBottomLeft:  {-1, -1},
	SideLeft:        {-1, 0},
	SideRight:       {1, 0},
}

var (
	hexLowerOffsets = [6]offset{
		SideTopLeft:     {-1, 0},
		SideTop:         {0, 1},
		SideTopRight:    {1, 0},
		SideBottomRight: {1, -1},
		SideBottom:      {0, -1},
		SideBottomLeft:  {-1, -1},
	}
	hexHigherOffsets = [6]offset{
		SideTopLeft:     {-1, 1},
		SideTop:         {0, 1},
		SideTopRight:    {1, 1},
		SideBottomRight: {1, 0},
		SideBottom:      {0, -1},
		SideBottomLeft:  {-1, 0},
	}
)

// Offset returns the column and row delta from a cell at column to the
// neighbour across side s. ok is false when s has no neighbour in t.
func Offset(t Topology, s Side, column int, evenLayout bool) (dc, dr int, ok bool) {
	if s < 0 || s >= NumSides {
		return 0, 0, false
	}
	switch t {
	case TopologyBox:
		o := boxOffsets[s]
		return o.dc, o.dr, true
	case TopologyHexagonal:
		if s == SideLeft || s == SideRight {
			return 0, 0, false
		}
		o := hexHigherOffsets[s]
		if IsLowerColumn(column, evenLayout) {
			o = hexLowerOffsets[s]
		}
		return o.dc, o.dr, true
	}
	return 0, 0, false
}

// EnteringSide returns the side of the destination cell crossed when moving
// along travel. Box grids resolve to the four orthogonal sides; the other
// topologies use the hexagon sides.
func EnteringSide(t Topology, travel geom.Point) Side {
	if t == TopologyBox {
		if abs(travel.X) > abs(travel.Y) {
			if travel.X < 0 {
				return SideRight
			}
			return SideLeft
		}
		if travel.Y < 0 {
			return SideTop
		}
		return SideBottom
	}
	switch {
	case travel.X == 0:
		if travel.Y < 0 {
			return SideTop
		}
		return SideBottom
	case travel.X < 0:
		if travel.Y < 0 {
			return SideTopRight
		}
		return SideBottomRight
	default:
		if travel.Y < 0 {
			return SideTopLeft
		}
		return SideBottomLeft
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// HexDistance returns the number of hexagon steps between two cells of an
// offset grid addressed by column and row.
func HexDistance(c0, r0, c1, r1 int, evenLayout bool) int {
	offset := 1
	if evenLayout {
		offset = 0
	}
	y0 := r0 - floorDiv(c0+offset, 2)
	y1 := r1 - floorDiv(c1+offset, 2)
	dx := c1 - c0
	dy := y1 - y0
	return max(absInt(dx), absInt(dy), absInt(dx+dy))
}

// BoxDistance returns the number of king moves between two box cells.
func BoxDistance(c0, r0, c1, r1 int) int {
	return max(absInt(c1-c0), absInt(r1-r0))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
