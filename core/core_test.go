// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package core

import (
	"errors"
	"testing"

	"github.com/2dChan/polygrid/geom"
)

// Topology

func TestParseTopology(t *testing.T) {
	tests := []struct {
		in      string
		want    Topology
		wantErr bool
	}{
		{"box", TopologyBox, false},
		{"Hex", TopologyHexagonal, false},
		{" irregular ", TopologyIrregular, false},
		{"triangle", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTopology(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTopology(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownTopology) {
				t.Errorf("ParseTopology(%q) error = %v, want ErrUnknownTopology", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTopology(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// Side

func TestSide_OppositeIsInvolution(t *testing.T) {
	for s := range Side(NumSides) {
		if got := s.Opposite().Opposite(); got != s {
			t.Errorf("%v.Opposite().Opposite() = %v, want %v", s, got, s)
		}
		if s.Opposite() == s {
			t.Errorf("%v.Opposite() = itself", s)
		}
	}
}

func TestOffset_MirrorsBack(t *testing.T) {
	tests := []struct {
		name       string
		topology   Topology
		sides      []Side
		evenLayout bool
	}{
		{"box", TopologyBox, BoxSides, false},
		{"hex even layout", TopologyHexagonal, HexSides, true},
		{"hex odd layout", TopologyHexagonal, HexSides, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for col := 2; col < 4; col++ {
				for _, s := range tt.sides {
					dc, dr, ok := Offset(tt.topology, s, col, tt.evenLayout)
					if !ok {
						t.Fatalf("Offset(%v, %v, %d) ok = false", tt.topology, s, col)
					}
					bc, br, ok := Offset(tt.topology, s.Opposite(), col+dc, tt.evenLayout)
					if !ok || bc != -dc || br != -dr {
						t.Errorf("Offset(%v, %v, %d) = (%d,%d), back = (%d,%d), want inverse",
							tt.topology, s, col, dc, dr, bc, br)
					}
				}
			}
		})
	}
}

func TestEnteringSide(t *testing.T) {
	tests := []struct {
		name     string
		topology Topology
		travel   geom.Point
		want     Side
	}{
		{"box right", TopologyBox, geom.Point{X: 1, Y: 0}, SideLeft},
		{"box left", TopologyBox, geom.Point{X: -1, Y: 0.2}, SideRight},
		{"box up", TopologyBox, geom.Point{X: 0, Y: 1}, SideBottom},
		{"box down", TopologyBox, geom.Point{X: 0.1, Y: -1}, SideTop},
		{"hex up", TopologyHexagonal, geom.Point{X: 0, Y: 1}, SideBottom},
		{"hex up right", TopologyHexagonal, geom.Point{X: 1, Y: 1}, SideBottomLeft},
		{"hex down left", TopologyHexagonal, geom.Point{X: -1, Y: -1}, SideTopRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnteringSide(tt.topology, tt.travel); got != tt.want {
				t.Errorf("EnteringSide(%v, %v) = %v, want %v", tt.topology, tt.travel, got, tt.want)
			}
		})
	}
}

// Cell

func TestCell_CrossCostDefaults(t *testing.T) {
	c := NewCell(0, geom.Point{})
	if got := c.SideCrossCost(SideTop); got != 1 {
		t.Errorf("SideCrossCost(top) = %v, want 1", got)
	}
	c.SetSideCrossCost(SideLeft, 7)
	if got := c.SideCrossCost(SideLeft); got != 7 {
		t.Errorf("SideCrossCost(left) = %v, want 7", got)
	}
	if got := c.SideCrossCost(SideRight); got != 1 {
		t.Errorf("SideCrossCost(right) = %v, want 1 after sibling set", got)
	}
	c.SetCrossCost(3)
	for s := range Side(NumSides) {
		if got := c.SideCrossCost(s); got != 3 {
			t.Errorf("SideCrossCost(%v) = %v, want 3", s, got)
		}
	}
}

func TestCell_BlocksLOS(t *testing.T) {
	c := NewCell(0, geom.Point{})
	c.SetSideBlocksLOS(SideTop, false)
	if c.blocksLOS != nil {
		t.Errorf("SetSideBlocksLOS(top, false) allocated flags, want lazy")
	}
	c.SetSideBlocksLOS(SideTop, true)
	if !c.SideBlocksLOS(SideTop) || c.SideBlocksLOS(SideBottom) {
		t.Errorf("SideBlocksLOS(top, bottom) = %v, %v, want true, false",
			c.SideBlocksLOS(SideTop), c.SideBlocksLOS(SideBottom))
	}
}

func TestRegion_AddNeighbour(t *testing.T) {
	r := NewRegion()
	if !r.AddNeighbour(3) || r.AddNeighbour(3) || !r.AddNeighbour(1) {
		t.Errorf("AddNeighbour sequence mismatch, neighbours = %v", r.Neighbours)
	}
	if len(r.Neighbours) != 2 {
		t.Errorf("len(Neighbours) = %v, want 2", len(r.Neighbours))
	}
}

func TestHexDistance(t *testing.T) {
	tests := []struct {
		c0, r0, c1, r1 int
		even           bool
		want           int
	}{
		{0, 0, 3, 0, true, 3},
		{0, 0, 3, 0, false, 3},
		{0, 0, 0, 4, true, 4},
		{2, 2, 2, 2, false, 0},
		{0, 0, 2, 3, true, 4},
	}
	for _, tt := range tests {
		if got := HexDistance(tt.c0, tt.r0, tt.c1, tt.r1, tt.even); got != tt.want {
			t.Errorf("HexDistance(%d, %d, %d, %d, %v) = %v, want %v",
				tt.c0, tt.r0, tt.c1, tt.r1, tt.even, got, tt.want)
		}
	}
}

func TestHexDistance_NeighboursAreOneStep(t *testing.T) {
	for _, even := range []bool{true, false} {
		for col := 0; col < 4; col++ {
			for _, s := range HexSides {
				dc, dr, _ := Offset(TopologyHexagonal, s, col, even)
				if got := HexDistance(col, 3, col+dc, 3+dr, even); got != 1 {
					t.Errorf("HexDistance across %v from column %d (even=%v) = %v, want 1", s, col, even, got)
				}
			}
		}
	}
}

func TestBoxDistance(t *testing.T) {
	if got := BoxDistance(0, 0, 3, 1); got != 3 {
		t.Errorf("BoxDistance(0, 0, 3, 1) = %v, want 3", got)
	}
	if got := BoxDistance(2, 5, 1, 1); got != 4 {
		t.Errorf("BoxDistance(2, 5, 1, 1) = %v, want 4", got)
	}
}
