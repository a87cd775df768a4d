// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package los

import (
	"testing"

	"github.com/2dChan/polygrid/adjacency"
	"github.com/2dChan/polygrid/core"
	"github.com/2dChan/polygrid/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace_BoxOpen(t *testing.T) {
	tr, _ := mustTracer(t, topology.Params{Topology: core.TopologyBox, Rows: 4, Columns: 4})
	res := tr.Trace(0, 3, Options{})
	assert.True(t, res.Visible)
	assert.Equal(t, []int{1, 2, 3}, res.Cells)
	// 3 steps at resolution 2, made odd.
	assert.Len(t, res.Points, 7)
}

func TestTrace_BoxBlockedSide(t *testing.T) {
	tr, cells := mustTracer(t, topology.Params{Topology: core.TopologyBox, Rows: 4, Columns: 4})
	// Left side of (row 1, col 2) faces (row 1, col 1).
	cells[6].SetSideBlocksLOS(core.SideLeft, true)

	assert.False(t, tr.Trace(5, 6, Options{}).Visible)
	assert.False(t, tr.Trace(6, 5, Options{}).Visible)
	assert.False(t, tr.Trace(4, 7, Options{}).Visible)
	assert.True(t, tr.Trace(0, 3, Options{}).Visible)
	assert.True(t, tr.Trace(2, 14, Options{}).Visible)
}

func TestTrace_Filters(t *testing.T) {
	tests := []struct {
		name  string
		setup func(cells []*core.Cell)
		opts  Options
		want  bool
	}{
		{"open", func([]*core.Cell) {}, Options{}, true},
		{"blocked cell", func(c []*core.Cell) { c[1].CanCross = false }, Options{}, false},
		{"blocked destination", func(c []*core.Cell) { c[3].CanCross = false }, Options{}, true},
		{"masked cell", func(c []*core.Cell) { c[2].Group = 4 }, Options{GroupMask: 1}, false},
		{"masked destination", func(c []*core.Cell) { c[3].Group = 4 }, Options{GroupMask: 1}, true},
		{"mask zero keeps all", func(c []*core.Cell) { c[2].Group = 4 }, Options{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, cells := mustTracer(t, topology.Params{Topology: core.TopologyBox, Rows: 1, Columns: 4})
			tt.setup(cells)
			assert.Equal(t, tt.want, tr.Trace(0, 3, tt.opts).Visible)
		})
	}
}

func TestTrace_Exhaustive(t *testing.T) {
	tr, cells := mustTracer(t, topology.Params{Topology: core.TopologyBox, Rows: 5, Columns: 5})
	// The center line from (row 0, col 0) to (row 1, col 4) crosses
	// (row 1, col 2); the line to the bottom-left corner stays in row 0.
	cells[7].CanCross = false

	res := tr.Trace(0, 9, Options{})
	assert.False(t, res.Visible)

	res = tr.Trace(0, 9, Options{Exhaustive: true})
	require.True(t, res.Visible)
	assert.Contains(t, res.Cells, 9)
	assert.NotEmpty(t, res.Points)
}

func TestTrace_HexBlocked(t *testing.T) {
	tr, cells := mustTracer(t, topology.Params{Topology: core.TopologyHexagonal, Rows: 4, Columns: 4, EvenLayout: true})
	require.True(t, tr.Trace(0, 2, Options{}).Visible)
	for _, s := range core.HexSides {
		cells[2].SetSideBlocksLOS(s, true)
	}
	assert.False(t, tr.Trace(0, 2, Options{}).Visible)
}

func TestTrace_Irregular(t *testing.T) {
	tr, cells := mustTracer(t, topology.Params{Topology: core.TopologyIrregular, CellCount: 200, Seed: 6})
	nb := cells[0].Neighbours()[0]
	res := tr.Trace(0, nb, Options{Resolution: 4})
	require.True(t, res.Visible)
	assert.Equal(t, nb, res.Cells[len(res.Cells)-1])

	for s := range core.Side(core.NumSides) {
		cells[nb].SetSideBlocksLOS(s, true)
	}
	assert.False(t, tr.Trace(0, nb, Options{}).Visible)
}

func TestTrace_InvalidIndex(t *testing.T) {
	tr, _ := mustTracer(t, topology.Params{Topology: core.TopologyBox, Rows: 2, Columns: 2})
	assert.Equal(t, Result{}, tr.Trace(-1, 2, Options{}))
	assert.Equal(t, Result{}, tr.Trace(0, 4, Options{}))
	assert.Equal(t, Result{}, tr.Line(0, 4, 2))
}

func TestLine(t *testing.T) {
	tr, cells := mustTracer(t, topology.Params{Topology: core.TopologyBox, Rows: 1, Columns: 4})
	cells[1].CanCross = false
	res := tr.Line(0, 3, 2)
	assert.False(t, res.Visible)
	assert.Equal(t, []int{1, 2, 3}, res.Cells)
	assert.Len(t, res.Points, 7)
	end := res.Points[len(res.Points)-1]
	assert.InDelta(t, cells[3].Center.X, end.X, 1e-12)
	assert.InDelta(t, cells[3].Center.Y, end.Y, 1e-12)
}

// Benchmarks

func BenchmarkTrace(b *testing.B) {
	cells, err := topology.Generate(topology.Params{Topology: core.TopologyIrregular, CellCount: 2000})
	require.NoError(b, err)
	adjacency.Build(cells)
	adjacency.UpdateBounds(cells)
	tr := NewTracer(core.TopologyIrregular, cells, nil, false)
	b.ReportAllocs()
	for b.Loop() {
		tr.Trace(0, len(cells)-1, Options{})
	}
}

// Helpers

func mustTracer(t *testing.T, p topology.Params) (*Tracer, []*core.Cell) {
	t.Helper()
	cells, err := topology.Generate(p)
	require.NoError(t, err)
	adjacency.Build(cells)
	adjacency.UpdateBounds(cells)
	return NewTracer(p.Topology, cells, nil, p.EvenLayout), cells
}
