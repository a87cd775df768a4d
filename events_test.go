// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package polygrid

import (
	"strconv"
	"testing"

	"github.com/2dChan/polygrid/core"
	"github.com/2dChan/polygrid/geom"
	"github.com/google/go-cmp/cmp"
)

type recorder struct {
	events []string
	veto   int
}

func (r *recorder) observer() Observer {
	return Observer{
		CellEnter: func(c int) bool {
			r.events = append(r.events, "enter "+strconv.Itoa(c))
			return c != r.veto
		},
		CellExit:       func(c int) { r.events = append(r.events, "exit "+strconv.Itoa(c)) },
		CellClick:      func(c int) { r.events = append(r.events, "click "+strconv.Itoa(c)) },
		TerritoryEnter: func(k int) bool { r.events = append(r.events, "territory "+strconv.Itoa(k)); return true },
	}
}

func TestPointerMove(t *testing.T) {
	g := mustGrid(t, WithTopology(core.TopologyBox), WithRowsColumns(3, 3), WithTerritories(1))
	rec := &recorder{veto: 4}
	cancel := g.Subscribe(rec.observer())

	got := g.PointerMove(geom.Point{})
	want := Interaction{
		Kind:                 InteractionMove,
		Cell:                 4,
		Territory:            0,
		HighlightedCell:      -1,
		HighlightedTerritory: 0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PointerMove(center) mismatch (-want +got):\n%s", diff)
	}

	corner := geom.Point{X: -1.0 / 3, Y: -1.0 / 3}
	got = g.PointerMove(corner)
	if got.Cell != 0 || got.HighlightedCell != 0 {
		t.Errorf("PointerMove(corner) = cell %d highlighted %d, want 0, 0", got.Cell, got.HighlightedCell)
	}
	g.PointerMove(corner)

	cancel()
	g.PointerMove(geom.Point{})

	wantEvents := []string{"enter 4", "territory 0", "exit 4", "enter 0"}
	if diff := cmp.Diff(wantEvents, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if got := g.HighlightedCell(); got != 4 {
		t.Errorf("HighlightedCell() after unsubscribe = %d, want 4", got)
	}
}

func TestClick(t *testing.T) {
	g := mustBox(t, 3, 3)
	rec := &recorder{veto: -1}
	g.Subscribe(rec.observer())

	got := g.Click(geom.Point{})
	if got.Kind != InteractionClick || got.Cell != 4 {
		t.Errorf("Click(center) = %+v, want click on cell 4", got)
	}
	if diff := cmp.Diff(got, g.LastInteraction()); diff != "" {
		t.Errorf("LastInteraction() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"click 4"}, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	out := g.Click(geom.Point{X: 3})
	if out.Cell != -1 || out.Territory != -1 {
		t.Errorf("Click(outside) = cell %d territory %d, want -1, -1", out.Cell, out.Territory)
	}
}

func TestSubscribe_CancelInsideCallback(t *testing.T) {
	g := mustBox(t, 3, 3)
	calls := 0
	var cancel func()
	cancel = g.Subscribe(Observer{CellClick: func(int) {
		calls++
		cancel()
	}})
	g.Click(geom.Point{})
	g.Click(geom.Point{})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
