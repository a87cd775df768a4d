// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package polygrid

import (
	"slices"

	"github.com/2dChan/polygrid/geom"
)

// InteractionKind names the last pointer event seen by a Grid.
type InteractionKind int

const (
	InteractionNone InteractionKind = iota
	InteractionMove
	InteractionClick
)

func (k InteractionKind) String() string {
	switch k {
	case InteractionMove:
		return "move"
	case InteractionClick:
		return "click"
	}
	return "none"
}

// Interaction is the result of a pointer event. Cell and Territory are the
// indices under the pointer, or -1. HighlightedCell and HighlightedTerritory
// are -1 when nothing is highlighted, including when an observer canceled
// the highlight.
type Interaction struct {
	Kind                 InteractionKind
	Point                geom.Point
	Cell                 int
	Territory            int
	HighlightedCell      int
	HighlightedTerritory int
}

// Observer receives pointer notifications. Every field is optional. Enter
// callbacks return false to cancel the highlight of the entered cell or
// territory.
type Observer struct {
	CellEnter      func(cell int) bool
	CellExit       func(cell int)
	CellClick      func(cell int)
	TerritoryEnter func(territory int) bool
	TerritoryExit  func(territory int)
	TerritoryClick func(territory int)
}

type observerEntry struct {
	id int
	o  Observer
}

// Subscribe registers o and returns a function removing it. Observers are
// notified in registration order.
func (g *Grid) Subscribe(o Observer) (cancel func()) {
	id := g.nextObserverID
	g.nextObserverID++
	g.observers = append(g.observers, observerEntry{id: id, o: o})
	return func() {
		g.observers = slices.DeleteFunc(g.observers, func(e observerEntry) bool { return e.id == id })
	}
}

// PointerMove updates the cell and territory under p, notifying exit and
// enter callbacks when they change.
func (g *Grid) PointerMove(p geom.Point) Interaction {
	cell, terr := g.CellAt(p), g.TerritoryAt(p)

	if cell != g.hoveredCell {
		if g.hoveredCell >= 0 {
			g.notify(func(o Observer) {
				if o.CellExit != nil {
					o.CellExit(g.hoveredCell)
				}
			})
		}
		g.hoveredCell = cell
		g.highlightedCell = -1
		if cell >= 0 && g.enter(func(o Observer) bool { return o.CellEnter == nil || o.CellEnter(cell) }) {
			g.highlightedCell = cell
		}
	}
	if terr != g.hoveredTerritory {
		if g.hoveredTerritory >= 0 {
			g.notify(func(o Observer) {
				if o.TerritoryExit != nil {
					o.TerritoryExit(g.hoveredTerritory)
				}
			})
		}
		g.hoveredTerritory = terr
		g.highlightedTerritory = -1
		if terr >= 0 && g.enter(func(o Observer) bool { return o.TerritoryEnter == nil || o.TerritoryEnter(terr) }) {
			g.highlightedTerritory = terr
		}
	}
	return g.record(InteractionMove, p, cell, terr)
}

// Click notifies click callbacks for the cell and territory under p.
func (g *Grid) Click(p geom.Point) Interaction {
	cell, terr := g.CellAt(p), g.TerritoryAt(p)
	if cell >= 0 {
		g.notify(func(o Observer) {
			if o.CellClick != nil {
				o.CellClick(cell)
			}
		})
	}
	if terr >= 0 {
		g.notify(func(o Observer) {
			if o.TerritoryClick != nil {
				o.TerritoryClick(terr)
			}
		})
	}
	return g.record(InteractionClick, p, cell, terr)
}

// LastInteraction returns the result of the last PointerMove or Click.
func (g *Grid) LastInteraction() Interaction {
	return g.last
}

// HighlightedCell returns the highlighted cell, or -1.
func (g *Grid) HighlightedCell() int {
	return g.highlightedCell
}

// HighlightedTerritory returns the highlighted territory, or -1.
func (g *Grid) HighlightedTerritory() int {
	return g.highlightedTerritory
}

func (g *Grid) record(kind InteractionKind, p geom.Point, cell, terr int) Interaction {
	g.last = Interaction{
		Kind:                 kind,
		Point:                p,
		Cell:                 cell,
		Territory:            terr,
		HighlightedCell:      g.highlightedCell,
		HighlightedTerritory: g.highlightedTerritory,
	}
	return g.last
}

// notify calls f for a snapshot of the observers, so callbacks may
// unsubscribe.
func (g *Grid) notify(f func(Observer)) {
	for _, e := range slices.Clone(g.observers) {
		f(e.o)
	}
}

// enter asks every observer and reports whether none canceled.
func (g *Grid) enter(f func(Observer) bool) bool {
	ok := true
	for _, e := range slices.Clone(g.observers) {
		if !f(e.o) {
			ok = false
		}
	}
	return ok
}

func (g *Grid) resetInteraction() {
	g.hoveredCell = -1
	g.hoveredTerritory = -1
	g.highlightedCell = -1
	g.highlightedTerritory = -1
	g.last = Interaction{Cell: -1, Territory: -1, HighlightedCell: -1, HighlightedTerritory: -1}
}
