// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package pathfinding

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownHeuristic is returned when a heuristic name cannot be parsed.
var ErrUnknownHeuristic = errors.New("pathfinding: unknown heuristic")

// Heuristic selects the formula estimating the remaining cost to the goal.
type Heuristic int

const (
	HeuristicEuclidean Heuristic = iota
	// HeuristicEuclideanNoSQR uses the squared distance. It expands fewer
	// nodes but overestimates, so paths may be longer than optimal.
	HeuristicEuclideanNoSQR
	HeuristicManhattan
	// HeuristicMaxDXDY is the Chebyshev distance.
	HeuristicMaxDXDY
	// HeuristicDiagonalShortcut charges the diagonal cost for the shared
	// part of dx and dy and 1 for the rest.
	HeuristicDiagonalShortcut
)

var heuristicNames = [...]string{"euclidean", "euclidean-nosqr", "manhattan", "max-dxdy", "diagonal-shortcut"}

func (h Heuristic) String() string {
	if h < 0 || int(h) >= len(heuristicNames) {
		return fmt.Sprintf("Heuristic(%d)", int(h))
	}
	return heuristicNames[h]
}

// ParseHeuristic parses a heuristic name as returned by String.
// Underscores and case are ignored, "chebyshev" is accepted for max-dxdy.
func ParseHeuristic(s string) (Heuristic, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if name == "chebyshev" {
		return HeuristicMaxDXDY, nil
	}
	for i, n := range heuristicNames {
		if n == name {
			return Heuristic(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHeuristic, s)
}

func (h Heuristic) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Heuristic) UnmarshalText(text []byte) error {
	v, err := ParseHeuristic(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// estimate returns the formula applied to the absolute deltas. The
// euclidean distance is scaled down when a diagonal step costs less than
// its length, so it never exceeds the cost of a diagonal route.
func (h Heuristic) estimate(dx, dy, diagonalCost float64) float64 {
	dx, dy = math.Abs(dx), math.Abs(dy)
	switch h {
	case HeuristicEuclideanNoSQR:
		return dx*dx + dy*dy
	case HeuristicManhattan:
		return dx + dy
	case HeuristicMaxDXDY:
		return max(dx, dy)
	case HeuristicDiagonalShortcut:
		d := min(dx, dy)
		return diagonalCost*d + (max(dx, dy) - d)
	default:
		return math.Hypot(dx, dy) * min(1, diagonalCost/math.Sqrt2)
	}
}
