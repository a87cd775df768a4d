// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package polygrid

import (
	"errors"
	"fmt"

	"github.com/2dChan/polygrid/core"
	"github.com/2dChan/polygrid/geom"
	"github.com/2dChan/polygrid/pathfinding"
	"github.com/2dChan/polygrid/territory"
	"github.com/charmbracelet/log"
)

// Config describes the grid a Grid generates. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	Topology  core.Topology `toml:"topology" json:"topology"`
	CellCount int           `toml:"cell_count" json:"cell_count"`
	Rows      int           `toml:"rows" json:"rows"`
	Columns   int           `toml:"columns" json:"columns"`
	// Seed drives site placement and territory growth.
	Seed       int64   `toml:"seed" json:"seed"`
	Relaxation int     `toml:"relaxation" json:"relaxation"`
	Curvature  float64 `toml:"curvature" json:"curvature"`
	// EvenLayout shifts even hexagonal columns down instead of odd ones.
	EvenLayout  bool `toml:"even_layout" json:"even_layout"`
	Territories int  `toml:"territories" json:"territories"`
	// Sites replaces random sites for irregular grids.
	Sites []geom.Point `toml:"sites,omitempty" json:"sites,omitempty"`

	PathFinding pathfinding.Settings `toml:"pathfinding" json:"pathfinding"`
}

// DefaultConfig returns an irregular grid of 100 cells split in 3 territories.
func DefaultConfig() Config {
	return Config{
		Topology:    core.TopologyIrregular,
		CellCount:   100,
		Rows:        8,
		Columns:     8,
		Seed:        1,
		Relaxation:  1,
		Territories: 3,
		PathFinding: pathfinding.DefaultSettings(),
	}
}

// Options are the construction settings of a Grid.
type Options struct {
	Config Config
	Logger *log.Logger
}

type Option func(*Options) error

var errNilLogger = errors.New("WithLogger: logger must not be nil")

// WithTopology selects the cell layout.
func WithTopology(t core.Topology) Option {
	return func(o *Options) error {
		if t < core.TopologyIrregular || t > core.TopologyHexagonal {
			return fmt.Errorf("WithTopology: %w: %v", core.ErrUnknownTopology, t)
		}
		o.Config.Topology = t
		return nil
	}
}

// WithCellCount sets the number of irregular cells.
func WithCellCount(n int) Option {
	return func(o *Options) error {
		if n <= 0 {
			return fmt.Errorf("WithCellCount: count %d must be positive", n)
		}
		o.Config.CellCount = n
		return nil
	}
}

// WithRowsColumns sets the box and hexagonal grid size.
func WithRowsColumns(rows, columns int) Option {
	return func(o *Options) error {
		if rows <= 0 || columns <= 0 {
			return fmt.Errorf("WithRowsColumns: %d rows, %d columns must be positive", rows, columns)
		}
		o.Config.Rows = rows
		o.Config.Columns = columns
		return nil
	}
}

func WithSeed(seed int64) Option {
	return func(o *Options) error {
		o.Config.Seed = seed
		return nil
	}
}

// WithRelaxation sets the number of Voronoi passes. 1 means no relaxation.
func WithRelaxation(n int) Option {
	return func(o *Options) error {
		if n < 0 {
			return fmt.Errorf("WithRelaxation: %d must not be negative", n)
		}
		o.Config.Relaxation = n
		return nil
	}
}

// WithCurvature bows cell edges. Values above topology.MaxCurvature are clamped.
func WithCurvature(c float64) Option {
	return func(o *Options) error {
		if c < 0 {
			return fmt.Errorf("WithCurvature: %v must not be negative", c)
		}
		o.Config.Curvature = c
		return nil
	}
}

// WithTerritories sets the number of territories grown after generation.
func WithTerritories(n int) Option {
	return func(o *Options) error {
		if n < 0 || n > territory.MaxTerritories {
			return fmt.Errorf("WithTerritories: %d out of range [0 %d]", n, territory.MaxTerritories)
		}
		o.Config.Territories = n
		return nil
	}
}

func WithEvenLayout(even bool) Option {
	return func(o *Options) error {
		o.Config.EvenLayout = even
		return nil
	}
}

// WithSites places irregular cells on the given sites.
func WithSites(sites []geom.Point) Option {
	return func(o *Options) error {
		if len(sites) == 0 {
			return errors.New("WithSites: at least one site required")
		}
		o.Config.Sites = sites
		return nil
	}
}

// WithPathFinding sets the path finding session defaults.
func WithPathFinding(s pathfinding.Settings) Option {
	return func(o *Options) error {
		o.Config.PathFinding = s
		return nil
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) error {
		if l == nil {
			return errNilLogger
		}
		o.Logger = l
		return nil
	}
}
