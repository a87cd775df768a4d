// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/2dChan/polygrid"
	"github.com/2dChan/polygrid/core"
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// gridOpts are the grid flags shared by every command. Flags left unset
// keep the value of the config file, or of polygrid.DefaultConfig.
type gridOpts struct {
	config      string
	topology    string
	cells       int
	rows        int
	columns     int
	seed        int64
	relaxation  int
	curvature   float64
	territories int
	even        bool
	data        string
}

func addGridFlags(cmd *cobra.Command, o *gridOpts) {
	f := cmd.Flags()
	f.StringVarP(&o.config, "config", "c", "", "TOML grid configuration file")
	f.StringVarP(&o.topology, "topology", "t", "", "cell layout: irregular, box, hexagonal")
	f.IntVar(&o.cells, "cells", 0, "number of irregular cells")
	f.IntVar(&o.rows, "rows", 0, "box and hexagonal rows")
	f.IntVar(&o.columns, "columns", 0, "box and hexagonal columns")
	f.Int64Var(&o.seed, "seed", 0, "random seed")
	f.IntVar(&o.relaxation, "relaxation", 0, "voronoi relaxation passes")
	f.Float64Var(&o.curvature, "curvature", 0, "edge curvature")
	f.IntVar(&o.territories, "territories", 0, "number of territories")
	f.BoolVar(&o.even, "even", false, "shift even hexagonal columns down")
	f.StringVar(&o.data, "data", "", "cell configuration string to restore after generation")
}

// loadConfig reads a TOML file over polygrid.DefaultConfig. Unknown keys
// are an error.
func loadConfig(path string) (polygrid.Config, error) {
	cfg := polygrid.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func writeConfig(w io.Writer, cfg polygrid.Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// options turns the flags the user set into grid options.
func (o *gridOpts) options(cmd *cobra.Command, cfg polygrid.Config) ([]polygrid.Option, error) {
	f := cmd.Flags()
	var opts []polygrid.Option
	if f.Changed("topology") {
		t, err := core.ParseTopology(o.topology)
		if err != nil {
			return nil, err
		}
		opts = append(opts, polygrid.WithTopology(t))
	}
	if f.Changed("cells") {
		opts = append(opts, polygrid.WithCellCount(o.cells))
	}
	if f.Changed("rows") || f.Changed("columns") {
		rows, columns := cfg.Rows, cfg.Columns
		if f.Changed("rows") {
			rows = o.rows
		}
		if f.Changed("columns") {
			columns = o.columns
		}
		opts = append(opts, polygrid.WithRowsColumns(rows, columns))
	}
	if f.Changed("seed") {
		opts = append(opts, polygrid.WithSeed(o.seed))
	}
	if f.Changed("relaxation") {
		opts = append(opts, polygrid.WithRelaxation(o.relaxation))
	}
	if f.Changed("curvature") {
		opts = append(opts, polygrid.WithCurvature(o.curvature))
	}
	if f.Changed("territories") {
		opts = append(opts, polygrid.WithTerritories(o.territories))
	}
	if f.Changed("even") {
		opts = append(opts, polygrid.WithEvenLayout(o.even))
	}
	return opts, nil
}

// build generates the grid described by the config file and flags.
func (o *gridOpts) build(cmd *cobra.Command) (*polygrid.Grid, error) {
	logger := loggerFromContext(cmd.Context())
	cfg, err := loadConfig(o.config)
	if err != nil {
		return nil, err
	}
	opts, err := o.options(cmd, cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts, polygrid.WithLogger(logger))

	prog := newProgress(logger)
	g, err := polygrid.NewFromConfig(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if o.data != "" {
		if err := g.SetConfigurationData(o.data); err != nil {
			return nil, err
		}
	}
	prog.done("grid ready", "topology", g.Topology(), "cells", g.CellCount())
	return g, nil
}
