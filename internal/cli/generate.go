// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type generateOpts struct {
	grid     gridOpts
	save     string
	showData bool
}

func newGenerateCmd() *cobra.Command {
	var opts generateOpts
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a grid and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, &opts)
		},
	}
	addGridFlags(cmd, &opts.grid)
	cmd.Flags().StringVar(&opts.save, "save", "", "write the effective configuration to a TOML file")
	cmd.Flags().BoolVar(&opts.showData, "print-data", false, "print the cell configuration string")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	g, err := opts.grid.build(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	border := 0
	for i := range g.CellCount() {
		if g.CellIsBorder(i) {
			border++
		}
	}
	printTitle(out, "polygrid")
	printKeyValue(out, "topology", g.Topology())
	if g.Topology().HasRowsColumns() {
		printKeyValue(out, "size", fmt.Sprintf("%d x %d", g.Rows(), g.Columns()))
	}
	printKeyValue(out, "cells", g.CellCount())
	printKeyValue(out, "border cells", border)
	printKeyValue(out, "territories", g.TerritoryCount())
	printKeyValue(out, "frontiers", len(g.TerritoryFrontiers()))
	if opts.showData {
		printKeyValue(out, "data", g.ConfigurationData())
	}

	if opts.save == "" {
		return nil
	}
	f, err := os.Create(opts.save)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := writeConfig(f, g.Config()); err != nil {
		return err
	}
	printFile(out, opts.save)
	return nil
}
