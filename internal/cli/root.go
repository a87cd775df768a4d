// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package cli implements the polygrid command line: grid generation,
// rendering, path and line of sight queries and an HTTP query server.
// Every command takes the grid flags or a TOML configuration file and
// logs through the logger attached to the command context.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version printed by --version.
func SetVersion(v string) {
	version = v
}

// Execute runs the polygrid command line until ctx is canceled.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var logs logOpts
	root := &cobra.Command{
		Use:          "polygrid",
		Short:        "polygrid builds irregular, box and hexagonal polygon grids",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), logs)
			if err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
	}
	addLogFlags(root, &logs)

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newPathCmd())
	root.AddCommand(newLOSCmd())
	root.AddCommand(newServeCmd())
	return root
}
