package main

import (
	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	debug      bool
	quiet      bool
	logFile    string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "wire2mesh",
		Short: "wire2mesh - rebuild triangle meshes from predicted wireframes",
		Long: `wire2mesh reads a vertex file (x y z per line) and an edge file
(i j per line, 0-based) and infers triangular faces from edge adjacency.

Examples:
  wire2mesh build sofa.pred_mesh.txt sofa.pred_edge.txt sofa.obj
  wire2mesh build --policy strict sofa.pred_mesh.txt sofa.pred_edge.txt sofa.obj
  wire2mesh inspect --json sofa.obj
  wire2mesh config init`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "path to config file")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&g.quiet, "quiet", false, "only log warnings and errors to the console")
	cmd.PersistentFlags().StringVar(&g.logFile, "log-file", "", "also write logs to this file (rotated)")

	cmd.AddCommand(buildCmd(g))
	cmd.AddCommand(inspectCmd(g))
	cmd.AddCommand(configCmd(g))

	return cmd
}
