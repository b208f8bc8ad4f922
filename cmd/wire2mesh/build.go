package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/wire2mesh/internal/config"
	"github.com/Faultbox/wire2mesh/internal/logger"
	"github.com/Faultbox/wire2mesh/internal/pipeline"
)

func buildCmd(g *globalFlags) *cobra.Command {
	var f config.Flags
	var verify, dedupe bool
	var precision int

	c := &cobra.Command{
		Use:   "build [vertices.txt edges.txt out.obj]",
		Short: "Reconstruct faces from a wireframe and write an OBJ mesh",
		Long: `Reconstruct faces from a wireframe and write an OBJ mesh.

Paths may be omitted when the config file provides input.vertices,
input.edges and output.path.

Policies:
  legacy  every pair of edges sharing one vertex becomes a face (default)
  strict  the closing edge must exist and each triangle is written once`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return fmt.Errorf("expected <vertices> <edges> <out.obj> or no arguments, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f.ConfigPath = g.configPath
			f.Debug = g.debug
			f.Quiet = g.quiet
			f.LogFile = g.logFile
			if len(args) == 3 {
				f.Vertices, f.Edges, f.Output = args[0], args[1], args[2]
			}
			if cmd.Flags().Changed("verify-third-edge") {
				f.VerifyThirdEdge = &verify
			}
			if cmd.Flags().Changed("dedupe") {
				f.DedupeFaces = &dedupe
			}
			if cmd.Flags().Changed("precision") {
				f.Precision = &precision
			}

			cfg, err := config.Load(f)
			if err != nil {
				return err
			}

			if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, cfg.Logging.Quiet); err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			defer logger.Sync()
			logger.Sugar.Debugf("config: %+v", cfg)

			res, err := pipeline.Run(cfg)
			if err != nil {
				logger.Error("build failed", zap.Error(err))
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d vertices, %d faces from %d edges\n",
				res.OutputPath, res.Vertices, res.Faces, res.Edges)
			return nil
		},
	}

	c.Flags().StringVar(&f.Policy, "policy", "", "reconstruction policy: legacy or strict")
	c.Flags().BoolVar(&verify, "verify-third-edge", false, "only emit faces whose closing edge exists")
	c.Flags().BoolVar(&dedupe, "dedupe", false, "emit each vertex triple once")
	c.Flags().StringVar(&f.Winding, "winding", "", "face index order: pivot-first or edge-order")
	c.Flags().IntVar(&f.Workers, "workers", 0, "scan edge pairs with N workers")
	c.Flags().IntVar(&precision, "precision", 0, "significant digits per coordinate (0 = shortest exact)")
	c.Flags().StringVar(&f.Name, "name", "", "object name written as an 'o' record")

	return c
}
