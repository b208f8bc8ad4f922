package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/wire2mesh/internal/logger"
	"github.com/Faultbox/wire2mesh/pkg/formats"
	"github.com/Faultbox/wire2mesh/pkg/mesh"
)

// inspectReport is the JSON shape of `inspect --json`.
type inspectReport struct {
	Path string `json:"path"`
	mesh.Stats
}

func inspectCmd(g *globalFlags) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "inspect <mesh.obj>",
		Short: "Print statistics for an OBJ mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if g.debug {
				level = "debug"
			}
			if err := logger.Init(level, g.logFile, g.quiet); err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			defer logger.Sync()

			m, err := formats.LoadOBJ(args[0])
			if err != nil {
				return err
			}

			logger.Info("mesh loaded",
				zap.String("path", args[0]),
				zap.Int("vertices", len(m.Vertices)),
				zap.Int("faces", len(m.Faces)),
			)

			st := mesh.ComputeStats(m)
			if st.InvalidFaces > 0 {
				logger.Warn("mesh has faces referencing missing vertices",
					zap.String("path", args[0]),
					zap.Int("invalid_faces", st.InvalidFaces),
				)
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), inspectReport{Path: args[0], Stats: st})
			}
			printStats(cmd.OutOrStdout(), args[0], st)
			return nil
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")
	return c
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printStats(w io.Writer, path string, st mesh.Stats) {
	fmt.Fprintf(w, "Mesh:        %s\n", path)
	fmt.Fprintf(w, "Vertices:    %d\n", st.Vertices)
	fmt.Fprintf(w, "Faces:       %d (%d unique)\n", st.Faces, st.UniqueFaces)
	fmt.Fprintf(w, "Degenerate:  %d\n", st.DegenerateFaces)
	fmt.Fprintf(w, "Invalid:     %d\n", st.InvalidFaces)
	fmt.Fprintf(w, "Area:        %.6g\n", st.SurfaceArea)
	if st.Vertices > 0 {
		size := st.Bounds.Size()
		fmt.Fprintf(w, "Bounds:      (%g, %g, %g) - (%g, %g, %g)\n",
			st.Bounds.Min[0], st.Bounds.Min[1], st.Bounds.Min[2],
			st.Bounds.Max[0], st.Bounds.Max[1], st.Bounds.Max[2])
		fmt.Fprintf(w, "Size:        %g x %g x %g\n", size[0], size[1], size[2])
	}
}
