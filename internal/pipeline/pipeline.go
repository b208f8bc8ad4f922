// Package pipeline runs the load, reconstruct and write stages of a build.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/wire2mesh/internal/config"
	"github.com/Faultbox/wire2mesh/internal/logger"
	"github.com/Faultbox/wire2mesh/pkg/formats"
	"github.com/Faultbox/wire2mesh/pkg/mesh"
)

// Result describes a completed build.
type Result struct {
	RunID      string
	Vertices   int
	Edges      int
	Faces      int
	Options    mesh.ReconstructOptions
	OutputPath string
	Duration   time.Duration
}

// Run loads the wireframe, reconstructs faces and writes the OBJ file.
// Each stage completes before the next starts; any failure aborts the run
// before the output file is touched, except for failures while writing.
func Run(cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := cfg.Reconstruct.Options()
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:      uuid.NewString(),
		Options:    opts,
		OutputPath: cfg.Output.Path,
	}
	log := logger.With(zap.String("run", res.RunID))
	start := time.Now()

	wf, err := formats.LoadWireframe(cfg.Input.Vertices, cfg.Input.Edges)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	res.Vertices = len(wf.Vertices)
	res.Edges = len(wf.Edges)
	log.Info("wireframe loaded",
		zap.String("vertices_file", cfg.Input.Vertices),
		zap.String("edges_file", cfg.Input.Edges),
		zap.Int("vertices", res.Vertices),
		zap.Int("edges", res.Edges),
	)

	m, err := Build(wf, opts)
	if err != nil {
		return nil, fmt.Errorf("reconstruct: %w", err)
	}
	res.Faces = len(m.Faces)
	log.Info("faces reconstructed",
		zap.Int("faces", res.Faces),
		zap.Bool("verify_third_edge", opts.VerifyThirdEdge),
		zap.Bool("dedupe_faces", opts.DedupeFaces),
		zap.Stringer("winding", opts.Winding),
		zap.Int("workers", opts.Workers),
	)
	if res.Faces == 0 {
		log.Warn("no edge pair shares exactly one vertex, writing vertices only")
	}

	objOpts := formats.OBJOptions{
		Precision: cfg.Output.Precision,
		Name:      cfg.Output.Name,
	}
	if cfg.Output.Header {
		objOpts.Comments = header(res)
	}
	if err := formats.SaveOBJ(cfg.Output.Path, m, objOpts); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	res.Duration = time.Since(start)
	log.Info("mesh written",
		zap.String("path", cfg.Output.Path),
		zap.Duration("elapsed", res.Duration),
	)
	return res, nil
}

// Build reconstructs faces for a loaded wireframe and checks index bounds.
func Build(wf *formats.Wireframe, opts mesh.ReconstructOptions) (*mesh.Mesh, error) {
	logger.Debug("scanning edge pairs",
		zap.Int("edges", len(wf.Edges)),
		zap.Int("pairs", len(wf.Edges)*(len(wf.Edges)-1)/2),
		zap.Int("workers", opts.Workers),
	)
	m := &mesh.Mesh{
		Vertices: wf.Vertices,
		Faces:    mesh.Reconstruct(wf.Edges, opts),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// header must stay deterministic: identical input gives identical bytes.
func header(res *Result) []string {
	return []string{
		"wire2mesh",
		fmt.Sprintf("verify_third_edge=%t dedupe_faces=%t winding=%s",
			res.Options.VerifyThirdEdge, res.Options.DedupeFaces, res.Options.Winding),
		fmt.Sprintf("vertices=%d edges=%d faces=%d", res.Vertices, res.Edges, res.Faces),
	}
}
