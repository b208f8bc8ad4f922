package config

// Flags holds command-line overrides.
// Zero values and nil pointers leave the loaded config untouched.
type Flags struct {
	ConfigPath string
	Debug      bool
	Quiet      bool
	LogFile    string

	Vertices string
	Edges    string
	Output   string

	Policy          string
	VerifyThirdEdge *bool
	DedupeFaces     *bool
	Winding         string
	Workers         int
	Precision       *int
	Name            string
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f Flags) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Quiet {
		cfg.Logging.Quiet = true
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Vertices != "" {
		cfg.Input.Vertices = f.Vertices
	}
	if f.Edges != "" {
		cfg.Input.Edges = f.Edges
	}
	if f.Output != "" {
		cfg.Output.Path = f.Output
	}
	if f.Policy != "" {
		cfg.Reconstruct.Policy = f.Policy
	}
	if f.VerifyThirdEdge != nil {
		v := *f.VerifyThirdEdge
		cfg.Reconstruct.VerifyThirdEdge = &v
	}
	if f.DedupeFaces != nil {
		v := *f.DedupeFaces
		cfg.Reconstruct.DedupeFaces = &v
	}
	if f.Winding != "" {
		cfg.Reconstruct.Winding = f.Winding
	}
	if f.Workers > 0 {
		cfg.Reconstruct.Workers = f.Workers
	}
	if f.Precision != nil {
		cfg.Output.Precision = *f.Precision
	}
	if f.Name != "" {
		cfg.Output.Name = f.Name
	}
}
