package config

import "flag"

// Flags holds command-line overrides registered on a FlagSet.
type Flags struct {
	Config *string
	Debug  *bool
	Out    *string
	Format *string
}

// RegisterFlags registers the config override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		Config: fs.String("config", "", "Path to job config file"),
		Debug:  fs.Bool("debug", false, "Enable debug logging"),
		Out:    fs.String("out", "", "Output directory"),
		Format: fs.String("format", "", "Output format (asset, stl)"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil || f.Config == nil {
		return ""
	}
	return *f.Config
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug != nil && *f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Out != nil && *f.Out != "" {
		cfg.Output.Dir = *f.Out
	}
	if f.Format != nil && *f.Format != "" {
		cfg.Output.Format = *f.Format
	}
}
