// Package config handles mesh job configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Output formats.
const (
	FormatAsset = "asset"
	FormatSTL   = "stl"
)

// Config errors.
var (
	ErrInvalidFormat    = errors.New("invalid output format")
	ErrInvalidVolume    = errors.New("invalid occlusion area")
	ErrInvalidArea      = errors.New("invalid cutting area")
	ErrDuplicateArea    = errors.New("duplicate area name")
	ErrMissingMesh      = errors.New("scene object without mesh path")
	ErrInvalidVertexCap = errors.New("invalid vertex ceiling")
)

// Config holds all settings of one combine job.
type Config struct {
	Name    string        `yaml:"name"`
	Output  OutputConfig  `yaml:"output"`
	Scene   SceneConfig   `yaml:"scene"`
	Culling CullingConfig `yaml:"culling"`
	Areas   AreasConfig   `yaml:"areas"`
	Limits  LimitsConfig  `yaml:"limits"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds where and how generated meshes are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "asset" or "stl"
}

// SceneConfig holds the combine root and the objects beneath it.
type SceneConfig struct {
	Origin    [3]float32     `yaml:"origin"`
	MeshRoots []string       `yaml:"mesh_roots"` // directories relative mesh paths are searched in
	Objects   []ObjectConfig `yaml:"objects"`
}

// ObjectConfig describes one placed mesh.
type ObjectConfig struct {
	Name      string     `yaml:"name"`
	Mesh      string     `yaml:"mesh"`
	Position  [3]float32 `yaml:"position"`
	Rotation  [3]float32 `yaml:"rotation"` // Euler angles in degrees
	Scale     [3]float32 `yaml:"scale"`    // zero means unit scale
	Materials []string   `yaml:"materials"`
	Disabled  bool       `yaml:"disabled"`
}

// CullingConfig holds occlusion culling settings.
type CullingConfig struct {
	Enabled          bool         `yaml:"enabled"`
	MakeCulledObject bool         `yaml:"make_culled_object"`
	OcclusionArea    VolumeConfig `yaml:"occlusion_area"`
}

// VolumeConfig is an axis-aligned box relative to the scene origin.
type VolumeConfig struct {
	Center [3]float32 `yaml:"center"`
	Size   [3]float32 `yaml:"size"`
}

// AreasConfig holds area cutting settings.
type AreasConfig struct {
	Enabled bool         `yaml:"enabled"`
	List    []AreaConfig `yaml:"list"`
}

// AreaConfig is one named cutting area. Only X and Z of the size are used.
type AreaConfig struct {
	Name   string     `yaml:"name"`
	Center [3]float32 `yaml:"center"`
	Size   [3]float32 `yaml:"size"`
}

// LimitsConfig holds source mesh limits.
type LimitsConfig struct {
	MaxMeshVertexCount int `yaml:"max_mesh_vertex_count"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Name: "combined",
		Output: OutputConfig{
			Dir:    "generated/mesh",
			Format: FormatAsset,
		},
		Culling: CullingConfig{
			Enabled:          false,
			MakeCulledObject: false,
		},
		Areas: AreasConfig{
			Enabled: false,
		},
		Limits: LimitsConfig{
			MaxMeshVertexCount: 500000,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the settings the combiner relies on.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatAsset, FormatSTL:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}

	if c.Limits.MaxMeshVertexCount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidVertexCap, c.Limits.MaxMeshVertexCount)
	}

	for i, obj := range c.Scene.Objects {
		if obj.Mesh == "" {
			return fmt.Errorf("%w: object %d (%q)", ErrMissingMesh, i, obj.Name)
		}
	}

	if c.Culling.Enabled {
		s := c.Culling.OcclusionArea.Size
		if s[0] <= 0 || s[1] <= 0 || s[2] <= 0 {
			return fmt.Errorf("%w: size %v", ErrInvalidVolume, s)
		}
	}

	if c.Areas.Enabled {
		if len(c.Areas.List) == 0 {
			return fmt.Errorf("%w: area cutting enabled without areas", ErrInvalidArea)
		}
		seen := make(map[string]bool, len(c.Areas.List))
		for i, a := range c.Areas.List {
			if a.Size[0] <= 0 || a.Size[2] <= 0 {
				return fmt.Errorf("%w: area %d (%q) size %v", ErrInvalidArea, i, a.Name, a.Size)
			}
			if seen[a.Name] {
				return fmt.Errorf("%w: %q", ErrDuplicateArea, a.Name)
			}
			seen[a.Name] = true
		}
	}

	return nil
}
