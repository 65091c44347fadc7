// Package formats reads and writes mesh files: STL for interchange and
// msgpack mesh assets that keep every vertex attribute and submesh.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/meshcut/pkg/mesh"
)

// ErrUnknownFormat is returned for file extensions with no reader or writer.
var ErrUnknownFormat = errors.New("unknown mesh file format")

// File extensions.
const (
	ExtSTL   = ".stl"
	ExtAsset = ".asset"
)

// Submesh is a named slice of a model's triangles sharing one material.
type Submesh struct {
	Material  string
	Triangles []uint32
}

// Model is a mesh together with its submesh layout. Mesh.Triangles holds the
// triangles of all submeshes in submesh order.
type Model struct {
	ID        string
	Mesh      *mesh.Mesh
	Submeshes []Submesh
}

// NewModel wraps m as a single-submesh model.
func NewModel(m *mesh.Mesh, material string) *Model {
	return &Model{
		Mesh:      m,
		Submeshes: []Submesh{{Material: material, Triangles: m.Triangles}},
	}
}

// Load reads a model, picking the format from the file extension.
func Load(path string) (*Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtSTL:
		return LoadSTL(path)
	case ExtAsset:
		return LoadAsset(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Save writes a model, picking the format from the file extension.
// STL keeps positions and triangles only.
func Save(path string, m *Model) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtSTL:
		return SaveSTL(path, m.Mesh)
	case ExtAsset:
		return SaveAsset(path, m)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// baseName returns the file name without directory and extension.
func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
