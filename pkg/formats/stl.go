package formats

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hschendel/stl"

	"github.com/Faultbox/meshcut/pkg/math"
	"github.com/Faultbox/meshcut/pkg/mesh"
)

// ReadSTL reads an ASCII or binary STL solid. STL stores every triangle with
// its own corners, so corners with bit-identical positions are welded into one
// vertex. Each vertex takes the facet normal of the first triangle using it;
// tangents are zero and there are no UV channels.
func ReadSTL(r io.Reader, name string) (*Model, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("parsing STL: %w", err)
		}
		rs = bytes.NewReader(data)
	}
	solid, err := stl.ReadAll(rs)
	if err != nil {
		return nil, fmt.Errorf("parsing STL: %w", err)
	}
	return NewModel(fromSolid(solid, name), ""), nil
}

// LoadSTL reads an STL file from disk. The mesh is named after the solid, or
// the file name when the solid is unnamed.
func LoadSTL(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading STL file: %w", err)
	}
	defer f.Close()
	return ReadSTL(f, baseName(path))
}

func fromSolid(solid *stl.Solid, name string) *mesh.Mesh {
	if n := strings.TrimSpace(strings.Trim(solid.Name, "\x00")); n != "" {
		name = n
	}
	m := &mesh.Mesh{Name: name}
	welded := make(map[stl.Vec3]uint32)
	for _, tri := range solid.Triangles {
		normal := math.FromArray(tri.Normal)
		for _, corner := range tri.Vertices {
			idx, ok := welded[corner]
			if !ok {
				idx = uint32(len(m.Vertices))
				welded[corner] = idx
				m.Vertices = append(m.Vertices, math.FromArray(corner))
				m.Normals = append(m.Normals, normal)
				m.Tangents = append(m.Tangents, math.Vec4{})
			}
			m.Triangles = append(m.Triangles, idx)
		}
	}
	m.Bounds = mesh.CalculateBounds(m.Vertices)
	return m
}

// WriteSTL writes m as a binary STL solid. Facet normals are computed from
// each triangle's winding.
func WriteSTL(w io.Writer, m *mesh.Mesh) error {
	if err := toSolid(m).WriteAll(w); err != nil {
		return fmt.Errorf("writing STL: %w", err)
	}
	return nil
}

// SaveSTL writes m to an STL file.
func SaveSTL(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating STL file: %w", err)
	}
	if err := WriteSTL(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func toSolid(m *mesh.Mesh) *stl.Solid {
	solid := &stl.Solid{
		Name:      m.Name,
		Triangles: make([]stl.Triangle, 0, m.TriangleCount()),
	}
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		p0 := m.Vertices[m.Triangles[i]]
		p1 := m.Vertices[m.Triangles[i+1]]
		p2 := m.Vertices[m.Triangles[i+2]]
		n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		solid.Triangles = append(solid.Triangles, stl.Triangle{
			Normal:   stl.Vec3(n.Array()),
			Vertices: [3]stl.Vec3{p0.Array(), p1.Array(), p2.Array()},
		})
	}
	return solid
}
