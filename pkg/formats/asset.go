package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/ugorji/go/codec"

	"github.com/Faultbox/meshcut/pkg/math"
	"github.com/Faultbox/meshcut/pkg/mesh"
)

// Asset format errors.
var (
	ErrInvalidAssetMagic       = errors.New("invalid mesh asset magic: expected 'MCAS'")
	ErrUnsupportedAssetVersion = errors.New("unsupported mesh asset version")
	ErrInvalidAsset            = errors.New("invalid mesh asset")
)

var assetMagic = [4]byte{'M', 'C', 'A', 'S'}

// AssetVersion is the version written by WriteAsset.
const AssetVersion = 1

// asset is the on-disk layout after the magic bytes, encoded as msgpack.
type asset struct {
	Version   int            `codec:"version"`
	ID        string         `codec:"id"`
	Name      string         `codec:"name"`
	Vertices  [][3]float32   `codec:"vertices"`
	Normals   [][3]float32   `codec:"normals"`
	Tangents  [][4]float32   `codec:"tangents"`
	UV1       [][2]float32   `codec:"uv1,omitempty"`
	UV2       [][2]float32   `codec:"uv2,omitempty"`
	Submeshes []assetSubmesh `codec:"submeshes"`
}

type assetSubmesh struct {
	Material  string   `codec:"material"`
	Triangles []uint32 `codec:"triangles"`
}

var msgpack = &codec.MsgpackHandle{}

// WriteAsset encodes m as a mesh asset. A model without an ID is given a new
// random one, which is stored back into m.
func WriteAsset(w io.Writer, m *Model) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	a := toAsset(m)
	if _, err := w.Write(assetMagic[:]); err != nil {
		return fmt.Errorf("writing asset header: %w", err)
	}
	if err := codec.NewEncoder(w, msgpack).Encode(a); err != nil {
		return fmt.Errorf("encoding asset %q: %w", m.Mesh.Name, err)
	}
	return nil
}

// ReadAsset decodes a mesh asset and checks it against the mesh invariants.
func ReadAsset(r io.Reader) (*Model, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("reading asset header: %w", err)
	}
	if magic != assetMagic {
		return nil, ErrInvalidAssetMagic
	}

	var a asset
	if err := codec.NewDecoder(r, msgpack).Decode(&a); err != nil {
		return nil, fmt.Errorf("decoding asset: %w", err)
	}
	if a.Version != AssetVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedAssetVersion, a.Version)
	}

	m := fromAsset(&a)
	if err := m.Mesh.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAsset, err)
	}
	return m, nil
}

// LoadAsset reads a mesh asset file from disk.
func LoadAsset(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading asset file: %w", err)
	}
	return ReadAsset(bytes.NewReader(data))
}

// SaveAsset writes a mesh asset file.
func SaveAsset(path string, m *Model) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating asset file: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := WriteAsset(w, m); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing asset file: %w", err)
	}
	return f.Close()
}

func toAsset(m *Model) *asset {
	src := m.Mesh
	a := &asset{
		Version:  AssetVersion,
		ID:       m.ID,
		Name:     src.Name,
		Vertices: make([][3]float32, len(src.Vertices)),
		Normals:  make([][3]float32, len(src.Normals)),
		Tangents: make([][4]float32, len(src.Tangents)),
	}
	for i, v := range src.Vertices {
		a.Vertices[i] = v.Array()
	}
	for i, n := range src.Normals {
		a.Normals[i] = n.Array()
	}
	for i, t := range src.Tangents {
		a.Tangents[i] = [4]float32{t.X, t.Y, t.Z, t.W}
	}
	a.UV1 = uvArrays(src.UV1)
	a.UV2 = uvArrays(src.UV2)
	for _, s := range m.Submeshes {
		a.Submeshes = append(a.Submeshes, assetSubmesh{Material: s.Material, Triangles: s.Triangles})
	}
	if len(a.Submeshes) == 0 && len(src.Triangles) > 0 {
		a.Submeshes = []assetSubmesh{{Triangles: src.Triangles}}
	}
	return a
}

func fromAsset(a *asset) *Model {
	m := &mesh.Mesh{
		Name:     a.Name,
		Vertices: make([]math.Vec3, len(a.Vertices)),
		Normals:  make([]math.Vec3, len(a.Normals)),
		Tangents: make([]math.Vec4, len(a.Tangents)),
		UV1:      uvVectors(a.UV1),
		UV2:      uvVectors(a.UV2),
	}
	for i, v := range a.Vertices {
		m.Vertices[i] = math.FromArray(v)
	}
	for i, n := range a.Normals {
		m.Normals[i] = math.FromArray(n)
	}
	for i, t := range a.Tangents {
		m.Tangents[i] = math.Vec4{X: t[0], Y: t[1], Z: t[2], W: t[3]}
	}

	model := &Model{ID: a.ID, Mesh: m}
	for _, s := range a.Submeshes {
		model.Submeshes = append(model.Submeshes, Submesh{Material: s.Material, Triangles: s.Triangles})
		m.Triangles = append(m.Triangles, s.Triangles...)
	}
	m.Bounds = mesh.CalculateBounds(m.Vertices)
	return model
}

func uvArrays(uv []math.Vec2) [][2]float32 {
	if len(uv) == 0 {
		return nil
	}
	out := make([][2]float32, len(uv))
	for i, v := range uv {
		out[i] = [2]float32{v.X, v.Y}
	}
	return out
}

func uvVectors(uv [][2]float32) []math.Vec2 {
	if len(uv) == 0 {
		return nil
	}
	out := make([]math.Vec2, len(uv))
	for i, v := range uv {
		out[i] = math.Vec2{X: v[0], Y: v[1]}
	}
	return out
}
