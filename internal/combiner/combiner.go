// Package combiner runs a mesh pack job: it loads the scene objects of a job
// config, merges them per material and writes the culled and area-cut results.
package combiner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/meshcut/internal/assets"
	"github.com/Faultbox/meshcut/internal/config"
	"github.com/Faultbox/meshcut/internal/logger"
	"github.com/Faultbox/meshcut/pkg/formats"
	"github.com/Faultbox/meshcut/pkg/math"
	"github.com/Faultbox/meshcut/pkg/mesh"
	"github.com/Faultbox/meshcut/pkg/partition"
)

// DefaultMaterial is used for objects with no configured or stored materials.
const DefaultMaterial = "default"

// Combiner packs the scene described by a job config.
type Combiner struct {
	cfg *config.Config
	log *zap.Logger
}

// New creates a combiner for cfg. A nil log uses the global logger.
func New(cfg *config.Config, log *zap.Logger) *Combiner {
	if log == nil {
		log = logger.Named("combiner")
	}
	return &Combiner{cfg: cfg, log: log}
}

// piece is one material's share of one scene object.
type piece struct {
	material string
	instance mesh.Instance
}

// Run loads, combines, culls, cuts and writes the scene. Objects that cannot
// be loaded are skipped; the returned error joins every load and write failure
// and the report covers whatever was produced.
func (c *Combiner) Run() (*Report, error) {
	report := &Report{}

	manager, err := newManager(c.cfg)
	if err != nil {
		return report, err
	}
	defer manager.Close()

	pieces, err := c.loadPieces(manager, report)
	report.CacheHits, _ = manager.Cache().Stats()

	materials := lo.Uniq(lo.Map(pieces, func(p piece, _ int) string { return p.material }))
	groups := lo.GroupBy(pieces, func(p piece) string { return p.material })

	for _, material := range materials {
		instances := lo.Map(groups[material], func(p piece, _ int) mesh.Instance { return p.instance })
		err = multierr.Append(err, c.packMaterial(report, material, instances))
	}

	report.Log(c.log)
	return report, err
}

// loadPieces loads every enabled object and splits it into per-material pieces.
func (c *Combiner) loadPieces(manager *assets.Manager, report *Report) ([]piece, error) {
	var (
		pieces []piece
		errs   error
	)
	origin := math.FromArray(c.cfg.Scene.Origin)

	for i, obj := range c.cfg.Scene.Objects {
		name := objectName(obj, i)
		if obj.Disabled {
			continue
		}

		model, err := manager.Load(obj.Mesh)
		if err != nil {
			c.log.Warn("skipping object", zap.String("object", name), zap.Error(err))
			report.Skipped = append(report.Skipped, name)
			errs = multierr.Append(errs, fmt.Errorf("loading %s: %w", name, err))
			continue
		}
		m := model.Mesh

		c.log.Debug("parsed mesh",
			zap.String("object", name),
			zap.Int("vertices", m.VertexCount()),
			zap.Int("triangles", m.TriangleCount()),
			zap.Int("submeshes", len(model.Submeshes)),
		)

		if m.VertexCount() > c.cfg.Limits.MaxMeshVertexCount {
			c.log.Warn("mesh exceeds vertex ceiling",
				zap.String("object", name),
				zap.Int("vertices", m.VertexCount()),
				zap.Int("max", c.cfg.Limits.MaxMeshVertexCount),
			)
			report.Skipped = append(report.Skipped, name)
			continue
		}
		if err := m.Validate(); err != nil {
			c.log.Warn("skipping invalid mesh", zap.String("object", name), zap.Error(err))
			report.Skipped = append(report.Skipped, name)
			continue
		}

		matrix := math.Translate(origin.Neg()).Mul(objectMatrix(obj))
		split := c.splitByMaterial(name, obj, model)
		for _, p := range split {
			p.instance.Matrix = matrix
			pieces = append(pieces, p)
		}

		report.Sources.Objects++
		report.Sources.Vertices += m.VertexCount()
		report.Sources.Triangles += m.TriangleCount()
		report.Sources.Materials = lo.Union(report.Sources.Materials, lo.Map(split, func(p piece, _ int) string { return p.material }))
	}

	return pieces, errs
}

// splitByMaterial assigns materials to a model. A single material takes the
// whole mesh; several take one submesh each, in order.
func (c *Combiner) splitByMaterial(name string, obj config.ObjectConfig, model *formats.Model) []piece {
	materials := objectMaterials(obj, model)
	if len(model.Submeshes) != len(materials) {
		c.log.Warn("material count does not match submesh count",
			zap.String("object", name),
			zap.Int("materials", len(materials)),
			zap.Int("submeshes", len(model.Submeshes)),
		)
	}

	if len(materials) == 1 {
		return []piece{{material: materials[0], instance: mesh.Instance{Mesh: model.Mesh}}}
	}

	var out []piece
	for i, material := range materials {
		if i >= len(model.Submeshes) {
			break
		}
		sub := partition.Extract(model.Mesh, model.Submeshes[i].Triangles, fmt.Sprintf("%s_%s", model.Mesh.Name, material))
		out = append(out, piece{material: material, instance: mesh.Instance{Mesh: sub}})
	}
	return out
}

// packMaterial combines one material's instances and writes its outputs.
func (c *Combiner) packMaterial(report *Report, material string, instances []mesh.Instance) error {
	combined := mesh.Combine(material, instances)
	if combined.IsEmpty() {
		c.log.Debug("nothing to pack", zap.String("material", material))
		return nil
	}

	origin := math.FromArray(c.cfg.Scene.Origin)
	root := partition.Transform{Position: origin, Rotation: math.QuatIdentity(), Scale: math.One()}

	var errs error
	current := combined

	if c.cfg.Culling.Enabled {
		vol := c.cfg.Culling.OcclusionArea
		front, back, counts := partition.CullOcclusion(current, root, partition.OcclusionVolume{
			Center: origin.Add(math.FromArray(vol.Center)),
			Size:   math.FromArray(vol.Size),
		})
		report.Culling.Add(counts)

		if c.cfg.Culling.MakeCulledObject && !back.IsEmpty() {
			errs = multierr.Append(errs, c.write(report, back, Output{
				Name:     material + "_culled",
				Material: material,
				Kind:     KindCulled,
				Anchor:   origin,
			}))
		}
		current = front
	}

	if !c.cfg.Areas.Enabled {
		return multierr.Append(errs, c.write(report, current, Output{
			Name:     material,
			Material: material,
			Kind:     KindMain,
			Anchor:   origin,
		}))
	}

	local := lo.Map(c.cfg.Areas.List, func(a config.AreaConfig, _ int) partition.Area {
		return partition.Area{Center: math.FromArray(a.Center), Size: math.FromArray(a.Size)}
	})
	world := lo.Map(local, func(a partition.Area, _ int) partition.Area {
		return partition.Area{Center: origin.Add(a.Center), Size: a.Size}
	})

	cut, counts := partition.CutByAreas(current, root, world)
	report.Cutting.Add(counts)

	for i, m := range partition.Recenter(cut, local) {
		if m.IsEmpty() {
			continue
		}
		out := Output{Name: material, Material: material, Kind: KindMain, Anchor: origin}
		if i < len(local) {
			area := c.cfg.Areas.List[i]
			out = Output{
				Name:     material + "_" + area.Name,
				Material: material,
				Kind:     KindArea,
				Area:     area.Name,
				Anchor:   world[i].Center,
			}
		}
		errs = multierr.Append(errs, c.write(report, m, out))
	}
	return errs
}

// write saves m under the output directory and records it in the report.
func (c *Combiner) write(report *Report, m *mesh.Mesh, out Output) error {
	m.Name = out.Name
	ext := formats.ExtAsset
	if c.cfg.Output.Format == config.FormatSTL {
		ext = formats.ExtSTL
	}
	dir := filepath.Join(c.cfg.Output.Dir, c.cfg.Name)
	out.Path = filepath.Join(dir, out.Name+ext)
	out.Vertices = m.VertexCount()
	out.Triangles = m.TriangleCount()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := formats.Save(out.Path, formats.NewModel(m, out.Material)); err != nil {
		c.log.Error("write failed", zap.String("path", out.Path), zap.Error(err))
		return fmt.Errorf("writing %s: %w", out.Name, err)
	}

	c.log.Debug("wrote mesh", zap.String("path", out.Path), zap.Int("triangles", out.Triangles))
	report.Outputs = append(report.Outputs, out)
	return nil
}

// newManager returns an asset manager searching the scene's mesh roots.
func newManager(cfg *config.Config) (*assets.Manager, error) {
	manager := assets.NewManager()
	for _, root := range cfg.Scene.MeshRoots {
		if err := manager.AddRoot(root); err != nil {
			return nil, err
		}
	}
	return manager, nil
}

// objectName returns the object's configured name, or its mesh file name.
func objectName(obj config.ObjectConfig, index int) string {
	if obj.Name != "" {
		return obj.Name
	}
	if obj.Mesh != "" {
		return filepath.Base(obj.Mesh)
	}
	return fmt.Sprintf("object_%d", index)
}

// objectMaterials returns the configured materials, else the model's named
// submesh materials, else DefaultMaterial.
func objectMaterials(obj config.ObjectConfig, model *formats.Model) []string {
	if len(obj.Materials) > 0 {
		return obj.Materials
	}
	stored := lo.FilterMap(model.Submeshes, func(s formats.Submesh, _ int) (string, bool) {
		return s.Material, s.Material != ""
	})
	if len(stored) > 0 && len(stored) == len(model.Submeshes) {
		return stored
	}
	return []string{DefaultMaterial}
}

// objectMatrix returns the object's local-to-world matrix. A zero scale means unit scale.
func objectMatrix(obj config.ObjectConfig) math.Mat4 {
	scale := math.FromArray(obj.Scale)
	if obj.Scale == [3]float32{} {
		scale = math.One()
	}
	return math.TRS(math.FromArray(obj.Position), math.QuatFromEuler(math.FromArray(obj.Rotation)), scale)
}
