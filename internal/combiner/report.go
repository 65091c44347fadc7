package combiner

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meshcut/pkg/math"
	"github.com/Faultbox/meshcut/pkg/partition"
)

// OutputKind tells what part of the pipeline produced an output mesh.
type OutputKind string

// Output kinds.
const (
	KindMain   OutputKind = "main"
	KindCulled OutputKind = "culled"
	KindArea   OutputKind = "area"
)

// Output describes one written mesh.
type Output struct {
	Name      string
	Path      string
	Material  string
	Kind      OutputKind
	Area      string    // cutting area name, KindArea only
	Anchor    math.Vec3 // world position the mesh's local origin belongs at
	Vertices  int
	Triangles int
}

// Tally sums source meshes.
type Tally struct {
	Objects   int
	Vertices  int
	Triangles int
	Materials []string // distinct, first-seen order
}

// Report summarizes one pack run.
type Report struct {
	Outputs []Output
	Sources Tally
	Skipped []string // objects left out, by name
	// CacheHits counts objects whose mesh file was already loaded for another object.
	CacheHits int

	// Culling holds front/back triangle counts summed over materials.
	Culling partition.Counts
	// Cutting holds per-area triangle counts summed over materials; the
	// last bucket is the remainder.
	Cutting partition.Counts
}

// Log writes the report summary.
func (r *Report) Log(log *zap.Logger) {
	log.Info("sources",
		zap.Int("objects", r.Sources.Objects),
		zap.Int("vertices", r.Sources.Vertices),
		zap.Int("triangles", r.Sources.Triangles),
		zap.Strings("materials", r.Sources.Materials),
		zap.Int("skipped", len(r.Skipped)),
		zap.Int("cache_hits", r.CacheHits),
	)
	if len(r.Culling.Buckets) > 0 {
		log.Info("culling",
			zap.Int("front", r.Culling.Buckets[partition.Front]),
			zap.Int("back", r.Culling.Buckets[partition.Back]),
		)
	}
	if len(r.Cutting.Buckets) > 0 {
		log.Info("cutting",
			zap.Ints("areas", r.Cutting.Buckets[:len(r.Cutting.Buckets)-1]),
			zap.Int("remainder", r.Cutting.Buckets[len(r.Cutting.Buckets)-1]),
		)
	}
	for _, o := range r.Outputs {
		log.Debug("output",
			zap.String("name", o.Name),
			zap.String("kind", string(o.Kind)),
			zap.String("path", o.Path),
			zap.Int("vertices", o.Vertices),
			zap.Int("triangles", o.Triangles),
		)
	}
	log.Info("packed", zap.Int("outputs", len(r.Outputs)))
}
