package combiner

import (
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/Faultbox/meshcut/internal/config"
)

// Count tallies vertices, triangles and distinct materials over the enabled
// scene objects without packing anything. Unreadable objects are left out and
// reported in the returned error.
func Count(cfg *config.Config) (Tally, error) {
	var (
		tally Tally
		errs  error
	)
	manager, err := newManager(cfg)
	if err != nil {
		return tally, err
	}
	defer manager.Close()

	for i, obj := range cfg.Scene.Objects {
		if obj.Disabled {
			continue
		}
		model, err := manager.Load(obj.Mesh)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("loading %s: %w", objectName(obj, i), err))
			continue
		}
		tally.Objects++
		tally.Vertices += model.Mesh.VertexCount()
		tally.Triangles += model.Mesh.TriangleCount()
		tally.Materials = lo.Union(tally.Materials, objectMaterials(obj, model))
	}
	return tally, errs
}
