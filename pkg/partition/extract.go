package partition

import (
	"fmt"

	"github.com/Faultbox/meshcut/pkg/mesh"
)

// Extract builds a standalone mesh from a subset of src's triangles, such as
// one submesh. Only referenced vertices are kept, in order of first use, with
// all attributes. triangles indexes src's vertices and its length must be a
// multiple of 3.
func Extract(src *mesh.Mesh, triangles []uint32, name string) *mesh.Mesh {
	if len(triangles)%3 != 0 {
		panic(fmt.Sprintf("partition: extract %q: %d indices is not a multiple of 3", name, len(triangles)))
	}
	view := mesh.NewBuffer(src)
	b := newBucket()
	for i := 0; i < len(triangles); i += 3 {
		b.appendTriangle(view, triangles[i], triangles[i+1], triangles[i+2])
	}
	return b.buf.Build(name)
}
