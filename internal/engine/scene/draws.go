package scene

import (
	"sort"

	"github.com/Faultbox/showroom/internal/model"
	"github.com/Faultbox/showroom/pkg/math"
)

// drawItem is one mesh instance ready to render.
type drawItem struct {
	mesh  *model.Mesh
	world math.Mat4
	// depth is the squared distance from the eye to the mesh center.
	depth float32
}

// collectDraws flattens the tree under root into opaque and transparent
// lists. Transparent items are sorted back to front.
func collectDraws(root *model.Node, eye math.Vec3) (opaque, transparent []drawItem) {
	if root == nil {
		return nil, nil
	}
	parent := math.Identity()
	if root.Parent != nil {
		parent = root.Parent.WorldMatrix()
	}
	root.WalkWorld(parent, func(n *model.Node, world math.Mat4) {
		for _, m := range n.Meshes {
			if len(m.Indices) == 0 {
				continue
			}
			item := drawItem{mesh: m, world: world}
			if !m.Material.Transparent() {
				opaque = append(opaque, item)
				continue
			}
			center := m.Bounds.Center()
			if m.Bounds.Valid() {
				center = world.TransformPoint(center)
			} else {
				center = world.Translation()
			}
			item.depth = center.DistanceSquared(eye)
			transparent = append(transparent, item)
		}
	})
	sort.SliceStable(transparent, func(i, j int) bool {
		return transparent[i].depth > transparent[j].depth
	})
	return opaque, transparent
}
