package scene

import "math"

// worldAABB computes the axis-aligned bounding box of the local rectangle
// local transformed by the given affine matrix.
func worldAABB(m [6]float64, local Rect) Rect {
	x0, y0 := transformPoint(m, local.X, local.Y)
	x1, y1 := transformPoint(m, local.X+local.Width, local.Y)
	x2, y2 := transformPoint(m, local.X+local.Width, local.Y+local.Height)
	x3, y3 := transformPoint(m, local.X, local.Y+local.Height)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// localBounds returns the node's own content rectangle in local space.
// Containers have no content of their own.
func localBounds(n *Node) Rect {
	switch n.Type {
	case NodeTypeSprite:
		w, h := n.TextureRegion.size()
		return Rect{Width: w, Height: h}
	case NodeTypeMesh:
		n.recomputeMeshAABB()
		return n.meshAABB
	case NodeTypeText:
		if n.TextBlock != nil {
			w, h := n.TextBlock.Measure()
			return Rect{Width: w, Height: h}
		}
	}
	return Rect{}
}

// recomputeMeshAABB refreshes the cached local-space AABB of the mesh vertices.
func (n *Node) recomputeMeshAABB() {
	if !n.meshAABBDirty {
		return
	}
	n.meshAABBDirty = false
	if len(n.Vertices) == 0 {
		n.meshAABB = Rect{}
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range n.Vertices {
		x, y := float64(v.DstX), float64(v.DstY)
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	n.meshAABB = Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// InvalidateMesh marks the cached mesh AABB stale after Vertices changed.
func (n *Node) InvalidateMesh() {
	n.meshAABBDirty = true
}

// Bounds returns the world-space axis-aligned bounds of the node and its
// visible descendants, as of the last RefreshTransforms.
func (n *Node) Bounds() Rect {
	var r Rect
	if local := localBounds(n); !local.Empty() {
		r = worldAABB(n.worldTransform, local)
	}
	for _, child := range n.children {
		if !child.Visible {
			continue
		}
		r = r.Union(child.Bounds())
	}
	return r
}
