// Package scene is a small retained-mode 2D scene graph for [Ebitengine].
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]. Children inherit their parent's transform and alpha.
//
// Create nodes with typed constructors: [NewContainer], [NewSprite],
// [NewMesh] and [NewText].
//
//	s := scene.NewScene()
//	box := scene.NewSprite("box", scene.TextureRegion{})
//	box.ScaleX, box.ScaleY = 80, 40
//	box.Color = scene.Color{R: 0.3, G: 0.7, B: 1, A: 1}
//	s.Root().AddChild(box)
//
// World transforms are refreshed by [Scene.Update] (or [RefreshTransforms]);
// [Node.Bounds] reports world-space bounds as of the last refresh.
//
// The renderer is a debug renderer: one draw call per node, no batching or
// culling. The package exists to be inspected by willowdom.
//
// [Ebitengine]: https://ebitengine.org
package scene
