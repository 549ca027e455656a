// Package willowdom mirrors a live [scene] graph into an [overlay] tree so
// its nodes can be located, inspected and edited while the game runs.
//
// # Quick start
//
// [NewDefault] binds position, scale, rotation, alpha, text, tint, texture
// and pivot for the built-in node types:
//
//	s := scene.NewScene()
//	// ... add nodes ...
//	insp := willowdom.NewDefault(s, overlay.NewSurface(0, 0))
//	s.SetUpdateFunc(func() error {
//		insp.HandleInput(overlay.EbitenInput{}, 1.0/60)
//		insp.Tick()
//		return nil
//	})
//	s.AddOverlay(insp.Draw)
//
// Every [Inspector.UpdateInterval] (200ms by default) a pass walks the scene
// and brings the mirror up to date. Elements are recycled by tag, so a scene
// whose shape does not change creates no elements after the first pass.
//
// # Bindings
//
// A binding projects one field of every node of a [Kind] as an attribute.
// Kinds form a lineage per node (UserData type, node type, [KindNode]) and
// bindings are inherited along it, the most specific winning:
//
//	insp.Bind(willowdom.KindOf(Player{}), "Health", nil).
//		Bind(willowdom.KindSprite, "Tint", willowdom.ColorParser{Neutral: willowdom.NoTint}).
//		Leaf(willowdom.KindOf(Tilemap{}))
//
// A [Parser] turns values into attribute text and back. Values the parser
// reports as not visible (an untinted color, say) are not shown.
//
// # Editing
//
// Setting a bound attribute on a mirror element writes the parsed value back
// to the source node before the next pass. Edits that do not parse leave the
// field unchanged.
//
// # Other graphs
//
// The engine is generic over [Graph]. [SceneGraph] adapts *scene.Node; any
// tree with typed nodes, children, bounds and named fields can be mirrored
// the same way.
package willowdom
