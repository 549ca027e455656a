package willowdom

import (
	"github.com/phanxgames/willowdom/overlay"
	"github.com/phanxgames/willowdom/scene"
)

// RegisterDefaults binds the standard fields of the built-in scene kinds.
func RegisterDefaults(r *Registry) {
	tint := ColorParser{Neutral: NoTint}
	r.Register(KindNode,
		Attribute{Name: "X"},
		Attribute{Name: "Y"},
		Attribute{Name: "Scale", Parser: PointParser{}},
		Attribute{Name: "Rotation"},
		Attribute{Name: "Alpha"},
	)
	r.Register(KindSprite,
		Attribute{Name: "Texture", Parser: ResourceParser{}},
		Attribute{Name: "Pivot", Parser: PointParser{}},
		Attribute{Name: "Tint", Parser: tint},
	)
	r.Register(KindMesh,
		Attribute{Name: "Texture", Parser: ResourceParser{}},
		Attribute{Name: "Tint", Parser: tint},
	)
	r.Register(KindText,
		Attribute{Name: "Text"},
		Attribute{Name: "Pivot", Parser: PointParser{}},
		Attribute{Name: "Tint", Parser: tint},
	)
}

// NewDefault inspects s with the standard bindings. Options given later
// (including WithRegistry) take precedence.
func NewDefault(s *scene.Scene, surface *overlay.Surface, opts ...Option) *Inspector[*scene.Node] {
	reg := NewRegistry()
	RegisterDefaults(reg)
	opts = append([]Option{WithRegistry(reg)}, opts...)
	return New[*scene.Node](SceneGraph{}, s.Root(), surface, opts...)
}
