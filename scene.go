package grid

import (
	"fmt"
	"sort"
)

// Child is a tile object held by a Scene.
type Child struct {
	Serial int
	Name   string
	Coord  Coord
}

// Scene is an in-memory SceneGraph. It tracks live children so tools and
// tests can see what a rebuild did.
type Scene struct {
	next     int
	children map[int]*Child
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{children: map[int]*Child{}}
}

// CreateChild adds a child named after its coordinate.
func (s *Scene) CreateChild(id Coord) Handle {
	s.next++
	c := &Child{
		Serial: s.next,
		Name:   fmt.Sprintf("Tile (%d, %d)", id.X, id.Y),
		Coord:  id,
	}
	s.children[c.Serial] = c
	return c
}

// DestroyChild removes the child. Unknown handles are ignored.
func (s *Scene) DestroyChild(h Handle) {
	c, ok := h.(*Child)
	if !ok || c == nil {
		return
	}
	delete(s.children, c.Serial)
}

// Len is the number of live children.
func (s *Scene) Len() int {
	return len(s.children)
}

// Children returns live children in creation order.
func (s *Scene) Children() []*Child {
	out := make([]*Child, 0, len(s.children))
	for _, c := range s.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Serial < out[j].Serial })
	return out
}

// nopScene is used when a grid has no scene graph.
type nopScene struct{}

func (nopScene) CreateChild(Coord) Handle { return nil }
func (nopScene) DestroyChild(Handle)      {}
