package grid

// Driver is the lifecycle a host loop runs a grid through.
type Driver interface {
	// Initialize builds every tile. Called once when the host starts.
	Initialize()

	// OnConfigChanged is called when size, mode or loaded state change
	// from outside the grid.
	OnConfigChanged()

	// Tick is called once per frame. It returns whether a rebuild ran.
	Tick() bool
}

// Handle is whatever the scene graph uses to refer to a tile's child object.
type Handle interface{}

// SceneGraph mirrors grid tiles as child objects in a host scene.
// The grid only ever creates and destroys children; placing, naming and
// drawing them is up to the implementation.
type SceneGraph interface {
	// CreateChild makes a child object for the tile at id.
	CreateChild(id Coord) Handle

	// DestroyChild removes a child made by CreateChild.
	DestroyChild(h Handle)
}
