package grid

import "errors"

var (
	// ErrOutOfBounds is returned when a footprint would extend past the grid edges.
	ErrOutOfBounds = errors.New("placement is out of bounds")
	// ErrCollision is returned when a footprint overlaps another instance.
	ErrCollision = errors.New("placement collides with another item")
	// ErrInvalidCapacity is returned for capacities outside the supported set.
	ErrInvalidCapacity = errors.New("capacity must be one of 20, 30, 40, 50, 60, 80")
	// ErrUnknownItem is returned when an item id is not in the catalog.
	ErrUnknownItem = errors.New("unknown item")
	// ErrUnknownInstance is returned when an instance id is not placed on the grid.
	ErrUnknownInstance = errors.New("unknown instance")
	// ErrPressed is returned when rotating an instance that is compressed.
	ErrPressed = errors.New("pressed items cannot be rotated")
	// ErrNoRestingRow is returned when compression cannot resettle an item.
	ErrNoRestingRow = errors.New("no resting row for compressed item")
)
