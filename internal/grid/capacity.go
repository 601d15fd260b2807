package grid

import (
	"maps"
	"slices"
)

// DefaultCapacity is the backpack size a new session starts with.
const DefaultCapacity = 30

// Dimensions is the grid size for a backpack capacity.
type Dimensions struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

var dimensions = map[int]Dimensions{
	20: {Cols: 4, Rows: 5},
	30: {Cols: 4, Rows: 7},
	40: {Cols: 4, Rows: 10},
	50: {Cols: 5, Rows: 10},
	60: {Cols: 5, Rows: 12},
	80: {Cols: 5, Rows: 16},
}

// DimensionsFor maps a capacity in litres to its grid size.
func DimensionsFor(capacity int) (Dimensions, error) {
	d, ok := dimensions[capacity]
	if !ok {
		return Dimensions{}, ErrInvalidCapacity
	}
	return d, nil
}

// Capacities lists the supported capacities in ascending order.
func Capacities() []int {
	return slices.Sorted(maps.Keys(dimensions))
}

// AnchorRow converts a raw drop row into the top row an item of height h
// should be placed at, so the dropped cell lands near the item's centre.
// Dropping on the last row makes it the bottom edge, dropping on row 0 makes
// it the top edge.
func AnchorRow(target, h, rows int) int {
	switch {
	case target == rows-1:
		return max(0, target-(h-1))
	case target == 0:
		return target
	}
	anchor := max(0, target-h/2)
	if anchor+h > rows {
		anchor = max(0, rows-h)
	}
	return anchor
}
