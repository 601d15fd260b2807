// Package balance checks how packed weight is distributed over the
// backpack's upper, middle and lower bands. A well packed bag keeps the
// heaviest load in the middle, then the bottom, and the lightest at the top.
package balance

import (
	"errors"

	"github.com/eugenenazirov/summit-pack/internal/grid"
)

// ErrUnknownCapacity is returned for capacities without a band layout.
var ErrUnknownCapacity = errors.New("no band layout for capacity")

// Band names one horizontal section of the backpack.
type Band string

const (
	BandUpper  Band = "upper"
	BandMiddle Band = "middle"
	BandLower  Band = "lower"
)

// Layout is the number of rows in each band, top to bottom.
type Layout struct {
	Upper  int `json:"upper"`
	Middle int `json:"middle"`
	Lower  int `json:"lower"`
}

var layouts = map[int]Layout{
	20: {Upper: 1, Middle: 3, Lower: 1},
	30: {Upper: 2, Middle: 3, Lower: 2},
	40: {Upper: 3, Middle: 4, Lower: 3},
	50: {Upper: 3, Middle: 4, Lower: 3},
	60: {Upper: 4, Middle: 4, Lower: 4},
	80: {Upper: 5, Middle: 6, Lower: 5},
}

// LayoutFor returns the band layout for a capacity.
func LayoutFor(capacity int) (Layout, error) {
	l, ok := layouts[capacity]
	if !ok {
		return Layout{}, ErrUnknownCapacity
	}
	return l, nil
}

// Result carries per-band weight totals in kg.
type Result struct {
	Upper    float64 `json:"upper"`
	Middle   float64 `json:"middle"`
	Lower    float64 `json:"lower"`
	Balanced bool    `json:"balanced"`
}

// Evaluate attributes every placement's whole weight to a single band. A
// placement touching several bands counts towards the lowest one it
// touches.
func Evaluate(capacity int, placements []grid.Placement) (Result, error) {
	l, err := LayoutFor(capacity)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, p := range placements {
		switch l.bandOf(p.Bottom()) {
		case BandLower:
			res.Lower += p.Weight
		case BandMiddle:
			res.Middle += p.Weight
		default:
			res.Upper += p.Weight
		}
	}
	res.Balanced = res.Middle >= res.Lower && res.Lower >= res.Upper
	return res, nil
}

// bandOf classifies a footprint by the row just below it. Only the bottom
// edge matters because lower bands take priority.
func (l Layout) bandOf(bottom int) Band {
	switch {
	case bottom > l.Upper+l.Middle:
		return BandLower
	case bottom > l.Upper:
		return BandMiddle
	default:
		return BandUpper
	}
}
