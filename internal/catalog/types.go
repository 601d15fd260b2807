package catalog

import "github.com/eugenenazirov/summit-pack/internal/condition"

// Necessity classifies an item under a condition.
type Necessity string

const (
	Required   Necessity = "required"
	Optional   Necessity = "optional"
	Irrelevant Necessity = "irrelevant"
)

// Valid reports whether n is one of the known necessity values.
func (n Necessity) Valid() bool {
	switch n {
	case Required, Optional, Irrelevant:
		return true
	default:
		return false
	}
}

// Footprint is an item's size in grid cells before rotation or compression.
type Footprint struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Predicate inspects the whole condition and may override every other rule.
// It returns ok=false when it has no opinion.
type Predicate func(condition.Condition) (n Necessity, ok bool)

// QuantityFunc maps a condition to the number of instances that must be packed.
type QuantityFunc func(condition.Condition) int

// Rules describes how an item's necessity is derived from a condition.
type Rules struct {
	Default   Necessity
	Overrides map[condition.Field]map[string]Necessity
	Predicate Predicate
	// PredicateName and QuantityName keep the registry keys for reporting.
	PredicateName string
	Requires      string
	Quantity      QuantityFunc
	QuantityName  string
}

// Override looks up the override table for f and returns the first entry
// matching any of the condition's values for that field.
func (r Rules) Override(c condition.Condition, f condition.Field) (Necessity, bool) {
	table, ok := r.Overrides[f]
	if !ok {
		return "", false
	}
	for _, v := range c.Values(f) {
		if n, ok := table[v]; ok {
			return n, true
		}
	}
	return "", false
}

// Item is an immutable catalog entry.
type Item struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Footprint    Footprint `json:"footprint"`
	Weight       float64   `json:"weight"`
	Compressible bool      `json:"compressible"`
	Rules        Rules     `json:"-"`
}
