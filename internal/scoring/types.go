package scoring

import (
	"github.com/eugenenazirov/summit-pack/internal/balance"
	"github.com/eugenenazirov/summit-pack/internal/condition"
	"github.com/eugenenazirov/summit-pack/internal/grid"
	"github.com/eugenenazirov/summit-pack/internal/necessity"
)

// Rank is the letter grade of a finished packing.
type Rank string

const (
	RankS Rank = "S"
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
)

// Advisory is a comment on the packing that does not affect the rank.
type Advisory string

const (
	// AdvisorySpacious flags a bag with a lot of unused room.
	AdvisorySpacious Advisory = "spacious"
	// AdvisoryUnbalanced flags a bag whose weight is not centred.
	AdvisoryUnbalanced Advisory = "unbalanced"
)

// Result summarises a finished packing. TotalWeight and EmptyCells are
// reported alongside the rank so callers can render the full result screen.
type Result struct {
	Rank        Rank             `json:"rank"`
	Necessity   necessity.Report `json:"necessity"`
	Balance     balance.Result   `json:"balance"`
	EmptyCells  int              `json:"emptyCells"`
	TotalWeight float64          `json:"totalWeight"`
	Advisories  []Advisory       `json:"advisories"`
}

// Packing is the read-only view of a grid the scorer needs.
type Packing interface {
	Capacity() int
	Placements() []grid.Placement
	PackedItemIDs() []string
	EmptyCells() int
	TotalWeight() float64
}

// Scorer describes the behaviour required from a result scorer.
type Scorer interface {
	Score(c condition.Condition, p Packing) (Result, error)
}
