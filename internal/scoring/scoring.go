package scoring

import (
	"fmt"

	"github.com/eugenenazirov/summit-pack/internal/balance"
	"github.com/eugenenazirov/summit-pack/internal/condition"
	"github.com/eugenenazirov/summit-pack/internal/necessity"
)

// DefaultSpaciousThreshold is the number of empty cells from which a bag is
// considered spacious.
const DefaultSpaciousThreshold = 8

type scorer struct {
	items             necessity.ItemLister
	spaciousThreshold int
}

// Option customises the scorer.
type Option func(*scorer)

// WithSpaciousThreshold overrides DefaultSpaciousThreshold.
func WithSpaciousThreshold(cells int) Option {
	return func(s *scorer) {
		if cells > 0 {
			s.spaciousThreshold = cells
		}
	}
}

// New creates a Scorer evaluating necessity against items.
func New(items necessity.ItemLister, opts ...Option) Scorer {
	s := &scorer{items: items, spaciousThreshold: DefaultSpaciousThreshold}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *scorer) Score(c condition.Condition, p Packing) (Result, error) {
	report := necessity.Evaluate(s.items, c, p.PackedItemIDs())

	bal, err := balance.Evaluate(p.Capacity(), p.Placements())
	if err != nil {
		return Result{}, fmt.Errorf("evaluate balance: %w", err)
	}

	res := Result{
		Rank:        RankFor(len(report.MissingRequired)),
		Necessity:   report,
		Balance:     bal,
		EmptyCells:  p.EmptyCells(),
		TotalWeight: p.TotalWeight(),
		Advisories:  []Advisory{},
	}
	if res.EmptyCells >= s.spaciousThreshold {
		res.Advisories = append(res.Advisories, AdvisorySpacious)
	}
	if !bal.Balanced {
		res.Advisories = append(res.Advisories, AdvisoryUnbalanced)
	}
	return res, nil
}

// RankFor maps the number of missing required items to a rank.
func RankFor(missingRequired int) Rank {
	switch {
	case missingRequired <= 0:
		return RankS
	case missingRequired <= 2:
		return RankA
	case missingRequired <= 5:
		return RankB
	default:
		return RankC
	}
}
