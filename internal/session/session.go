package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/eugenenazirov/summit-pack/internal/catalog"
	"github.com/eugenenazirov/summit-pack/internal/condition"
	"github.com/eugenenazirov/summit-pack/internal/grid"
	"github.com/eugenenazirov/summit-pack/internal/necessity"
	"github.com/eugenenazirov/summit-pack/internal/scoring"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConditionSource produces hiking conditions.
type ConditionSource interface {
	Generate() (condition.Condition, error)
	ApplyCustom(sel condition.Selection) (condition.Condition, error)
}

// Session is a single packing game.
type Session struct {
	ID        string
	CreatedAt time.Time

	items      *catalog.Catalog
	conditions ConditionSource
	scorer     scoring.Scorer
	logger     *zap.Logger

	condition  condition.Condition
	grid       *grid.Grid
	checkpoint *grid.Snapshot
}

type options struct {
	capacity int
	logger   *zap.Logger
	scorer   scoring.Scorer
}

// Option customises a new Session.
type Option func(*options)

// WithCapacity sets the starting backpack capacity.
func WithCapacity(capacity int) Option {
	return func(o *options) { o.capacity = capacity }
}

// WithLogger sets the logger shared with the session's grid.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithScorer replaces the default scorer.
func WithScorer(s scoring.Scorer) Option {
	return func(o *options) { o.scorer = s }
}

// New starts a session with a freshly generated condition and an empty grid.
func New(items *catalog.Catalog, conditions ConditionSource, opts ...Option) (*Session, error) {
	o := options{
		capacity: grid.DefaultCapacity,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scorer == nil {
		o.scorer = scoring.New(items)
	}

	id := uuid.NewString()
	logger := o.logger.With(zap.String("session_id", id))

	g, err := grid.New(items, grid.WithCapacity(o.capacity), grid.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:         id,
		CreatedAt:  time.Now(),
		items:      items,
		conditions: conditions,
		scorer:     o.scorer,
		logger:     logger,
		grid:       g,
	}
	if _, err := s.Reroll(); err != nil {
		return nil, err
	}
	return s, nil
}

// Condition returns the active condition.
func (s *Session) Condition() condition.Condition { return s.condition.Clone() }

// Grid exposes the packing grid for placement operations.
func (s *Session) Grid() *grid.Grid { return s.grid }

// HasCheckpoint reports whether RestoreCheckpoint would succeed.
func (s *Session) HasCheckpoint() bool { return s.checkpoint != nil }

// Reroll draws a new condition and clears the grid. An exhausted generator
// still yields a condition; the warning is logged, not returned.
func (s *Session) Reroll() (condition.Condition, error) {
	c, err := s.conditions.Generate()
	if err != nil {
		if !errors.Is(err, condition.ErrGenerationExhausted) {
			return condition.Condition{}, fmt.Errorf("generate condition: %w", err)
		}
		s.logger.Warn("accepting contradictory condition", zap.Error(err))
	}
	s.setCondition(c)
	return c, nil
}

// ApplyCustom replaces the condition with an explicit selection and clears
// the grid. An invalid selection leaves the session untouched.
func (s *Session) ApplyCustom(sel condition.Selection) (condition.Condition, error) {
	c, err := s.conditions.ApplyCustom(sel)
	if err != nil {
		return condition.Condition{}, err
	}
	s.setCondition(c)
	return c, nil
}

func (s *Session) setCondition(c condition.Condition) {
	s.condition = c.Clone()
	s.grid.Reset()
	s.checkpoint = nil
}

// SetCapacity switches backpack size, clearing the grid.
func (s *Session) SetCapacity(capacity int) error {
	return s.grid.SetCapacity(capacity)
}

// Reset returns the session to the menu: the grid and checkpoint are dropped.
func (s *Session) Reset() {
	s.grid.Reset()
	s.checkpoint = nil
}

// SaveCheckpoint stores the current packing for a later RestoreCheckpoint.
func (s *Session) SaveCheckpoint() {
	snap := s.grid.Snapshot()
	s.checkpoint = &snap
}

// RestoreCheckpoint brings back the last saved packing.
func (s *Session) RestoreCheckpoint() error {
	if s.checkpoint == nil {
		return ErrNoCheckpoint
	}
	s.grid.Restore(*s.checkpoint)
	return nil
}

// Finish checkpoints the packing and scores it, so the player can return
// from the result screen to the same bag.
func (s *Session) Finish() (scoring.Result, error) {
	s.SaveCheckpoint()
	res, err := s.scorer.Score(s.condition, s.grid)
	if err != nil {
		return scoring.Result{}, fmt.Errorf("score packing: %w", err)
	}
	s.logger.Info("packing finished",
		zap.String("rank", string(res.Rank)),
		zap.Int("missing_required", len(res.Necessity.MissingRequired)),
		zap.Float64("total_weight", res.TotalWeight),
	)
	return res, nil
}

// ChecklistEntry is one packed item on the checklist.
type ChecklistEntry struct {
	ItemID string `json:"itemId"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// Checklist lists what is packed and what is still required.
type Checklist struct {
	Packed  []ChecklistEntry    `json:"packed"`
	Missing []necessity.Missing `json:"missing"`
}

// Checklist reports packed items in catalog order together with the
// required items still missing.
func (s *Session) Checklist() Checklist {
	packed := s.grid.PackedItemIDs()
	counts := make(map[string]int, len(packed))
	for _, id := range packed {
		counts[id]++
	}

	list := Checklist{Packed: []ChecklistEntry{}}
	for _, item := range s.items.Items() {
		if n := counts[item.ID]; n > 0 {
			list.Packed = append(list.Packed, ChecklistEntry{ItemID: item.ID, Name: item.Name, Count: n})
		}
	}
	list.Missing = necessity.Evaluate(s.items, s.condition, packed).MissingRequired
	return list
}

// State is a read-only view of a session for rendering.
type State struct {
	ID            string                     `json:"id"`
	CreatedAt     time.Time                  `json:"createdAt"`
	Condition     condition.Condition        `json:"condition"`
	Labels        map[condition.Field]string `json:"labels"`
	Contradictory []string                   `json:"contradictions,omitempty"`
	Capacity      int                        `json:"capacity"`
	Dimensions    grid.Dimensions            `json:"dimensions"`
	Placements    []grid.Placement           `json:"placements"`
	Cells         [][]string                 `json:"cells"`
	EmptyCells    int                        `json:"emptyCells"`
	TotalWeight   float64                    `json:"totalWeight"`
	HasCheckpoint bool                       `json:"hasCheckpoint"`
}

// State captures the session for rendering.
func (s *Session) State() State {
	return State{
		ID:            s.ID,
		CreatedAt:     s.CreatedAt,
		Condition:     s.condition.Clone(),
		Labels:        s.condition.Labels(),
		Contradictory: condition.Contradictions(s.condition),
		Capacity:      s.grid.Capacity(),
		Dimensions:    s.grid.Dimensions(),
		Placements:    s.grid.Placements(),
		Cells:         s.grid.Cells(),
		EmptyCells:    s.grid.EmptyCells(),
		TotalWeight:   s.grid.TotalWeight(),
		HasCheckpoint: s.HasCheckpoint(),
	}
}
