package condition

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds how many draws Generate makes before accepting an
// inconsistent one.
const DefaultMaxAttempts = 100

// Generator draws random hiking conditions. It is safe for concurrent use.
type Generator struct {
	mu          sync.Mutex
	rng         *rand.Rand
	maxAttempts int
	logger      *zap.Logger

	// draw is swapped in tests to force specific sequences.
	draw func(*rand.Rand) Condition
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSeed makes the draw sequence deterministic. A zero seed keeps the
// time-based default.
func WithSeed(seed uint64) GeneratorOption {
	return func(g *Generator) {
		if seed != 0 {
			g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
	}
}

// WithMaxAttempts overrides DefaultMaxAttempts. Non-positive values are ignored.
func WithMaxAttempts(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithLogger attaches a logger used for exhaustion warnings.
func WithLogger(logger *zap.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	now := uint64(time.Now().UnixNano())
	g := &Generator{
		rng:         rand.New(rand.NewPCG(now, now>>1)),
		maxAttempts: DefaultMaxAttempts,
		logger:      zap.NewNop(),
		draw:        drawUniform,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate draws conditions until one is consistent. When the attempt budget
// runs out the last draw is returned together with an error wrapping
// ErrGenerationExhausted.
func (g *Generator) Generate() (Condition, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var c Condition
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		c = g.draw(g.rng)
		if Consistent(c) {
			return c, nil
		}
	}

	g.logger.Warn("condition generation exhausted, accepting last draw",
		zap.Int("attempts", g.maxAttempts),
		zap.Strings("contradictions", Contradictions(c)),
	)
	return c, fmt.Errorf("%w (%d attempts)", ErrGenerationExhausted, g.maxAttempts)
}

// ApplyCustom builds a Condition from an explicit player selection. Custom
// selections are trusted: contradiction rules are not applied.
func (g *Generator) ApplyCustom(sel Selection) (Condition, error) {
	c, err := sel.Condition()
	if err != nil {
		return Condition{}, err
	}
	if hits := Contradictions(c); len(hits) > 0 {
		g.logger.Debug("custom condition accepted despite contradictions", zap.Strings("contradictions", hits))
	}
	return c, nil
}

func drawUniform(r *rand.Rand) Condition {
	return Condition{
		Altitude: pick(r, Altitudes),
		Weather:  pick(r, Weathers),
		Season:   pick(r, Seasons),
		Wind:     pick(r, Winds),
		States:   []State{pick(r, States)},
		Plan:     pick(r, Plans),
	}
}

func pick[T any](r *rand.Rand, options []T) T {
	return options[r.IntN(len(options))]
}
