package condition

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestGenerateNeverReturnsContradictions(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(WithSeed(42))
	for i := 0; i < 10_000; i++ {
		c, err := gen.Generate()
		require.NoError(t, err)
		require.Empty(t, Contradictions(c), "draw %d: %+v", i, c)
	}
}

func TestGenerateDrawsFromOptionSets(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(WithSeed(7))
	seenPlans := map[Plan]bool{}
	for i := 0; i < 500; i++ {
		c, err := gen.Generate()
		require.NoError(t, err)
		assert.Contains(t, Altitudes, c.Altitude)
		assert.Contains(t, Weathers, c.Weather)
		assert.Contains(t, Seasons, c.Season)
		assert.Contains(t, Winds, c.Wind)
		require.Len(t, c.States, 1)
		assert.Contains(t, States, c.States[0])
		seenPlans[c.Plan] = true
	}
	assert.Len(t, seenPlans, len(Plans))
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	t.Parallel()

	a := NewGenerator(WithSeed(99))
	b := NewGenerator(WithSeed(99))
	for i := 0; i < 20; i++ {
		ca, errA := a.Generate()
		cb, errB := b.Generate()
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, ca, cb)
	}
}

func TestGenerateExhaustedReturnsLastDraw(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(WithMaxAttempts(5), WithLogger(zaptest.NewLogger(t)))
	calls := 0
	gen.draw = func(*rand.Rand) Condition {
		calls++
		return Condition{
			Altitude: Altitude3000,
			Weather:  WeatherClear,
			Season:   SeasonSummer,
			Wind:     Wind(calls),
			States:   []State{StateBear},
			Plan:     PlanDaytrip,
		}
	}

	c, err := gen.Generate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationExhausted))
	assert.Equal(t, 5, calls)
	assert.Equal(t, Wind(5), c.Wind, "expected the last draw to be returned")
	assert.Equal(t, []string{"summit_daytrip"}, Contradictions(c))
}

func TestContradictionRules(t *testing.T) {
	t.Parallel()

	base := Condition{
		Altitude: Altitude2000,
		Weather:  WeatherClear,
		Season:   SeasonSummer,
		Wind:     WindCalm,
		States:   []State{StateNormal},
		Plan:     PlanHut,
	}

	tests := []struct {
		name   string
		mutate func(*Condition)
		want   []string
	}{
		{name: "consistent", mutate: func(*Condition) {}},
		{
			name:   "summit daytrip",
			mutate: func(c *Condition) { c.Altitude = Altitude3000; c.Plan = PlanDaytrip },
			want:   []string{"summit_daytrip"},
		},
		{
			name:   "lowland hut",
			mutate: func(c *Condition) { c.Altitude = Altitude1000 },
			want:   []string{"lowland_hut"},
		},
		{
			name:   "rain without advisory",
			mutate: func(c *Condition) { c.Weather = WeatherRain },
			want:   []string{"rain_without_advisory"},
		},
		{
			name:   "rain with advisory among several states",
			mutate: func(c *Condition) { c.Weather = WeatherRain; c.States = []State{StateFog, StateNormal} },
			want:   []string{"rain_without_advisory"},
		},
		{
			name: "lowland volcano",
			mutate: func(c *Condition) {
				c.Altitude = Altitude1000
				c.Plan = PlanDaytrip
				c.States = []State{StateVolcano}
			},
			want: []string{"lowland_volcano"},
		},
		{
			name:   "winter alpine tent",
			mutate: func(c *Condition) { c.Season = SeasonWinter; c.Plan = PlanTent },
			want:   []string{"winter_alpine_tent"},
		},
		{
			name: "winter lowland tent is fine",
			mutate: func(c *Condition) {
				c.Season = SeasonWinter
				c.Plan = PlanTent
				c.Altitude = Altitude1000
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			c.States = append([]State(nil), base.States...)
			tc.mutate(&c)
			assert.Equal(t, tc.want, Contradictions(c))
			assert.Equal(t, len(tc.want) == 0, Consistent(c))
		})
	}
}

func intPtr(v int) *int { return &v }

func TestApplyCustom(t *testing.T) {
	t.Parallel()

	gen := NewGenerator()

	t.Run("accepts contradictory selection as-is", func(t *testing.T) {
		c, err := gen.ApplyCustom(Selection{
			Altitude: intPtr(3000),
			Weather:  "rain",
			Season:   "winter",
			Wind:     intPtr(0),
			States:   []string{"normal"},
			Plan:     "daytrip",
		})
		require.NoError(t, err)
		assert.Equal(t, Altitude3000, c.Altitude)
		assert.Equal(t, WindCalm, c.Wind)
		assert.Equal(t, []State{StateNormal}, c.States)
		assert.NotEmpty(t, Contradictions(c))
	})

	t.Run("deduplicates states", func(t *testing.T) {
		c, err := gen.ApplyCustom(Selection{
			Altitude: intPtr(2000),
			Weather:  "clear",
			Season:   "summer",
			Wind:     intPtr(4),
			States:   []string{"bear", "fog", "bear"},
			Plan:     "tent",
		})
		require.NoError(t, err)
		assert.Equal(t, []State{StateBear, StateFog}, c.States)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := gen.ApplyCustom(Selection{Altitude: intPtr(1000), Weather: "clear", Season: "summer", States: []string{"normal"}, Plan: "hut"})
		assert.ErrorIs(t, err, ErrIncompleteSelection)

		_, err = gen.ApplyCustom(Selection{})
		assert.ErrorIs(t, err, ErrIncompleteSelection)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := gen.ApplyCustom(Selection{
			Altitude: intPtr(1500),
			Weather:  "clear",
			Season:   "summer",
			Wind:     intPtr(0),
			States:   []string{"normal"},
			Plan:     "hut",
		})
		assert.ErrorIs(t, err, ErrInvalidValue)

		_, err = gen.ApplyCustom(Selection{
			Altitude: intPtr(1000),
			Weather:  "clear",
			Season:   "summer",
			Wind:     intPtr(0),
			States:   []string{"avalanche"},
			Plan:     "hut",
		})
		assert.ErrorIs(t, err, ErrInvalidValue)
	})
}
