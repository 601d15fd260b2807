package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValues(t *testing.T) {
	t.Parallel()

	c := Condition{
		Altitude: Altitude2000,
		Weather:  WeatherRain,
		Season:   SeasonAutumn,
		Wind:     WindStrong,
		States:   []State{StateBear, StateFog},
		Plan:     PlanTent,
	}

	assert.Equal(t, []string{"2000"}, c.Values(FieldAltitude))
	assert.Equal(t, []string{"rain"}, c.Values(FieldWeather))
	assert.Equal(t, []string{"autumn"}, c.Values(FieldSeason))
	assert.Equal(t, []string{"4"}, c.Values(FieldWind))
	assert.Equal(t, []string{"bear", "fog"}, c.Values(FieldState))
	assert.Equal(t, []string{"tent"}, c.Values(FieldPlan))
	assert.Nil(t, c.Values(Field("terrain")))
}

func TestOptionsAndFields(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"1000", "2000", "3000"}, Options(FieldAltitude))
	assert.Equal(t, []string{"0", "2", "4"}, Options(FieldWind))
	assert.Len(t, Options(FieldState), 7)
	assert.True(t, IsField("plan"))
	assert.False(t, IsField("terrain"))
}

func TestLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "快晴", Label("clear"))
	assert.Equal(t, "強風", Label("4"))
	assert.Equal(t, "3000", Label("3000"))

	c := Condition{
		Altitude: Altitude1000,
		Weather:  WeatherCloudy,
		Season:   SeasonWinter,
		Wind:     WindCalm,
		States:   []State{StateBear, StateRiver},
		Plan:     PlanDaytrip,
	}
	labels := c.Labels()
	assert.Equal(t, "1000", labels[FieldAltitude])
	assert.Equal(t, "クマ出没情報あり・渡渉あり", labels[FieldState])
	assert.Equal(t, "日帰り", labels[FieldPlan])
}

func TestLabelsCoverEveryOption(t *testing.T) {
	t.Parallel()

	for _, f := range Fields {
		if f == FieldAltitude {
			continue
		}
		for _, v := range Options(f) {
			assert.NotEqual(t, v, Label(v), "missing label for %s=%s", f, v)
		}
	}
}

func TestLabelReturnsUnknownValuesVerbatim(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "100%", Label("100%"))
	assert.Equal(t, "%s %d", Label("%s %d"))
	assert.Empty(t, Label(""))
}

func TestCloneDetachesStates(t *testing.T) {
	t.Parallel()

	c := Condition{States: []State{StateBear}}
	clone := c.Clone()
	clone.States[0] = StateFog

	assert.Equal(t, []State{StateBear}, c.States)
	assert.Nil(t, Condition{}.Clone().States)
}
