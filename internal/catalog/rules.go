package catalog

import "github.com/eugenenazirov/summit-pack/internal/condition"

// predicates are referenced from catalog YAML through the `predicate` key.
var predicates = map[string]Predicate{
	// Mid layers can stay home only on a calm, clear summer day trip.
	"mild_daytrip": func(c condition.Condition) (Necessity, bool) {
		if c.Weather == condition.WeatherClear &&
			c.Season == condition.SeasonSummer &&
			c.Wind == condition.WindCalm &&
			c.Plan == condition.PlanDaytrip {
			return Irrelevant, true
		}
		return "", false
	},
	// Staffed huts provide drinking water.
	"hut_supplies_water": func(c condition.Condition) (Necessity, bool) {
		if c.Plan == condition.PlanHut {
			return Irrelevant, true
		}
		return "", false
	},
	"cold_or_exposed": func(c condition.Condition) (Necessity, bool) {
		if c.Weather == condition.WeatherRain ||
			c.Season == condition.SeasonAutumn ||
			c.Season == condition.SeasonWinter ||
			c.Wind == condition.WindStrong ||
			c.HasState(condition.StateFog) ||
			c.Plan == condition.PlanTent {
			return Optional, true
		}
		return "", false
	},
	"winter_overnight": func(c condition.Condition) (Necessity, bool) {
		if c.Season == condition.SeasonWinter &&
			(c.Plan == condition.PlanHut || c.Plan == condition.PlanTent) {
			return Optional, true
		}
		return "", false
	},
}

// quantities are referenced from catalog YAML through the `quantity` key.
var quantities = map[string]QuantityFunc{
	"water_by_route": WaterDemand,
}

// WaterDemand returns how many water bottles a route needs: 1/2/4 by
// altitude, one more in summer, two more for a tent night, halved (rounded
// down) when staying in a hut.
func WaterDemand(c condition.Condition) int {
	var needed int
	switch c.Altitude {
	case condition.Altitude1000:
		needed = 1
	case condition.Altitude2000:
		needed = 2
	case condition.Altitude3000:
		needed = 4
	}
	if c.Season == condition.SeasonSummer {
		needed++
	}
	if c.Plan == condition.PlanTent {
		needed += 2
	}
	if c.Plan == condition.PlanHut {
		needed /= 2
	}
	return needed
}
