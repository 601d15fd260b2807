package condition

type contradiction struct {
	name  string
	match func(Condition) bool
}

var contradictions = []contradiction{
	{
		name: "summit_daytrip",
		match: func(c Condition) bool {
			return c.Altitude == Altitude3000 && c.Plan == PlanDaytrip
		},
	},
	{
		name: "lowland_hut",
		match: func(c Condition) bool {
			return c.Altitude == Altitude1000 && c.Plan == PlanHut
		},
	},
	{
		name: "rain_without_advisory",
		match: func(c Condition) bool {
			return c.Weather == WeatherRain && c.HasState(StateNormal)
		},
	},
	{
		name: "lowland_volcano",
		match: func(c Condition) bool {
			return c.Altitude == Altitude1000 && c.HasState(StateVolcano)
		},
	},
	{
		name: "winter_alpine_tent",
		match: func(c Condition) bool {
			return c.Season == SeasonWinter &&
				(c.Altitude == Altitude2000 || c.Altitude == Altitude3000) &&
				c.Plan == PlanTent
		},
	},
}

// Contradictions returns the names of the contradiction rules c matches, in
// rule order. An empty result means the condition is consistent.
func Contradictions(c Condition) []string {
	var hits []string
	for _, rule := range contradictions {
		if rule.match(c) {
			hits = append(hits, rule.name)
		}
	}
	return hits
}

// Consistent reports whether c matches none of the contradiction rules.
func Consistent(c Condition) bool {
	return len(Contradictions(c)) == 0
}
