package condition

import (
	"slices"
	"strconv"
)

// Field names one axis of a Condition. Catalog override tables are keyed by Field.
type Field string

const (
	FieldAltitude Field = "altitude"
	FieldWeather  Field = "weather"
	FieldSeason   Field = "season"
	FieldWind     Field = "wind"
	FieldState    Field = "state"
	FieldPlan     Field = "plan"
)

// Fields lists every condition field in display order.
var Fields = []Field{FieldAltitude, FieldWeather, FieldSeason, FieldWind, FieldState, FieldPlan}

type Altitude int

const (
	Altitude1000 Altitude = 1000
	Altitude2000 Altitude = 2000
	Altitude3000 Altitude = 3000
)

type Weather string

const (
	WeatherClear  Weather = "clear"
	WeatherCloudy Weather = "cloudy"
	WeatherRain   Weather = "rain"
)

type Season string

const (
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// Wind is the wind strength: 0 calm, 2 breezy, 4 strong.
type Wind int

const (
	WindCalm   Wind = 0
	WindBreezy Wind = 2
	WindStrong Wind = 4
)

// State is a hazard or advisory in effect on the mountain.
type State string

const (
	StateNormal    State = "normal"
	StateAfterRain State = "after_rain"
	StateBear      State = "bear"
	StateFog       State = "fog"
	StateVolcano   State = "volcano"
	StateRockfall  State = "rockfall"
	StateRiver     State = "river"
)

type Plan string

const (
	PlanDaytrip Plan = "daytrip"
	PlanHut     Plan = "hut"
	PlanTent    Plan = "tent"
)

// Option sets the generator samples from. Custom selections must use the same values.
var (
	Altitudes = []Altitude{Altitude1000, Altitude2000, Altitude3000}
	Weathers  = []Weather{WeatherClear, WeatherCloudy, WeatherRain}
	Seasons   = []Season{SeasonSummer, SeasonAutumn, SeasonWinter}
	Winds     = []Wind{WindCalm, WindBreezy, WindStrong}
	States    = []State{StateNormal, StateAfterRain, StateBear, StateFog, StateVolcano, StateRockfall, StateRiver}
	Plans     = []Plan{PlanDaytrip, PlanHut, PlanTent}
)

// Condition is an immutable hiking scenario. States usually holds a single
// value but may carry several simultaneous advisories.
type Condition struct {
	Altitude Altitude `json:"altitude"`
	Weather  Weather  `json:"weather"`
	Season   Season   `json:"season"`
	Wind     Wind     `json:"wind"`
	States   []State  `json:"states"`
	Plan     Plan     `json:"plan"`
}

// Clone returns a copy that shares no memory with c.
func (c Condition) Clone() Condition {
	c.States = slices.Clone(c.States)
	return c
}

// HasState reports whether s is among the condition's states.
func (c Condition) HasState(s State) bool {
	return slices.Contains(c.States, s)
}

// Values returns the condition's value(s) for a field in their catalog key
// form. Only FieldState can yield more than one value.
func (c Condition) Values(f Field) []string {
	switch f {
	case FieldAltitude:
		return []string{strconv.Itoa(int(c.Altitude))}
	case FieldWeather:
		return []string{string(c.Weather)}
	case FieldSeason:
		return []string{string(c.Season)}
	case FieldWind:
		return []string{strconv.Itoa(int(c.Wind))}
	case FieldState:
		out := make([]string, 0, len(c.States))
		for _, s := range c.States {
			out = append(out, string(s))
		}
		return out
	case FieldPlan:
		return []string{string(c.Plan)}
	default:
		return nil
	}
}

// Options returns the allowed values of a field in catalog key form.
func Options(f Field) []string {
	switch f {
	case FieldAltitude:
		return itoaAll(Altitudes)
	case FieldWeather:
		return stringsOf(Weathers)
	case FieldSeason:
		return stringsOf(Seasons)
	case FieldWind:
		return itoaAll(Winds)
	case FieldState:
		return stringsOf(States)
	case FieldPlan:
		return stringsOf(Plans)
	default:
		return nil
	}
}

// IsField reports whether name is a known condition field.
func IsField(name string) bool {
	return slices.Contains(Fields, Field(name))
}

func itoaAll[T ~int](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strconv.Itoa(int(v)))
	}
	return out
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}
