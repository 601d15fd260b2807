package condition

import (
	"fmt"
	"slices"
)

// Selection is a player-chosen condition. Every field is mandatory; pointer
// fields distinguish "unset" from the zero value (wind 0 is a valid choice).
type Selection struct {
	Altitude *int     `json:"altitude"`
	Weather  string   `json:"weather"`
	Season   string   `json:"season"`
	Wind     *int     `json:"wind"`
	States   []string `json:"states"`
	Plan     string   `json:"plan"`
}

// Condition validates the selection and converts it.
func (s Selection) Condition() (Condition, error) {
	switch {
	case s.Altitude == nil:
		return Condition{}, fmt.Errorf("%w: %s", ErrIncompleteSelection, FieldAltitude)
	case s.Weather == "":
		return Condition{}, fmt.Errorf("%w: %s", ErrIncompleteSelection, FieldWeather)
	case s.Season == "":
		return Condition{}, fmt.Errorf("%w: %s", ErrIncompleteSelection, FieldSeason)
	case s.Wind == nil:
		return Condition{}, fmt.Errorf("%w: %s", ErrIncompleteSelection, FieldWind)
	case len(s.States) == 0:
		return Condition{}, fmt.Errorf("%w: %s", ErrIncompleteSelection, FieldState)
	case s.Plan == "":
		return Condition{}, fmt.Errorf("%w: %s", ErrIncompleteSelection, FieldPlan)
	}

	c := Condition{
		Altitude: Altitude(*s.Altitude),
		Weather:  Weather(s.Weather),
		Season:   Season(s.Season),
		Wind:     Wind(*s.Wind),
		Plan:     Plan(s.Plan),
	}
	if !slices.Contains(Altitudes, c.Altitude) {
		return Condition{}, invalid(FieldAltitude, *s.Altitude)
	}
	if !slices.Contains(Weathers, c.Weather) {
		return Condition{}, invalid(FieldWeather, s.Weather)
	}
	if !slices.Contains(Seasons, c.Season) {
		return Condition{}, invalid(FieldSeason, s.Season)
	}
	if !slices.Contains(Winds, c.Wind) {
		return Condition{}, invalid(FieldWind, *s.Wind)
	}
	if !slices.Contains(Plans, c.Plan) {
		return Condition{}, invalid(FieldPlan, s.Plan)
	}
	for _, raw := range s.States {
		st := State(raw)
		if !slices.Contains(States, st) {
			return Condition{}, invalid(FieldState, raw)
		}
		if !c.HasState(st) {
			c.States = append(c.States, st)
		}
	}
	return c, nil
}

func invalid(f Field, value any) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidValue, f, value)
}
