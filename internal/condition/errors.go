package condition

import "errors"

var (
	// ErrGenerationExhausted is returned alongside the last draw when no
	// consistent condition was found within the attempt budget. It is a warning:
	// the returned Condition is still usable.
	ErrGenerationExhausted = errors.New("no consistent condition found within attempt budget")
	// ErrIncompleteSelection is returned when a custom selection leaves a field unset.
	ErrIncompleteSelection = errors.New("every condition field must be selected")
	// ErrInvalidValue is returned when a custom selection uses a value outside the option set.
	ErrInvalidValue = errors.New("value is not a valid option for the field")
)
