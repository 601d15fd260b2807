package catalog

import "errors"

var (
	// ErrMalformedItem is returned when a catalog entry violates its data contract.
	ErrMalformedItem = errors.New("malformed catalog item")
	// ErrEmptyCatalog is returned when a catalog source contains no items.
	ErrEmptyCatalog = errors.New("catalog contains no items")
)
