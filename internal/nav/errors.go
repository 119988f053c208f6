package nav

import "errors"

var (
	// ErrInvalidType is returned when an entity type is not collection, global or custom.
	ErrInvalidType = errors.New("nav: invalid entity type")
	// ErrEmptySlug is returned when an entity identity has no slug.
	ErrEmptySlug = errors.New("nav: empty slug")
)
