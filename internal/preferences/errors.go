package preferences

import "errors"

var (
	// ErrNoUser is returned when an operation has no user to scope the record to.
	ErrNoUser = errors.New("preferences: no user")
	// ErrEmptyLabel is returned by SetGroupOpen for an empty group label.
	ErrEmptyLabel = errors.New("preferences: empty group label")
)
