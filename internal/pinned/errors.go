package pinned

import "errors"

var (
	// ErrPinningDisabled is returned when pinning is switched off in the plugin options.
	ErrPinningDisabled = errors.New("pinned: pinning is disabled")
	// ErrWriteThrough wraps a backend write failure after the store has reloaded.
	ErrWriteThrough = errors.New("pinned: write-through failed")
	// ErrMissingItems is returned when a remote response has no pinnedItems field.
	ErrMissingItems = errors.New("pinned: response has no pinnedItems")
)
