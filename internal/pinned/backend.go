package pinned

import (
	"context"

	"github.com/cexll/sidebar/internal/nav"
)

// Backend is the durable system of record for one user's pinned items.
//
// Mutating calls receive both the identity being changed and the optimistic
// set the store has already applied; each returns the set the backend now holds,
// which the store adopts verbatim.
type Backend interface {
	Load(ctx context.Context) ([]nav.PinnedItem, error)
	Pin(ctx context.Context, item nav.PinnedItem, next []nav.PinnedItem) ([]nav.PinnedItem, error)
	Unpin(ctx context.Context, slug string, typ nav.EntityType, next []nav.PinnedItem) ([]nav.PinnedItem, error)
	Reorder(ctx context.Context, items []nav.PinnedItem) ([]nav.PinnedItem, error)
}

// Wire paths served by the preference API and used by RemoteBackend
const (
	PathPinned  = "/api/nav/pinned"
	PathPin     = "/api/nav/pin"
	PathUnpin   = "/api/nav/unpin"
	PathReorder = "/api/nav/reorder"
)

// ItemRequest is the body of pin and unpin requests
type ItemRequest struct {
	Slug string         `json:"slug"`
	Type nav.EntityType `json:"type"`
}

// ReorderRequest is the body of a reorder request
type ReorderRequest struct {
	Items []nav.PinnedItem `json:"items"`
}

// Response is returned by every pinned endpoint
type Response struct {
	PinnedItems []nav.PinnedItem `json:"pinnedItems"`
}
