package nav

// ContainsPinned reports whether items holds the identity (slug, typ)
func ContainsPinned(items []PinnedItem, slug string, typ EntityType) bool {
	for _, item := range items {
		if item.Is(slug, typ) {
			return true
		}
	}
	return false
}

// AppendPinned returns a copy of items with (slug, typ) appended at order len(items).
// The second result is false when the identity was already present.
func AppendPinned(items []PinnedItem, slug string, typ EntityType) ([]PinnedItem, bool) {
	if ContainsPinned(items, slug, typ) {
		return ClonePinned(items), false
	}
	next := make([]PinnedItem, 0, len(items)+1)
	next = append(next, items...)
	next = append(next, PinnedItem{Slug: slug, Type: typ, Order: len(items)})
	return next, true
}

// RemovePinned returns a copy of items without (slug, typ), remaining order untouched.
// The second result is the removed item, if any.
func RemovePinned(items []PinnedItem, slug string, typ EntityType) ([]PinnedItem, *PinnedItem) {
	next := make([]PinnedItem, 0, len(items))
	var removed *PinnedItem
	for _, item := range items {
		if item.Is(slug, typ) {
			it := item
			removed = &it
			continue
		}
		next = append(next, item)
	}
	return next, removed
}

// DedupePinned keeps the first occurrence of every identity
func DedupePinned(items []PinnedItem) []PinnedItem {
	seen := make(map[PinnedItem]struct{}, len(items))
	out := make([]PinnedItem, 0, len(items))
	for _, item := range items {
		key := PinnedItem{Slug: item.Slug, Type: item.Type}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// RenumberPinned rewrites Order to the item's position
func RenumberPinned(items []PinnedItem) []PinnedItem {
	out := make([]PinnedItem, len(items))
	for i, item := range items {
		item.Order = i
		out[i] = item
	}
	return out
}

// ClonePinned copies items, never returning nil
func ClonePinned(items []PinnedItem) []PinnedItem {
	out := make([]PinnedItem, len(items))
	copy(out, items)
	return out
}

// EqualPinned compares two pinned sets element by element
func EqualPinned(a, b []PinnedItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
