package nav

import "strings"

// GenericIcon is used when nothing else resolves
var GenericIcon = IconByKey("file")

// ResolveHref returns the link target of an entity. Navigation and pinned lists
// must both go through here so active-route matching agrees between them.
func ResolveHref(e Entity, adminRoute string) string {
	prefix := strings.TrimSuffix(adminRoute, "/")
	switch e.Type {
	case TypeCustom:
		return e.Href
	case TypeCollection:
		return prefix + "/collections/" + e.Slug
	default:
		return prefix + "/globals/" + e.Slug
	}
}

// ResolveIcon picks the icon for an entity.
//
// Order: an override keyed by slug, then the entity's own key looked up in
// defaults (by key, then by slug, then GenericIcon), then the entity's own handle,
// then defaults by slug, then GenericIcon.
func ResolveIcon(e Entity, custom, defaults map[string]IconRef) IconRef {
	if icon, ok := custom[e.Slug]; ok && !icon.IsZero() {
		return icon
	}

	if key, ok := e.Icon.Key(); ok {
		if icon, ok := defaults[key]; ok {
			return icon
		}
		if icon, ok := defaults[e.Slug]; ok {
			return icon
		}
		return GenericIcon
	}

	if _, ok := e.Icon.Handle(); ok {
		return e.Icon
	}

	if icon, ok := defaults[e.Slug]; ok {
		return icon
	}
	return GenericIcon
}

// ElementID is the DOM id used for an entity's link
func ElementID(e Entity) string {
	switch e.Type {
	case TypeCollection:
		return "nav-" + e.Slug
	case TypeGlobal:
		return "nav-global-" + e.Slug
	default:
		return "nav-custom-" + e.Slug
	}
}

// IsActive reports whether pathname is at or below href. External links are never active.
func IsActive(pathname, href string, external bool) bool {
	if external || href == "" {
		return false
	}
	return pathname == href || strings.HasPrefix(pathname, href+"/")
}

// PinnedLink is a pinned item joined with the entity it points at
type PinnedLink struct {
	PinnedItem
	Label    string  `json:"label"`
	Href     string  `json:"href"`
	External bool    `json:"external,omitempty"`
	Icon     IconRef `json:"icon"`
}

// PinnedLinks joins pinned items with the assembled groups. Items whose entity
// is not present in the current navigation are dropped.
func PinnedLinks(items []PinnedItem, groups []Group, adminRoute string) []PinnedLink {
	links := make([]PinnedLink, 0, len(items))
	for _, item := range items {
		e, ok := FindEntity(groups, item.Slug, item.Type)
		if !ok {
			continue
		}
		links = append(links, PinnedLink{
			PinnedItem: item,
			Label:      e.Label,
			Href:       ResolveHref(e, adminRoute),
			External:   e.External,
			Icon:       e.Icon,
		})
	}
	return links
}

// FindEntity returns the first entity with the given identity
func FindEntity(groups []Group, slug string, typ EntityType) (Entity, bool) {
	for _, g := range groups {
		for _, e := range g.Entities {
			if e.Slug == slug && e.Type == typ {
				return e, true
			}
		}
	}
	return Entity{}, false
}
