// Package view turns host groups, plugin options and a user's preferences into
// the serializable sidebar model shared by the HTTP API, the MCP tools and navctl.
package view

import (
	"github.com/cexll/sidebar/internal/config"
	"github.com/cexll/sidebar/internal/nav"
	"github.com/cexll/sidebar/internal/preferences"
)

// Entity is one rendered navigation link
type Entity struct {
	Slug       string             `json:"slug"`
	Type       nav.EntityType     `json:"type"`
	Label      string             `json:"label"`
	Href       string             `json:"href"`
	External   bool               `json:"external"`
	Icon       nav.IconRef        `json:"icon"`
	Pinnable   bool               `json:"pinnable"`
	Pinned     bool               `json:"pinned"`
	Active     bool               `json:"active"`
	ID         string             `json:"id"`
	Badge      *nav.ResolvedBadge `json:"badge,omitempty"`
	BadgeClass string             `json:"badgeClass,omitempty"`
}

// Group is a labelled, collapsible section of the sidebar
type Group struct {
	Label    string   `json:"label"`
	Open     bool     `json:"open"`
	Entities []Entity `json:"entities"`
}

// PinnedLink is one entry of the pinned section
type PinnedLink struct {
	nav.PinnedLink
	ID         string             `json:"id"`
	Active     bool               `json:"active"`
	Badge      *nav.ResolvedBadge `json:"badge,omitempty"`
	BadgeClass string             `json:"badgeClass,omitempty"`
}

// DashboardLink is the fixed link to the admin root, rendered above everything else
type DashboardLink struct {
	Slug       string             `json:"slug"`
	Label      string             `json:"label"`
	Href       string             `json:"href"`
	Icon       nav.IconRef        `json:"icon"`
	ID         string             `json:"id"`
	Active     bool               `json:"active"`
	Badge      *nav.ResolvedBadge `json:"badge,omitempty"`
	BadgeClass string             `json:"badgeClass,omitempty"`
}

// Nav is the complete sidebar for one user and one request
type Nav struct {
	ClassPrefix    string                     `json:"classPrefix"`
	EnablePinning  bool                       `json:"enablePinning"`
	PinnedStorage  config.PinnedStorage       `json:"pinnedStorage"`
	CSSVariables   map[string]string          `json:"cssVariables"`
	AdminRoute     string                     `json:"adminRoute"`
	NavPreferences preferences.NavPreferences `json:"navPreferences"`
	Dashboard      DashboardLink              `json:"dashboard"`
	Groups         []Group                    `json:"groups"`
	Pinned         []PinnedLink               `json:"pinned"`
}

// Input gathers everything Build needs
type Input struct {
	HostGroups  []nav.Group
	Options     config.Resolved
	AdminRoute  string
	Pinned      []nav.PinnedItem
	Preferences preferences.NavPreferences
	// Pathname is the current admin URL path, used to flag active links. Optional.
	Pathname string
}

// Build assembles the navigation and decorates every entity. Pinned items that
// no longer match a visible entity are left out of the pinned section.
func Build(in Input) Nav {
	opts := in.Options
	groups := nav.Assemble(in.HostGroups, opts.CustomLinks, opts.CustomGroups, opts.GroupOrderOverrides)

	out := Nav{
		ClassPrefix:    opts.ClassPrefix,
		EnablePinning:  opts.EnablePinning,
		PinnedStorage:  opts.PinnedStorage,
		CSSVariables:   opts.CSSVariables,
		AdminRoute:     in.AdminRoute,
		NavPreferences: in.Preferences,
		Dashboard:      dashboardLink(opts, in.AdminRoute, in.Pathname),
		Groups:         make([]Group, 0, len(groups)),
		Pinned:         []PinnedLink{},
	}

	for _, g := range groups {
		vg := Group{
			Label:    g.Label,
			Open:     in.Preferences.IsOpen(g.Label, opts.GroupDefaultOpen(g.Label)),
			Entities: make([]Entity, 0, len(g.Entities)),
		}
		for _, e := range g.Entities {
			href := nav.ResolveHref(e, in.AdminRoute)
			ve := Entity{
				Slug:     e.Slug,
				Type:     e.Type,
				Label:    e.Label,
				Href:     href,
				External: e.External,
				Icon:     nav.ResolveIcon(e, opts.Icons, nav.DefaultIcons),
				Pinnable: opts.EnablePinning && e.IsPinnable(),
				Pinned:   opts.EnablePinning && nav.ContainsPinned(in.Pinned, e.Slug, e.Type),
				Active:   nav.IsActive(in.Pathname, href, e.External),
				ID:       nav.ElementID(e),
			}
			ve.Badge, ve.BadgeClass = badgeFor(opts, e.Slug)
			vg.Entities = append(vg.Entities, ve)
		}
		out.Groups = append(out.Groups, vg)
	}

	if !opts.EnablePinning {
		return out
	}
	for _, link := range nav.PinnedLinks(in.Pinned, groups, in.AdminRoute) {
		e, _ := nav.FindEntity(groups, link.Slug, link.Type)
		link.Icon = nav.ResolveIcon(e, opts.Icons, nav.DefaultIcons)
		pl := PinnedLink{
			PinnedLink: link,
			ID:         "nav-pinned-" + link.Slug,
			Active:     nav.IsActive(in.Pathname, link.Href, link.External),
		}
		pl.Badge, pl.BadgeClass = badgeFor(opts, link.Slug)
		out.Pinned = append(out.Pinned, pl)
	}
	return out
}

// dashboardLink is active only on the admin root itself
func dashboardLink(opts config.Resolved, adminRoute, pathname string) DashboardLink {
	href := adminRoute
	if href == "" {
		href = "/"
	}
	d := DashboardLink{
		Slug:   "dashboard",
		Label:  "Dashboard",
		Href:   href,
		Icon:   nav.ResolveIcon(nav.Entity{Slug: "dashboard"}, opts.Icons, nav.DefaultIcons),
		ID:     "nav-dashboard",
		Active: pathname == href || pathname == href+"/",
	}
	d.Badge, d.BadgeClass = badgeFor(opts, d.Slug)
	return d
}

func badgeFor(opts config.Resolved, slug string) (*nav.ResolvedBadge, string) {
	b, ok := nav.LookupBadge(opts.Badges, slug)
	if !ok {
		return nil, ""
	}
	return &b, opts.ClassPrefix + "__link-badge " + nav.BadgeColorClass(b.Color, opts.ClassPrefix)
}
