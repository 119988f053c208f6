package view

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cexll/sidebar/internal/config"
	"github.com/cexll/sidebar/internal/nav"
	"github.com/cexll/sidebar/internal/preferences"
)

func sampleInput(t *testing.T) Input {
	t.Helper()
	opts, err := config.ParseOptions([]byte(`
customLinks:
  - label: API Docs
    href: https://docs.example.com
    icon: docs
  - label: Reports
    href: /admin/reports
    group: Content
    order: 1
customGroups:
  - label: Custom
    defaultOpen: false
icons:
  header: star
badges:
  posts: {count: 3, color: green}
  media: 0
`))
	if err != nil {
		t.Fatalf("ParseOptions failed: %v", err)
	}
	return Input{
		HostGroups: []nav.Group{
			{Label: "Globals", Entities: []nav.Entity{
				{Slug: "header", Type: nav.TypeGlobal, Label: "Header"},
			}},
			{Label: "Content", Entities: []nav.Entity{
				{Slug: "posts", Type: nav.TypeCollection, Label: "Posts"},
				{Slug: "media", Type: nav.TypeCollection, Label: "Media"},
			}},
		},
		Options:    opts.Resolve(),
		AdminRoute: "/admin",
		Pinned: []nav.PinnedItem{
			{Slug: "header", Type: nav.TypeGlobal, Order: 0},
			{Slug: "gone", Type: nav.TypeCollection, Order: 1},
			{Slug: "posts", Type: nav.TypeCollection, Order: 2},
		},
		Pathname: "/admin/collections/posts/42",
	}
}

func TestBuild(t *testing.T) {
	v := Build(sampleInput(t))

	var labels []string
	for _, g := range v.Groups {
		labels = append(labels, g.Label)
	}
	if strings.Join(labels, ",") != "Content,Globals,Custom" {
		t.Fatalf("group order = %v", labels)
	}

	content := v.Groups[0]
	if !content.Open {
		t.Errorf("Content should default to open")
	}
	if content.Entities[0].Slug != "custom-reports" {
		t.Fatalf("Reports (order 1) should lead Content, got %+v", content.Entities)
	}
	posts := content.Entities[1]
	if posts.Href != "/admin/collections/posts" || posts.ID != "nav-posts" {
		t.Errorf("posts href/id = %s %s", posts.Href, posts.ID)
	}
	if !posts.Active || !posts.Pinned || !posts.Pinnable {
		t.Errorf("posts flags = %+v", posts)
	}
	if key, _ := posts.Icon.Key(); key != "newspaper" {
		t.Errorf("posts icon = %v", posts.Icon)
	}
	if posts.Badge == nil || posts.Badge.Color != nav.BadgeGreen || posts.BadgeClass != "nav__link-badge nav__link-badge--green" {
		t.Errorf("posts badge = %+v %q", posts.Badge, posts.BadgeClass)
	}
	if media := content.Entities[2]; media.Badge != nil || media.Pinned {
		t.Errorf("media = %+v", media)
	}

	header := v.Groups[1].Entities[0]
	if key, _ := header.Icon.Key(); key != "star" || header.ID != "nav-global-header" {
		t.Errorf("header = %+v", header)
	}

	custom := v.Groups[2]
	if custom.Open {
		t.Errorf("Custom group configured closed")
	}
	docs := custom.Entities[0]
	if !docs.External || docs.Active || docs.Href != "https://docs.example.com" {
		t.Errorf("docs = %+v", docs)
	}
	if key, _ := docs.Icon.Key(); key != "book-marked" {
		t.Errorf("docs icon = %v", docs.Icon)
	}

	if len(v.Pinned) != 2 || v.Pinned[0].Slug != "header" || v.Pinned[1].Slug != "posts" {
		t.Fatalf("pinned = %+v", v.Pinned)
	}
	if v.Pinned[0].Href != "/admin/globals/header" || v.Pinned[0].ID != "nav-pinned-header" {
		t.Errorf("pinned header = %+v", v.Pinned[0])
	}
	if key, _ := v.Pinned[0].Icon.Key(); key != "star" {
		t.Errorf("pinned header icon = %v", v.Pinned[0].Icon)
	}
	if !v.Pinned[1].Active || v.Pinned[1].Badge == nil {
		t.Errorf("pinned posts = %+v", v.Pinned[1])
	}
}

func TestBuild_DashboardLink(t *testing.T) {
	tests := []struct {
		name       string
		adminRoute string
		pathname   string
		wantHref   string
		wantActive bool
	}{
		{"admin root", "/admin", "/admin", "/admin", true},
		{"trailing slash", "/admin", "/admin/", "/admin", true},
		{"deeper page", "/admin", "/admin/collections/posts", "/admin", false},
		{"root admin route", "", "/", "/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleInput(t)
			in.AdminRoute = tt.adminRoute
			in.Pathname = tt.pathname
			d := Build(in).Dashboard

			if d.ID != "nav-dashboard" || d.Slug != "dashboard" || d.Label != "Dashboard" {
				t.Fatalf("dashboard = %+v", d)
			}
			if d.Href != tt.wantHref || d.Active != tt.wantActive {
				t.Errorf("href=%q active=%v, want %q %v", d.Href, d.Active, tt.wantHref, tt.wantActive)
			}
			if key, _ := d.Icon.Key(); key != "layout-dashboard" {
				t.Errorf("dashboard icon = %v", d.Icon)
			}
		})
	}
}

func TestBuild_PinningDisabled(t *testing.T) {
	in := sampleInput(t)
	in.Options.EnablePinning = false
	v := Build(in)

	if len(v.Pinned) != 0 {
		t.Fatalf("pinned = %+v, want none", v.Pinned)
	}
	for _, g := range v.Groups {
		for _, e := range g.Entities {
			if e.Pinnable || e.Pinned {
				t.Fatalf("%s pinnable=%v pinned=%v with pinning off", e.Slug, e.Pinnable, e.Pinned)
			}
		}
	}
}

func TestBuild_PreferencesOverrideDefaultOpen(t *testing.T) {
	in := sampleInput(t)
	in.Preferences = preferences.NavPreferences{Groups: map[string]preferences.GroupPreference{
		"Content": {Open: nav.BoolPtr(false)},
		"Custom":  {Open: nav.BoolPtr(true)},
	}}
	v := Build(in)
	if v.Groups[0].Open || !v.Groups[2].Open {
		t.Fatalf("open flags = %v %v", v.Groups[0].Open, v.Groups[2].Open)
	}
}

func TestBuild_JSONShape(t *testing.T) {
	raw, err := json.Marshal(Build(sampleInput(t)))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"classPrefix", "enablePinning", "pinnedStorage", "cssVariables", "adminRoute", "navPreferences", "dashboard", "groups", "pinned"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in %s", key, raw)
		}
	}
	pinned := decoded["pinned"].([]any)[0].(map[string]any)
	if pinned["slug"] != "header" || pinned["type"] != "global" {
		t.Errorf("pinned entry = %v", pinned)
	}
}
