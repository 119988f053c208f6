package nav

import (
	"encoding/json"
	"testing"
)

func TestResolveHref(t *testing.T) {
	tests := []struct {
		name   string
		entity Entity
		route  string
		want   string
	}{
		{"collection", Entity{Slug: "posts", Type: TypeCollection}, "/admin", "/admin/collections/posts"},
		{"global", Entity{Slug: "header", Type: TypeGlobal}, "/admin", "/admin/globals/header"},
		{"custom verbatim", Entity{Slug: "custom-docs", Type: TypeCustom, Href: "https://x.com/docs"}, "/admin", "https://x.com/docs"},
		{"root admin route", Entity{Slug: "posts", Type: TypeCollection}, "/", "/collections/posts"},
		{"trailing slash", Entity{Slug: "posts", Type: TypeCollection}, "/cms/", "/cms/collections/posts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveHref(tt.entity, tt.route); got != tt.want {
				t.Fatalf("ResolveHref = %q, want %q", got, tt.want)
			}
		})
	}
}

type fakeIcon struct{ name string }

func TestResolveIcon(t *testing.T) {
	defaults := map[string]IconRef{
		"posts": IconByKey("newspaper"),
		"docs":  IconByKey("book-marked"),
	}
	custom := map[string]IconRef{"posts": IconByKey("star")}
	handle := &fakeIcon{name: "mine"}

	tests := []struct {
		name   string
		entity Entity
		custom map[string]IconRef
		want   IconRef
	}{
		{"override by slug wins over everything", Entity{Slug: "posts", Icon: IconByKey("docs")}, custom, IconByKey("star")},
		{"entity key looked up in defaults", Entity{Slug: "pages", Icon: IconByKey("docs")}, nil, IconByKey("book-marked")},
		{"entity key misses, slug hits", Entity{Slug: "posts", Icon: IconByKey("nope")}, nil, IconByKey("newspaper")},
		{"entity key misses, slug misses", Entity{Slug: "x", Icon: IconByKey("nope")}, nil, GenericIcon},
		{"handle used directly", Entity{Slug: "posts", Icon: IconByHandle(handle)}, nil, IconByHandle(handle)},
		{"no icon uses slug", Entity{Slug: "posts"}, nil, IconByKey("newspaper")},
		{"no icon, unknown slug", Entity{Slug: "zzz"}, nil, GenericIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveIcon(tt.entity, tt.custom, defaults)
			if got != tt.want {
				t.Fatalf("ResolveIcon = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIconRef_JSONBoundary(t *testing.T) {
	b, err := json.Marshal(struct {
		Key    IconRef `json:"key"`
		Handle IconRef `json:"handle"`
	}{IconByKey("star"), IconByHandle(&fakeIcon{})})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != `{"key":"star","handle":null}` {
		t.Fatalf("encoded = %s", b)
	}

	var decoded IconRef
	if err := json.Unmarshal([]byte(`"globe"`), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if key, ok := decoded.Key(); !ok || key != "globe" {
		t.Fatalf("decoded key = %q, %v", key, ok)
	}
	if err := json.Unmarshal([]byte(`{"render":1}`), &decoded); err == nil {
		t.Fatalf("expected error decoding an object icon")
	}
}

func TestElementID(t *testing.T) {
	tests := map[EntityType]string{
		TypeCollection: "nav-posts",
		TypeGlobal:     "nav-global-posts",
		TypeCustom:     "nav-custom-posts",
	}
	for typ, want := range tests {
		if got := ElementID(Entity{Slug: "posts", Type: typ}); got != want {
			t.Errorf("ElementID(%s) = %q, want %q", typ, got, want)
		}
	}
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		path     string
		href     string
		external bool
		want     bool
	}{
		{"/admin/collections/posts", "/admin/collections/posts", false, true},
		{"/admin/collections/posts/42", "/admin/collections/posts", false, true},
		{"/admin/collections/posts-archive", "/admin/collections/posts", false, false},
		{"https://x.com/docs", "https://x.com/docs", true, false},
		{"/admin", "", false, false},
	}
	for _, tt := range tests {
		if got := IsActive(tt.path, tt.href, tt.external); got != tt.want {
			t.Errorf("IsActive(%q, %q, %v) = %v, want %v", tt.path, tt.href, tt.external, got, tt.want)
		}
	}
}

func TestPinnedLinks(t *testing.T) {
	groups := []Group{
		{Label: "Content", Entities: []Entity{
			{Slug: "posts", Type: TypeCollection, Label: "Posts"},
			{Slug: "custom-docs", Type: TypeCustom, Label: "Docs", Href: "https://d", External: true},
		}},
		{Label: "Settings", Entities: []Entity{{Slug: "header", Type: TypeGlobal, Label: "Header"}}},
	}
	items := []PinnedItem{
		{Slug: "header", Type: TypeGlobal, Order: 0},
		{Slug: "gone", Type: TypeCollection, Order: 1},
		{Slug: "custom-docs", Type: TypeCustom, Order: 2},
		{Slug: "posts", Type: TypeGlobal, Order: 3},
	}

	links := PinnedLinks(items, groups, "/admin")
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2: %+v", len(links), links)
	}
	if links[0].Href != "/admin/globals/header" || links[0].Label != "Header" {
		t.Fatalf("first link = %+v", links[0])
	}
	if links[1].Href != "https://d" || !links[1].External || links[1].Order != 2 {
		t.Fatalf("second link = %+v", links[1])
	}
}
