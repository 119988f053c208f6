package nav

import (
	"reflect"
	"testing"
)

func labels(groups []Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Label
	}
	return out
}

func slugs(g Group) []string {
	out := make([]string, len(g.Entities))
	for i, e := range g.Entities {
		out[i] = e.Slug
	}
	return out
}

func groupByLabel(t *testing.T, groups []Group, label string) Group {
	t.Helper()
	for _, g := range groups {
		if g.Label == label {
			return g
		}
	}
	t.Fatalf("group %q not found in %v", label, labels(groups))
	return Group{}
}

func TestAssemble_DefaultOrderTable(t *testing.T) {
	a := Assembler{Defaults: map[string]int{"Content": 1, "Users": 2}}
	host := []Group{
		{Label: "Users", Entities: []Entity{{Slug: "users", Type: TypeCollection, Label: "Users"}}},
		{Label: "Content", Entities: []Entity{{Slug: "posts", Type: TypeCollection, Label: "Posts"}}},
	}

	got := labels(a.Assemble(host, nil, nil, nil))
	want := []string{"Content", "Users"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("group order = %v, want %v", got, want)
	}
}

func TestAssemble_CustomLinkDefaults(t *testing.T) {
	groups := Assemble(nil, []CustomLink{{Label: "API Docs", Href: "https://x.com/docs"}}, nil, nil)

	g := groupByLabel(t, groups, "Custom")
	if len(g.Entities) != 1 {
		t.Fatalf("Custom group has %d entities, want 1", len(g.Entities))
	}
	e := g.Entities[0]
	if e.Slug != "custom-api-docs" {
		t.Fatalf("slug = %q, want custom-api-docs", e.Slug)
	}
	if e.Type != TypeCustom {
		t.Fatalf("type = %q, want custom", e.Type)
	}
	if !e.External {
		t.Fatalf("external = false, want true for https href")
	}
	if !e.IsPinnable() {
		t.Fatalf("pinnable = false, want default true")
	}
	if e.Weight() != DefaultOrder {
		t.Fatalf("weight = %d, want %d", e.Weight(), DefaultOrder)
	}
}

func TestCustomLinkEntity_External(t *testing.T) {
	tests := []struct {
		name     string
		href     string
		explicit *bool
		want     bool
	}{
		{name: "http", href: "http://example.com", want: true},
		{name: "https", href: "https://example.com", want: true},
		{name: "protocol relative", href: "//cdn.example.com", want: true},
		{name: "admin path", href: "/admin/analytics", want: false},
		{name: "explicit false wins", href: "https://example.com", explicit: BoolPtr(false), want: false},
		{name: "explicit true wins", href: "/api/docs", explicit: BoolPtr(true), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := CustomLinkEntity(CustomLink{Label: "x", Href: tt.href, External: tt.explicit})
			if e.External != tt.want {
				t.Fatalf("external = %v, want %v", e.External, tt.want)
			}
		})
	}
}

func TestCustomSlug(t *testing.T) {
	tests := map[string]string{
		"API Docs":          "custom-api-docs",
		"Analytics":         "custom-analytics",
		"Two  spaces\there": "custom-two-spaces-here",
		" Leading":          "custom--leading",
		"Đơn hàng":          "custom-đơn-hàng",
	}
	for label, want := range tests {
		if got := CustomSlug(label); got != want {
			t.Errorf("CustomSlug(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestAssemble_EntityWeights(t *testing.T) {
	host := []Group{{Label: "Tools", Entities: []Entity{
		{Slug: "a", Type: TypeCollection},
		{Slug: "b", Type: TypeCollection, Order: IntPtr(10)},
		{Slug: "c", Type: TypeGlobal},
	}}}
	links := []CustomLink{
		{Label: "D", Href: "/d", Group: "Tools", Order: IntPtr(60)},
		{Label: "E", Href: "/e", Group: "Tools"},
		{Label: "F", Href: "/f", Group: "Tools", Order: IntPtr(5)},
	}

	g := groupByLabel(t, Assemble(host, links, nil, nil), "Tools")
	got := slugs(g)
	want := []string{"custom-f", "b", "a", "c", "custom-e", "custom-d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("entity order = %v, want %v", got, want)
	}
}

func TestAssemble_OrderPrecedence(t *testing.T) {
	a := Assembler{Defaults: map[string]int{"Content": 1, "Users": 2, "Tools": 8}}
	host := []Group{{Label: "Content"}, {Label: "Users"}, {Label: "Tools"}}

	// plugin table beats defaults
	got := labels(a.Assemble(host, nil, nil, map[string]int{"Users": 0}))
	if want := []string{"Users", "Content", "Tools"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("with plugin override = %v, want %v", got, want)
	}

	// custom group order beats both
	custom := []CustomGroup{{Label: "Users", Order: IntPtr(20)}, {Label: "Tools", Order: IntPtr(-1)}}
	got = labels(a.Assemble(host, nil, custom, map[string]int{"Users": 0}))
	if want := []string{"Tools", "Content", "Users"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("with custom group order = %v, want %v", got, want)
	}
}

func TestAssemble_UnrankedGroupsKeepArrivalOrder(t *testing.T) {
	a := Assembler{Defaults: map[string]int{"Content": 1}}
	host := []Group{{Label: "Zeta"}, {Label: "Content"}, {Label: "Alpha"}}
	custom := []CustomGroup{{Label: "Beta"}, {Label: "Ranked", Order: IntPtr(3)}}
	links := []CustomLink{{Label: "Docs", Href: "/docs", Group: "Gamma"}}

	got := labels(a.Assemble(host, links, custom, nil))
	want := []string{"Content", "Ranked", "Zeta", "Alpha", "Beta", "Gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("group order = %v, want %v", got, want)
	}
}

func TestAssemble_LabelMatchingIsExact(t *testing.T) {
	host := []Group{{Label: "Tools", Entities: []Entity{{Slug: "x", Type: TypeGlobal}}}}
	links := []CustomLink{
		{Label: "One", Href: "/1", Group: "Tools"},
		{Label: "Two", Href: "/2", Group: "tools"},
	}

	groups := Assembler{}.Assemble(host, links, nil, nil)
	if len(groups) != 2 {
		t.Fatalf("got %d groups %v, want 2", len(groups), labels(groups))
	}
	if got := slugs(groupByLabel(t, groups, "Tools")); !reflect.DeepEqual(got, []string{"x", "custom-one"}) {
		t.Fatalf("Tools entities = %v", got)
	}
	if got := slugs(groupByLabel(t, groups, "tools")); !reflect.DeepEqual(got, []string{"custom-two"}) {
		t.Fatalf("tools entities = %v", got)
	}
}

func TestAssemble_DuplicateSlugsAreKept(t *testing.T) {
	links := []CustomLink{
		{Label: "API Docs", Href: "/a"},
		{Label: "api  docs", Href: "/b"},
	}
	g := groupByLabel(t, Assemble(nil, links, nil, nil), DefaultCustomGroup)
	if got := slugs(g); !reflect.DeepEqual(got, []string{"custom-api-docs", "custom-api-docs"}) {
		t.Fatalf("entities = %v, want both duplicates", got)
	}
}

func TestAssemble_CustomGroupNotDuplicated(t *testing.T) {
	host := []Group{{Label: "Tools"}}
	custom := []CustomGroup{{Label: "Tools"}, {Label: "Extra"}, {Label: "Extra"}}
	got := labels(Assembler{}.Assemble(host, nil, custom, nil))
	if want := []string{"Tools", "Extra"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("groups = %v, want %v", got, want)
	}
}

func TestAssemble_IsPureAndRepeatable(t *testing.T) {
	host := []Group{
		{Label: "Users", Entities: []Entity{{Slug: "users", Type: TypeCollection}}},
		{Label: "Content", Entities: []Entity{
			{Slug: "posts", Type: TypeCollection, Order: IntPtr(70)},
			{Slug: "pages", Type: TypeCollection},
		}},
	}
	links := []CustomLink{{Label: "Docs", Href: "https://d", Group: "Content", Order: IntPtr(1)}}
	custom := []CustomGroup{{Label: "Later", Order: IntPtr(100)}}
	overrides := map[string]int{"Users": 0}

	hostBefore := []Group{
		{Label: "Users", Entities: []Entity{{Slug: "users", Type: TypeCollection}}},
		{Label: "Content", Entities: []Entity{
			{Slug: "posts", Type: TypeCollection, Order: IntPtr(70)},
			{Slug: "pages", Type: TypeCollection},
		}},
	}

	first := Assemble(host, links, custom, overrides)
	second := Assemble(host, links, custom, overrides)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated assemble differs:\n%v\n%v", first, second)
	}
	if !reflect.DeepEqual(host, hostBefore) {
		t.Fatalf("host groups were mutated: %v", host)
	}
	if got := slugs(groupByLabel(t, first, "Content")); !reflect.DeepEqual(got, []string{"custom-docs", "pages", "posts"}) {
		t.Fatalf("Content entities = %v", got)
	}
}

func TestBuildGroupOrder(t *testing.T) {
	order := BuildGroupOrder(
		map[string]int{"Content": 1, "Users": 2},
		map[string]int{"Users": 5, "Tools": 3},
		[]CustomGroup{{Label: "Tools", Order: IntPtr(9)}, {Label: "NoOrder"}},
	)
	want := map[string]int{"Content": 1, "Users": 5, "Tools": 9}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}
