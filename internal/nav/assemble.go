package nav

import (
	"sort"
	"strings"
	"unicode"
)

// Assembler merges host groups with configured links and groups and orders the result.
// Defaults is the built-in group order table; plugin overrides passed to Assemble win over it.
type Assembler struct {
	Defaults map[string]int
}

// Assemble runs the default Assembler over DefaultGroupOrder
func Assemble(hostGroups []Group, links []CustomLink, groups []CustomGroup, overrides map[string]int) []Group {
	return Assembler{Defaults: DefaultGroupOrder}.Assemble(hostGroups, links, groups, overrides)
}

// Assemble returns the ordered navigation for one render. It never mutates its inputs
// and never filters by permission: hostGroups are taken as already authorized.
func (a Assembler) Assemble(hostGroups []Group, links []CustomLink, groups []CustomGroup, overrides map[string]int) []Group {
	merged := mergeCustomLinks(hostGroups, links, groups)

	for i := range merged {
		sort.SliceStable(merged[i].Entities, func(x, y int) bool {
			return merged[i].Entities[x].Weight() < merged[i].Entities[y].Weight()
		})
	}

	order := BuildGroupOrder(a.Defaults, overrides, groups)
	sort.SliceStable(merged, func(i, j int) bool {
		pi, iRanked := order[merged[i].Label]
		pj, jRanked := order[merged[j].Label]
		if iRanked != jRanked {
			return iRanked
		}
		return iRanked && pi < pj
	})

	return merged
}

// BuildGroupOrder layers the priority tables: defaults, then plugin overrides,
// then explicit orders on custom groups.
func BuildGroupOrder(defaults, overrides map[string]int, groups []CustomGroup) map[string]int {
	order := make(map[string]int, len(defaults)+len(overrides)+len(groups))
	for label, p := range defaults {
		order[label] = p
	}
	for label, p := range overrides {
		order[label] = p
	}
	for _, g := range groups {
		if g.Order != nil {
			order[g.Label] = *g.Order
		}
	}
	return order
}

func mergeCustomLinks(hostGroups []Group, links []CustomLink, groups []CustomGroup) []Group {
	merged := make([]Group, 0, len(hostGroups)+len(groups)+1)
	index := make(map[string]int, len(hostGroups))
	for _, g := range hostGroups {
		entities := make([]Entity, len(g.Entities))
		copy(entities, g.Entities)
		index[g.Label] = len(merged)
		merged = append(merged, Group{Label: g.Label, Entities: entities})
	}

	for _, g := range groups {
		if _, ok := index[g.Label]; ok {
			continue
		}
		index[g.Label] = len(merged)
		merged = append(merged, Group{Label: g.Label, Entities: []Entity{}})
	}

	for _, link := range links {
		label := link.Group
		if label == "" {
			label = DefaultCustomGroup
		}
		i, ok := index[label]
		if !ok {
			i = len(merged)
			index[label] = i
			merged = append(merged, Group{Label: label, Entities: []Entity{}})
		}
		merged[i].Entities = append(merged[i].Entities, CustomLinkEntity(link))
	}

	return merged
}

// CustomLinkEntity converts a configured link into a custom entity
func CustomLinkEntity(link CustomLink) Entity {
	external := IsExternalHref(link.Href)
	if link.External != nil {
		external = *link.External
	}

	pinnable := true
	if link.Pinnable != nil {
		pinnable = *link.Pinnable
	}

	order := DefaultOrder
	if link.Order != nil {
		order = *link.Order
	}

	return Entity{
		Slug:     CustomSlug(link.Label),
		Type:     TypeCustom,
		Label:    link.Label,
		Href:     link.Href,
		External: external,
		Icon:     link.Icon,
		Pinnable: &pinnable,
		Order:    &order,
	}
}

// CustomSlug derives the slug of a custom link from its label:
// lowercased, every whitespace run replaced by a single hyphen, prefixed with "custom-".
func CustomSlug(label string) string {
	var b strings.Builder
	b.WriteString("custom-")
	inSpace := false
	for _, r := range strings.ToLower(label) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// IsExternalHref reports whether href leaves the admin application
func IsExternalHref(href string) bool {
	return strings.HasPrefix(href, "http://") ||
		strings.HasPrefix(href, "https://") ||
		strings.HasPrefix(href, "//")
}
