// Package host loads the admin panel's entity manifest and groups it the way
// the CMS host does before navigation is assembled.
package host

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cexll/sidebar/internal/nav"
)

const (
	// CollectionsLabel groups collections that declare no group
	CollectionsLabel = "Collections"
	// GlobalsLabel groups globals that declare no group
	GlobalsLabel = "Globals"
)

// ErrNoHostContext means no manifest is available; callers should not render navigation.
var ErrNoHostContext = errors.New("host: no entity manifest")

// EntityConfig describes one collection or global.
type EntityConfig struct {
	Slug     string      `yaml:"slug"`
	Label    string      `yaml:"label"`
	Group    string      `yaml:"group"`
	Hidden   bool        `yaml:"hidden"`
	Roles    []string    `yaml:"roles"`
	Icon     nav.IconRef `yaml:"icon"`
	Order    *int        `yaml:"order"`
	Pinnable *bool       `yaml:"pinnable"`
}

// Manifest lists the host's collections and globals in declaration order.
type Manifest struct {
	Collections []EntityConfig `yaml:"collections"`
	Globals     []EntityConfig `yaml:"globals"`
}

// LoadManifest reads a YAML manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, ErrNoHostContext
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read host manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates a manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse host manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	check := func(kind string, list []EntityConfig) error {
		seen := make(map[string]struct{}, len(list))
		for i, e := range list {
			if e.Slug == "" {
				return fmt.Errorf("host manifest: %s[%d] has no slug", kind, i)
			}
			if _, dup := seen[e.Slug]; dup {
				return fmt.Errorf("host manifest: duplicate %s slug %q", kind, e.Slug)
			}
			seen[e.Slug] = struct{}{}
		}
		return nil
	}
	if err := check("collections", m.Collections); err != nil {
		return err
	}
	return check("globals", m.Globals)
}

// Groups returns the entities visible to a user holding roles, grouped by label.
// Collections come before globals; groups appear in first-seen order.
func (m *Manifest) Groups(roles []string) []nav.Group {
	if m == nil {
		return nil
	}

	var (
		groups []nav.Group
		index  = make(map[string]int)
	)
	add := func(label string, e nav.Entity) {
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, nav.Group{Label: label})
		}
		groups[i].Entities = append(groups[i].Entities, e)
	}

	for _, c := range m.Collections {
		if c.visible(roles) {
			add(c.groupLabel(CollectionsLabel), c.entity(nav.TypeCollection))
		}
	}
	for _, g := range m.Globals {
		if g.visible(roles) {
			add(g.groupLabel(GlobalsLabel), g.entity(nav.TypeGlobal))
		}
	}
	return groups
}

func (e EntityConfig) visible(roles []string) bool {
	if e.Hidden {
		return false
	}
	if len(e.Roles) == 0 {
		return true
	}
	for _, want := range e.Roles {
		for _, have := range roles {
			if want == have {
				return true
			}
		}
	}
	return false
}

func (e EntityConfig) groupLabel(fallback string) string {
	if e.Group != "" {
		return e.Group
	}
	return fallback
}

func (e EntityConfig) entity(typ nav.EntityType) nav.Entity {
	label := e.Label
	if label == "" {
		label = e.Slug
	}
	return nav.Entity{
		Slug:     e.Slug,
		Type:     typ,
		Label:    label,
		Icon:     e.Icon,
		Pinnable: e.Pinnable,
		Order:    e.Order,
	}
}
