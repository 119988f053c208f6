package nav

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// EntityType identifies what a navigation entry points at
type EntityType string

const (
	TypeCollection EntityType = "collection"
	TypeGlobal     EntityType = "global"
	TypeCustom     EntityType = "custom"
)

// DefaultOrder is the weight of an entity or group without an explicit order
const DefaultOrder = 50

// DefaultCustomGroup receives custom links that do not name a group
const DefaultCustomGroup = "Custom"

// Valid reports whether t is one of the known entity types
func (t EntityType) Valid() bool {
	switch t {
	case TypeCollection, TypeGlobal, TypeCustom:
		return true
	}
	return false
}

// ParseEntityType parses a user supplied type name
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}

// IconRef references an icon either by catalog key or by an in-process handle.
// Only key references cross an encoding boundary; a handle encodes as null.
type IconRef struct {
	key    string
	handle any
}

// IconByKey references an icon by its catalog key
func IconByKey(key string) IconRef {
	return IconRef{key: key}
}

// IconByHandle wraps an opaque icon value owned by the caller's process
func IconByHandle(handle any) IconRef {
	return IconRef{handle: handle}
}

// Key returns the catalog key when the reference is a key reference
func (r IconRef) Key() (string, bool) {
	return r.key, r.key != ""
}

// Handle returns the opaque handle when the reference is a handle reference
func (r IconRef) Handle() (any, bool) {
	return r.handle, r.key == "" && r.handle != nil
}

// IsZero reports whether the reference points at nothing
func (r IconRef) IsZero() bool {
	return r.key == "" && r.handle == nil
}

func (r IconRef) String() string {
	if r.key != "" {
		return r.key
	}
	if r.handle != nil {
		return fmt.Sprintf("handle(%T)", r.handle)
	}
	return ""
}

func (r IconRef) MarshalJSON() ([]byte, error) {
	if r.key == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.key)
}

func (r *IconRef) UnmarshalJSON(data []byte) error {
	var key *string
	if err := json.Unmarshal(data, &key); err != nil {
		return fmt.Errorf("icon must be a string key: %w", err)
	}
	*r = IconRef{}
	if key != nil {
		r.key = *key
	}
	return nil
}

func (r *IconRef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("icon must be a string key (line %d)", value.Line)
	}
	*r = IconByKey(value.Value)
	return nil
}

// Entity is a navigable target inside a group. (Slug, Type) is its identity.
type Entity struct {
	Slug     string     `json:"slug"`
	Type     EntityType `json:"type"`
	Label    string     `json:"label"`
	Href     string     `json:"href,omitempty"`
	External bool       `json:"external,omitempty"`
	Icon     IconRef    `json:"icon"`
	Pinnable *bool      `json:"pinnable,omitempty"`
	Order    *int       `json:"order,omitempty"`
}

// Weight returns the entity's order weight, DefaultOrder when unset
func (e Entity) Weight() int {
	if e.Order == nil {
		return DefaultOrder
	}
	return *e.Order
}

// IsPinnable reports whether the entity may be pinned, true when unset
func (e Entity) IsPinnable() bool {
	return e.Pinnable == nil || *e.Pinnable
}

// Group is a labeled, ordered set of entities
type Group struct {
	Label    string   `json:"label"`
	Entities []Entity `json:"entities"`
}

// CustomLink is a configured link that is not backed by a collection or global
type CustomLink struct {
	Label    string  `json:"label" yaml:"label"`
	Href     string  `json:"href" yaml:"href"`
	Group    string  `json:"group,omitempty" yaml:"group"`
	Icon     IconRef `json:"icon" yaml:"icon"`
	External *bool   `json:"external,omitempty" yaml:"external"`
	Order    *int    `json:"order,omitempty" yaml:"order"`
	Pinnable *bool   `json:"pinnable,omitempty" yaml:"pinnable"`
}

// CustomGroup forces a group into existence and optionally pins its priority
type CustomGroup struct {
	Label       string `json:"label" yaml:"label"`
	Order       *int   `json:"order,omitempty" yaml:"order"`
	DefaultOpen *bool  `json:"defaultOpen,omitempty" yaml:"defaultOpen"`
}

// PinnedItem is an entity identity promoted to the user's quick access list
type PinnedItem struct {
	Slug  string     `json:"slug"`
	Type  EntityType `json:"type"`
	Order int        `json:"order"`
}

// Is reports whether the item has the given identity
func (p PinnedItem) Is(slug string, typ EntityType) bool {
	return p.Slug == slug && p.Type == typ
}

// IntPtr and BoolPtr help build optional config fields in code
func IntPtr(v int) *int    { return &v }
func BoolPtr(v bool) *bool { return &v }
