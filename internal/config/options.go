package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cexll/sidebar/internal/nav"
)

// PinnedStorage selects where pinned items persist
type PinnedStorage string

const (
	// StoragePreferences keeps pinned items in the per-user server preference record.
	StoragePreferences PinnedStorage = "preferences"
	// StorageLocal keeps pinned items in the browser-local slot.
	StorageLocal PinnedStorage = "localStorage"
)

// DefaultClassPrefix is the CSS class prefix used when none is configured
const DefaultClassPrefix = "nav"

// ParsePinnedStorage accepts the canonical names and the remote/local aliases.
func ParsePinnedStorage(s string) (PinnedStorage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "preferences", "remote":
		return StoragePreferences, nil
	case "localstorage", "local":
		return StorageLocal, nil
	}
	return "", fmt.Errorf("invalid pinnedStorage: %q (must be 'preferences' or 'localStorage')", s)
}

func (p *PinnedStorage) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParsePinnedStorage(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Options is the plugin options document. Every field is optional.
type Options struct {
	GroupOrder    map[string]int            `yaml:"groupOrder"`
	Icons         map[string]nav.IconRef    `yaml:"icons"`
	CustomLinks   []nav.CustomLink          `yaml:"customLinks"`
	CustomGroups  []nav.CustomGroup         `yaml:"customGroups"`
	EnablePinning *bool                     `yaml:"enablePinning"`
	PinnedStorage PinnedStorage             `yaml:"pinnedStorage"`
	ClassPrefix   string                    `yaml:"classPrefix"`
	CSSVariables  map[string]string         `yaml:"cssVariables"`
	Badges        map[string]nav.BadgeValue `yaml:"badges"`
}

// Resolved is the options with every default applied. Maps and slices are
// private copies; callers must treat them as read-only.
type Resolved struct {
	// GroupOrderOverrides is the plugin table as configured, fed to the assembler.
	GroupOrderOverrides map[string]int

	Icons         map[string]nav.IconRef
	CustomLinks   []nav.CustomLink
	CustomGroups  []nav.CustomGroup
	EnablePinning bool
	PinnedStorage PinnedStorage
	ClassPrefix   string
	CSSVariables  map[string]string
	Badges        map[string]nav.BadgeValue
}

// LoadOptions reads the YAML options at path. An empty path yields zero Options.
func LoadOptions(path string) (*Options, error) {
	if path == "" {
		return &Options{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read nav options: %w", err)
	}
	return ParseOptions(data)
}

// ParseOptions decodes and validates an options document.
func ParseOptions(data []byte) (*Options, error) {
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parse nav options: %w", err)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

func (o *Options) validate() error {
	for i, link := range o.CustomLinks {
		if strings.TrimSpace(link.Label) == "" {
			return fmt.Errorf("customLinks[%d]: label is required", i)
		}
		if strings.TrimSpace(link.Href) == "" {
			return fmt.Errorf("customLinks[%d] (%s): href is required", i, link.Label)
		}
	}
	for i, g := range o.CustomGroups {
		if strings.TrimSpace(g.Label) == "" {
			return fmt.Errorf("customGroups[%d]: label is required", i)
		}
	}
	return nil
}

// Resolve applies defaults.
func (o *Options) Resolve() Resolved {
	r := Resolved{
		GroupOrderOverrides: copyMap(o.GroupOrder),
		Icons:               copyMap(o.Icons),
		CustomLinks:         append([]nav.CustomLink{}, o.CustomLinks...),
		CustomGroups:        append([]nav.CustomGroup{}, o.CustomGroups...),
		EnablePinning:       true,
		PinnedStorage:       o.PinnedStorage,
		ClassPrefix:         o.ClassPrefix,
		CSSVariables:        copyMap(nav.DefaultBadgeColors),
		Badges:              copyMap(o.Badges),
	}
	if o.EnablePinning != nil {
		r.EnablePinning = *o.EnablePinning
	}
	if r.PinnedStorage == "" {
		r.PinnedStorage = StoragePreferences
	}
	if r.ClassPrefix == "" {
		r.ClassPrefix = DefaultClassPrefix
	}
	for k, v := range o.CSSVariables {
		r.CSSVariables[k] = v
	}
	return r
}

// GroupDefaultOpen reports whether label starts expanded (true unless a custom group says otherwise).
func (r Resolved) GroupDefaultOpen(label string) bool {
	for _, g := range r.CustomGroups {
		if g.Label == label && g.DefaultOpen != nil {
			return *g.DefaultOpen
		}
	}
	return true
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
