package nav

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// BadgeColor is one of the supported badge palettes
type BadgeColor string

const (
	BadgeRed    BadgeColor = "red"
	BadgeYellow BadgeColor = "yellow"
	BadgeBlue   BadgeColor = "blue"
	BadgeGreen  BadgeColor = "green"
	BadgeOrange BadgeColor = "orange"
	BadgeGray   BadgeColor = "gray"
)

// Valid reports whether c is a supported color
func (c BadgeColor) Valid() bool {
	switch c {
	case BadgeRed, BadgeYellow, BadgeBlue, BadgeGreen, BadgeOrange, BadgeGray:
		return true
	}
	return false
}

// BadgeValue is either a bare count or a count with a color.
// Both `3` and `{"count": 3, "color": "blue"}` decode into it.
type BadgeValue struct {
	Count int        `json:"count" yaml:"count"`
	Color BadgeColor `json:"color,omitempty" yaml:"color"`
}

func (b *BadgeValue) UnmarshalJSON(data []byte) error {
	var count int
	if err := json.Unmarshal(data, &count); err == nil {
		*b = BadgeValue{Count: count}
		return nil
	}
	type plain BadgeValue
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("badge must be a number or {count, color}: %w", err)
	}
	*b = BadgeValue(v)
	return nil
}

func (b *BadgeValue) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		count, err := strconv.Atoi(value.Value)
		if err != nil {
			return fmt.Errorf("badge count %q (line %d): %w", value.Value, value.Line, err)
		}
		*b = BadgeValue{Count: count}
		return nil
	}
	type plain BadgeValue
	var v plain
	if err := value.Decode(&v); err != nil {
		return err
	}
	*b = BadgeValue(v)
	return nil
}

// ResolvedBadge is a badge with its color settled
type ResolvedBadge struct {
	Count int        `json:"count"`
	Color BadgeColor `json:"color"`
	Text  string     `json:"text"`
}

// ResolveBadge applies the default color. Unknown colors fall back to red.
func ResolveBadge(v BadgeValue) ResolvedBadge {
	color := v.Color
	if !color.Valid() {
		color = BadgeRed
	}
	return ResolvedBadge{Count: v.Count, Color: color, Text: BadgeText(v.Count)}
}

// LookupBadge returns the resolved badge for slug, if one with a positive count exists
func LookupBadge(badges map[string]BadgeValue, slug string) (ResolvedBadge, bool) {
	v, ok := badges[slug]
	if !ok || v.Count <= 0 {
		return ResolvedBadge{}, false
	}
	return ResolveBadge(v), true
}

// BadgeText caps the displayed count at "99+"
func BadgeText(count int) string {
	if count > 99 {
		return "99+"
	}
	return strconv.Itoa(count)
}

// BadgeColorClass is the CSS modifier class for a badge color
func BadgeColorClass(color BadgeColor, classPrefix string) string {
	return classPrefix + "__link-badge--" + string(color)
}
